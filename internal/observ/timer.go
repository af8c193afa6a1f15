// Package observ measures the phases of a file check.
package observ

import (
	"fmt"
	"time"
)

// Phase is one measured step.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
}

// Millis returns the phase duration in milliseconds.
func (p Phase) Millis() float64 { return toMillis(p.Dur) }

// Timer records phases in the order they begin. It is not safe for
// concurrent use; the driver keeps one per file.
type Timer struct {
	phases []Phase
}

func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 4)} }

// Begin starts a phase and returns its index for End.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes the phase at idx. Unknown indexes are ignored.
func (t *Timer) End(idx int) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
}

func (t *Timer) Phases() []Phase {
	return append([]Phase(nil), t.phases...)
}

// Total sums the finished phases.
func (t *Timer) Total() time.Duration {
	var total time.Duration
	for _, p := range t.phases {
		total += p.Dur
	}
	return total
}

// Notes renders one "<name> <ms> ms" line per phase.
func (t *Timer) Notes() []string {
	out := make([]string, 0, len(t.phases))
	for _, p := range t.phases {
		out = append(out, fmt.Sprintf("%s %.1f ms", p.Name, p.Millis()))
	}
	return out
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
