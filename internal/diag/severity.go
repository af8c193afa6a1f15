package diag

// Severity ranks a diagnostic. Style findings are warnings or infos;
// only errors stop a rewrite from being applied.
type Severity uint8

const (
	// SevInfo marks advisory findings (member order, accessibility pair
	// spelling, timings) that `check` hides with --no-info.
	SevInfo Severity = iota
	SevWarning
	// SevError marks input that cannot be rewritten safely.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Blocking reports whether a diagnostic of this severity prevents fixes
// from being applied to its file.
func (s Severity) Blocking() bool {
	return s >= SevError
}

// AtLeast reports whether s is as severe as floor.
func (s Severity) AtLeast(floor Severity) bool {
	return s >= floor
}
