package ui

import (
	"strings"
	"testing"

	"declfix/internal/driver"
)

func TestApplyEventTracksStatus(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("check", []string{"a.cs", "b.cs"}, events).(*progressModel)

	m.applyEvent(driver.Event{File: "a.cs", Stage: driver.StageParse, Status: driver.StatusWorking})
	if got := m.items[0].status; got != "parsing" {
		t.Fatalf("status = %q, want parsing", got)
	}
	m.applyEvent(driver.Event{File: "a.cs", Stage: driver.StageAnalyze, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "b.cs", Stage: driver.StageLoad, Status: driver.StatusError})
	if m.failed != 1 {
		t.Fatalf("failed = %d, want 1", m.failed)
	}
	if got := m.percent(); got != 1.0 {
		t.Fatalf("percent = %v, want 1", got)
	}

	// события для незнакомых файлов игнорируются
	m.applyEvent(driver.Event{File: "c.cs", Stage: driver.StageParse, Status: driver.StatusWorking})
	if len(m.items) != 2 {
		t.Fatalf("items = %d", len(m.items))
	}
}

func TestRunLevelEventSetsStageLabel(t *testing.T) {
	m := NewProgressModel("fix", []string{"a.cs"}, nil).(*progressModel)
	m.applyEvent(driver.Event{Stage: driver.StageFix, Status: driver.StatusWorking})
	if m.stageLabel != "fixing" {
		t.Fatalf("stage label = %q", m.stageLabel)
	}
	m.done = true
	view := m.View()
	if !strings.Contains(view, "done: fix (fixing)") || !strings.Contains(view, "a.cs") {
		t.Fatalf("unexpected view:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"short.cs", 20, "short.cs"},
		{"a/very/long/path/File.cs", 10, "a/very/..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.width); got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}
