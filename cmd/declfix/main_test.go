package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"declfix/internal/diag"
	"declfix/internal/fix"
)

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "ON": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Fatalf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Fatalf("expected error")
	}
	if shouldUseTUI(uiModeAuto, "json", false) {
		t.Fatalf("json output must not start the progress view")
	}
	if !shouldUseTUI(uiModeOn, "json", true) {
		t.Fatalf("--ui on forces the progress view")
	}
}

func TestHandleApplyResult(t *testing.T) {
	res := &fix.ApplyResult{
		Applied: []fix.AppliedFix{{
			ID:            "STY3001-0-20-0",
			Title:         "order modifiers",
			PrimaryPath:   "a.cs",
			EditCount:     1,
			Applicability: diag.FixApplicabilityAlwaysSafe,
		}},
		Skipped:     []fix.SkippedFix{{Reason: "fix has no edits"}},
		FileChanges: []fix.FileChange{{Path: "a.cs", EditCount: 1}},
	}
	var buf bytes.Buffer
	if err := handleApplyResult(&buf, res, nil, true); err != nil {
		t.Fatalf("handle: %v", err)
	}
	want := "Would apply 1 fix(es):\n" +
		"  order modifiers [STY3001-0-20-0] - a.cs (1 edits, always-safe)\n" +
		"Files that would change:\n" +
		"  a.cs (1 edits)\n" +
		"Skipped fixes:\n" +
		"  [(unnamed)]: fix has no edits\n"
	if buf.String() != want {
		t.Fatalf("output:\n%s\nwant:\n%s", buf.String(), want)
	}

	buf.Reset()
	if err := handleApplyResult(&buf, &fix.ApplyResult{}, fix.ErrNoFixes, false); err != nil {
		t.Fatalf("no fixes is not an error: %v", err)
	}
	if !strings.Contains(buf.String(), "No applicable fixes found.") {
		t.Fatalf("output: %q", buf.String())
	}
}

func TestRenderVersionJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := renderVersionJSON(&buf, versionOptions{showHash: true}); err != nil {
		t.Fatalf("render: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Tool != "declfix" || payload.GitCommit == "" || payload.BuildDate != "" {
		t.Fatalf("payload = %+v", payload)
	}
}
