package fix

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"declfix/internal/diag"
	"declfix/internal/source"
)

func edit(file source.FileID, start, end uint32, text, old string) diag.TextEdit {
	return diag.TextEdit{Span: source.Span{File: file, Start: start, End: end}, NewText: text, OldText: old}
}

func withFix(code diag.Code, f diag.Fix) diag.Diagnostic {
	primary := f.Edits[0].Span
	return diag.New(diag.SevWarning, code, primary, f.Title).WithFixSuggestion(&f)
}

func TestGatherCandidatesSkipsDuplicateFixIDs(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.cs", []byte(""))
	span := source.Span{File: fileID, Start: 0, End: 0}

	d := diag.New(diag.SevWarning, diag.StyModifierOrder, span, "order").
		WithFixSuggestion(&diag.Fix{ID: "fix-duplicate", Title: "first", Edits: []diag.TextEdit{{Span: span, NewText: "a"}}}).
		WithFixSuggestion(&diag.Fix{ID: "fix-duplicate", Title: "again", Edits: []diag.TextEdit{{Span: span, NewText: "a"}}})

	candidates, skips := gatherCandidates(diag.FixBuildContext{FileSet: fs}, []diag.Diagnostic{d})
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if len(skips) != 1 || skips[0].ID != "fix-duplicate" || skips[0].Reason != "duplicate fix id" {
		t.Fatalf("unexpected skips %+v", skips)
	}
}

func TestApplyAllDryRun(t *testing.T) {
	fs := source.NewFileSet()
	src := "static public int x;\ninternal protected int y;\n"
	id := fs.AddVirtual("a.cs", []byte(src))

	diags := []diag.Diagnostic{
		withFix(diag.StyAccessibilityPair, ReplaceSpan("pair", source.Span{File: id, Start: 21, End: 39}, "protected internal", "internal protected")),
		withFix(diag.StyModifierOrder, ReplaceSpan("order", source.Span{File: id, Start: 0, End: 13}, "public static", "static public")),
	}
	res, err := Apply(fs, diags, ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(res.Applied) != 2 || len(res.FileChanges) != 1 {
		t.Fatalf("applied=%d changes=%d", len(res.Applied), len(res.FileChanges))
	}
	// порядок: по позиции, а не по порядку диагностик
	if res.Applied[0].Title != "order" {
		t.Fatalf("first applied = %q", res.Applied[0].Title)
	}
	want := "public static int x;\nprotected internal int y;\n"
	if got := string(res.FileChanges[0].Content); got != want {
		t.Fatalf("content = %q, want %q", got, want)
	}
	if string(fs.Get(id).Content) != src {
		t.Fatalf("dry run modified the file set")
	}
}

func TestApplyConflictsAndGuards(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.cs", []byte("public static int x;"))

	diags := []diag.Diagnostic{
		withFix(diag.StyModifierOrder, ReplaceSpan("first", source.Span{File: id, Start: 0, End: 13}, "private static", "public static")),
		withFix(diag.StyModifierOrder, ReplaceSpan("overlap", source.Span{File: id, Start: 7, End: 17}, "int", "static int")),
		withFix(diag.StyModifierOrder, ReplaceSpan("stale", source.Span{File: id, Start: 18, End: 19}, "y", "z")),
	}
	res, err := Apply(fs, diags, ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(res.Applied) != 1 || res.Applied[0].Title != "first" {
		t.Fatalf("applied = %+v", res.Applied)
	}
	reasons := map[string]string{}
	for _, s := range res.Skipped {
		reasons[s.Title] = s.Reason
	}
	if reasons["stale"] != "existing text does not match expected content" {
		t.Fatalf("stale reason = %q", reasons["stale"])
	}
	if reasons["overlap"] == "" {
		t.Fatalf("overlapping fix must be skipped")
	}
}

func TestApplyModes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.cs", []byte("class C { int b; void a() { } }"))

	safe := ReplaceSpan("safe", source.Span{File: id, Start: 10, End: 13}, "private int", "int", WithID("safe"))
	heur := ReplaceSpan("sort", source.Span{File: id, Start: 17, End: 21}, "void", "void",
		WithID("sort"), WithApplicability(diag.FixApplicabilitySafeWithHeuristics))
	diags := []diag.Diagnostic{withFix(diag.StyMemberOrder, heur), withFix(diag.StyMissingAccessibility, safe)}

	res, err := Apply(fs, diags, ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	if err != nil || len(res.Applied) != 1 || res.Applied[0].ID != "safe" {
		t.Fatalf("all without heuristics: %+v, %v", res.Applied, err)
	}
	res, err = Apply(fs, diags, ApplyOptions{Mode: ApplyModeAll, Heuristics: true, DryRun: true})
	if err != nil || len(res.Applied) != 2 {
		t.Fatalf("all with heuristics: %+v, %v", res.Applied, err)
	}
	res, err = Apply(fs, diags, ApplyOptions{Mode: ApplyModeID, TargetID: "sort", DryRun: true})
	if err != nil || len(res.Applied) != 1 || res.Applied[0].ID != "sort" {
		t.Fatalf("by id: %+v, %v", res.Applied, err)
	}
	res, err = Apply(fs, diags, ApplyOptions{Mode: ApplyModeOnce, DryRun: true})
	if err != nil || len(res.Applied) != 1 || res.Applied[0].ID != "safe" {
		t.Fatalf("once prefers safe fixes: %+v, %v", res.Applied, err)
	}
	if _, err := Apply(fs, diags, ApplyOptions{Mode: ApplyModeID, TargetID: "missing"}); !errors.Is(err, ErrNoFixes) {
		t.Fatalf("expected ErrNoFixes, got %v", err)
	}
	if _, err := Apply(fs, nil, ApplyOptions{}); !errors.Is(err, ErrNoFixes) {
		t.Fatalf("expected ErrNoFixes, got %v", err)
	}
}

func TestApplyFixesWritesBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.cs")
	if err := os.WriteFile(path, []byte("internal int x;\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	res, err := ApplyFixes(fs, []diag.Fix{
		ReplaceSpan("Make public", source.Span{File: id, Start: 0, End: 8}, "public", "internal"),
	}, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(res.FileChanges) != 1 || res.FileChanges[0].Path != "a.cs" {
		t.Fatalf("changes = %+v", res.FileChanges)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "public int x;\n" {
		t.Fatalf("file = %q", got)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode changed to %v", info.Mode().Perm())
	}
}

func TestSpansConflict(t *testing.T) {
	cases := []struct {
		a, b diag.TextEdit
		want bool
	}{
		{edit(1, 0, 0, "a", ""), edit(1, 0, 0, "b", ""), false},
		{edit(1, 2, 2, "a", ""), edit(1, 0, 5, "b", ""), true},
		{edit(1, 5, 5, "a", ""), edit(1, 0, 5, "b", ""), false},
		{edit(1, 0, 3, "a", ""), edit(1, 3, 6, "b", ""), false},
		{edit(1, 0, 4, "a", ""), edit(1, 3, 6, "b", ""), true},
	}
	for i, c := range cases {
		if got := spansConflict(c.a, c.b); got != c.want {
			t.Fatalf("case %d: got %v", i, got)
		}
	}
}
