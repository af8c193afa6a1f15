package diagfmt

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"declfix/internal/analysis"
	"declfix/internal/csharp"
	"declfix/internal/diag"
	"declfix/internal/lexer"
	"declfix/internal/source"
)

const misordered = "class C\n{\n    static public void M() { }\n}\n"

// analyzed разбирает исходник и прогоняет стилевые правила
func analyzed(t *testing.T, name, src string) (*source.FileSet, []diag.Diagnostic) {
	t.Helper()
	fs := source.NewFileSet()
	res, err := csharp.ParseSource(context.Background(), fs, name, []byte(src), csharp.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	bag := diag.NewBag(16)
	if err := analysis.Check(context.Background(), fs.Get(res.File.ID), res.File, analysis.Options{}, diag.BagReporter{Bag: bag}); err != nil {
		t.Fatalf("check: %v", err)
	}
	bag.Sort()
	return fs, bag.Items()
}

func encode(t *testing.T, items []diag.Diagnostic, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	t.Helper()
	var buf bytes.Buffer
	if err := JSON(&buf, items, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}
	return out
}

func applyEdit(content string, e FixEditJSON) string {
	return content[:e.Location.StartByte] + e.NewText + content[e.Location.EndByte:]
}

func TestJSONModifierOrder(t *testing.T) {
	fs, items := analyzed(t, "test.cs", misordered)
	out := encode(t, items, fs, JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
		IncludeFixes:     true,
	})
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %+v", out)
	}

	d := out.Diagnostics[0]
	if d.Severity != "WARNING" || d.Code != "STY3001" {
		t.Fatalf("got %s %s", d.Severity, d.Code)
	}
	if !strings.Contains(d.Message, `"static public"`) || !strings.Contains(d.Message, `"public static"`) {
		t.Errorf("unexpected message %q", d.Message)
	}
	at := uint32(strings.Index(misordered, "static"))
	loc := d.Location
	if loc.File != "test.cs" || loc.StartByte != at || loc.EndByte != at+uint32(len("static public")) {
		t.Errorf("unexpected location %+v", loc)
	}
	// строки и колонки с единицы
	if loc.StartLine != 3 || loc.StartCol != 5 || loc.EndLine != 3 {
		t.Errorf("unexpected position %+v", loc)
	}

	if len(d.Fixes) != 1 {
		t.Fatalf("expected 1 fix, got %d", len(d.Fixes))
	}
	f := d.Fixes[0]
	if f.Title != `Reorder modifiers to "public static"` {
		t.Errorf("unexpected fix title %q", f.Title)
	}
	if f.Kind != "quickfix" || f.Applicability != "always-safe" || !f.IsPreferred || f.BuildError != "" {
		t.Errorf("unexpected fix metadata %+v", f)
	}
	if len(f.Edits) != 1 {
		t.Fatalf("expected 1 edit, got %d", len(f.Edits))
	}
	e := f.Edits[0]
	if e.OldText != misordered[e.Location.StartByte:e.Location.EndByte] {
		t.Errorf("old_text %q does not guard the replaced range", e.OldText)
	}
	if got := applyEdit(misordered, e); got != "class C\n{\n    public static void M() { }\n}\n" {
		t.Errorf("edit applied:\n%s", got)
	}
}

func TestJSONMemberOrderNote(t *testing.T) {
	src := "class C\n{\n    void M() { }\n    int x;\n}\n"
	fs, items := analyzed(t, "test.cs", src)

	tests := []struct {
		name  string
		notes bool
		want  int
	}{
		{"notes hidden", false, 0},
		{"notes shown", true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := encode(t, items, fs, JSONOpts{PathMode: PathModeBasename, IncludeNotes: tt.notes, IncludeFixes: true})
			if len(out.Diagnostics) != 1 {
				t.Fatalf("expected 1 diagnostic, got %d", len(out.Diagnostics))
			}
			d := out.Diagnostics[0]
			if d.Code != "STY3004" || d.Severity != "INFO" {
				t.Fatalf("got %s %s", d.Severity, d.Code)
			}
			if len(d.Notes) != tt.want {
				t.Fatalf("expected %d notes, got %+v", tt.want, d.Notes)
			}
			if len(d.Fixes) != 1 {
				t.Fatalf("expected 1 fix, got %d", len(d.Fixes))
			}
			// ленивый фикс материализуется при выводе
			f := d.Fixes[0]
			if f.Kind != "refactor.rewrite" || f.Applicability != "safe-with-heuristics" || len(f.Edits) != 1 {
				t.Fatalf("unexpected fix %+v", f)
			}
			if got := applyEdit(src, f.Edits[0]); got != "class C\n{\n    int x;\n    void M() { }\n}\n" {
				t.Errorf("edit applied:\n%s", got)
			}
		})
	}
}

func TestJSONTimingsKeepNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.cs", []byte(misordered))
	d := diag.New(diag.SevInfo, diag.ObsTimings, source.Span{File: id}, "checked in 1.0 ms").
		WithNote(source.Span{File: id}, "parse: 0.6 ms").
		WithNote(source.Span{File: id}, "analyze: 0.4 ms")

	out := encode(t, []diag.Diagnostic{d}, fs, JSONOpts{PathMode: PathModeBasename})
	got := out.Diagnostics[0]
	if got.Code != "OBS6001" || len(got.Notes) != 2 || got.Notes[0].Message != "parse: 0.6 ms" {
		t.Fatalf("timings must carry their phases: %+v", got)
	}
}

func TestJSONWithoutPositions(t *testing.T) {
	fs, items := analyzed(t, "test.cs", misordered)
	out := encode(t, items, fs, JSONOpts{PathMode: PathModeBasename})

	loc := out.Diagnostics[0].Location
	// omitempty скрывает строки и колонки
	if loc.StartLine != 0 || loc.StartCol != 0 {
		t.Errorf("positions must be omitted, got %+v", loc)
	}
	if loc.StartByte != uint32(strings.Index(misordered, "static")) {
		t.Errorf("byte offsets are always present, got %+v", loc)
	}
	if len(out.Diagnostics[0].Fixes) != 0 {
		t.Errorf("fixes must be omitted without IncludeFixes")
	}
}

func TestJSONMaxLimit(t *testing.T) {
	src := "class C\n{\n    static public void A() { }\n    static public void B() { }\n    static public void D() { }\n}\n"
	fs, items := analyzed(t, "test.cs", src)
	if len(items) < 3 {
		t.Fatalf("expected at least 3 diagnostics, got %d", len(items))
	}

	out := encode(t, items, fs, JSONOpts{PathMode: PathModeBasename, Max: 2})
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("expected 2 diagnostics (limited), got count=%d len=%d", out.Count, len(out.Diagnostics))
	}
}

func TestJSONPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/home/user/project")
	id := fs.AddVirtual("/home/user/project/src/Widget.cs", []byte(misordered))
	at := uint32(strings.Index(misordered, "static"))
	d := diag.New(diag.SevWarning, diag.StyModifierOrder, source.Span{File: id, Start: at, End: at + 6}, "order")

	tests := []struct {
		name     string
		pathMode PathMode
		expected string
	}{
		{"Absolute", PathModeAbsolute, "/home/user/project/src/Widget.cs"},
		{"Relative", PathModeRelative, "src/Widget.cs"},
		{"Basename", PathModeBasename, "Widget.cs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := encode(t, []diag.Diagnostic{d}, fs, JSONOpts{PathMode: tt.pathMode})
			if got := out.Diagnostics[0].Location.File; got != tt.expected {
				t.Errorf("expected file=%s, got %s", tt.expected, got)
			}
		})
	}
}

func TestJSONFixPreview(t *testing.T) {
	fs, items := analyzed(t, "example.cs", misordered)
	out := encode(t, items, fs, JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeFixes:     true,
		IncludePreviews:  true,
	})

	fixes := out.Diagnostics[0].Fixes
	if len(fixes) != 1 || len(fixes[0].Edits) != 1 {
		t.Fatalf("expected a single edit, got %+v", fixes)
	}
	e := fixes[0].Edits[0]
	if len(e.BeforeLines) != 1 || e.BeforeLines[0] != "    static public void M() { }" {
		t.Errorf("unexpected before lines %q", e.BeforeLines)
	}
	if len(e.AfterLines) != 1 || e.AfterLines[0] != "    public static void M() { }" {
		t.Errorf("unexpected after lines %q", e.AfterLines)
	}
}

func TestFormatTokensJSONKeepsTrivia(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.cs", []byte("// c\nint x;\n"))
	toks := lexer.Tokenize(fs.Get(fileID), lexer.Options{})

	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatalf("FormatTokensJSON: %v", err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out) != len(toks) {
		t.Fatalf("expected %d tokens, got %d", len(toks), len(out))
	}
	first := out[0]
	if first.Text != "int" || len(first.Leading) != 2 || first.Leading[0].Text != "// c" {
		t.Fatalf("unexpected first token %+v", first)
	}
	semi := out[2]
	if semi.Text != ";" || len(semi.Trailing) != 1 || semi.Trailing[0].Kind != "Newline" {
		t.Fatalf("unexpected ';' token %+v", semi)
	}
}
