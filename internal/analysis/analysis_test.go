package analysis_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"declfix/internal/analysis"
	"declfix/internal/csharp"
	"declfix/internal/diag"
	"declfix/internal/fix"
	"declfix/internal/source"
)

type checked struct {
	fs    *source.FileSet
	diags []diag.Diagnostic
}

func check(t *testing.T, src string, opts analysis.Options) checked {
	t.Helper()
	fs := source.NewFileSet()
	bag := diag.NewBag(64)
	res, err := csharp.ParseSource(context.Background(), fs, "test.cs", []byte(src), csharp.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected syntax errors: %+v", res.Bag.Items())
	}
	err = analysis.Check(context.Background(), fs.Get(res.File.ID), res.File, opts, diag.BagReporter{Bag: bag})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	bag.Sort()
	return checked{fs: fs, diags: bag.Items()}
}

func (c checked) codes() []diag.Code {
	out := make([]diag.Code, 0, len(c.diags))
	for _, d := range c.diags {
		out = append(out, d.Code)
	}
	return out
}

func (c checked) fixed(t *testing.T, heuristics bool) string {
	t.Helper()
	res, err := fix.Apply(c.fs, c.diags, fix.ApplyOptions{Mode: fix.ApplyModeAll, Heuristics: heuristics, DryRun: true})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(res.FileChanges) != 1 {
		t.Fatalf("expected one changed file, got %d (skipped %+v)", len(res.FileChanges), res.Skipped)
	}
	return string(res.FileChanges[0].Content)
}

func TestRules(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		opts  analysis.Options
		codes []diag.Code
		want  string
	}{
		{
			name:  "modifier order",
			src:   "class C\n{\n    static public void M() { }\n}\n",
			codes: []diag.Code{diag.StyModifierOrder},
			want:  "class C\n{\n    public static void M() { }\n}\n",
		},
		{
			name:  "accessibility pair",
			src:   "class C\n{\n    internal protected int x;\n}\n",
			codes: []diag.Code{diag.StyAccessibilityPair},
			want:  "class C\n{\n    protected internal int x;\n}\n",
		},
		{
			name:  "explicit accessibility",
			src:   "class C\n{\n    int x;\n    void M() { }\n}\n",
			opts:  analysis.Options{ExplicitAccessibility: true},
			codes: []diag.Code{diag.StyMissingAccessibility, diag.StyMissingAccessibility, diag.StyMissingAccessibility},
			want:  "internal class C\n{\n    private int x;\n    private void M() { }\n}\n",
		},
		{
			name: "explicit accessibility keeps doc comment first",
			src:  "/// <summary>C</summary>\nstatic class C\n{\n}\n",
			opts: analysis.Options{ExplicitAccessibility: true},
			codes: []diag.Code{diag.StyMissingAccessibility},
			want: "/// <summary>C</summary>\ninternal static class C\n{\n}\n",
		},
		{
			name:  "member order",
			src:   "class C\n{\n    void M() { }\n    int x;\n}\n",
			codes: []diag.Code{diag.StyMemberOrder},
			want:  "class C\n{\n    int x;\n    void M() { }\n}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := check(t, tt.src, tt.opts)
			if got := c.codes(); !slices.Equal(got, tt.codes) {
				t.Fatalf("codes = %v, want %v", got, tt.codes)
			}
			if got := c.fixed(t, true); got != tt.want {
				t.Fatalf("fixed:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestCleanSourceHasNoDiagnostics(t *testing.T) {
	src := "namespace N\n{\n    public static class C\n    {\n        private const int A = 1;\n        private static readonly int b;\n        protected internal C() { }\n        public override string ToString() => \"\";\n    }\n}\n"
	c := check(t, src, analysis.Options{ExplicitAccessibility: true})
	if len(c.diags) != 0 {
		t.Fatalf("unexpected diagnostics %+v", c.diags)
	}
}

func TestMemberOrderNeedsHeuristics(t *testing.T) {
	c := check(t, "class C\n{\n    void M() { }\n    int x;\n}\n", analysis.Options{})
	res, err := fix.Apply(c.fs, c.diags, fix.ApplyOptions{Mode: fix.ApplyModeAll, DryRun: true})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(res.Applied) != 0 {
		t.Fatalf("member sort applied without heuristics: %+v", res.Applied)
	}
	if d := c.diags[0]; d.Severity != diag.SevInfo || len(d.Notes) != 1 {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
}

func TestEnumMembersAreNotSorted(t *testing.T) {
	c := check(t, "enum E\n{\n    B,\n    A,\n}\n", analysis.Options{})
	if len(c.diags) != 0 {
		t.Fatalf("unexpected diagnostics %+v", c.diags)
	}
}

func TestUnknownModifiersDecline(t *testing.T) {
	// required is not one of the ordered modifiers - the list is left alone
	c := check(t, "class C\n{\n    required static public int X { get; set; }\n}\n", analysis.Options{})
	if len(c.diags) != 0 {
		t.Fatalf("unexpected diagnostics %+v", c.diags)
	}
}

func TestPartialMethodKeepsImplicitAccessibility(t *testing.T) {
	c := check(t, "public partial class C\n{\n    partial void M();\n}\n", analysis.Options{ExplicitAccessibility: true})
	if len(c.diags) != 0 {
		t.Fatalf("unexpected diagnostics %+v", c.diags)
	}
}

func TestExplicitAccessibilityIsOptIn(t *testing.T) {
	c := check(t, "class C\n{\n    int x;\n}\n", analysis.Options{})
	if len(c.diags) != 0 {
		t.Fatalf("unexpected diagnostics %+v", c.diags)
	}
}

func TestDisabledRules(t *testing.T) {
	src := "class C\n{\n    void M() { }\n    static public int x;\n}\n"
	c := check(t, src, analysis.Options{})
	if got := c.codes(); len(got) != 2 {
		t.Fatalf("codes = %v", got)
	}
	c = check(t, src, analysis.Options{Disabled: []diag.Code{diag.StyMemberOrder}})
	if got := c.codes(); !slices.Equal(got, []diag.Code{diag.StyModifierOrder}) {
		t.Fatalf("codes = %v", got)
	}
}

func TestNestedDeclarationsAreChecked(t *testing.T) {
	src := "class C\n{\n    void M()\n    {\n        unsafe static void L() { }\n    }\n}\n"
	c := check(t, src, analysis.Options{})
	if got := c.codes(); !slices.Equal(got, []diag.Code{diag.StyModifierOrder}) {
		t.Fatalf("codes = %v", got)
	}
	want := "class C\n{\n    void M()\n    {\n        static unsafe void L() { }\n    }\n}\n"
	if got := c.fixed(t, false); got != want {
		t.Fatalf("fixed:\n%s\nwant:\n%s", got, want)
	}
}

func TestCheckHonoursCancellation(t *testing.T) {
	fs := source.NewFileSet()
	res, err := csharp.ParseSource(context.Background(), fs, "a.cs", []byte("class A { }\nclass B { }\n"), csharp.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = analysis.Check(ctx, fs.Get(res.File.ID), res.File, analysis.Options{}, diag.BagReporter{Bag: diag.NewBag(8)})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestLookupRule(t *testing.T) {
	for _, s := range []string{"STY3004", "sty3004", "member-order", " Member-Order "} {
		r, ok := analysis.LookupRule(s)
		if !ok || r.Code != diag.StyMemberOrder {
			t.Fatalf("LookupRule(%q) = %+v, %v", s, r, ok)
		}
	}
	if _, ok := analysis.LookupRule("nope"); ok {
		t.Fatalf("unknown rule resolved")
	}
	if len(analysis.Rules()) != 4 {
		t.Fatalf("expected 4 rules")
	}
}
