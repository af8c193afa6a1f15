package syntax_test

import (
	"testing"

	"declfix/internal/modifier"
	"declfix/internal/syntax"
	"declfix/internal/testkit"
	"declfix/internal/token"
)

func TestCapabilitiesByKind(t *testing.T) {
	tests := []struct {
		kind                       syntax.Kind
		modifiable, named, members bool
	}{
		{syntax.Class, true, true, true},
		{syntax.Enum, true, true, true},
		{syntax.Namespace, false, true, true},
		{syntax.Method, true, true, false},
		{syntax.Parameter, true, true, false},
		{syntax.Destructor, true, false, false},
		{syntax.Indexer, true, false, false},
		{syntax.Operator, true, false, false},
		{syntax.ConversionOperator, true, false, false},
		{syntax.IncompleteMember, true, false, false},
		{syntax.EnumMember, false, true, false},
	}
	for _, tt := range tests {
		d := syntax.New(tt.kind, syntax.Parts{Name: "X"})
		_, isMod := d.(syntax.Modifiable)
		_, isNamed := d.(syntax.Named)
		_, isContainer := d.(syntax.Container)
		if isMod != tt.modifiable || isNamed != tt.named || isContainer != tt.members {
			t.Fatalf("%s: modifiable=%v named=%v container=%v", tt.kind, isMod, isNamed, isContainer)
		}
		if d.Kind() != tt.kind {
			t.Fatalf("Kind() = %s, want %s", d.Kind(), tt.kind)
		}
	}
}

func TestNewRejectsModifiersOnNamespace(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	syntax.New(syntax.Namespace, syntax.Parts{Mods: []token.Token{syntax.NewModifierToken(modifier.Public)}})
}

func TestWithModifiersIsPersistent(t *testing.T) {
	d := testkit.Decl(t, syntax.Field, "public static int x;").(syntax.Modifiable)
	before := syntax.FullText(d)

	mods := d.Modifiers().RemoveAt(0)
	updated := d.WithModifiers(mods).(syntax.Modifiable)

	if syntax.FullText(d) != before {
		t.Fatalf("original declaration changed: %q", syntax.FullText(d))
	}
	if updated.Modifiers().Len() != 1 || d.Modifiers().Len() != 2 {
		t.Fatalf("unexpected modifier counts: %d / %d", updated.Modifiers().Len(), d.Modifiers().Len())
	}
	if updated.(syntax.Named).Name() != "x" {
		t.Fatalf("name lost in copy")
	}
}

func TestModifierListOperations(t *testing.T) {
	pub := syntax.NewModifierToken(modifier.Public)
	st := syntax.NewModifierToken(modifier.Static)
	ro := syntax.NewModifierToken(modifier.ReadOnly)

	l := syntax.NewModifierList(pub, ro)
	l2 := l.Insert(1, st)
	if l.Len() != 2 || l2.String() != "public static readonly" {
		t.Fatalf("Insert: %q / %q", l.String(), l2.String())
	}
	if l2.IndexOf(modifier.ReadOnly) != 2 || l2.Contains(modifier.Const) {
		t.Fatalf("IndexOf/Contains mismatch")
	}
	l3 := l2.Replace(0, syntax.NewModifierToken(modifier.Private)).RemoveAt(2)
	if l3.String() != "private static" || l2.String() != "public static readonly" {
		t.Fatalf("Replace/RemoveAt: %q / %q", l3.String(), l2.String())
	}
	if got := l3.Kinds(); len(got) != 2 || got[0] != modifier.Private || got[1] != modifier.Static {
		t.Fatalf("Kinds = %v", got)
	}
	if !l3.Known() || l3.Insert(0, token.New(token.Ident, "scoped")).Known() {
		t.Fatalf("Known mismatch")
	}
}

func TestSpansAndText(t *testing.T) {
	src := "  /// doc\n  [Obsolete] public void M() { } // tail\n"
	d := testkit.Decl(t, syntax.Method, src)
	if got := syntax.FullText(d); got != src {
		t.Fatalf("FullText = %q", got)
	}
	if got := syntax.Text(d); got != "[Obsolete] public void M() { }" {
		t.Fatalf("Text = %q", got)
	}
	if got := syntax.LeadingTrivia(d).Text(); got != "  /// doc\n  " {
		t.Fatalf("LeadingTrivia = %q", got)
	}
	if sp := d.Span(); sp.Start != 12 || int(sp.End) != len(src)-len(" // tail\n") {
		t.Fatalf("Span = %v", sp)
	}
	if sp := d.FullSpan(); sp.Start != 0 || int(sp.End) != len(src) {
		t.Fatalf("FullSpan = %v", sp)
	}
	if len(d.Attributes()) != 3 {
		t.Fatalf("expected [Obsolete] as attributes, got %d tokens", len(d.Attributes()))
	}
}

func TestWalkAndReplace(t *testing.T) {
	f := syntax.NewField(syntax.Parts{Name: "f"})
	m := syntax.NewMethod(syntax.Parts{Name: "m"})
	inner := syntax.NewClass(syntax.Parts{Name: "Inner", Members: []syntax.Decl{m}})
	outer := syntax.NewClass(syntax.Parts{Name: "Outer", Members: []syntax.Decl{f, inner}})

	var visited []string
	syntax.Walk([]syntax.Decl{outer}, nil, func(d, parent syntax.Decl) bool {
		name := d.(syntax.Named).Name()
		if parent != nil {
			name = parent.(syntax.Named).Name() + "." + name
		}
		visited = append(visited, name)
		return true
	})
	want := []string{"Outer", "Outer.f", "Outer.Inner", "Inner.m"}
	if len(visited) != len(want) {
		t.Fatalf("visited %v", visited)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("visited %v, want %v", visited, want)
		}
	}

	m2 := syntax.NewMethod(syntax.Parts{Name: "m2"})
	out, ok := syntax.Replace([]syntax.Decl{outer}, m, m2)
	if !ok {
		t.Fatalf("Replace did not find nested method")
	}
	newInner := out[0].(syntax.Container).Members()[1].(syntax.Container)
	if newInner.Members()[0].(syntax.Named).Name() != "m2" {
		t.Fatalf("replacement not applied")
	}
	if inner.Members()[0] != syntax.Decl(m) {
		t.Fatalf("original tree mutated")
	}
}
