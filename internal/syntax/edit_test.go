package syntax_test

import (
	"testing"

	"declfix/internal/modifier"
	"declfix/internal/syntax"
	"declfix/internal/testkit"
	"declfix/internal/token"
)

func apply(src string, d, updated syntax.Decl) (string, bool) {
	sp, text, ok := syntax.Edit(d, updated)
	if !ok {
		return src, false
	}
	return src[:sp.Start] + text + src[sp.End:], true
}

func TestEditReplacesOnlyChangedTokens(t *testing.T) {
	src := "/// doc\npublic static int x; // keep\n"
	d := testkit.Decl(t, syntax.Field, src).(syntax.Modifiable)

	mods := d.Modifiers()
	swapped := mods.Replace(0, syntax.NewModifierToken(modifier.Private).
		WithLeading(mods.At(0).Leading).WithTrailing(mods.At(0).Trailing))
	updated := d.WithModifiers(swapped)

	sp, text, ok := syntax.Edit(d, updated)
	if !ok {
		t.Fatalf("expected an edit")
	}
	if text != "/// doc\nprivate " || sp.Start != 0 || sp.End != 15 {
		t.Fatalf("edit = %v %q", sp, text)
	}
	got, _ := apply(src, d, updated)
	if got != "/// doc\nprivate static int x; // keep\n" {
		t.Fatalf("result = %q", got)
	}
}

func TestEditPureInsertion(t *testing.T) {
	src := "public int x;"
	d := testkit.Decl(t, syntax.Field, src).(syntax.Modifiable)
	st := syntax.NewModifierToken(modifier.Static).WithTrailing(token.Space())
	updated := d.WithModifiers(d.Modifiers().Insert(1, st))

	sp, text, ok := syntax.Edit(d, updated)
	if !ok || !sp.Empty() || sp.Start != 7 || text != "static " {
		t.Fatalf("edit = %v %q %v", sp, text, ok)
	}
	if got, _ := apply(src, d, updated); got != "public static int x;" {
		t.Fatalf("result = %q", got)
	}
}

func TestEditNoChange(t *testing.T) {
	d := testkit.Decl(t, syntax.Method, "void M() {}")
	if _, _, ok := syntax.Edit(d, d); ok {
		t.Fatalf("identical declarations must not produce an edit")
	}
}

func TestEditRemoval(t *testing.T) {
	src := "    protected internal void M() {}"
	d := testkit.Decl(t, syntax.Method, src).(syntax.Modifiable)
	mods := d.Modifiers()
	// убираем protected и переносим его leading trivia на internal
	keep := mods.At(1).WithLeading(mods.At(0).Leading)
	updated := d.WithModifiers(syntax.NewModifierList(keep))
	if got, _ := apply(src, d, updated); got != "    internal void M() {}" {
		t.Fatalf("result = %q", got)
	}
}
