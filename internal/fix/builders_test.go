package fix

import (
	"testing"

	"declfix/internal/diag"
	"declfix/internal/source"
	"declfix/internal/syntax"
	"declfix/internal/token"
)

// TestWithRequiresAll проверяет, что опция WithRequiresAll устанавливает флаг
func TestWithRequiresAll(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.cs", []byte("int x;"))

	span := source.Span{File: fileID, Start: 0, End: 0}
	fix := InsertText("Test fix", span, "static ", "", WithRequiresAll())
	if !fix.RequiresAll {
		t.Error("expected RequiresAll to be true")
	}
}

func TestDeleteAndReplace(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.cs", []byte("public static int x;"))

	del := DeleteSpan("Remove static", source.Span{File: fileID, Start: 7, End: 14}, "static ")
	if len(del.Edits) != 1 || del.Edits[0].NewText != "" || del.Edits[0].OldText != "static " {
		t.Fatalf("unexpected delete edit %+v", del.Edits)
	}

	rep := ReplaceSpan("Make private", source.Span{File: fileID, Start: 0, End: 6}, "private", "public")
	if rep.Edits[0].NewText != "private" || rep.Edits[0].OldText != "public" {
		t.Fatalf("unexpected replace edit %+v", rep.Edits[0])
	}
	if rep.Kind != diag.FixKindQuickFix || rep.Applicability != diag.FixApplicabilityAlwaysSafe {
		t.Fatalf("unexpected defaults: %s %s", rep.Kind, rep.Applicability)
	}
}

// TestMultipleOptions проверяет комбинацию нескольких опций
func TestMultipleOptions(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.cs", []byte("int x;"))

	fix := InsertText(
		"Test fix",
		source.Span{File: fileID},
		"private ",
		"",
		WithID("custom-id"),
		WithKind(diag.FixKindRefactorRewrite),
		WithApplicability(diag.FixApplicabilitySafeWithHeuristics),
		Preferred(),
		nil,
	)
	if fix.ID != "custom-id" || fix.Kind != diag.FixKindRefactorRewrite ||
		fix.Applicability != diag.FixApplicabilitySafeWithHeuristics || !fix.IsPreferred {
		t.Fatalf("options not applied: %+v", fix)
	}
}

// lexed builds a field declaration by hand from the tokens of "public int x;".
func lexed(fileID source.FileID) *syntax.MemberDecl {
	sp := func(a, b uint32) source.Span { return source.Span{File: fileID, Start: a, End: b} }
	space := func(a uint32) token.TriviaList {
		return token.TriviaList{{Kind: token.TriviaSpace, Span: sp(a, a+1), Text: " "}}
	}
	return syntax.NewField(syntax.Parts{
		Mods: []token.Token{{Kind: token.KwPublic, Span: sp(0, 6), Text: "public", Trailing: space(6)}},
		Head: []token.Token{
			{Kind: token.Ident, Span: sp(7, 10), Text: "int", Trailing: space(10)},
			{Kind: token.Ident, Span: sp(11, 12), Text: "x"},
			{Kind: token.Semicolon, Span: sp(12, 13), Text: ";"},
		},
		Name: "x",
	})
}

func TestFromDecl(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.cs", []byte("public int x;"))
	old := lexed(fileID)

	mods := old.Modifiers()
	if _, ok := FromDecl("noop", fs.Get(fileID), old, old); ok {
		t.Fatalf("identical declarations must not produce a fix")
	}

	fix, ok := FromDecl("Make private", fs.Get(fileID), old, old.WithModifiers(mods.Replace(0,
		token.New(token.KwPrivate, "private").WithTrailing(mods.At(0).Trailing))))
	if !ok {
		t.Fatalf("expected a fix")
	}
	e := fix.Edits[0]
	if e.Span.Start != 0 || e.Span.End != 7 || e.NewText != "private " || e.OldText != "public " {
		t.Fatalf("unexpected edit %+v", e)
	}
}

func TestLazyResolves(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.cs", []byte("public int x;"))
	old := lexed(fileID)

	lazy := Lazy("Drop modifiers", fs.Get(fileID), func() (syntax.Decl, syntax.Decl) {
		return old, old.WithModifiers(syntax.ModifierList{})
	}, WithApplicability(diag.FixApplicabilitySafeWithHeuristics))
	if len(lazy.Edits) != 0 || lazy.Thunk == nil {
		t.Fatalf("lazy fix must defer its edits")
	}
	got, err := lazy.Resolve(diag.FixBuildContext{FileSet: fs})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Applicability != diag.FixApplicabilitySafeWithHeuristics || got.Thunk != nil {
		t.Fatalf("metadata lost: %+v", got)
	}
	if len(got.Edits) != 1 || got.Edits[0].NewText != "" || got.Edits[0].OldText != "public " {
		t.Fatalf("unexpected edits %+v", got.Edits)
	}

	empty := Lazy("Nothing", fs.Get(fileID), func() (syntax.Decl, syntax.Decl) { return old, old })
	if _, err := empty.Resolve(diag.FixBuildContext{FileSet: fs}); err == nil {
		t.Fatalf("expected error for a no-op lazy fix")
	}
}
