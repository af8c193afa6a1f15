package fix

import (
	"fmt"

	"declfix/internal/diag"
	"declfix/internal/source"
	"declfix/internal/syntax"
)

// Option mutates fix during construction.
type Option func(*diag.Fix)

// WithApplicability overrides applicability metadata.
func WithApplicability(app diag.FixApplicability) Option {
	return func(f *diag.Fix) {
		f.Applicability = app
	}
}

// WithKind overrides fix classification.
func WithKind(kind diag.FixKind) Option {
	return func(f *diag.Fix) {
		f.Kind = kind
	}
}

// Preferred marks fix as preferred suggestion.
func Preferred() Option {
	return func(f *diag.Fix) {
		f.IsPreferred = true
	}
}

// WithID sets stable identifier for fix.
func WithID(id string) Option {
	return func(f *diag.Fix) {
		f.ID = id
	}
}

// WithRequiresAll marks a fix that must not be applied on its own.
func WithRequiresAll() Option {
	return func(f *diag.Fix) {
		f.RequiresAll = true
	}
}

func applyOptions(f diag.Fix, opts []Option) diag.Fix {
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}
	return f
}

func single(title string, edit diag.TextEdit, opts []Option) diag.Fix {
	return applyOptions(diag.Fix{
		Title:         title,
		Kind:          diag.FixKindQuickFix,
		Applicability: diag.FixApplicabilityAlwaysSafe,
		Edits:         []diag.TextEdit{edit},
	}, opts)
}

// InsertText creates fix that inserts text at span (Span.Start == Span.End).
func InsertText(title string, at source.Span, text, guard string, opts ...Option) diag.Fix {
	return single(title, diag.TextEdit{Span: at, NewText: text, OldText: guard}, opts)
}

// DeleteSpan removes text covered by span.
func DeleteSpan(title string, span source.Span, expect string, opts ...Option) diag.Fix {
	return single(title, diag.TextEdit{Span: span, OldText: expect}, opts)
}

// ReplaceSpan replaces text covered by span with newText.
func ReplaceSpan(title string, span source.Span, newText, expect string, opts ...Option) diag.Fix {
	return single(title, diag.TextEdit{Span: span, NewText: newText, OldText: expect}, opts)
}

// FromDecl turns the difference between a parsed declaration and its
// rewritten version into a single guarded edit. ok is false when both
// versions render the same.
func FromDecl(title string, file *source.File, old, updated syntax.Decl, opts ...Option) (diag.Fix, bool) {
	sp, text, ok := syntax.Edit(old, updated)
	if !ok {
		return diag.Fix{}, false
	}
	var guard string
	if sp.End > sp.Start {
		guard = string(file.Content[sp.Start:sp.End])
	}
	return ReplaceSpan(title, sp, text, guard, opts...), true
}

// Lazy returns a fix whose edits are computed by build when the fix is
// materialized. Kind and applicability given through opts win over what
// build returns.
func Lazy(title string, file *source.File, build func() (old, updated syntax.Decl), opts ...Option) *diag.Fix {
	f := applyOptions(diag.Fix{
		Title:         title,
		Kind:          diag.FixKindQuickFix,
		Applicability: diag.FixApplicabilityAlwaysSafe,
	}, opts)
	f.Thunk = func(diag.FixBuildContext) (diag.Fix, error) {
		old, updated := build()
		out, ok := FromDecl(title, file, old, updated)
		if !ok {
			return diag.Fix{}, fmt.Errorf("%s: nothing to change", title)
		}
		return out, nil
	}
	return &f
}
