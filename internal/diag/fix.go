package diag

import (
	"errors"
	"fmt"

	"declfix/internal/source"
)

// FixKind is a coarse classification of a fix.
type FixKind uint8

const (
	FixKindQuickFix FixKind = iota
	FixKindRefactor
	FixKindRefactorRewrite
	FixKindSourceAction
)

func (k FixKind) String() string {
	switch k {
	case FixKindQuickFix:
		return "quickfix"
	case FixKindRefactor:
		return "refactor"
	case FixKindRefactorRewrite:
		return "refactor.rewrite"
	case FixKindSourceAction:
		return "source"
	default:
		return "unknown"
	}
}

// FixApplicability is the confidence level of a fix.
type FixApplicability uint8

const (
	// FixApplicabilityAlwaysSafe fixes may be applied without review.
	FixApplicabilityAlwaysSafe FixApplicability = iota
	// FixApplicabilitySafeWithHeuristics fixes are believed correct but may move
	// text the user cares about (for example, reordering members).
	FixApplicabilitySafeWithHeuristics
	FixApplicabilityManualReview
)

func (a FixApplicability) String() string {
	switch a {
	case FixApplicabilityAlwaysSafe:
		return "always-safe"
	case FixApplicabilitySafeWithHeuristics:
		return "safe-with-heuristics"
	case FixApplicabilityManualReview:
		return "manual-review"
	default:
		return "unknown"
	}
}

// TextEdit replaces Span with NewText. OldText, when set, must match the
// current content of Span or the edit is rejected.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// FixBuildContext is handed to lazy fix builders.
type FixBuildContext struct {
	FileSet *source.FileSet
}

// FixThunk builds the edits of a fix on demand.
type FixThunk func(ctx FixBuildContext) (Fix, error)

type Fix struct {
	ID            string
	Title         string
	Kind          FixKind
	Applicability FixApplicability
	IsPreferred   bool
	// RequiresAll marks fixes that only make sense when applied together with
	// every other fix of the run.
	RequiresAll bool
	Edits       []TextEdit
	Thunk       FixThunk `msgpack:"-"`
}

var errNilFix = errors.New("nil fix")

// Resolve returns a fix with concrete edits, running the thunk when present.
// Metadata set on f wins over metadata returned by the thunk.
func (f *Fix) Resolve(ctx FixBuildContext) (Fix, error) {
	if f == nil {
		return Fix{}, errNilFix
	}
	if f.Thunk == nil {
		out := *f
		out.Edits = append([]TextEdit(nil), f.Edits...)
		return out, nil
	}
	built, err := f.Thunk(ctx)
	if err != nil {
		return Fix{}, fmt.Errorf("fix %q: %w", f.Title, err)
	}
	if f.ID != "" {
		built.ID = f.ID
	}
	if f.Title != "" {
		built.Title = f.Title
	}
	built.Kind = f.Kind
	built.Applicability = f.Applicability
	built.IsPreferred = built.IsPreferred || f.IsPreferred
	built.RequiresAll = built.RequiresAll || f.RequiresAll
	built.Thunk = nil
	return built, nil
}

// MaterializeFixes resolves every fix in order. The first failure aborts.
func MaterializeFixes(ctx FixBuildContext, fixes []*Fix) ([]Fix, error) {
	out := make([]Fix, 0, len(fixes))
	for _, f := range fixes {
		resolved, err := f.Resolve(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, resolved)
	}
	return out, nil
}
