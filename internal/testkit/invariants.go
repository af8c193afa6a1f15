package testkit

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"declfix/internal/source"
	"declfix/internal/syntax"
)

// CheckSpanInvariants runs the structural invariants of a parsed file:
// 1) the full text of the token stream reproduces the file content exactly
// 2) every declaration span is non-empty and within the content bounds
// 3) member full spans are contained in their parent and strictly ordered
// 4) nested declarations lie within the content bounds
func CheckSpanInvariants(f *syntax.File, sf *source.File) error {
	if f == nil || sf == nil {
		return fmt.Errorf("nil file")
	}

	var sb strings.Builder
	for _, t := range f.Tokens {
		t.WriteFull(&sb)
	}
	if sb.String() != string(sf.Content) {
		return fmt.Errorf("token stream does not reproduce the source (%d vs %d bytes)", sb.Len(), len(sf.Content))
	}

	limit, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	var walkErr error
	checkSpan := func(d syntax.Decl) error {
		sp := d.FullSpan()
		if sp.File != sf.ID {
			return fmt.Errorf("%s: span points to file %d, want %d", d.Kind(), sp.File, sf.ID)
		}
		if sp.Empty() || sp.End > limit {
			return fmt.Errorf("%s: bad span %v (content %d bytes)", d.Kind(), sp, limit)
		}
		return nil
	}

	var checkList func(decls []syntax.Decl, outer source.Span, hasOuter bool)
	checkList = func(decls []syntax.Decl, outer source.Span, hasOuter bool) {
		var prevEnd uint32
		for i, d := range decls {
			if walkErr != nil {
				return
			}
			if err := checkSpan(d); err != nil {
				walkErr = err
				return
			}
			sp := d.FullSpan()
			if hasOuter && (sp.Start < outer.Start || sp.End > outer.End) {
				walkErr = fmt.Errorf("%s %v escapes parent %v", d.Kind(), sp, outer)
				return
			}
			if i > 0 && sp.Start < prevEnd {
				walkErr = fmt.Errorf("%s %v overlaps previous sibling ending at %d", d.Kind(), sp, prevEnd)
				return
			}
			prevEnd = sp.End
			if c, ok := d.(syntax.Container); ok {
				checkList(c.Members(), sp, true)
			}
		}
	}
	checkList(f.Decls, source.Span{}, false)
	if walkErr != nil {
		return walkErr
	}

	for _, d := range f.Nested {
		if err := checkSpan(d); err != nil {
			return fmt.Errorf("nested: %w", err)
		}
	}
	return nil
}
