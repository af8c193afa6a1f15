package driver

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"declfix/internal/access"
	"declfix/internal/csharp"
	"declfix/internal/diag"
	"declfix/internal/fix"
	"declfix/internal/members"
	"declfix/internal/rewrite"
	"declfix/internal/source"
	"declfix/internal/syntax"
	"declfix/internal/trace"
)

// ErrSyntax is returned when a refactoring target does not parse cleanly.
var ErrSyntax = errors.New("source has syntax errors")

// Target selects declarations by name and, optionally, by kind.
type Target struct {
	Name string
	// Kinds restricts matches; empty means any kind.
	Kinds []syntax.Kind
}

func (t Target) matches(d syntax.Decl) bool {
	n, ok := d.(syntax.Named)
	if !ok || n.Name() != t.Name {
		return false
	}
	return len(t.Kinds) == 0 || slices.Contains(t.Kinds, d.Kind())
}

type RefactorResult struct {
	FileSet *source.FileSet
	// Bag holds the parse diagnostics of the input.
	Bag   *diag.Bag
	Apply *fix.ApplyResult
	// Matched counts the declarations the refactoring looked at.
	Matched int
	// Rejected describes matched declarations that could not be rewritten.
	Rejected []string
}

// rewriteFunc returns the rewritten declaration, or d itself to leave it.
// A non-empty reject reason marks d as matched but not rewritable.
type rewriteFunc func(d, parent syntax.Decl) (updated syntax.Decl, matched bool, reject string)

// ChangeAccessibility sets accessibility a on every declaration in path that
// matches t.
func ChangeAccessibility(ctx context.Context, path string, t Target, a access.Accessibility, opts Options, apply fix.ApplyOptions) (*RefactorResult, error) {
	title := fmt.Sprintf("make %s %s", t.Name, a)
	return refactorFile(ctx, path, title, opts, apply, false, func(d, parent syntax.Decl) (syntax.Decl, bool, string) {
		if !t.matches(d) {
			return d, false, ""
		}
		if !rewrite.CanChangeAccessibility(d, parent, a) {
			return d, true, fmt.Sprintf("%s cannot be %s here", describe(d), a)
		}
		return rewrite.ChangeAccessibility(d, a, opts.Analysis.Comparer(d)), true, ""
	})
}

// SortMembers orders the members of every type and namespace in path.
// Nested containers are sorted together with their parent.
func SortMembers(ctx context.Context, path string, opts Options, apply fix.ApplyOptions) (*RefactorResult, error) {
	c := members.NewComparer(opts.Analysis.MemberOrder, opts.Analysis.MemberNames)
	var sortDeep func(d syntax.Decl) syntax.Decl
	sortDeep = func(d syntax.Decl) syntax.Decl {
		ct, ok := d.(syntax.Container)
		if !ok || d.Malformed() {
			return d
		}
		ms := ct.Members()
		changed := false
		for i, m := range ms {
			if s := sortDeep(m); s != m {
				ms[i] = s
				changed = true
			}
		}
		if changed {
			d = ct.WithMembers(ms)
		}
		if members.Sortable(d) && !slices.ContainsFunc(ms, syntax.Decl.Malformed) {
			d = c.SortContainer(d)
		}
		return d
	}
	return refactorFile(ctx, path, "sort members", opts, apply, false, func(d, parent syntax.Decl) (syntax.Decl, bool, string) {
		// только верхний уровень: вложенные контейнеры сортируются внутри sortDeep
		if parent != nil {
			return d, false, ""
		}
		if _, ok := d.(syntax.Container); !ok {
			return d, false, ""
		}
		return sortDeep(d), true, ""
	})
}

// OrderModifiers puts the modifiers of every declaration in path, nested
// ones included, into canonical order.
func OrderModifiers(ctx context.Context, path string, opts Options, apply fix.ApplyOptions) (*RefactorResult, error) {
	return refactorFile(ctx, path, "order modifiers", opts, apply, true, func(d, _ syntax.Decl) (syntax.Decl, bool, string) {
		m, ok := d.(syntax.Modifiable)
		if !ok || m.Modifiers().Len() < 2 {
			return d, false, ""
		}
		if d.Malformed() || !m.Modifiers().Known() {
			return d, true, describe(d) + " has modifiers that cannot be reordered"
		}
		c := opts.Analysis.Comparer(d)
		if rewrite.ModifiersOrdered(d, c) {
			return d, true, ""
		}
		return rewrite.OrderModifiers(d, c), true, ""
	})
}

func refactorFile(ctx context.Context, path, title string, opts Options, apply fix.ApplyOptions, nested bool, fn rewriteFunc) (*RefactorResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, title)
	defer span.End(path)

	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(id)
	parsed, err := csharp.ParseFile(ctx, file, csharp.Options{MaxErrors: opts.MaxDiagnostics})
	if err != nil {
		return nil, err
	}
	res := &RefactorResult{FileSet: fs, Bag: parsed.Bag}
	if parsed.Bag.HasErrors() {
		return res, fmt.Errorf("%s: %w", file.Path, ErrSyntax)
	}

	var fixes []diag.Fix
	visit := func(d, parent syntax.Decl) bool {
		updated, matched, reject := fn(d, parent)
		if !matched {
			return true
		}
		res.Matched++
		if reject != "" {
			res.Rejected = append(res.Rejected, reject)
			return true
		}
		if f, ok := fix.FromDecl(title, file, d, updated, fix.WithKind(diag.FixKindRefactor)); ok {
			fixes = append(fixes, f)
		}
		return true
	}
	syntax.Walk(parsed.File.Decls, nil, visit)
	if nested {
		for _, d := range parsed.File.Nested {
			visit(d, nil)
		}
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	if apply.Mode == fix.ApplyModeOnce {
		apply.Mode = fix.ApplyModeAll
	}
	// рефакторинг запрошен явно: эвристики разрешены
	apply.Heuristics = true
	res.Apply, err = fix.ApplyFixes(fs, fixes, apply)
	return res, err
}

func describe(d syntax.Decl) string {
	if n, ok := d.(syntax.Named); ok && n.Name() != "" {
		return fmt.Sprintf("%s %q", d.Kind(), n.Name())
	}
	return d.Kind().String()
}
