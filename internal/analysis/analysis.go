// Package analysis runs the style rules over a parsed file and reports
// diagnostics with fixes attached.
package analysis

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"declfix/internal/diag"
	"declfix/internal/members"
	"declfix/internal/modifier"
	"declfix/internal/source"
	"declfix/internal/syntax"
)

type Options struct {
	// Modifiers orders declaration modifiers; nil means modifier.Default.
	Modifiers   modifier.Comparer
	MemberOrder members.Mode
	MemberNames members.Names
	// ExplicitAccessibility turns on STY3003.
	ExplicitAccessibility bool
	Disabled              []diag.Code
}

// Rule is one style check.
type Rule struct {
	Code diag.Code
	Name string
	// Nested rules also run over accessors, parameters and locals.
	Nested bool
	check  func(p *pass, d, parent syntax.Decl)
}

var rules = []Rule{
	{Code: diag.StyModifierOrder, Name: "modifier-order", Nested: true, check: checkModifierOrder},
	{Code: diag.StyAccessibilityPair, Name: "accessibility-pair", Nested: true, check: checkAccessibilityPair},
	{Code: diag.StyMissingAccessibility, Name: "explicit-accessibility", check: checkMissingAccessibility},
	{Code: diag.StyMemberOrder, Name: "member-order", check: checkMemberOrder},
}

// Rules lists every rule in code order.
func Rules() []Rule {
	return slices.Clone(rules)
}

// LookupRule finds a rule by code ("STY3001") or name ("modifier-order").
func LookupRule(s string) (Rule, bool) {
	s = strings.TrimSpace(s)
	for _, r := range rules {
		if strings.EqualFold(r.Name, s) {
			return r, true
		}
	}
	if code, ok := diag.ParseCode(s); ok {
		for _, r := range rules {
			if r.Code == code {
				return r, true
			}
		}
	}
	return Rule{}, false
}

type pass struct {
	file    *source.File
	opts    Options
	rep     diag.Reporter
	members *members.Comparer
}

func (p *pass) comparer(d syntax.Decl) modifier.Comparer {
	return p.opts.Comparer(d)
}

// Comparer returns the modifier order used for d: parameters have their own
// scope, everything else follows o.Modifiers.
func (o Options) Comparer(d syntax.Decl) modifier.Comparer {
	if d.Kind() == syntax.Parameter {
		return modifier.Parameters
	}
	if o.Modifiers != nil {
		return o.Modifiers
	}
	return modifier.Default
}

func (o Options) enabled() []Rule {
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if slices.Contains(o.Disabled, r.Code) {
			continue
		}
		if r.Code == diag.StyMissingAccessibility && !o.ExplicitAccessibility {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Check runs the enabled rules over f. Cancellation is checked between
// top-level declarations; the partial results stay reported.
func Check(ctx context.Context, src *source.File, f *syntax.File, opts Options, rep diag.Reporter) error {
	if src == nil || f == nil {
		return fmt.Errorf("analysis: nil file")
	}
	p := &pass{
		file:    src,
		opts:    opts,
		rep:     rep,
		members: members.NewComparer(opts.MemberOrder, opts.MemberNames),
	}
	enabled := opts.enabled()
	for _, top := range f.Decls {
		if err := ctx.Err(); err != nil {
			return err
		}
		syntax.Walk([]syntax.Decl{top}, nil, func(d, parent syntax.Decl) bool {
			for _, r := range enabled {
				r.check(p, d, parent)
			}
			return true
		})
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, d := range f.Nested {
		for _, r := range enabled {
			if r.Nested {
				r.check(p, d, nil)
			}
		}
	}
	return nil
}

func describe(d syntax.Decl) string {
	if n, ok := d.(syntax.Named); ok && n.Name() != "" {
		return fmt.Sprintf("%s %q", d.Kind(), n.Name())
	}
	return d.Kind().String()
}

// nameSpan points at the identifier when there is one, else at the first
// head token.
func nameSpan(d syntax.Decl) source.Span {
	head := d.Head()
	if n, ok := d.(syntax.Named); ok && n.Name() != "" {
		for _, t := range head {
			if t.IsIdent() && strings.TrimPrefix(t.Text, "@") == strings.TrimPrefix(n.Name(), "@") {
				return t.Span
			}
		}
	}
	if len(head) > 0 {
		return head[0].Span
	}
	return d.Span()
}
