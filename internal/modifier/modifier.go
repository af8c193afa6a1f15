package modifier

import (
	"fmt"

	"declfix/internal/token"
)

// Kind identifies one recognised modifier keyword.
type Kind uint8

const (
	New Kind = iota
	Public
	Protected
	Internal
	Private
	Const
	Static
	Virtual
	Sealed
	Override
	Abstract
	ReadOnly
	Extern
	Unsafe
	Volatile
	Async
	Partial
	Ref
	Out
	In
	Params

	kindCount
)

// Scope separates declaration modifiers from parameter modifiers; ranks are
// only comparable inside one scope.
type Scope uint8

const (
	ScopeDeclaration Scope = iota
	ScopeParameter
)

type entry struct {
	text  string
	tok   token.Kind
	rank  int
	scope Scope
}

var catalog = [kindCount]entry{
	New:       {"new", token.KwNew, 0, ScopeDeclaration},
	Public:    {"public", token.KwPublic, 1, ScopeDeclaration},
	Protected: {"protected", token.KwProtected, 1, ScopeDeclaration},
	Internal:  {"internal", token.KwInternal, 1, ScopeDeclaration},
	Private:   {"private", token.KwPrivate, 1, ScopeDeclaration},
	Const:     {"const", token.KwConst, 2, ScopeDeclaration},
	Static:    {"static", token.KwStatic, 3, ScopeDeclaration},
	Virtual:   {"virtual", token.KwVirtual, 4, ScopeDeclaration},
	Sealed:    {"sealed", token.KwSealed, 4, ScopeDeclaration},
	Override:  {"override", token.KwOverride, 4, ScopeDeclaration},
	Abstract:  {"abstract", token.KwAbstract, 4, ScopeDeclaration},
	ReadOnly:  {"readonly", token.KwReadonly, 5, ScopeDeclaration},
	Extern:    {"extern", token.KwExtern, 6, ScopeDeclaration},
	Unsafe:    {"unsafe", token.KwUnsafe, 7, ScopeDeclaration},
	Volatile:  {"volatile", token.KwVolatile, 8, ScopeDeclaration},
	Async:     {"async", token.KwAsync, 9, ScopeDeclaration},
	Partial:   {"partial", token.KwPartial, 10, ScopeDeclaration},
	Ref:       {"ref", token.KwRef, 0, ScopeParameter},
	Out:       {"out", token.KwOut, 0, ScopeParameter},
	In:        {"in", token.KwIn, 0, ScopeParameter},
	Params:    {"params", token.KwParams, 1, ScopeParameter},
}

// reverse indexes, built once from catalog
var (
	byText  = make(map[string]Kind, kindCount)
	byToken = make(map[token.Kind]Kind, kindCount)
	// scopeSize[s] is the number of distinct ranks in scope s
	scopeSize [2]int
)

func init() {
	for k := range kindCount {
		e := catalog[k]
		byText[e.text] = k
		byToken[e.tok] = k
		scopeSize[e.scope] = max(scopeSize[e.scope], e.rank+1)
	}
}

func (k Kind) valid() bool { return k < kindCount }

func (k Kind) mustEntry() entry {
	if !k.valid() {
		panic(fmt.Errorf("modifier: unknown kind %d", k))
	}
	return catalog[k]
}

// Rank returns the canonical rank of k inside its scope.
func Rank(k Kind) int { return k.mustEntry().rank }

// Name returns the keyword text of k. Unknown kinds panic.
func Name(k Kind) string { return k.mustEntry().text }

func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("modifier(%d)", k)
	}
	return catalog[k].text
}

// Scope returns the ordering scope of k.
func (k Kind) Scope() Scope { return k.mustEntry().scope }

// Token returns the lexical kind of the keyword.
func (k Kind) Token() token.Kind { return k.mustEntry().tok }

// IsAccessibility reports whether k is one of public, protected, internal, private.
func (k Kind) IsAccessibility() bool {
	switch k {
	case Public, Protected, Internal, Private:
		return true
	default:
		return false
	}
}

// IsParameter reports whether k belongs to the parameter scope.
func (k Kind) IsParameter() bool {
	return k.valid() && catalog[k].scope == ScopeParameter
}

// Lookup maps keyword text to its Kind.
func Lookup(text string) (Kind, bool) {
	k, ok := byText[text]
	return k, ok
}

// FromToken maps a lexical token kind to its modifier Kind.
func FromToken(tk token.Kind) (Kind, bool) {
	k, ok := byToken[tk]
	return k, ok
}

// All returns every modifier kind in declaration order.
func All() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := range kindCount {
		out = append(out, k)
	}
	return out
}
