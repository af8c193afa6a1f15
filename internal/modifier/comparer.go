package modifier

import (
	"cmp"
	"slices"

	"declfix/internal/token"
)

// Comparer orders modifier kinds. Equal results mean co-equal rank; callers
// keep the existing relative order of such tokens.
type Comparer interface {
	Compare(a, b Kind) int
}

type rankComparer struct {
	primary Scope
}

var (
	// Default orders declaration modifiers first, then parameter modifiers.
	Default Comparer = rankComparer{primary: ScopeDeclaration}
	// Parameters orders parameter modifiers first (ref readonly, params ...).
	Parameters Comparer = rankComparer{primary: ScopeParameter}
)

func (c rankComparer) key(k Kind) int {
	e := k.mustEntry()
	if e.scope == c.primary {
		return e.rank
	}
	return scopeSize[c.primary] + e.rank
}

func (c rankComparer) Compare(a, b Kind) int {
	return cmp.Compare(c.key(a), c.key(b))
}

// CompareTokens compares two tokens of a modifier list. Tokens that are not
// modifier keywords sort after every modifier and are equal to each other.
func CompareTokens(c Comparer, a, b token.Token) int {
	ka, okA := FromToken(a.Kind)
	kb, okB := FromToken(b.Kind)
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	default:
		return c.Compare(ka, kb)
	}
}

// InsertionIndex returns the position at which a modifier of kind k keeps
// toks ordered: the first i whose token ranks strictly after k, or len(toks).
// Ties land after the existing equal-rank tokens, so re-deriving the index
// right after an insert points just past the inserted token.
func InsertionIndex(c Comparer, toks []token.Token, k Kind) int {
	candidate := token.Token{Kind: k.Token()}
	for i := range toks {
		if CompareTokens(c, toks[i], candidate) > 0 {
			return i
		}
	}
	return len(toks)
}

// IsSorted reports whether every adjacent pair is in non-decreasing order.
func IsSorted(c Comparer, toks []token.Token) bool {
	for i := 1; i < len(toks); i++ {
		if CompareTokens(c, toks[i-1], toks[i]) > 0 {
			return false
		}
	}
	return true
}

// SortedOrder returns the stable permutation that sorts toks: out[i] is the
// index in toks of the token that belongs at position i.
func SortedOrder(c Comparer, toks []token.Token) []int {
	order := make([]int, len(toks))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return CompareTokens(c, toks[a], toks[b])
	})
	return order
}
