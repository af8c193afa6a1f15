package members

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"declfix/internal/syntax"
)

// Mode selects what Compare looks at.
type Mode uint8

const (
	ByKind Mode = iota
	ByKindThenName
)

func (m Mode) String() string {
	if m == ByKindThenName {
		return "kind-then-name"
	}
	return "kind"
}

// ParseMode accepts "kind" and "kind-then-name".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "kind":
		return ByKind, nil
	case "kind-then-name", "name":
		return ByKindThenName, nil
	}
	return ByKind, fmt.Errorf("unknown member order %q", s)
}

// Names selects how identifiers are compared in ByKindThenName mode.
type Names uint8

const (
	// Ordinal compares names byte by byte.
	Ordinal Names = iota
	// Collate uses English collation rules; results do not depend on the
	// process locale.
	Collate
)

func (n Names) String() string {
	if n == Collate {
		return "collate"
	}
	return "ordinal"
}

// ParseNames accepts "ordinal" and "collate".
func ParseNames(s string) (Names, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ordinal":
		return Ordinal, nil
	case "collate", "culture":
		return Collate, nil
	}
	return Ordinal, fmt.Errorf("unknown name comparison %q", s)
}

// Comparer orders member declarations by bucket and optionally by name.
// A Comparer using Collate keeps a collator and must not be shared between
// goroutines; build one per goroutine with NewComparer.
type Comparer struct {
	Mode  Mode
	Names Names

	coll *collate.Collator
}

func NewComparer(mode Mode, names Names) *Comparer {
	c := &Comparer{Mode: mode, Names: names}
	if names == Collate {
		c.coll = collate.New(language.English)
	}
	return c
}

// Compare returns -1, 0 or 1. Declarations without a meaningful name
// (destructors, indexers, operators, incomplete members) compare equal to
// their same-bucket siblings in every mode.
func (c *Comparer) Compare(x, y syntax.Decl) int {
	if r := cmp.Compare(Order(x), Order(y)); r != 0 || c.Mode == ByKind {
		return r
	}
	nx, okX := x.(syntax.Named)
	ny, okY := y.(syntax.Named)
	if !okX || !okY {
		return 0
	}
	return c.compareNames(nx.Name(), ny.Name())
}

func (c *Comparer) compareNames(a, b string) int {
	if c.Names == Ordinal {
		return strings.Compare(a, b)
	}
	if c.coll == nil {
		c.coll = collate.New(language.English)
	}
	if r := c.coll.CompareString(a, b); r != 0 {
		return r
	}
	// collation-equal names still get a fixed order
	return strings.Compare(a, b)
}

// IsListSorted reports whether no adjacent pair is out of order.
func (c *Comparer) IsListSorted(ms []syntax.Decl) bool {
	for i := 1; i < len(ms); i++ {
		if c.Compare(ms[i-1], ms[i]) > 0 {
			return false
		}
	}
	return true
}

// Sort returns a stably sorted copy of ms.
func (c *Comparer) Sort(ms []syntax.Decl) []syntax.Decl {
	out := slices.Clone(ms)
	slices.SortStableFunc(out, c.Compare)
	return out
}

// Sortable reports whether d owns a member list this package can order.
// Enum constants keep their declared order.
func Sortable(d syntax.Decl) bool {
	_, ok := d.(syntax.Container)
	return ok && d.Kind() != syntax.Enum
}

// SortContainer reorders the members of d. Members move together with their
// leading trivia (doc comments, attributes' indentation). A container whose
// members are already sorted is returned as is.
func (c *Comparer) SortContainer(d syntax.Decl) syntax.Decl {
	if !Sortable(d) {
		panic(fmt.Errorf("members: %s has no sortable member list", d.Kind()))
	}
	ct := d.(syntax.Container)
	ms := ct.Members()
	if c.IsListSorted(ms) {
		return d
	}
	return ct.WithMembers(c.Sort(ms))
}
