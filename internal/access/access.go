// Package access derives a declaration's accessibility from its modifier list
// and knows which accessibility levels a declaration may legally carry.
package access

import (
	"fmt"
	"strings"

	"declfix/internal/modifier"
)

type Accessibility uint8

const (
	NotApplicable Accessibility = iota
	Private
	Protected
	Internal
	// ProtectedOrInternal is "protected internal".
	ProtectedOrInternal
	// ProtectedAndInternal is "private protected".
	ProtectedAndInternal
	Public
)

var names = [...]string{
	NotApplicable:        "not applicable",
	Private:              "private",
	Protected:            "protected",
	Internal:             "internal",
	ProtectedOrInternal:  "protected internal",
	ProtectedAndInternal: "private protected",
	Public:               "public",
}

// Name returns the user-facing label, e.g. "protected internal".
func Name(a Accessibility) string {
	if int(a) < len(names) {
		return names[a]
	}
	return fmt.Sprintf("accessibility(%d)", a)
}

func (a Accessibility) String() string { return Name(a) }

// Parse accepts the keyword spelling in either word order plus the enum names
// ("ProtectedOrInternal"), case-insensitively.
func Parse(s string) (Accessibility, error) {
	norm := strings.Join(strings.Fields(strings.ToLower(s)), " ")
	switch norm {
	case "private":
		return Private, nil
	case "protected":
		return Protected, nil
	case "internal":
		return Internal, nil
	case "public":
		return Public, nil
	case "protected internal", "internal protected", "protectedorinternal":
		return ProtectedOrInternal, nil
	case "private protected", "protected private", "protectedandinternal":
		return ProtectedAndInternal, nil
	case "none", "notapplicable", "not applicable":
		return NotApplicable, nil
	}
	return NotApplicable, fmt.Errorf("unknown accessibility %q", s)
}

// Kinds returns the keywords spelling a in canonical order.
func Kinds(a Accessibility) []modifier.Kind {
	switch a {
	case Private:
		return []modifier.Kind{modifier.Private}
	case Protected:
		return []modifier.Kind{modifier.Protected}
	case Internal:
		return []modifier.Kind{modifier.Internal}
	case Public:
		return []modifier.Kind{modifier.Public}
	case ProtectedOrInternal:
		return []modifier.Kind{modifier.Protected, modifier.Internal}
	case ProtectedAndInternal:
		return []modifier.Kind{modifier.Private, modifier.Protected}
	default:
		return nil
	}
}

// IsSingleToken reports whether a is spelled with exactly one keyword.
func IsSingleToken(a Accessibility) bool {
	return len(Kinds(a)) == 1
}

// All lists every concrete accessibility level, NotApplicable excluded.
func All() []Accessibility {
	return []Accessibility{Private, Protected, Internal, ProtectedOrInternal, ProtectedAndInternal, Public}
}
