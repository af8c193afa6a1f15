package access

import (
	"declfix/internal/modifier"
	"declfix/internal/syntax"
)

// Info is the result of classifying a modifier list. Primary is the index of
// the first accessibility keyword (-1 when NotApplicable); Secondary is the
// index of the second keyword of a compound level, or -1.
type Info struct {
	Accessibility Accessibility
	Primary       int
	Secondary     int
	Modifiers     syntax.ModifierList
}

// Indexes returns the token indexes holding the accessibility keywords in
// ascending order.
func (i Info) Indexes() []int {
	switch {
	case i.Primary < 0:
		return nil
	case i.Secondary < 0:
		return []int{i.Primary}
	case i.Secondary < i.Primary:
		return []int{i.Secondary, i.Primary}
	default:
		return []int{i.Primary, i.Secondary}
	}
}

// Classify scans the list left to right. public and private stand alone
// unless private is followed by protected; internal pairs with a later
// protected; protected pairs with a later internal or private. Word order of
// the pairs does not matter.
func Classify(list syntax.ModifierList) Info {
	info := Info{Accessibility: NotApplicable, Primary: -1, Secondary: -1, Modifiers: list}
	for i := range list.Len() {
		k, ok := list.Kind(i)
		if !ok {
			continue
		}
		switch k {
		case modifier.Public:
			info.Accessibility, info.Primary = Public, i
			return info
		case modifier.Private:
			info.Primary = i
			if j := indexAfter(list, i, modifier.Protected); j >= 0 {
				info.Accessibility, info.Secondary = ProtectedAndInternal, j
			} else {
				info.Accessibility = Private
			}
			return info
		case modifier.Internal:
			info.Primary = i
			if j := indexAfter(list, i, modifier.Protected); j >= 0 {
				info.Accessibility, info.Secondary = ProtectedOrInternal, j
			} else {
				info.Accessibility = Internal
			}
			return info
		case modifier.Protected:
			info.Primary = i
			if j := indexAfter(list, i, modifier.Internal); j >= 0 {
				info.Accessibility, info.Secondary = ProtectedOrInternal, j
			} else if j := indexAfter(list, i, modifier.Private); j >= 0 {
				info.Accessibility, info.Secondary = ProtectedAndInternal, j
			} else {
				info.Accessibility = Protected
			}
			return info
		}
	}
	return info
}

func indexAfter(list syntax.ModifierList, from int, k modifier.Kind) int {
	for j := from + 1; j < list.Len(); j++ {
		if kj, ok := list.Kind(j); ok && kj == k {
			return j
		}
	}
	return -1
}

// Of classifies a declaration; non-modifiable declarations are NotApplicable.
func Of(d syntax.Decl) Info {
	m, ok := d.(syntax.Modifiable)
	if !ok {
		return Info{Accessibility: NotApplicable, Primary: -1, Secondary: -1}
	}
	return Classify(m.Modifiers())
}
