// Package syntax is the immutable declaration tree the rewrite engine works on.
//
// Every declaration is laid out as
//
//	attributes | modifiers | head tokens | member declarations | tail tokens
//
// and its full text is the concatenation of the full text (leading trivia,
// text, trailing trivia) of those tokens in that order. Nodes are never
// mutated: With* methods return a copy that shares every unchanged slice.
//
// Capabilities are expressed as interfaces. A declaration carries a modifier
// list if it implements Modifiable, has an identifier if it implements Named
// and owns member declarations if it implements Container. Which kinds get
// which capabilities is fixed by the shape table in kind.go.
package syntax
