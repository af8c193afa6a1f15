package syntax

import (
	"declfix/internal/source"
	"declfix/internal/token"
)

// File is the declaration view of one source file.
type File struct {
	ID source.FileID
	// Decls are the top-level member declarations in source order.
	Decls []Decl
	// Nested are declarations found inside member bodies and signatures:
	// accessors, parameters, local declarations and local functions. Their
	// tokens are also part of the enclosing member.
	Nested []Decl
	// Tokens is the complete token stream, EOF included.
	Tokens []token.Token
}

// Walk visits decls depth-first. parent is nil for the top level. Returning
// false from fn skips the members of d.
func Walk(decls []Decl, parent Decl, fn func(d, parent Decl) bool) {
	for _, d := range decls {
		if !fn(d, parent) {
			continue
		}
		if c, ok := d.(Container); ok {
			Walk(c.Members(), d, fn)
		}
	}
}

// Replace returns decls with the first occurrence of old (by identity,
// searched depth-first) replaced by updated. found is false when old is not
// in the tree.
func Replace(decls []Decl, old, updated Decl) (out []Decl, found bool) {
	for i, d := range decls {
		if d == old {
			out = append(append(make([]Decl, 0, len(decls)), decls[:i]...), updated)
			return append(out, decls[i+1:]...), true
		}
		c, ok := d.(Container)
		if !ok {
			continue
		}
		members, ok := Replace(c.Members(), old, updated)
		if ok {
			out = append(make([]Decl, 0, len(decls)), decls...)
			out[i] = c.WithMembers(members)
			return out, true
		}
	}
	return decls, false
}
