package access

import (
	"declfix/internal/modifier"
	"declfix/internal/syntax"
	"declfix/internal/token"
)

// Applicable reports whether d may spell an accessibility at all in the
// position given by parent (nil for file level).
func Applicable(d, parent syntax.Decl) bool {
	m, ok := d.(syntax.Modifiable)
	if !ok {
		return false
	}
	switch d.Kind() {
	case syntax.LocalDeclaration, syntax.LocalFunction, syntax.Parameter,
		syntax.Destructor, syntax.IncompleteMember:
		return false
	case syntax.Accessor:
		// уровень аксессора задаётся относительно владельца
		return true
	case syntax.Constructor:
		if m.Modifiers().Contains(modifier.Static) {
			return false
		}
	}
	if isExplicitImplementation(d) {
		return false
	}
	if topLevel(parent) {
		return typeLike(d.Kind())
	}
	switch parent.Kind() {
	case syntax.Interface, syntax.Enum:
		return false
	}
	return true
}

// Default is the accessibility d has when none is written.
func Default(d, parent syntax.Decl) Accessibility {
	if d.Kind() == syntax.Accessor || !Applicable(d, parent) {
		return NotApplicable
	}
	switch {
	case topLevel(parent):
		return Internal
	case d.Kind() == syntax.Operator || d.Kind() == syntax.ConversionOperator:
		return Public
	default:
		return Private
	}
}

// Allowed reports whether d may carry accessibility a in its position.
// NotApplicable (no keyword) is allowed wherever the language does not
// require an explicit keyword.
func Allowed(d, parent syntax.Decl, a Accessibility) bool {
	if _, ok := d.(syntax.Modifiable); !ok {
		return a == NotApplicable
	}
	opLike := d.Kind() == syntax.Operator || d.Kind() == syntax.ConversionOperator
	if a == NotApplicable {
		return !opLike
	}
	if !Applicable(d, parent) {
		return false
	}
	switch {
	case d.Kind() == syntax.Accessor:
		return a != Public
	case topLevel(parent):
		return a == Public || a == Internal
	case opLike:
		return a == Public
	case parent.Kind() == syntax.Struct:
		return a == Private || a == Internal || a == Public
	}
	return true
}

func topLevel(parent syntax.Decl) bool {
	return parent == nil || parent.Kind() == syntax.Namespace
}

func typeLike(k syntax.Kind) bool {
	return k.IsType() || k == syntax.Delegate
}

// isExplicitImplementation detects "void IFoo.Bar()" and "int IFoo.this[int i]":
// the member name (or this) directly follows a dot.
func isExplicitImplementation(d syntax.Decl) bool {
	switch d.Kind() {
	case syntax.Method, syntax.Property, syntax.Event, syntax.Indexer:
	default:
		return false
	}
	head := d.Head()
	nameIdx, depth := -1, 0
scan:
	for i, t := range head {
		switch t.Kind {
		case token.Lt:
			depth++
		case token.Gt:
			depth--
		case token.LParen, token.LBrace, token.FatArrow, token.Semicolon, token.Assign:
			break scan
		case token.LBracket:
			if i > 0 && head[i-1].Kind == token.KwThis {
				nameIdx = i - 1
			}
			break scan
		case token.Ident:
			if depth == 0 {
				nameIdx = i
			}
		}
	}
	return nameIdx > 0 && head[nameIdx-1].Kind == token.Dot
}
