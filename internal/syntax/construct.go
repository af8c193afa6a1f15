package syntax

import (
	"fmt"
	"slices"

	"declfix/internal/token"
)

// Parts are the pieces a front-end (or a test) assembles a declaration from.
type Parts struct {
	Attrs     []token.Token
	Mods      []token.Token
	Head      []token.Token
	Members   []Decl
	Tail      []token.Token
	Name      string
	Malformed bool
}

// New builds a declaration of kind k. Modifiers on a kind that cannot carry
// them, or members on a kind that cannot own them, are programming errors.
func New(k Kind, p Parts) Decl {
	if k >= kindCount {
		panic(fmt.Errorf("syntax: unknown kind %d", k))
	}
	n := node{
		kind:      k,
		attrs:     slices.Clone(p.Attrs),
		mods:      NewModifierList(p.Mods...),
		head:      slices.Clone(p.Head),
		members:   slices.Clone(p.Members),
		tail:      slices.Clone(p.Tail),
		name:      p.Name,
		malformed: p.Malformed,
	}
	sh := shapes[k]
	if len(p.Mods) > 0 && (sh == shapeNamespace || sh == shapeEnumMember) {
		panic(fmt.Errorf("syntax: %s cannot carry modifiers", k))
	}
	if len(p.Members) > 0 && sh != shapeType && sh != shapeNamespace {
		panic(fmt.Errorf("syntax: %s cannot own members", k))
	}
	switch sh {
	case shapeType:
		return &TypeDecl{n}
	case shapeNamespace:
		return &NamespaceDecl{n}
	case shapeMember:
		return &MemberDecl{n}
	case shapeUnnamed:
		n.name = ""
		return &UnnamedDecl{n}
	default:
		return &EnumMemberDecl{n}
	}
}

func NewClass(p Parts) *TypeDecl { return New(Class, p).(*TypeDecl) }
func NewStruct(p Parts) *TypeDecl { return New(Struct, p).(*TypeDecl) }
func NewInterface(p Parts) *TypeDecl { return New(Interface, p).(*TypeDecl) }
func NewRecord(p Parts) *TypeDecl { return New(Record, p).(*TypeDecl) }
func NewEnum(p Parts) *TypeDecl { return New(Enum, p).(*TypeDecl) }
func NewNamespace(p Parts) *NamespaceDecl { return New(Namespace, p).(*NamespaceDecl) }
func NewMethod(p Parts) *MemberDecl { return New(Method, p).(*MemberDecl) }
func NewProperty(p Parts) *MemberDecl { return New(Property, p).(*MemberDecl) }
func NewField(p Parts) *MemberDecl { return New(Field, p).(*MemberDecl) }
func NewConstructor(p Parts) *MemberDecl { return New(Constructor, p).(*MemberDecl) }
func NewIncomplete(p Parts) *UnnamedDecl { return New(IncompleteMember, p).(*UnnamedDecl) }
