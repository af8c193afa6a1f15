package syntax

import "fmt"

// Kind discriminates declaration nodes.
type Kind uint8

const (
	Class Kind = iota
	Struct
	Interface
	Record
	Enum
	Delegate
	Namespace
	Method
	Property
	Indexer
	Field
	Event
	EventField
	Constructor
	Destructor
	Operator
	ConversionOperator
	Accessor
	LocalDeclaration
	LocalFunction
	Parameter
	EnumMember
	IncompleteMember

	kindCount
)

var kindNames = [kindCount]string{
	Class:              "class",
	Struct:             "struct",
	Interface:          "interface",
	Record:             "record",
	Enum:               "enum",
	Delegate:           "delegate",
	Namespace:          "namespace",
	Method:             "method",
	Property:           "property",
	Indexer:            "indexer",
	Field:              "field",
	Event:              "event",
	EventField:         "event-field",
	Constructor:        "constructor",
	Destructor:         "destructor",
	Operator:           "operator",
	ConversionOperator: "conversion-operator",
	Accessor:           "accessor",
	LocalDeclaration:   "local",
	LocalFunction:      "local-function",
	Parameter:          "parameter",
	EnumMember:         "enum-member",
	IncompleteMember:   "incomplete",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind maps the String form back to a Kind.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true // #nosec G115 -- k < kindCount
		}
	}
	return 0, false
}

// shape is the capability set shared by a group of kinds.
type shape uint8

const (
	shapeType       shape = iota // Modifiable, Named, Container
	shapeNamespace               // Named, Container
	shapeMember                  // Modifiable, Named
	shapeUnnamed                 // Modifiable
	shapeEnumMember              // Named
)

var shapes = [kindCount]shape{
	Class:              shapeType,
	Struct:             shapeType,
	Interface:          shapeType,
	Record:             shapeType,
	Enum:               shapeType,
	Namespace:          shapeNamespace,
	Delegate:           shapeMember,
	Method:             shapeMember,
	Property:           shapeMember,
	Field:              shapeMember,
	Event:              shapeMember,
	EventField:         shapeMember,
	Constructor:        shapeMember,
	Accessor:           shapeMember,
	LocalDeclaration:   shapeMember,
	LocalFunction:      shapeMember,
	Parameter:          shapeMember,
	Indexer:            shapeUnnamed,
	Destructor:         shapeUnnamed,
	Operator:           shapeUnnamed,
	ConversionOperator: shapeUnnamed,
	IncompleteMember:   shapeUnnamed,
	EnumMember:         shapeEnumMember,
}

// IsType reports whether k declares a type with a member list.
func (k Kind) IsType() bool {
	return k < kindCount && shapes[k] == shapeType
}

// IsMember reports whether k can appear in a type, namespace or file member list.
func (k Kind) IsMember() bool {
	switch k {
	case Accessor, LocalDeclaration, LocalFunction, Parameter, EnumMember:
		return false
	default:
		return k < kindCount
	}
}
