// Package members orders the member declarations of a type or namespace.
package members

import (
	"fmt"

	"declfix/internal/modifier"
	"declfix/internal/syntax"
)

// Buckets of the member ordering, ascending.
const (
	ConstField = iota
	Field
	Constructor
	Destructor
	Delegate
	Event
	EventField
	Property
	Indexer
	Method
	ConversionOperator
	Operator
	Enum
	Interface
	Struct
	Class
	Namespace
	Incomplete
)

var bucketOf = map[syntax.Kind]int{
	syntax.Field:              Field,
	syntax.Constructor:        Constructor,
	syntax.Destructor:         Destructor,
	syntax.Delegate:           Delegate,
	syntax.Event:              Event,
	syntax.EventField:         EventField,
	syntax.Property:           Property,
	syntax.Indexer:            Indexer,
	syntax.Method:             Method,
	syntax.ConversionOperator: ConversionOperator,
	syntax.Operator:           Operator,
	syntax.Enum:               Enum,
	syntax.Interface:          Interface,
	syntax.Struct:             Struct,
	syntax.Class:              Class,
	syntax.Record:             Class,
	syntax.Namespace:          Namespace,
	syntax.IncompleteMember:   Incomplete,
}

// Order returns the bucket of a member declaration. Const fields come before
// every other field. Declarations that never appear as members (accessors,
// locals, parameters, enum constants) panic.
func Order(d syntax.Decl) int {
	b, ok := bucketOf[d.Kind()]
	if !ok {
		panic(fmt.Errorf("members: %s is not a member declaration", d.Kind()))
	}
	if b == Field {
		if m, ok := d.(syntax.Modifiable); ok && m.Modifiers().Contains(modifier.Const) {
			return ConstField
		}
	}
	return b
}
