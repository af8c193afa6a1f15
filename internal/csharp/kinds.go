package csharp

import (
	"declfix/internal/modifier"
	"declfix/internal/syntax"
)

// memberKinds maps grammar node types to declaration kinds for nodes that
// take part in member lists.
var memberKinds = map[string]syntax.Kind{
	"class_declaration":                 syntax.Class,
	"struct_declaration":                syntax.Struct,
	"interface_declaration":             syntax.Interface,
	"record_declaration":                syntax.Record,
	"record_struct_declaration":         syntax.Struct,
	"enum_declaration":                  syntax.Enum,
	"delegate_declaration":              syntax.Delegate,
	"namespace_declaration":             syntax.Namespace,
	"file_scoped_namespace_declaration": syntax.Namespace,
	"method_declaration":                syntax.Method,
	"property_declaration":              syntax.Property,
	"indexer_declaration":               syntax.Indexer,
	"field_declaration":                 syntax.Field,
	"event_declaration":                 syntax.Event,
	"event_field_declaration":           syntax.EventField,
	"constructor_declaration":           syntax.Constructor,
	"destructor_declaration":            syntax.Destructor,
	"operator_declaration":              syntax.Operator,
	"conversion_operator_declaration":   syntax.ConversionOperator,
	"enum_member_declaration":           syntax.EnumMember,
}

// nestedKinds are declarations inside member signatures and bodies.
var nestedKinds = map[string]syntax.Kind{
	"accessor_declaration":        syntax.Accessor,
	"local_declaration_statement": syntax.LocalDeclaration,
	"local_function_statement":    syntax.LocalFunction,
	"parameter":                   syntax.Parameter,
}

// bodyTypes hold the member lists of containers.
var bodyTypes = map[string]bool{
	"declaration_list":             true,
	"enum_member_declaration_list": true,
}

var accessorWords = map[string]bool{
	"get": true, "set": true, "init": true, "add": true, "remove": true,
}

// modifierWord reports whether an anonymous grammar node is a modifier
// keyword. Older grammar revisions emit them without a wrapping node.
func modifierWord(typ string) bool {
	if _, ok := modifier.Lookup(typ); ok {
		return true
	}
	switch typ {
	case "required", "file", "fixed", "scoped", "this":
		return true
	}
	return false
}
