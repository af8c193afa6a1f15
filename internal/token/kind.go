package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token (including @verbatim identifiers).
	Ident

	// modifier keywords
	KwNew       // new
	KwPublic    // public
	KwProtected // protected
	KwInternal  // internal
	KwPrivate   // private
	KwConst     // const
	KwStatic    // static
	KwVirtual   // virtual
	KwSealed    // sealed
	KwOverride  // override
	KwAbstract  // abstract
	KwReadonly  // readonly
	KwExtern    // extern
	KwUnsafe    // unsafe
	KwVolatile  // volatile
	KwAsync     // async
	KwPartial   // partial
	KwRef       // ref
	KwOut       // out
	KwIn        // in
	KwParams    // params

	// declaration keywords
	KwClass     // class
	KwStruct    // struct
	KwInterface // interface
	KwRecord    // record
	KwEnum      // enum
	KwDelegate  // delegate
	KwNamespace // namespace
	KwEvent     // event
	KwOperator  // operator
	KwImplicit  // implicit
	KwExplicit  // explicit
	KwThis      // this
	KwUsing     // using
	KwVoid      // void

	// Keyword is any other reserved word (return, if, int, ...).
	Keyword

	// NumberLit represents a numeric literal.
	NumberLit
	// StringLit represents a regular, verbatim, raw or interpolated string literal.
	StringLit
	// CharLit represents a character literal.
	CharLit

	LBrace    // {
	RBrace    // }
	LParen    // (
	RParen    // )
	LBracket  // [
	RBracket  // ]
	Semicolon // ;
	Comma     // ,
	Dot       // .
	Colon     // :
	Lt        // <
	Gt        // >
	Assign    // =
	FatArrow  // =>
	Question  // ?
	Tilde     // ~
	// Operator is any other operator or punctuation; Text holds the lexeme.
	Operator
)

var kindNames = [...]string{
	Invalid:     "Invalid",
	EOF:         "EOF",
	Ident:       "Ident",
	KwNew:       "KwNew",
	KwPublic:    "KwPublic",
	KwProtected: "KwProtected",
	KwInternal:  "KwInternal",
	KwPrivate:   "KwPrivate",
	KwConst:     "KwConst",
	KwStatic:    "KwStatic",
	KwVirtual:   "KwVirtual",
	KwSealed:    "KwSealed",
	KwOverride:  "KwOverride",
	KwAbstract:  "KwAbstract",
	KwReadonly:  "KwReadonly",
	KwExtern:    "KwExtern",
	KwUnsafe:    "KwUnsafe",
	KwVolatile:  "KwVolatile",
	KwAsync:     "KwAsync",
	KwPartial:   "KwPartial",
	KwRef:       "KwRef",
	KwOut:       "KwOut",
	KwIn:        "KwIn",
	KwParams:    "KwParams",
	KwClass:     "KwClass",
	KwStruct:    "KwStruct",
	KwInterface: "KwInterface",
	KwRecord:    "KwRecord",
	KwEnum:      "KwEnum",
	KwDelegate:  "KwDelegate",
	KwNamespace: "KwNamespace",
	KwEvent:     "KwEvent",
	KwOperator:  "KwOperator",
	KwImplicit:  "KwImplicit",
	KwExplicit:  "KwExplicit",
	KwThis:      "KwThis",
	KwUsing:     "KwUsing",
	KwVoid:      "KwVoid",
	Keyword:     "Keyword",
	NumberLit:   "NumberLit",
	StringLit:   "StringLit",
	CharLit:     "CharLit",
	LBrace:      "LBrace",
	RBrace:      "RBrace",
	LParen:      "LParen",
	RParen:      "RParen",
	LBracket:    "LBracket",
	RBracket:    "RBracket",
	Semicolon:   "Semicolon",
	Comma:       "Comma",
	Dot:         "Dot",
	Colon:       "Colon",
	Lt:          "Lt",
	Gt:          "Gt",
	Assign:      "Assign",
	FatArrow:    "FatArrow",
	Question:    "Question",
	Tilde:       "Tilde",
	Operator:    "Operator",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
