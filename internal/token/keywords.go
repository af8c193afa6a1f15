package token

var keywords = map[string]Kind{
	"new":       KwNew,
	"public":    KwPublic,
	"protected": KwProtected,
	"internal":  KwInternal,
	"private":   KwPrivate,
	"const":     KwConst,
	"static":    KwStatic,
	"virtual":   KwVirtual,
	"sealed":    KwSealed,
	"override":  KwOverride,
	"abstract":  KwAbstract,
	"readonly":  KwReadonly,
	"extern":    KwExtern,
	"unsafe":    KwUnsafe,
	"volatile":  KwVolatile,
	"async":     KwAsync,
	"partial":   KwPartial,
	"ref":       KwRef,
	"out":       KwOut,
	"in":        KwIn,
	"params":    KwParams,
	"class":     KwClass,
	"struct":    KwStruct,
	"interface": KwInterface,
	"record":    KwRecord,
	"enum":      KwEnum,
	"delegate":  KwDelegate,
	"namespace": KwNamespace,
	"event":     KwEvent,
	"operator":  KwOperator,
	"implicit":  KwImplicit,
	"explicit":  KwExplicit,
	"this":      KwThis,
	"using":     KwUsing,
	"void":      KwVoid,
}

// reserved words that have no dedicated Kind
var otherKeywords = map[string]struct{}{
	"as": {}, "base": {}, "bool": {}, "break": {}, "byte": {}, "case": {}, "catch": {},
	"char": {}, "checked": {}, "continue": {}, "decimal": {}, "default": {}, "do": {},
	"double": {}, "else": {}, "false": {}, "finally": {}, "fixed": {}, "float": {},
	"for": {}, "foreach": {}, "goto": {}, "if": {}, "int": {}, "is": {}, "lock": {},
	"long": {}, "null": {}, "object": {}, "sbyte": {}, "short": {}, "sizeof": {},
	"stackalloc": {}, "string": {}, "switch": {}, "throw": {}, "true": {}, "try": {},
	"typeof": {}, "uint": {}, "ulong": {}, "unchecked": {}, "ushort": {}, "while": {},
	"return": {},
}

// LookupKeyword returns the kind for a keyword lexeme.
// Keywords are case-sensitive; "@public" is an identifier, not a keyword.
func LookupKeyword(ident string) (Kind, bool) {
	if k, ok := keywords[ident]; ok {
		return k, true
	}
	if _, ok := otherKeywords[ident]; ok {
		return Keyword, true
	}
	return Invalid, false
}

var keywordText = func() map[Kind]string {
	out := make(map[Kind]string, len(keywords))
	for text, kind := range keywords {
		out[kind] = text
	}
	return out
}()

// KeywordText returns the canonical lexeme for a dedicated keyword kind.
func KeywordText(k Kind) (string, bool) {
	text, ok := keywordText[k]
	return text, ok
}
