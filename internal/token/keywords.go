package token

var keywords = map[string]Kind{
	"def":    KwDef,
	"return": KwReturn,
	"print":  KwPrint,
	"if":     KwIf,
	"elif":   KwElif,
	"else":   KwElse,
	"for":    KwFor,
	"while":  KwWhile,
	"in":     KwIn,
	"range":  KwRange,
	"match":  KwMatch,
	"case":   KwCase,
	"and":    KwAnd,
	"or":     KwOr,
	"not":    KwNot,
	"true":   KwTrue,
	"false":  KwFalse,
	"len":    KwLen,
	"sep":    KwSep,
}

var typeNames = map[string]Kind{
	"int":    TypeInt,
	"float":  TypeFloat,
	"string": TypeString,
	"bool":   TypeBool,
	"list":   TypeList,
	"tuple":  TypeTuple,
	"dict":   TypeDict,
}

// methodNames перечисляет имена методов, которые лексер выдаёт как CallMethod.
var methodNames = map[string]struct{}{
	"append":  {},
	"upper":   {},
	"lower":   {},
	"strip":   {},
	"replace": {},
	"split":   {},
	"find":    {},
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые — только lowercase версии распознаются.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// LookupTypeName returns the type-name kind for the identifier, if any.
func LookupTypeName(ident string) (Kind, bool) {
	k, ok := typeNames[ident]
	return k, ok
}

// IsMethodName reports whether the identifier is a recognized method name.
func IsMethodName(ident string) bool {
	_, ok := methodNames[ident]
	return ok
}
