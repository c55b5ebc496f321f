package token

var keywords = map[string]Kind{
	"var":        KwVar,
	"let":        KwLet,
	"const":      KwConst,
	"function":   KwFunction,
	"class":      KwClass,
	"extends":    KwExtends,
	"new":        KwNew,
	"this":       KwThis,
	"super":      KwSuper,
	"return":     KwReturn,
	"if":         KwIf,
	"else":       KwElse,
	"while":      KwWhile,
	"do":         KwDo,
	"for":        KwFor,
	"in":         KwIn,
	"break":      KwBreak,
	"continue":   KwContinue,
	"throw":      KwThrow,
	"typeof":     KwTypeof,
	"instanceof": KwInstanceof,
	"void":       KwVoid,
	"delete":     KwDelete,
	"null":       KwNull,
	"true":       KwTrue,
	"false":      KwFalse,
	"switch":     KwSwitch,
	"case":       KwCase,
	"default":    KwDefault,
	"try":        KwTry,
	"catch":      KwCatch,
	"finally":    KwFinally,
	"import":     KwImport,
	"export":     KwExport,
	"yield":      KwYield,
	"await":      KwAwait,
	"debugger":   KwDebugger,
	"with":       KwWith,
	"enum":       KwEnum,
}

var keywordNames = func() map[Kind]string {
	m := make(map[Kind]string, len(keywords))
	for s, k := range keywords {
		m[k] = s
	}
	return m
}()

// LookupKeyword returns the keyword kind for ident. Matching is case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
