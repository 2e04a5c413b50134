package token

// Keyword is the closed set of reserved words recognized after an
// identifier scan promotes it from Identifier to Keyword.
type Keyword int

const (
	KwInvalid Keyword = iota
	KwTypedef
	KwExtern
	KwStatic
	KwAuto
	KwRegister
	KwVoid
	KwChar
	KwString
	KwShort
	KwInt
	KwLong
	KwFloat
	KwDouble
	KwSigned
	KwUnsigned
	KwStruct
	KwUnion
	KwConst
	KwRestrict
	KwVolatile
	KwSizeof
	KwEnum
	KwInline
	KwCase
	KwDefault
	KwIf
	KwElse
	KwSwitch
	KwWhile
	KwDo
	KwFor
	KwGoto
	KwContinue
	KwBreak
	KwReturn
)

// keywords maps keyword spelling to tag. Built once at package init, as
// a flat unordered set of entries — a direct translation of the linear
// probe the source performs, done in idiomatic Go with a map instead of
// a hand-rolled table scan (see spec.md §9, "implementation concern, not
// a design one").
var keywords = map[string]Keyword{
	"typedef":  KwTypedef,
	"extern":   KwExtern,
	"static":   KwStatic,
	"auto":     KwAuto,
	"register": KwRegister,
	"void":     KwVoid,
	"char":     KwChar,
	"string":   KwString,
	"short":    KwShort,
	"int":      KwInt,
	"long":     KwLong,
	"float":    KwFloat,
	"double":   KwDouble,
	"signed":   KwSigned,
	"unsigned": KwUnsigned,
	"struct":   KwStruct,
	"union":    KwUnion,
	"const":    KwConst,
	"restrict": KwRestrict,
	"volatile": KwVolatile,
	"sizeof":   KwSizeof,
	"enum":     KwEnum,
	"inline":   KwInline,
	"case":     KwCase,
	"default":  KwDefault,
	"if":       KwIf,
	"else":     KwElse,
	"switch":   KwSwitch,
	"while":    KwWhile,
	"do":       KwDo,
	"for":      KwFor,
	"goto":     KwGoto,
	"continue": KwContinue,
	"break":    KwBreak,
	"return":   KwReturn,
}

var keywordText = func() map[Keyword]string {
	m := make(map[Keyword]string, len(keywords))
	for text, kw := range keywords {
		m[kw] = text
	}
	return m
}()

// LookupKeyword returns the keyword tag for text and true if text is a
// reserved word, or (KwInvalid, false) otherwise.
func LookupKeyword(text string) (Keyword, bool) {
	kw, ok := keywords[text]
	return kw, ok
}

func (k Keyword) String() string {
	if s, ok := keywordText[k]; ok {
		return s
	}
	return "<invalid-keyword>"
}

// typeKeywords is the subset of keywords that can introduce a type in a
// declaration or a cast. Used by the parser's cast-vs-paren
// disambiguation (spec.md §4.5) and by decl-start detection.
var typeKeywords = map[Keyword]bool{
	KwVoid: true, KwChar: true, KwString: true, KwShort: true,
	KwInt: true, KwLong: true, KwFloat: true, KwDouble: true,
	KwSigned: true, KwUnsigned: true, KwStruct: true, KwUnion: true,
	KwEnum: true,
}

// IsTypeKeyword reports whether kw can start a type.
func IsTypeKeyword(kw Keyword) bool {
	return typeKeywords[kw]
}
