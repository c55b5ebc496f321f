package parser

import (
	"fmt"
	"strings"

	"jsfront/internal/source"
)

// Language is an ECMAScript edition. The zero value means the newest one.
type Language uint8

const (
	langUnset Language = iota
	LangES5
	LangES2015
	LangES2016
	LangES2017
	LangES2018
	LangES2019
	LangES2020
	LangES2021
	LangES2022
	LangESNext
)

var languageNames = [...]string{
	langUnset:  "ECMASCRIPT_NEXT",
	LangES5:    "ECMASCRIPT5",
	LangES2015: "ECMASCRIPT_2015",
	LangES2016: "ECMASCRIPT_2016",
	LangES2017: "ECMASCRIPT_2017",
	LangES2018: "ECMASCRIPT_2018",
	LangES2019: "ECMASCRIPT_2019",
	LangES2020: "ECMASCRIPT_2020",
	LangES2021: "ECMASCRIPT_2021",
	LangES2022: "ECMASCRIPT_2022",
	LangESNext: "ECMASCRIPT_NEXT",
}

func (l Language) String() string {
	if int(l) < len(languageNames) {
		return languageNames[l]
	}
	return fmt.Sprintf("Language(%d)", l)
}

// Effective maps the zero value to LangESNext.
func (l Language) Effective() Language {
	if l == langUnset {
		return LangESNext
	}
	return l
}

var languageAliases = map[string]Language{
	"ECMASCRIPT3":        LangES5,
	"ECMASCRIPT5":        LangES5,
	"ECMASCRIPT5_STRICT": LangES5,
	"ES3":                LangES5,
	"ES5":                LangES5,
	"ECMASCRIPT6":        LangES2015,
	"ECMASCRIPT6_STRICT": LangES2015,
	"ECMASCRIPT_2015":    LangES2015,
	"ES6":                LangES2015,
	"ES2015":             LangES2015,
	"ECMASCRIPT_2016":    LangES2016,
	"ES2016":             LangES2016,
	"ECMASCRIPT_2017":    LangES2017,
	"ES2017":             LangES2017,
	"ECMASCRIPT_2018":    LangES2018,
	"ES2018":             LangES2018,
	"ECMASCRIPT_2019":    LangES2019,
	"ES2019":             LangES2019,
	"ECMASCRIPT_2020":    LangES2020,
	"ES2020":             LangES2020,
	"ECMASCRIPT_2021":    LangES2021,
	"ES2021":             LangES2021,
	"STABLE":             LangES2021,
	"ECMASCRIPT_2022":    LangES2022,
	"ES2022":             LangES2022,
	"ECMASCRIPT_NEXT":    LangESNext,
	"ESNEXT":             LangESNext,
	"NO_TRANSPILE":       LangESNext,
	"UNSTABLE":           LangESNext,
}

// ParseLanguage accepts Closure-style names (ECMASCRIPT_2015, STABLE) and
// short ones (es5, es2020, esnext), case-insensitively.
func ParseLanguage(name string) (Language, error) {
	if l, ok := languageAliases[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return l, nil
	}
	return langUnset, fmt.Errorf("unknown language %q", name)
}

// Feature is a syntax construct newer than ES5.
type Feature uint8

const (
	FeatLetConst Feature = iota
	FeatClass
	FeatArrow
	FeatTemplate
	FeatSpread
	FeatRestParam
	FeatDefaultParam
	FeatObjectLiteralExt
	FeatForOf
	FeatExponent
	FeatObjectSpread
	FeatOptionalChain
	FeatNullish
	FeatBigInt
	FeatLogicalAssign
	FeatNumericSeparator
	FeatClassFields
	FeatPrivateNames
	featCount
)

var featureInfo = [...]struct {
	name  string
	since Language
}{
	FeatLetConst:         {"let/const declarations", LangES2015},
	FeatClass:            {"classes", LangES2015},
	FeatArrow:            {"arrow functions", LangES2015},
	FeatTemplate:         {"template literals", LangES2015},
	FeatSpread:           {"spread elements", LangES2015},
	FeatRestParam:        {"rest parameters", LangES2015},
	FeatDefaultParam:     {"default parameters", LangES2015},
	FeatObjectLiteralExt: {"shorthand and computed properties", LangES2015},
	FeatForOf:            {"for-of loops", LangES2015},
	FeatExponent:         {"exponent operator", LangES2016},
	FeatObjectSpread:     {"object spread", LangES2018},
	FeatOptionalChain:    {"optional chaining", LangES2020},
	FeatNullish:          {"nullish coalescing", LangES2020},
	FeatBigInt:           {"BigInt literals", LangES2020},
	FeatLogicalAssign:    {"logical assignment", LangES2021},
	FeatNumericSeparator: {"numeric separators", LangES2021},
	FeatClassFields:      {"class fields", LangES2022},
	FeatPrivateNames:     {"private class members", LangES2022},
}

func (f Feature) String() string {
	if f < featCount {
		return featureInfo[f].name
	}
	return fmt.Sprintf("Feature(%d)", f)
}

// Since is the first edition that has f.
func (f Feature) Since() Language {
	if f < featCount {
		return featureInfo[f].since
	}
	return LangESNext
}

// FeatureUse records the first place a feature was seen.
type FeatureUse struct {
	Feature Feature
	Span    source.Span
}

// Above returns the uses that the given output language does not have.
func Above(uses []FeatureUse, out Language) []FeatureUse {
	out = out.Effective()
	var res []FeatureUse
	for _, u := range uses {
		if u.Feature.Since() > out {
			res = append(res, u)
		}
	}
	return res
}
