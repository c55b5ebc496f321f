package processor

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"jsfront/internal/parser"
	"jsfront/internal/printer"
)

// ErrInvalidOptions wraps every rejected flag value.
var ErrInvalidOptions = errors.New("invalid processor options")

const (
	flagLanguageIn       = "--language_in"
	flagLanguageOut      = "--language_out"
	flagCompilationLevel = "--compilation_level"
	flagJscompError      = "--jscomp_error"
	flagFormatting       = "--formatting"
)

// CompilationLevel is accepted for compatibility; the processor never
// rewrites code beyond whitespace.
type CompilationLevel uint8

const (
	LevelSimple CompilationLevel = iota
	LevelWhitespaceOnly
	LevelAdvanced
)

var levelNames = [...]string{
	LevelSimple:         "SIMPLE",
	LevelWhitespaceOnly: "WHITESPACE_ONLY",
	LevelAdvanced:       "ADVANCED",
}

func (l CompilationLevel) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return fmt.Sprintf("CompilationLevel(%d)", l)
}

func parseLevel(s string) (CompilationLevel, error) {
	switch strings.ToUpper(s) {
	case "SIMPLE", "SIMPLE_OPTIMIZATIONS":
		return LevelSimple, nil
	case "WHITESPACE_ONLY", "WHITESPACE":
		return LevelWhitespaceOnly, nil
	case "ADVANCED", "ADVANCED_OPTIMIZATIONS":
		return LevelAdvanced, nil
	}
	return 0, fmt.Errorf("%w: unknown compilation level %q", ErrInvalidOptions, s)
}

// Params are effective compiler flags, flag name to value. An empty value
// means a bare flag.
type Params map[string]string

func defaultParams() Params {
	return Params{
		flagCompilationLevel: "ADVANCED",
		flagLanguageIn:       "ECMASCRIPT_NEXT",
		flagLanguageOut:      "ECMASCRIPT5",
	}
}

// translateKey maps a clientlib option key to a compiler flag. Keys that
// already look like flags pass through; unknown keys map to "".
func translateKey(key string) string {
	if strings.HasPrefix(key, "-") {
		return key
	}
	switch strings.ToLower(key) {
	case "failonwarning":
		return flagJscompError
	case "languagein":
		return flagLanguageIn
	case "languageout":
		return flagLanguageOut
	case "compilationlevel":
		return flagCompilationLevel
	}
	return ""
}

// translateLevel maps clientlib level names; anything unknown is SIMPLE.
func translateLevel(v string) string {
	switch strings.ToLower(v) {
	case "simple":
		return "SIMPLE"
	case "whitespace":
		return "WHITESPACE_ONLY"
	case "advanced":
		return "ADVANCED"
	}
	return "SIMPLE"
}

// Apply merges clientlib options into p.
func (p Params) Apply(opts map[string]string) {
	for key, val := range opts {
		flag := translateKey(key)
		switch strings.ToLower(key) {
		case "compilationlevel":
			val = translateLevel(val)
		case "failonwarning":
			if !strings.EqualFold(val, "true") {
				continue
			}
			val = "*"
		}
		if flag == "" {
			continue
		}
		p[flag] = val
	}
}

// ApplyArgs merges raw flags such as "--formatting=PRETTY_PRINT" or
// "--language_out ECMASCRIPT_2015".
func (p Params) ApplyArgs(args []string) {
	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}
		name, val, ok := strings.Cut(arg, "=")
		if !ok {
			name, val, _ = strings.Cut(arg, " ")
		}
		p[strings.TrimSpace(name)] = strings.TrimSpace(val)
	}
}

// Args renders p as a sorted command line.
func (p Params) Args() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		args = append(args, k)
		if v := p[k]; strings.TrimSpace(v) != "" {
			args = append(args, v)
		}
	}
	return args
}

// settings is the validated form of Params.
type settings struct {
	languageIn    parser.Language
	languageOut   parser.Language
	level         CompilationLevel
	failOnWarning bool
	mode          printer.Mode
	ignored       []string
}

func (p Params) settings() (settings, error) {
	var s settings
	var err error
	if s.languageIn, err = parser.ParseLanguage(p[flagLanguageIn]); err != nil {
		return s, fmt.Errorf("%w: %s: %w", ErrInvalidOptions, flagLanguageIn, err)
	}
	if s.languageOut, err = parser.ParseLanguage(p[flagLanguageOut]); err != nil {
		return s, fmt.Errorf("%w: %s: %w", ErrInvalidOptions, flagLanguageOut, err)
	}
	if s.level, err = parseLevel(p[flagCompilationLevel]); err != nil {
		return s, err
	}
	s.failOnWarning = p[flagJscompError] == "*"
	s.mode = printer.Compact
	if f, ok := p[flagFormatting]; ok {
		switch strings.ToUpper(f) {
		case "PRETTY_PRINT":
			s.mode = printer.Pretty
		case "PRINT_INPUT_DELIMITER", "SINGLE_QUOTES", "":
		default:
			return s, fmt.Errorf("%w: unknown formatting %q", ErrInvalidOptions, f)
		}
	}
	for k := range p {
		switch k {
		case flagLanguageIn, flagLanguageOut, flagCompilationLevel, flagJscompError, flagFormatting:
		default:
			s.ignored = append(s.ignored, k)
		}
	}
	sort.Strings(s.ignored)
	return s, nil
}
