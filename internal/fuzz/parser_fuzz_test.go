package fuzztests

import (
	"context"
	"testing"
	"time"

	"jsfront/internal/ast"
	"jsfront/internal/parser"
	"jsfront/internal/printer"
	"jsfront/internal/source"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func parseInput(ctx context.Context, input []byte) (*ast.Builder, parser.Result, error) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("fuzz.js", input))
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res, err := parser.Parse(ctx, fs, file, builder, parser.Options{MaxErrors: 128, MaxDiagnostics: 128})
	return builder, res, err
}

// FuzzParserNoHang tests that the parser doesn't hang on any input.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	// незакрытые конструкции и обрывки
	f.Add([]byte("let x = 1\nlet y = 2"))
	f.Add([]byte("{ { { { } } } }"))
	f.Add([]byte("for (let i = 0 i < 10 i++) {}"))
	f.Add([]byte("class { get }"))
	f.Add([]byte("`${`${`"))
	f.Add([]byte("a ?. [ ( ,"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _, _ = parseInput(ctx, input)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// FuzzPrintRoundTrip checks that every cleanly parsed input prints to text
// that parses back to the same output.
func FuzzPrintRoundTrip(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		builder, res, err := parseInput(context.Background(), input)
		if err != nil || res.Bag.HasErrors() {
			return
		}
		for _, mode := range []printer.Mode{printer.Pretty, printer.Compact} {
			if ok, msg := printer.CheckRoundTrip(context.Background(), builder, res.File, printer.Options{Mode: mode}); !ok {
				t.Fatalf("%s: %s\ninput: %q", mode, msg, truncateForLog(input, 200))
			}
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
