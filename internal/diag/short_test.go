package diag

import (
	"testing"

	"jsfront/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	userFile := fs.Add("/workspace/clientlibs/js/sample.js", []byte("a\nb\n"), 0)
	depFile := fs.Add("/workspace/node_modules/lib/index.js", []byte("x\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     PrcFeatureAboveOut,
			Message:  "another",
			Primary:  source.Span{File: userFile, Start: 2, End: 3},
		},
		{
			Severity: SevError,
			Code:     SynUnexpectedToken,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: userFile, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: depFile, Start: 0, End: 0}, Msg: "declared here"},
				{Span: source.Span{File: userFile, Start: 2, End: 3}, Msg: "note line"},
			},
		},
	}

	want := "error SYN2001 clientlibs/js/sample.js:1:1 first line second\n" +
		"note SYN2001 clientlibs/js/sample.js:2:1 note line\n" +
		"warning PRC5001 clientlibs/js/sample.js:2:1 another\n" +
		"note SYN2001 node_modules/lib/index.js:1:1 declared here"
	if got := FormatShortDiagnostics(diags, fs, true); got != want {
		t.Fatalf("unexpected output:\nwant:\n%s\n\ngot:\n%s", want, got)
	}

	want = "error SYN2001 clientlibs/js/sample.js:1:1 first line second\n" +
		"warning PRC5001 clientlibs/js/sample.js:2:1 another"
	if got := FormatShortDiagnostics(diags, fs, false); got != want {
		t.Fatalf("notes must be omitted:\nwant:\n%s\n\ngot:\n%s", want, got)
	}
}

func TestFormatShortDiagnosticsUnknownFile(t *testing.T) {
	fs := source.NewFileSet()
	diags := []Diagnostic{{Severity: SevError, Code: LexUnknownChar, Primary: source.Span{File: 7}}}
	if got := FormatShortDiagnostics(diags, fs, false); got != "" {
		t.Fatalf("expected empty output for unknown file, got %q", got)
	}
	if got := FormatShortDiagnostics(diags, nil, false); got != "" {
		t.Fatalf("expected empty output without a FileSet, got %q", got)
	}
}
