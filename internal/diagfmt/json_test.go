package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"jsfront/internal/diag"
	"jsfront/internal/source"
)

func TestJSONOutput(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.js", []byte("let x = 1\nlet y = (2\n"))

	bag := diag.NewBag(8)
	primary := source.Span{File: fileID, Start: 20, End: 20}
	bag.Add(diag.New(diag.SevError, diag.SynUnclosedParen, primary, "expected ')'").
		WithNote(source.Span{File: fileID, Start: 18, End: 19}, "opened here").
		WithFix("insert ')'", diag.FixEdit{Span: primary, NewText: ")"}))
	bag.Add(diag.New(diag.SevWarning, diag.PrcFeatureAboveOut, source.Span{File: fileID, Start: 0, End: 3}, "let/const"))

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true, IncludeFixes: true, IncludePreviews: true})
	if err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", out.Count)
	}
	first := out.Diagnostics[0]
	if first.Code != "SYN2002" || first.Severity != "ERROR" {
		t.Errorf("unexpected head %+v", first)
	}
	if first.Location.StartLine != 2 || first.Location.StartCol != 11 {
		t.Errorf("unexpected location %+v", first.Location)
	}
	if len(first.Notes) != 1 || first.Notes[0].Location.StartCol != 9 {
		t.Errorf("unexpected notes %+v", first.Notes)
	}
	if len(first.Fixes) != 1 || first.Fixes[0].Edits[0].NewText != ")" {
		t.Fatalf("unexpected fixes %+v", first.Fixes)
	}
	if after := first.Fixes[0].Edits[0].AfterLines; len(after) != 1 || after[0] != "let y = (2)" {
		t.Errorf("unexpected preview %q", after)
	}
	if out.Diagnostics[1].Code != "PRC5001" || out.Diagnostics[1].Severity != "WARNING" {
		t.Errorf("unexpected second diagnostic %+v", out.Diagnostics[1])
	}
}

func TestJSONMaxAndDefaults(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.js", []byte("abc"))
	bag := diag.NewBag(8)
	for i := range 3 {
		sp := source.Span{File: fileID, Start: uint32(i), End: uint32(i + 1)}
		bag.Add(diag.New(diag.SevError, diag.LexUnknownChar, sp, "bad").WithNote(sp, "n"))
	}

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if out.Count != 2 {
		t.Fatalf("Max must cut output, got %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Notes != nil || d.Location.StartLine != 0 {
		t.Fatalf("notes and positions are opt-in: %+v", d)
	}
}
