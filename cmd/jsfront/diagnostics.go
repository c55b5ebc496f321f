package main

import (
	"io"

	"jsfront/internal/diag"
	"jsfront/internal/diagfmt"
	"jsfront/internal/observ"
	"jsfront/internal/source"
)

func (st *appState) prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     st.color,
		Context:   2,
		ShowNotes: true,
		ShowFixes: true,
	}
}

// reportDiagnostics prints bag to w when it has anything worth showing.
func (st *appState) reportDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	if st.quiet && !bag.HasErrors() {
		return
	}
	bag.Sort()
	diagfmt.Pretty(w, bag, fs, st.prettyOpts())
}

func (st *appState) reportTimings(w io.Writer, report observ.Report) {
	if !st.timings || len(report.Phases) == 0 {
		return
	}
	io.WriteString(w, report.Summary()) //nolint:errcheck
}
