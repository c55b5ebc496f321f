package diagfmt

import (
	"bytes"
	"fmt"
	"strings"

	"jsfront/internal/diag"
	"jsfront/internal/source"
)

// fixEditPreview holds the whole lines touched by one edit, before and after.
type fixEditPreview struct {
	before []string
	after  []string
}

func buildFixEditPreview(fs *source.FileSet, edit diag.FixEdit) (fixEditPreview, error) {
	if fs == nil {
		return fixEditPreview{}, fmt.Errorf("nil FileSet")
	}
	file := fs.Get(edit.Span.File)
	if file == nil {
		return fixEditPreview{}, fmt.Errorf("file %d not found in FileSet", edit.Span.File)
	}
	content := file.Content
	start, end := int(edit.Span.Start), int(edit.Span.End)
	if start > len(content) || end < start || end > len(content) {
		return fixEditPreview{}, fmt.Errorf("edit span %d..%d out of range", start, end)
	}

	// расширяем до границ строк
	lo := bytes.LastIndexByte(content[:start], '\n') + 1
	hi := len(content)
	if i := bytes.IndexByte(content[end:], '\n'); i >= 0 {
		hi = end + i
	}

	block := string(content[lo:hi])
	edited := block[:start-lo] + edit.NewText + block[end-lo:]
	return fixEditPreview{
		before: splitPreviewLines(block),
		after:  splitPreviewLines(edited),
	}, nil
}

func splitPreviewLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
