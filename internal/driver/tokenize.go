package driver

import (
	"fmt"

	"github.com/spf13/afero"

	"jsfront/internal/diag"
	"jsfront/internal/lexer"
	"jsfront/internal/source"
	"jsfront/internal/token"
)

type TokenizeResult struct {
	Path    string
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
	// Err is the first lexical error, nil when the file lexed cleanly.
	Err error
}

// Tokenize loads path from fsys and lexes it to EOF.
// The returned error is only for I/O failures; lexical errors land in the result.
func Tokenize(fsys afero.Fs, path string, maxDiagnostics int) (*TokenizeResult, error) {
	fileSet := source.NewFileSet()
	fileID, err := fileSet.LoadFS(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return tokenizeFile(fileSet, fileSet.Get(fileID), maxDiagnostics), nil
}

func tokenizeFile(fileSet *source.FileSet, file *source.File, maxDiagnostics int) *TokenizeResult {
	if maxDiagnostics <= 0 {
		maxDiagnostics = defaultMaxDiagnostics
	}
	tokens, bag, lexErr := lexer.Tokenize(file, maxDiagnostics)
	res := &TokenizeResult{
		Path:    file.Path,
		FileSet: fileSet,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}
	if lexErr != nil {
		res.Err = lexErr
	}
	return res
}
