package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

// snippetSeeds cover the statement and expression forms the parser knows.
var snippetSeeds = []string{
	"let t = 0;\nconst tc = 1;\n",
	"for (let i = 0; i < 3; i++) { const j = i * 2; }",
	"for (var i = (a in b); i;) {}",
	"for (const v of list) { f(v); }",
	"if (a) b; else if (c) d;",
	"do x++; while (y);",
	"x = function f(a, ...r) { return a; };",
	"function g(a = 1, b) { throw a; }",
	"let o = {a, [b]: 1, get c() { return 1 }, ...d};",
	"class A extends B { static x = 1; #p; get y() { return this.#p } }",
	"tag`x${1 + 2}`;",
	"[a, , b];",
	"var f = (x, y = 2, ...z) => ({ sum: x + y + z.length });",
	"r.push(2 ** 3 ** 2, (-2) ** 2, null ?? (0 || 'x'), a?.b?.(c));",
	"var re = /[/]+/g; x = a / b / c;",
}

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	for _, s := range snippetSeeds {
		f.Add([]byte(s))
	}
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.js файлы
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() || filepath.Ext(path) != ".js" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
	if err != nil {
		return
	}
	f.Add([]byte{})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
