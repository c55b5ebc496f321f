
// Package fuzztests houses Go fuzz harnesses that exercise the front-end
// pipeline (source -> lexer -> parser -> printer). Its goal is to smoke test
// robustness and guard against panics, hangs and unstable output on arbitrary
// inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через лексер/парсер/принтер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser,
// internal/printer, internal/ast.

package fuzztests
