// Package printer turns a parsed AST back into JavaScript text.
//
// Назначение: вывод AST в текст (pretty/compact) для команд print и process.
// Не делает: сохранения комментариев, source maps, транспиляции.
// Зависимости: internal/ast, internal/parser (только для CheckRoundTrip).
//
// Parentheses are derived from operator precedence, never copied from the
// source, so the output re-parses into the same tree shape.
package printer
