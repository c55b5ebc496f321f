package lexer

import (
	"fmt"

	"jsfront/internal/diag"
	"jsfront/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil, тогда ошибки игнорируем (но продолжаем лексить)
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, format string, args ...any) {
	if lx.opts.Reporter == nil {
		return
	}
	diag.ReportError(lx.opts.Reporter, code, sp, fmt.Sprintf(format, args...)).Emit()
}

func (lx *Lexer) warnLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter == nil {
		return
	}
	diag.ReportWarning(lx.opts.Reporter, code, sp, msg).Emit()
}
