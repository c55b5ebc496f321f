package printer

// Writer accumulates output and keeps adjacent tokens from fusing.
type Writer struct {
	opt         Options
	buf         []byte
	indentLevel int
	atLineStart bool
}

// NewWriter creates a writer; sizeHint preallocates the buffer.
func NewWriter(opt Options, sizeHint int) *Writer {
	return &Writer{
		opt: opt.withDefaults(),
		buf: make([]byte, 0, sizeHint),
	}
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) pretty() bool { return w.opt.Mode == Pretty }

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	if w.opt.UseTabs {
		for range w.indentLevel {
			w.buf = append(w.buf, '\t')
		}
	} else {
		for range w.indentLevel * w.opt.IndentWidth {
			w.buf = append(w.buf, ' ')
		}
	}
	w.atLineStart = false
}

// Token writes one lexical token, inserting a space when the previous
// output and s would otherwise read as a different token sequence.
func (w *Writer) Token(s string) {
	if s == "" {
		return
	}
	w.writeIndent()
	if len(w.buf) > 0 && fuses(w.buf[len(w.buf)-1], s[0]) {
		w.buf = append(w.buf, ' ')
	}
	w.buf = append(w.buf, s...)
}

// Raw writes s verbatim; used inside template literals where no separator
// may be inserted.
func (w *Writer) Raw(s string) {
	if s == "" {
		return
	}
	w.writeIndent()
	w.buf = append(w.buf, s...)
}

// Space writes a single space in pretty mode if the output doesn't already
// end with whitespace.
func (w *Writer) Space() {
	if !w.pretty() || len(w.buf) == 0 || w.atLineStart {
		return
	}
	switch w.buf[len(w.buf)-1] {
	case ' ', '\n', '\t':
		return
	}
	w.buf = append(w.buf, ' ')
}

// Newline ends the line in pretty mode.
func (w *Writer) Newline() {
	if !w.pretty() {
		return
	}
	if len(w.buf) > 0 && w.buf[len(w.buf)-1] != '\n' {
		w.buf = append(w.buf, '\n')
	}
	w.atLineStart = len(w.buf) > 0
}

func (w *Writer) IndentPush() {
	w.indentLevel++
}

func (w *Writer) IndentPop() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}

func isWordByte(c byte) bool {
	return c == '_' || c == '$' || c == '\\' || c >= 0x80 ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// fuses reports whether writing next right after last changes tokenization:
// `a in` becomes `ain`, `a - -b` becomes `a--b`, `a / /re/` starts a comment.
func fuses(last, next byte) bool {
	switch {
	case isWordByte(last) && isWordByte(next):
		return true
	case last == '+' && next == '+', last == '-' && next == '-':
		return true
	case last == '/' && (next == '/' || next == '*'):
		return true
	case last == '<' && next == '!':
		return true
	case last == '?' && next == '.':
		return true
	}
	return false
}
