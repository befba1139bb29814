package amf

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode/utf8"
)

var readerPool = sync.Pool{
	New: func() any {
		return bufio.NewReaderSize(nil, 4096)
	},
}

var bufPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// RenderRequest configures Render.
type RenderRequest struct {
	Reader  io.Reader
	Writer  io.Writer
	Width   int
	Theme   Theme
	Options []RenderOption
}

// Render reads the whole input and renders it as one answer: tag
// segmentation, block parsing, then themed composition. Front matter at
// the top of file input is stripped. The input must be valid UTF-8 text.
func Render(req RenderRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("render: reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("render: writer is nil")
	}
	reader := readerPool.Get().(*bufio.Reader)
	reader.Reset(req.Reader)
	buf := bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer func() {
		readerPool.Put(reader)
		buf.Reset()
		bufPool.Put(buf)
	}()
	if _, err := buf.ReadFrom(reader); err != nil {
		return fmt.Errorf("render: read: %w", err)
	}
	if err := ValidateInput(buf.Bytes()); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	r := NewRenderer(req.Theme, req.Width, req.Options...)
	out := r.RenderAnswer(StripFrontMatter(buf.String()))
	if out == "" {
		return nil
	}
	if _, err := io.WriteString(req.Writer, out+"\n"); err != nil {
		return fmt.Errorf("render: write: %w", err)
	}
	return nil
}

// LiveRenderer repaints a growing answer in place. Every update
// re-renders the full accumulated buffer and rewrites the terminal
// region painted last time; completed structure therefore never
// flickers, only the trailing in-progress part changes.
type LiveRenderer struct {
	w        io.Writer
	renderer *Renderer
	buf      []byte
	tail     [utf8.UTFMax]byte
	tailLen  int
	val      validator
	rows     int
	maxRows  int
}

// NewLiveRenderer builds a live renderer painting to w. A nil w
// discards output.
func NewLiveRenderer(w io.Writer, theme Theme, width int, opts ...RenderOption) *LiveRenderer {
	if w == nil {
		w = io.Discard
	}
	return &LiveRenderer{w: w, renderer: NewRenderer(theme, width, opts...)}
}

// SetMaxRows bounds the repaint window, normally to the terminal
// height, so cursor movement never has to reach above the screen.
// rows <= 0 leaves the window unbounded.
func (l *LiveRenderer) SetMaxRows(rows int) {
	l.maxRows = rows
}

// Write appends a raw stream chunk. Partial UTF-8 sequences at the
// chunk boundary are held back until completed, control runes are
// dropped, and input that turns out to be binary aborts the stream.
// Each successful call repaints.
func (l *LiveRenderer) Write(p []byte) (int, error) {
	data := p
	if l.tailLen > 0 {
		combined := make([]byte, 0, l.tailLen+len(p))
		combined = append(combined, l.tail[:l.tailLen]...)
		combined = append(combined, p...)
		data = combined
		l.tailLen = 0
	}
	for i := 0; i < len(data); {
		if !utf8.FullRune(data[i:]) {
			break
		}
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			i++
			continue
		}
		if err := l.val.addRune(r, size); err != nil {
			return 0, fmt.Errorf("live: %w", err)
		}
		i += size
	}
	var rest []byte
	l.buf, rest = sanitizeBytes(l.buf, data)
	l.tailLen = copy(l.tail[:], rest)
	if err := l.Repaint(); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Append adds already-clean text without repainting, for callers that
// batch several tokens per paint.
func (l *LiveRenderer) Append(s string) {
	l.buf = append(l.buf, s...)
}

// Buffer returns the accumulated answer text.
func (l *LiveRenderer) Buffer() string {
	return string(l.buf)
}

// Repaint re-renders the buffer and rewrites the painted region.
func (l *LiveRenderer) Repaint() error {
	return l.paint(false)
}

// Finish paints the final, unwindowed view and moves to a fresh line.
func (l *LiveRenderer) Finish() error {
	if err := l.paint(true); err != nil {
		return err
	}
	if _, err := io.WriteString(l.w, "\n"); err != nil {
		return fmt.Errorf("live: write: %w", err)
	}
	return nil
}

// Reset clears buffer and paint state for the next answer.
func (l *LiveRenderer) Reset() {
	l.buf = l.buf[:0]
	l.tailLen = 0
	l.val.reset()
	l.rows = 0
}

func (l *LiveRenderer) paint(final bool) error {
	view := l.renderer.RenderAnswer(string(l.buf))
	if !final && l.maxRows > 0 {
		view = tailRows(view, l.renderer.width, l.maxRows)
	}
	out := bufPool.Get().(*bytes.Buffer)
	out.Reset()
	defer func() {
		out.Reset()
		bufPool.Put(out)
	}()
	if l.rows > 0 {
		out.WriteString("\r")
		if l.rows > 1 {
			fmt.Fprintf(out, "\x1b[%dA", l.rows-1)
		}
		out.WriteString("\x1b[J")
	}
	out.WriteString(view)
	if _, err := l.w.Write(out.Bytes()); err != nil {
		return fmt.Errorf("live: write: %w", err)
	}
	l.rows = countRows(view, l.renderer.width)
	return nil
}

// countRows counts the physical terminal rows s occupies at the given
// width, accounting for lines that wrap.
func countRows(s string, width int) int {
	if s == "" {
		return 0
	}
	rows := 0
	for _, line := range strings.Split(s, "\n") {
		rows += lineRows(line, width)
	}
	return rows
}

func lineRows(line string, width int) int {
	if width <= 0 {
		return 1
	}
	w := visibleWidth(line)
	if w <= width {
		return 1
	}
	return (w + width - 1) / width
}

// tailRows keeps the last lines of s fitting within max physical rows.
func tailRows(s string, width, max int) string {
	lines := strings.Split(s, "\n")
	rows := 0
	start := len(lines)
	for start > 0 {
		r := lineRows(lines[start-1], width)
		if rows+r > max {
			break
		}
		rows += r
		start--
	}
	if start == 0 {
		return s
	}
	return strings.Join(lines[start:], "\n")
}
