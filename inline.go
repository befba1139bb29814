package amf

import "strings"

// Inline is one token of a tokenized line. The concrete types are Text,
// CodeSpan, Link, MathSpan and LineBreak.
type Inline interface {
	isInline()
}

// Text is a literal text run. Emphasis inside it is resolved separately
// by ResolveEmphasis.
type Text struct {
	Text string
}

// CodeSpan is a backtick-delimited code span.
type CodeSpan struct {
	Code string
}

// Link is an inline [label](url) link.
type Link struct {
	Label string
	URL   string
}

// MathSpan is dollar-delimited inline math. Tex is the interior,
// trimmed.
type MathSpan struct {
	Tex string
}

// LineBreak separates the token runs of consecutive lines in a
// multi-line block.
type LineBreak struct{}

func (Text) isInline()      {}
func (CodeSpan) isInline()  {}
func (Link) isInline()      {}
func (MathSpan) isInline()  {}
func (LineBreak) isInline() {}

// ParseInline tokenizes one physical line. It is total: any dangling
// delimiter degrades to literal text. Precedence at each position is
// escaped dollar, code span, link, inline math, then plain text.
func ParseInline(line string) []Inline {
	var (
		out  []Inline
		text strings.Builder
	)
	flush := func() {
		if text.Len() > 0 {
			out = append(out, Text{Text: text.String()})
			text.Reset()
		}
	}
	for i := 0; i < len(line); {
		switch c := line[i]; {
		case c == '\\' && i+1 < len(line) && line[i+1] == '$':
			text.WriteByte('$')
			i += 2
		case c == '`':
			j := strings.IndexByte(line[i+1:], '`')
			if j < 0 {
				text.WriteByte(c)
				i++
				break
			}
			flush()
			out = append(out, CodeSpan{Code: line[i+1 : i+1+j]})
			i += j + 2
		case c == '[':
			label, url, end, ok := scanLink(line, i)
			if !ok {
				text.WriteByte(c)
				i++
				break
			}
			flush()
			out = append(out, Link{Label: label, URL: url})
			i = end
		case c == '$':
			// $$ inside a line is literal, typically a display math
			// boundary that ended up mid-paragraph. Never an empty
			// math span.
			if i+1 < len(line) && line[i+1] == '$' {
				text.WriteString("$$")
				i += 2
				break
			}
			j := closingDollar(line, i+1)
			if j < 0 {
				text.WriteByte(c)
				i++
				break
			}
			tex := strings.TrimSpace(line[i+1 : j])
			if tex == "" {
				text.WriteByte(c)
				i++
				break
			}
			flush()
			out = append(out, MathSpan{Tex: tex})
			i = j + 1
		default:
			text.WriteByte(c)
			i++
		}
	}
	flush()
	return out
}

// ParseInlineBlock tokenizes multi-line block text, inserting a
// LineBreak between the token runs of consecutive lines.
func ParseInlineBlock(text string) []Inline {
	var out []Inline
	for n, line := range strings.Split(text, "\n") {
		if n > 0 {
			out = append(out, LineBreak{})
		}
		out = append(out, ParseInline(line)...)
	}
	return out
}

// scanLink matches [label](url) starting at the bracket. Nested
// brackets are unsupported; the first ] closes the label.
func scanLink(s string, i int) (label, url string, end int, ok bool) {
	rb := strings.IndexByte(s[i+1:], ']')
	if rb < 0 {
		return "", "", 0, false
	}
	lb := i + 1 + rb
	if lb+1 >= len(s) || s[lb+1] != '(' {
		return "", "", 0, false
	}
	rp := strings.IndexByte(s[lb+2:], ')')
	if rp < 0 {
		return "", "", 0, false
	}
	return s[i+1 : lb], s[lb+2 : lb+2+rp], lb + 2 + rp + 1, true
}

// closingDollar returns the index of the next unescaped dollar at or
// after from, or -1.
func closingDollar(s string, from int) int {
	for j := from; j < len(s); j++ {
		if s[j] == '$' && s[j-1] != '\\' {
			return j
		}
	}
	return -1
}
