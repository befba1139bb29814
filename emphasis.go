package amf

import "strings"

// SpanStyle classifies one resolved emphasis span.
type SpanStyle uint8

const (
	SpanPlain SpanStyle = iota
	SpanBold
	SpanItalic
	SpanStrike
)

// Span is a run of text carrying one resolved style.
type Span struct {
	Text  string
	Style SpanStyle
}

// ResolveEmphasis splits a plain-text run into styled spans. It runs
// over Text tokens only, never inside code, link or math tokens.
// Delimiters are tried per position in precedence order ** then ~~ then
// *, first match wins, matches never overlap. A delimiter with no
// closer, or an empty interior, is literal text.
func ResolveEmphasis(text string) []Span {
	var (
		out   []Span
		plain strings.Builder
	)
	flush := func() {
		if plain.Len() > 0 {
			out = append(out, Span{Text: plain.String(), Style: SpanPlain})
			plain.Reset()
		}
	}
	for i := 0; i < len(text); {
		matched := false
		for _, d := range emphasisDelims {
			body, end, ok := delimitedRun(text, i, d.mark)
			if !ok {
				continue
			}
			flush()
			out = append(out, Span{Text: body, Style: d.style})
			i = end
			matched = true
			break
		}
		if !matched {
			plain.WriteByte(text[i])
			i++
		}
	}
	flush()
	return out
}

var emphasisDelims = []struct {
	mark  string
	style SpanStyle
}{
	{"**", SpanBold},
	{"~~", SpanStrike},
	{"*", SpanItalic},
}

// delimitedRun matches a non-empty run enclosed by mark starting at i.
func delimitedRun(s string, i int, mark string) (body string, end int, ok bool) {
	if !strings.HasPrefix(s[i:], mark) {
		return "", 0, false
	}
	open := i + len(mark)
	rel := strings.Index(s[open:], mark)
	if rel < 1 {
		return "", 0, false
	}
	return s[open : open+rel], open + rel + len(mark), true
}
