package amf

import (
	"fmt"
	"strings"
)

const ansiReset = "\x1b[0m"

// Think region titles shown by the composer. The presentation layer
// uses them verbatim.
const (
	thinkTitleActive = "Thinking…"
	thinkTitleDone   = "Thoughts"
)

// Renderer turns segments and blocks into styled terminal text. It is
// stateless across calls and safe to reuse for every repaint of a
// growing buffer.
type Renderer struct {
	styles Styles
	width  int
	cfg    renderConfig
	math   *MathRenderer
}

// NewRenderer builds a Renderer for a theme and printable width.
// width <= 0 disables wrapping. A nil theme selects the default.
func NewRenderer(theme Theme, width int, opts ...RenderOption) *Renderer {
	if theme == nil {
		theme = DefaultTheme()
	}
	cfg := defaultRenderConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Renderer{
		styles: theme.Styles(),
		width:  width,
		cfg:    cfg,
		math:   NewMathRenderer(cfg.engine),
	}
}

// Width returns the configured printable width.
func (r *Renderer) Width() int {
	return r.width
}

// RenderAnswer renders a full response buffer: segmentation first, then
// block parsing per markdown segment.
func (r *Renderer) RenderAnswer(src string) string {
	return r.RenderSegments(SplitSegments(src))
}

// RenderMarkdown renders src as plain markdown without tag handling.
func (r *Renderer) RenderMarkdown(src string) string {
	return r.RenderBlocks(ParseBlocks(src))
}

// RenderSegments renders an already-segmented response.
func (r *Renderer) RenderSegments(segs []Segment) string {
	parts := make([]string, 0, len(segs))
	for _, seg := range segs {
		if p := r.segment(seg); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "\n\n")
}

// RenderBlocks renders a parsed block sequence, one blank line between
// blocks.
func (r *Renderer) RenderBlocks(blocks []Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if p := r.block(b); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "\n\n")
}

// RenderSearches renders the search activity panel.
func (r *Renderer) RenderSearches(items []SearchItem) string {
	var out strings.Builder
	for i, it := range items {
		if i > 0 {
			out.WriteString("\n")
		}
		glyph, st := "…", r.styles.Search
		if it.Status == SearchDone {
			glyph, st = "✓", r.styles.SearchDone
		}
		q := it.Query
		if r.width > 2 {
			q = truncateWithEllipsis(q, r.width-2)
		}
		out.WriteString(r.paint(glyph+" "+q, st))
	}
	return out.String()
}

func (r *Renderer) segment(seg Segment) string {
	switch s := seg.(type) {
	case MarkdownSegment:
		return r.RenderMarkdown(s.Text)
	case ThinkSegment:
		if !r.cfg.think {
			return ""
		}
		title := thinkTitleDone
		if s.InProgress {
			title = thinkTitleActive
		}
		head := r.paint(title, r.styles.ThinkTitle)
		body := r.RenderMarkdown(s.Text)
		if body == "" {
			return head
		}
		return head + "\n" + prefixLines(body, r.styles.ThinkBody.Prefix+"│ ")
	case SearchSegment:
		query := strings.TrimSpace(s.Query)
		if s.InProgress {
			return r.paint("» searching: "+query+"…", r.styles.Search)
		}
		return r.paint("» search: "+query, r.styles.Search)
	case SearchResultSegment:
		title := r.paint("« result", r.styles.SearchDone)
		if s.InProgress {
			title = r.paint("« result…", r.styles.Search)
		}
		body := r.RenderMarkdown(s.Text)
		if body == "" {
			return title
		}
		return title + "\n" + prefixLines(body, r.styles.SearchDone.Prefix+"│ ")
	}
	return ""
}

func (r *Renderer) block(b Block) string {
	switch b := b.(type) {
	case Heading:
		base := r.styles.Heading[b.Level-1]
		return wrapToWidth(r.inline(b.Text, base), r.width)
	case Paragraph:
		return wrapToWidth(r.inline(b.Text, r.styles.Text), r.width)
	case CodeBlock:
		return r.styledLines(b.Code, r.styles.CodeBlock, "  ")
	case MathBlock:
		out, err := r.math.Render(b.Tex, true)
		if err != nil {
			src := mathFence + b.Tex + mathFence
			if strings.Contains(b.Tex, "\n") {
				src = mathFence + "\n" + b.Tex + "\n" + mathFence
			}
			return r.styledLines(src, r.styles.MathError, "  ")
		}
		return r.styledLines(out, r.styles.Math, "  ")
	case ThematicBreak:
		w := r.width
		if w <= 0 {
			w = 40
		}
		return r.paint(strings.Repeat("─", w), r.styles.ThematicBreak)
	case Blockquote:
		body := wrapToWidth(r.inline(b.Text, r.styles.Quote), r.contentWidth(2))
		return prefixLines(body, r.styles.Quote.Prefix+"│ ")
	case BulletList:
		parts := make([]string, 0, len(b.Items))
		for _, item := range b.Items {
			body := wrapToWidth(r.inline(item, r.styles.Text), r.contentWidth(2))
			parts = append(parts, hangingIndent(body, r.paint("• ", r.styles.ListMarker), "  "))
		}
		return strings.Join(parts, "\n")
	case OrderedList:
		parts := make([]string, 0, len(b.Items))
		for i, item := range b.Items {
			marker := fmt.Sprintf("%d. ", i+1)
			body := wrapToWidth(r.inline(item, r.styles.Text), r.contentWidth(len(marker)))
			parts = append(parts, hangingIndent(body, r.paint(marker, r.styles.ListMarker), strings.Repeat(" ", len(marker))))
		}
		return strings.Join(parts, "\n")
	}
	return ""
}

// inline renders block text with base as the ambient style. Styled
// spans restore the ambient style when they close.
func (r *Renderer) inline(text string, base Style) string {
	var out strings.Builder
	out.WriteString(base.Prefix)
	for _, tok := range ParseInlineBlock(text) {
		switch t := tok.(type) {
		case Text:
			r.emphasis(&out, t.Text, base)
		case CodeSpan:
			r.styledInto(&out, r.styles.CodeInline, base, t.Code)
		case Link:
			r.link(&out, t, base)
		case MathSpan:
			r.mathSpan(&out, t.Tex, base)
		case LineBreak:
			out.WriteString("\n")
		}
	}
	if base.Prefix != "" {
		out.WriteString(ansiReset)
	}
	return out.String()
}

func (r *Renderer) emphasis(out *strings.Builder, text string, base Style) {
	for _, span := range ResolveEmphasis(text) {
		switch span.Style {
		case SpanBold:
			r.styledInto(out, r.styles.Strong, base, span.Text)
		case SpanItalic:
			r.styledInto(out, r.styles.Emphasis, base, span.Text)
		case SpanStrike:
			r.styledInto(out, r.styles.Strike, base, span.Text)
		default:
			out.WriteString(span.Text)
		}
	}
}

func (r *Renderer) link(out *strings.Builder, l Link, base Style) {
	label := l.Label
	if label == "" {
		label = l.URL
	}
	if r.cfg.osc8 {
		r.styledInto(out, r.styles.LinkText, base, osc8Link(l.URL, label))
		return
	}
	r.styledInto(out, r.styles.LinkText, base, label)
	limit := 60
	if r.width > 0 {
		limit = max(16, r.width/2)
	}
	r.styledInto(out, r.styles.LinkURL, base, " ("+fitURL(l.URL, limit)+")")
}

func (r *Renderer) mathSpan(out *strings.Builder, tex string, base Style) {
	s, err := r.math.Render(tex, false)
	if err != nil {
		r.styledInto(out, r.styles.MathError, base, "$"+tex+"$")
		return
	}
	r.styledInto(out, r.styles.Math, base, s)
}

// styledInto writes one styled span and restores the ambient style.
func (r *Renderer) styledInto(out *strings.Builder, s, base Style, text string) {
	if s.Prefix == "" {
		out.WriteString(text)
		return
	}
	out.WriteString(s.Prefix)
	out.WriteString(text)
	out.WriteString(ansiReset)
	out.WriteString(base.Prefix)
}

// paint styles a complete run with a trailing reset.
func (r *Renderer) paint(text string, s Style) string {
	if s.Prefix == "" {
		return text
	}
	return s.Prefix + text + ansiReset
}

// styledLines styles text line by line under a fixed indent, verbatim,
// without wrapping.
func (r *Renderer) styledLines(text string, s Style, indent string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = indent + r.paint(line, s)
	}
	return strings.Join(lines, "\n")
}

func hangingIndent(text, first, cont string) string {
	lines := strings.Split(text, "\n")
	for i := range lines {
		if i == 0 {
			lines[i] = first + lines[i]
		} else {
			lines[i] = cont + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) contentWidth(indent int) int {
	if r.width <= 0 {
		return 0
	}
	w := r.width - indent
	if w < 10 {
		w = 10
	}
	return w
}
