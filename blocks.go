package amf

// Block is one top-level structural unit produced by ParseBlocks. The
// concrete types are CodeBlock, MathBlock, Heading, ThematicBreak,
// Blockquote, BulletList, OrderedList and Paragraph. Blocks appear in
// source order and never overlap.
type Block interface {
	isBlock()
}

// CodeBlock is a fenced code block. Lang is the trimmed text following
// the opening fence, empty when no language was given. Code holds the
// fenced lines verbatim, without a trailing newline.
type CodeBlock struct {
	Lang string
	Code string
}

// MathBlock is display math fenced by double-dollar markers. Tex is the
// joined interior, trimmed.
type MathBlock struct {
	Tex string
}

// Heading is an ATX heading, Level 1 through 6.
type Heading struct {
	Level int
	Text  string
}

// ThematicBreak is a horizontal rule.
type ThematicBreak struct{}

// Blockquote holds the quoted text with the quote prefixes stripped and
// internal line breaks preserved.
type Blockquote struct {
	Text string
}

// BulletList is an unordered list. Items hold the per-line text with the
// marker stripped.
type BulletList struct {
	Items []string
}

// OrderedList is a numbered list. Items hold the per-line text with the
// number and dot stripped; original numbering is not preserved.
type OrderedList struct {
	Items []string
}

// Paragraph is the fallback block: consecutive plain lines joined with
// their internal newlines preserved.
type Paragraph struct {
	Text string
}

func (CodeBlock) isBlock()     {}
func (MathBlock) isBlock()     {}
func (Heading) isBlock()       {}
func (ThematicBreak) isBlock() {}
func (Blockquote) isBlock()    {}
func (BulletList) isBlock()    {}
func (OrderedList) isBlock()   {}
func (Paragraph) isBlock()     {}
