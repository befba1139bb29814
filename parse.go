package amf

import "strings"

// ParseBlocks splits src into an ordered sequence of top-level blocks.
// It is total: any input, including an empty string or text cut mid
// construct by streaming, yields a valid sequence. Unterminated fences
// consume to end of input. CRLF line endings are normalized first.
//
// Block-start patterns are tried per line in fixed precedence: fenced
// code, display math, thematic break, heading, blockquote, bullet list,
// ordered list, then paragraph as the default. Blank lines separate
// blocks and are not emitted.
func ParseBlocks(src string) []Block {
	lines := strings.Split(NormalizeNewlines(src), "\n")
	var blocks []Block
	for i := 0; i < len(lines); {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			i++
			continue
		}
		var b Block
		switch {
		case isFenceLine(line):
			b, i = scanFencedCode(lines, i)
		case isMathFenceLine(line):
			b, i = scanDisplayMath(lines, i)
		case isThematicBreak(line):
			b, i = ThematicBreak{}, i+1
		case isHeadingLine(line):
			b, i = scanHeading(lines, i)
		case isQuoteLine(line):
			b, i = scanBlockquote(lines, i)
		case isBulletLine(line):
			b, i = scanBulletList(lines, i)
		case isOrderedLine(line):
			b, i = scanOrderedList(lines, i)
		default:
			b, i = scanParagraph(lines, i)
		}
		blocks = append(blocks, b)
	}
	return blocks
}

const codeFence = "```"

func isFenceLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), codeFence)
}

// scanFencedCode consumes lines verbatim until a line that is exactly a
// closing fence, or end of input.
func scanFencedCode(lines []string, i int) (Block, int) {
	lang := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(lines[i]), codeFence))
	i++
	start := i
	for i < len(lines) && strings.TrimSpace(lines[i]) != codeFence {
		i++
	}
	code := strings.Join(lines[start:i], "\n")
	if i < len(lines) {
		i++
	}
	return CodeBlock{Lang: lang, Code: code}, i
}

const mathFence = "$$"

func isMathFenceLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), mathFence)
}

// scanDisplayMath handles the single-line $$...$$ form immediately and
// otherwise accumulates lines until one ends with the closing marker or
// input runs out.
func scanDisplayMath(lines []string, i int) (Block, int) {
	t := strings.TrimSpace(lines[i])
	if len(t) > 2*len(mathFence) && strings.HasSuffix(t, mathFence) {
		tex := strings.TrimSpace(t[len(mathFence) : len(t)-len(mathFence)])
		return MathBlock{Tex: tex}, i + 1
	}
	parts := []string{t[len(mathFence):]}
	i++
	for i < len(lines) {
		lt := strings.TrimSpace(lines[i])
		if strings.HasSuffix(lt, mathFence) {
			parts = append(parts, strings.TrimSuffix(lt, mathFence))
			i++
			break
		}
		parts = append(parts, lines[i])
		i++
	}
	return MathBlock{Tex: strings.TrimSpace(strings.Join(parts, "\n"))}, i
}

// isThematicBreak reports whether the line, trimmed, is three or more of
// the same rule character and nothing else.
func isThematicBreak(line string) bool {
	t := strings.TrimSpace(line)
	if len(t) < 3 {
		return false
	}
	c := t[0]
	if c != '-' && c != '*' && c != '_' {
		return false
	}
	for i := 1; i < len(t); i++ {
		if t[i] != c {
			return false
		}
	}
	return true
}

// stripIndent removes up to max leading spaces. ok is false when the
// line is indented deeper than max.
func stripIndent(line string, max int) (string, bool) {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	if n > max {
		return "", false
	}
	return line[n:], true
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

// parseHeading matches 1..6 leading # characters followed by required
// whitespace and non-empty text. Up to three leading spaces are
// tolerated.
func parseHeading(line string) (level int, text string, ok bool) {
	s, ok := stripIndent(line, 3)
	if !ok {
		return 0, "", false
	}
	n := 0
	for n < len(s) && s[n] == '#' {
		n++
	}
	if n < 1 || n > 6 || n >= len(s) || !isSpace(s[n]) {
		return 0, "", false
	}
	text = strings.TrimSpace(s[n:])
	if text == "" {
		return 0, "", false
	}
	return n, text, true
}

func isHeadingLine(line string) bool {
	_, _, ok := parseHeading(line)
	return ok
}

func scanHeading(lines []string, i int) (Block, int) {
	level, text, _ := parseHeading(lines[i])
	return Heading{Level: level, Text: text}, i + 1
}

// quoteRest strips the > prefix (up to three leading spaces tolerated,
// one optional space after the marker).
func quoteRest(line string) (string, bool) {
	s, ok := stripIndent(line, 3)
	if !ok || !strings.HasPrefix(s, ">") {
		return "", false
	}
	s = s[1:]
	if strings.HasPrefix(s, " ") {
		s = s[1:]
	}
	return s, true
}

func isQuoteLine(line string) bool {
	_, ok := quoteRest(line)
	return ok
}

// scanBlockquote consumes quote-prefixed lines and keeps blank lines as
// empty continuation lines, stopping at the first line that is neither.
// Blank lines are swallowed even when no further quoted line follows;
// the trailing ones disappear in the final trim.
func scanBlockquote(lines []string, i int) (Block, int) {
	rest, _ := quoteRest(lines[i])
	parts := []string{rest}
	i++
	for i < len(lines) {
		if rest, ok := quoteRest(lines[i]); ok {
			parts = append(parts, rest)
		} else if strings.TrimSpace(lines[i]) == "" {
			parts = append(parts, "")
		} else {
			break
		}
		i++
	}
	return Blockquote{Text: strings.TrimSpace(strings.Join(parts, "\n"))}, i
}

// bulletItem matches -, * or + followed by whitespace and non-empty
// text. All three markers belong to the same list.
func bulletItem(line string) (string, bool) {
	s, ok := stripIndent(line, 3)
	if !ok || len(s) < 2 {
		return "", false
	}
	if s[0] != '-' && s[0] != '*' && s[0] != '+' {
		return "", false
	}
	if !isSpace(s[1]) {
		return "", false
	}
	item := strings.TrimSpace(s[1:])
	if item == "" {
		return "", false
	}
	return item, true
}

func isBulletLine(line string) bool {
	_, ok := bulletItem(line)
	return ok
}

func scanBulletList(lines []string, i int) (Block, int) {
	var items []string
	for i < len(lines) {
		item, ok := bulletItem(lines[i])
		if !ok {
			break
		}
		items = append(items, item)
		i++
	}
	return BulletList{Items: items}, i
}

// orderedItem matches one or more digits, a dot, whitespace and
// non-empty text.
func orderedItem(line string) (string, bool) {
	s, ok := stripIndent(line, 3)
	if !ok {
		return "", false
	}
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	if n == 0 || n+1 >= len(s) || s[n] != '.' || !isSpace(s[n+1]) {
		return "", false
	}
	item := strings.TrimSpace(s[n+1:])
	if item == "" {
		return "", false
	}
	return item, true
}

func isOrderedLine(line string) bool {
	_, ok := orderedItem(line)
	return ok
}

func scanOrderedList(lines []string, i int) (Block, int) {
	var items []string
	for i < len(lines) {
		item, ok := orderedItem(lines[i])
		if !ok {
			break
		}
		items = append(items, item)
		i++
	}
	return OrderedList{Items: items}, i
}

// scanParagraph consumes non-blank lines until one matches an earlier
// pattern, preserving internal newlines.
func scanParagraph(lines []string, i int) (Block, int) {
	start := i
	for i < len(lines) {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			break
		}
		if i > start && startsNewBlock(line) {
			break
		}
		i++
	}
	return Paragraph{Text: strings.Join(lines[start:i], "\n")}, i
}

func startsNewBlock(line string) bool {
	return isFenceLine(line) ||
		isMathFenceLine(line) ||
		isThematicBreak(line) ||
		isHeadingLine(line) ||
		isQuoteLine(line) ||
		isBulletLine(line) ||
		isOrderedLine(line)
}
