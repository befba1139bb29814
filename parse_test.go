package amf

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseBlocksEmptyInput(t *testing.T) {
	t.Parallel()
	if got := ParseBlocks(""); len(got) != 0 {
		t.Fatalf("expected no blocks, got %v", got)
	}
	if got := ParseBlocks("  \n\n\t\n"); len(got) != 0 {
		t.Fatalf("expected no blocks for blank input, got %v", got)
	}
}

func TestParseBlocksUnterminatedFence(t *testing.T) {
	t.Parallel()
	got := ParseBlocks("```python\nprint(1)")
	want := []Block{CodeBlock{Lang: "python", Code: "print(1)"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBlocksFencedCode(t *testing.T) {
	t.Parallel()
	got := ParseBlocks("```go\na := 1\nb := 2\n```\ntail")
	want := []Block{
		CodeBlock{Lang: "go", Code: "a := 1\nb := 2"},
		Paragraph{Text: "tail"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBlocksSingleLineDisplayMath(t *testing.T) {
	t.Parallel()
	got := ParseBlocks("$$x=1$$")
	want := []Block{MathBlock{Tex: "x=1"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBlocksDisplayMath(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
		tex  string
	}{
		{name: "multi line", src: "$$\nE = mc^2\n$$", tex: "E = mc^2"},
		{name: "content on open line", src: "$$a+b\n= c$$", tex: "a+b\n= c"},
		{name: "unterminated single line", src: "$$x=1", tex: "x=1"},
		{name: "unterminated multi line", src: "$$\n\\frac{a}{b}", tex: "\\frac{a}{b}"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ParseBlocks(tc.src)
			want := []Block{MathBlock{Tex: tc.tex}}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseBlocksHeadings(t *testing.T) {
	t.Parallel()
	got := ParseBlocks("# One\n###### Six\n   ## Indented")
	want := []Block{
		Heading{Level: 1, Text: "One"},
		Heading{Level: 6, Text: "Six"},
		Heading{Level: 2, Text: "Indented"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBlocksHeadingRejects(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
	}{
		{name: "seven hashes", src: "####### Seven"},
		{name: "no space after hashes", src: "#tag"},
		{name: "empty text", src: "## "},
		{name: "indented four spaces", src: "    # deep"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ParseBlocks(tc.src)
			if len(got) != 1 {
				t.Fatalf("expected one block, got %v", got)
			}
			if _, ok := got[0].(Heading); ok {
				t.Fatalf("expected non-heading for %q, got %v", tc.src, got[0])
			}
		})
	}
}

func TestParseBlocksThematicBreak(t *testing.T) {
	t.Parallel()
	for _, src := range []string{"---", "***", "_____", "  ----  "} {
		got := ParseBlocks(src)
		want := []Block{ThematicBreak{}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("%q mismatch (-want +got):\n%s", src, diff)
		}
	}
	for _, src := range []string{"--", "-*-", "--- x"} {
		got := ParseBlocks(src)
		if len(got) != 1 {
			t.Fatalf("expected one block for %q, got %v", src, got)
		}
		if _, ok := got[0].(ThematicBreak); ok {
			t.Fatalf("%q must not be a thematic break", src)
		}
	}
}

func TestParseBlocksBlockquote(t *testing.T) {
	t.Parallel()
	got := ParseBlocks("> first\n> second\nAfter.")
	want := []Block{
		Blockquote{Text: "first\nsecond"},
		Paragraph{Text: "After."},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBlocksBlockquoteSwallowsBlankLines(t *testing.T) {
	t.Parallel()
	got := ParseBlocks("> one\n\n> two")
	want := []Block{Blockquote{Text: "one\n\ntwo"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}

	got = ParseBlocks("> quote\n\nplain")
	want = []Block{
		Blockquote{Text: "quote"},
		Paragraph{Text: "plain"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBlocksBulletList(t *testing.T) {
	t.Parallel()
	got := ParseBlocks("- alpha\n* beta\n+ gamma\ntail")
	want := []Block{
		BulletList{Items: []string{"alpha", "beta", "gamma"}},
		Paragraph{Text: "tail"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBlocksOrderedList(t *testing.T) {
	t.Parallel()
	got := ParseBlocks("1. first\n2. second\n10. tenth")
	want := []Block{OrderedList{Items: []string{"first", "second", "tenth"}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBlocksParagraphStopsAtBlockStart(t *testing.T) {
	t.Parallel()
	got := ParseBlocks("line one\nline two\n# Head\ntext\n```go\nx\n```")
	want := []Block{
		Paragraph{Text: "line one\nline two"},
		Heading{Level: 1, Text: "Head"},
		Paragraph{Text: "text"},
		CodeBlock{Lang: "go", Code: "x"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBlocksMixedDocument(t *testing.T) {
	t.Parallel()
	got := ParseBlocks("# Title\n\nSome **bold** text with $a+b$ math.")
	want := []Block{
		Heading{Level: 1, Text: "Title"},
		Paragraph{Text: "Some **bold** text with $a+b$ math."},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBlocksNormalizesCRLF(t *testing.T) {
	t.Parallel()
	got := ParseBlocks("# A\r\n\r\nB\r\nC")
	want := []Block{
		Heading{Level: 1, Text: "A"},
		Paragraph{Text: "B\nC"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
}

// ParseBlocks must accept anything a stream can be cut into, and two
// runs over the same buffer must agree exactly.
func TestParseBlocksTotalAndDeterministic(t *testing.T) {
	t.Parallel()
	inputs := []string{
		"",
		"```",
		"```\n```",
		"$$",
		"$$$$",
		">",
		"> ",
		"- ",
		"1.",
		"#",
		"\x01\x02 control noise",
		"plain\n\n\n\nmore",
		strings.Repeat("x", 10000),
		strings.Repeat("# h\n$$\n```\n> q\n- i\n1. o\n---\n", 50),
		"<think>cut mid",
	}
	for _, src := range inputs {
		first := ParseBlocks(src)
		second := ParseBlocks(src)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("non-deterministic parse of %q (-first +second):\n%s", src, diff)
		}
	}
}
