package amf

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolveEmphasis(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		text string
		want []Span
	}{
		{
			name: "bold",
			text: "a **b** c",
			want: []Span{
				{Text: "a ", Style: SpanPlain},
				{Text: "b", Style: SpanBold},
				{Text: " c", Style: SpanPlain},
			},
		},
		{
			name: "italic",
			text: "*x*",
			want: []Span{{Text: "x", Style: SpanItalic}},
		},
		{
			name: "strike",
			text: "~~gone~~",
			want: []Span{{Text: "gone", Style: SpanStrike}},
		},
		{
			name: "bold wins over italic",
			text: "**a** and *b*",
			want: []Span{
				{Text: "a", Style: SpanBold},
				{Text: " and ", Style: SpanPlain},
				{Text: "b", Style: SpanItalic},
			},
		},
		{
			name: "unclosed is literal",
			text: "**open",
			want: []Span{{Text: "**open", Style: SpanPlain}},
		},
		{
			name: "empty interior is literal",
			text: "****",
			want: []Span{{Text: "****", Style: SpanPlain}},
		},
		{
			name: "no emphasis",
			text: "plain words",
			want: []Span{{Text: "plain words", Style: SpanPlain}},
		},
		{
			name: "strike then italic",
			text: "~~a~~ *b*",
			want: []Span{
				{Text: "a", Style: SpanStrike},
				{Text: " ", Style: SpanPlain},
				{Text: "b", Style: SpanItalic},
			},
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ResolveEmphasis(tc.text)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("spans mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveEmphasisEmptyInput(t *testing.T) {
	t.Parallel()
	if got := ResolveEmphasis(""); len(got) != 0 {
		t.Fatalf("expected no spans, got %v", got)
	}
}

// Matches never overlap: after a span closes, scanning resumes past its
// closing delimiter.
func TestResolveEmphasisNonOverlapping(t *testing.T) {
	t.Parallel()
	got := ResolveEmphasis("**a** b **c**")
	want := []Span{
		{Text: "a", Style: SpanBold},
		{Text: " b ", Style: SpanPlain},
		{Text: "c", Style: SpanBold},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("spans mismatch (-want +got):\n%s", diff)
	}
}
