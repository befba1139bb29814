package amf

import "testing"

func TestStripFrontMatter(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "yaml",
			src:  "---\ntitle: Post\ndate: 2026-02-09\n---\n# Hello\n",
			want: "# Hello\n",
		},
		{
			name: "toml",
			src:  "+++\ntitle = \"Post\"\n+++\n# Hello\n",
			want: "# Hello\n",
		},
		{
			name: "json",
			src:  ";;;\n{\"title\": \"Post\"}\n;;;\n# Hello\n",
			want: "# Hello\n",
		},
		{
			name: "crlf delimiters",
			src:  "---\r\ntitle: x\r\n---\r\nBody",
			want: "Body",
		},
		{
			name: "byte order mark",
			src:  "\uFEFF---\ntitle: x\n---\nBody",
			want: "Body",
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := StripFrontMatter(tc.src); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

// A leading thematic break is not front matter. Without a closing
// delimiter or a metadata-looking first line, nothing is stripped.
func TestStripFrontMatterKeepsNonMetadata(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
	}{
		{name: "no closing delimiter", src: "---\ntitle: x\nBody"},
		{name: "prose after delimiter", src: "---\njust text\n---\nBody"},
		{name: "single line", src: "---"},
		{name: "rule then heading", src: "---\n\n# Hello\n"},
		{name: "plain document", src: "# Hello\n\nBody.\n"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := StripFrontMatter(tc.src); got != tc.src {
				t.Fatalf("expected input unchanged, got %q", got)
			}
		})
	}
}
