package amf

import "strings"

// StripFrontMatter removes a metadata header fenced by ---, +++ or ;;;
// from the top of file input. The header only counts as front matter
// when its first line looks like metadata and the closing delimiter
// exists; otherwise src is returned unchanged, so an answer that opens
// with a thematic break never loses text.
func StripFrontMatter(src string) string {
	body := strings.TrimPrefix(src, "\uFEFF")
	open, rest, ok := strings.Cut(body, "\n")
	if !ok {
		return src
	}
	delim := strings.TrimSpace(strings.TrimSuffix(open, "\r"))
	switch delim {
	case "---", "+++", ";;;":
	default:
		return src
	}
	second, _, _ := strings.Cut(rest, "\n")
	if !metadataLikely(strings.TrimSuffix(second, "\r")) {
		return src
	}
	for offset := 0; offset < len(rest); {
		nl := strings.IndexByte(rest[offset:], '\n')
		var line string
		next := len(rest)
		if nl < 0 {
			line = rest[offset:]
		} else {
			line = rest[offset : offset+nl]
			next = offset + nl + 1
		}
		if strings.TrimSpace(strings.TrimSuffix(line, "\r")) == delim {
			return rest[next:]
		}
		offset = next
	}
	return src
}

func metadataLikely(line string) bool {
	t := strings.TrimSpace(line)
	if t == "" {
		return false
	}
	if strings.HasPrefix(t, "{") || strings.HasPrefix(t, "[") {
		return true
	}
	return strings.ContainsAny(t, ":=")
}
