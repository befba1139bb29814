package amf

import "strings"

// Segment is one region of a segmented response buffer. The concrete
// types are MarkdownSegment, ThinkSegment, SearchSegment and
// SearchResultSegment. At most the last segment of a sequence can be in
// progress.
type Segment interface {
	isSegment()
}

// MarkdownSegment is untagged response text, parsed further with
// ParseBlocks.
type MarkdownSegment struct {
	Text string
}

// ThinkSegment is a <think> region holding the model's reasoning.
// InProgress is true while the closing tag has not arrived yet.
type ThinkSegment struct {
	Text       string
	InProgress bool
}

// SearchSegment is a <search> region. Query is the exact interior text;
// its trimmed form identifies the search.
type SearchSegment struct {
	Query      string
	InProgress bool
}

// SearchResultSegment is a <search_result> region carrying retrieved
// material, parsed further with ParseBlocks when rendered.
type SearchResultSegment struct {
	Text       string
	InProgress bool
}

func (MarkdownSegment) isSegment()     {}
func (ThinkSegment) isSegment()        {}
func (SearchSegment) isSegment()       {}
func (SearchResultSegment) isSegment() {}

// agentTags are the recognized region names. Markers are the exact
// strings <name> and </name>, flat, without attributes or nesting.
var agentTags = [...]string{"think", "search", "search_result"}

// SplitSegments splits a response buffer into ordered segments. It is
// total and deterministic, and over a growing buffer it is prefix
// stable: re-running it on an extended buffer reproduces every
// completed segment byte-identically and may only refine the last one.
//
// Text before the earliest opening marker becomes a Markdown segment.
// A tag whose closing marker has arrived yields a completed segment; an
// unterminated tag yields an in-progress segment holding the interior
// seen so far, which necessarily ends the sequence. Markdown segments
// that trim to nothing are dropped.
func SplitSegments(src string) []Segment {
	src = NormalizeNewlines(src)
	var segs []Segment
	cur := 0
	for cur < len(src) {
		name, at := nextOpenTag(src, cur)
		if at < 0 {
			segs = appendMarkdown(segs, src[cur:])
			break
		}
		segs = appendMarkdown(segs, src[cur:at])
		inner := at + len(name) + 2
		closer := "</" + name + ">"
		end := strings.Index(src[inner:], closer)
		if end < 0 {
			interior := trimPartialCloser(src[inner:], closer)
			segs = append(segs, taggedSegment(name, interior, true))
			break
		}
		segs = append(segs, taggedSegment(name, src[inner:inner+end], false))
		cur = inner + end + len(closer)
	}
	return segs
}

// nextOpenTag finds the earliest opening marker at or after from.
// at is -1 when no marker exists.
func nextOpenTag(s string, from int) (name string, at int) {
	at = -1
	for _, tag := range agentTags {
		i := strings.Index(s[from:], "<"+tag+">")
		if i < 0 {
			continue
		}
		if at < 0 || from+i < at {
			name, at = tag, from+i
		}
	}
	return name, at
}

// trimPartialCloser drops a trailing incomplete closing marker from an
// in-progress interior, so the visible text never shows tag syntax that
// the next chunk will complete.
func trimPartialCloser(text, closer string) string {
	i := strings.LastIndexByte(text, '<')
	if i < 0 {
		return text
	}
	tail := text[i:]
	if len(tail) < len(closer) && strings.HasPrefix(closer, tail) {
		return text[:i]
	}
	return text
}

func taggedSegment(name, text string, inProgress bool) Segment {
	switch name {
	case "think":
		return ThinkSegment{Text: text, InProgress: inProgress}
	case "search":
		return SearchSegment{Query: text, InProgress: inProgress}
	default:
		return SearchResultSegment{Text: text, InProgress: inProgress}
	}
}

func appendMarkdown(segs []Segment, text string) []Segment {
	if strings.TrimSpace(text) == "" {
		return segs
	}
	return append(segs, MarkdownSegment{Text: text})
}
