package amf

import "strings"

// SearchStatus is a SearchItem lifecycle state.
type SearchStatus uint8

const (
	Searching SearchStatus = iota
	SearchDone
)

func (s SearchStatus) String() string {
	if s == SearchDone {
		return "done"
	}
	return "searching"
}

// SearchItem tracks one search issued while answering. The trimmed
// query is the identity key.
type SearchItem struct {
	Query  string
	Status SearchStatus
	Result string
}

// SearchList accumulates search activity for display alongside the
// answer. The zero value is ready to use. Entries are upserted by
// trimmed query, most recent wins, and keep their first-seen order.
type SearchList struct {
	items []SearchItem
}

// Upsert records that query is being searched. Re-searching an existing
// query resets it to Searching and discards the stale result. Queries
// that trim to nothing are ignored.
func (l *SearchList) Upsert(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}
	if i := l.find(query); i >= 0 {
		l.items[i].Status = Searching
		l.items[i].Result = ""
		return
	}
	l.items = append(l.items, SearchItem{Query: query, Status: Searching})
}

// Complete marks query as done with its result, inserting the entry if
// it was never upserted.
func (l *SearchList) Complete(query, result string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}
	if i := l.find(query); i >= 0 {
		l.items[i].Status = SearchDone
		l.items[i].Result = result
		return
	}
	l.items = append(l.items, SearchItem{Query: query, Status: SearchDone, Result: result})
}

// resolveLast attaches a result that arrived without a query to the
// most recent entry still searching.
func (l *SearchList) resolveLast(result string) {
	for i := len(l.items) - 1; i >= 0; i-- {
		if l.items[i].Status == Searching {
			l.items[i].Status = SearchDone
			l.items[i].Result = result
			return
		}
	}
}

func (l *SearchList) find(query string) int {
	for i := range l.items {
		if l.items[i].Query == query {
			return i
		}
	}
	return -1
}

// Items returns a copy of the current entries in display order.
func (l *SearchList) Items() []SearchItem {
	out := make([]SearchItem, len(l.items))
	copy(out, l.items)
	return out
}

// SearchesFromSegments derives the activity list from a segment
// sequence. Only completed tags count: an in-progress query is still
// growing and would churn the identity key. A search result completes
// the most recent search still running.
func SearchesFromSegments(segs []Segment) []SearchItem {
	var list SearchList
	for _, seg := range segs {
		switch s := seg.(type) {
		case SearchSegment:
			if !s.InProgress {
				list.Upsert(s.Query)
			}
		case SearchResultSegment:
			if !s.InProgress {
				list.resolveLast(s.Text)
			}
		}
	}
	return list.Items()
}
