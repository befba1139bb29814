package chat

import "errors"

// Event types carried on the inference stream.
const (
	EventToken  = "token"
	EventStatus = "status"
	EventDone   = "done"
	EventError  = "error"
)

// Reasoning modes accepted by the backend.
const (
	ModeDirect        = "direct_reasoning"
	ModeNaiveRAG      = "naive_rag"
	ModeAgenticSearch = "agentic_search"
)

// Modes lists the reasoning modes in display order.
func Modes() []string {
	return []string{ModeDirect, ModeNaiveRAG, ModeAgenticSearch}
}

// ValidMode reports whether mode names a known reasoning mode.
func ValidMode(mode string) bool {
	switch mode {
	case ModeDirect, ModeNaiveRAG, ModeAgenticSearch:
		return true
	}
	return false
}

// Event is one frame of the inference stream.
//
// Token events carry a Content fragment to append to the answer
// buffer. Status events describe backend progress in Stage and
// Message. A done event ends the stream; an error event carries the
// failure in Message.
type Event struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
	Stage   string `json:"stage,omitempty"`
	Message string `json:"message,omitempty"`
}

// Err returns the failure an error event carries, or nil for any
// other event type.
func (e Event) Err() error {
	if e.Type != EventError {
		return nil
	}
	if e.Message == "" {
		return errors.New("backend reported an unspecified error")
	}
	return errors.New(e.Message)
}
