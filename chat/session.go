package chat

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// Record kinds stored in transcript files.
const (
	recordMeta  = "meta"
	recordEvent = "event"
)

// SessionMeta describes the inference a transcript captures.
type SessionMeta struct {
	Query   string    `json:"query"`
	Model   string    `json:"model"`
	Mode    string    `json:"mode"`
	Started time.Time `json:"started"`
}

// sessionRecord is one line of a transcript file.
type sessionRecord struct {
	Kind  string       `json:"kind"`
	At    time.Time    `json:"at"`
	Meta  *SessionMeta `json:"meta,omitempty"`
	Event *Event       `json:"event,omitempty"`
}

// SessionWriter appends an inference stream to a JSONL transcript.
// Transcripts replay later at their recorded pace, or render in one
// shot from the concatenated answer.
type SessionWriter struct {
	enc *json.Encoder
	now func() time.Time
}

// NewSessionWriter starts a transcript on w with the given metadata.
func NewSessionWriter(w io.Writer, meta SessionMeta) (*SessionWriter, error) {
	if w == nil {
		return nil, fmt.Errorf("session: writer is nil")
	}
	sw := &SessionWriter{enc: json.NewEncoder(w), now: time.Now}
	if meta.Started.IsZero() {
		meta.Started = sw.now()
	}
	if err := sw.enc.Encode(sessionRecord{Kind: recordMeta, At: meta.Started, Meta: &meta}); err != nil {
		return nil, fmt.Errorf("session: write meta: %w", err)
	}
	return sw, nil
}

// Record appends one event to the transcript.
func (sw *SessionWriter) Record(ev Event) error {
	rec := sessionRecord{Kind: recordEvent, At: sw.now(), Event: &ev}
	if err := sw.enc.Encode(rec); err != nil {
		return fmt.Errorf("session: write event: %w", err)
	}
	return nil
}

// TimedEvent is a transcript event with the moment it was recorded.
type TimedEvent struct {
	At    time.Time
	Event Event
}

// Session is a fully read transcript.
type Session struct {
	Meta   SessionMeta
	Events []TimedEvent
}

// Answer returns the concatenated content of the transcript's token
// events, which is the full answer buffer the stream produced.
func (s *Session) Answer() string {
	var b strings.Builder
	for _, te := range s.Events {
		if te.Event.Type == EventToken {
			b.WriteString(te.Event.Content)
		}
	}
	return b.String()
}

// ReadSession decodes a JSONL transcript. Blank lines are skipped;
// records of unknown kind are ignored so transcripts stay readable
// across format growth.
func ReadSession(r io.Reader) (*Session, error) {
	if r == nil {
		return nil, fmt.Errorf("session: reader is nil")
	}
	scanner := bufio.NewScanner(r)
	// Token events can be large when the backend sends whole
	// paragraphs per frame.
	scanner.Buffer(make([]byte, 1024), 8*1024*1024)

	var s Session
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var rec sessionRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("session: line %d: %w", line, err)
		}
		switch {
		case rec.Kind == recordMeta && rec.Meta != nil:
			s.Meta = *rec.Meta
		case rec.Kind == recordEvent && rec.Event != nil:
			s.Events = append(s.Events, TimedEvent{At: rec.At, Event: *rec.Event})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("session: scan: %w", err)
	}
	return &s, nil
}
