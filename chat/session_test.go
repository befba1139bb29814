package chat

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestSessionRoundTrip(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	sw, err := NewSessionWriter(&buf, SessionMeta{
		Query: "what is entropy",
		Model: "qwen-local",
		Mode:  ModeDirect,
	})
	if err != nil {
		t.Fatalf("new session writer: %v", err)
	}
	events := []Event{
		{Type: EventStatus, Stage: "generate", Message: "thinking"},
		{Type: EventToken, Content: "Entropy "},
		{Type: EventToken, Content: "measures disorder."},
		{Type: EventDone},
	}
	for _, ev := range events {
		if err := sw.Record(ev); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	s, err := ReadSession(&buf)
	if err != nil {
		t.Fatalf("read session: %v", err)
	}
	if s.Meta.Query != "what is entropy" || s.Meta.Model != "qwen-local" || s.Meta.Mode != ModeDirect {
		t.Errorf("meta mismatch: %+v", s.Meta)
	}
	if s.Meta.Started.IsZero() {
		t.Error("expected writer to stamp a start time")
	}
	if len(s.Events) != len(events) {
		t.Fatalf("expected %d events, got %d", len(events), len(s.Events))
	}
	for i, te := range s.Events {
		if te.Event != events[i] {
			t.Errorf("event %d: expected %+v, got %+v", i, events[i], te.Event)
		}
		if te.At.IsZero() {
			t.Errorf("event %d: expected a timestamp", i)
		}
	}
	if got := s.Answer(); got != "Entropy measures disorder." {
		t.Errorf("expected answer from token events, got %q", got)
	}
}

func TestSessionWriterKeepsExplicitStart(t *testing.T) {
	t.Parallel()
	started := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	var buf bytes.Buffer
	if _, err := NewSessionWriter(&buf, SessionMeta{Query: "q", Started: started}); err != nil {
		t.Fatalf("new session writer: %v", err)
	}
	s, err := ReadSession(&buf)
	if err != nil {
		t.Fatalf("read session: %v", err)
	}
	if !s.Meta.Started.Equal(started) {
		t.Fatalf("expected start %v, got %v", started, s.Meta.Started)
	}
}

func TestSessionWriterRequiresWriter(t *testing.T) {
	t.Parallel()
	if _, err := NewSessionWriter(nil, SessionMeta{}); err == nil || !strings.Contains(err.Error(), "writer is nil") {
		t.Fatalf("expected nil writer error, got %v", err)
	}
}

func TestReadSessionSkipsBlankAndUnknownRecords(t *testing.T) {
	t.Parallel()
	transcript := strings.Join([]string{
		`{"kind":"meta","at":"2026-01-02T15:04:05Z","meta":{"query":"q","model":"m","mode":"direct_reasoning","started":"2026-01-02T15:04:05Z"}}`,
		``,
		`{"kind":"comment","note":"ignore me"}`,
		`{"kind":"meta","at":"2026-01-02T15:04:05Z"}`,
		`{"kind":"event","at":"2026-01-02T15:04:06Z"}`,
		`{"kind":"event","at":"2026-01-02T15:04:07Z","event":{"type":"token","content":"hi"}}`,
	}, "\n")

	s, err := ReadSession(strings.NewReader(transcript))
	if err != nil {
		t.Fatalf("read session: %v", err)
	}
	if s.Meta.Query != "q" {
		t.Errorf("expected meta from first record, got %+v", s.Meta)
	}
	if len(s.Events) != 1 || s.Events[0].Event.Content != "hi" {
		t.Fatalf("expected single token event, got %+v", s.Events)
	}
}

func TestReadSessionReportsBadLine(t *testing.T) {
	t.Parallel()
	transcript := `{"kind":"meta","at":"2026-01-02T15:04:05Z","meta":{"query":"q"}}` + "\n" + `{"kind":`
	_, err := ReadSession(strings.NewReader(transcript))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected line 2 in error, got %v", err)
	}
}

func TestReadSessionRequiresReader(t *testing.T) {
	t.Parallel()
	if _, err := ReadSession(nil); err == nil || !strings.Contains(err.Error(), "reader is nil") {
		t.Fatalf("expected nil reader error, got %v", err)
	}
}
