package chat

import "testing"

func TestModes(t *testing.T) {
	t.Parallel()
	want := []string{ModeDirect, ModeNaiveRAG, ModeAgenticSearch}
	got := Modes()
	if len(got) != len(want) {
		t.Fatalf("expected %d modes, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("mode %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestValidMode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		mode string
		want bool
	}{
		{ModeDirect, true},
		{ModeNaiveRAG, true},
		{ModeAgenticSearch, true},
		{"", false},
		{"fast", false},
		{"DIRECT_REASONING", false},
	}
	for _, tc := range tests {
		if got := ValidMode(tc.mode); got != tc.want {
			t.Errorf("ValidMode(%q): expected %v, got %v", tc.mode, tc.want, got)
		}
	}
}

func TestEventErr(t *testing.T) {
	t.Parallel()
	if err := (Event{Type: EventToken, Content: "hi"}).Err(); err != nil {
		t.Errorf("expected nil error for token event, got %v", err)
	}
	if err := (Event{Type: EventError, Message: "model exploded"}).Err(); err == nil || err.Error() != "model exploded" {
		t.Errorf("expected error message from event, got %v", err)
	}
	if err := (Event{Type: EventError}).Err(); err == nil || err.Error() != "backend reported an unspecified error" {
		t.Errorf("expected placeholder error for blank message, got %v", err)
	}
}
