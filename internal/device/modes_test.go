package device

import (
	"context"
	"testing"
	"time"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"text_image", ModeTextImage},
		{"clock", ModeClock},
		{"rhythm", ModeRhythm},
		{"fun", ModeFun},
		{"", ModeTextImage},
		{"disco", ModeTextImage},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseMode(tt.in); got != tt.want {
				t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestUpdateStubModesFail(t *testing.T) {
	tr := newFakeTransport()
	s := newTestSession(t, tr)

	for _, mode := range []Mode{ModeRhythm, ModeFun} {
		err := s.Update(context.Background(), mode, UpdateRequest{})
		if !IsUnsupportedModeError(err) {
			t.Errorf("Update(%q) error = %v, want unsupported mode", mode, err)
		}
	}

	if len(tr.writes) != 0 {
		t.Errorf("stub modes wrote %d frames, want 0", len(tr.writes))
	}
}

func TestUpdateClock(t *testing.T) {
	tr := newFakeTransport()
	s := newTestSession(t, tr)

	err := s.Update(context.Background(), ModeClock, UpdateRequest{
		ClockStyle: 1,
		Format24:   true,
		ShowDate:   true,
	})
	if err != nil {
		t.Fatalf("Update(clock) error = %v", err)
	}
	if len(tr.writes) != 1 {
		t.Fatalf("writes = %d, want 1", len(tr.writes))
	}
}

func TestUpdateUnknownModeFallsBackToText(t *testing.T) {
	tr := newFakeTransport()
	s := NewSession("AA:BB:CC:DD:EE:FF", tr)
	s.ResponseTimeout = 10 * time.Millisecond
	s.InfoTimeout = 10 * time.Millisecond
	if err := s.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	tr.notify <- []byte{0x08, 0x00, 0x01, 0x80, 131}

	err := s.Update(context.Background(), Mode("disco"), UpdateRequest{Text: "X"})
	if err != nil {
		t.Fatalf("Update(unknown) error = %v, want text_image fallback to succeed", err)
	}

	// Fallback must behave exactly like a text update: query + three
	// display frames.
	if len(tr.writes) != 4 {
		t.Errorf("writes = %d, want 4", len(tr.writes))
	}
}
