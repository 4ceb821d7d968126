package stream

import (
	"testing"
)

func TestStateWellFormed(t *testing.T) {
	tests := []struct {
		name string
		evs  []Event
		err  bool
	}{
		{
			name: "object",
			evs: []Event{
				{Type: EventBeginObject},
				{Type: EventKey, Key: "a"},
				{Type: EventInt, Int: 1},
				{Type: EventEndObject},
			},
		},
		{
			name: "value without key",
			evs: []Event{
				{Type: EventBeginObject},
				{Type: EventInt, Int: 1},
			},
			err: true,
		},
		{
			name: "key without value",
			evs: []Event{
				{Type: EventBeginObject},
				{Type: EventKey, Key: "a"},
				{Type: EventEndObject},
			},
			err: true,
		},
		{
			name: "key in array",
			evs: []Event{
				{Type: EventBeginArray},
				{Type: EventKey, Key: "a"},
			},
			err: true,
		},
		{
			name: "mismatched end",
			evs: []Event{
				{Type: EventBeginArray},
				{Type: EventEndObject},
			},
			err: true,
		},
		{
			name: "second document",
			evs: []Event{
				{Type: EventNull},
				{Type: EventNull},
			},
			err: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			var err error
			for i := range tt.evs {
				if err = s.ProcessEvent(&tt.evs[i]); err != nil {
					break
				}
			}
			if (err != nil) != tt.err {
				t.Fatalf("error = %v, want error %t", err, tt.err)
			}
			if err == nil && !s.Done() {
				t.Errorf("state not done after complete document")
			}
		})
	}
}

func TestStateCurrentKeyIndex(t *testing.T) {
	s := NewState()
	for _, ev := range []Event{
		{Type: EventBeginObject},
		{Type: EventKey, Key: "xs"},
		{Type: EventBeginArray},
		{Type: EventString, String: "a"},
		{Type: EventString, String: "b"},
	} {
		if err := s.ProcessEvent(&ev); err != nil {
			t.Fatal(err)
		}
	}
	if i, ok := s.CurrentIndex(); !ok || i != 1 {
		t.Errorf("CurrentIndex = %d, %t", i, ok)
	}
	if _, ok := s.CurrentKey(); ok {
		t.Errorf("CurrentKey in array reported ok")
	}
	if got := s.CurrentPath(); got != "xs[1]" {
		t.Errorf("CurrentPath = %q", got)
	}
	if s.Depth() != 2 {
		t.Errorf("Depth = %d", s.Depth())
	}
}
