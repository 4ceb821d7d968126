package stream

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type doneSink struct {
	SliceSink
	limit int
}

func (s *doneSink) Done() bool { return len(s.Events) >= s.limit }

func TestCopy(t *testing.T) {
	evs := []Event{
		{Type: EventBeginArray},
		{Type: EventInt, Int: 1},
		{Type: EventEndArray},
	}
	got, err := ReadAll(NewSliceReader(evs...))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(evs, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	sink := &doneSink{limit: 2}
	if err := Copy(sink, NewSliceReader(evs...)); err != nil {
		t.Fatal(err)
	}
	if len(sink.Events) != 2 {
		t.Errorf("copy did not stop at done: %d events", len(sink.Events))
	}
}

func TestSliceReaderErr(t *testing.T) {
	boom := errors.New("boom")
	r := &SliceReader{Events: []Event{{Type: EventNull}}, Err: boom}
	if _, err := r.ReadEvent(); err != nil {
		t.Fatal(err)
	}
	if _, err := r.ReadEvent(); !errors.Is(err, boom) {
		t.Errorf("got %v", err)
	}
	if _, err := ReadAll(&SliceReader{Err: boom}); !errors.Is(err, boom) {
		t.Errorf("ReadAll got %v", err)
	}
	if _, err := NewEmptyEventReader().ReadEvent(); !errors.Is(err, io.EOF) {
		t.Errorf("empty reader got %v", err)
	}
}

func TestEventTypeText(t *testing.T) {
	for et := EventBeginObject; et <= EventNull; et++ {
		d, _ := et.MarshalText()
		var back EventType
		if err := back.UnmarshalText(d); err != nil || back != et {
			t.Errorf("round trip %s: %s, %v", et, back, err)
		}
	}
}
