package stream

import (
	"errors"
	"io"
)

// EventReader provides events from a source. It returns io.EOF after the
// last event.
type EventReader interface {
	ReadEvent() (*Event, error)
}

// EventSink receives events (builder, recorder, etc.).
type EventSink interface {
	WriteEvent(*Event) error
}

// EmptyEventReader provides an empty event stream.
type EmptyEventReader struct{}

// NewEmptyEventReader creates an empty event reader.
func NewEmptyEventReader() *EmptyEventReader {
	return &EmptyEventReader{}
}

// ReadEvent returns io.EOF immediately (empty stream).
func (r *EmptyEventReader) ReadEvent() (*Event, error) {
	return nil, io.EOF
}

// SliceReader replays a fixed list of events. If Err is set it is returned
// once the events are exhausted, in place of io.EOF.
type SliceReader struct {
	Events []Event
	Err    error
	i      int
}

func NewSliceReader(evs ...Event) *SliceReader {
	return &SliceReader{Events: evs}
}

func (r *SliceReader) ReadEvent() (*Event, error) {
	if r.i < len(r.Events) {
		ev := &r.Events[r.i]
		r.i++
		return ev, nil
	}
	if r.Err != nil {
		return nil, r.Err
	}
	return nil, io.EOF
}

// SliceSink records the events written to it.
type SliceSink struct {
	Events []Event
}

func (s *SliceSink) WriteEvent(ev *Event) error {
	s.Events = append(s.Events, *ev)
	return nil
}

// Done is implemented by sinks which know when they have received a
// complete document.
type Done interface {
	Done() bool
}

// Copy writes the events of src to dst until src is exhausted or dst
// reports it is done.
func Copy(dst EventSink, src EventReader) error {
	done, _ := dst.(Done)
	for {
		if done != nil && done.Done() {
			return nil
		}
		ev, err := src.ReadEvent()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := dst.WriteEvent(ev); err != nil {
			return err
		}
	}
}

// ReadAll reads all events of r.
func ReadAll(r EventReader) ([]Event, error) {
	sink := &SliceSink{}
	if err := Copy(sink, r); err != nil {
		return sink.Events, err
	}
	return sink.Events, nil
}
