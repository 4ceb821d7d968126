package stream

import (
	"errors"

	"github.com/signadot/go-rich/ir"
)

// State tracks the nesting and path of an event sequence and checks that
// the events are well formed.
type State struct {
	stack []item
	done  bool
}

type item struct {
	obj    bool
	n      int
	key    string
	hasKey bool
	// hasSeg is set once the item has a current key or index.
	hasSeg bool
}

func (i *item) inc() {
	i.n++
	i.hasKey = false
	if !i.obj {
		i.hasSeg = true
	}
}

// NewState creates a new State for tracking structure state.
func NewState() *State {
	return &State{}
}

func (s *State) pop() {
	n := len(s.stack)
	s.stack = s.stack[:n-1]
	if len(s.stack) == 0 {
		s.done = true
	}
}

func (s *State) current() *item {
	n := len(s.stack)
	return &s.stack[n-1]
}

// value accounts for a value starting at the current position.
func (s *State) value() error {
	if s.done {
		return errors.New("value after end of document")
	}
	if s.Depth() == 0 {
		return nil
	}
	cur := s.current()
	if cur.obj && !cur.hasKey {
		return errors.New("value without key")
	}
	cur.inc()
	return nil
}

// ProcessEvent processes an event and updates state/path tracking.
// Call this for each event in order.
func (s *State) ProcessEvent(event *Event) error {
	switch event.Type {
	case EventBeginObject:
		if err := s.value(); err != nil {
			return err
		}
		s.stack = append(s.stack, item{obj: true})

	case EventEndObject:
		if s.Depth() <= 0 {
			return errors.New("negative depth")
		}
		cur := s.current()
		if !cur.obj {
			return errors.New("end object in array")
		}
		if cur.hasKey {
			return errors.New("key without value")
		}
		s.pop()

	case EventBeginArray:
		if err := s.value(); err != nil {
			return err
		}
		s.stack = append(s.stack, item{n: -1})

	case EventEndArray:
		if s.Depth() <= 0 {
			return errors.New("negative depth")
		}
		if s.current().obj {
			return errors.New("end array in object")
		}
		s.pop()

	case EventString, EventInt, EventFloat, EventNumber, EventBool, EventNull:
		if err := s.value(); err != nil {
			return err
		}
		if s.Depth() == 0 {
			s.done = true
		}

	case EventKey:
		if len(s.stack) == 0 {
			return errors.New("key not in object")
		}
		cur := s.current()
		if !cur.obj {
			return errors.New("key not in object: " + s.CurrentPath())
		}
		if cur.hasKey {
			return errors.New("key after key")
		}
		cur.hasKey = true
		cur.hasSeg = true
		cur.key = event.Key

	default:
		return errors.New("unknown event type " + event.Type.String())
	}
	return nil
}

// Depth returns the current nesting depth (0 = top level).
func (s *State) Depth() int {
	return len(s.stack)
}

// Done reports whether a complete top level value has been processed.
func (s *State) Done() bool {
	return s.done
}

// CurrentPath returns the current kinded path (e.g., "", "key", "key[0]").
func (s *State) CurrentPath() string {
	res := ""
	for i := range s.stack {
		it := &s.stack[i]
		if !it.hasSeg {
			continue
		}
		if it.obj {
			res = ir.FieldPath(res, it.key)
		} else {
			res = ir.IndexPath(res, it.n)
		}
	}
	return res
}

// CurrentKey returns the current object key (if in object).
func (s *State) CurrentKey() (string, bool) {
	if len(s.stack) == 0 {
		return "", false
	}
	cur := s.current()
	if !cur.obj || !cur.hasSeg {
		return "", false
	}
	return cur.key, true
}

// CurrentIndex returns the current array index (if in array).
func (s *State) CurrentIndex() (int, bool) {
	if len(s.stack) == 0 {
		return 0, false
	}
	cur := s.current()
	if cur.obj || !cur.hasSeg {
		return 0, false
	}
	return cur.n, true
}
