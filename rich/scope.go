package rich

// Scope issues identifiers for one parse or merge session. Each call to
// Next returns an identifier strictly greater than the previous one, with no
// gaps. A Scope is owned by a single session and is not safe for concurrent
// use.
type Scope struct {
	next      ID
	issued    uint64
	exhausted bool
}

type ScopeOption func(*Scope)

// WithBase sets the first identifier handed out. A base of NoID is raised
// to 1.
func WithBase(base ID) ScopeOption {
	return func(s *Scope) {
		s.next = max(base, 1)
	}
}

func NewScope(opts ...ScopeOption) *Scope {
	s := &Scope{next: 1}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next returns a fresh identifier. Once MaxID has been issued every further
// call returns ErrIDExhausted.
func (s *Scope) Next() (ID, error) {
	if s.exhausted {
		return NoID, ErrIDExhausted
	}
	id := s.next
	if id == MaxID {
		s.exhausted = true
	} else {
		s.next++
	}
	s.issued++
	return id, nil
}

// Peek returns the identifier the next call to Next would return.
func (s *Scope) Peek() (ID, bool) {
	return s.next, !s.exhausted
}

// Issued returns how many identifiers the scope has handed out.
func (s *Scope) Issued() uint64 {
	return s.issued
}
