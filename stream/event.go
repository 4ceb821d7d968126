package stream

import (
	"fmt"

	"github.com/signadot/go-rich/token"
)

// Event represents a structural event from the decoder.
type Event struct {
	Type EventType

	// Pos is where the event's token starts.
	Pos token.Pos

	// Value fields (only one is set based on Type)
	Key    string
	String string
	Int    int64
	Float  float64
	Bool   bool
	// Number is the literal text of an EventNumber.
	Number string
}

// IsValueStart returns true if this event starts a value (as opposed to a
// key or an end marker).
func (e *Event) IsValueStart() bool {
	switch e.Type {
	case EventBeginObject, EventBeginArray,
		EventString, EventInt, EventFloat, EventNumber, EventBool, EventNull:
		return true
	}
	return false
}

// EventType represents the type of a structural event.
type EventType int

const (
	EventBeginObject EventType = iota
	EventEndObject
	EventBeginArray
	EventEndArray
	EventKey
	EventString
	EventInt
	EventFloat
	EventNumber
	EventBool
	EventNull
)

func (t EventType) String() string {
	switch t {
	case EventBeginObject:
		return "BeginObject"
	case EventEndObject:
		return "EndObject"
	case EventBeginArray:
		return "BeginArray"
	case EventEndArray:
		return "EndArray"
	case EventKey:
		return "Key"
	case EventString:
		return "String"
	case EventInt:
		return "Int"
	case EventFloat:
		return "Float"
	case EventNumber:
		return "Number"
	case EventBool:
		return "Bool"
	case EventNull:
		return "Null"
	default:
		return "Unknown"
	}
}

func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *EventType) UnmarshalText(d []byte) error {
	k := string(d)
	pt, ok := map[string]EventType{
		"BeginObject": EventBeginObject,
		"EndObject":   EventEndObject,
		"BeginArray":  EventBeginArray,
		"EndArray":    EventEndArray,
		"Key":         EventKey,
		"String":      EventString,
		"Int":         EventInt,
		"Float":       EventFloat,
		"Number":      EventNumber,
		"Bool":        EventBool,
		"Null":        EventNull,
	}[k]
	if ok {
		*t = pt
		return nil
	}
	return fmt.Errorf("unknown type %q", k)
}
