package branchcut

import (
	"github.com/sirupsen/logrus"
)

// Event identifies what happened at a SearchPosition.
type Event int

const (
	Push Event = iota
	Pop
	Reject
	Yield
	Exhaust
)

func (e Event) String() string {
	switch e {
	case Push:
		return "push"
	case Pop:
		return "pop"
	case Reject:
		return "reject"
	case Yield:
		return "yield"
	case Exhaust:
		return "exhaust"
	}
	return "unknown"
}

// MoveInfo is the payload-free view of a Move that tracers and
// errors get to see.
type MoveInfo interface {
	Type() MoveType
	String() string
}

type SearchPosition interface {
	Event() Event
	// Depth is the number of trail entries after the event.
	Depth() int
	// Move is nil for Yield and Exhaust.
	Move() MoveInfo
	// Seq is the push sequence number of the move, or zero.
	Seq() uint64
}

type Tracer interface {
	Trace(p SearchPosition)
}

type DefaultTracer struct{}

func (DefaultTracer) Trace(_ SearchPosition) {
}

// LoggingTracer writes one entry per search event. Pushes and pops
// are logged at trace level, everything else at debug level.
type LoggingTracer struct {
	Logger logrus.FieldLogger
}

func (t LoggingTracer) Trace(p SearchPosition) {
	fields := logrus.Fields{
		"event": p.Event().String(),
		"depth": p.Depth(),
	}
	if m := p.Move(); m != nil {
		fields["move"] = m.String()
		fields["seq"] = p.Seq()
	}
	entry := t.Logger.WithFields(fields)
	switch p.Event() {
	case Push, Pop:
		entry.Trace("search step")
	default:
		entry.Debug("search step")
	}
}
