package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/gavrog/branchcut/pkg/branchcut"
	"github.com/gavrog/branchcut/pkg/branchcut/runid"
)

type options struct {
	tracer          branchcut.Tracer
	logger          logrus.FieldLogger
	ids             runid.Provider
	stepLimit       int
	undoAppliedOnly bool
	strictDecisions bool
}

type Option func(o *options) error

func WithTracer(t branchcut.Tracer) Option {
	return func(o *options) error {
		o.tracer = t
		return nil
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) error {
		o.logger = l
		return nil
	}
}

func WithIDProvider(p runid.Provider) Option {
	return func(o *options) error {
		o.ids = p
		return nil
	}
}

// WithStepLimit bounds the number of loop iterations a single call to
// Next may run. A call that reaches the limit returns
// branchcut.ErrStepLimit and can be retried. Zero means unbounded.
func WithStepLimit(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return fmt.Errorf("step limit must not be negative, got %d", n)
		}
		o.stepLimit = n
		return nil
	}
}

// WithUndoAppliedOnly makes the engine skip UndoMove for trail entries
// that were never performed: Choice markers and rejected moves.
func WithUndoAppliedOnly() Option {
	return func(o *options) error {
		o.undoAppliedOnly = true
		return nil
	}
}

// WithStrictDecisions reports a Decision checked Void as a
// *branchcut.ContractViolation instead of dropping it. A dropped
// decision leaves nothing on the trail, so the other decisions at its
// choice point are never tried.
func WithStrictDecisions() Option {
	return func(o *options) error {
		o.strictDecisions = true
		return nil
	}
}

var defaults = []Option{
	func(o *options) error {
		if o.tracer == nil {
			o.tracer = branchcut.DefaultTracer{}
		}
		return nil
	},
	func(o *options) error {
		if o.logger == nil {
			o.logger = logrus.StandardLogger()
		}
		return nil
	},
	func(o *options) error {
		if o.ids == nil {
			o.ids = runid.NewUUID()
		}
		return nil
	},
}
