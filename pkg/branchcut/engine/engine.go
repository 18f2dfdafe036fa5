// Package engine drives a branchcut.Problem through a chronological
// backtracking search and hands out its results one at a time.
package engine

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/gammazero/deque"
	"github.com/sirupsen/logrus"

	"github.com/gavrog/branchcut/pkg/branchcut"
)

// Stats counts what an engine has done since it was created.
type Stats struct {
	// Steps is the number of iterations of the search loop.
	Steps int
	// Decisions is the number of Decision moves obtained from the problem.
	Decisions int
	Pushed    int
	Performed int
	Undone    int
	// Rejected counts moves checked Illegal, Voided those checked Void.
	Rejected int
	Voided   int
	Yielded  int
}

// Engine enumerates the results of a Problem lazily. An Engine is
// owned by a single caller: it must not be driven from more than one
// goroutine at a time.
type Engine[P, R any] struct {
	problem branchcut.Problem[P, R]
	opts    options
	id      string
	log     logrus.FieldLogger

	trail   trail[P]
	pending deque.Deque[*branchcut.Move[P]]
	started bool
	done    bool
	broken  bool
	stats   Stats
}

func New[P, R any](problem branchcut.Problem[P, R], opts ...Option) (*Engine[P, R], error) {
	if problem == nil {
		return nil, errors.New("search engine needs a problem")
	}
	e := Engine[P, R]{problem: problem}
	for _, option := range append(opts, defaults...) {
		if err := option(&e.opts); err != nil {
			return nil, err
		}
	}
	e.id = e.opts.ids.NextID()
	e.log = e.opts.logger.WithField("run", e.id)
	return &e, nil
}

func (e *Engine[P, R]) ID() string {
	return e.id
}

// Done reports whether the search space has been exhausted.
func (e *Engine[P, R]) Done() bool {
	return e.done
}

// Depth returns the current number of trail entries.
func (e *Engine[P, R]) Depth() int {
	return e.trail.len()
}

func (e *Engine[P, R]) Stats() Stats {
	return e.stats
}

// Trail returns the moves currently on the trail, oldest first.
func (e *Engine[P, R]) Trail() []*branchcut.Move[P] {
	return e.trail.moves()
}

// Next returns the next result of the search. It returns
// branchcut.ErrExhausted once no results are left, and keeps doing so
// on every later call.
//
// Errors wrapping branchcut.ErrIncomplete mean the search was
// interrupted by ctx or the step limit; the engine is left at a
// consistent point and Next may be called again. Panics raised by the
// problem propagate to the caller and leave the engine unusable.
func (e *Engine[P, R]) Next(ctx context.Context) (result R, err error) {
	if e.broken {
		return result, branchcut.ErrBroken
	}
	if e.done {
		return result, branchcut.ErrExhausted
	}

	completed := false
	defer func() {
		if !completed {
			e.broken = true
			e.log.WithField("depth", e.trail.len()).Error("problem panicked during search, engine is unusable")
		}
	}()

	result, err = e.next(ctx)
	var violation *branchcut.ContractViolation
	if errors.As(err, &violation) {
		e.broken = true
		e.log.WithError(err).Error("problem violated the search contract")
	}
	completed = true
	return result, err
}

func (e *Engine[P, R]) next(ctx context.Context) (R, error) {
	var zero R

	if !e.started {
		e.started = true
		choice := e.problem.NextChoice(nil)
		if err := expect("NextChoice", choice, branchcut.Choice); err != nil {
			return zero, err
		}
		e.push(choice, false)
	}

	for steps := 0; ; steps++ {
		if err := ctx.Err(); err != nil {
			return zero, fmt.Errorf("%w: %w", branchcut.ErrIncomplete, err)
		}
		if e.opts.stepLimit > 0 && steps >= e.opts.stepLimit {
			return zero, branchcut.ErrStepLimit
		}
		e.stats.Steps++

		anchor := e.unwind()
		if anchor == nil {
			e.done = true
			e.opts.tracer.Trace(position{event: branchcut.Exhaust})
			e.log.WithFields(logrus.Fields{
				"results": e.stats.Yielded,
				"steps":   e.stats.Steps,
			}).Debug("search exhausted")
			return zero, branchcut.ErrExhausted
		}

		move := e.problem.NextDecision(anchor)
		if move == nil {
			continue
		}
		if !move.IsDecision() {
			return zero, &branchcut.ContractViolation{
				Op:     "NextDecision",
				Move:   move,
				Reason: fmt.Sprintf("returned a %s, want a %s", move.Type(), branchcut.Decision),
			}
		}
		e.stats.Decisions++

		ok, err := e.apply(move)
		if err != nil {
			return zero, err
		}
		if !ok || !e.problem.IsValid() {
			continue
		}

		if result, ok := e.problem.MakeResult(); ok {
			e.stats.Yielded++
			e.opts.tracer.Trace(position{event: branchcut.Yield, depth: e.trail.len()})
			e.log.WithFields(logrus.Fields{
				"depth":   e.trail.len(),
				"results": e.stats.Yielded,
			}).Debug("result found")
			return result, nil
		}

		choice := e.problem.NextChoice(move)
		if err := expect("NextChoice", choice, branchcut.Choice); err != nil {
			return zero, err
		}
		e.push(choice, false)
	}
}

// unwind pops and undoes trail entries up to and including the most
// recent Choice or Decision, which it returns. It returns nil once the
// trail is empty.
func (e *Engine[P, R]) unwind() *branchcut.Move[P] {
	for {
		top, ok := e.trail.pop()
		if !ok {
			return nil
		}
		e.opts.tracer.Trace(position{event: branchcut.Pop, depth: e.trail.len(), move: top.move, seq: top.seq})
		if top.applied || !e.opts.undoAppliedOnly {
			e.problem.UndoMove(top.move)
			e.stats.Undone++
		}
		if !top.move.IsDeduction() {
			return top.move
		}
	}
}

// apply performs move and the closure of its deductions in FIFO
// order. Void moves, the decision included, are dropped. It returns
// false if some move in the closure was Illegal;
// that move is pushed unapplied so that the next unwind removes the
// whole attempt, and nothing queued after it is performed.
func (e *Engine[P, R]) apply(move *branchcut.Move[P]) (bool, error) {
	e.pending.Clear()
	e.pending.PushBack(move)
	for e.pending.Len() > 0 {
		m := e.pending.PopFront()
		switch status := e.problem.CheckMove(m); status {
		case branchcut.OK:
			e.problem.PerformMove(m)
			e.stats.Performed++
			e.push(m, true)
			for _, d := range e.problem.Deductions(m) {
				if err := expect("Deductions", d, branchcut.Deduction); err != nil {
					e.pending.Clear()
					return false, err
				}
				e.pending.PushBack(d)
			}
		case branchcut.Void:
			if m == move {
				if e.opts.strictDecisions {
					e.pending.Clear()
					return false, &branchcut.ContractViolation{Op: "CheckMove", Move: m, Reason: "decision is void"}
				}
				// nothing is pushed, so the anchor's remaining decisions
				// are not offered again
				e.log.WithFields(logrus.Fields{
					"depth": e.trail.len(),
					"move":  m,
				}).Debug("void decision dropped")
			}
			e.stats.Voided++
		case branchcut.Illegal:
			e.pending.Clear()
			e.stats.Rejected++
			entry := e.trail.push(m, false)
			e.stats.Pushed++
			e.opts.tracer.Trace(position{event: branchcut.Reject, depth: e.trail.len(), move: m, seq: entry.seq})
			return false, nil
		default:
			e.pending.Clear()
			return false, &branchcut.ContractViolation{Op: "CheckMove", Move: m, Reason: fmt.Sprintf("unknown status %s", status)}
		}
	}
	return true, nil
}

func (e *Engine[P, R]) push(m *branchcut.Move[P], applied bool) {
	entry := e.trail.push(m, applied)
	e.stats.Pushed++
	e.opts.tracer.Trace(position{event: branchcut.Push, depth: e.trail.len(), move: m, seq: entry.seq})
}

func expect[P any](op string, m *branchcut.Move[P], want branchcut.MoveType) error {
	if m == nil {
		return &branchcut.ContractViolation{Op: op, Reason: "returned no move"}
	}
	if m.Type() != want {
		return &branchcut.ContractViolation{
			Op:     op,
			Move:   m,
			Reason: fmt.Sprintf("returned a %s, want a %s", m.Type(), want),
		}
	}
	return nil
}

// All returns the remaining results as a sequence for use with range.
// The sequence ends at exhaustion; any other error is yielded once,
// with a zero result, and ends it as well.
func (e *Engine[P, R]) All(ctx context.Context) iter.Seq2[R, error] {
	return func(yield func(R, error) bool) {
		for {
			r, err := e.Next(ctx)
			if errors.Is(err, branchcut.ErrExhausted) {
				return
			}
			if err != nil {
				yield(r, err)
				return
			}
			if !yield(r, nil) {
				return
			}
		}
	}
}

// Take pulls up to n results, or all remaining results if n is not
// positive. Exhaustion is not reported as an error: fewer than n
// results with a nil error means the search is done.
func (e *Engine[P, R]) Take(ctx context.Context, n int) ([]R, error) {
	var results []R
	for r, err := range e.All(ctx) {
		if err != nil {
			return results, err
		}
		results = append(results, r)
		if n > 0 && len(results) >= n {
			break
		}
	}
	return results, nil
}
