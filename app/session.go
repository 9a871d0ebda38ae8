package app

import (
	"context"

	"dfsummary/domain/core"
	"dfsummary/domain/dataset"
)

// SelectionEvent is delivered whenever the user changes the table selection.
// Dismissed names a dialog the user closed since the previous event.
type SelectionEvent struct {
	Dataset   *dataset.Dataset
	Selection Selection
	Dismissed core.DialogID
}

// Session feeds selection events to a controller one at a time. A new event
// is only handled after the previous one has produced its instruction.
type Session struct {
	controller *Controller
	onError    func(error)
}

// NewSession wraps a controller. onError may be nil.
func NewSession(controller *Controller, onError func(error)) *Session {
	return &Session{controller: controller, onError: onError}
}

// Handle processes one event and returns the resulting instruction, if any
func (s *Session) Handle(ev SelectionEvent) (*RenderInstruction, error) {
	if ev.Dismissed != "" {
		s.controller.DismissDialog(ev.Dismissed)
	}
	return s.controller.OnSelectionChanged(ev.Dataset, ev.Selection.Column())
}

// Run handles events in arrival order until the channel closes or ctx is
// done. Each non-nil instruction is passed to emit.
func (s *Session) Run(ctx context.Context, events <-chan SelectionEvent, emit func(*RenderInstruction)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			inst, err := s.Handle(ev)
			if err != nil {
				if s.onError != nil {
					s.onError(err)
				}
				continue
			}
			if inst != nil {
				emit(inst)
			}
		}
	}
}
