package jobstore

import herrors "github.com/Azure/harmony/pkg/herrors"

// ErrAlreadyTerminal is returned by CompleteWorkItem when a second
// completion arrives for an already-terminal item, per spec.md §8's
// at-most-once-terminal property ("a second PUT on the same id returns
// 409 and does not alter state").
var ErrAlreadyTerminal = herrors.New().Kind(herrors.KindConflict).
	Message("work item is already terminal").Build()

// ErrNotFound is returned when a lookup by id finds nothing.
var ErrNotFound = herrors.New().Kind(herrors.KindNotFound).
	Message("not found").Build()

// ErrInvalidTransition is returned when TransitionJob is asked to move
// backward or out of a terminal status.
var ErrInvalidTransition = herrors.New().Kind(herrors.KindValidation).
	Message("invalid job status transition").Build()
