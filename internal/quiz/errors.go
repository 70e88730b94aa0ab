package quiz

import "errors"

var (
	// ErrUnknownUser means a score update targeted a user without a profile.
	// The transport is expected to call EnsureUser on first contact, so this
	// indicates a violated precondition rather than a user mistake.
	ErrUnknownUser = errors.New("unknown user")

	// ErrNoActiveSession means a session operation ran for an idle user.
	ErrNoActiveSession = errors.New("no active session")

	// ErrInternalInconsistency means the catalog and a stored session
	// disagree, e.g. a session index that should be valid is not. Fatal to
	// the request; stored state must not be mutated further.
	ErrInternalInconsistency = errors.New("internal inconsistency")

	// ErrPersistence wraps store I/O failures. Callers may retry the whole
	// user action: transitions are re-driven from persisted state, never
	// from in-memory engine state.
	ErrPersistence = errors.New("persistence failure")
)
