package quiz

import (
	"context"

	"quizbot/internal/catalog"
)

// ProfileRepository owns durable user profiles and cumulative scores.
type ProfileRepository interface {
	// EnsureUser inserts a zero-score profile if absent and refreshes
	// LastActive either way. Idempotent: repeating it never duplicates the
	// profile or resets scores.
	EnsureUser(ctx context.Context, userID int64, displayName string) error

	// AddScore increments the subject score and the total score by delta
	// (delta >= 0) as one atomic update. Returns ErrUnknownUser if no
	// profile exists.
	AddScore(ctx context.Context, userID int64, subject catalog.Subject, delta int) error

	// TopN returns up to n entries ordered by descending total score, ties
	// in a stable order.
	TopN(ctx context.Context, n int) ([]LeaderboardEntry, error)

	// GetProfile returns the stored profile, ErrUnknownUser if absent.
	GetProfile(ctx context.Context, userID int64) (UserProfile, error)
}

// SessionRepository owns the at-most-one live session per user.
type SessionRepository interface {
	// Start replaces any existing session for the user with a fresh one at
	// question 0 with zero correct answers.
	Start(ctx context.Context, userID int64, subject catalog.Subject) error

	// Get returns the live session, ErrNoActiveSession if the user is idle.
	Get(ctx context.Context, userID int64) (SessionState, error)

	// RecordAnswer advances the question index by exactly 1 and the correct
	// count by 1 iff wasCorrect, returning the updated state. Returns
	// ErrNoActiveSession if the user is idle.
	RecordAnswer(ctx context.Context, userID int64, wasCorrect bool) (SessionState, error)

	// Clear removes the session. Idempotent.
	Clear(ctx context.Context, userID int64) error
}
