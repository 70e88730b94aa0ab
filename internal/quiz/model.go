// Package quiz contains the quiz domain model, the repository contracts for
// durable state and the session state machine that drives a user through a
// subject's question sequence.
package quiz

import (
	"time"

	"quizbot/internal/catalog"
)

// UserProfile is the durable per-user record. TotalScore always equals the
// sum of Scores after any committed update.
type UserProfile struct {
	UserID      int64
	DisplayName string
	Scores      map[catalog.Subject]int
	TotalScore  int
	LastActive  time.Time
}

// SessionState tracks one in-progress test. At most one exists per user;
// its absence means the user is idle. QuestionIndex may equal the subject's
// question count transiently, between the last accepted answer and the
// completion that clears the session.
type SessionState struct {
	UserID        int64
	Subject       catalog.Subject
	QuestionIndex int
	CorrectCount  int
}

type LeaderboardEntry struct {
	DisplayName string `json:"display_name"`
	TotalScore  int    `json:"total_score"`
}
