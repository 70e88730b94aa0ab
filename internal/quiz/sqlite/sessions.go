package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"quizbot/internal/catalog"
	"quizbot/internal/quiz"
)

// Start replaces any prior session for the user. Switching subjects mid-test
// therefore silently discards the old progress, matching the permissive
// overwrite policy of the engine.
func (s *Store) Start(ctx context.Context, userID int64, subject catalog.Subject) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT OR REPLACE INTO sessions (user_id, subject, question_index, correct_count)
		 VALUES (?, ?, 0, 0)`,
		userID,
		string(subject),
	)
	return err
}

func (s *Store) Get(ctx context.Context, userID int64) (quiz.SessionState, error) {
	var (
		state   quiz.SessionState
		subject string
	)
	err := s.db.QueryRowContext(
		ctx,
		`SELECT user_id, subject, question_index, correct_count FROM sessions WHERE user_id = ?`,
		userID,
	).Scan(&state.UserID, &subject, &state.QuestionIndex, &state.CorrectCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return quiz.SessionState{}, quiz.ErrNoActiveSession
		}
		return quiz.SessionState{}, err
	}

	state.Subject = catalog.Subject(subject)
	return state, nil
}

// RecordAnswer advances the session in one UPDATE and reads the result back
// inside the same transaction, so the index moves by exactly 1 per accepted
// answer even under concurrent retries.
func (s *Store) RecordAnswer(ctx context.Context, userID int64, wasCorrect bool) (quiz.SessionState, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return quiz.SessionState{}, err
	}
	defer tx.Rollback()

	correctDelta := 0
	if wasCorrect {
		correctDelta = 1
	}

	result, err := tx.ExecContext(
		ctx,
		`UPDATE sessions SET question_index = question_index + 1, correct_count = correct_count + ?
		 WHERE user_id = ?`,
		correctDelta,
		userID,
	)
	if err != nil {
		return quiz.SessionState{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return quiz.SessionState{}, err
	}
	if affected == 0 {
		return quiz.SessionState{}, quiz.ErrNoActiveSession
	}

	var (
		state   quiz.SessionState
		subject string
	)
	if err := tx.QueryRowContext(
		ctx,
		`SELECT user_id, subject, question_index, correct_count FROM sessions WHERE user_id = ?`,
		userID,
	).Scan(&state.UserID, &subject, &state.QuestionIndex, &state.CorrectCount); err != nil {
		return quiz.SessionState{}, err
	}
	state.Subject = catalog.Subject(subject)

	if err := tx.Commit(); err != nil {
		return quiz.SessionState{}, err
	}
	return state, nil
}

func (s *Store) Clear(ctx context.Context, userID int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = ?`, userID)
	return err
}
