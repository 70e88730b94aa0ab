package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quizbot/internal/catalog"
	"quizbot/internal/quiz"
)

// scoreColumns maps each subject to its score column. The indirection keeps
// column names out of caller-supplied data entirely.
var scoreColumns = map[catalog.Subject]string{
	catalog.SubjectMath:    "math_score",
	catalog.SubjectCS:      "cs_score",
	catalog.SubjectHistory: "history_score",
}

func (s *Store) EnsureUser(ctx context.Context, userID int64, displayName string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Unix()
	if _, err := tx.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO users (user_id, display_name, last_active_unix) VALUES (?, ?, ?)`,
		userID,
		displayName,
		now,
	); err != nil {
		return err
	}
	if _, err := tx.ExecContext(
		ctx,
		`UPDATE users SET last_active_unix = ? WHERE user_id = ?`,
		now,
		userID,
	); err != nil {
		return err
	}

	return tx.Commit()
}

// AddScore bumps the subject score and the total in one statement so the
// totalScore == sum(scores) invariant cannot be observed broken.
func (s *Store) AddScore(ctx context.Context, userID int64, subject catalog.Subject, delta int) error {
	column, ok := scoreColumns[subject]
	if !ok {
		return fmt.Errorf("no score column for subject %q", subject)
	}

	result, err := s.db.ExecContext(
		ctx,
		`UPDATE users SET `+column+` = `+column+` + ?, total_score = total_score + ? WHERE user_id = ?`,
		delta,
		delta,
		userID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return quiz.ErrUnknownUser
	}
	return nil
}

func (s *Store) TopN(ctx context.Context, n int) ([]quiz.LeaderboardEntry, error) {
	if n <= 0 {
		n = 10
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT display_name, total_score
		 FROM users
		 ORDER BY total_score DESC, user_id ASC
		 LIMIT ?`,
		n,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]quiz.LeaderboardEntry, 0, n)
	for rows.Next() {
		var entry quiz.LeaderboardEntry
		if err := rows.Scan(&entry.DisplayName, &entry.TotalScore); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (s *Store) GetProfile(ctx context.Context, userID int64) (quiz.UserProfile, error) {
	var (
		profile        quiz.UserProfile
		mathScore      int
		csScore        int
		historyScore   int
		lastActiveUnix int64
	)
	err := s.db.QueryRowContext(
		ctx,
		`SELECT user_id, display_name, math_score, cs_score, history_score, total_score, last_active_unix
		 FROM users WHERE user_id = ?`,
		userID,
	).Scan(&profile.UserID, &profile.DisplayName, &mathScore, &csScore, &historyScore, &profile.TotalScore, &lastActiveUnix)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return quiz.UserProfile{}, quiz.ErrUnknownUser
		}
		return quiz.UserProfile{}, err
	}

	profile.Scores = map[catalog.Subject]int{
		catalog.SubjectMath:    mathScore,
		catalog.SubjectCS:      csScore,
		catalog.SubjectHistory: historyScore,
	}
	profile.LastActive = time.Unix(lastActiveUnix, 0).UTC()
	return profile, nil
}
