package quiz

import (
	"context"
	"errors"
	"fmt"

	"quizbot/internal/catalog"
)

// Engine is the per-user quiz state machine. It holds no mutable state of
// its own beyond the per-user locks: every transition is a function of the
// incoming action and the stored state, plus its store writes. That keeps
// transitions re-drivable after a persistence failure and the engine safe to
// replicate as long as the stores are shared.
type Engine struct {
	catalog  *catalog.Catalog
	profiles ProfileRepository
	sessions SessionRepository
	locks    *userLocks
}

func NewEngine(cat *catalog.Catalog, profiles ProfileRepository, sessions SessionRepository) *Engine {
	return &Engine{
		catalog:  cat,
		profiles: profiles,
		sessions: sessions,
		locks:    newUserLocks(),
	}
}

// Contact registers the user (idempotent) and refreshes their last-active
// timestamp. The transport calls it on first contact before any other event.
func (e *Engine) Contact(ctx context.Context, userID int64, displayName string) error {
	if err := e.profiles.EnsureUser(ctx, userID, displayName); err != nil {
		return persistErr("ensure user", err)
	}
	return nil
}

// StartSubject begins a test, silently replacing any in-progress session for
// the user. Prior progress is discarded without banking partial credit.
func (e *Engine) StartSubject(ctx context.Context, userID int64, displayName string, subject catalog.Subject) (Outcome, error) {
	defer e.locks.lock(userID)()

	if err := e.profiles.EnsureUser(ctx, userID, displayName); err != nil {
		return Outcome{}, persistErr("ensure user", err)
	}
	if err := e.sessions.Start(ctx, userID, subject); err != nil {
		return Outcome{}, persistErr("start session", err)
	}

	// A loaded catalog never has an empty subject, but an empty one must
	// still complete instead of presenting nothing.
	if e.catalog.QuestionCount(subject) == 0 {
		return e.complete(ctx, SessionState{UserID: userID, Subject: subject}, nil)
	}

	view, err := e.questionView(subject, 0)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Kind: OutcomeNextQuestion, SessionActive: true, Question: view}, nil
}

// SubmitAnswer grades text against the current question's options. Free text
// matching no option is not an answer: the session stays untouched and the
// outcome is Ignored, as it is when the user has no session at all.
func (e *Engine) SubmitAnswer(ctx context.Context, userID int64, text string) (Outcome, error) {
	defer e.locks.lock(userID)()

	session, err := e.sessions.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNoActiveSession) {
			return Outcome{Kind: OutcomeIgnored}, nil
		}
		return Outcome{}, persistErr("load session", err)
	}

	total := e.catalog.QuestionCount(session.Subject)
	if session.QuestionIndex >= total {
		// Session already past the last question; completion normally
		// clears it before this can be observed. Do not re-bank the score;
		// starting a new subject replaces the row.
		return Outcome{Kind: OutcomeIgnored, SessionActive: true}, nil
	}

	question, err := e.catalog.QuestionAt(session.Subject, session.QuestionIndex)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: subject %q index %d: %v",
			ErrInternalInconsistency, session.Subject, session.QuestionIndex, err)
	}

	// Exact string equality against the rendered option list, no
	// normalization: the transport presents these exact strings as buttons.
	recognized := false
	for _, option := range question.Options {
		if text == option {
			recognized = true
			break
		}
	}
	if !recognized {
		return Outcome{Kind: OutcomeIgnored, SessionActive: true}, nil
	}

	wasCorrect := text == question.CorrectOption()
	updated, err := e.sessions.RecordAnswer(ctx, userID, wasCorrect)
	if err != nil {
		if errors.Is(err, ErrNoActiveSession) {
			return Outcome{Kind: OutcomeIgnored}, nil
		}
		return Outcome{}, persistErr("record answer", err)
	}

	feedback := &AnswerFeedback{
		WasCorrect:        wasCorrect,
		CorrectOptionText: question.CorrectOption(),
	}

	if updated.QuestionIndex >= total {
		return e.complete(ctx, updated, feedback)
	}

	view, err := e.questionView(updated.Subject, updated.QuestionIndex)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Kind: OutcomeNextQuestion, SessionActive: true, Feedback: feedback, Question: view}, nil
}

// Cancel abandons an in-progress test without banking any score. For an
// idle user it is a no-event.
func (e *Engine) Cancel(ctx context.Context, userID int64) (Outcome, error) {
	defer e.locks.lock(userID)()

	_, err := e.sessions.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNoActiveSession) {
			return Outcome{Kind: OutcomeIgnored}, nil
		}
		return Outcome{}, persistErr("load session", err)
	}

	if err := e.sessions.Clear(ctx, userID); err != nil {
		return Outcome{}, persistErr("clear session", err)
	}
	return Outcome{Kind: OutcomeCancelled}, nil
}

// Top is a stateless read-only side channel into the profile store.
func (e *Engine) Top(ctx context.Context, n int) ([]LeaderboardEntry, error) {
	entries, err := e.profiles.TopN(ctx, n)
	if err != nil {
		return nil, persistErr("leaderboard", err)
	}
	return entries, nil
}

// CatalogSummary lists every subject with its question count.
func (e *Engine) CatalogSummary() []catalog.SubjectSummary {
	return e.catalog.Summary()
}

// complete banks the session's correct count into the profile, clears the
// session and emits the completion summary.
func (e *Engine) complete(ctx context.Context, session SessionState, feedback *AnswerFeedback) (Outcome, error) {
	if err := e.profiles.AddScore(ctx, session.UserID, session.Subject, session.CorrectCount); err != nil {
		if errors.Is(err, ErrUnknownUser) {
			return Outcome{}, err
		}
		return Outcome{}, persistErr("bank score", err)
	}
	if err := e.sessions.Clear(ctx, session.UserID); err != nil {
		return Outcome{}, persistErr("clear session", err)
	}

	return Outcome{
		Kind:     OutcomeTestFinished,
		Feedback: feedback,
		Result: &TestResult{
			Subject:        session.Subject,
			CorrectCount:   session.CorrectCount,
			TotalQuestions: e.catalog.QuestionCount(session.Subject),
		},
	}, nil
}

func (e *Engine) questionView(subject catalog.Subject, index int) (*QuestionView, error) {
	question, err := e.catalog.QuestionAt(subject, index)
	if err != nil {
		return nil, fmt.Errorf("%w: subject %q index %d: %v", ErrInternalInconsistency, subject, index, err)
	}
	return &QuestionView{
		Subject:        subject,
		Index:          index,
		TotalQuestions: e.catalog.QuestionCount(subject),
		Prompt:         question.Prompt,
		Emoji:          question.Emoji,
		Options:        question.Options,
	}, nil
}

func persistErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}
