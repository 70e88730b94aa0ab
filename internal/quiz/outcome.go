package quiz

import "quizbot/internal/catalog"

type OutcomeKind string

const (
	// OutcomeNextQuestion carries the question to present next.
	OutcomeNextQuestion OutcomeKind = "next_question"
	// OutcomeTestFinished carries the completion summary.
	OutcomeTestFinished OutcomeKind = "test_finished"
	// OutcomeCancelled means an in-progress test was abandoned.
	OutcomeCancelled OutcomeKind = "cancelled"
	// OutcomeIgnored means the action was a no-event: free text that matched
	// no option, or a session operation while idle.
	OutcomeIgnored OutcomeKind = "ignored"
)

// QuestionView is the presentable projection of a catalog question. It never
// exposes the correct index; the transport renders exactly these fields.
type QuestionView struct {
	Subject        catalog.Subject
	Index          int
	TotalQuestions int
	Prompt         string
	Emoji          string
	Options        []string
}

// AnswerFeedback reports how the just-submitted answer was graded.
type AnswerFeedback struct {
	WasCorrect        bool
	CorrectOptionText string
}

// TestResult summarizes a completed test.
type TestResult struct {
	Subject        catalog.Subject
	CorrectCount   int
	TotalQuestions int
}

// Outcome describes what the transport should present after one engine
// transition. Feedback rides along with the next question or the completion
// summary when an answer was just graded. SessionActive reports whether a
// live session remains after the transition; Ignored outcomes use it to
// distinguish idle users from mid-test noise.
type Outcome struct {
	Kind          OutcomeKind
	SessionActive bool
	Feedback      *AnswerFeedback
	Question      *QuestionView
	Result        *TestResult
}
