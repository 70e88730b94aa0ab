package telegram

import (
	"strings"
	"testing"

	"quizbot/internal/catalog"
	"quizbot/internal/quiz"
)

func TestFormatQuestionUsesOneBasedNumbering(t *testing.T) {
	view := &quiz.QuestionView{
		Subject:        catalog.SubjectMath,
		Index:          0,
		TotalQuestions: 3,
		Prompt:         "2+2?",
		Emoji:          "🧮",
	}

	text := formatQuestion(view)
	if !strings.Contains(text, "Вопрос 1/3") {
		t.Fatalf("question numbering missing: %q", text)
	}
	if !strings.Contains(text, "2+2?") {
		t.Fatalf("prompt missing: %q", text)
	}
}

func TestFormatFeedback(t *testing.T) {
	correct := formatFeedback(&quiz.AnswerFeedback{WasCorrect: true, CorrectOptionText: "4"})
	if !strings.Contains(correct, "Верно") {
		t.Fatalf("unexpected correct feedback: %q", correct)
	}

	wrong := formatFeedback(&quiz.AnswerFeedback{WasCorrect: false, CorrectOptionText: "4"})
	if !strings.Contains(wrong, "Неверно") || !strings.Contains(wrong, "4") {
		t.Fatalf("unexpected wrong feedback: %q", wrong)
	}
}

func TestFormatFinished(t *testing.T) {
	text := formatFinished(&quiz.TestResult{Subject: catalog.SubjectMath, CorrectCount: 2, TotalQuestions: 3})
	if !strings.Contains(text, "2/3") {
		t.Fatalf("score missing: %q", text)
	}
}

func TestFormatTop(t *testing.T) {
	empty := formatTop(nil)
	if !strings.Contains(empty, "Будьте первым") {
		t.Fatalf("unexpected empty leaderboard text: %q", empty)
	}

	text := formatTop([]quiz.LeaderboardEntry{
		{DisplayName: "alice", TotalScore: 5},
		{DisplayName: "", TotalScore: 2},
	})
	if !strings.Contains(text, "1. alice - 5") {
		t.Fatalf("first entry missing: %q", text)
	}
	if !strings.Contains(text, "2. anonymous - 2") {
		t.Fatalf("anonymous fallback missing: %q", text)
	}
}

func TestFormatAboutListsSubjectCounts(t *testing.T) {
	cat := loadTestCatalog(t)

	text := formatAbout(cat.Summary())
	if !strings.Contains(text, "Математика: 1") || !strings.Contains(text, "Информатика: 2") {
		t.Fatalf("subject counts missing: %q", text)
	}
}
