package telegram

import (
	"fmt"
	"strings"

	"quizbot/internal/catalog"
	"quizbot/internal/quiz"
)

func formatQuestion(view *quiz.QuestionView) string {
	return fmt.Sprintf("%s Вопрос %d/%d\n%s", view.Emoji, view.Index+1, view.TotalQuestions, view.Prompt)
}

func formatFeedback(feedback *quiz.AnswerFeedback) string {
	if feedback.WasCorrect {
		return "✅ Верно!"
	}
	return fmt.Sprintf("❌ Неверно! Правильный ответ: %s", feedback.CorrectOptionText)
}

func formatFinished(result *quiz.TestResult) string {
	return fmt.Sprintf("🎉 Тест завершён!\nПравильных ответов: %d/%d", result.CorrectCount, result.TotalQuestions)
}

func formatTop(entries []quiz.LeaderboardEntry) string {
	if len(entries) == 0 {
		return "🏆 Пока нет результатов. Будьте первым! 🎯"
	}

	var b strings.Builder
	b.WriteString("🏆 ТОП ИГРОКОВ 🏆\n\n")
	for i, entry := range entries {
		name := entry.DisplayName
		if name == "" {
			name = "anonymous"
		}
		fmt.Fprintf(&b, "%d. %s - %d очков\n", i+1, name, entry.TotalScore)
	}
	return b.String()
}

func formatAbout(summaries []catalog.SubjectSummary) string {
	var b strings.Builder
	b.WriteString("🤖 Бот-викторина\n\nДоступные тесты:\n")
	for _, summary := range summaries {
		fmt.Fprintf(&b, "- %s: %d вопросов\n", summary.Title, summary.QuestionCount)
	}
	return b.String()
}
