package telegram

import (
	"fmt"

	"quizbot/internal/catalog"
)

const (
	cancelLabel = "❌ Отменить тест"
	topLabel    = "🏆 Топ игроков"
	aboutLabel  = "ℹ️ О боте"
)

// subjectLabel renders the fixed menu button text for a subject. The same
// string is used to resolve button presses back to the subject, so the
// engine only ever sees the closed Subject set, never raw text.
func subjectLabel(subject catalog.Subject, questionCount int) string {
	return fmt.Sprintf("%s %s (%d вопр.)", subject.Emoji(), subject.Title(), questionCount)
}

// buildSubjectIndex maps exact menu labels to subjects for every subject in
// the catalog. Labels embed question counts, and the catalog is immutable,
// so the table is computed once at startup.
func buildSubjectIndex(cat *catalog.Catalog) map[string]catalog.Subject {
	index := make(map[string]catalog.Subject)
	for _, subject := range cat.Subjects() {
		index[subjectLabel(subject, cat.QuestionCount(subject))] = subject
	}
	return index
}
