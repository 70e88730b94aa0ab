// Package catalog holds the immutable question catalog. It is loaded once at
// startup from a JSON document and is read-only afterwards, so concurrent
// readers need no synchronization.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	ErrCatalogLoad      = errors.New("catalog load failed")
	ErrQuestionNotFound = errors.New("question not found")
)

// Subject identifies a question category. The set of subjects is closed:
// only the keys listed in subjectOrder are accepted at load time.
type Subject string

const (
	SubjectMath    Subject = "math"
	SubjectCS      Subject = "cs"
	SubjectHistory Subject = "history"
)

// subjectOrder fixes the presentation order for menus and summaries.
var subjectOrder = []Subject{SubjectMath, SubjectCS, SubjectHistory}

var subjectTitles = map[Subject]string{
	SubjectMath:    "Математика",
	SubjectCS:      "Информатика",
	SubjectHistory: "История",
}

var subjectEmoji = map[Subject]string{
	SubjectMath:    "🧮",
	SubjectCS:      "💻",
	SubjectHistory: "🏛️",
}

// Known reports whether s is one of the closed subject set.
func Known(s Subject) bool {
	_, ok := subjectTitles[s]
	return ok
}

// Title returns the human-readable subject name.
func (s Subject) Title() string {
	return subjectTitles[s]
}

// Emoji returns the menu emoji for the subject.
func (s Subject) Emoji() string {
	return subjectEmoji[s]
}

type Question struct {
	Subject      Subject
	Prompt       string
	Emoji        string
	Options      []string
	CorrectIndex int
}

// CorrectOption returns the option text at the correct index.
func (q Question) CorrectOption() string {
	return q.Options[q.CorrectIndex]
}

type SubjectSummary struct {
	Subject       Subject
	Title         string
	QuestionCount int
}

type Catalog struct {
	questions map[Subject][]Question
}

type rawQuestion struct {
	Prompt       string   `json:"prompt"`
	Emoji        string   `json:"emoji"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

// Load parses and validates the catalog document:
//
//	{"math": [{"prompt": ..., "emoji": ..., "options": [...], "correctIndex": 0}], ...}
//
// Any unknown subject key, empty subject, empty prompt, empty option list or
// out-of-range correctIndex fails the whole load. The process must not start
// with an invalid catalog.
func Load(r io.Reader) (*Catalog, error) {
	var raw map[string][]rawQuestion
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogLoad, err)
	}

	questions := make(map[Subject][]Question, len(raw))
	for key, items := range raw {
		subject := Subject(key)
		if !Known(subject) {
			return nil, fmt.Errorf("%w: unknown subject %q", ErrCatalogLoad, key)
		}
		if len(items) == 0 {
			return nil, fmt.Errorf("%w: subject %q has no questions", ErrCatalogLoad, key)
		}

		converted := make([]Question, 0, len(items))
		for idx, item := range items {
			if item.Prompt == "" {
				return nil, fmt.Errorf("%w: subject %q question %d has empty prompt", ErrCatalogLoad, key, idx)
			}
			if len(item.Options) == 0 {
				return nil, fmt.Errorf("%w: subject %q question %d has no options", ErrCatalogLoad, key, idx)
			}
			if item.CorrectIndex < 0 || item.CorrectIndex >= len(item.Options) {
				return nil, fmt.Errorf("%w: subject %q question %d correctIndex %d out of range",
					ErrCatalogLoad, key, idx, item.CorrectIndex)
			}
			converted = append(converted, Question{
				Subject:      subject,
				Prompt:       item.Prompt,
				Emoji:        item.Emoji,
				Options:      item.Options,
				CorrectIndex: item.CorrectIndex,
			})
		}
		questions[subject] = converted
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", ErrCatalogLoad)
	}

	return &Catalog{questions: questions}, nil
}

// LoadFile loads the catalog from a file on disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogLoad, err)
	}
	defer f.Close()
	return Load(f)
}

// Subjects returns the loaded subjects in fixed presentation order.
func (c *Catalog) Subjects() []Subject {
	subjects := make([]Subject, 0, len(c.questions))
	for _, subject := range subjectOrder {
		if _, ok := c.questions[subject]; ok {
			subjects = append(subjects, subject)
		}
	}
	return subjects
}

// QuestionCount returns the number of questions for the subject, zero if the
// subject is not in the catalog.
func (c *Catalog) QuestionCount(subject Subject) int {
	return len(c.questions[subject])
}

// QuestionAt returns the question at index for the subject.
func (c *Catalog) QuestionAt(subject Subject, index int) (Question, error) {
	items, ok := c.questions[subject]
	if !ok {
		return Question{}, fmt.Errorf("%w: subject %q", ErrQuestionNotFound, subject)
	}
	if index < 0 || index >= len(items) {
		return Question{}, fmt.Errorf("%w: subject %q index %d", ErrQuestionNotFound, subject, index)
	}
	return items[index], nil
}

// Summary lists every loaded subject with its title and question count.
func (c *Catalog) Summary() []SubjectSummary {
	summaries := make([]SubjectSummary, 0, len(c.questions))
	for _, subject := range c.Subjects() {
		summaries = append(summaries, SubjectSummary{
			Subject:       subject,
			Title:         subject.Title(),
			QuestionCount: len(c.questions[subject]),
		})
	}
	return summaries
}
