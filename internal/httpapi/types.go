package httpapi

import (
	"time"

	"quizbot/internal/quiz"
)

type healthResponse struct {
	Status string `json:"status"`
}

type leaderboardResponse struct {
	Entries []quiz.LeaderboardEntry `json:"entries"`
}

type subjectResponse struct {
	Subject       string `json:"subject"`
	Title         string `json:"title"`
	QuestionCount int    `json:"question_count"`
}

type subjectsResponse struct {
	Subjects []subjectResponse `json:"subjects"`
}

type profileResponse struct {
	UserID      int64          `json:"user_id"`
	DisplayName string         `json:"display_name"`
	Scores      map[string]int `json:"scores"`
	TotalScore  int            `json:"total_score"`
	LastActive  time.Time      `json:"last_active"`
}

type errorResponse struct {
	Error string `json:"error"`
}
