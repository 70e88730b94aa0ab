package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"quizbot/internal/catalog"
	"quizbot/internal/quiz"
)

const defaultLeaderboardLimit = 10

// LeaderboardService is satisfied by the cached leaderboard reader.
type LeaderboardService interface {
	Top(ctx context.Context, n int) ([]quiz.LeaderboardEntry, error)
}

// ProfileReader is the read-only slice of the profile store.
type ProfileReader interface {
	GetProfile(ctx context.Context, userID int64) (quiz.UserProfile, error)
}

type API struct {
	leaderboard LeaderboardService
	profiles    ProfileReader
	catalog     *catalog.Catalog
	log         *zap.SugaredLogger
}

func (a *API) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func (a *API) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimitParam(r, defaultLeaderboardLimit)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	entries, err := a.leaderboard.Top(r.Context(), limit)
	if err != nil {
		a.log.Errorw("leaderboard read failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "request failed"})
		return
	}

	writeJSON(w, http.StatusOK, leaderboardResponse{Entries: entries})
}

func (a *API) HandleProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "user id must be an integer"})
		return
	}

	profile, err := a.profiles.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, quiz.ErrUnknownUser) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "user not found"})
			return
		}
		a.log.Errorw("profile read failed", "user_id", userID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "request failed"})
		return
	}

	scores := make(map[string]int, len(profile.Scores))
	for subject, score := range profile.Scores {
		scores[string(subject)] = score
	}
	writeJSON(w, http.StatusOK, profileResponse{
		UserID:      profile.UserID,
		DisplayName: profile.DisplayName,
		Scores:      scores,
		TotalScore:  profile.TotalScore,
		LastActive:  profile.LastActive,
	})
}

func (a *API) HandleSubjects(w http.ResponseWriter, r *http.Request) {
	summaries := a.catalog.Summary()

	subjects := make([]subjectResponse, 0, len(summaries))
	for _, summary := range summaries {
		subjects = append(subjects, subjectResponse{
			Subject:       string(summary.Subject),
			Title:         summary.Title,
			QuestionCount: summary.QuestionCount,
		})
	}

	writeJSON(w, http.StatusOK, subjectsResponse{Subjects: subjects})
}
