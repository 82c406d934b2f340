package quiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/quizhub/trivia-api/internal/trivia"
	httperrors "github.com/quizhub/trivia-api/pkg/http/errors"
)

// HTTPHandlers provides the REST endpoint for playing a quiz.
type HTTPHandlers struct {
	service *Service
	logger  zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for the quiz endpoint.
func NewHTTPHandlers(service *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		service: service,
		logger:  logger.With().Str("component", "quiz_http").Logger(),
	}
}

type playRequest struct {
	PreviousQuestions []int         `json:"previous_questions"`
	QuizCategory      *quizCategory `json:"quiz_category"`
}

type quizCategory struct {
	ID   trivia.LooseInt `json:"id"`
	Type string          `json:"type"`
}

type playResponse struct {
	Success  bool             `json:"success"`
	Question *trivia.Question `json:"question"`
}

// Play handles POST /quizzes. A question of null with success true means the
// category is exhausted.
func (h *HTTPHandlers) Play(w http.ResponseWriter, r *http.Request) {
	var req playRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondUnprocessable(w)
		return
	}

	var category *CategoryRef
	if req.QuizCategory != nil {
		category = &CategoryRef{ID: int(req.QuizCategory.ID), Type: req.QuizCategory.Type}
	}

	question, err := h.service.Next(r.Context(), req.PreviousQuestions, category)
	if err != nil {
		if errors.Is(err, trivia.ErrUnprocessable) {
			httperrors.RespondUnprocessable(w)
			return
		}
		h.logger.Error().Err(err).Msg("quiz selection failed")
		httperrors.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(playResponse{Success: true, Question: question}); err != nil {
		h.logger.Error().Err(err).Msg("encode response failed")
	}
}
