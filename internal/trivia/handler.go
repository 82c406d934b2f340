package trivia

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	httperrors "github.com/quizhub/trivia-api/pkg/http/errors"
)

// HTTPHandlers provides the REST endpoints for categories and questions.
type HTTPHandlers struct {
	service *Service
	logger  zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for the trivia endpoints.
func NewHTTPHandlers(service *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		service: service,
		logger:  logger.With().Str("component", "trivia_http").Logger(),
	}
}

type categoriesResponse struct {
	Success    bool        `json:"success"`
	Categories CategoryMap `json:"categories"`
}

type questionListResponse struct {
	Success         bool        `json:"success"`
	Questions       []Question  `json:"questions"`
	TotalQuestions  int         `json:"total_questions"`
	Categories      CategoryMap `json:"categories"`
	CurrentCategory string      `json:"current_category"`
}

type deleteResponse struct {
	Success bool `json:"success"`
	Delete  int  `json:"delete"`
}

type createResponse struct {
	Success  bool     `json:"success"`
	Question Question `json:"question"`
}

// GetCategories handles GET /categories.
func (h *HTTPHandlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list categories")
		httperrors.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.respondJSON(w, http.StatusOK, categoriesResponse{Success: true, Categories: categories})
}

// ListQuestions handles GET /questions?page=N.
func (h *HTTPHandlers) ListQuestions(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			page = parsed
		}
	}

	result, err := h.service.QuestionPage(r.Context(), page)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httperrors.RespondNotFound(w)
			return
		}
		h.logger.Error().Err(err).Int("page", page).Msg("failed to list questions")
		httperrors.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.respondJSON(w, http.StatusOK, pageResponse(result))
}

// questionPayload is the undiscriminated POST /questions body. toRequest
// classifies it as a search or a create; a present but empty searchTerm means
// create, which is what the browser client relies on.
type questionPayload struct {
	SearchTerm *string  `json:"searchTerm"`
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Category   LooseInt `json:"category"`
	Difficulty LooseInt `json:"difficulty"`
}

func (p questionPayload) toRequest() any {
	if p.SearchTerm != nil && *p.SearchTerm != "" {
		return SearchRequest{Term: *p.SearchTerm}
	}
	return CreateRequest{
		Question:   p.Question,
		Answer:     p.Answer,
		Category:   int(p.Category),
		Difficulty: int(p.Difficulty),
	}
}

// CreateOrSearchQuestions handles POST /questions, dispatching on the payload
// shape.
func (h *HTTPHandlers) CreateOrSearchQuestions(w http.ResponseWriter, r *http.Request) {
	var payload questionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httperrors.RespondBadRequest(w)
		return
	}

	switch req := payload.toRequest().(type) {
	case SearchRequest:
		result, err := h.service.Search(r.Context(), req)
		if err != nil {
			h.logger.Error().Err(err).Str("term", req.Term).Msg("search failed")
			httperrors.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		h.respondJSON(w, http.StatusOK, pageResponse(result))

	case CreateRequest:
		question, err := h.service.CreateQuestion(r.Context(), req)
		if err != nil {
			if errors.Is(err, ErrUnprocessable) {
				httperrors.RespondUnprocessable(w)
				return
			}
			h.logger.Error().Err(err).Msg("create question failed")
			httperrors.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		h.respondJSON(w, http.StatusOK, createResponse{Success: true, Question: question})
	}
}

// DeleteQuestion handles DELETE /questions/{id}.
func (h *HTTPHandlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httperrors.RespondUnprocessable(w)
		return
	}

	if err := h.service.DeleteQuestion(r.Context(), id); err != nil {
		if errors.Is(err, ErrUnprocessable) {
			httperrors.RespondUnprocessable(w)
			return
		}
		h.logger.Error().Err(err).Int("id", id).Msg("delete question failed")
		httperrors.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.respondJSON(w, http.StatusOK, deleteResponse{Success: true, Delete: id})
}

// CategoryQuestions handles GET /categories/{id}/questions.
func (h *HTTPHandlers) CategoryQuestions(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httperrors.RespondNotFound(w)
		return
	}

	result, err := h.service.QuestionsByCategory(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httperrors.RespondNotFound(w)
			return
		}
		h.logger.Error().Err(err).Int("category", id).Msg("category listing failed")
		httperrors.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.respondJSON(w, http.StatusOK, pageResponse(result))
}

func pageResponse(p QuestionPage) questionListResponse {
	return questionListResponse{
		Success:         true,
		Questions:       p.Questions,
		TotalQuestions:  p.TotalQuestions,
		Categories:      p.Categories,
		CurrentCategory: p.CurrentCategory,
	}
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("encode response failed")
	}
}
