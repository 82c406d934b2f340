package quiz

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/quizhub/trivia-api/internal/trivia"
)

func playBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestPlayReturnsQuestion(t *testing.T) {
	service := NewService(&stubCandidateStore{
		next: func(_ context.Context, categoryID int, exclude []int) (trivia.Question, error) {
			assert.Equal(t, 4, categoryID)
			assert.Equal(t, []int{5}, exclude)
			return trivia.Question{ID: 6, Question: "q", Answer: "a", Category: 4, Difficulty: 2}, nil
		},
	})
	handlers := NewHTTPHandlers(service, zerolog.Nop())

	payload := `{"previous_questions":[5],"quiz_category":{"id":"4","type":"History"}}`
	rec := httptest.NewRecorder()
	handlers.Play(rec, httptest.NewRequest(http.MethodPost, "/quizzes", strings.NewReader(payload)))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := playBody(t, rec)
	assert.Equal(t, true, body["success"])
	question := body["question"].(map[string]any)
	assert.Equal(t, float64(6), question["id"])
	assert.Equal(t, float64(4), question["category"])
}

func TestPlayMissingCategoryIsUnprocessable(t *testing.T) {
	handlers := NewHTTPHandlers(NewService(&stubCandidateStore{}), zerolog.Nop())

	rec := httptest.NewRecorder()
	handlers.Play(rec, httptest.NewRequest(http.MethodPost, "/quizzes", strings.NewReader(`{"previous_questions":[1]}`)))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := playBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(422), body["error"])
	assert.Equal(t, "unprocessable", body["message"])
}

func TestPlayNonNumericCategoryIDIsUnprocessable(t *testing.T) {
	handlers := NewHTTPHandlers(NewService(&stubCandidateStore{}), zerolog.Nop())

	payload := `{"previous_questions":[],"quiz_category":{"id":"click","type":"all"}}`
	rec := httptest.NewRecorder()
	handlers.Play(rec, httptest.NewRequest(http.MethodPost, "/quizzes", strings.NewReader(payload)))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPlayExhaustedPoolReturnsNull(t *testing.T) {
	service := NewService(&stubCandidateStore{
		next: func(context.Context, int, []int) (trivia.Question, error) {
			return trivia.Question{}, pgx.ErrNoRows
		},
	})
	handlers := NewHTTPHandlers(service, zerolog.Nop())

	payload := `{"previous_questions":[1,2,3],"quiz_category":{"id":2,"type":"Art"}}`
	rec := httptest.NewRecorder()
	handlers.Play(rec, httptest.NewRequest(http.MethodPost, "/quizzes", strings.NewReader(payload)))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := playBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Nil(t, body["question"])
}

func TestPlayBadJSONIsUnprocessable(t *testing.T) {
	handlers := NewHTTPHandlers(NewService(&stubCandidateStore{}), zerolog.Nop())

	rec := httptest.NewRecorder()
	handlers.Play(rec, httptest.NewRequest(http.MethodPost, "/quizzes", strings.NewReader(`{broken`)))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
