package quiz

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/quizhub/trivia-api/internal/trivia"
)

type candidateStore interface {
	NextCandidate(ctx context.Context, categoryID int, exclude []int) (trivia.Question, error)
}

// CategoryRef scopes quiz selection. ID 0 means all categories.
type CategoryRef struct {
	ID   int
	Type string
}

// Service picks the next unseen question for a quiz session. Sessions are
// client-tracked: the caller sends back the ids it has already shown.
type Service struct {
	questions candidateStore
}

func NewService(questions candidateStore) *Service {
	return &Service{questions: questions}
}

// Next returns one question in scope whose id is not in previous, or nil when
// the pool is exhausted. A missing category is trivia.ErrUnprocessable:
// exhaustion and malformed input are distinct outcomes.
func (s *Service) Next(ctx context.Context, previous []int, category *CategoryRef) (*trivia.Question, error) {
	if category == nil {
		return nil, trivia.ErrUnprocessable
	}

	question, err := s.questions.NextCandidate(ctx, category.ID, previous)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &question, nil
}
