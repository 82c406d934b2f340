package quiz

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	"github.com/quizhub/trivia-api/internal/trivia"
)

type stubCandidateStore struct {
	next func(ctx context.Context, categoryID int, exclude []int) (trivia.Question, error)
}

func (s *stubCandidateStore) NextCandidate(ctx context.Context, categoryID int, exclude []int) (trivia.Question, error) {
	return s.next(ctx, categoryID, exclude)
}

func TestNextRequiresCategory(t *testing.T) {
	service := NewService(&stubCandidateStore{})

	_, err := service.Next(context.Background(), nil, nil)
	assert.ErrorIs(t, err, trivia.ErrUnprocessable)
}

func TestNextScopesAndExcludes(t *testing.T) {
	var gotCategory int
	var gotExclude []int
	service := NewService(&stubCandidateStore{
		next: func(_ context.Context, categoryID int, exclude []int) (trivia.Question, error) {
			gotCategory = categoryID
			gotExclude = exclude
			return trivia.Question{ID: 6, Question: "q", Answer: "a", Category: 4}, nil
		},
	})

	question, err := service.Next(context.Background(), []int{5}, &CategoryRef{ID: 4, Type: "History"})
	assert.NoError(t, err)
	assert.Equal(t, 4, gotCategory)
	assert.Equal(t, []int{5}, gotExclude)
	assert.Equal(t, 4, question.Category)
	assert.NotEqual(t, 5, question.ID)
}

func TestNextAllCategories(t *testing.T) {
	var gotCategory int
	service := NewService(&stubCandidateStore{
		next: func(_ context.Context, categoryID int, _ []int) (trivia.Question, error) {
			gotCategory = categoryID
			return trivia.Question{ID: 1}, nil
		},
	})

	_, err := service.Next(context.Background(), nil, &CategoryRef{ID: 0, Type: "click"})
	assert.NoError(t, err)
	assert.Equal(t, 0, gotCategory)
}

func TestNextExhaustedPoolIsEmptyResult(t *testing.T) {
	service := NewService(&stubCandidateStore{
		next: func(context.Context, int, []int) (trivia.Question, error) {
			return trivia.Question{}, pgx.ErrNoRows
		},
	})

	question, err := service.Next(context.Background(), []int{1, 2, 3}, &CategoryRef{ID: 2})
	assert.NoError(t, err)
	assert.Nil(t, question)
}

func TestNextStoreFailure(t *testing.T) {
	service := NewService(&stubCandidateStore{
		next: func(context.Context, int, []int) (trivia.Question, error) {
			return trivia.Question{}, errors.New("db down")
		},
	})

	_, err := service.Next(context.Background(), nil, &CategoryRef{ID: 1})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, trivia.ErrUnprocessable)
}
