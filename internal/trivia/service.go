package trivia

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type questionStore interface {
	ListPage(ctx context.Context, limit, offset int) ([]Question, error)
	Count(ctx context.Context) (int, error)
	Search(ctx context.Context, term string) ([]Question, error)
	ByCategory(ctx context.Context, categoryID int) ([]Question, error)
	Insert(ctx context.Context, req CreateRequest) (Question, error)
	Delete(ctx context.Context, id int) (int64, error)
}

type categoryStore interface {
	List(ctx context.Context) ([]Category, error)
	GetByID(ctx context.Context, id int) (Category, error)
}

// CategoryCache defines cache behavior for the id->type map (implemented by
// the Redis-backed Cache). A nil map from Get means a miss.
type CategoryCache interface {
	Get(ctx context.Context) (CategoryMap, error)
	Set(ctx context.Context, categories CategoryMap) error
}

// Service implements listing, pagination, search, category filtering, and
// question lifecycle over the record store.
type Service struct {
	questions  questionStore
	categories categoryStore
	cache      CategoryCache
}

// NewService builds a Service. cache may be nil, disabling category caching.
func NewService(questions questionStore, categories categoryStore, cache CategoryCache) *Service {
	return &Service{
		questions:  questions,
		categories: categories,
		cache:      cache,
	}
}

// Categories returns the full id->type mapping, preferring the cache.
func (s *Service) Categories(ctx context.Context) (CategoryMap, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	m := make(CategoryMap, len(categories))
	for _, c := range categories {
		m[c.ID] = c.Type
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, m)
	}
	return m, nil
}

// QuestionPage returns the 1-based page of the ordered question set. A page
// beyond the data, or page < 1, is ErrNotFound.
func (s *Service) QuestionPage(ctx context.Context, page int) (QuestionPage, error) {
	if page < 1 {
		return QuestionPage{}, ErrNotFound
	}

	questions, err := s.questions.ListPage(ctx, QuestionsPerPage, (page-1)*QuestionsPerPage)
	if err != nil {
		return QuestionPage{}, err
	}
	if len(questions) == 0 {
		return QuestionPage{}, ErrNotFound
	}

	total, err := s.questions.Count(ctx)
	if err != nil {
		return QuestionPage{}, err
	}
	categories, err := s.Categories(ctx)
	if err != nil {
		return QuestionPage{}, err
	}

	return QuestionPage{
		Questions:       questions,
		TotalQuestions:  total,
		Categories:      categories,
		CurrentCategory: "",
	}, nil
}

// Search returns every question containing the term, unpaginated. No match is
// a success with an empty list, not an error.
func (s *Service) Search(ctx context.Context, req SearchRequest) (QuestionPage, error) {
	questions, err := s.questions.Search(ctx, req.Term)
	if err != nil {
		return QuestionPage{}, err
	}
	if questions == nil {
		questions = []Question{}
	}
	categories, err := s.Categories(ctx)
	if err != nil {
		return QuestionPage{}, err
	}

	return QuestionPage{
		Questions:       questions,
		TotalQuestions:  len(questions),
		Categories:      categories,
		CurrentCategory: "",
	}, nil
}

// QuestionsByCategory returns all questions of one category, with the
// category's label as CurrentCategory. An unknown id is ErrNotFound.
func (s *Service) QuestionsByCategory(ctx context.Context, categoryID int) (QuestionPage, error) {
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return QuestionPage{}, ErrNotFound
		}
		return QuestionPage{}, err
	}

	questions, err := s.questions.ByCategory(ctx, categoryID)
	if err != nil {
		return QuestionPage{}, err
	}
	if questions == nil {
		questions = []Question{}
	}
	categories, err := s.Categories(ctx)
	if err != nil {
		return QuestionPage{}, err
	}

	return QuestionPage{
		Questions:       questions,
		TotalQuestions:  len(questions),
		Categories:      categories,
		CurrentCategory: category.Type,
	}, nil
}

// CreateQuestion inserts a new question. Question and answer text must be
// non-empty; the category reference is deliberately not validated.
func (s *Service) CreateQuestion(ctx context.Context, req CreateRequest) (Question, error) {
	if req.Question == "" || req.Answer == "" {
		return Question{}, ErrUnprocessable
	}
	return s.questions.Insert(ctx, req)
}

// DeleteQuestion removes a question by id. A missing target or a failed
// delete both surface as ErrUnprocessable.
func (s *Service) DeleteQuestion(ctx context.Context, id int) error {
	rows, err := s.questions.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnprocessable, err)
	}
	if rows == 0 {
		return ErrUnprocessable
	}
	return nil
}
