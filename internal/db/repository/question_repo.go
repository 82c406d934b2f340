package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/quizhub/trivia-api/internal/trivia"
)

const questionColumns = "id, question, answer, category, difficulty"

// QuestionRepository provides question persistence over Postgres. Listing
// order is always id ascending, which with a serial key is insertion order.
type QuestionRepository struct {
	db DBTX
}

func NewQuestionRepository(db DBTX) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// ListPage returns one window of the full ordered question set.
func (r *QuestionRepository) ListPage(ctx context.Context, limit, offset int) ([]trivia.Question, error) {
	rows, err := r.db.Query(ctx,
		"SELECT "+questionColumns+" FROM questions ORDER BY id LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return scanQuestions(rows)
}

// Count returns the total number of questions.
func (r *QuestionRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM questions").Scan(&total); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return total, nil
}

// Search returns all questions whose text contains term as a case-insensitive
// substring.
func (r *QuestionRepository) Search(ctx context.Context, term string) ([]trivia.Question, error) {
	rows, err := r.db.Query(ctx,
		"SELECT "+questionColumns+" FROM questions WHERE question ILIKE '%' || $1 || '%' ORDER BY id",
		term)
	if err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}
	return scanQuestions(rows)
}

// ByCategory returns all questions referencing the given category id.
func (r *QuestionRepository) ByCategory(ctx context.Context, categoryID int) ([]trivia.Question, error) {
	rows, err := r.db.Query(ctx,
		"SELECT "+questionColumns+" FROM questions WHERE category = $1 ORDER BY id",
		categoryID)
	if err != nil {
		return nil, fmt.Errorf("questions by category: %w", err)
	}
	return scanQuestions(rows)
}

// Insert stores a new question and returns it with its assigned id.
func (r *QuestionRepository) Insert(ctx context.Context, req trivia.CreateRequest) (trivia.Question, error) {
	q := trivia.Question{
		Question:   req.Question,
		Answer:     req.Answer,
		Category:   req.Category,
		Difficulty: req.Difficulty,
	}
	err := r.db.QueryRow(ctx,
		"INSERT INTO questions (question, answer, category, difficulty) VALUES ($1, $2, $3, $4) RETURNING id",
		req.Question, req.Answer, req.Category, req.Difficulty).Scan(&q.ID)
	if err != nil {
		return trivia.Question{}, fmt.Errorf("insert question: %w", err)
	}
	return q, nil
}

// Delete removes a question by id and reports how many rows were affected.
func (r *QuestionRepository) Delete(ctx context.Context, id int) (int64, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM questions WHERE id = $1", id)
	if err != nil {
		return 0, fmt.Errorf("delete question: %w", err)
	}
	return tag.RowsAffected(), nil
}

// NextCandidate returns the first question in store order that belongs to the
// category (0 means any) and is not in exclude. pgx.ErrNoRows signals an
// exhausted pool.
func (r *QuestionRepository) NextCandidate(ctx context.Context, categoryID int, exclude []int) (trivia.Question, error) {
	excluded := make([]int32, len(exclude))
	for i, id := range exclude {
		excluded[i] = int32(id)
	}
	var q trivia.Question
	err := r.db.QueryRow(ctx,
		"SELECT "+questionColumns+" FROM questions WHERE ($1 = 0 OR category = $1) AND NOT (id = ANY($2)) ORDER BY id LIMIT 1",
		categoryID, excluded).Scan(&q.ID, &q.Question, &q.Answer, &q.Category, &q.Difficulty)
	if err != nil {
		return trivia.Question{}, err
	}
	return q, nil
}

func scanQuestions(rows pgx.Rows) ([]trivia.Question, error) {
	defer rows.Close()
	var questions []trivia.Question
	for rows.Next() {
		var q trivia.Question
		if err := rows.Scan(&q.ID, &q.Question, &q.Answer, &q.Category, &q.Difficulty); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return questions, nil
}
