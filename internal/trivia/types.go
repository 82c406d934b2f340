package trivia

import (
	"fmt"
	"strconv"
	"strings"
)

// QuestionsPerPage is the fixed window size for GET /questions.
const QuestionsPerPage = 10

// LooseInt is an integer that unmarshals from either a JSON number or a
// numeric string. The browser client sends both forms for ids and difficulty.
type LooseInt int

func (n *LooseInt) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("not a numeric value: %q", raw)
	}
	*n = LooseInt(value)
	return nil
}

// Question is a quiz item as stored and as delivered to clients.
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// Category is a labeled grouping for questions.
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// CategoryMap is the id->type mapping every listing response carries.
// encoding/json renders the integer keys as strings, matching the contract.
type CategoryMap map[int]string

// QuestionPage is the result of a paginated, searched, or category-scoped
// listing.
type QuestionPage struct {
	Questions       []Question
	TotalQuestions  int
	Categories      CategoryMap
	CurrentCategory string
}

// SearchRequest asks for all questions whose text contains Term,
// case-insensitively.
type SearchRequest struct {
	Term string
}

// CreateRequest inserts a new question. Category is a loose reference: it is
// not checked against existing categories.
type CreateRequest struct {
	Question   string
	Answer     string
	Category   int
	Difficulty int
}
