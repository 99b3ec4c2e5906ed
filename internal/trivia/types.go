package trivia

import "github.com/gokatarajesh/trivia-api/internal/db/models"

// QuestionsPerPage is the fixed page size of every paginated endpoint.
const QuestionsPerPage = 10

// AllCategories is the quiz category id meaning "draw from every category".
const AllCategories = 0

// Question is the payload delivered to clients.
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty int    `json:"difficulty"`
	Category   int    `json:"category"`
}

// CategoryMap maps category ids to their display names. It is the only way
// categories are rendered; JSON object keys are the decimal ids.
type CategoryMap map[int]string

// QuestionList is one page of the generic question listing.
type QuestionList struct {
	Questions       []Question
	Total           int
	Categories      CategoryMap
	CurrentCategory *string
}

// QuestionMutation reports a create or delete together with the refreshed listing.
type QuestionMutation struct {
	ID        int
	Questions []Question
	Total     int
}

// SearchResult is one page of substring matches.
type SearchResult struct {
	Questions       []Question
	Total           int
	CurrentCategory *string
}

// CategoryQuestions is one page of a single category.
type CategoryQuestions struct {
	Questions       []Question
	Total           int
	CurrentCategory string
}

// CreateQuestionInput carries a validated new question.
type CreateQuestionInput struct {
	Question   string
	Answer     string
	Category   int
	Difficulty int
}

// QuizRequest asks for the next quiz question. CategoryID AllCategories draws
// from the whole question set.
type QuizRequest struct {
	CategoryID  int
	PreviousIDs []int
}

func toDomain(row models.Question) Question {
	return Question{
		ID:         int(row.ID),
		Question:   row.Question,
		Answer:     row.Answer,
		Difficulty: int(row.Difficulty),
		Category:   int(row.CategoryID),
	}
}

func toDomainList(rows []models.Question) []Question {
	out := make([]Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomain(row))
	}
	return out
}
