package trivia

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type createQuestionRequest struct {
	Question   json.RawMessage `json:"question"`
	Answer     json.RawMessage `json:"answer"`
	Category   json.RawMessage `json:"category"`
	Difficulty json.RawMessage `json:"difficulty"`
}

type searchRequest struct {
	SearchTerm *string `json:"searchTerm"`
}

type quizRequest struct {
	QuizCategory      json.RawMessage `json:"quiz_category"`
	PreviousQuestions json.RawMessage `json:"previous_questions"`
}

type quizCategory struct {
	ID   json.RawMessage `json:"id"`
	Type json.RawMessage `json:"type"`
}

// decodeCreateQuestion parses a create body. An absent body, or a missing or
// empty field, is ErrBadRequest. A category or difficulty that is not an
// integer is ErrUnprocessable.
func decodeCreateQuestion(body io.Reader) (CreateQuestionInput, error) {
	var req createQuestionRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return CreateQuestionInput{}, fmt.Errorf("%w: decode body: %w", ErrBadRequest, err)
	}
	fields := map[string]json.RawMessage{
		"question":   req.Question,
		"answer":     req.Answer,
		"category":   req.Category,
		"difficulty": req.Difficulty,
	}
	for name, raw := range fields {
		if isBlank(raw) {
			return CreateQuestionInput{}, fmt.Errorf("%w: %s is required", ErrBadRequest, name)
		}
	}

	var in CreateQuestionInput
	if err := json.Unmarshal(req.Question, &in.Question); err != nil {
		return CreateQuestionInput{}, fmt.Errorf("%w: question must be a string", ErrBadRequest)
	}
	if err := json.Unmarshal(req.Answer, &in.Answer); err != nil {
		return CreateQuestionInput{}, fmt.Errorf("%w: answer must be a string", ErrBadRequest)
	}
	var err error
	if in.Category, err = decodeInt(req.Category); err != nil {
		return CreateQuestionInput{}, fmt.Errorf("%w: category: %w", ErrUnprocessable, err)
	}
	if in.Difficulty, err = decodeInt(req.Difficulty); err != nil {
		return CreateQuestionInput{}, fmt.Errorf("%w: difficulty: %w", ErrUnprocessable, err)
	}
	return in, nil
}

// decodeSearchTerm returns the searchTerm of a search body; a missing term is "".
func decodeSearchTerm(body io.Reader) (string, error) {
	var req searchRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return "", fmt.Errorf("%w: decode body: %w", ErrUnprocessable, err)
	}
	if req.SearchTerm == nil {
		return "", nil
	}
	return *req.SearchTerm, nil
}

// decodeQuizRequest parses a quiz body. Any malformed part is ErrUnprocessable.
func decodeQuizRequest(body io.Reader) (QuizRequest, error) {
	var req quizRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return QuizRequest{}, fmt.Errorf("%w: decode body: %w", ErrUnprocessable, err)
	}
	if isNull(req.QuizCategory) {
		return QuizRequest{}, fmt.Errorf("%w: quiz_category is required", ErrUnprocessable)
	}
	var category quizCategory
	if err := json.Unmarshal(req.QuizCategory, &category); err != nil {
		return QuizRequest{}, fmt.Errorf("%w: quiz_category must be an object", ErrUnprocessable)
	}
	categoryID, err := decodeInt(category.ID)
	if err != nil {
		return QuizRequest{}, fmt.Errorf("%w: quiz_category.id: %w", ErrUnprocessable, err)
	}

	if isNull(req.PreviousQuestions) {
		return QuizRequest{}, fmt.Errorf("%w: previous_questions is required", ErrUnprocessable)
	}
	var rawIDs []json.RawMessage
	if err := json.Unmarshal(req.PreviousQuestions, &rawIDs); err != nil {
		return QuizRequest{}, fmt.Errorf("%w: previous_questions must be a list", ErrUnprocessable)
	}
	previous := make([]int, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := decodeInt(raw)
		if err != nil {
			return QuizRequest{}, fmt.Errorf("%w: previous_questions: %w", ErrUnprocessable, err)
		}
		previous = append(previous, id)
	}
	return QuizRequest{CategoryID: categoryID, PreviousIDs: previous}, nil
}

// decodeInt accepts a JSON integer or a string holding one.
func decodeInt(raw json.RawMessage) (int, error) {
	if isNull(raw) {
		return 0, fmt.Errorf("missing integer")
	}
	var s string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
	} else {
		s = string(raw)
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	return n, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// isBlank reports a missing value, a null or a whitespace-only string.
func isBlank(raw json.RawMessage) bool {
	if isNull(raw) {
		return true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return false
	}
	return strings.TrimSpace(s) == ""
}
