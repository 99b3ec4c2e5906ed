package trivia

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

const maxBodyBytes = 1 << 20

// HTTPHandler exposes the trivia REST endpoints.
type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// Mount registers the trivia routes on r.
func (h *HTTPHandler) Mount(r chi.Router) {
	r.Get("/categories", h.HandleCategories)
	r.Get("/categories/{id}/questions", h.HandleCategoryQuestions)
	r.Get("/questions", h.HandleListQuestions)
	r.Post("/questions", h.HandleCreateQuestion)
	r.Post("/questions/search", h.HandleSearchQuestions)
	r.Delete("/questions/{id}", h.HandleDeleteQuestion)
	r.Post("/quizzes", h.HandlePlayQuiz)
}

type categoriesResponse struct {
	Success    bool        `json:"success"`
	Categories CategoryMap `json:"categories"`
}

type listQuestionsResponse struct {
	Success         bool        `json:"success"`
	Questions       []Question  `json:"questions"`
	TotalQuestions  int         `json:"total_questions"`
	Categories      CategoryMap `json:"categories"`
	CurrentCategory *string     `json:"current_category"`
}

type deleteQuestionResponse struct {
	Success        bool       `json:"success"`
	Deleted        int        `json:"deleted"`
	Questions      []Question `json:"questions"`
	TotalQuestions int        `json:"total_questions"`
}

type createQuestionResponse struct {
	Success        bool       `json:"success"`
	Created        int        `json:"created"`
	Questions      []Question `json:"questions"`
	TotalQuestions int        `json:"total_questions"`
}

type searchResponse struct {
	Success         bool       `json:"success"`
	Questions       []Question `json:"questions"`
	TotalQuestions  int        `json:"total_questions"`
	CurrentCategory *string    `json:"current_category"`
}

type categoryQuestionsResponse struct {
	Success         bool       `json:"success"`
	Questions       []Question `json:"questions"`
	TotalQuestions  int        `json:"total_questions"`
	CurrentCategory string     `json:"current_category"`
}

type quizResponse struct {
	Success  bool      `json:"success"`
	Question *Question `json:"question,omitempty"`
}

// HandleCategories handles GET /categories
func (h *HTTPHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, categoriesResponse{Success: true, Categories: categories})
}

// HandleListQuestions handles GET /questions?page=N
func (h *HTTPHandler) HandleListQuestions(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListQuestions(r.Context(), parsePage(r))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrNotFound) {
			status = http.StatusNotFound
		}
		h.fail(w, r, status, err)
		return
	}
	writeJSON(w, http.StatusOK, listQuestionsResponse{
		Success:         true,
		Questions:       list.Questions,
		TotalQuestions:  list.Total,
		Categories:      list.Categories,
		CurrentCategory: list.CurrentCategory,
	})
}

// HandleDeleteQuestion handles DELETE /questions/{id}. Every failure is a 404.
func (h *HTTPHandler) HandleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}
	result, err := h.svc.DeleteQuestion(r.Context(), id, parsePage(r))
	if err != nil {
		h.fail(w, r, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteQuestionResponse{
		Success:        true,
		Deleted:        result.ID,
		Questions:      result.Questions,
		TotalQuestions: result.Total,
	})
}

// HandleCreateQuestion handles POST /questions
func (h *HTTPHandler) HandleCreateQuestion(w http.ResponseWriter, r *http.Request) {
	in, err := decodeCreateQuestion(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err == nil {
		var result QuestionMutation
		result, err = h.svc.CreateQuestion(r.Context(), in, parsePage(r))
		if err == nil {
			writeJSON(w, http.StatusOK, createQuestionResponse{
				Success:        true,
				Created:        result.ID,
				Questions:      result.Questions,
				TotalQuestions: result.Total,
			})
			return
		}
	}

	status := http.StatusUnprocessableEntity
	if errors.Is(err, ErrBadRequest) {
		status = http.StatusBadRequest
	}
	h.fail(w, r, status, err)
}

// HandleSearchQuestions handles POST /questions/search?page=N
func (h *HTTPHandler) HandleSearchQuestions(w http.ResponseWriter, r *http.Request) {
	term, err := decodeSearchTerm(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.fail(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	result, err := h.svc.SearchQuestions(r.Context(), term, parsePage(r))
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, ErrNotFound) {
			status = http.StatusNotFound
		}
		h.fail(w, r, status, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{
		Success:         true,
		Questions:       result.Questions,
		TotalQuestions:  result.Total,
		CurrentCategory: result.CurrentCategory,
	})
}

// HandleCategoryQuestions handles GET /categories/{id}/questions?page=N
func (h *HTTPHandler) HandleCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}
	result, err := h.svc.QuestionsByCategory(r.Context(), id, parsePage(r))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrBadRequest) {
			status = http.StatusBadRequest
		}
		h.fail(w, r, status, err)
		return
	}
	writeJSON(w, http.StatusOK, categoryQuestionsResponse{
		Success:         true,
		Questions:       result.Questions,
		TotalQuestions:  result.Total,
		CurrentCategory: result.CurrentCategory,
	})
}

// HandlePlayQuiz handles POST /quizzes. An exhausted category answers
// {"success": false} with status 200.
func (h *HTTPHandler) HandlePlayQuiz(w http.ResponseWriter, r *http.Request) {
	req, err := decodeQuizRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.svc.metrics.observeDraw(DrawFailed)
		h.fail(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	next, err := h.svc.NextQuizQuestion(r.Context(), req)
	if err != nil {
		h.fail(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, quizResponse{Success: next != nil, Question: next})
}

func (h *HTTPHandler) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	log := logging.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}
	httperrors.RespondError(w, status)
}

// parsePage reads the page query parameter; absent or non-integer values mean page 1.
func parsePage(r *http.Request) int {
	raw := strings.TrimSpace(r.URL.Query().Get("page"))
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return page
}

func pathInt(r *http.Request, key string) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, key))
	if err != nil {
		return 0, false
	}
	return n, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
