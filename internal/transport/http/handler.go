// Package http exposes the quiz use cases over a JSON REST API.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"smartquiz-service/internal/app"
	"smartquiz-service/internal/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// defaultQuestionCount is used when the request omits numberOfQuestions.
const defaultQuestionCount = 10

type TopicHandler struct {
	service *app.TopicService
	logger  *slog.Logger
}

func NewTopicHandler(service *app.TopicService, logger *slog.Logger) *TopicHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TopicHandler{service: service, logger: logger}
}

// NewRouter assembles the API router. All /api/topic routes require a
// bearer token; the banner and health endpoints are open.
func NewRouter(handler *TopicHandler, verifier *auth.Verifier) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, envelope{
			"success": true,
			"message": "SmartQuiz API is running",
			"version": "1.0.0",
		})
	})
	r.Get("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, envelope{
			"success":   true,
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	r.Route("/api/topic", func(r chi.Router) {
		r.Use(verifier.Middleware)
		r.Post("/generate", handler.Generate)
		r.Get("/statistics", handler.Statistics)
		r.Get("/all", handler.ListTopics)
		r.Get("/{id}", handler.GetTopic)
		r.Post("/{id}/submit", handler.SubmitAnswers)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	return r
}

type generateRequest struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	NumberOfQuestions *int   `json:"numberOfQuestions"`
}

func (h *TopicHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	count := defaultQuestionCount
	if req.NumberOfQuestions != nil {
		count = *req.NumberOfQuestions
	}

	ownerID := auth.OwnerFromContext(r.Context())
	topic, err := h.service.Generate(r.Context(), ownerID, req.Title, req.Description, count)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{
		"success": true,
		"message": "Questions generated successfully",
		"topic":   topic,
	})
}

func (h *TopicHandler) ListTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.service.ListTopics(r.Context(), auth.OwnerFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "topics": topics})
}

func (h *TopicHandler) GetTopic(w http.ResponseWriter, r *http.Request) {
	topic, err := h.service.GetTopic(r.Context(), chi.URLParam(r, "id"), auth.OwnerFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "topic": topic})
}

func (h *TopicHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Statistics(r.Context(), auth.OwnerFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "statistics": stats})
}

type submitRequest struct {
	Answers map[string]string `json:"answers"`
}

func (h *TopicHandler) SubmitAnswers(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.SubmitAnswers(r.Context(), chi.URLParam(r, "id"), auth.OwnerFromContext(r.Context()), req.Answers)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"score":   result.Score,
		"total":   result.Total,
		"results": result.Results,
	})
}
