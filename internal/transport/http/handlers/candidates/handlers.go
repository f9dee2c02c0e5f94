package candidateshandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"talent/internal/domain/pipeline"
	"talent/internal/transport/http/api"
	"talent/internal/transport/http/middleware"
	"talent/internal/transport/http/shared"
)

type Handler struct {
	Service *pipeline.Service
}

func NewHandler(service *pipeline.Service) *Handler {
	return &Handler{Service: service}
}

// RegisterRoutes mounts the candidate surface twice: the dashboard pages use
// /candidates, the scheduling flows use the /interviews/candidates alias.
func (h *Handler) RegisterRoutes(r chi.Router) {
	h.registerAt(r, "/candidates")
	h.registerAt(r, "/interviews/candidates")
}

func (h *Handler) registerAt(r chi.Router, base string) {
	r.Route(base, func(r chi.Router) {
		r.Get("/", h.handleList)
		r.With(middleware.RequireAuth).Post("/", h.handleCreate)
		r.With(middleware.RequireAuth).Post("/intake", h.handleIntake)
		r.Get("/{candidateID}", h.handleGet)
		r.Get("/{candidateID}/form", h.handleGetForm)
		r.Get("/{candidateID}/export", h.handleExport)
		r.With(middleware.RequireAuth).Put("/{candidateID}", h.handleUpdate)
		r.With(middleware.RequireAuth).Delete("/{candidateID}", h.handleDelete)
		r.With(middleware.RequireAuth).Put("/{candidateID}/advance", h.handleAdvance)
		r.With(middleware.RequireAuth).Put("/{candidateID}/advance-stage", h.handleAdvance)
		r.With(middleware.RequireAuth).Put("/{candidateID}/reject", h.handleReject)
		r.With(middleware.RequireAuth).Put("/{candidateID}/hire", h.handleHire)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePage(r, 20, 100)
	filter := pipeline.ListFilter{
		Search:   r.URL.Query().Get("search"),
		Status:   pipeline.Status(r.URL.Query().Get("status")),
		Stage:    pipeline.Stage(r.URL.Query().Get("stage")),
		Position: r.URL.Query().Get("position"),
		Page:     page.Page,
		Limit:    page.Limit,
	}

	candidates, total, err := h.Service.List(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "candidates_list_failed", "failed to list candidates", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{
		"items": candidates,
		"total": total,
		"page":  page.Page,
		"limit": page.Limit,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	candidate, err := h.Service.Get(r.Context(), chi.URLParam(r, "candidateID"))
	if err != nil {
		h.fail(w, r, err, "failed to load candidate")
		return
	}
	api.Success(w, candidate, middleware.GetRequestID(r.Context()))
}

// handleGetForm returns the candidate flattened back into the intake-form
// shape, every absent field default-filled.
func (h *Handler) handleGetForm(w http.ResponseWriter, r *http.Request) {
	candidate, err := h.Service.Get(r.Context(), chi.URLParam(r, "candidateID"))
	if err != nil {
		h.fail(w, r, err, "failed to load candidate")
		return
	}
	api.Success(w, pipeline.ToForm(*candidate), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload pipeline.Candidate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	candidate, err := h.Service.Create(r.Context(), payload, time.Now())
	if err != nil {
		h.fail(w, r, err, "failed to create candidate")
		return
	}
	api.Created(w, candidate, middleware.GetRequestID(r.Context()))
}

// handleIntake accepts the flat multi-step form shape and groups it into the
// nested document before creating.
func (h *Handler) handleIntake(w http.ResponseWriter, r *http.Request) {
	var payload pipeline.FormInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	now := time.Now()
	candidate, err := h.Service.Create(r.Context(), pipeline.FromForm(payload, now), now)
	if err != nil {
		h.fail(w, r, err, "failed to create candidate")
		return
	}
	api.Created(w, candidate, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload pipeline.Candidate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	candidate, err := h.Service.Update(r.Context(), chi.URLParam(r, "candidateID"), payload)
	if err != nil {
		h.fail(w, r, err, "failed to update candidate")
		return
	}
	api.Success(w, candidate, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "candidateID")); err != nil {
		h.fail(w, r, err, "failed to delete candidate")
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAdvance(w http.ResponseWriter, r *http.Request) {
	candidate, err := h.Service.AdvanceStage(r.Context(), chi.URLParam(r, "candidateID"))
	if err != nil {
		h.fail(w, r, err, "failed to advance candidate")
		return
	}
	api.Success(w, candidate, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	candidate, err := h.Service.Reject(r.Context(), chi.URLParam(r, "candidateID"), payload.Reason)
	if err != nil {
		h.fail(w, r, err, "failed to reject candidate")
		return
	}
	api.Success(w, candidate, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleHire(w http.ResponseWriter, r *http.Request) {
	candidate, err := h.Service.Hire(r.Context(), chi.URLParam(r, "candidateID"), time.Now())
	if err != nil {
		h.fail(w, r, err, "failed to hire candidate")
		return
	}
	api.Success(w, candidate, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	candidate, err := h.Service.Get(r.Context(), chi.URLParam(r, "candidateID"))
	if err != nil {
		h.fail(w, r, err, "failed to load candidate")
		return
	}

	data, err := pipeline.ProfilePDF(*candidate)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to render profile", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=candidate-%s.pdf", candidate.ID))
	_, _ = w.Write(data)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	requestID := middleware.GetRequestID(r.Context())
	var verr *pipeline.ValidationError
	switch {
	case errors.As(err, &verr):
		api.FailWithDetails(w, http.StatusBadRequest, "validation_error", "payload validation failed", map[string]any{"fields": verr.Issues}, requestID)
	case errors.Is(err, pipeline.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "candidate not found", requestID)
	case errors.Is(err, pipeline.ErrInvalidTransition):
		api.Fail(w, http.StatusConflict, "invalid_transition", "stage transition not allowed", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "internal_error", fallback, requestID)
	}
}
