package interviewshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"talent/internal/domain/directory"
	"talent/internal/domain/interview"
	"talent/internal/domain/pipeline"
	"talent/internal/transport/http/api"
	"talent/internal/transport/http/middleware"
)

type Handler struct {
	Service   *interview.Service
	Directory *directory.Store
}

func NewHandler(service *interview.Service, dir *directory.Store) *Handler {
	return &Handler{Service: service, Directory: dir}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/interviews/interviews", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.With(middleware.RequireAuth).Post("/", h.handleSchedule)
		r.Get("/statistics", h.handleStatistics)
		r.Get("/available-interviewers", h.handleAvailableInterviewers)
		r.Get("/time-slots", h.handleTimeSlots)
		r.Get("/{interviewID}", h.handleGet)
		r.With(middleware.RequireAuth).Put("/{interviewID}", h.handleUpdate)
		r.With(middleware.RequireAuth).Put("/{interviewID}/reschedule", h.handleReschedule)
		r.With(middleware.RequireAuth).Put("/{interviewID}/cancel", h.handleCancel)
		r.With(middleware.RequireAuth).Post("/{interviewID}/feedback", h.handleFeedback)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit := 50
	if raw := query.Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	filter := interview.ListFilter{
		Status:        interview.Status(query.Get("status")),
		Stage:         pipeline.Stage(query.Get("stage")),
		CandidateID:   query.Get("candidate"),
		InterviewerID: query.Get("interviewer"),
		Upcoming:      query.Get("upcoming") == "true",
		Limit:         limit,
	}

	interviews, err := h.Service.List(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "interviews_list_failed", "failed to list interviews", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"items": interviews}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	iv, err := h.Service.Get(r.Context(), chi.URLParam(r, "interviewID"))
	if err != nil {
		h.fail(w, r, err, "failed to load interview")
		return
	}
	api.Success(w, iv, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	var payload interview.Interview
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	iv, err := h.Service.Schedule(r.Context(), payload, time.Now())
	if err != nil {
		h.fail(w, r, err, "failed to schedule interview")
		return
	}
	api.Created(w, iv, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload interview.Interview
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	iv, err := h.Service.Update(r.Context(), chi.URLParam(r, "interviewID"), payload)
	if err != nil {
		h.fail(w, r, err, "failed to update interview")
		return
	}
	api.Success(w, iv, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleReschedule(w http.ResponseWriter, r *http.Request) {
	var payload interview.Scheduling
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	iv, err := h.Service.Reschedule(r.Context(), chi.URLParam(r, "interviewID"), payload)
	if err != nil {
		h.fail(w, r, err, "failed to reschedule interview")
		return
	}
	api.Success(w, iv, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	iv, err := h.Service.Cancel(r.Context(), chi.URLParam(r, "interviewID"), payload.Reason)
	if err != nil {
		h.fail(w, r, err, "failed to cancel interview")
		return
	}
	api.Success(w, iv, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var payload interview.Feedback
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	iv, err := h.Service.AddFeedback(r.Context(), chi.URLParam(r, "interviewID"), payload, time.Now())
	if err != nil {
		h.fail(w, r, err, "failed to store feedback")
		return
	}
	api.Success(w, iv, middleware.GetRequestID(r.Context()))
}

// handleAvailableInterviewers keeps the scheduling flow usable when the
// availability computation fails: the error is logged, not swallowed, and
// the full roster is returned flagged as degraded.
func (h *Handler) handleAvailableInterviewers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	duration := 60
	if raw := query.Get("duration"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			duration = v
		}
	}

	available, err := h.Service.AvailableInterviewers(r.Context(), query.Get("date"), query.Get("time"), duration)
	if err != nil {
		var verr *interview.ValidationError
		if errors.As(err, &verr) {
			api.FailWithDetails(w, http.StatusBadRequest, "validation_error", "invalid availability query", map[string]any{"fields": verr.Issues}, middleware.GetRequestID(r.Context()))
			return
		}

		slog.Warn("availability lookup failed, falling back to full roster", "err", err)
		employees, dirErr := h.Directory.ListEmployees(r.Context())
		if dirErr != nil {
			api.Fail(w, http.StatusInternalServerError, "availability_failed", "failed to look up interviewers", middleware.GetRequestID(r.Context()))
			return
		}
		api.Success(w, map[string]any{"interviewers": employees, "degraded": true}, middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{"interviewers": available, "degraded": false}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Statistics(r.Context(), time.Now())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "statistics_failed", "failed to aggregate statistics", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, stats, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleTimeSlots(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	start, end, interval := 9, 17, 30
	if raw := query.Get("start"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			start = v
		}
	}
	if raw := query.Get("end"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			end = v
		}
	}
	if raw := query.Get("interval"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			interval = v
		}
	}
	api.Success(w, map[string]any{"slots": interview.GenerateTimeSlots(start, end, interval)}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	requestID := middleware.GetRequestID(r.Context())
	var verr *interview.ValidationError
	switch {
	case errors.As(err, &verr):
		api.FailWithDetails(w, http.StatusBadRequest, "validation_error", "payload validation failed", map[string]any{"fields": verr.Issues}, requestID)
	case errors.Is(err, interview.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "interview not found", requestID)
	case errors.Is(err, interview.ErrInvalidTransition):
		api.Fail(w, http.StatusConflict, "invalid_transition", "interview status transition not allowed", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "internal_error", fallback, requestID)
	}
}
