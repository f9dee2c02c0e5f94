package interview

import (
	"context"
	"strings"
	"time"

	"talent/internal/domain/directory"
	"talent/internal/domain/pipeline"
	"talent/internal/platform/cache"
)

const statisticsCacheKey = "interviews:statistics"

// EmployeeDirectory is the slice of the directory the scheduler needs for
// availability lookups.
type EmployeeDirectory interface {
	ListEmployees(ctx context.Context) ([]directory.Employee, error)
}

type Service struct {
	store     StoreAPI
	directory EmployeeDirectory
	cache     *cache.Client
	cacheTTL  time.Duration
}

func NewService(store StoreAPI, dir EmployeeDirectory) *Service {
	return &Service{store: store, directory: dir}
}

// WithCache enables the statistics cache. A nil client leaves caching off.
func (s *Service) WithCache(client *cache.Client, ttl time.Duration) *Service {
	s.cache = client
	s.cacheTTL = ttl
	return s
}

// Schedule validates the full rule set before touching the store and
// reports every violated rule at once.
func (s *Service) Schedule(ctx context.Context, iv Interview, now time.Time) (*Interview, error) {
	if issues := validateSchedule(iv, now); len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}

	iv.Status = StatusScheduled
	if iv.Notes == nil {
		iv.Notes = []string{}
	}
	id, err := s.store.Create(ctx, iv)
	if err != nil {
		return nil, err
	}
	s.invalidateStatistics(ctx)
	return s.store.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, interviewID string) (*Interview, error) {
	return s.store.Get(ctx, interviewID)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Interview, error) {
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	return s.store.List(ctx, filter)
}

func (s *Service) Update(ctx context.Context, interviewID string, iv Interview) (*Interview, error) {
	existing, err := s.store.Get(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if Terminal(existing.Status) {
		return nil, ErrInvalidTransition
	}

	if err := s.store.Update(ctx, interviewID, iv); err != nil {
		return nil, err
	}
	s.invalidateStatistics(ctx)
	return s.store.Get(ctx, interviewID)
}

// Reschedule moves the interview to a new window and stamps the
// rescheduled status. Completed and cancelled interviews stay put.
func (s *Service) Reschedule(ctx context.Context, interviewID string, sched Scheduling) (*Interview, error) {
	var issues []FieldError
	if strings.TrimSpace(sched.Date) == "" {
		issues = append(issues, FieldError{Field: "scheduling.date", Reason: "is required"})
	} else if _, err := time.Parse("2006-01-02", sched.Date); err != nil {
		issues = append(issues, FieldError{Field: "scheduling.date", Reason: "must be a valid date in YYYY-MM-DD format"})
	}
	if strings.TrimSpace(sched.Time) == "" {
		issues = append(issues, FieldError{Field: "scheduling.time", Reason: "is required"})
	} else if _, err := time.Parse("15:04", sched.Time); err != nil {
		issues = append(issues, FieldError{Field: "scheduling.time", Reason: "must be a valid time in HH:MM format"})
	}
	if sched.Duration != 0 && !ValidDuration(sched.Duration) {
		issues = append(issues, FieldError{Field: "scheduling.duration", Reason: "must be one of 30, 45, 60, 90 or 120 minutes"})
	}
	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}

	existing, err := s.store.Get(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(existing.Status, StatusRescheduled) {
		return nil, ErrInvalidTransition
	}

	next := existing.Scheduling
	next.Date = sched.Date
	next.Time = sched.Time
	if sched.Duration != 0 {
		next.Duration = sched.Duration
	}
	if sched.Location != "" {
		next.Location = sched.Location
	}
	if sched.Timezone != "" {
		next.Timezone = sched.Timezone
	}

	if err := s.store.SetSchedule(ctx, interviewID, next, StatusRescheduled); err != nil {
		return nil, err
	}
	s.invalidateStatistics(ctx)
	return s.store.Get(ctx, interviewID)
}

// Cancel requires a non-empty reason.
func (s *Service) Cancel(ctx context.Context, interviewID, reason string) (*Interview, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, &ValidationError{Issues: []FieldError{{Field: "reason", Reason: "is required"}}}
	}

	existing, err := s.store.Get(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(existing.Status, StatusCancelled) {
		return nil, ErrInvalidTransition
	}

	if err := s.store.SetStatus(ctx, interviewID, StatusCancelled, reason); err != nil {
		return nil, err
	}
	s.invalidateStatistics(ctx)
	return s.store.Get(ctx, interviewID)
}

// AddFeedback stores the evaluation; the interview's status becomes
// completed as an observable side effect.
func (s *Service) AddFeedback(ctx context.Context, interviewID string, feedback Feedback, now time.Time) (*Interview, error) {
	var issues []FieldError
	if feedback.OverallRating < 1 || feedback.OverallRating > 5 {
		issues = append(issues, FieldError{Field: "overallRating", Reason: "must be between 1 and 5"})
	}
	switch feedback.Decision {
	case DecisionProceed, DecisionHire, DecisionReject, DecisionWaitlist:
	default:
		issues = append(issues, FieldError{Field: "decision", Reason: "must be one of proceed, hire, reject or waitlist"})
	}
	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}

	existing, err := s.store.Get(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(existing.Status, StatusCompleted) {
		return nil, ErrInvalidTransition
	}

	feedback.SubmittedAt = now
	if err := s.store.SetFeedback(ctx, interviewID, feedback); err != nil {
		return nil, err
	}
	s.invalidateStatistics(ctx)
	return s.store.Get(ctx, interviewID)
}

// AvailableInterviewers returns the employees with no interview window
// overlapping the requested slot. Errors propagate so the caller can decide
// whether to fall back to the full roster.
func (s *Service) AvailableInterviewers(ctx context.Context, date, timeOfDay string, duration int) ([]directory.Employee, error) {
	start, err := CombineDateTime(date, timeOfDay)
	if err != nil {
		return nil, &ValidationError{Issues: []FieldError{{Field: "date", Reason: "must be a valid date and time"}}}
	}
	if duration <= 0 {
		duration = 60
	}

	employees, err := s.directory.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}

	booked, err := s.store.ListOnDate(ctx, date)
	if err != nil {
		return nil, err
	}

	busy := make(map[string]bool)
	for _, iv := range booked {
		if Terminal(iv.Status) || iv.Status == StatusNoShow {
			continue
		}
		ivStart, err := CombineDateTime(iv.Scheduling.Date, iv.Scheduling.Time)
		if err != nil {
			continue
		}
		if Overlaps(start, time.Duration(duration)*time.Minute, ivStart, time.Duration(iv.Scheduling.Duration)*time.Minute) {
			busy[iv.InterviewerID] = true
		}
	}

	available := make([]directory.Employee, 0, len(employees))
	for _, emp := range employees {
		if !busy[emp.ID] {
			available = append(available, emp)
		}
	}
	return available, nil
}

// Statistics aggregates pipeline counts, served from the cache when one is
// configured.
func (s *Service) Statistics(ctx context.Context, now time.Time) (Statistics, error) {
	var stats Statistics
	if hit, err := s.cache.GetJSON(ctx, statisticsCacheKey, &stats); err == nil && hit {
		return normalizeStatistics(stats), nil
	}

	stats, err := s.store.Statistics(ctx, now)
	if err != nil {
		return Statistics{}, err
	}
	stats = normalizeStatistics(stats)

	if s.cache != nil && s.cacheTTL > 0 {
		if err := s.cache.SetJSON(ctx, statisticsCacheKey, stats, s.cacheTTL); err != nil {
			return stats, nil
		}
	}
	return stats, nil
}

func (s *Service) invalidateStatistics(ctx context.Context) {
	_ = s.cache.Delete(ctx, statisticsCacheKey)
}

func normalizeStatistics(stats Statistics) Statistics {
	if stats.ByStage == nil {
		stats.ByStage = map[pipeline.Stage]int{}
	}
	if stats.ByStatus == nil {
		stats.ByStatus = map[Status]int{}
	}
	return stats
}

func validateSchedule(iv Interview, now time.Time) []FieldError {
	var issues []FieldError
	require := func(field, value string) bool {
		if strings.TrimSpace(value) == "" {
			issues = append(issues, FieldError{Field: field, Reason: "is required"})
			return false
		}
		return true
	}

	require("candidate", iv.CandidateID)
	require("interviewer", iv.InterviewerID)
	if require("interviewDetails.type", string(iv.Details.Type)) && !ValidType(iv.Details.Type) {
		issues = append(issues, FieldError{Field: "interviewDetails.type", Reason: "must be one of in_person, video_call or phone_call"})
	}
	if require("interviewDetails.stage", string(iv.Details.Stage)) && !pipeline.IsInterviewStage(iv.Details.Stage) {
		issues = append(issues, FieldError{Field: "interviewDetails.stage", Reason: "must be an interview round stage"})
	}
	require("interviewDetails.position", iv.Details.Position)
	require("scheduling.location", iv.Scheduling.Location)

	if require("scheduling.date", iv.Scheduling.Date) {
		if _, err := time.Parse("2006-01-02", iv.Scheduling.Date); err != nil {
			issues = append(issues, FieldError{Field: "scheduling.date", Reason: "must be a valid date in YYYY-MM-DD format"})
		} else if iv.Scheduling.Date < now.Format("2006-01-02") {
			// Date-only comparison; the time of day is ignored.
			issues = append(issues, FieldError{Field: "scheduling.date", Reason: "cannot be in the past"})
		}
	}
	if require("scheduling.time", iv.Scheduling.Time) {
		if _, err := time.Parse("15:04", iv.Scheduling.Time); err != nil {
			issues = append(issues, FieldError{Field: "scheduling.time", Reason: "must be a valid time in HH:MM format"})
		}
	}

	if iv.Scheduling.Duration == 0 {
		issues = append(issues, FieldError{Field: "scheduling.duration", Reason: "is required"})
	} else if !ValidDuration(iv.Scheduling.Duration) {
		issues = append(issues, FieldError{Field: "scheduling.duration", Reason: "must be one of 30, 45, 60, 90 or 120 minutes"})
	}

	return issues
}
