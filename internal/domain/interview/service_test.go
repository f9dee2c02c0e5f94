package interview

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"talent/internal/domain/directory"
	"talent/internal/domain/pipeline"
)

type fakeStore struct {
	interviews map[string]Interview
	nextID     int
	statsCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{interviews: map[string]Interview{}}
}

func (f *fakeStore) Create(ctx context.Context, iv Interview) (string, error) {
	f.nextID++
	id := fmt.Sprintf("iv-%d", f.nextID)
	iv.ID = id
	f.interviews[id] = iv
	return id, nil
}

func (f *fakeStore) Get(ctx context.Context, interviewID string) (*Interview, error) {
	iv, ok := f.interviews[interviewID]
	if !ok {
		return nil, ErrNotFound
	}
	return &iv, nil
}

func (f *fakeStore) List(ctx context.Context, filter ListFilter) ([]Interview, error) {
	out := make([]Interview, 0, len(f.interviews))
	for _, iv := range f.interviews {
		out = append(out, iv)
	}
	return out, nil
}

func (f *fakeStore) Update(ctx context.Context, interviewID string, iv Interview) error {
	existing, ok := f.interviews[interviewID]
	if !ok {
		return ErrNotFound
	}
	iv.ID = interviewID
	iv.Status = existing.Status
	f.interviews[interviewID] = iv
	return nil
}

func (f *fakeStore) SetStatus(ctx context.Context, interviewID string, status Status, cancelReason string) error {
	iv, ok := f.interviews[interviewID]
	if !ok {
		return ErrNotFound
	}
	iv.Status = status
	iv.CancelReason = cancelReason
	f.interviews[interviewID] = iv
	return nil
}

func (f *fakeStore) SetSchedule(ctx context.Context, interviewID string, sched Scheduling, status Status) error {
	iv, ok := f.interviews[interviewID]
	if !ok {
		return ErrNotFound
	}
	iv.Scheduling = sched
	iv.Status = status
	f.interviews[interviewID] = iv
	return nil
}

func (f *fakeStore) SetFeedback(ctx context.Context, interviewID string, feedback Feedback) error {
	iv, ok := f.interviews[interviewID]
	if !ok {
		return ErrNotFound
	}
	iv.Feedback = &feedback
	iv.Status = StatusCompleted
	f.interviews[interviewID] = iv
	return nil
}

func (f *fakeStore) ListOnDate(ctx context.Context, date string) ([]Interview, error) {
	var out []Interview
	for _, iv := range f.interviews {
		if iv.Scheduling.Date == date {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (f *fakeStore) Statistics(ctx context.Context, now time.Time) (Statistics, error) {
	f.statsCalls++
	stats := Statistics{
		ByStage:  map[pipeline.Stage]int{},
		ByStatus: map[Status]int{},
	}
	for _, iv := range f.interviews {
		stats.ByStage[iv.Details.Stage]++
		stats.ByStatus[iv.Status]++
		if iv.Status == StatusScheduled && IsUpcoming(iv.Scheduling.Date, iv.Scheduling.Time, now) {
			stats.UpcomingInterviews++
		}
	}
	return stats, nil
}

type fakeDirectory struct {
	employees []directory.Employee
	err       error
}

func (f *fakeDirectory) ListEmployees(ctx context.Context) ([]directory.Employee, error) {
	return f.employees, f.err
}

var testNow = time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

func validInterview() Interview {
	return Interview{
		CandidateID:   "cand-1",
		InterviewerID: "emp-1",
		Details: Details{
			Type:     TypeVideoCall,
			Stage:    pipeline.StageTechnical,
			Position: "Backend Engineer",
		},
		Scheduling: Scheduling{
			Date:     "2026-09-02",
			Time:     "10:00",
			Duration: 60,
			Location: "Meet room 2",
			Timezone: "UTC",
		},
	}
}

func newTestService(store *fakeStore, dir *fakeDirectory) *Service {
	if dir == nil {
		dir = &fakeDirectory{}
	}
	return NewService(store, dir)
}

func TestScheduleStampsScheduled(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, nil)

	iv, err := svc.Schedule(context.Background(), validInterview(), testNow)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if iv.Status != StatusScheduled {
		t.Errorf("status = %q, want scheduled", iv.Status)
	}
	if iv.Notes == nil {
		t.Error("notes should be an empty list, not nil")
	}
}

func TestScheduleCollectsEveryViolation(t *testing.T) {
	svc := newTestService(newFakeStore(), nil)

	_, err := svc.Schedule(context.Background(), Interview{}, testNow)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	// candidate, interviewer, type, stage, position, location, date, time,
	// duration.
	if len(verr.Issues) != 9 {
		t.Fatalf("expected 9 issues, got %d: %+v", len(verr.Issues), verr.Issues)
	}
}

func TestScheduleRejectsPastDate(t *testing.T) {
	svc := newTestService(newFakeStore(), nil)

	iv := validInterview()
	iv.Scheduling.Date = "2026-08-31"
	_, err := svc.Schedule(context.Background(), iv, testNow)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Issues) != 1 || verr.Issues[0].Reason != "cannot be in the past" {
		t.Fatalf("issues = %+v", verr.Issues)
	}

	// Same-day booking stays allowed even late in the day.
	iv.Scheduling.Date = "2026-09-01"
	iv.Scheduling.Time = "07:00"
	if _, err := svc.Schedule(context.Background(), iv, testNow); err != nil {
		t.Fatalf("same-day schedule: %v", err)
	}
}

func TestScheduleRejectsNonInterviewStage(t *testing.T) {
	svc := newTestService(newFakeStore(), nil)

	iv := validInterview()
	iv.Details.Stage = pipeline.StageApplied
	_, err := svc.Schedule(context.Background(), iv, testNow)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Issues[0].Field != "interviewDetails.stage" {
		t.Fatalf("issues = %+v", verr.Issues)
	}
}

func TestScheduleRejectsOddDuration(t *testing.T) {
	svc := newTestService(newFakeStore(), nil)

	iv := validInterview()
	iv.Scheduling.Duration = 50
	_, err := svc.Schedule(context.Background(), iv, testNow)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Issues[0].Field != "scheduling.duration" {
		t.Fatalf("issues = %+v", verr.Issues)
	}
}

func TestRescheduleMovesWindow(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, nil)
	created, err := svc.Schedule(context.Background(), validInterview(), testNow)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}

	moved, err := svc.Reschedule(context.Background(), created.ID, Scheduling{Date: "2026-09-05", Time: "15:00"})
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if moved.Status != StatusRescheduled {
		t.Errorf("status = %q, want rescheduled", moved.Status)
	}
	if moved.Scheduling.Date != "2026-09-05" || moved.Scheduling.Time != "15:00" {
		t.Errorf("scheduling = %+v", moved.Scheduling)
	}
	// Fields left blank keep the previous window's values.
	if moved.Scheduling.Duration != 60 || moved.Scheduling.Location != "Meet room 2" {
		t.Errorf("scheduling = %+v", moved.Scheduling)
	}
}

func TestRescheduleTerminalInterview(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, nil)
	created, _ := svc.Schedule(context.Background(), validInterview(), testNow)
	if _, err := svc.Cancel(context.Background(), created.ID, "candidate withdrew"); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	_, err := svc.Reschedule(context.Background(), created.ID, Scheduling{Date: "2026-09-05", Time: "15:00"})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestCancelRequiresReason(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, nil)
	created, _ := svc.Schedule(context.Background(), validInterview(), testNow)

	_, err := svc.Cancel(context.Background(), created.ID, "   ")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Issues[0].Field != "reason" {
		t.Fatalf("issues = %+v", verr.Issues)
	}

	cancelled, err := svc.Cancel(context.Background(), created.ID, "candidate withdrew")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != StatusCancelled || cancelled.CancelReason != "candidate withdrew" {
		t.Fatalf("cancelled = %+v", cancelled)
	}
}

func TestAddFeedbackCompletesInterview(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, nil)
	created, _ := svc.Schedule(context.Background(), validInterview(), testNow)

	fb := Feedback{
		OverallRating: 4,
		Decision:      DecisionProceed,
		Strengths:     "solid fundamentals",
	}
	done, err := svc.AddFeedback(context.Background(), created.ID, fb, testNow)
	if err != nil {
		t.Fatalf("feedback: %v", err)
	}
	if done.Status != StatusCompleted {
		t.Errorf("status = %q, want completed", done.Status)
	}
	if done.Feedback == nil || done.Feedback.Decision != DecisionProceed {
		t.Fatalf("feedback = %+v", done.Feedback)
	}
	if !done.Feedback.SubmittedAt.Equal(testNow) {
		t.Errorf("submittedAt = %v", done.Feedback.SubmittedAt)
	}

	// A completed interview takes no further feedback.
	if _, err := svc.AddFeedback(context.Background(), created.ID, fb, testNow); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("second feedback: err = %v, want ErrInvalidTransition", err)
	}
}

func TestAddFeedbackValidatesRatingAndDecision(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, nil)
	created, _ := svc.Schedule(context.Background(), validInterview(), testNow)

	_, err := svc.AddFeedback(context.Background(), created.ID, Feedback{OverallRating: 6, Decision: "maybe"}, testNow)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Issues) != 2 {
		t.Fatalf("issues = %+v", verr.Issues)
	}
}

func TestAvailableInterviewersExcludesOverlaps(t *testing.T) {
	store := newFakeStore()
	dir := &fakeDirectory{employees: []directory.Employee{
		{ID: "emp-1", FirstName: "Maya"},
		{ID: "emp-2", FirstName: "Tomás"},
		{ID: "emp-3", FirstName: "Ingrid"},
	}}
	svc := newTestService(store, dir)

	// emp-1 is busy 10:00-11:00; emp-2's interview was cancelled so it does
	// not block.
	busy := validInterview()
	if _, err := svc.Schedule(context.Background(), busy, testNow); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	cancelled := validInterview()
	cancelled.InterviewerID = "emp-2"
	created, _ := svc.Schedule(context.Background(), cancelled, testNow)
	if _, err := svc.Cancel(context.Background(), created.ID, "conflict"); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	available, err := svc.AvailableInterviewers(context.Background(), "2026-09-02", "10:30", 60)
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	ids := map[string]bool{}
	for _, emp := range available {
		ids[emp.ID] = true
	}
	if ids["emp-1"] {
		t.Error("emp-1 has an overlapping interview and should be excluded")
	}
	if !ids["emp-2"] || !ids["emp-3"] {
		t.Errorf("available = %v", ids)
	}

	// A non-overlapping slot frees everyone.
	available, err = svc.AvailableInterviewers(context.Background(), "2026-09-02", "11:00", 60)
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if len(available) != 3 {
		t.Errorf("expected full roster, got %d", len(available))
	}
}

func TestAvailableInterviewersBadInput(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeDirectory{})
	_, err := svc.AvailableInterviewers(context.Background(), "tomorrow", "10:00", 60)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestAvailableInterviewersPropagatesDirectoryError(t *testing.T) {
	dirErr := errors.New("directory down")
	svc := newTestService(newFakeStore(), &fakeDirectory{err: dirErr})
	if _, err := svc.AvailableInterviewers(context.Background(), "2026-09-02", "10:00", 60); !errors.Is(err, dirErr) {
		t.Fatalf("err = %v, want directory error", err)
	}
}

func TestStatisticsMapsNeverNil(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, nil)

	stats, err := svc.Statistics(context.Background(), testNow)
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if stats.ByStage == nil || stats.ByStatus == nil {
		t.Fatal("statistics maps must be non-nil")
	}

	if _, err := svc.Schedule(context.Background(), validInterview(), testNow); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	stats, err = svc.Statistics(context.Background(), testNow)
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if stats.ByStage[pipeline.StageTechnical] != 1 || stats.ByStatus[StatusScheduled] != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.UpcomingInterviews != 1 {
		t.Errorf("upcoming = %d, want 1", stats.UpcomingInterviews)
	}
}

func TestUpdateTerminalInterview(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, nil)
	created, _ := svc.Schedule(context.Background(), validInterview(), testNow)
	if _, err := svc.Cancel(context.Background(), created.ID, "done"); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if _, err := svc.Update(context.Background(), created.ID, validInterview()); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}
