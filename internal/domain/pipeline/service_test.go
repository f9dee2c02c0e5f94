package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

// fakeStore is an in-memory StoreAPI with the same guarded-advance semantics
// as the Postgres store.
type fakeStore struct {
	candidates map[string]Candidate
	nextID     int
}

func newFakeStore() *fakeStore {
	return &fakeStore{candidates: map[string]Candidate{}}
}

func (f *fakeStore) List(ctx context.Context, filter ListFilter) ([]Candidate, int, error) {
	out := make([]Candidate, 0, len(f.candidates))
	for _, c := range f.candidates {
		out = append(out, c)
	}
	return out, len(out), nil
}

func (f *fakeStore) Get(ctx context.Context, candidateID string) (*Candidate, error) {
	c, ok := f.candidates[candidateID]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (f *fakeStore) Create(ctx context.Context, candidate Candidate) (string, error) {
	f.nextID++
	id := fmt.Sprintf("cand-%d", f.nextID)
	candidate.ID = id
	f.candidates[id] = candidate
	return id, nil
}

func (f *fakeStore) Update(ctx context.Context, candidateID string, candidate Candidate) error {
	existing, ok := f.candidates[candidateID]
	if !ok {
		return ErrNotFound
	}
	candidate.ID = candidateID
	candidate.InterviewStage = existing.InterviewStage
	candidate.Status = existing.Status
	f.candidates[candidateID] = candidate
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, candidateID string) error {
	if _, ok := f.candidates[candidateID]; !ok {
		return ErrNotFound
	}
	delete(f.candidates, candidateID)
	return nil
}

func (f *fakeStore) AdvanceStage(ctx context.Context, candidateID string, from, to Stage) (bool, error) {
	c, ok := f.candidates[candidateID]
	if !ok || c.InterviewStage != from {
		return false, nil
	}
	c.InterviewStage = to
	f.candidates[candidateID] = c
	return true, nil
}

func (f *fakeStore) SetRejected(ctx context.Context, candidateID, reason string) error {
	c, ok := f.candidates[candidateID]
	if !ok {
		return ErrNotFound
	}
	c.Status = StatusRejected
	c.InterviewStage = StageRejected
	c.RejectionReason = reason
	f.candidates[candidateID] = c
	return nil
}

func (f *fakeStore) SetHired(ctx context.Context, candidateID string, hiredAt time.Time) error {
	c, ok := f.candidates[candidateID]
	if !ok {
		return ErrNotFound
	}
	c.Status = StatusHired
	c.InterviewStage = StageSelected
	c.HiredAt = &hiredAt
	f.candidates[candidateID] = c
	return nil
}

func seedCandidate(t *testing.T, svc *Service) *Candidate {
	t.Helper()
	created, err := svc.Create(context.Background(), validCandidate(), time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return created
}

func TestCreateAppliesDefaults(t *testing.T) {
	svc := NewService(newFakeStore())

	input := validCandidate()
	input.ApplicationInfo.AppliedDate = ""
	created, err := svc.Create(context.Background(), input, time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if created.ApplicationInfo.AppliedDate != "2026-08-20" {
		t.Errorf("appliedDate = %q", created.ApplicationInfo.AppliedDate)
	}
	if created.InterviewStage != StageApplied {
		t.Errorf("stage = %q, want applied", created.InterviewStage)
	}
	if created.Status != StatusActive {
		t.Errorf("status = %q, want active", created.Status)
	}
}

func TestCreateReportsEveryViolation(t *testing.T) {
	svc := NewService(newFakeStore())

	_, err := svc.Create(context.Background(), Candidate{}, time.Now())
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	// appliedDate is defaulted before validation, so it is never reported.
	if len(verr.Issues) != 5 {
		t.Fatalf("expected 5 issues, got %+v", verr.Issues)
	}
}

func TestAdvanceStageMovesOneStep(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	created := seedCandidate(t, svc)

	expect := []Stage{
		StageScreening, StageTechnical, StageHRRound,
		StagePortfolioReview, StageFinal, StageSelected,
	}
	for _, want := range expect {
		advanced, err := svc.AdvanceStage(context.Background(), created.ID)
		if err != nil {
			t.Fatalf("advance to %s: %v", want, err)
		}
		if advanced.InterviewStage != want {
			t.Fatalf("stage = %q, want %q", advanced.InterviewStage, want)
		}
	}

	if _, err := svc.AdvanceStage(context.Background(), created.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("advance past selected: err = %v, want ErrInvalidTransition", err)
	}
	final, _ := store.Get(context.Background(), created.ID)
	if final.InterviewStage != StageSelected {
		t.Errorf("terminal advance must not mutate, stage = %q", final.InterviewStage)
	}
}

func TestAdvanceStageLosesRace(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	created := seedCandidate(t, svc)

	// Another writer moves the row between the read and the guarded write.
	c := store.candidates[created.ID]
	readStage := c.InterviewStage
	if _, err := store.AdvanceStage(context.Background(), created.ID, readStage, StageScreening); err != nil {
		t.Fatalf("setup advance: %v", err)
	}

	moved, err := store.AdvanceStage(context.Background(), created.ID, readStage, StageScreening)
	if err != nil {
		t.Fatalf("guarded advance: %v", err)
	}
	if moved {
		t.Fatal("advance guarded on a stale stage must not move the row")
	}
}

func TestRejectFromAnyActiveStage(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	created := seedCandidate(t, svc)

	rejected, err := svc.Reject(context.Background(), created.ID, "position filled")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != StatusRejected || rejected.InterviewStage != StageRejected {
		t.Fatalf("rejected candidate = %+v", rejected)
	}
	if rejected.RejectionReason != "position filled" {
		t.Errorf("reason = %q", rejected.RejectionReason)
	}

	if _, err := svc.Reject(context.Background(), created.ID, "again"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("double reject: err = %v, want ErrInvalidTransition", err)
	}
}

func TestHireStampsStatusAndTimestamp(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	created := seedCandidate(t, svc)

	hiredAt := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	hired, err := svc.Hire(context.Background(), created.ID, hiredAt)
	if err != nil {
		t.Fatalf("hire: %v", err)
	}
	if hired.Status != StatusHired || hired.InterviewStage != StageSelected {
		t.Fatalf("hired candidate = %+v", hired)
	}
	if hired.HiredAt == nil || !hired.HiredAt.Equal(hiredAt) {
		t.Errorf("hiredAt = %v, want %v", hired.HiredAt, hiredAt)
	}

	if _, err := svc.Reject(context.Background(), created.ID, "oops"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("reject after hire: err = %v, want ErrInvalidTransition", err)
	}
}

func TestGetUnknownCandidate(t *testing.T) {
	svc := NewService(newFakeStore())
	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListDefaultsPagination(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	seedCandidate(t, svc)

	items, total, err := svc.List(context.Background(), ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("total = %d, items = %d", total, len(items))
	}
}
