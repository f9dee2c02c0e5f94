package pipeline

import (
	"context"
	"time"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Candidate, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	return s.store.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, candidateID string) (*Candidate, error) {
	return s.store.Get(ctx, candidateID)
}

// Create validates the document, applies the new-candidate defaults and
// persists it. Validation failures carry every violated field.
func (s *Service) Create(ctx context.Context, candidate Candidate, now time.Time) (*Candidate, error) {
	if candidate.ApplicationInfo.AppliedDate == "" {
		candidate.ApplicationInfo.AppliedDate = now.Format("2006-01-02")
	}
	if issues := Validate(candidate); len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}
	if candidate.InterviewStage == "" {
		candidate.InterviewStage = StageApplied
	}
	if candidate.Status == "" {
		candidate.Status = StatusActive
	}

	id, err := s.store.Create(ctx, candidate)
	if err != nil {
		return nil, err
	}
	return s.store.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, candidateID string, candidate Candidate) (*Candidate, error) {
	if issues := Validate(candidate); len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}
	if err := s.store.Update(ctx, candidateID, candidate); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, candidateID)
}

func (s *Service) Delete(ctx context.Context, candidateID string) error {
	return s.store.Delete(ctx, candidateID)
}

// AdvanceStage moves the candidate exactly one step along the fixed stage
// order. The store write is guarded on the stage the caller saw, so a
// concurrent advance loses with ErrInvalidTransition instead of skipping a
// stage.
func (s *Service) AdvanceStage(ctx context.Context, candidateID string) (*Candidate, error) {
	candidate, err := s.store.Get(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	next, err := NextStage(candidate.InterviewStage)
	if err != nil {
		return nil, err
	}

	moved, err := s.store.AdvanceStage(ctx, candidateID, candidate.InterviewStage, next)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, ErrInvalidTransition
	}
	return s.store.Get(ctx, candidateID)
}

// Reject moves the candidate to the terminal rejected state. Allowed from
// any state that is not already terminal.
func (s *Service) Reject(ctx context.Context, candidateID, reason string) (*Candidate, error) {
	candidate, err := s.store.Get(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if candidate.Status == StatusRejected || candidate.Status == StatusHired {
		return nil, ErrInvalidTransition
	}

	if err := s.store.SetRejected(ctx, candidateID, reason); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, candidateID)
}

// Hire stamps the hired status and timestamp. Stage preconditions are the
// caller's responsibility; the service performs the write as requested.
func (s *Service) Hire(ctx context.Context, candidateID string, now time.Time) (*Candidate, error) {
	if err := s.store.SetHired(ctx, candidateID, now); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, candidateID)
}
