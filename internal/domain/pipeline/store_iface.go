package pipeline

import (
	"context"
	"time"
)

type StoreAPI interface {
	List(ctx context.Context, filter ListFilter) ([]Candidate, int, error)
	Get(ctx context.Context, candidateID string) (*Candidate, error)
	Create(ctx context.Context, candidate Candidate) (string, error)
	Update(ctx context.Context, candidateID string, candidate Candidate) error
	Delete(ctx context.Context, candidateID string) error
	// AdvanceStage moves the stage forward only when the row is still at
	// from; returns false when the precondition no longer holds.
	AdvanceStage(ctx context.Context, candidateID string, from, to Stage) (bool, error)
	SetRejected(ctx context.Context, candidateID, reason string) error
	SetHired(ctx context.Context, candidateID string, hiredAt time.Time) error
}
