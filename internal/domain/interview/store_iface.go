package interview

import (
	"context"
	"time"
)

type StoreAPI interface {
	Create(ctx context.Context, iv Interview) (string, error)
	Get(ctx context.Context, interviewID string) (*Interview, error)
	List(ctx context.Context, filter ListFilter) ([]Interview, error)
	Update(ctx context.Context, interviewID string, iv Interview) error
	SetStatus(ctx context.Context, interviewID string, status Status, cancelReason string) error
	SetSchedule(ctx context.Context, interviewID string, sched Scheduling, status Status) error
	// SetFeedback stores the evaluation and completes the interview.
	SetFeedback(ctx context.Context, interviewID string, feedback Feedback) error
	ListOnDate(ctx context.Context, date string) ([]Interview, error)
	Statistics(ctx context.Context, now time.Time) (Statistics, error)
}
