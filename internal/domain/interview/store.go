package interview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"talent/internal/domain/pipeline"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const interviewColumns = `
    id,
    candidate_id::text, interviewer_id::text,
    interview_type, stage,
    COALESCE(position, ''), COALESCE(department_id, ''),
    to_char(scheduled_date, 'YYYY-MM-DD'),
    to_char(scheduled_time, 'HH24:MI'),
    duration_minutes,
    COALESCE(location, ''), COALESCE(timezone, ''),
    status, feedback_json, notes_json,
    COALESCE(cancel_reason, ''),
    created_at, updated_at`

func (s *Store) Create(ctx context.Context, iv Interview) (string, error) {
	notes, err := json.Marshal(iv.Notes)
	if err != nil {
		return "", err
	}

	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO interviews (
      candidate_id, interviewer_id, interview_type, stage, position, department_id,
      scheduled_date, scheduled_time, duration_minutes, location, timezone,
      status, notes_json
    )
    VALUES ($1,$2,$3,$4,$5,$6,$7::date,$8::time,$9,$10,$11,$12,$13)
    RETURNING id
  `,
		iv.CandidateID, iv.InterviewerID, string(iv.Details.Type), string(iv.Details.Stage),
		iv.Details.Position, iv.Details.Department,
		iv.Scheduling.Date, iv.Scheduling.Time, iv.Scheduling.Duration,
		iv.Scheduling.Location, iv.Scheduling.Timezone,
		string(iv.Status), notes,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Get(ctx context.Context, interviewID string) (*Interview, error) {
	row := s.DB.QueryRow(ctx, fmt.Sprintf(`
    SELECT %s
    FROM interviews
    WHERE id = $1
  `, interviewColumns), interviewID)

	iv, err := scanInterview(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return iv, nil
}

func (s *Store) List(ctx context.Context, filter ListFilter) ([]Interview, error) {
	where := "WHERE 1=1"
	args := []any{}

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Stage != "" {
		args = append(args, string(filter.Stage))
		where += fmt.Sprintf(" AND stage = $%d", len(args))
	}
	if filter.CandidateID != "" {
		args = append(args, filter.CandidateID)
		where += fmt.Sprintf(" AND candidate_id = $%d", len(args))
	}
	if filter.InterviewerID != "" {
		args = append(args, filter.InterviewerID)
		where += fmt.Sprintf(" AND interviewer_id = $%d", len(args))
	}
	if filter.Upcoming {
		where += " AND scheduled_date + scheduled_time > now()"
	}

	args = append(args, filter.Limit)
	query := fmt.Sprintf(`
    SELECT %s
    FROM interviews
    %s
    ORDER BY scheduled_date, scheduled_time
    LIMIT $%d
  `, interviewColumns, where, len(args))

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Interview, 0)
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *iv)
	}
	return out, rows.Err()
}

func (s *Store) Update(ctx context.Context, interviewID string, iv Interview) error {
	notes, err := json.Marshal(iv.Notes)
	if err != nil {
		return err
	}

	cmd, err := s.DB.Exec(ctx, `
    UPDATE interviews
    SET interview_type = $1,
        stage = $2,
        position = $3,
        department_id = $4,
        scheduled_date = $5::date,
        scheduled_time = $6::time,
        duration_minutes = $7,
        location = $8,
        timezone = $9,
        notes_json = $10,
        updated_at = now()
    WHERE id = $11
  `,
		string(iv.Details.Type), string(iv.Details.Stage), iv.Details.Position, iv.Details.Department,
		iv.Scheduling.Date, iv.Scheduling.Time, iv.Scheduling.Duration,
		iv.Scheduling.Location, iv.Scheduling.Timezone, notes, interviewID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetStatus(ctx context.Context, interviewID string, status Status, cancelReason string) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE interviews
    SET status = $1, cancel_reason = $2, updated_at = now()
    WHERE id = $3
  `, string(status), cancelReason, interviewID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetSchedule(ctx context.Context, interviewID string, sched Scheduling, status Status) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE interviews
    SET scheduled_date = $1::date,
        scheduled_time = $2::time,
        duration_minutes = $3,
        location = $4,
        timezone = $5,
        status = $6,
        updated_at = now()
    WHERE id = $7
  `, sched.Date, sched.Time, sched.Duration, sched.Location, sched.Timezone, string(status), interviewID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetFeedback(ctx context.Context, interviewID string, feedback Feedback) error {
	raw, err := json.Marshal(feedback)
	if err != nil {
		return err
	}

	cmd, err := s.DB.Exec(ctx, `
    UPDATE interviews
    SET feedback_json = $1, status = $2, updated_at = now()
    WHERE id = $3
  `, raw, string(StatusCompleted), interviewID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListOnDate(ctx context.Context, date string) ([]Interview, error) {
	rows, err := s.DB.Query(ctx, fmt.Sprintf(`
    SELECT %s
    FROM interviews
    WHERE scheduled_date = $1::date
  `, interviewColumns), date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Interview, 0)
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *iv)
	}
	return out, rows.Err()
}

func (s *Store) Statistics(ctx context.Context, now time.Time) (Statistics, error) {
	stats := Statistics{
		ByStage:  map[pipeline.Stage]int{},
		ByStatus: map[Status]int{},
	}

	rows, err := s.DB.Query(ctx, "SELECT stage, COUNT(1) FROM interviews GROUP BY stage")
	if err != nil {
		return stats, err
	}
	for rows.Next() {
		var stage string
		var count int
		if err := rows.Scan(&stage, &count); err != nil {
			rows.Close()
			return stats, err
		}
		stats.ByStage[pipeline.Stage(stage)] = count
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return stats, err
	}

	rows, err = s.DB.Query(ctx, "SELECT status, COUNT(1) FROM interviews GROUP BY status")
	if err != nil {
		return stats, err
	}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			rows.Close()
			return stats, err
		}
		stats.ByStatus[Status(status)] = count
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return stats, err
	}

	err = s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM interviews
    WHERE status = $1 AND scheduled_date + scheduled_time > $2
  `, string(StatusScheduled), now).Scan(&stats.UpcomingInterviews)
	if err != nil {
		return stats, err
	}
	return stats, nil
}

func scanInterview(row pgx.Row) (*Interview, error) {
	var iv Interview
	var ivType, stage, status string
	var feedback, notes []byte
	if err := row.Scan(
		&iv.ID,
		&iv.CandidateID, &iv.InterviewerID,
		&ivType, &stage,
		&iv.Details.Position, &iv.Details.Department,
		&iv.Scheduling.Date, &iv.Scheduling.Time, &iv.Scheduling.Duration,
		&iv.Scheduling.Location, &iv.Scheduling.Timezone,
		&status, &feedback, &notes,
		&iv.CancelReason,
		&iv.CreatedAt, &iv.UpdatedAt,
	); err != nil {
		return nil, err
	}

	iv.Details.Type = Type(ivType)
	iv.Details.Stage = pipeline.Stage(stage)
	iv.Status = Status(status)
	if len(feedback) > 0 {
		var fb Feedback
		if err := json.Unmarshal(feedback, &fb); err != nil {
			return nil, err
		}
		iv.Feedback = &fb
	}
	if len(notes) > 0 {
		if err := json.Unmarshal(notes, &iv.Notes); err != nil {
			return nil, err
		}
	}
	if iv.Notes == nil {
		iv.Notes = []string{}
	}
	return &iv, nil
}
