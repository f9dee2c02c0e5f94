package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists candidates in Postgres. Fields the list view filters on are
// promoted to columns; the nested document sections live in JSONB.
type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const candidateColumns = `
    id,
    personal_json, application_json, qualifications_json, experience_json,
    skills_json, attachments_json, notes_json,
    total_experience, interview_stage, status,
    COALESCE(rejection_reason, ''),
    hired_at, created_at, updated_at`

func (s *Store) List(ctx context.Context, filter ListFilter) ([]Candidate, int, error) {
	where := "WHERE 1=1"
	args := []any{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where += fmt.Sprintf(` AND (first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d OR position ILIKE $%d)`, n, n, n, n)
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Stage != "" {
		args = append(args, string(filter.Stage))
		where += fmt.Sprintf(" AND interview_stage = $%d", len(args))
	}
	if filter.Position != "" {
		args = append(args, "%"+filter.Position+"%")
		where += fmt.Sprintf(" AND position ILIKE $%d", len(args))
	}

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM candidates "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`
    SELECT %s
    FROM candidates
    %s
    ORDER BY created_at DESC
    LIMIT $%d OFFSET $%d
  `, candidateColumns, where, len(args)-1, len(args))

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]Candidate, 0)
	for rows.Next() {
		candidate, err := scanCandidate(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *candidate)
	}
	return out, total, rows.Err()
}

func (s *Store) Get(ctx context.Context, candidateID string) (*Candidate, error) {
	row := s.DB.QueryRow(ctx, fmt.Sprintf(`
    SELECT %s
    FROM candidates
    WHERE id = $1
  `, candidateColumns), candidateID)

	candidate, err := scanCandidate(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return candidate, nil
}

func (s *Store) Create(ctx context.Context, candidate Candidate) (string, error) {
	sections, err := marshalSections(candidate)
	if err != nil {
		return "", err
	}

	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO candidates (
      first_name, last_name, email, phone, position,
      personal_json, application_json, qualifications_json, experience_json,
      skills_json, attachments_json, notes_json,
      total_experience, interview_stage, status
    )
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
    RETURNING id
  `,
		candidate.PersonalInfo.FirstName, candidate.PersonalInfo.LastName,
		candidate.PersonalInfo.Email, candidate.PersonalInfo.Phone,
		candidate.ApplicationInfo.Position,
		sections.personal, sections.application, sections.qualifications, sections.experience,
		sections.skills, sections.attachments, sections.notes,
		candidate.TotalExperience, string(candidate.InterviewStage), string(candidate.Status),
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, candidateID string, candidate Candidate) error {
	sections, err := marshalSections(candidate)
	if err != nil {
		return err
	}

	cmd, err := s.DB.Exec(ctx, `
    UPDATE candidates
    SET first_name = $1,
        last_name = $2,
        email = $3,
        phone = $4,
        position = $5,
        personal_json = $6,
        application_json = $7,
        qualifications_json = $8,
        experience_json = $9,
        skills_json = $10,
        attachments_json = $11,
        notes_json = $12,
        total_experience = $13,
        updated_at = now()
    WHERE id = $14
  `,
		candidate.PersonalInfo.FirstName, candidate.PersonalInfo.LastName,
		candidate.PersonalInfo.Email, candidate.PersonalInfo.Phone,
		candidate.ApplicationInfo.Position,
		sections.personal, sections.application, sections.qualifications, sections.experience,
		sections.skills, sections.attachments, sections.notes,
		candidate.TotalExperience, candidateID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, candidateID string) error {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM candidates WHERE id = $1", candidateID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) AdvanceStage(ctx context.Context, candidateID string, from, to Stage) (bool, error) {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE candidates
    SET interview_stage = $1, updated_at = now()
    WHERE id = $2 AND interview_stage = $3
  `, string(to), candidateID, string(from))
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (s *Store) SetRejected(ctx context.Context, candidateID, reason string) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE candidates
    SET status = $1, interview_stage = $2, rejection_reason = $3, updated_at = now()
    WHERE id = $4
  `, string(StatusRejected), string(StageRejected), reason, candidateID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetHired(ctx context.Context, candidateID string, hiredAt time.Time) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE candidates
    SET status = $1, interview_stage = $2, hired_at = $3, updated_at = now()
    WHERE id = $4
  `, string(StatusHired), string(StageSelected), hiredAt, candidateID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type candidateSections struct {
	personal       []byte
	application    []byte
	qualifications []byte
	experience     []byte
	skills         []byte
	attachments    []byte
	notes          []byte
}

func marshalSections(candidate Candidate) (candidateSections, error) {
	var sections candidateSections
	var err error
	if sections.personal, err = json.Marshal(candidate.PersonalInfo); err != nil {
		return sections, err
	}
	if sections.application, err = json.Marshal(candidate.ApplicationInfo); err != nil {
		return sections, err
	}
	if sections.qualifications, err = json.Marshal(candidate.Qualifications); err != nil {
		return sections, err
	}
	if sections.experience, err = json.Marshal(candidate.WorkExperience); err != nil {
		return sections, err
	}
	if sections.skills, err = json.Marshal(candidate.Skills); err != nil {
		return sections, err
	}
	if sections.attachments, err = json.Marshal(candidate.Attachments); err != nil {
		return sections, err
	}
	if sections.notes, err = json.Marshal(candidate.Notes); err != nil {
		return sections, err
	}
	return sections, nil
}

func scanCandidate(row pgx.Row) (*Candidate, error) {
	var candidate Candidate
	var personal, application, qualifications, experience, skills, attachments, notes []byte
	var stage, status string
	if err := row.Scan(
		&candidate.ID,
		&personal, &application, &qualifications, &experience,
		&skills, &attachments, &notes,
		&candidate.TotalExperience, &stage, &status,
		&candidate.RejectionReason,
		&candidate.HiredAt, &candidate.CreatedAt, &candidate.UpdatedAt,
	); err != nil {
		return nil, err
	}

	candidate.InterviewStage = Stage(stage)
	candidate.Status = Status(status)
	for _, section := range []struct {
		data []byte
		dest any
	}{
		{personal, &candidate.PersonalInfo},
		{application, &candidate.ApplicationInfo},
		{qualifications, &candidate.Qualifications},
		{experience, &candidate.WorkExperience},
		{skills, &candidate.Skills},
		{attachments, &candidate.Attachments},
		{notes, &candidate.Notes},
	} {
		if len(section.data) == 0 {
			continue
		}
		if err := json.Unmarshal(section.data, section.dest); err != nil {
			return nil, err
		}
	}
	return &candidate, nil
}
