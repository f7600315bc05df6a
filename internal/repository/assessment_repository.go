package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"career-compass/internal/database"
	"career-compass/internal/domain/assessment"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const assessmentColumns = `a.id, a.user_id, a.skill_id, s.name, a.current_level, a.target_level,
	a.verification_status, a.endorsements, a.practice_hours, a.project_applications,
	a.completed_resources, a.assessment_date, a.updated_at`

type AssessmentRepository interface {
	GetAssessment(ctx context.Context, userID uuid.UUID, skillID uuid.UUID) (assessment.Assessment, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]assessment.Assessment, error)
	ListByUserAndSkills(ctx context.Context, userID uuid.UUID, skillIDs []uuid.UUID) ([]assessment.Assessment, error)
	Upsert(ctx context.Context, a assessment.Assessment) (assessment.Assessment, error)
}

type PostgresAssessmentRepository struct {
	db database.DB
}

func NewPostgresAssessmentRepository(db database.DB) *PostgresAssessmentRepository {
	return &PostgresAssessmentRepository{db: db}
}

func (r *PostgresAssessmentRepository) GetAssessment(ctx context.Context, userID uuid.UUID, skillID uuid.UUID) (assessment.Assessment, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+assessmentColumns+`
		 FROM skill_assessments a
		 JOIN skills s ON s.id = a.skill_id
		 WHERE a.user_id = $1 AND a.skill_id = $2`,
		userID, skillID,
	)
	a, err := scanAssessment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return assessment.Assessment{}, ErrAssessmentNotFound
		}
		return assessment.Assessment{}, err
	}
	return a, nil
}

func (r *PostgresAssessmentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]assessment.Assessment, error) {
	return r.list(ctx,
		`SELECT `+assessmentColumns+`
		 FROM skill_assessments a
		 JOIN skills s ON s.id = a.skill_id
		 WHERE a.user_id = $1
		 ORDER BY s.name ASC`,
		userID,
	)
}

// ListByUserAndSkills returns only the assessments whose skill is in skillIDs.
func (r *PostgresAssessmentRepository) ListByUserAndSkills(ctx context.Context, userID uuid.UUID, skillIDs []uuid.UUID) ([]assessment.Assessment, error) {
	if len(skillIDs) == 0 {
		return make([]assessment.Assessment, 0), nil
	}
	return r.list(ctx,
		`SELECT `+assessmentColumns+`
		 FROM skill_assessments a
		 JOIN skills s ON s.id = a.skill_id
		 WHERE a.user_id = $1 AND a.skill_id = ANY($2)
		 ORDER BY s.name ASC`,
		userID, skillIDs,
	)
}

// Upsert inserts the assessment or overwrites the existing one for the same
// (user, skill) pair.
func (r *PostgresAssessmentRepository) Upsert(ctx context.Context, a assessment.Assessment) (assessment.Assessment, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CompletedResources == nil {
		a.CompletedResources = make([]string, 0)
	}
	completed, err := json.Marshal(a.CompletedResources)
	if err != nil {
		return assessment.Assessment{}, fmt.Errorf("marshal completed resources: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO skill_assessments (
			id, user_id, skill_id, current_level, target_level, verification_status,
			endorsements, practice_hours, project_applications, completed_resources, assessment_date
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, COALESCE($11, now()))
		 ON CONFLICT (user_id, skill_id) DO UPDATE SET
			current_level = EXCLUDED.current_level,
			target_level = EXCLUDED.target_level,
			verification_status = EXCLUDED.verification_status,
			endorsements = EXCLUDED.endorsements,
			practice_hours = EXCLUDED.practice_hours,
			project_applications = EXCLUDED.project_applications,
			completed_resources = EXCLUDED.completed_resources,
			assessment_date = EXCLUDED.assessment_date,
			updated_at = now()`,
		a.ID, a.UserID, a.SkillID, a.CurrentLevel, a.TargetLevel, a.VerificationStatus,
		a.Endorsements, a.PracticeHours, a.ProjectApplications, completed, a.AssessmentDate,
	)
	if err != nil {
		return assessment.Assessment{}, err
	}

	return r.GetAssessment(ctx, a.UserID, a.SkillID)
}

func (r *PostgresAssessmentRepository) list(ctx context.Context, query string, args ...any) ([]assessment.Assessment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]assessment.Assessment, 0)
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanAssessment(row database.Row) (assessment.Assessment, error) {
	var a assessment.Assessment
	var current int16
	var target *int16
	var completed []byte
	if err := row.Scan(
		&a.ID, &a.UserID, &a.SkillID, &a.SkillName, &current, &target,
		&a.VerificationStatus, &a.Endorsements, &a.PracticeHours, &a.ProjectApplications,
		&completed, &a.AssessmentDate, &a.UpdatedAt,
	); err != nil {
		return assessment.Assessment{}, err
	}
	a.CurrentLevel = int(current)
	if target != nil {
		v := int(*target)
		a.TargetLevel = &v
	}
	a.CompletedResources = make([]string, 0)
	if len(completed) > 0 {
		if err := json.Unmarshal(completed, &a.CompletedResources); err != nil {
			return assessment.Assessment{}, fmt.Errorf("decode completed resources: %w", err)
		}
	}
	return a, nil
}
