package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"career-compass/internal/database"
	"career-compass/internal/domain/gap"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type SkillGapRepository interface {
	SaveGap(ctx context.Context, rec gap.Record) (gap.Record, error)
	GetGap(ctx context.Context, userID uuid.UUID, roleID uuid.UUID) (gap.Record, error)
	AddProgress(ctx context.Context, userID uuid.UUID, roleID uuid.UUID, hours int, achievements []gap.Achievement) (gap.Record, error)
}

type PostgresSkillGapRepository struct {
	db database.DB
}

func NewPostgresSkillGapRepository(db database.DB) *PostgresSkillGapRepository {
	return &PostgresSkillGapRepository{db: db}
}

const skillGapColumns = `id, user_id, target_role_id, gap_analysis, priority_skills, recommended_path,
	estimated_completion_time, completion_percentage, time_invested, milestone_achievements, created_at, updated_at`

// SaveGap replaces the analysis columns of the (user, role) row in a single
// statement, creating the row on first use. Progress columns are left as they
// are; completion_percentage is recomputed against the new estimate.
func (r *PostgresSkillGapRepository) SaveGap(ctx context.Context, rec gap.Record) (gap.Record, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	analysis, priority, path, err := encodeAnalysis(rec)
	if err != nil {
		return gap.Record{}, err
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO skill_gaps (id, user_id, target_role_id, gap_analysis, priority_skills, recommended_path, estimated_completion_time)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (user_id, target_role_id) DO UPDATE SET
			gap_analysis = EXCLUDED.gap_analysis,
			priority_skills = EXCLUDED.priority_skills,
			recommended_path = EXCLUDED.recommended_path,
			estimated_completion_time = EXCLUDED.estimated_completion_time,
			completion_percentage = CASE
				WHEN EXCLUDED.estimated_completion_time <= 0 THEN 0
				ELSE LEAST(100, skill_gaps.time_invested::double precision / EXCLUDED.estimated_completion_time * 100)
			END,
			updated_at = now()
		 RETURNING `+skillGapColumns,
		rec.ID, rec.UserID, rec.TargetRoleID, analysis, priority, path, rec.EstimatedCompletionTime,
	)
	return scanSkillGap(row)
}

func (r *PostgresSkillGapRepository) GetGap(ctx context.Context, userID uuid.UUID, roleID uuid.UUID) (gap.Record, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+skillGapColumns+` FROM skill_gaps WHERE user_id = $1 AND target_role_id = $2`,
		userID, roleID,
	)
	rec, err := scanSkillGap(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return gap.Record{}, ErrSkillGapNotFound
		}
		return gap.Record{}, err
	}
	return rec, nil
}

// AddProgress adds hours to time_invested and appends achievements whose
// (skill_id, level) is not yet recorded, in one statement. Completion is
// recomputed against the estimate stored in the same row version, so
// concurrent progress writes and re-analyses never lose each other's updates.
func (r *PostgresSkillGapRepository) AddProgress(ctx context.Context, userID uuid.UUID, roleID uuid.UUID, hours int, achievements []gap.Achievement) (gap.Record, error) {
	if achievements == nil {
		achievements = make([]gap.Achievement, 0)
	}
	incoming, err := json.Marshal(achievements)
	if err != nil {
		return gap.Record{}, fmt.Errorf("marshal milestone achievements: %w", err)
	}

	row := r.db.QueryRow(ctx,
		`UPDATE skill_gaps g SET
			time_invested = g.time_invested + $3,
			completion_percentage = CASE
				WHEN g.estimated_completion_time <= 0 THEN 0
				ELSE LEAST(100, (g.time_invested + $3)::double precision / g.estimated_completion_time * 100)
			END,
			milestone_achievements = g.milestone_achievements || COALESCE((
				SELECT jsonb_agg(n.a ORDER BY n.ord)
				FROM jsonb_array_elements($4::jsonb) WITH ORDINALITY AS n(a, ord)
				WHERE NOT EXISTS (
					SELECT 1 FROM jsonb_array_elements(g.milestone_achievements) e
					WHERE e->>'skill_id' = n.a->>'skill_id' AND (e->>'level')::int = (n.a->>'level')::int
				)
			), '[]'::jsonb),
			updated_at = now()
		 WHERE g.user_id = $1 AND g.target_role_id = $2
		 RETURNING `+skillGapColumns,
		userID, roleID, hours, incoming,
	)
	out, err := scanSkillGap(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return gap.Record{}, ErrSkillGapNotFound
		}
		return gap.Record{}, err
	}
	return out, nil
}

func encodeAnalysis(rec gap.Record) ([]byte, []byte, []byte, error) {
	if rec.GapAnalysis == nil {
		rec.GapAnalysis = make([]gap.Gap, 0)
	}
	if rec.PrioritySkills == nil {
		rec.PrioritySkills = make([]uuid.UUID, 0)
	}
	if rec.RecommendedPath == nil {
		rec.RecommendedPath = make([]gap.PathEntry, 0)
	}
	analysis, err := json.Marshal(rec.GapAnalysis)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshal gap analysis: %w", err)
	}
	priority, err := json.Marshal(rec.PrioritySkills)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshal priority skills: %w", err)
	}
	path, err := json.Marshal(rec.RecommendedPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshal recommended path: %w", err)
	}
	return analysis, priority, path, nil
}

func scanSkillGap(row database.Row) (gap.Record, error) {
	var rec gap.Record
	var analysis, priority, path, achievements []byte
	if err := row.Scan(
		&rec.ID, &rec.UserID, &rec.TargetRoleID, &analysis, &priority, &path,
		&rec.EstimatedCompletionTime, &rec.CompletionPercentage, &rec.TimeInvested, &achievements,
		&rec.CreatedAt, &rec.UpdatedAt,
	); err != nil {
		return gap.Record{}, err
	}

	rec.GapAnalysis = make([]gap.Gap, 0)
	rec.PrioritySkills = make([]uuid.UUID, 0)
	rec.RecommendedPath = make([]gap.PathEntry, 0)
	rec.MilestoneAchievements = make([]gap.Achievement, 0)

	fields := []struct {
		name string
		raw  []byte
		dst  any
	}{
		{"gap_analysis", analysis, &rec.GapAnalysis},
		{"priority_skills", priority, &rec.PrioritySkills},
		{"recommended_path", path, &rec.RecommendedPath},
		{"milestone_achievements", achievements, &rec.MilestoneAchievements},
	}
	for _, f := range fields {
		if len(f.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(f.raw, f.dst); err != nil {
			return gap.Record{}, fmt.Errorf("decode %s: %w", f.name, err)
		}
	}
	return rec, nil
}
