package repository

import (
	"context"
	"errors"

	"career-compass/internal/database"
	"career-compass/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type SkillMetricsRepository interface {
	GetMetrics(ctx context.Context, skillID uuid.UUID) (skill.Metrics, error)
	UpsertMetrics(ctx context.Context, m skill.Metrics) error
}

type PostgresSkillMetricsRepository struct {
	db database.DB
}

func NewPostgresSkillMetricsRepository(db database.DB) *PostgresSkillMetricsRepository {
	return &PostgresSkillMetricsRepository{db: db}
}

func (r *PostgresSkillMetricsRepository) GetMetrics(ctx context.Context, skillID uuid.UUID) (skill.Metrics, error) {
	var m skill.Metrics
	row := r.db.QueryRow(ctx,
		`SELECT skill_id, learning_resource_usage, assessment_completion_rate, average_proficiency_gain,
			job_posting_frequency, salary_impact, industry_growth_rate, average_time_to_proficiency,
			success_rate, retention_rate, recorded_at
		 FROM skill_metrics
		 WHERE skill_id = $1`,
		skillID,
	)
	if err := row.Scan(
		&m.SkillID, &m.LearningResourceUsage, &m.AssessmentCompletionRate, &m.AverageProficiencyGain,
		&m.JobPostingFrequency, &m.SalaryImpact, &m.IndustryGrowthRate, &m.AverageTimeToProficiency,
		&m.SuccessRate, &m.RetentionRate, &m.RecordedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return skill.Metrics{}, ErrMetricsNotFound
		}
		return skill.Metrics{}, err
	}
	return m, nil
}

// UpsertMetrics replaces the snapshot for the skill.
func (r *PostgresSkillMetricsRepository) UpsertMetrics(ctx context.Context, m skill.Metrics) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO skill_metrics (
			skill_id, learning_resource_usage, assessment_completion_rate, average_proficiency_gain,
			job_posting_frequency, salary_impact, industry_growth_rate, average_time_to_proficiency,
			success_rate, retention_rate, recorded_at
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
		 ON CONFLICT (skill_id) DO UPDATE SET
			learning_resource_usage = EXCLUDED.learning_resource_usage,
			assessment_completion_rate = EXCLUDED.assessment_completion_rate,
			average_proficiency_gain = EXCLUDED.average_proficiency_gain,
			job_posting_frequency = EXCLUDED.job_posting_frequency,
			salary_impact = EXCLUDED.salary_impact,
			industry_growth_rate = EXCLUDED.industry_growth_rate,
			average_time_to_proficiency = EXCLUDED.average_time_to_proficiency,
			success_rate = EXCLUDED.success_rate,
			retention_rate = EXCLUDED.retention_rate,
			recorded_at = now()`,
		m.SkillID, m.LearningResourceUsage, m.AssessmentCompletionRate, m.AverageProficiencyGain,
		m.JobPostingFrequency, m.SalaryImpact, m.IndustryGrowthRate, m.AverageTimeToProficiency,
		m.SuccessRate, m.RetentionRate,
	)
	return err
}
