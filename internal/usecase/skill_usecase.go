package usecase

import (
	"context"
	"errors"
	"strings"

	"career-compass/internal/domain/skill"
	"career-compass/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateSkillInput struct {
	Name                 string
	Category             string
	Description          string
	LearningResources    []skill.LearningResource
	IndustryDemand       *float64
	FutureRelevance      *float64
	AutomationResistance *float64
}

type SkillUsecase interface {
	ListSkills(ctx context.Context, category string) ([]skill.Skill, error)
	GetSkill(ctx context.Context, id uuid.UUID) (skill.Skill, error)
	CreateSkill(ctx context.Context, in CreateSkillInput) (skill.Skill, error)
	AddPrerequisite(ctx context.Context, skillID uuid.UUID, prerequisiteID uuid.UUID) (skill.Skill, error)
	GetMetrics(ctx context.Context, skillID uuid.UUID) (skill.Metrics, error)
	RecordMetrics(ctx context.Context, m skill.Metrics) (skill.Metrics, error)
}

type Skill struct {
	repo         repository.SkillRepository
	metrics      repository.SkillMetricsRepository
	requirements requirementStore
	log          *zap.Logger
}

func NewSkillUsecase(repo repository.SkillRepository, metrics repository.SkillMetricsRepository, cache JSONCache, log *zap.Logger) *Skill {
	if log == nil {
		log = zap.NewNop()
	}
	return &Skill{
		repo:         repo,
		metrics:      metrics,
		requirements: requirementStore{cache: cache, log: log},
		log:          log,
	}
}

func (u *Skill) ListSkills(ctx context.Context, category string) ([]skill.Skill, error) {
	items, err := u.repo.ListSkills(ctx, strings.TrimSpace(category))
	if err != nil {
		u.log.Error("list skills", zap.Error(err))
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Skill) GetSkill(ctx context.Context, id uuid.UUID) (skill.Skill, error) {
	if id == uuid.Nil {
		return skill.Skill{}, ErrInvalidInput
	}
	s, err := u.repo.GetSkill(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return skill.Skill{}, ErrSkillNotFound
		}
		u.log.Error("get skill", zap.String("skill_id", id.String()), zap.Error(err))
		return skill.Skill{}, ErrInternal
	}
	return s, nil
}

func (u *Skill) CreateSkill(ctx context.Context, in CreateSkillInput) (skill.Skill, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return skill.Skill{}, ErrInvalidInput
	}
	for _, v := range []*float64{in.IndustryDemand, in.FutureRelevance, in.AutomationResistance} {
		if v != nil && (*v < 0 || *v > 1) {
			return skill.Skill{}, ErrInvalidInput
		}
	}
	resources := make([]skill.LearningResource, 0, len(in.LearningResources))
	for _, r := range in.LearningResources {
		r.Title = strings.TrimSpace(r.Title)
		if r.Title == "" {
			return skill.Skill{}, ErrInvalidInput
		}
		resources = append(resources, r)
	}

	created, err := u.repo.CreateSkill(ctx, skill.Skill{
		Name:                 name,
		Category:             strings.TrimSpace(in.Category),
		Description:          strings.TrimSpace(in.Description),
		LearningResources:    resources,
		IndustryDemand:       in.IndustryDemand,
		FutureRelevance:      in.FutureRelevance,
		AutomationResistance: in.AutomationResistance,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return skill.Skill{}, ErrAlreadyExists
		}
		u.log.Error("create skill", zap.String("name", name), zap.Error(err))
		return skill.Skill{}, ErrInternal
	}
	return created, nil
}

// AddPrerequisite records prerequisiteID as a direct prerequisite of skillID
// and returns the updated skill.
func (u *Skill) AddPrerequisite(ctx context.Context, skillID uuid.UUID, prerequisiteID uuid.UUID) (skill.Skill, error) {
	if skillID == uuid.Nil || prerequisiteID == uuid.Nil {
		return skill.Skill{}, ErrInvalidInput
	}
	if skillID == prerequisiteID {
		return skill.Skill{}, ErrPrerequisiteCycle
	}

	for _, id := range []uuid.UUID{skillID, prerequisiteID} {
		exists, err := u.repo.SkillExists(ctx, id)
		if err != nil {
			return skill.Skill{}, ErrInternal
		}
		if !exists {
			return skill.Skill{}, ErrSkillNotFound
		}
	}

	if err := u.repo.AddPrerequisite(ctx, skillID, prerequisiteID); err != nil {
		switch {
		case errors.Is(err, repository.ErrPrerequisiteCycle):
			return skill.Skill{}, ErrPrerequisiteCycle
		case isForeignKeyViolation(err):
			return skill.Skill{}, ErrSkillNotFound
		default:
			u.log.Error("add prerequisite", zap.Error(err))
			return skill.Skill{}, ErrInternal
		}
	}
	u.requirements.invalidateAll(ctx)
	return u.GetSkill(ctx, skillID)
}

func (u *Skill) GetMetrics(ctx context.Context, skillID uuid.UUID) (skill.Metrics, error) {
	if skillID == uuid.Nil {
		return skill.Metrics{}, ErrInvalidInput
	}
	m, err := u.metrics.GetMetrics(ctx, skillID)
	if err != nil {
		if errors.Is(err, repository.ErrMetricsNotFound) {
			return skill.Metrics{}, ErrMetricsNotFound
		}
		return skill.Metrics{}, ErrInternal
	}
	return m, nil
}

// RecordMetrics replaces the metrics snapshot of an existing skill.
func (u *Skill) RecordMetrics(ctx context.Context, m skill.Metrics) (skill.Metrics, error) {
	if m.SkillID == uuid.Nil || m.JobPostingFrequency < 0 || m.AverageTimeToProficiency < 0 {
		return skill.Metrics{}, ErrInvalidInput
	}
	for _, rate := range []float64{m.AssessmentCompletionRate, m.SuccessRate, m.RetentionRate} {
		if rate < 0 || rate > 1 {
			return skill.Metrics{}, ErrInvalidInput
		}
	}

	exists, err := u.repo.SkillExists(ctx, m.SkillID)
	if err != nil {
		return skill.Metrics{}, ErrInternal
	}
	if !exists {
		return skill.Metrics{}, ErrSkillNotFound
	}

	if err := u.metrics.UpsertMetrics(ctx, m); err != nil {
		u.log.Error("record skill metrics", zap.String("skill_id", m.SkillID.String()), zap.Error(err))
		return skill.Metrics{}, ErrInternal
	}
	return u.GetMetrics(ctx, m.SkillID)
}
