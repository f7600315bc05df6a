package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"career-compass/internal/domain/assessment"
	"career-compass/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UpsertAssessmentInput struct {
	SkillID             uuid.UUID
	CurrentLevel        int
	TargetLevel         *int
	VerificationStatus  bool
	Endorsements        int
	PracticeHours       int
	ProjectApplications int
	CompletedResources  []string
	AssessmentDate      *time.Time
}

type AssessmentUsecase interface {
	GetAssessment(ctx context.Context, userID uuid.UUID, skillID uuid.UUID) (assessment.Assessment, error)
	ListAssessments(ctx context.Context, userID uuid.UUID) ([]assessment.Assessment, error)
	UpsertAssessment(ctx context.Context, userID uuid.UUID, in UpsertAssessmentInput) (assessment.Assessment, error)
}

type Assessment struct {
	repo   repository.AssessmentRepository
	skills repository.SkillRepository
	log    *zap.Logger
}

func NewAssessmentUsecase(repo repository.AssessmentRepository, skills repository.SkillRepository, log *zap.Logger) *Assessment {
	if log == nil {
		log = zap.NewNop()
	}
	return &Assessment{repo: repo, skills: skills, log: log}
}

func (u *Assessment) GetAssessment(ctx context.Context, userID uuid.UUID, skillID uuid.UUID) (assessment.Assessment, error) {
	if userID == uuid.Nil || skillID == uuid.Nil {
		return assessment.Assessment{}, ErrInvalidInput
	}
	a, err := u.repo.GetAssessment(ctx, userID, skillID)
	if err != nil {
		if errors.Is(err, repository.ErrAssessmentNotFound) {
			return assessment.Assessment{}, ErrAssessmentNotFound
		}
		return assessment.Assessment{}, ErrInternal
	}
	return a, nil
}

func (u *Assessment) ListAssessments(ctx context.Context, userID uuid.UUID) ([]assessment.Assessment, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	items, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		u.log.Error("list assessments", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	return items, nil
}

// UpsertAssessment creates the user's assessment for the skill or overwrites
// the existing one.
func (u *Assessment) UpsertAssessment(ctx context.Context, userID uuid.UUID, in UpsertAssessmentInput) (assessment.Assessment, error) {
	if userID == uuid.Nil || in.SkillID == uuid.Nil {
		return assessment.Assessment{}, ErrInvalidInput
	}
	if !isValidLevel(in.CurrentLevel) {
		return assessment.Assessment{}, ErrInvalidLevel
	}
	if in.TargetLevel != nil && !isValidLevel(*in.TargetLevel) {
		return assessment.Assessment{}, ErrInvalidLevel
	}
	if in.Endorsements < 0 || in.PracticeHours < 0 || in.ProjectApplications < 0 {
		return assessment.Assessment{}, ErrInvalidInput
	}

	completed := make([]string, 0, len(in.CompletedResources))
	for _, r := range in.CompletedResources {
		if r = strings.TrimSpace(r); r != "" {
			completed = append(completed, r)
		}
	}

	exists, err := u.skills.SkillExists(ctx, in.SkillID)
	if err != nil {
		return assessment.Assessment{}, ErrInternal
	}
	if !exists {
		return assessment.Assessment{}, ErrSkillNotFound
	}

	saved, err := u.repo.Upsert(ctx, assessment.Assessment{
		UserID:              userID,
		SkillID:             in.SkillID,
		CurrentLevel:        in.CurrentLevel,
		TargetLevel:         in.TargetLevel,
		VerificationStatus:  in.VerificationStatus,
		Endorsements:        in.Endorsements,
		PracticeHours:       in.PracticeHours,
		ProjectApplications: in.ProjectApplications,
		CompletedResources:  completed,
		AssessmentDate:      in.AssessmentDate,
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return assessment.Assessment{}, ErrSkillNotFound
		}
		u.log.Error("upsert assessment", zap.String("user_id", userID.String()), zap.Error(err))
		return assessment.Assessment{}, ErrInternal
	}
	return saved, nil
}
