package usecase

import (
	"context"
	"errors"
	"time"

	"career-compass/internal/domain/gap"
	"career-compass/internal/domain/role"
	"career-compass/internal/domain/user"
	"career-compass/internal/pkg/metrics"
	"career-compass/internal/repository"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const tracerName = "career-compass/usecase"

type GapNotifier interface {
	NotifySkillGapUpdated(userID, roleID uuid.UUID, gapCount int, priority []uuid.UUID, estimatedHours int)
}

type LearningPath struct {
	LearningPath            []gap.PathEntry
	EstimatedCompletionTime int
	PrioritySkills          []uuid.UUID
}

type ProgressInput struct {
	HoursInvested int
	Achievements  []gap.Achievement
}

type GapUsecase interface {
	Analyze(ctx context.Context, userID uuid.UUID, roleID uuid.UUID) (gap.Record, error)
	LearningPath(ctx context.Context, userID uuid.UUID, roleID uuid.UUID) (LearningPath, error)
	GetSavedGap(ctx context.Context, userID uuid.UUID, roleID uuid.UUID) (gap.Record, error)
	RecordProgress(ctx context.Context, userID uuid.UUID, roleID uuid.UUID, in ProgressInput) (gap.Record, error)
}

// GapAnalyzer computes the gap result for a set of requirements;
// *gap.Analyzer is the implementation.
type GapAnalyzer interface {
	Analyze(reqs []gap.Requirement, assessments []gap.Assessment) (gap.Result, error)
}

type GapDeps struct {
	Users       user.Repository
	Roles       repository.RoleRepository
	Assessments repository.AssessmentRepository
	Gaps        repository.SkillGapRepository
	Cache       JSONCache
	Notifier    GapNotifier
	Analyzer    GapAnalyzer
	Metrics     *metrics.Metrics
	Log         *zap.Logger
}

type Gap struct {
	users        user.Repository
	roles        repository.RoleRepository
	assessments  repository.AssessmentRepository
	gaps         repository.SkillGapRepository
	requirements requirementStore
	notifier     GapNotifier
	analyzer     GapAnalyzer
	metrics      *metrics.Metrics
	tracer       trace.Tracer
	log          *zap.Logger
	now          func() time.Time
}

func NewGapUsecase(d GapDeps) *Gap {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	var analyzer GapAnalyzer = gap.NewAnalyzer(gap.DefaultPolicy())
	if d.Analyzer != nil {
		analyzer = d.Analyzer
	}
	return &Gap{
		users:        d.Users,
		roles:        d.Roles,
		assessments:  d.Assessments,
		gaps:         d.Gaps,
		requirements: requirementStore{roles: d.Roles, cache: d.Cache, metrics: d.Metrics, log: log},
		notifier:     d.Notifier,
		analyzer:     analyzer,
		metrics:      d.Metrics,
		tracer:       otel.Tracer(tracerName),
		log:          log,
		now:          time.Now,
	}
}

// Analyze runs the gap analysis for the user against the role, replaces the
// stored result and notifies the user's subscribers.
func (u *Gap) Analyze(ctx context.Context, userID uuid.UUID, roleID uuid.UUID) (gap.Record, error) {
	ctx, span := u.tracer.Start(ctx, "gap.Analyze", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
		attribute.String("role.id", roleID.String()),
	))
	defer span.End()

	start := u.now()
	rec, err := u.analyze(ctx, userID, roleID)
	u.metrics.ObserveAnalysis(outcomeOf(err), u.now().Sub(start), len(rec.GapAnalysis))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return gap.Record{}, err
	}

	span.SetAttributes(
		attribute.Int("gap.count", len(rec.GapAnalysis)),
		attribute.Int("gap.estimated_hours", rec.EstimatedCompletionTime),
	)

	if u.notifier != nil {
		u.notifier.NotifySkillGapUpdated(userID, roleID, len(rec.GapAnalysis), rec.PrioritySkills, rec.EstimatedCompletionTime)
	}
	return rec, nil
}

func (u *Gap) analyze(ctx context.Context, userID uuid.UUID, roleID uuid.UUID) (gap.Record, error) {
	if userID == uuid.Nil || roleID == uuid.Nil {
		return gap.Record{}, ErrInvalidInput
	}
	if err := u.ensureExists(ctx, userID, roleID); err != nil {
		return gap.Record{}, err
	}

	reqs, err := u.requirements.load(ctx, roleID)
	if err != nil {
		u.log.Error("load role requirements", zap.String("role_id", roleID.String()), zap.Error(err))
		return gap.Record{}, ErrInternal
	}

	skillIDs := make([]uuid.UUID, 0, len(reqs))
	for _, r := range reqs {
		skillIDs = append(skillIDs, r.SkillID)
	}
	assessed, err := u.assessments.ListByUserAndSkills(ctx, userID, skillIDs)
	if err != nil {
		u.log.Error("load assessments", zap.String("user_id", userID.String()), zap.Error(err))
		return gap.Record{}, ErrInternal
	}

	gapAssessments := make([]gap.Assessment, 0, len(assessed))
	for _, a := range assessed {
		gapAssessments = append(gapAssessments, gap.Assessment{SkillID: a.SkillID, CurrentLevel: a.CurrentLevel})
	}

	res, err := u.analyzer.Analyze(toGapRequirements(reqs), gapAssessments)
	if err != nil {
		if errors.Is(err, gap.ErrInvalidLevel) {
			return gap.Record{}, ErrInvalidLevel
		}
		u.log.Error("analyze skill gap", zap.String("user_id", userID.String()), zap.String("role_id", roleID.String()), zap.Error(err))
		return gap.Record{}, ErrInternal
	}

	saved, err := u.gaps.SaveGap(ctx, gap.NewRecord(userID, roleID, res))
	if err != nil {
		u.log.Error("save skill gap", zap.String("user_id", userID.String()), zap.String("role_id", roleID.String()), zap.Error(err))
		return gap.Record{}, ErrInternal
	}
	return saved, nil
}

func (u *Gap) ensureExists(ctx context.Context, userID uuid.UUID, roleID uuid.UUID) error {
	var userOK, roleOK bool

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ok, err := u.users.ExistsByID(gctx, userID)
		userOK = ok
		return err
	})
	g.Go(func() error {
		ok, err := u.roles.RoleExists(gctx, roleID)
		roleOK = ok
		return err
	})
	if err := g.Wait(); err != nil {
		u.log.Error("existence check", zap.Error(err))
		return ErrInternal
	}

	if !userOK {
		return ErrUserNotFound
	}
	if !roleOK {
		return ErrRoleNotFound
	}
	return nil
}

func (u *Gap) LearningPath(ctx context.Context, userID uuid.UUID, roleID uuid.UUID) (LearningPath, error) {
	rec, err := u.Analyze(ctx, userID, roleID)
	if err != nil {
		return LearningPath{}, err
	}
	return LearningPath{
		LearningPath:            rec.RecommendedPath,
		EstimatedCompletionTime: rec.EstimatedCompletionTime,
		PrioritySkills:          rec.PrioritySkills,
	}, nil
}

func (u *Gap) GetSavedGap(ctx context.Context, userID uuid.UUID, roleID uuid.UUID) (gap.Record, error) {
	rec, err := u.gaps.GetGap(ctx, userID, roleID)
	if err != nil {
		if errors.Is(err, repository.ErrSkillGapNotFound) {
			return gap.Record{}, ErrGapNotFound
		}
		return gap.Record{}, ErrInternal
	}
	return rec, nil
}

// RecordProgress adds the logged hours to the stored gap, appends new
// milestone achievements and recomputes the completion percentage. The
// repository applies the increment atomically.
func (u *Gap) RecordProgress(ctx context.Context, userID uuid.UUID, roleID uuid.UUID, in ProgressInput) (gap.Record, error) {
	if in.HoursInvested < 0 {
		return gap.Record{}, ErrInvalidInput
	}
	for _, a := range in.Achievements {
		if a.SkillID == uuid.Nil || !isValidLevel(a.Level) {
			return gap.Record{}, ErrInvalidInput
		}
	}

	achievements := mergeAchievements(nil, in.Achievements, u.now().UTC())
	updated, err := u.gaps.AddProgress(ctx, userID, roleID, in.HoursInvested, achievements)
	if err != nil {
		if errors.Is(err, repository.ErrSkillGapNotFound) {
			return gap.Record{}, ErrGapNotFound
		}
		u.log.Error("record progress", zap.String("user_id", userID.String()), zap.String("role_id", roleID.String()), zap.Error(err))
		return gap.Record{}, ErrInternal
	}
	return updated, nil
}

// mergeAchievements appends achievements not already recorded for the same
// skill and level. A zero AchievedAt is stamped with now.
func mergeAchievements(existing, incoming []gap.Achievement, now time.Time) []gap.Achievement {
	type key struct {
		skill uuid.UUID
		level int
	}
	out := make([]gap.Achievement, 0, len(existing)+len(incoming))
	seen := make(map[key]struct{}, len(existing)+len(incoming))
	for _, a := range existing {
		seen[key{a.SkillID, a.Level}] = struct{}{}
		out = append(out, a)
	}
	for _, a := range incoming {
		k := key{a.SkillID, a.Level}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		if a.AchievedAt.IsZero() {
			a.AchievedAt = now
		}
		out = append(out, a)
	}
	return out
}

func toGapRequirements(reqs []role.Requirement) []gap.Requirement {
	out := make([]gap.Requirement, 0, len(reqs))
	for _, r := range reqs {
		level := 0
		if r.RequiredLevel != nil {
			level = *r.RequiredLevel
		}
		out = append(out, gap.Requirement{
			SkillID:           r.SkillID,
			SkillName:         r.SkillName,
			RequiredLevel:     level,
			Prerequisites:     r.Prerequisites,
			LearningResources: r.LearningResources,
		})
	}
	return out
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrRoleNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidLevel), errors.Is(err, ErrInvalidInput):
		return "invalid"
	default:
		return "error"
	}
}
