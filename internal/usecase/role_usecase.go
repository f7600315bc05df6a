package usecase

import (
	"context"
	"errors"
	"strings"

	"career-compass/internal/domain/role"
	"career-compass/internal/pkg/metrics"
	"career-compass/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateRoleInput struct {
	Title       string
	Description string
}

// RequirementInput is one entry of a role's required skill set. A nil
// RequiredLevel falls back to the analyzer default.
type RequirementInput struct {
	SkillID       uuid.UUID
	RequiredLevel *int
}

type RoleUsecase interface {
	CreateRole(ctx context.Context, in CreateRoleInput) (role.Role, error)
	GetRole(ctx context.Context, id uuid.UUID) (role.Role, error)
	GetRequiredSkills(ctx context.Context, roleID uuid.UUID) ([]role.Requirement, error)
	SetRequiredSkills(ctx context.Context, roleID uuid.UUID, in []RequirementInput) ([]role.Requirement, error)
}

type Role struct {
	roles        repository.RoleRepository
	skills       repository.SkillRepository
	requirements requirementStore
	log          *zap.Logger
}

func NewRoleUsecase(roles repository.RoleRepository, skills repository.SkillRepository, cache JSONCache, m *metrics.Metrics, log *zap.Logger) *Role {
	if log == nil {
		log = zap.NewNop()
	}
	return &Role{
		roles:        roles,
		skills:       skills,
		requirements: requirementStore{roles: roles, cache: cache, metrics: m, log: log},
		log:          log,
	}
}

func (u *Role) CreateRole(ctx context.Context, in CreateRoleInput) (role.Role, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return role.Role{}, ErrInvalidInput
	}
	created, err := u.roles.CreateRole(ctx, role.Role{Title: title, Description: strings.TrimSpace(in.Description)})
	if err != nil {
		if isUniqueViolation(err) {
			return role.Role{}, ErrAlreadyExists
		}
		u.log.Error("create role", zap.String("title", title), zap.Error(err))
		return role.Role{}, ErrInternal
	}
	return created, nil
}

func (u *Role) GetRole(ctx context.Context, id uuid.UUID) (role.Role, error) {
	if id == uuid.Nil {
		return role.Role{}, ErrInvalidInput
	}
	r, err := u.roles.GetRole(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRoleNotFound) {
			return role.Role{}, ErrRoleNotFound
		}
		return role.Role{}, ErrInternal
	}
	return r, nil
}

// GetRequiredSkills returns the role's requirements in insertion order.
func (u *Role) GetRequiredSkills(ctx context.Context, roleID uuid.UUID) ([]role.Requirement, error) {
	if err := u.ensureRole(ctx, roleID); err != nil {
		return nil, err
	}
	reqs, err := u.requirements.load(ctx, roleID)
	if err != nil {
		u.log.Error("list role requirements", zap.String("role_id", roleID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	return reqs, nil
}

// SetRequiredSkills replaces the whole requirement set. Duplicate skills and
// levels outside 1..5 are rejected before anything is written.
func (u *Role) SetRequiredSkills(ctx context.Context, roleID uuid.UUID, in []RequirementInput) ([]role.Requirement, error) {
	if err := u.ensureRole(ctx, roleID); err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{}, len(in))
	reqs := make([]role.Requirement, 0, len(in))
	for _, it := range in {
		if it.SkillID == uuid.Nil {
			return nil, ErrInvalidInput
		}
		if _, dup := seen[it.SkillID]; dup {
			return nil, ErrInvalidInput
		}
		seen[it.SkillID] = struct{}{}
		if it.RequiredLevel != nil && !isValidLevel(*it.RequiredLevel) {
			return nil, ErrInvalidLevel
		}

		exists, err := u.skills.SkillExists(ctx, it.SkillID)
		if err != nil {
			return nil, ErrInternal
		}
		if !exists {
			return nil, ErrSkillNotFound
		}
		reqs = append(reqs, role.Requirement{RoleID: roleID, SkillID: it.SkillID, RequiredLevel: it.RequiredLevel})
	}

	if err := u.roles.ReplaceRequirements(ctx, roleID, reqs); err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrSkillNotFound
		}
		u.log.Error("replace role requirements", zap.String("role_id", roleID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	u.requirements.invalidate(ctx, roleID)

	return u.GetRequiredSkills(ctx, roleID)
}

func (u *Role) ensureRole(ctx context.Context, roleID uuid.UUID) error {
	if roleID == uuid.Nil {
		return ErrInvalidInput
	}
	exists, err := u.roles.RoleExists(ctx, roleID)
	if err != nil {
		return ErrInternal
	}
	if !exists {
		return ErrRoleNotFound
	}
	return nil
}
