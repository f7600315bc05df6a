package repository

import (
	"context"
	"errors"

	"career-compass/internal/database"
	"career-compass/internal/domain/role"
	"career-compass/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type RoleRepository interface {
	CreateRole(ctx context.Context, r role.Role) (role.Role, error)
	GetRole(ctx context.Context, id uuid.UUID) (role.Role, error)
	RoleExists(ctx context.Context, id uuid.UUID) (bool, error)
	ListRequirements(ctx context.Context, roleID uuid.UUID) ([]role.Requirement, error)
	ReplaceRequirements(ctx context.Context, roleID uuid.UUID, reqs []role.Requirement) error
}

type PostgresRoleRepository struct {
	db database.DB
}

func NewPostgresRoleRepository(db database.DB) *PostgresRoleRepository {
	return &PostgresRoleRepository{db: db}
}

func (r *PostgresRoleRepository) CreateRole(ctx context.Context, in role.Role) (role.Role, error) {
	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO roles (id, title, description) VALUES ($1, $2, $3) RETURNING created_at`,
		in.ID, in.Title, in.Description,
	)
	if err := row.Scan(&in.CreatedAt); err != nil {
		return role.Role{}, err
	}
	return in, nil
}

func (r *PostgresRoleRepository) GetRole(ctx context.Context, id uuid.UUID) (role.Role, error) {
	var out role.Role
	row := r.db.QueryRow(ctx, `SELECT id, title, description, created_at FROM roles WHERE id = $1`, id)
	if err := row.Scan(&out.ID, &out.Title, &out.Description, &out.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return role.Role{}, ErrRoleNotFound
		}
		return role.Role{}, err
	}
	return out, nil
}

func (r *PostgresRoleRepository) RoleExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM roles WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ListRequirements returns the role's required skills in insertion order, each
// with its direct prerequisites and learning resources.
func (r *PostgresRoleRepository) ListRequirements(ctx context.Context, roleID uuid.UUID) ([]role.Requirement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT rs.role_id, s.id, s.name, s.category, rs.required_level, rs.position, s.learning_resources
		 FROM role_skills rs
		 JOIN skills s ON s.id = rs.skill_id
		 WHERE rs.role_id = $1
		 ORDER BY rs.position ASC, s.name ASC`,
		roleID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]role.Requirement, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var req role.Requirement
		var level *int16
		var resources []byte
		if err := rows.Scan(&req.RoleID, &req.SkillID, &req.SkillName, &req.Category, &level, &req.Position, &resources); err != nil {
			return nil, err
		}
		if level != nil {
			v := int(*level)
			req.RequiredLevel = &v
		}
		if req.LearningResources, err = decodeResources(resources); err != nil {
			return nil, err
		}
		out = append(out, req)
		ids = append(ids, req.SkillID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	prereqs, err := listPrerequisites(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Prerequisites = prereqs[out[i].SkillID]
		if out[i].Prerequisites == nil {
			out[i].Prerequisites = make([]skill.Prerequisite, 0)
		}
	}
	return out, nil
}

// ReplaceRequirements swaps the role's whole requirement set in one
// transaction. Positions follow the order of reqs.
func (r *PostgresRoleRepository) ReplaceRequirements(ctx context.Context, roleID uuid.UUID, reqs []role.Requirement) error {
	return database.InTx(ctx, r.db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM role_skills WHERE role_id = $1`, roleID); err != nil {
			return err
		}
		for i, req := range reqs {
			_, err := tx.Exec(ctx,
				`INSERT INTO role_skills (role_id, skill_id, required_level, position) VALUES ($1, $2, $3, $4)`,
				roleID, req.SkillID, req.RequiredLevel, i,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
