package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"career-compass/internal/database"
	"career-compass/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Serializes prerequisite edge inserts so two concurrent edges cannot close a
// cycle between them.
const prerequisiteLockKey int64 = 580114274

const skillColumns = `s.id, s.name, s.category, s.description, s.learning_resources,
	s.industry_demand, s.future_relevance, s.automation_resistance, s.created_at`

type SkillRepository interface {
	ListSkills(ctx context.Context, category string) ([]skill.Skill, error)
	GetSkill(ctx context.Context, id uuid.UUID) (skill.Skill, error)
	SkillExists(ctx context.Context, id uuid.UUID) (bool, error)
	CreateSkill(ctx context.Context, s skill.Skill) (skill.Skill, error)
	AddPrerequisite(ctx context.Context, skillID uuid.UUID, prerequisiteID uuid.UUID) error
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) ListSkills(ctx context.Context, category string) ([]skill.Skill, error) {
	category = strings.TrimSpace(category)

	rows, err := r.db.Query(ctx,
		`SELECT `+skillColumns+`
		 FROM skills s
		 WHERE ($1 = '' OR LOWER(s.category) = LOWER($1))
		 ORDER BY s.name ASC`,
		category,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) GetSkill(ctx context.Context, id uuid.UUID) (skill.Skill, error) {
	row := r.db.QueryRow(ctx, `SELECT `+skillColumns+` FROM skills s WHERE s.id = $1`, id)
	s, err := scanSkill(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return skill.Skill{}, ErrSkillNotFound
		}
		return skill.Skill{}, err
	}

	prereqs, err := listPrerequisites(ctx, r.db, []uuid.UUID{id})
	if err != nil {
		return skill.Skill{}, err
	}
	s.Prerequisites = prereqs[id]
	if s.Prerequisites == nil {
		s.Prerequisites = make([]skill.Prerequisite, 0)
	}
	return s, nil
}

func (r *PostgresSkillRepository) SkillExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM skills WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresSkillRepository) CreateSkill(ctx context.Context, s skill.Skill) (skill.Skill, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.LearningResources == nil {
		s.LearningResources = make([]skill.LearningResource, 0)
	}
	resources, err := json.Marshal(s.LearningResources)
	if err != nil {
		return skill.Skill{}, fmt.Errorf("marshal learning resources: %w", err)
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO skills (id, name, category, description, learning_resources, industry_demand, future_relevance, automation_resistance)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at`,
		s.ID, s.Name, s.Category, s.Description, resources,
		s.IndustryDemand, s.FutureRelevance, s.AutomationResistance,
	)
	if err := row.Scan(&s.CreatedAt); err != nil {
		return skill.Skill{}, err
	}
	s.Prerequisites = make([]skill.Prerequisite, 0)
	return s, nil
}

// AddPrerequisite records that prerequisiteID must be learned before skillID.
// It returns ErrPrerequisiteCycle when skillID is already reachable from
// prerequisiteID.
func (r *PostgresSkillRepository) AddPrerequisite(ctx context.Context, skillID uuid.UUID, prerequisiteID uuid.UUID) error {
	if skillID == prerequisiteID {
		return ErrPrerequisiteCycle
	}

	return database.InTx(ctx, r.db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, prerequisiteLockKey); err != nil {
			return err
		}

		var cyclic bool
		row := tx.QueryRow(ctx,
			`WITH RECURSIVE chain(id) AS (
				SELECT prerequisite_id FROM skill_prerequisites WHERE skill_id = $1
				UNION
				SELECT sp.prerequisite_id FROM skill_prerequisites sp JOIN chain c ON sp.skill_id = c.id
			)
			SELECT EXISTS(SELECT 1 FROM chain WHERE id = $2)`,
			prerequisiteID, skillID,
		)
		if err := row.Scan(&cyclic); err != nil {
			return err
		}
		if cyclic {
			return ErrPrerequisiteCycle
		}

		_, err := tx.Exec(ctx,
			`INSERT INTO skill_prerequisites (skill_id, prerequisite_id) VALUES ($1, $2)
			 ON CONFLICT DO NOTHING`,
			skillID, prerequisiteID,
		)
		return err
	})
}

// listPrerequisites returns the direct prerequisites of each skill id, ordered
// by prerequisite name.
func listPrerequisites(ctx context.Context, q database.Querier, skillIDs []uuid.UUID) (map[uuid.UUID][]skill.Prerequisite, error) {
	out := make(map[uuid.UUID][]skill.Prerequisite, len(skillIDs))
	if len(skillIDs) == 0 {
		return out, nil
	}

	rows, err := q.Query(ctx,
		`SELECT sp.skill_id, p.id, p.name
		 FROM skill_prerequisites sp
		 JOIN skills p ON p.id = sp.prerequisite_id
		 WHERE sp.skill_id = ANY($1)
		 ORDER BY sp.skill_id, p.name ASC`,
		skillIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var owner uuid.UUID
		var p skill.Prerequisite
		if err := rows.Scan(&owner, &p.SkillID, &p.Name); err != nil {
			return nil, err
		}
		out[owner] = append(out[owner], p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanSkill(row database.Row) (skill.Skill, error) {
	var s skill.Skill
	var resources []byte
	if err := row.Scan(
		&s.ID, &s.Name, &s.Category, &s.Description, &resources,
		&s.IndustryDemand, &s.FutureRelevance, &s.AutomationResistance, &s.CreatedAt,
	); err != nil {
		return skill.Skill{}, err
	}
	res, err := decodeResources(resources)
	if err != nil {
		return skill.Skill{}, err
	}
	s.LearningResources = res
	return s, nil
}

func decodeResources(b []byte) ([]skill.LearningResource, error) {
	out := make([]skill.LearningResource, 0)
	if len(b) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode learning resources: %w", err)
	}
	if out == nil {
		out = make([]skill.LearningResource, 0)
	}
	return out, nil
}
