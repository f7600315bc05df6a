package seeder

import (
	"context"

	"career-compass/internal/database"
)

type PrerequisitesSeeder struct{}

func (PrerequisitesSeeder) Name() string { return "skill_prerequisites" }

// skill -> prerequisite, by name.
var starterPrerequisites = [][2]string{
	{"PostgreSQL", "SQL"},
	{"Docker", "Linux"},
	{"Kubernetes", "Docker"},
	{"Machine Learning", "Python"},
	{"Machine Learning", "Statistics"},
}

func (PrerequisitesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skill_prerequisites", "skill_id", "prerequisite_id"); err != nil {
		return err
	}

	return database.InTx(ctx, db, func(tx database.Tx) error {
		for _, edge := range starterPrerequisites {
			_, err := tx.Exec(
				ctx,
				`INSERT INTO skill_prerequisites (skill_id, prerequisite_id)
				 SELECT s.id, p.id FROM skills s, skills p WHERE s.name = $1 AND p.name = $2
				 ON CONFLICT DO NOTHING`,
				edge[0],
				edge[1],
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

type RolesSeeder struct{}

func (RolesSeeder) Name() string { return "roles" }

type seedRequirement struct {
	Skill string
	Level *int
}

func level(n int) *int { return &n }

var starterRoles = []struct {
	Title        string
	Description  string
	Requirements []seedRequirement
}{
	{
		Title:       "Backend Engineer",
		Description: "Builds and operates HTTP services and their data stores.",
		Requirements: []seedRequirement{
			{Skill: "Go"},
			{Skill: "SQL"},
			{Skill: "PostgreSQL", Level: level(3)},
			{Skill: "Docker", Level: level(3)},
			{Skill: "Linux", Level: level(3)},
		},
	},
	{
		Title:       "Platform Engineer",
		Description: "Runs the container platform and delivery tooling.",
		Requirements: []seedRequirement{
			{Skill: "Linux"},
			{Skill: "Docker"},
			{Skill: "Kubernetes"},
			{Skill: "Go", Level: level(3)},
		},
	},
	{
		Title:       "Data Scientist",
		Description: "Builds models and analyses from product data.",
		Requirements: []seedRequirement{
			{Skill: "Python"},
			{Skill: "Statistics"},
			{Skill: "Machine Learning"},
			{Skill: "SQL", Level: level(3)},
		},
	},
}

func (RolesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "roles", "id", "title", "description", "created_at"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "role_skills", "role_id", "skill_id", "required_level", "position"); err != nil {
		return err
	}

	return database.InTx(ctx, db, func(tx database.Tx) error {
		for _, r := range starterRoles {
			_, err := tx.Exec(
				ctx,
				`INSERT INTO roles (id, title, description) VALUES (gen_random_uuid(), $1, $2) ON CONFLICT (title) DO NOTHING`,
				r.Title,
				r.Description,
			)
			if err != nil {
				return err
			}
			for pos, req := range r.Requirements {
				_, err := tx.Exec(
					ctx,
					`INSERT INTO role_skills (role_id, skill_id, required_level, position)
					 SELECT r.id, s.id, $3, $4 FROM roles r, skills s WHERE r.title = $1 AND s.name = $2
					 ON CONFLICT (role_id, skill_id) DO NOTHING`,
					r.Title,
					req.Skill,
					req.Level,
					pos,
				)
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
}

type MetricsSeeder struct{}

func (MetricsSeeder) Name() string { return "skill_metrics" }

func (MetricsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skill_metrics", "skill_id", "job_posting_frequency", "average_time_to_proficiency", "recorded_at"); err != nil {
		return err
	}

	_, err := db.Exec(
		ctx,
		`INSERT INTO skill_metrics (skill_id, job_posting_frequency, industry_growth_rate, average_time_to_proficiency, success_rate, retention_rate)
		 SELECT id, (COALESCE(industry_demand, 0) * 1000)::int, COALESCE(future_relevance, 0) * 0.2, 160, 0.7, 0.8
		 FROM skills
		 ON CONFLICT (skill_id) DO NOTHING`,
	)
	return err
}
