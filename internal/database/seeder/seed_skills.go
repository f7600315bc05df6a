package seeder

import (
	"context"
	"encoding/json"
	"fmt"

	"career-compass/internal/database"
	"career-compass/internal/domain/skill"
)

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

type seedSkill struct {
	Name        string
	Category    string
	Description string
	Demand      float64
	Relevance   float64
	Resistance  float64
	Resources   []skill.LearningResource
}

var starterSkills = []seedSkill{
	{
		Name: "Go", Category: "Programming Language", Description: "Statically typed compiled language for services.",
		Demand: 0.8, Relevance: 0.85, Resistance: 0.7,
		Resources: []skill.LearningResource{{Title: "A Tour of Go", URL: "https://go.dev/tour", Type: "tutorial"}},
	},
	{
		Name: "Python", Category: "Programming Language", Description: "General purpose scripting and data language.",
		Demand: 0.9, Relevance: 0.85, Resistance: 0.6,
		Resources: []skill.LearningResource{{Title: "Python Tutorial", URL: "https://docs.python.org/3/tutorial/", Type: "documentation"}},
	},
	{
		Name: "SQL", Category: "Database", Description: "Relational querying and schema design.",
		Demand: 0.85, Relevance: 0.8, Resistance: 0.6,
		Resources: []skill.LearningResource{{Title: "PostgreSQL Tutorial", URL: "https://www.postgresql.org/docs/current/tutorial.html", Type: "documentation"}},
	},
	{
		Name: "PostgreSQL", Category: "Database", Description: "Operating and tuning PostgreSQL.",
		Demand: 0.75, Relevance: 0.8, Resistance: 0.65,
		Resources: []skill.LearningResource{{Title: "PostgreSQL Documentation", URL: "https://www.postgresql.org/docs/", Type: "documentation"}},
	},
	{
		Name: "Linux", Category: "DevOps", Description: "Shell, processes and system administration.",
		Demand: 0.7, Relevance: 0.75, Resistance: 0.7,
		Resources: []skill.LearningResource{{Title: "The Linux Command Line", URL: "https://linuxcommand.org/tlcl.php", Type: "book"}},
	},
	{
		Name: "Docker", Category: "DevOps", Description: "Building and running containers.",
		Demand: 0.8, Relevance: 0.8, Resistance: 0.6,
		Resources: []skill.LearningResource{{Title: "Docker Docs", URL: "https://docs.docker.com/get-started/", Type: "documentation"}},
	},
	{
		Name: "Kubernetes", Category: "DevOps", Description: "Container orchestration.",
		Demand: 0.8, Relevance: 0.85, Resistance: 0.7,
		Resources: []skill.LearningResource{{Title: "Kubernetes Basics", URL: "https://kubernetes.io/docs/tutorials/kubernetes-basics/", Type: "tutorial"}},
	},
	{
		Name: "Machine Learning", Category: "Data Science", Description: "Supervised and unsupervised modelling.",
		Demand: 0.85, Relevance: 0.9, Resistance: 0.75,
		Resources: []skill.LearningResource{{Title: "Machine Learning Crash Course", URL: "https://developers.google.com/machine-learning/crash-course", Type: "course"}},
	},
	{
		Name: "Statistics", Category: "Data Science", Description: "Probability, inference and experiment design.",
		Demand: 0.7, Relevance: 0.8, Resistance: 0.7,
		Resources: []skill.LearningResource{{Title: "OpenIntro Statistics", URL: "https://www.openintro.org/book/os/", Type: "book"}},
	},
}

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name", "category", "description", "learning_resources", "created_at"); err != nil {
		return err
	}

	return database.InTx(ctx, db, func(tx database.Tx) error {
		for _, it := range starterSkills {
			resources, err := json.Marshal(it.Resources)
			if err != nil {
				return fmt.Errorf("marshal resources %s: %w", it.Name, err)
			}
			_, err = tx.Exec(
				ctx,
				`INSERT INTO skills (id, name, category, description, learning_resources, industry_demand, future_relevance, automation_resistance)
				 VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7)
				 ON CONFLICT (name) DO NOTHING`,
				it.Name,
				it.Category,
				it.Description,
				resources,
				it.Demand,
				it.Relevance,
				it.Resistance,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
