package seeder

import (
	"context"
	"errors"
	"testing"

	"career-compass/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nopDB satisfies database.DB for seeders that never touch it.
type nopDB struct{ database.DB }

type recordingSeeder struct {
	name  string
	err   error
	calls *[]string
}

func (s recordingSeeder) Name() string { return s.name }

func (s recordingSeeder) Run(context.Context, database.DB) error {
	*s.calls = append(*s.calls, s.name)
	return s.err
}

func TestRunner_RunsInOrderAndStopsOnError(t *testing.T) {
	var calls []string
	boom := errors.New("boom")

	err := Runner{Seeders: []Seeder{
		recordingSeeder{name: "skills", calls: &calls},
		nil,
		recordingSeeder{name: "roles", err: boom, calls: &calls},
		recordingSeeder{name: "metrics", calls: &calls},
	}}.Run(context.Background(), nopDB{})

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "seed roles")
	assert.Equal(t, []string{"skills", "roles"}, calls)
}

func TestRunner_NilDB(t *testing.T) {
	assert.Error(t, Runner{Seeders: Defaults()}.Run(context.Background(), nil))
}

func TestDefaults_Order(t *testing.T) {
	names := make([]string, 0)
	for _, s := range Defaults() {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"skills", "skill_prerequisites", "roles", "skill_metrics"}, names)
}

func TestMissingColumns(t *testing.T) {
	existing := map[string]struct{}{"id": {}, "name": {}}

	assert.NoError(t, missingColumns("skills", existing, []string{"id", "name"}))

	err := missingColumns("skills", existing, []string{"id", "category", "created_at"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category, created_at")
}

func TestStarterCatalogConsistency(t *testing.T) {
	names := map[string]bool{}
	for _, s := range starterSkills {
		assert.False(t, names[s.Name], "duplicate skill %s", s.Name)
		names[s.Name] = true
	}
	for _, r := range starterRoles {
		for _, req := range r.Requirements {
			assert.True(t, names[req.Skill], "role %s references unknown skill %s", r.Title, req.Skill)
			if req.Level != nil {
				assert.GreaterOrEqual(t, *req.Level, 1)
				assert.LessOrEqual(t, *req.Level, 5)
			}
		}
	}
	for _, edge := range starterPrerequisites {
		assert.True(t, names[edge[0]] && names[edge[1]], "unknown prerequisite edge %v", edge)
	}
}
