package gap

import (
	"errors"
	"testing"

	"career-compass/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_NoRequirements(t *testing.T) {
	a := NewAnalyzer(DefaultPolicy())

	res, err := a.Analyze(nil, []Assessment{{SkillID: uuid.New(), CurrentLevel: 3}})
	require.NoError(t, err)

	assert.Empty(t, res.GapAnalysis)
	assert.NotNil(t, res.GapAnalysis)
	assert.Empty(t, res.PrioritySkills)
	assert.Empty(t, res.RecommendedPath)
	assert.Equal(t, 0, res.EstimatedCompletionHours)
}

func TestAnalyze_ReferenceExample(t *testing.T) {
	a := NewAnalyzer(DefaultPolicy())
	skillA := uuid.New()
	skillB := uuid.New()

	reqs := []Requirement{
		{SkillID: skillA, SkillName: "A"},
		{SkillID: skillB, SkillName: "B"},
	}
	res, err := a.Analyze(reqs, []Assessment{{SkillID: skillA, CurrentLevel: 1}})
	require.NoError(t, err)

	require.Len(t, res.GapAnalysis, 2)
	assert.Equal(t, Gap{SkillID: skillB, SkillName: "B", CurrentLevel: 0, RequiredLevel: 4, Gap: 4, Priority: true}, res.GapAnalysis[0])
	assert.Equal(t, Gap{SkillID: skillA, SkillName: "A", CurrentLevel: 1, RequiredLevel: 4, Gap: 3, Priority: true}, res.GapAnalysis[1])
	assert.Equal(t, []uuid.UUID{skillB, skillA}, res.PrioritySkills)
	assert.Equal(t, 280, res.EstimatedCompletionHours)

	require.Len(t, res.RecommendedPath, 2)
	assert.Equal(t, skillB, res.RecommendedPath[0].SkillID)
	assert.Equal(t, 160, res.RecommendedPath[0].EstimatedTime)
	assert.Equal(t, 120, res.RecommendedPath[1].EstimatedTime)
}

func TestAnalyze_AlreadyProficient(t *testing.T) {
	a := NewAnalyzer(DefaultPolicy())
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	reqs := make([]Requirement, 0, len(ids))
	assessments := make([]Assessment, 0, len(ids))
	for _, id := range ids {
		reqs = append(reqs, Requirement{SkillID: id, SkillName: id.String()})
		assessments = append(assessments, Assessment{SkillID: id, CurrentLevel: 5})
	}

	res, err := a.Analyze(reqs, assessments)
	require.NoError(t, err)
	assert.Empty(t, res.GapAnalysis)
	assert.Empty(t, res.RecommendedPath)
	assert.Equal(t, 0, res.EstimatedCompletionHours)
}

func TestAnalyze_MetRequirementNeverAppears(t *testing.T) {
	a := NewAnalyzer(DefaultPolicy())
	met := uuid.New()
	exact := uuid.New()
	missing := uuid.New()

	res, err := a.Analyze(
		[]Requirement{
			{SkillID: met, SkillName: "met"},
			{SkillID: exact, SkillName: "exact", RequiredLevel: 3},
			{SkillID: missing, SkillName: "missing", RequiredLevel: 2},
		},
		[]Assessment{{SkillID: met, CurrentLevel: 5}, {SkillID: exact, CurrentLevel: 3}},
	)
	require.NoError(t, err)

	require.Len(t, res.GapAnalysis, 1)
	assert.Equal(t, missing, res.GapAnalysis[0].SkillID)
}

func TestAnalyze_PriorityThreshold(t *testing.T) {
	a := NewAnalyzer(DefaultPolicy())
	one := uuid.New()
	two := uuid.New()

	res, err := a.Analyze(
		[]Requirement{{SkillID: one, SkillName: "one"}, {SkillID: two, SkillName: "two"}},
		[]Assessment{{SkillID: one, CurrentLevel: 3}, {SkillID: two, CurrentLevel: 2}},
	)
	require.NoError(t, err)

	require.Len(t, res.GapAnalysis, 2)
	assert.Equal(t, two, res.GapAnalysis[0].SkillID)
	assert.True(t, res.GapAnalysis[0].Priority)
	assert.False(t, res.GapAnalysis[1].Priority)
	assert.Equal(t, []uuid.UUID{two}, res.PrioritySkills)
}

func TestAnalyze_StableTieBreakAndOrdering(t *testing.T) {
	a := NewAnalyzer(DefaultPolicy())
	ids := make([]uuid.UUID, 6)
	reqs := make([]Requirement, 0, len(ids))
	for i := range ids {
		ids[i] = uuid.New()
		reqs = append(reqs, Requirement{SkillID: ids[i], SkillName: string(rune('a' + i))})
	}
	assessments := []Assessment{
		{SkillID: ids[0], CurrentLevel: 2},
		{SkillID: ids[1], CurrentLevel: 1},
		{SkillID: ids[2], CurrentLevel: 2},
		{SkillID: ids[4], CurrentLevel: 1},
		{SkillID: ids[5], CurrentLevel: 3},
	}

	res, err := a.Analyze(reqs, assessments)
	require.NoError(t, err)

	got := make([]string, 0, len(res.GapAnalysis))
	for i, g := range res.GapAnalysis {
		got = append(got, g.SkillName)
		if i > 0 {
			assert.LessOrEqual(t, g.Gap, res.GapAnalysis[i-1].Gap)
		}
	}
	assert.Equal(t, []string{"d", "b", "e", "a", "c", "f"}, got)
}

func TestAnalyze_Deterministic(t *testing.T) {
	a := NewAnalyzer(DefaultPolicy())
	reqs := []Requirement{
		{SkillID: uuid.New(), SkillName: "x"},
		{SkillID: uuid.New(), SkillName: "y"},
		{SkillID: uuid.New(), SkillName: "z", RequiredLevel: 5},
	}
	assessments := []Assessment{{SkillID: reqs[0].SkillID, CurrentLevel: 2}}

	first, err := a.Analyze(reqs, assessments)
	require.NoError(t, err)
	second, err := a.Analyze(reqs, assessments)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnalyze_PathEntryDetails(t *testing.T) {
	a := NewAnalyzer(DefaultPolicy())
	target := uuid.New()
	prereq := uuid.New()

	res, err := a.Analyze(
		[]Requirement{{
			SkillID:           target,
			SkillName:         "Kubernetes",
			RequiredLevel:     4,
			Prerequisites:     []skill.Prerequisite{{SkillID: prereq, Name: "Docker"}},
			LearningResources: []skill.LearningResource{{Title: "Docs", URL: "https://kubernetes.io/docs"}},
		}},
		[]Assessment{{SkillID: target, CurrentLevel: 2}},
	)
	require.NoError(t, err)
	require.Len(t, res.RecommendedPath, 1)

	entry := res.RecommendedPath[0]
	assert.Equal(t, "Kubernetes", entry.Name)
	assert.Equal(t, 2, entry.CurrentLevel)
	assert.Equal(t, 4, entry.TargetLevel)
	assert.Equal(t, 80, entry.EstimatedTime)
	assert.Equal(t, []PrerequisiteStep{{SkillID: prereq, Name: "Docker", EstimatedTime: 20}}, entry.Prerequisites)
	assert.Len(t, entry.LearningResources, 1)

	require.Len(t, entry.Milestones, 2)
	assert.Equal(t, 3, entry.Milestones[0].Level)
	assert.Equal(t, "Achieve proficiency level 3", entry.Milestones[0].Description)
	assert.Len(t, entry.Milestones[0].AssessmentCriteria, 3)
	assert.Equal(t, 4, entry.Milestones[1].Level)
}

func TestAnalyze_CustomPolicy(t *testing.T) {
	a := NewAnalyzer(Policy{DefaultRequiredLevel: 3, MaxLevel: 5, PriorityThreshold: 3, HoursPerLevel: 10, PrerequisiteHours: 5})
	id := uuid.New()

	res, err := a.Analyze([]Requirement{{SkillID: id, SkillName: "Go"}}, nil)
	require.NoError(t, err)

	require.Len(t, res.GapAnalysis, 1)
	assert.Equal(t, 3, res.GapAnalysis[0].Gap)
	assert.True(t, res.GapAnalysis[0].Priority)
	assert.Equal(t, 30, res.EstimatedCompletionHours)
}

func TestAnalyze_InvalidLevels(t *testing.T) {
	a := NewAnalyzer(DefaultPolicy())
	id := uuid.New()

	_, err := a.Analyze([]Requirement{{SkillID: id, SkillName: "Go"}}, []Assessment{{SkillID: id, CurrentLevel: 6}})
	assert.True(t, errors.Is(err, ErrInvalidLevel))

	_, err = a.Analyze([]Requirement{{SkillID: id, SkillName: "Go"}}, []Assessment{{SkillID: id, CurrentLevel: -1}})
	assert.True(t, errors.Is(err, ErrInvalidLevel))

	_, err = a.Analyze([]Requirement{{SkillID: id, SkillName: "Go", RequiredLevel: 7}}, nil)
	assert.True(t, errors.Is(err, ErrInvalidLevel))
}

func TestAnalyze_DuplicateRequirementFirstWins(t *testing.T) {
	a := NewAnalyzer(DefaultPolicy())
	id := uuid.New()

	res, err := a.Analyze([]Requirement{
		{SkillID: id, SkillName: "Go", RequiredLevel: 2},
		{SkillID: id, SkillName: "Go", RequiredLevel: 5},
	}, nil)
	require.NoError(t, err)

	require.Len(t, res.GapAnalysis, 1)
	assert.Equal(t, 2, res.GapAnalysis[0].RequiredLevel)
}

func TestMilestones_Empty(t *testing.T) {
	assert.Empty(t, Milestones(4, 4))
	assert.Empty(t, Milestones(5, 4))
}
