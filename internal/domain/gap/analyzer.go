package gap

import (
	"errors"
	"fmt"
	"sort"

	"career-compass/internal/domain/skill"

	"github.com/google/uuid"
)

var ErrInvalidLevel = errors.New("proficiency level out of range")

// Policy holds the tunable values of the analysis.
type Policy struct {
	DefaultRequiredLevel int
	MaxLevel             int
	PriorityThreshold    int
	HoursPerLevel        int
	PrerequisiteHours    int
}

func DefaultPolicy() Policy {
	return Policy{
		DefaultRequiredLevel: 4,
		MaxLevel:             5,
		PriorityThreshold:    2,
		HoursPerLevel:        40,
		PrerequisiteHours:    20,
	}
}

func (p Policy) withDefaults() Policy {
	d := DefaultPolicy()
	if p.MaxLevel <= 0 {
		p.MaxLevel = d.MaxLevel
	}
	if p.DefaultRequiredLevel <= 0 {
		p.DefaultRequiredLevel = d.DefaultRequiredLevel
	}
	if p.DefaultRequiredLevel > p.MaxLevel {
		p.DefaultRequiredLevel = p.MaxLevel
	}
	if p.PriorityThreshold <= 0 {
		p.PriorityThreshold = d.PriorityThreshold
	}
	if p.HoursPerLevel < 0 {
		p.HoursPerLevel = 0
	}
	if p.PrerequisiteHours < 0 {
		p.PrerequisiteHours = 0
	}
	return p
}

// Requirement is one skill a role needs. RequiredLevel 0 selects the policy
// default.
type Requirement struct {
	SkillID           uuid.UUID
	SkillName         string
	RequiredLevel     int
	Prerequisites     []skill.Prerequisite
	LearningResources []skill.LearningResource
}

type Assessment struct {
	SkillID      uuid.UUID
	CurrentLevel int
}

type Gap struct {
	SkillID       uuid.UUID `json:"skill_id"`
	SkillName     string    `json:"skill_name"`
	CurrentLevel  int       `json:"current_level"`
	RequiredLevel int       `json:"required_level"`
	Gap           int       `json:"gap"`
	Priority      bool      `json:"priority"`
}

type PrerequisiteStep struct {
	SkillID       uuid.UUID `json:"skill_id"`
	Name          string    `json:"name"`
	EstimatedTime int       `json:"estimated_time"`
}

type Milestone struct {
	Level              int      `json:"level"`
	Description        string   `json:"description"`
	AssessmentCriteria []string `json:"assessment_criteria"`
}

type PathEntry struct {
	SkillID           uuid.UUID                `json:"skill_id"`
	Name              string                   `json:"name"`
	CurrentLevel      int                      `json:"current_level"`
	TargetLevel       int                      `json:"target_level"`
	Prerequisites     []PrerequisiteStep       `json:"prerequisites"`
	LearningResources []skill.LearningResource `json:"learning_resources"`
	EstimatedTime     int                      `json:"estimated_time"`
	Milestones        []Milestone              `json:"milestones"`
}

type Result struct {
	GapAnalysis              []Gap
	PrioritySkills           []uuid.UUID
	RecommendedPath          []PathEntry
	EstimatedCompletionHours int
}

type Analyzer struct {
	policy Policy
}

func NewAnalyzer(p Policy) *Analyzer {
	return &Analyzer{policy: p.withDefaults()}
}

func (a *Analyzer) Policy() Policy {
	return a.policy
}

// Analyze compares the assessed levels with the required ones and returns the
// gaps ranked largest first together with a learning path. Requirements keep
// their given order on equal gaps. Any level outside the proficiency scale
// fails the whole analysis.
func (a *Analyzer) Analyze(reqs []Requirement, assessments []Assessment) (Result, error) {
	p := a.policy

	currentBySkillID := make(map[uuid.UUID]int, len(assessments))
	for _, as := range assessments {
		if as.SkillID == uuid.Nil {
			continue
		}
		if as.CurrentLevel < 0 || as.CurrentLevel > p.MaxLevel {
			return Result{}, fmt.Errorf("%w: skill %s current level %d", ErrInvalidLevel, as.SkillID, as.CurrentLevel)
		}
		currentBySkillID[as.SkillID] = as.CurrentLevel
	}

	seen := make(map[uuid.UUID]struct{}, len(reqs))
	gaps := make([]Gap, 0, len(reqs))
	entries := make(map[uuid.UUID]Requirement, len(reqs))

	for _, r := range reqs {
		if r.SkillID == uuid.Nil {
			continue
		}
		if _, dup := seen[r.SkillID]; dup {
			continue
		}
		seen[r.SkillID] = struct{}{}

		required := r.RequiredLevel
		if required == 0 {
			required = p.DefaultRequiredLevel
		}
		if required < 1 || required > p.MaxLevel {
			return Result{}, fmt.Errorf("%w: skill %s required level %d", ErrInvalidLevel, r.SkillID, required)
		}

		current := currentBySkillID[r.SkillID]
		diff := required - current
		if diff <= 0 {
			continue
		}

		gaps = append(gaps, Gap{
			SkillID:       r.SkillID,
			SkillName:     r.SkillName,
			CurrentLevel:  current,
			RequiredLevel: required,
			Gap:           diff,
			Priority:      diff >= p.PriorityThreshold,
		})
		entries[r.SkillID] = r
	}

	sort.SliceStable(gaps, func(i, j int) bool { return gaps[i].Gap > gaps[j].Gap })

	res := Result{
		GapAnalysis:     gaps,
		PrioritySkills:  make([]uuid.UUID, 0),
		RecommendedPath: make([]PathEntry, 0, len(gaps)),
	}
	for _, g := range gaps {
		if g.Priority {
			res.PrioritySkills = append(res.PrioritySkills, g.SkillID)
		}
		entry := a.pathEntry(g, entries[g.SkillID])
		res.EstimatedCompletionHours += entry.EstimatedTime
		res.RecommendedPath = append(res.RecommendedPath, entry)
	}

	return res, nil
}

func (a *Analyzer) pathEntry(g Gap, r Requirement) PathEntry {
	prereqs := make([]PrerequisiteStep, 0, len(r.Prerequisites))
	for _, pr := range r.Prerequisites {
		prereqs = append(prereqs, PrerequisiteStep{
			SkillID:       pr.SkillID,
			Name:          pr.Name,
			EstimatedTime: a.policy.PrerequisiteHours,
		})
	}

	resources := r.LearningResources
	if resources == nil {
		resources = make([]skill.LearningResource, 0)
	}

	return PathEntry{
		SkillID:           g.SkillID,
		Name:              g.SkillName,
		CurrentLevel:      g.CurrentLevel,
		TargetLevel:       g.RequiredLevel,
		Prerequisites:     prereqs,
		LearningResources: resources,
		EstimatedTime:     g.Gap * a.policy.HoursPerLevel,
		Milestones:        Milestones(g.CurrentLevel, g.RequiredLevel),
	}
}

// Milestones returns one checkpoint per level in (current, target].
func Milestones(current, target int) []Milestone {
	out := make([]Milestone, 0)
	for level := current + 1; level <= target; level++ {
		out = append(out, Milestone{
			Level:       level,
			Description: fmt.Sprintf("Achieve proficiency level %d", level),
			AssessmentCriteria: []string{
				fmt.Sprintf("Complete practical exercises for level %d", level),
				fmt.Sprintf("Pass assessment for level %d", level),
				"Demonstrate skills in real-world scenarios",
			},
		})
	}
	return out
}
