package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"career-compass/internal/domain/assessment"
	"career-compass/internal/domain/gap"
	"career-compass/internal/domain/role"
	"career-compass/internal/domain/skill"
	"career-compass/internal/domain/user"
	"career-compass/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	errDB              = errors.New("db down")
	errUniqueViolation = &pgconn.PgError{Code: "23505"}
)

type mockUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]user.User
	err   error
}

func newMockUserRepo(ids ...uuid.UUID) *mockUserRepo {
	m := &mockUserRepo{users: map[uuid.UUID]user.User{}}
	for _, id := range ids {
		m.users[id] = user.User{ID: id, Email: id.String() + "@example.com"}
	}
	return m
}

func (m *mockUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.users[id]
	return ok, nil
}

func (m *mockUserRepo) CreateUser(_ context.Context, u user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return user.ErrEmailTaken
		}
	}
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return user.User{}, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *mockUserRepo) UpdateUser(_ context.Context, u user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return user.ErrNotFound
	}
	for id, existing := range m.users {
		if id != u.ID && existing.Email == u.Email {
			return user.ErrEmailTaken
		}
	}
	m.users[u.ID] = u
	return nil
}

type mockRoleRepo struct {
	mu           sync.Mutex
	roles        map[uuid.UUID]role.Role
	requirements map[uuid.UUID][]role.Requirement
	listCalls    int
	err          error
}

func newMockRoleRepo() *mockRoleRepo {
	return &mockRoleRepo{roles: map[uuid.UUID]role.Role{}, requirements: map[uuid.UUID][]role.Requirement{}}
}

func (m *mockRoleRepo) CreateRole(_ context.Context, r role.Role) (role.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return role.Role{}, m.err
	}
	r.ID = uuid.New()
	r.CreatedAt = time.Now()
	m.roles[r.ID] = r
	return r, nil
}

func (m *mockRoleRepo) GetRole(_ context.Context, id uuid.UUID) (role.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.roles[id]
	if !ok {
		return role.Role{}, repository.ErrRoleNotFound
	}
	return r, nil
}

func (m *mockRoleRepo) RoleExists(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.roles[id]
	return ok, nil
}

func (m *mockRoleRepo) ListRequirements(_ context.Context, roleID uuid.UUID) ([]role.Requirement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	out := make([]role.Requirement, len(m.requirements[roleID]))
	copy(out, m.requirements[roleID])
	return out, nil
}

func (m *mockRoleRepo) ReplaceRequirements(_ context.Context, roleID uuid.UUID, reqs []role.Requirement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requirements[roleID] = reqs
	return nil
}

type mockSkillRepo struct {
	skills  map[uuid.UUID]skill.Skill
	edges   [][2]uuid.UUID
	addErr  error
	created []skill.Skill
}

func newMockSkillRepo(ids ...uuid.UUID) *mockSkillRepo {
	m := &mockSkillRepo{skills: map[uuid.UUID]skill.Skill{}}
	for _, id := range ids {
		m.skills[id] = skill.Skill{ID: id, Name: id.String()}
	}
	return m
}

func (m *mockSkillRepo) ListSkills(_ context.Context, category string) ([]skill.Skill, error) {
	out := make([]skill.Skill, 0)
	for _, s := range m.skills {
		if category == "" || s.Category == category {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockSkillRepo) GetSkill(_ context.Context, id uuid.UUID) (skill.Skill, error) {
	s, ok := m.skills[id]
	if !ok {
		return skill.Skill{}, repository.ErrSkillNotFound
	}
	s.Prerequisites = make([]skill.Prerequisite, 0)
	for _, e := range m.edges {
		if e[0] == id {
			s.Prerequisites = append(s.Prerequisites, skill.Prerequisite{SkillID: e[1], Name: m.skills[e[1]].Name})
		}
	}
	return s, nil
}

func (m *mockSkillRepo) SkillExists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.skills[id]
	return ok, nil
}

func (m *mockSkillRepo) CreateSkill(_ context.Context, s skill.Skill) (skill.Skill, error) {
	for _, existing := range m.skills {
		if existing.Name == s.Name {
			return skill.Skill{}, errUniqueViolation
		}
	}
	s.ID = uuid.New()
	m.skills[s.ID] = s
	m.created = append(m.created, s)
	return s, nil
}

func (m *mockSkillRepo) AddPrerequisite(_ context.Context, skillID uuid.UUID, prerequisiteID uuid.UUID) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.edges = append(m.edges, [2]uuid.UUID{skillID, prerequisiteID})
	return nil
}

type mockMetricsRepo struct {
	items map[uuid.UUID]skill.Metrics
}

func (m *mockMetricsRepo) GetMetrics(_ context.Context, skillID uuid.UUID) (skill.Metrics, error) {
	v, ok := m.items[skillID]
	if !ok {
		return skill.Metrics{}, repository.ErrMetricsNotFound
	}
	return v, nil
}

func (m *mockMetricsRepo) UpsertMetrics(_ context.Context, v skill.Metrics) error {
	if m.items == nil {
		m.items = map[uuid.UUID]skill.Metrics{}
	}
	m.items[v.SkillID] = v
	return nil
}

type mockAssessmentRepo struct {
	mu        sync.Mutex
	items     []assessment.Assessment
	lastQuery []uuid.UUID
	upserted  []assessment.Assessment
}

func (m *mockAssessmentRepo) GetAssessment(_ context.Context, userID uuid.UUID, skillID uuid.UUID) (assessment.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.items {
		if a.UserID == userID && a.SkillID == skillID {
			return a, nil
		}
	}
	return assessment.Assessment{}, repository.ErrAssessmentNotFound
}

func (m *mockAssessmentRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]assessment.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]assessment.Assessment, 0)
	for _, a := range m.items {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAssessmentRepo) ListByUserAndSkills(_ context.Context, userID uuid.UUID, skillIDs []uuid.UUID) ([]assessment.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastQuery = skillIDs
	want := map[uuid.UUID]bool{}
	for _, id := range skillIDs {
		want[id] = true
	}
	out := make([]assessment.Assessment, 0)
	for _, a := range m.items {
		if a.UserID == userID && want[a.SkillID] {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAssessmentRepo) Upsert(_ context.Context, a assessment.Assessment) (assessment.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserted = append(m.upserted, a)
	for i, existing := range m.items {
		if existing.UserID == a.UserID && existing.SkillID == a.SkillID {
			a.ID = existing.ID
			m.items[i] = a
			return a, nil
		}
	}
	a.ID = uuid.New()
	m.items = append(m.items, a)
	return a, nil
}

type mockGapRepo struct {
	mu      sync.Mutex
	records map[[2]uuid.UUID]gap.Record
	saves   int
	saveErr error

	afterRead func()
}

func newMockGapRepo() *mockGapRepo {
	return &mockGapRepo{records: map[[2]uuid.UUID]gap.Record{}}
}

func (m *mockGapRepo) SaveGap(_ context.Context, rec gap.Record) (gap.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return gap.Record{}, m.saveErr
	}
	m.saves++
	k := [2]uuid.UUID{rec.UserID, rec.TargetRoleID}
	if prev, ok := m.records[k]; ok {
		rec.ID = prev.ID
		rec.TimeInvested = prev.TimeInvested
		rec.MilestoneAchievements = prev.MilestoneAchievements
		rec.CompletionPercentage = gap.CompletionPercentage(prev.TimeInvested, rec.EstimatedCompletionTime)
	} else {
		rec.ID = uuid.New()
	}
	m.records[k] = rec
	return rec, nil
}

func (m *mockGapRepo) GetGap(_ context.Context, userID uuid.UUID, roleID uuid.UUID) (gap.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[[2]uuid.UUID{userID, roleID}]
	if !ok {
		return gap.Record{}, repository.ErrSkillGapNotFound
	}
	return rec, nil
}

// AddProgress mirrors the single-statement increment of the Postgres
// repository: the read and write happen under one lock.
func (m *mockGapRepo) AddProgress(_ context.Context, userID uuid.UUID, roleID uuid.UUID, hours int, achievements []gap.Achievement) (gap.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := [2]uuid.UUID{userID, roleID}
	rec, ok := m.records[k]
	if !ok {
		return gap.Record{}, repository.ErrSkillGapNotFound
	}
	if m.afterRead != nil {
		m.afterRead()
	}
	rec.TimeInvested += hours
	rec.MilestoneAchievements = mergeAchievements(rec.MilestoneAchievements, achievements, time.Time{})
	rec.CompletionPercentage = gap.CompletionPercentage(rec.TimeInvested, rec.EstimatedCompletionTime)
	m.records[k] = rec
	return rec, nil
}

type mockCache struct {
	mu      sync.Mutex
	values   map[string]any
	deleted  []string
	patterns []string
}

func newMockCache() *mockCache {
	return &mockCache{values: map[string]any{}}
}

func (c *mockCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	if !ok {
		return false, nil
	}
	if dst, ok := out.(*[]role.Requirement); ok {
		*dst = v.([]role.Requirement)
	}
	return true, nil
}

func (c *mockCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *mockCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.values, k)
		c.deleted = append(c.deleted, k)
	}
	return nil
}

func (c *mockCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.values {
		if strings.HasPrefix(k, prefix) {
			delete(c.values, k)
		}
	}
	c.patterns = append(c.patterns, pattern)
	return nil
}

type notification struct {
	userID, roleID uuid.UUID
	gapCount       int
	priority       []uuid.UUID
	hours          int
}

type mockNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (n *mockNotifier) NotifySkillGapUpdated(userID, roleID uuid.UUID, gapCount int, priority []uuid.UUID, hours int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification{userID: userID, roleID: roleID, gapCount: gapCount, priority: priority, hours: hours})
}
