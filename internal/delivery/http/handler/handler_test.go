package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/domain/assessment"
	"career-compass/internal/domain/gap"
	"career-compass/internal/domain/skill"
	"career-compass/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// newTestApp mounts register behind the error middleware and a stub that
// authenticates every request as userID.
func newTestApp(userID uuid.UUID, register func(r fiber.Router)) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	app.Use(func(c fiber.Ctx) error {
		if userID != uuid.Nil {
			c.Locals(middleware.CtxUserIDKey, userID)
		}
		return c.Next()
	})
	register(app)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) (int, envelope) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := app.Test(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(res.Body).Decode(&env))
	return res.StatusCode, env
}

type stubGapUsecase struct {
	analyzeErr error
	progress   usecase.ProgressInput
}

func (s *stubGapUsecase) Analyze(_ context.Context, userID, roleID uuid.UUID) (gap.Record, error) {
	if s.analyzeErr != nil {
		return gap.Record{}, s.analyzeErr
	}
	skillID := uuid.New()
	return gap.Record{
		ID:                      uuid.New(),
		UserID:                  userID,
		TargetRoleID:            roleID,
		GapAnalysis:             []gap.Gap{{SkillID: skillID, SkillName: "Go", CurrentLevel: 1, RequiredLevel: 4, Gap: 3, Priority: true}},
		PrioritySkills:          []uuid.UUID{skillID},
		EstimatedCompletionTime: 120,
	}, nil
}

func (s *stubGapUsecase) LearningPath(_ context.Context, _, _ uuid.UUID) (usecase.LearningPath, error) {
	return usecase.LearningPath{EstimatedCompletionTime: 40}, nil
}

func (s *stubGapUsecase) GetSavedGap(_ context.Context, _, _ uuid.UUID) (gap.Record, error) {
	return gap.Record{}, usecase.ErrGapNotFound
}

func (s *stubGapUsecase) RecordProgress(_ context.Context, userID, roleID uuid.UUID, in usecase.ProgressInput) (gap.Record, error) {
	s.progress = in
	return gap.Record{UserID: userID, TargetRoleID: roleID, TimeInvested: in.HoursInvested}, nil
}

func TestGapHandler_Analyze(t *testing.T) {
	me := uuid.New()
	app := newTestApp(me, NewGapHandler(&stubGapUsecase{}).RegisterRoutes)

	status, env := doRequest(t, app, http.MethodGet, "/gap-analysis/"+me.String()+"/"+uuid.NewString(), "")
	require.Equal(t, fiber.StatusOK, status)

	var body struct {
		GapAnalysis             []gap.Gap   `json:"gap_analysis"`
		PrioritySkills          []uuid.UUID `json:"priority_skills"`
		RecommendedPath         []any       `json:"recommended_path"`
		EstimatedCompletionTime int         `json:"estimated_completion_time"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &body))
	assert.Len(t, body.GapAnalysis, 1)
	assert.Equal(t, 3, body.GapAnalysis[0].Gap)
	assert.Len(t, body.PrioritySkills, 1)
	assert.NotNil(t, body.RecommendedPath)
	assert.Equal(t, 120, body.EstimatedCompletionTime)
}

func TestGapHandler_RejectsOtherUser(t *testing.T) {
	app := newTestApp(uuid.New(), NewGapHandler(&stubGapUsecase{}).RegisterRoutes)

	status, _ := doRequest(t, app, http.MethodGet, "/gap-analysis/"+uuid.NewString()+"/"+uuid.NewString(), "")
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = doRequest(t, app, http.MethodGet, "/learning-path/"+uuid.NewString()+"/"+uuid.NewString(), "")
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestGapHandler_ErrorStatuses(t *testing.T) {
	me := uuid.New()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"user not found", usecase.ErrUserNotFound, fiber.StatusNotFound},
		{"role not found", usecase.ErrRoleNotFound, fiber.StatusNotFound},
		{"invalid level", usecase.ErrInvalidLevel, fiber.StatusUnprocessableEntity},
		{"internal", errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(me, NewGapHandler(&stubGapUsecase{analyzeErr: tt.err}).RegisterRoutes)
			status, env := doRequest(t, app, http.MethodGet, "/gap-analysis/"+me.String()+"/"+uuid.NewString(), "")
			assert.Equal(t, tt.want, status)
			assert.Equal(t, tt.want, env.Status)
			if tt.want == fiber.StatusInternalServerError {
				assert.NotContains(t, env.Message, "boom")
			}
		})
	}
}

func TestGapHandler_BadIDsAndSaved(t *testing.T) {
	me := uuid.New()
	app := newTestApp(me, NewGapHandler(&stubGapUsecase{}).RegisterRoutes)

	status, _ := doRequest(t, app, http.MethodGet, "/gap-analysis/"+me.String()+"/not-a-uuid", "")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = doRequest(t, app, http.MethodGet, "/gap-analysis/"+me.String()+"/"+uuid.NewString()+"/saved", "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestGapHandler_RecordProgress(t *testing.T) {
	me := uuid.New()
	uc := &stubGapUsecase{}
	app := newTestApp(me, NewGapHandler(uc).RegisterRoutes)

	skillID := uuid.New()
	body := `{"hours_invested": 12, "milestone_achievements": [{"skill_id": "` + skillID.String() + `", "level": 2}]}`
	status, _ := doRequest(t, app, http.MethodPut, "/gap-analysis/"+me.String()+"/"+uuid.NewString()+"/progress", body)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 12, uc.progress.HoursInvested)
	require.Len(t, uc.progress.Achievements, 1)
	assert.Equal(t, skillID, uc.progress.Achievements[0].SkillID)
}

func TestGapHandler_RequiresAuth(t *testing.T) {
	app := newTestApp(uuid.Nil, NewGapHandler(&stubGapUsecase{}).RegisterRoutes)

	status, _ := doRequest(t, app, http.MethodGet, "/gap-analysis/"+uuid.NewString()+"/"+uuid.NewString(), "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

type stubSkillUsecase struct {
	createErr error
	addErr    error
}

func (s *stubSkillUsecase) ListSkills(_ context.Context, category string) ([]skill.Skill, error) {
	return []skill.Skill{{ID: uuid.New(), Name: "Go", Category: category}}, nil
}

func (s *stubSkillUsecase) GetSkill(_ context.Context, id uuid.UUID) (skill.Skill, error) {
	return skill.Skill{ID: id, Name: "Go"}, nil
}

func (s *stubSkillUsecase) CreateSkill(_ context.Context, in usecase.CreateSkillInput) (skill.Skill, error) {
	if s.createErr != nil {
		return skill.Skill{}, s.createErr
	}
	return skill.Skill{ID: uuid.New(), Name: in.Name}, nil
}

func (s *stubSkillUsecase) AddPrerequisite(_ context.Context, skillID, prerequisiteID uuid.UUID) (skill.Skill, error) {
	if s.addErr != nil {
		return skill.Skill{}, s.addErr
	}
	return skill.Skill{ID: skillID, Prerequisites: []skill.Prerequisite{{SkillID: prerequisiteID}}}, nil
}

func (s *stubSkillUsecase) GetMetrics(_ context.Context, _ uuid.UUID) (skill.Metrics, error) {
	return skill.Metrics{}, usecase.ErrMetricsNotFound
}

func (s *stubSkillUsecase) RecordMetrics(_ context.Context, m skill.Metrics) (skill.Metrics, error) {
	return m, nil
}

func TestSkillHandler_Create(t *testing.T) {
	app := newTestApp(uuid.New(), NewSkillHandler(&stubSkillUsecase{}).RegisterRoutes)

	status, env := doRequest(t, app, http.MethodPost, "/skills", `{"name": "Go"}`)
	require.Equal(t, fiber.StatusCreated, status)

	var body struct {
		Name          string `json:"name"`
		Prerequisites []any  `json:"prerequisites"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &body))
	assert.Equal(t, "Go", body.Name)
	assert.NotNil(t, body.Prerequisites)

	app = newTestApp(uuid.New(), NewSkillHandler(&stubSkillUsecase{createErr: usecase.ErrAlreadyExists}).RegisterRoutes)
	status, _ = doRequest(t, app, http.MethodPost, "/skills", `{"name": "Go"}`)
	assert.Equal(t, fiber.StatusConflict, status)
}

func TestSkillHandler_PrerequisiteAndMetrics(t *testing.T) {
	id := uuid.New()
	app := newTestApp(uuid.New(), NewSkillHandler(&stubSkillUsecase{addErr: usecase.ErrPrerequisiteCycle}).RegisterRoutes)

	status, _ := doRequest(t, app, http.MethodPost, "/skills/"+id.String()+"/prerequisites", `{"prerequisite_id": "`+uuid.NewString()+`"}`)
	assert.Equal(t, fiber.StatusConflict, status)

	status, _ = doRequest(t, app, http.MethodGet, "/skills/"+id.String()+"/metrics", "")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, env := doRequest(t, app, http.MethodPut, "/skills/"+id.String()+"/metrics", `{"job_posting_frequency": 40, "success_rate": 0.5}`)
	require.Equal(t, fiber.StatusOK, status)
	var body struct {
		SkillID             uuid.UUID `json:"skill_id"`
		JobPostingFrequency int       `json:"job_posting_frequency"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &body))
	assert.Equal(t, id, body.SkillID)
	assert.Equal(t, 40, body.JobPostingFrequency)
}

type stubAssessmentUsecase struct {
	upserts int
}

func (s *stubAssessmentUsecase) GetAssessment(_ context.Context, _, _ uuid.UUID) (assessment.Assessment, error) {
	return assessment.Assessment{}, usecase.ErrAssessmentNotFound
}

func (s *stubAssessmentUsecase) ListAssessments(_ context.Context, userID uuid.UUID) ([]assessment.Assessment, error) {
	return []assessment.Assessment{{ID: uuid.New(), UserID: userID, CurrentLevel: 2}}, nil
}

func (s *stubAssessmentUsecase) UpsertAssessment(_ context.Context, userID uuid.UUID, in usecase.UpsertAssessmentInput) (assessment.Assessment, error) {
	s.upserts++
	return assessment.Assessment{ID: uuid.New(), UserID: userID, SkillID: in.SkillID, CurrentLevel: in.CurrentLevel}, nil
}

func TestAssessmentHandler_SelfOnly(t *testing.T) {
	me := uuid.New()
	uc := &stubAssessmentUsecase{}
	app := newTestApp(me, NewAssessmentHandler(uc).RegisterRoutes)

	status, _ := doRequest(t, app, http.MethodGet, "/assessments/"+me.String(), "")
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = doRequest(t, app, http.MethodGet, "/assessments/"+uuid.NewString(), "")
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = doRequest(t, app, http.MethodGet, "/assessments/"+me.String()+"/"+uuid.NewString(), "")
	assert.Equal(t, fiber.StatusNotFound, status)

	body := `{"user_id": "` + uuid.NewString() + `", "skill_id": "` + uuid.NewString() + `", "current_level": 3}`
	status, _ = doRequest(t, app, http.MethodPost, "/assessments", body)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Zero(t, uc.upserts)

	body = `{"skill_id": "` + uuid.NewString() + `", "current_level": 3}`
	status, _ = doRequest(t, app, http.MethodPost, "/assessments", body)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 1, uc.upserts)
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	app := newTestApp(uuid.Nil, NewHealthHandler(stubPinger{}, stubPinger{err: errors.New("no redis")}).RegisterRoutes)
	status, env := doRequest(t, app, http.MethodGet, "/health", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"database":"up","cache":"down"}`, string(env.Data))

	app = newTestApp(uuid.Nil, NewHealthHandler(stubPinger{err: errors.New("no db")}, nil).RegisterRoutes)
	status, _ = doRequest(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
}
