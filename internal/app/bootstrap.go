package app

import (
	"context"
	"fmt"
	"strings"

	"career-compass/internal/config"
	"career-compass/internal/delivery/http/handler"
	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/delivery/http/routes"
	v1 "career-compass/internal/delivery/http/routes/v1"
	"career-compass/internal/domain/gap"
	"career-compass/internal/infrastructure/persistence/postgres"
	"career-compass/internal/pkg/jwt"
	"career-compass/internal/repository"
	"career-compass/internal/usecase"
	"career-compass/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber *fiber.App
}

// Bootstrap wires the container into a ready fiber app. The returned cleanup
// stops the websocket hub and releases the container.
func Bootstrap(cfg config.Config, log *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	hub := ws.NewHub(c.Log)
	go hub.Run(hubCtx)

	app := New(c, hub)

	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return app, cleanup, nil
}

func New(c *Container, hub *ws.Hub) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c, hub)

	return &App{Fiber: f}
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(c.Log).Middleware())
	app.Use(c.Metrics.Middleware())
	app.Use(middleware.NewErrorMiddleware(c.Log).Middleware())
}

func registerRoutes(app *fiber.App, c *Container, hub *ws.Hub) {
	if app == nil {
		return
	}

	cfg := c.Config
	jwtSvc := jwt.NewHMACServiceFromConfig(cfg.JWT, cfg.App.AppName)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := postgres.NewUserRepository(c.DB)
	skillRepo := repository.NewPostgresSkillRepository(c.DB)
	metricsRepo := repository.NewPostgresSkillMetricsRepository(c.DB)
	roleRepo := repository.NewPostgresRoleRepository(c.DB)
	assessmentRepo := repository.NewPostgresAssessmentRepository(c.DB)
	gapRepo := repository.NewPostgresSkillGapRepository(c.DB)

	analyzer := gap.NewAnalyzer(gap.Policy{
		DefaultRequiredLevel: cfg.Analyzer.DefaultRequiredLevel,
		MaxLevel:             cfg.Analyzer.MaxLevel,
		PriorityThreshold:    cfg.Analyzer.PriorityThreshold,
		HoursPerLevel:        cfg.Analyzer.HoursPerLevel,
		PrerequisiteHours:    cfg.Analyzer.PrerequisiteHours,
	})

	gapUC := usecase.NewGapUsecase(usecase.GapDeps{
		Users:       userRepo,
		Roles:       roleRepo,
		Assessments: assessmentRepo,
		Gaps:        gapRepo,
		Cache:       c.Cache,
		Notifier:    ws.NewNotifier(hub),
		Analyzer:    analyzer,
		Metrics:     c.Metrics,
		Log:         c.Log,
	})

	api := v1.Handlers{
		Auth:       handler.NewAuthHandler(usecase.NewAuthUsecase(userRepo, jwtSvc, c.Log)),
		User:       handler.NewUserHandler(usecase.NewUserUsecase(userRepo)),
		Skill:      handler.NewSkillHandler(usecase.NewSkillUsecase(skillRepo, metricsRepo, c.Cache, c.Log)),
		Role:       handler.NewRoleHandler(usecase.NewRoleUsecase(roleRepo, skillRepo, c.Cache, c.Metrics, c.Log)),
		Assessment: handler.NewAssessmentHandler(usecase.NewAssessmentUsecase(assessmentRepo, skillRepo, c.Log)),
		Gap:        handler.NewGapHandler(gapUC),
	}

	routes.NewRegistry(
		handler.NewHealthHandler(c.DB, c.Cache),
		api,
		ws.NewHandler(hub, c.Log),
		authMw,
		c.Metrics,
	).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
