package v1

import (
	"career-compass/internal/delivery/http/handler"
	"career-compass/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

// Handlers groups the v1 API handlers. Nil handlers are skipped.
type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Skill      *handler.SkillHandler
	Role       *handler.RoleHandler
	Assessment *handler.AssessmentHandler
	Gap        *handler.GapHandler
}

type routeRegistrar interface {
	RegisterRoutes(r fiber.Router)
}

type mount struct {
	prefix string
	h      routeRegistrar
}

// protectedMounts lists the handlers that sit behind the access token. The
// resource handlers mount their own prefixes.
func (h Handlers) protectedMounts() []mount {
	var out []mount
	if h.User != nil {
		out = append(out, mount{"/users", h.User})
	}
	if h.Skill != nil {
		out = append(out, mount{"", h.Skill})
	}
	if h.Role != nil {
		out = append(out, mount{"", h.Role})
	}
	if h.Assessment != nil {
		out = append(out, mount{"", h.Assessment})
	}
	if h.Gap != nil {
		out = append(out, mount{"", h.Gap})
	}
	return out
}

func Register(r fiber.Router, h Handlers, authMw *middleware.AuthMiddleware) {
	if r == nil || authMw == nil {
		return
	}

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}

	protected := r.Group("", authMw.Middleware())
	for _, m := range h.protectedMounts() {
		if m.prefix == "" {
			m.h.RegisterRoutes(protected)
			continue
		}
		m.h.RegisterRoutes(protected.Group(m.prefix))
	}
}
