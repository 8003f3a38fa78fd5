// Package auth provides the authentication bounded context module.
package auth

import (
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "later_backend/internal/http"
	"later_backend/internal/auth/handler"
	"later_backend/internal/auth/repository"
	"later_backend/internal/auth/service"
	"later_backend/platform/config"
	"later_backend/platform/events"
	"later_backend/platform/logger"
	"later_backend/platform/validator"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the auth module.
func NewModule(pool *pgxpool.Pool, cfg config.JWTConfig, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, bus, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts auth routes. Credential endpoints sit outside the
// protected group under the stricter auth rate limiter.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/auth")
	group.Use(ctx.AuthRateLimiter.RateLimit())
	group.POST("/signup", m.handler.SignUp)
	group.POST("/signin", m.handler.SignIn)
	group.POST("/refresh", m.handler.Refresh)
	group.POST("/signout", m.handler.SignOut)

	ctx.Protected.GET("/auth/me", m.handler.Me)
}

var _ apphttp.Module = (*Module)(nil)
