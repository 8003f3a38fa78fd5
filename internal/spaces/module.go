// Package spaces provides the spaces bounded context module. Spaces are
// the top-level containers users organize their notes, todo lists, and
// lists into.
package spaces

import (
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "later_backend/internal/http"
	"later_backend/internal/spaces/handler"
	"later_backend/internal/spaces/repository"
	"later_backend/internal/spaces/service"
	"later_backend/platform/events"
	"later_backend/platform/logger"
	"later_backend/platform/validator"
)

// Module is the spaces bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the spaces module.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "spaces"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts space routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/spaces")
	m.handler.RegisterRoutes(group)
}

var _ apphttp.Module = (*Module)(nil)
