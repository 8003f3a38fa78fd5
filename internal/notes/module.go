// Package notes provides the notes bounded context module.
package notes

import (
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "later_backend/internal/http"
	"later_backend/internal/notes/handler"
	"later_backend/internal/notes/repository"
	"later_backend/internal/notes/service"
	"later_backend/platform/logger"
	"later_backend/platform/validator"
)

// Module is the notes bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the notes module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "notes"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts note routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/notes")
	m.handler.RegisterRoutes(group)
}

var _ apphttp.Module = (*Module)(nil)
