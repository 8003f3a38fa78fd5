// Package tasks provides the tasks bounded context module covering todo
// lists, their items, and item reminders.
package tasks

import (
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "later_backend/internal/http"
	"later_backend/internal/tasks/handler"
	"later_backend/internal/tasks/repository"
	"later_backend/internal/tasks/service"
	"later_backend/platform/events"
	"later_backend/platform/logger"
	"later_backend/platform/validator"
)

// Module is the tasks bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the tasks module.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "tasks"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts todo list routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/todo-lists")
	m.handler.RegisterRoutes(group)
}

var _ apphttp.Module = (*Module)(nil)
