package search

import (
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "later_backend/internal/http"
	"later_backend/internal/search/handler"
	"later_backend/internal/search/repository"
	"later_backend/internal/search/service"
	"later_backend/internal/search/session"
	"later_backend/platform/config"
	"later_backend/platform/logger"
)

type Module struct {
	handler  *handler.Handler
	sessions *session.Manager
}

func NewModule(pool *pgxpool.Pool, cfg config.SearchConfig, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	sessions := session.NewManager(svc, cfg.GetSearchDebounce(), log)
	h := handler.New(svc, sessions)

	return &Module{handler: h, sessions: sessions}
}

func (m *Module) Name() string {
	return "search"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/search")
	m.handler.RegisterRoutes(group)
}

// Shutdown closes every live search session.
func (m *Module) Shutdown() {
	m.sessions.Shutdown()
}

var _ apphttp.Module = (*Module)(nil)
