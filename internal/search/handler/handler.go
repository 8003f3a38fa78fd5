package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"later_backend/internal/search/controller"
	"later_backend/internal/search/service"
	"later_backend/internal/search/session"
	"later_backend/internal/search/transport"
	"later_backend/platform/httpkit"
)

const msgInvalidRequest = "invalid request"

type Handler struct {
	svc      *service.Service
	sessions *session.Manager
}

func New(svc *service.Service, sessions *session.Manager) *Handler {
	return &Handler{svc: svc, sessions: sessions}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Search)

	sess := rg.Group("/sessions")
	sess.POST("", h.CreateSession)
	sess.PUT("/:id/query", h.UpdateQuery)
	sess.POST("/:id/clear", h.ClearSession)
	sess.DELETE("/:id", h.DeleteSession)
	sess.GET("/:id/events", h.StreamEvents)
}

// Search runs a one-shot search from query parameters.
//
// `type` may be repeated to restrict the searched content types; `tag`
// may be repeated to require a tag overlap on taggable types.
func (h *Handler) Search(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	req := transport.SearchRequest{
		Text:           c.Query("text"),
		SpaceID:        c.Query("spaceId"),
		Tags:           c.QueryArray("tag"),
		IncludeContent: c.Query("includeContent") == "true",
	}
	if values, ok := c.GetQueryArray("type"); ok {
		types := make([]transport.ContentType, 0, len(values))
		for _, v := range values {
			types = append(types, transport.ContentType(v))
		}
		req.ContentTypes = types
	}

	items, err := h.svc.Search(c.Request.Context(), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.SearchResponse{Items: items, Total: len(items)})
}

// CreateSession opens a live search session for the caller.
func (h *Handler) CreateSession(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	s := h.sessions.Create(c.Request.Context(), identity.UserID())
	httpkit.JSON(c, http.StatusCreated, transport.SessionResponse{SessionID: s.ID})
}

// UpdateQuery feeds a new query into the session's controller. The call
// returns immediately; results arrive on the session's event stream once
// the debounce window elapses.
func (h *Handler) UpdateQuery(c *gin.Context) {
	s := h.session(c)
	if s == nil {
		return
	}

	var req transport.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	s.Controller.Search(req)
	c.Status(http.StatusAccepted)
}

// ClearSession resets the session's controller to idle.
func (h *Handler) ClearSession(c *gin.Context) {
	s := h.session(c)
	if s == nil {
		return
	}

	s.Controller.Clear()
	c.Status(http.StatusNoContent)
}

// DeleteSession closes the session and releases its controller.
func (h *Handler) DeleteSession(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, "invalid session id")
		return
	}

	if err := h.sessions.Delete(id, identity.UserID()); err != nil {
		httpkit.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// StreamEvents streams the session's state snapshots as server-sent
// events. The stream starts with the current snapshot and ends when the
// session is closed or the client disconnects.
func (h *Handler) StreamEvents(c *gin.Context) {
	s := h.session(c)
	if s == nil {
		return
	}

	snapshots := s.Controller.Subscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case snap, ok := <-snapshots:
			if !ok {
				return false
			}
			c.SSEvent("state", snapshotEvent(snap))
			return true
		}
	})
}

// session resolves the :id path parameter to a session owned by the
// caller, writing the error response itself on failure.
func (h *Handler) session(c *gin.Context) *session.Session {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return nil
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, "invalid session id")
		return nil
	}

	s, err := h.sessions.Get(id, identity.UserID())
	if err != nil {
		httpkit.HandleError(c, err)
		return nil
	}
	return s
}

// snapshotEvent flattens a controller snapshot into an SSE payload.
func snapshotEvent(snap controller.Snapshot) gin.H {
	payload := gin.H{
		"state":   snap.State.String(),
		"results": snap.Results,
		"total":   len(snap.Results),
	}
	if snap.Err != nil {
		payload["error"] = snap.Err.Error()
	}
	return payload
}
