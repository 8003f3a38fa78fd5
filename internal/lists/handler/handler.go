package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"later_backend/internal/lists/service"
	"later_backend/internal/lists/transport"
	"later_backend/platform/httpkit"
	"later_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidListID    = "invalid list ID"
	msgInvalidItemID    = "invalid list item ID"
)

// Handler handles HTTP requests for lists and their items.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new lists handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.ListsBySpace)
	rg.POST("", h.CreateList)
	rg.GET("/:listId", h.GetListByID)
	rg.PUT("/:listId", h.UpdateList)
	rg.DELETE("/:listId", h.DeleteList)

	rg.GET("/:listId/items", h.ItemsByList)
	rg.POST("/:listId/items", h.CreateItem)
	rg.GET("/:listId/items/:id", h.GetItemByID)
	rg.PUT("/:listId/items/:id", h.UpdateItem)
	rg.DELETE("/:listId/items/:id", h.DeleteItem)
}

// ListsBySpace retrieves all lists in a space.
// GET /api/v1/lists?spaceId=...
func (h *Handler) ListsBySpace(c *gin.Context) {
	spaceID, err := uuid.Parse(c.Query("spaceId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid space ID", nil)
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.ListsBySpace(c.Request.Context(), identity.UserID(), spaceID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateList creates a new list.
// POST /api/v1/lists
func (h *Handler) CreateList(c *gin.Context) {
	var req transport.CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.CreateList(c.Request.Context(), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// GetListByID retrieves a list by ID.
// GET /api/v1/lists/:listId
func (h *Handler) GetListByID(c *gin.Context) {
	listID, identity := h.listID(c)
	if identity == nil {
		return
	}

	result, err := h.svc.GetListByID(c.Request.Context(), identity.UserID(), listID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateList updates a list.
// PUT /api/v1/lists/:listId
func (h *Handler) UpdateList(c *gin.Context) {
	listID, identity := h.listID(c)
	if identity == nil {
		return
	}

	var req transport.UpdateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.UpdateList(c.Request.Context(), identity.UserID(), listID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteList removes a list and its items.
// DELETE /api/v1/lists/:listId
func (h *Handler) DeleteList(c *gin.Context) {
	listID, identity := h.listID(c)
	if identity == nil {
		return
	}

	if err := h.svc.DeleteList(c.Request.Context(), identity.UserID(), listID); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

// ItemsByList retrieves all items in a list.
// GET /api/v1/lists/:listId/items
func (h *Handler) ItemsByList(c *gin.Context) {
	listID, identity := h.listID(c)
	if identity == nil {
		return
	}

	result, err := h.svc.ItemsByList(c.Request.Context(), identity.UserID(), listID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateItem creates a new list item.
// POST /api/v1/lists/:listId/items
func (h *Handler) CreateItem(c *gin.Context) {
	listID, identity := h.listID(c)
	if identity == nil {
		return
	}

	var req transport.CreateListItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.CreateItem(c.Request.Context(), identity.UserID(), listID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// GetItemByID retrieves a list item by ID.
// GET /api/v1/lists/:listId/items/:id
func (h *Handler) GetItemByID(c *gin.Context) {
	id, identity := h.itemID(c)
	if identity == nil {
		return
	}

	result, err := h.svc.GetItemByID(c.Request.Context(), identity.UserID(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateItem updates a list item.
// PUT /api/v1/lists/:listId/items/:id
func (h *Handler) UpdateItem(c *gin.Context) {
	id, identity := h.itemID(c)
	if identity == nil {
		return
	}

	var req transport.UpdateListItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.UpdateItem(c.Request.Context(), identity.UserID(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteItem removes a list item.
// DELETE /api/v1/lists/:listId/items/:id
func (h *Handler) DeleteItem(c *gin.Context) {
	id, identity := h.itemID(c)
	if identity == nil {
		return
	}

	if err := h.svc.DeleteItem(c.Request.Context(), identity.UserID(), id); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listID(c *gin.Context) (uuid.UUID, httpkit.Identity) {
	id, err := uuid.Parse(c.Param("listId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidListID, nil)
		return uuid.UUID{}, nil
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return uuid.UUID{}, nil
	}
	return id, identity
}

func (h *Handler) itemID(c *gin.Context) (uuid.UUID, httpkit.Identity) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidItemID, nil)
		return uuid.UUID{}, nil
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return uuid.UUID{}, nil
	}
	return id, identity
}
