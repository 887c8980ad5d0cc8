package handler

import (
	"fmt"

	apperrors "moviestream/internal/errors"
	"moviestream/internal/service"
	appvalidator "moviestream/internal/validator"
	"moviestream/pkg/response"

	"github.com/gin-gonic/gin"
)

// CRUDHandler serves list, get, create, update and delete for one resource.
// T is the entity, C its create payload and P its partial-update payload.
type CRUDHandler[T, C, P any] struct {
	service service.CRUDServicer[T, C, P]
	entity  string
}

// NewCRUDHandler creates a CRUDHandler. entity names the resource in
// confirmation messages.
func NewCRUDHandler[T, C, P any](svc service.CRUDServicer[T, C, P], entity string) *CRUDHandler[T, C, P] {
	return &CRUDHandler[T, C, P]{service: svc, entity: entity}
}

// List passes the query string through as filters.
func (h *CRUDHandler[T, C, P]) List(c *gin.Context) {
	filters := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			filters[key] = values[0]
		}
	}

	items, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, items)
}

func (h *CRUDHandler[T, C, P]) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	item, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, item)
}

func (h *CRUDHandler[T, C, P]) Create(c *gin.Context) {
	var req C
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, fmt.Sprintf("%s created", h.entity), item)
}

func (h *CRUDHandler[T, C, P]) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req P
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Message(c, fmt.Sprintf("%s updated", h.entity), item)
}

// Delete responds with the removed document.
func (h *CRUDHandler[T, C, P]) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	item, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Message(c, fmt.Sprintf("%s deleted", h.entity), item)
}

// pathID returns the :id parameter. An id that is not an ObjectID cannot
// match a document, so it is answered as not found without a lookup.
func (h *CRUDHandler[T, C, P]) pathID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if err := appvalidator.Instance().Var(id, "required,objectid"); err != nil {
		respondError(c, fmt.Errorf("%s %w", h.entity, apperrors.ErrNotFound))
		return "", false
	}
	return id, true
}
