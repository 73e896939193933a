package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/taskhub/internal/apierrors"
	"github.com/gin-gonic/gin"
)

type SubtaskHandler struct {
	responder
	subtasks SubtaskService
}

func NewSubtaskHandler(subtasks SubtaskService, r responder) *SubtaskHandler {
	return &SubtaskHandler{responder: r, subtasks: subtasks}
}

func (h *SubtaskHandler) List(c *gin.Context) {
	list, err := h.subtasks.List(c.Request.Context(), UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *SubtaskHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	sub, err := h.subtasks.Get(c.Request.Context(), UserID(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// Update answers 204; the parent task's status is recomputed server-side.
func (h *SubtaskHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var p subtaskPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		h.abort(c, http.StatusBadRequest, apierrors.MsgInvalidPayload, nil)
		return
	}
	if err := h.subtasks.Update(c.Request.Context(), UserID(c), id, p.toModel()); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SubtaskHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.subtasks.Delete(c.Request.Context(), UserID(c), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
