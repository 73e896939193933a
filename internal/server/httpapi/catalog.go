package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/taskhub/internal/apierrors"
	"github.com/dmitrijs2005/taskhub/internal/server/models"
	"github.com/gin-gonic/gin"
)

type labelPayload struct {
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

type listPayload struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

// CatalogHandler serves labels and lists.
type CatalogHandler struct {
	responder
	catalog CatalogService
}

func NewCatalogHandler(catalog CatalogService, r responder) *CatalogHandler {
	return &CatalogHandler{responder: r, catalog: catalog}
}

func (h *CatalogHandler) ListLabels(c *gin.Context) {
	labels, err := h.catalog.Labels(c.Request.Context(), UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, labels)
}

func (h *CatalogHandler) CreateLabel(c *gin.Context) {
	var p labelPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		h.abort(c, http.StatusBadRequest, apierrors.MsgInvalidPayload, nil)
		return
	}
	label, err := h.catalog.CreateLabel(c.Request.Context(), UserID(c), &models.Label{Name: p.Name, Color: p.Color})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, label)
}

func (h *CatalogHandler) ListLists(c *gin.Context) {
	lists, err := h.catalog.Lists(c.Request.Context(), UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, lists)
}

func (h *CatalogHandler) CreateList(c *gin.Context) {
	var p listPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		h.abort(c, http.StatusBadRequest, apierrors.MsgInvalidPayload, nil)
		return
	}
	list, err := h.catalog.CreateList(c.Request.Context(), UserID(c), &models.List{Name: p.Name, Emoji: p.Emoji})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, list)
}
