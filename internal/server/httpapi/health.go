package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	StatusOk        = "ok"
	StatusDown      = "down"
	healthDBTimeout = 2 * time.Second
)

type healthResponse struct {
	Status            string `json:"status"`
	Database          string `json:"database"`
	CurrentSystemTime string `json:"current_system_time"`
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(c *gin.Context) {
	status, code := StatusOk, http.StatusOK
	if !h.databaseUp(c.Request.Context()) {
		status, code = StatusDown, http.StatusServiceUnavailable
	}
	c.JSON(code, healthResponse{
		Status:            status,
		Database:          status,
		CurrentSystemTime: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthHandler) databaseUp(ctx context.Context) bool {
	if h.db == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, healthDBTimeout)
	defer cancel()
	return h.db.PingContext(ctx) == nil
}
