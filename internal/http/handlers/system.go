package handlers

import (
	"encoding/json"
	"net/http"

	intconfig "railpass/internal/config"
	"railpass/internal/registry"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func DBCheck(c *gin.Context) {
	if intconfig.DB == nil {
		RespondError(c, http.StatusServiceUnavailable, "database not connected", nil)
		return
	}
	var count int
	if err := intconfig.DB.QueryRow("SELECT COUNT(*) FROM reservation_tasks").Scan(&count); err != nil {
		RespondError(c, http.StatusInternalServerError, "database query failed", err)
		return
	}
	RespondOK(c, gin.H{"reservation_tasks": count})
}

// RegistryHandlers exposes the action registry over HTTP so orchestrating
// callers can discover contracts and invoke by name.
type RegistryHandlers struct {
	Registry *registry.Registry
}

// GET /api/ops
func (h RegistryHandlers) ListOperations(c *gin.Context) {
	RespondOK(c, h.Registry.List())
}

type invokeRequest struct {
	Input json.RawMessage `json:"input"`
}

// POST /api/ops/:name
func (h RegistryHandlers) InvokeOperation(c *gin.Context) {
	var req invokeRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	result, err := h.Registry.Invoke(c.Request.Context(), c.Param("name"), req.Input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, json.RawMessage(result))
}
