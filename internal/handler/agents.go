package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"postmarket/internal/repository"
)

type AgentHandler struct {
	Repo repository.Repository
}

func (h *AgentHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/agents/decisions", h.listDecisions)
}

// @Summary List agent decisions
// @Tags agents
// @Param agent query string false "agent name filter"
// @Param market_id query int false "market filter"
// @Param limit query int false "page size"
// @Success 200 {object} map[string]any
// @Router /api/v1/agents/decisions [get]
func (h *AgentHandler) listDecisions(c *gin.Context) {
	params := repository.ListAgentDecisionsParams{
		Limit:     intQuery(c, "limit", 100),
		Offset:    intQuery(c, "offset", 0),
		AgentName: strQueryPtr(c, "agent"),
	}
	if raw := c.Query("market_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			params.MarketID = &id
		}
	}
	items, err := h.Repo.ListAgentDecisions(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}
