package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"postmarket/internal/repository"
	"postmarket/internal/scoring"
	"postmarket/internal/service"
)

type AdminHandler struct {
	Repo     repository.Repository
	Pipeline *scoring.Pipeline
	Settings *service.SystemSettingsService
	Logger   *zap.Logger
}

func (h *AdminHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/admin")
	group.POST("/rescore", h.rescore)
	group.GET("/runs", h.listRuns)
	group.GET("/settings", h.listSettings)
	group.PUT("/settings/:key", h.setSetting)
}

// @Summary Trigger a full scoring pass
// @Description Rescores every post against every active market and rewrites all votes.
// @Tags admin
// @Success 200 {object} map[string]any
// @Router /api/v1/admin/rescore [post]
func (h *AdminHandler) rescore(c *gin.Context) {
	run, err := h.Pipeline.Run(c.Request.Context())
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("manual rescore failed", zap.Error(err))
		}
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, run, nil)
}

// @Summary List score runs
// @Tags admin
// @Param limit query int false "page size"
// @Param status query string false "running | completed | failed"
// @Success 200 {object} map[string]any
// @Router /api/v1/admin/runs [get]
func (h *AdminHandler) listRuns(c *gin.Context) {
	items, err := h.Repo.ListScoreRuns(c.Request.Context(), repository.ListScoreRunsParams{
		Limit:  intQuery(c, "limit", 50),
		Offset: intQuery(c, "offset", 0),
		Status: strQueryPtr(c, "status"),
	})
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}

// @Summary List system settings
// @Tags admin
// @Success 200 {object} map[string]any
// @Router /api/v1/admin/settings [get]
func (h *AdminHandler) listSettings(c *gin.Context) {
	items, err := h.Repo.ListSystemSettings(c.Request.Context(), repository.ListSystemSettingsParams{
		Limit:  intQuery(c, "limit", 200),
		Offset: intQuery(c, "offset", 0),
	})
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}

type setSettingRequest struct {
	Enabled bool `json:"enabled"`
}

// @Summary Flip a feature switch
// @Tags admin
// @Param key path string true "setting key"
// @Param body body setSettingRequest true "new state"
// @Success 200 {object} map[string]any
// @Router /api/v1/admin/settings/{key} [put]
func (h *AdminHandler) setSetting(c *gin.Context) {
	key := strings.TrimSpace(c.Param("key"))
	if key == "" {
		Error(c, http.StatusBadRequest, "setting key required", nil)
		return
	}
	var req setSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err := h.Settings.SetEnabled(c.Request.Context(), key, req.Enabled); err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"key": key, "enabled": req.Enabled}, nil)
}
