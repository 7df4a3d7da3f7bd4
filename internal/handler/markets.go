package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"postmarket/internal/repository"
	"postmarket/internal/service"
)

type MarketHandler struct {
	Query *service.QueryService
}

func (h *MarketHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/markets")
	group.GET("", h.listMarkets)
	group.GET("/:id", h.getMarket)
	group.GET("/:id/history", h.getMarketHistory)
}

// @Summary List markets
// @Description Markets sorted by total opinions descending, probabilities as percentages.
// @Tags markets
// @Param limit query int false "page size"
// @Param offset query int false "page offset"
// @Param status query string false "active | resolved"
// @Param category query string false "category filter"
// @Success 200 {object} map[string]any
// @Router /api/v1/markets [get]
func (h *MarketHandler) listMarkets(c *gin.Context) {
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	items, total, err := h.Query.ListMarkets(c.Request.Context(), repository.ListMarketsParams{
		Limit:    limit,
		Offset:   offset,
		Status:   strQueryPtr(c, "status"),
		Category: strQueryPtr(c, "category"),
	})
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

// @Summary Get one market
// @Description Market with vote summary and top votes per side.
// @Tags markets
// @Param id path int true "market id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/v1/markets/{id} [get]
func (h *MarketHandler) getMarket(c *gin.Context) {
	id, ok := marketID(c)
	if !ok {
		return
	}
	detail, err := h.Query.GetMarket(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMarketNotFound) {
			Error(c, http.StatusNotFound, "market not found", nil)
			return
		}
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, detail, nil)
}

// @Summary Get market probability history
// @Tags markets
// @Param id path int true "market id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/v1/markets/{id}/history [get]
func (h *MarketHandler) getMarketHistory(c *gin.Context) {
	id, ok := marketID(c)
	if !ok {
		return
	}
	history, err := h.Query.GetMarketHistory(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMarketNotFound) {
			Error(c, http.StatusNotFound, "market not found", nil)
			return
		}
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, history, nil)
}

func marketID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		Error(c, http.StatusBadRequest, "invalid market id", nil)
		return 0, false
	}
	return id, true
}
