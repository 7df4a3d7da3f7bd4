package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type apiResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    any            `json:"data,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func Ok(c *gin.Context, data any, meta map[string]any) {
	c.JSON(http.StatusOK, apiResponse{
		Code:    0,
		Message: "ok",
		Data:    data,
		Meta:    meta,
	})
}

func Error(c *gin.Context, status int, message string, meta map[string]any) {
	c.JSON(status, apiResponse{
		Code:    status,
		Message: message,
		Meta:    meta,
	})
}

func intQuery(c *gin.Context, key string, def int) int {
	if val := c.Query(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}

func strQueryPtr(c *gin.Context, key string) *string {
	if val := c.Query(key); val != "" {
		return &val
	}
	return nil
}

func paginationMeta(limit, offset int, total int64) map[string]any {
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	return map[string]any{
		"limit":    limit,
		"offset":   offset,
		"total":    total,
		"has_next": int64(offset+limit) < total,
	}
}
