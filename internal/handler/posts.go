package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"postmarket/internal/models"
	"postmarket/internal/repository"
)

type PostHandler struct {
	Repo repository.Repository
}

func (h *PostHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/posts")
	group.GET("", h.listPosts)
	group.POST("", h.ingestPosts)
}

type ingestPostRequest struct {
	ID           string     `json:"id" binding:"required"`
	Title        string     `json:"title" binding:"required"`
	Content      string     `json:"content"`
	Author       string     `json:"author"`
	Karma        int        `json:"karma"`
	Upvotes      int        `json:"upvotes"`
	Downvotes    int        `json:"downvotes"`
	CommentCount int        `json:"comment_count"`
	CreatedAt    *time.Time `json:"created_at"`
}

// @Summary List ingested posts
// @Tags posts
// @Param limit query int false "page size"
// @Param offset query int false "page offset"
// @Param author query string false "author filter"
// @Success 200 {object} map[string]any
// @Router /api/v1/posts [get]
func (h *PostHandler) listPosts(c *gin.Context) {
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	params := repository.ListPostsParams{
		Limit:  limit,
		Offset: offset,
		Author: strQueryPtr(c, "author"),
	}
	total, err := h.Repo.CountPosts(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	items, err := h.Repo.ListPosts(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

// @Summary Ingest posts
// @Description Bulk insert; posts already stored are skipped (idempotent).
// @Tags posts
// @Accept json
// @Param posts body []ingestPostRequest true "posts"
// @Success 200 {object} map[string]any
// @Router /api/v1/posts [post]
func (h *PostHandler) ingestPosts(c *gin.Context) {
	var reqs []ingestPostRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	fetchedAt := time.Now().UTC()
	items := make([]models.Post, 0, len(reqs))
	for _, req := range reqs {
		raw, _ := json.Marshal(req)
		items = append(items, models.Post{
			ID:           req.ID,
			Title:        req.Title,
			Content:      req.Content,
			AuthorName:   req.Author,
			AuthorKarma:  req.Karma,
			Upvotes:      req.Upvotes,
			Downvotes:    req.Downvotes,
			CommentCount: req.CommentCount,
			CreatedAt:    req.CreatedAt,
			FetchedAt:    fetchedAt,
			RawJSON:      datatypes.JSON(raw),
		})
	}
	inserted, err := h.Repo.UpsertPosts(c.Request.Context(), items)
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"received": len(items), "inserted": inserted}, nil)
}
