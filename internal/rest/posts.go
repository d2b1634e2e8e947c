package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/graker/blogarchive/api"
	"github.com/graker/blogarchive/blog/application"
	"github.com/rs/zerolog/log"
)

// PostsHandler serves post listings that sit next to the archive pages.
type PostsHandler struct {
	random *application.RandomPostsService
}

func (h *PostsHandler) GetRandom(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("count", "5"))
	if err != nil || count <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "count must be a positive number"})
		return
	}

	posts, err := h.random.Posts(c.Request.Context(), count)
	if err != nil {
		log.Error().Err(err).Msg("Failed to pick random posts")
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	out := make([]api.RandomPost, 0, len(posts))
	for _, p := range posts {
		out = append(out, api.RandomPost{
			Title:       p.Title,
			Slug:        p.Slug,
			Excerpt:     p.Excerpt,
			PublishedAt: p.PublishedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, out)
}
