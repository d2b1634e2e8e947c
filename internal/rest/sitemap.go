package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graker/blogarchive/api"
	"github.com/graker/blogarchive/blog/application"
	"github.com/graker/blogarchive/blog/domain"
	"github.com/rs/zerolog/log"
)

// SitemapHandler serves the archive-year entries for the sitemap generator.
type SitemapHandler struct {
	service *application.SitemapService
	page    domain.SitemapPage
}

func (h *SitemapHandler) GetYears(c *gin.Context) {
	entries, err := h.service.Years(c.Request.Context(), h.page)
	if err != nil {
		log.Error().Err(err).Msg("Failed to enumerate sitemap years")
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, api.SitemapYearsResponse{Items: entries})
}
