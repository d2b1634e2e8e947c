package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/graker/blogarchive/api"
	"github.com/graker/blogarchive/blog/application"
	"github.com/graker/blogarchive/blog/domain"
	"github.com/rs/zerolog/log"
)

// ArchiveHandler serves archive pages: the grouped post table and pager.
type ArchiveHandler struct {
	service *application.ArchiveService
}

// GetArchive handles year, month and day archive requests. Invalid and
// out-of-range requests are indistinguishable from missing resources: both
// produce 404.
func (h *ArchiveHandler) GetArchive(c *gin.Context) {
	req, ok := parseArchiveRequest(c)
	if !ok {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	ctx := c.Request.Context()

	table, err := h.service.Archive(ctx, req)
	if err != nil {
		if isNotFound(err) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		log.Error().Err(err).Int("year", req.Year).Msg("Failed to build archive")
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	pager, err := h.service.Pager(ctx, req)
	if err != nil {
		if isNotFound(err) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		log.Error().Err(err).Int("year", req.Year).Msg("Failed to build pager")
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, api.ArchiveResponse{Archive: table, Pager: pager})
}

// parseArchiveRequest reads year/month/day path params and the optional
// category query. Non-numeric params make the request invalid.
func parseArchiveRequest(c *gin.Context) (domain.ArchiveRequest, bool) {
	req := domain.ArchiveRequest{CategorySlug: c.Query("category")}

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year <= 0 {
		return req, false
	}
	req.Year = year

	if raw := c.Param("month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil {
			return req, false
		}
		req.Month = month
	}

	if raw := c.Param("day"); raw != "" {
		day, err := strconv.Atoi(raw)
		if err != nil {
			return req, false
		}
		req.Day = day
	}

	return req, true
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidRequest)
}
