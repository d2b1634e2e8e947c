package rest

import (
	"github.com/gin-gonic/gin"
	"github.com/graker/blogarchive/blog/application"
	"github.com/graker/blogarchive/blog/domain"
)

// NewApi registers all route groups on the router given
func NewApi(
	router *gin.Engine,
	archive *application.ArchiveService,
	sitemap *application.SitemapService,
	random *application.RandomPostsService,
	sitemapPage domain.SitemapPage,
) {
	archiveHandler := &ArchiveHandler{service: archive}
	archiveV1 := router.Group("archive/v1")
	{
		archiveV1.GET("/:year", archiveHandler.GetArchive)
		archiveV1.GET("/:year/:month", archiveHandler.GetArchive)
		archiveV1.GET("/:year/:month/:day", archiveHandler.GetArchive)
	}

	sitemapHandler := &SitemapHandler{service: sitemap, page: sitemapPage}
	sitemapV1 := router.Group("sitemap/v1")
	{
		sitemapV1.GET("/years", sitemapHandler.GetYears)
	}

	postsHandler := &PostsHandler{random: random}
	postsV1 := router.Group("posts/v1")
	{
		postsV1.GET("/random", postsHandler.GetRandom)
	}
}
