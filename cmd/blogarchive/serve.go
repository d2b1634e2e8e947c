package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/graker/blogarchive/blog/application"
	"github.com/graker/blogarchive/blog/domain"
	"github.com/graker/blogarchive/blog/persistence"
	"github.com/graker/blogarchive/internal/middleware"
	"github.com/graker/blogarchive/internal/rest"
	"github.com/graker/blogarchive/shared/db/sqlite"
)

const (
	defaultPort     = 8080
	shutdownTimeout = 5 * time.Second
)

// page identifiers resolved by the URL builder
const (
	archivePage  = "archive"
	postPage     = "post"
	categoryPage = "category"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the archive HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	database := sqlite.NewSQLiteDB(sqlite.NewSQLiteConfig())
	if err := database.Connect(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	postRepo := persistence.NewPostRepository(database.DB())
	categoryRepo := persistence.NewCategoryRepository(database.DB())

	urls := application.NewPageURLBuilder(os.Getenv("BLOGARCHIVE_BASE_URL"), map[string]string{
		archivePage:  "/archive/{year}/{month}/{day}",
		postPage:     "/blog/post/{slug}",
		categoryPage: "/blog/category/{slug}",
	})

	archiveService := application.NewArchiveService(postRepo, categoryRepo, urls, application.ArchiveConfig{
		ArchivePage:  archivePage,
		PostPage:     postPage,
		CategoryPage: categoryPage,
		Locale:       os.Getenv("BLOGARCHIVE_LOCALE"),
	})

	sitemapService := application.NewSitemapService(postRepo, archiveService.Bounds(), urls, nil, nil)
	randomService := application.NewRandomPostsService(postRepo, randomCacheTTL(), nil)

	sitemapPage := domain.SitemapPage{
		ID:         archivePage,
		YearParam:  "year",
		MonthParam: "month",
		DayParam:   "day",
	}

	router := gin.New()
	router.Use(middleware.LoggingMiddleware())
	router.Use(gin.CustomRecovery(middleware.HandlePanics()))
	rest.NewApi(router, archiveService, sitemapService, randomService, sitemapPage)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port()),
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Starting archive server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	log.Info().Msg("Server stopped")
	return nil
}

func port() int {
	if raw := os.Getenv("BLOGARCHIVE_PORT"); raw != "" {
		if p, err := strconv.Atoi(raw); err == nil && p > 0 {
			return p
		}
		log.Warn().Str("port", raw).Msg("Ignoring invalid BLOGARCHIVE_PORT")
	}
	return defaultPort
}

func randomCacheTTL() time.Duration {
	raw := os.Getenv("BLOGARCHIVE_RANDOM_CACHE_MINUTES")
	if raw == "" {
		return 0
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes < 0 {
		log.Warn().Str("minutes", raw).Msg("Ignoring invalid BLOGARCHIVE_RANDOM_CACHE_MINUTES")
		return 0
	}
	return time.Duration(minutes) * time.Minute
}
