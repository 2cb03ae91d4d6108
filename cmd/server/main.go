// @title           DesignSight API
// @version         1.0.0
// @description     Backend API for collaborative design review. Handles projects, image uploads, AI generated and manual feedback, threaded comments, overlay layout and JSON/PDF exports.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:4000
// @BasePath  /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token. Only required on maintenance routes when a secret is configured.

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/sync/errgroup"

	"designsight-backend/docs"
	"designsight-backend/internal/analysis"
	"designsight-backend/internal/config"
	"designsight-backend/internal/database"
	"designsight-backend/internal/export"
	"designsight-backend/internal/handlers"
	"designsight-backend/internal/middleware"
	"designsight-backend/internal/realtime"
	"designsight-backend/internal/services"
	"designsight-backend/internal/supabase"
	"designsight-backend/internal/vision"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	configureSwagger(cfg.BaseURL)

	// Document store
	db, err := database.NewDatabaseClient(ctx, database.Cfg{
		URI:  cfg.MongoURI,
		User: cfg.MongoUser,
		Pass: cfg.MongoPassword,
		Name: cfg.MongoDatabase,
	})
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := db.Close(closeCtx); err != nil {
			logger.Warn("failed to close database", "error", err)
		}
	}()

	if err := database.NewMigrator(db.Database(), logger).Run(ctx); err != nil {
		return err
	}
	logger.Info("migrations completed")

	// Blob store
	supabaseClient, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey)
	if err != nil {
		return err
	}
	storageClient := supabase.NewStorageClient(supabaseClient, cfg.SupabaseStorageBucket)
	if err := storageClient.EnsureBucket(ctx); err != nil {
		// uploads will surface the problem; the rest of the API still works
		logger.Warn("failed to ensure storage bucket", "bucket", storageClient.Bucket(), "error", err)
	}

	// Realtime
	hub := realtime.NewHub(logger)
	publisher := realtime.NewPublisher(hub)
	tracker := realtime.NewTracker()
	unwatch := publisher.WatchTracker(tracker)
	defer unwatch()

	// AI analysis
	if cfg.VisionAPIKey == "" {
		logger.Warn("GOOGLE_VISION_API_KEY not set, AI analysis requests will fail")
	}
	visionClient := vision.NewClient(cfg.VisionAPIBaseURL, cfg.VisionAPIKey, cfg.VisionTimeout)
	analyzer := analysis.NewAnalyzer(visionClient, storageClient, logger)

	renderer := export.NewChromeRenderer(cfg.ChromiumPath, cfg.PDFTimeout)

	// Services
	projectService := services.NewProjectService(db, logger)
	imageService := services.NewImageService(db, storageClient, publisher, cfg.MaxUploadBytes, cfg.SignedURLExpiry, logger)
	feedbackService := services.NewFeedbackService(db, publisher, logger)
	commentService := services.NewCommentService(db, publisher, logger)
	analysisService := services.NewAnalysisService(projectService, db, analyzer, publisher, logger)
	exportService := services.NewExportService(projectService, db, renderer, cfg.BaseURL, logger)
	maintenanceService := services.NewMaintenanceService(db, storageClient, logger)
	overlayService := services.NewOverlayService(projectService, db)

	// Handlers
	healthHandler := handlers.NewHealthHandler(cfg.Environment)
	projectsHandler := handlers.NewProjectsHandler(projectService)
	uploadHandler := handlers.NewUploadHandler(imageService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	commentsHandler := handlers.NewCommentsHandler(commentService)
	aiHandler := handlers.NewAIHandler(analysisService)
	exportHandler := handlers.NewExportHandler(exportService)
	maintenanceHandler := handlers.NewMaintenanceHandler(maintenanceService)
	overlayHandler := handlers.NewOverlayHandler(overlayService)
	eventsHandler := handlers.NewEventsHandler(hub)

	router := gin.New()
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestLogger(logger))
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", healthHandler.Health)

	api := router.Group("/api")
	// the websocket stays outside the in-flight counter
	api.GET("/events", eventsHandler.Events)

	tracked := api.Group("")
	tracked.Use(middleware.InFlight(tracker))

	// Projects
	tracked.GET("/projects", projectsHandler.ListProjects)
	tracked.POST("/projects", projectsHandler.CreateProject)
	tracked.GET("/projects/:id", projectsHandler.GetProject)
	tracked.PUT("/projects/:id", projectsHandler.UpdateProject)
	tracked.DELETE("/projects/:id", projectsHandler.DeleteProject)

	// Images
	tracked.POST("/upload/:projectId", uploadHandler.Upload)
	tracked.GET("/upload/image/:imageId", uploadHandler.ImageURL)
	tracked.GET("/upload/image/:imageId/file", uploadHandler.ImageFile)

	// Feedback
	tracked.GET("/feedback/project/:projectId", feedbackHandler.ListByProject)
	tracked.GET("/feedback/roles/:role", feedbackHandler.ListByRole)
	tracked.GET("/feedback/:id", feedbackHandler.GetFeedback)
	tracked.POST("/feedback", feedbackHandler.CreateFeedback)
	tracked.PUT("/feedback/:id", feedbackHandler.UpdateFeedback)
	tracked.DELETE("/feedback/:id", feedbackHandler.DeleteFeedback)

	// Comments
	tracked.GET("/comments/feedback/:feedbackId", commentsHandler.Thread)
	tracked.POST("/comments", commentsHandler.CreateComment)
	tracked.PUT("/comments/:id", commentsHandler.UpdateComment)
	tracked.DELETE("/comments/:id", commentsHandler.DeleteComment)

	// AI
	tracked.POST("/ai/analyze/:projectId/:imageId", aiHandler.Analyze)
	tracked.GET("/ai/analysis/:projectId/:imageId", aiHandler.Results)

	// Export
	tracked.POST("/export/json", exportHandler.ExportJSON)
	tracked.POST("/export/pdf", exportHandler.ExportPDF)
	tracked.GET("/export/preview/:projectId", exportHandler.Preview)
	tracked.GET("/export/preview/:projectId/:imageId", exportHandler.Preview)

	// Overlay
	tracked.GET("/overlay/:projectId/:imageId", overlayHandler.Marks)
	tracked.POST("/overlay/:projectId/:imageId/click", overlayHandler.Click)

	// Maintenance
	maintenance := tracked.Group("/maintenance")
	maintenance.Use(middleware.MaintenanceAuth(cfg.MaintenanceJWTSecret))
	maintenance.GET("/images/verify", maintenanceHandler.VerifyImages)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run()
		return nil
	})

	g.Go(func() error {
		logger.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		hub.Shutdown()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// configureSwagger points the generated docs at the public base URL.
func configureSwagger(base string) {
	if base == "" {
		return
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return
	}
	docs.SwaggerInfo.Host = baseURL.Host
	if baseURL.Scheme == "https" {
		docs.SwaggerInfo.Schemes = []string{"https", "http"}
	} else {
		docs.SwaggerInfo.Schemes = []string{"http", "https"}
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	cfg.ExposeHeaders = []string{"Content-Disposition"}

	allowed := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			allowed = append(allowed, o)
		}
	}
	if len(allowed) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowed
	}
	return cfg
}
