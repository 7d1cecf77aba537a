package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"vidshare/config"
	"vidshare/constant"
	videoHandler "vidshare/handler"
	"vidshare/repository"
	"vidshare/service"
	"vidshare/storage"
)

func RunHttp(cfg *config.Config) {
	ctx, cancel := signal.NotifyContext(setupLogger(cfg), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Bool("isProduction", cfg.App.Environment == constant.EnvironmentProduction.String()).Send()
	if cfg.App.Environment == constant.EnvironmentProduction.String() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := config.PingDB(ctx, cfg.DB); err != nil {
		zerolog.Ctx(ctx).Fatal().Err(err).Msg("database unavailable")
	}

	dirs := storage.NewDirs(cfg.Storage.DataDir)
	if err := dirs.Ensure(); err != nil {
		zerolog.Ctx(ctx).Fatal().Err(err).Msg("failed to create storage directories")
	}

	repo, err := repository.NewRepo(cfg.DB)
	if err != nil {
		zerolog.Ctx(ctx).Fatal().Err(err).Msg("failed to initialize video repository")
	}

	processor := service.NewProcessor(cfg.Processing.Strategy, dirs)
	uploadService := service.NewUploadService(repo, processor, dirs)
	zerolog.Ctx(ctx).Info().Str("strategy", cfg.Processing.Strategy.String()).Msg("video processor configured")

	serviceDeps := videoHandler.ServiceDependencies{
		UploadService: uploadService,
		Repo:          repo,
	}

	// Retention sweeper fires on a fixed schedule in a fixed timezone.
	loc, err := time.LoadLocation(cfg.Sweep.Timezone)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("timezone", cfg.Sweep.Timezone).Msg("invalid sweep timezone, falling back to UTC")
		loc = time.UTC
	}
	sweeper := service.NewSweeper(repo, dirs)
	sweepCron, err := sweeper.Schedule(ctx, cfg.Sweep.Schedule, loc)
	if err != nil {
		zerolog.Ctx(ctx).Fatal().Err(err).Msg("failed to schedule retention sweeper")
	}

	r := gin.Default()
	r.MaxMultipartMemory = constant.MaxUploadBytes
	r.Use(contextLogger(ctx))
	addHealth(r)
	addRoutes(r, serviceDeps, dirs, cfg.Server.PublicDir)

	handler := http.Server{
		Handler:           r,
		Addr:              fmt.Sprintf(":%s", cfg.Server.HttpPort),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Msg("start http server")
		if err := handler.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zerolog.Ctx(ctx).Error().Str("env", cfg.App.Environment).Msg(err.Error())
		}
	}()

	<-ctx.Done()
	zerolog.Ctx(ctx).Info().Msg("shutting down server")
	sweepCron.Stop()
	if err := handler.Shutdown(ctx); err != nil {
		zerolog.Ctx(ctx).Error().Str("env", cfg.App.Environment).Msg(err.Error())
	}

	zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Msg("server shutdown")
}

// RunSweep executes one retention sweep and exits.
func RunSweep(cfg *config.Config) {
	ctx := setupLogger(cfg)

	if err := config.PingDB(ctx, cfg.DB); err != nil {
		zerolog.Ctx(ctx).Fatal().Err(err).Msg("database unavailable")
	}

	dirs := storage.NewDirs(cfg.Storage.DataDir)
	if err := dirs.Ensure(); err != nil {
		zerolog.Ctx(ctx).Fatal().Err(err).Msg("failed to create storage directories")
	}

	repo, err := repository.NewRepo(cfg.DB)
	if err != nil {
		zerolog.Ctx(ctx).Fatal().Err(err).Msg("failed to initialize video repository")
	}

	if err := service.NewSweeper(repo, dirs).Sweep(ctx); err != nil {
		zerolog.Ctx(ctx).Fatal().Err(err).Msg("retention sweep failed")
	}
}

func addRoutes(r *gin.Engine, deps videoHandler.ServiceDependencies, dirs storage.Dirs, publicDir string) {
	api := r.Group("/api")
	api.POST("/upload", videoHandler.UploadVideo(deps))
	api.GET("/videos", videoHandler.ListVideos(deps))

	// Processed assets are served read-only under their public prefixes.
	r.Static(constant.PublicVideoPrefix, dirs.Processed)
	r.Static(constant.PublicThumbnailPrefix, dirs.Thumbnails)

	// Everything else falls through to the single-page front end.
	r.NoRoute(func(c *gin.Context) {
		p := filepath.Join(publicDir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			c.File(p)
			return
		}
		c.File(filepath.Join(publicDir, "index.html"))
	})
}

func addHealth(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})
}

// contextLogger puts the process logger on each request context so handlers
// and services can use zerolog.Ctx.
func contextLogger(base context.Context) gin.HandlerFunc {
	logger := zerolog.Ctx(base)
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))
		c.Next()
	}
}

func setupLogger(cfg *config.Config) context.Context {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.App.Environment == constant.EnvironmentDevelop.String() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// Log to standard output
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	return ctx
}
