package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"postmarket/internal/agent"
	"postmarket/internal/client/feed"
	"postmarket/internal/client/marketapi"
	"postmarket/internal/config"
	cronrunner "postmarket/internal/cron"
	"postmarket/internal/db"
	"postmarket/internal/handler"
	"postmarket/internal/keyword"
	"postmarket/internal/logger"
	gormrepository "postmarket/internal/repository/gorm"
	"postmarket/internal/scoring"
	"postmarket/internal/service"

	_ "postmarket/docs"
)

func main() {
	cfgPath := os.Getenv("POSTMARKET_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if raw := os.Getenv("POSTMARKET_ENV_ONLY"); raw != "" {
		envOnly = strings.EqualFold(raw, "true") || raw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	book, err := keyword.LoadFile(cfg.Scoring.KeywordsPath)
	if err != nil {
		logger.Fatal("keyword config load failed",
			zap.String("path", cfg.Scoring.KeywordsPath),
			zap.Error(err),
		)
	}

	store := gormrepository.New(dbConn.Gorm)
	settingsSvc := &service.SystemSettingsService{Repo: store}
	if err := settingsSvc.EnsureDefaultSwitches(context.Background()); err != nil {
		logger.Warn("init default feature switches failed", zap.Error(err))
	}

	if err := service.EnsureMarkets(context.Background(), store, book, logger); err != nil {
		logger.Fatal("market seeding failed", zap.Error(err))
	}

	feedHTTP := &http.Client{Timeout: cfg.Feed.Timeout}
	feedClient := feed.NewClient(feedHTTP, cfg.Feed.BaseURL)

	pipeline := &scoring.Pipeline{Repo: store, Book: book, Logger: logger}
	queryService := &service.QueryService{Repo: store}
	ingestService := &service.PostIngestService{
		Repo:   store,
		Feed:   feedClient,
		Config: cfg.Ingest,
		Logger: logger,
		Flags:  settingsSvc,
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	marketHandler := &handler.MarketHandler{Query: queryService}
	marketHandler.Register(engine)
	postHandler := &handler.PostHandler{Repo: store}
	postHandler.Register(engine)
	adminHandler := &handler.AdminHandler{
		Repo:     store,
		Pipeline: pipeline,
		Settings: settingsSvc,
		Logger:   logger,
	}
	adminHandler.Register(engine)
	agentHandler := &handler.AgentHandler{Repo: store}
	agentHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Scoring.RescoreOnStart {
		logger.Info("running initial scoring pass")
		if _, err := pipeline.Run(ctx); err != nil {
			logger.Warn("initial scoring pass failed (continuing)", zap.Error(err))
		}
	}

	cronRunner := cronrunner.New(logger, ctx)
	if cfg.Cron.Enabled {
		_, err = cronRunner.Add(cfg.Cron.Rescore, func(ctx context.Context) {
			if !settingsSvc.IsEnabled(ctx, service.FeatureScoreCron, true) {
				return
			}
			if _, err := pipeline.Run(ctx); err != nil {
				logger.Warn("cron rescore failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Warn("cron register rescore failed", zap.Error(err))
		}

		_, err = cronRunner.Add(cfg.Cron.RunPrune, func(ctx context.Context) {
			if !settingsSvc.IsEnabled(ctx, service.FeatureRunPrune, true) {
				return
			}
			cutoff := time.Now().UTC().Add(-cfg.Scoring.RunRetention)
			n, err := store.DeleteScoreRunsBefore(ctx, cutoff)
			if err != nil {
				logger.Warn("score run prune failed", zap.Error(err))
				return
			}
			if n > 0 {
				logger.Info("pruned score runs", zap.Int64("count", n))
			}
		})
		if err != nil {
			logger.Warn("cron register run prune failed", zap.Error(err))
		}
		cronRunner.Start()
		defer cronRunner.Stop()
	}

	if cfg.Ingest.Enabled {
		go func() {
			if err := ingestService.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("post ingest loop stopped", zap.Error(err))
			}
		}()
	}

	if cfg.Agents.Enabled && settingsSvc.IsEnabled(ctx, service.FeatureAgents, false) {
		apiClient := marketapi.NewClient(nil, cfg.Agents.APIBase)
		for _, ac := range cfg.Agents.Roster {
			strat, err := agent.NewStrategy(ac.Strategy)
			if err != nil {
				logger.Warn("skipping agent with unknown strategy",
					zap.String("agent", ac.Name),
					zap.String("strategy", ac.Strategy),
				)
				continue
			}
			a := &agent.Agent{
				Name:         ac.Name,
				Strategy:     strat,
				API:          apiClient,
				Feed:         feedClient,
				Repo:         store,
				Logger:       logger,
				PollInterval: ac.PollInterval,
				MaxMarkets:   ac.MaxMarkets,
			}
			go func() {
				if err := a.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Warn("agent stopped", zap.String("agent", a.Name), zap.Error(err))
				}
			}()
		}
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
