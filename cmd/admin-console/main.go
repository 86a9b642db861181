package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/hrms-lite-console/api/swagger"
	"github.com/noah-isme/hrms-lite-console/internal/handler"
	internalmiddleware "github.com/noah-isme/hrms-lite-console/internal/middleware"
	"github.com/noah-isme/hrms-lite-console/internal/repository"
	"github.com/noah-isme/hrms-lite-console/internal/service"
	"github.com/noah-isme/hrms-lite-console/pkg/config"
	"github.com/noah-isme/hrms-lite-console/pkg/export"
	"github.com/noah-isme/hrms-lite-console/pkg/hrapi"
	"github.com/noah-isme/hrms-lite-console/pkg/logger"
	corsmiddleware "github.com/noah-isme/hrms-lite-console/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/hrms-lite-console/pkg/middleware/requestid"
)

// @title HRMS Lite Admin Console
// @version 1.0.0
// @description Server-rendered administration console for the HRMS Lite REST API
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}

	apiCfg := hrapi.Config{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout, Logger: logr}
	if metricsSvc != nil {
		apiCfg.Observer = metricsSvc
	}
	client := hrapi.NewClient(apiCfg)

	validate := service.NewValidator(time.Now)
	employeeSvc := service.NewEmployeeService(repository.NewEmployeeRepository(client), validate, logr)
	attendanceSvc := service.NewAttendanceService(repository.NewAttendanceRepository(client), validate, logr, time.Now)
	exportSvc := service.NewExportService(employeeSvc, attendanceSvc, export.NewRenderer(), service.ExportConfig{Enabled: cfg.Exports.Enabled}, logr)
	workspaceSvc := service.NewWorkspaceService(employeeSvc, attendanceSvc, service.WorkspaceConfig{
		TTL:           cfg.Workspace.TTL,
		SweepInterval: cfg.Workspace.SweepInterval,
	}, metricsSvc, logr)
	go workspaceSvc.Run(ctx)

	pages := handler.MustPages()
	health := handler.NewHealthHandler(client, metricsSvc, cfg.API.ReadinessTimeout, logr)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", health.Health)
	r.GET("/ready", health.Ready)
	if metricsSvc != nil {
		r.GET("/metrics", health.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	screens := r.Group("")
	screens.Use(internalmiddleware.Workspace(workspaceSvc, internalmiddleware.WorkspaceCookie{
		Name:   cfg.Workspace.CookieName,
		TTL:    cfg.Workspace.TTL,
		Secure: cfg.Workspace.SecureCookie,
	}))
	handler.Routes{
		Employees:  handler.NewEmployeeHandler(pages),
		Attendance: handler.NewAttendanceHandler(pages, exportSvc, cfg.Exports.Enabled),
		Dashboard:  handler.NewDashboardHandler(pages, exportSvc, cfg.Exports.Enabled),
	}.Register(screens)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "api", client.BaseURL())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logr.Warn("graceful shutdown failed", zap.Error(err))
		}
		logr.Info("server stopped")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}
}
