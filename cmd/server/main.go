package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/arturoeanton/roadmapai/internal/adapter/ai"
	"github.com/arturoeanton/roadmapai/internal/adapter/auth"
	"github.com/arturoeanton/roadmapai/internal/adapter/catalog"
	"github.com/arturoeanton/roadmapai/internal/adapter/store"
	"github.com/arturoeanton/roadmapai/internal/handler"
	"github.com/arturoeanton/roadmapai/internal/logger"
	"github.com/arturoeanton/roadmapai/internal/mcp"
	"github.com/arturoeanton/roadmapai/internal/middleware"
	"github.com/arturoeanton/roadmapai/internal/observability"
	"github.com/arturoeanton/roadmapai/internal/service"
	"github.com/arturoeanton/roadmapai/pkg/config"
)

func main() {
	// ── Configuration ────────────────────────────────────────────────────
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode, cfg.LogRedaction)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	log.Info("🚀 Starting RoadmapAI",
		"port", cfg.Port,
		"store", cfg.StoreDriver,
		"ai_provider", cfg.AIProvider,
		"mcp_enabled", cfg.MCPEnabled,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ── Tracing ──────────────────────────────────────────────────────────
	shutdownTracing, err := observability.InitTracing(ctx, cfg, observability.Service{
		Name:        cfg.AppName,
		Version:     handler.Version,
		Environment: cfg.LogMode,
	}, log)
	if err != nil {
		log.Warn("tracing disabled", "error", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn("tracing shutdown failed", "error", err)
		}
	}()

	// ── Storage ──────────────────────────────────────────────────────────
	slots, err := store.Open(ctx, cfg)
	if err != nil {
		log.Error("failed to open slot store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer slots.Close()

	identities := store.NewIdentityList(store.SeedUsers()...)
	auditLog := store.NewAuditLog(store.DefaultAuditCapacity, log)
	if archive, ok := slots.(store.AuditArchive); ok {
		auditLog.WithArchive(archive)
		log.Info("audit trail persisted", "driver", cfg.StoreDriver)
	}

	// ── Adapters ─────────────────────────────────────────────────────────
	issuer, err := auth.NewJWTIssuer(auth.JWTConfig{
		Secret:    cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
		ExpiresIn: cfg.TokenTTL(),
	})
	if err != nil {
		log.Error("failed to configure credentials", "error", err)
		os.Exit(1)
	}

	generator, err := ai.FromConfig(ctx, cfg)
	if err != nil {
		log.Error("failed to configure assistant", "error", err)
		os.Exit(1)
	}
	if generator == nil {
		log.Warn("assistant backend not configured, replies will use canned guidance")
	}
	generator = ai.Traced(generator, nil)

	roadmap := catalog.WebDevelopment()

	// ── Services ─────────────────────────────────────────────────────────
	authService := service.NewAuthService(identities, issuer, log)
	progressService := service.NewProgressService(slots, roadmap, log)
	roadmapService := service.NewRoadmapService(roadmap, progressService)
	assistantService := service.NewAssistantService(generator, roadmap, log).WithTimeout(cfg.AITimeout)

	// ── Fiber App ────────────────────────────────────────────────────────
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.AITimeout + 10*time.Second,
	})

	app.Use(recover.New())
	app.Use(middleware.Trace(nil))
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  []string{cfg.FrontendURL},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "traceparent", middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderTraceID, middleware.HeaderRequestID},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))
	app.Use(middleware.AuditMiddleware(auditLog, log))

	handler.Mount(app, handler.Deps{
		AppName:   cfg.AppName,
		Auth:      authService,
		Progress:  progressService,
		Roadmap:   roadmapService,
		Assistant: assistantService,
		Catalog:   roadmap,
		Audit:     auditLog,
		Events:    handler.NewEventHub(),
	})

	// ── MCP Server (separate port) ───────────────────────────────────────
	if cfg.MCPEnabled {
		mcpServer := mcp.NewServer(roadmapService, assistantService, auditLog, log, cfg.MCPPort)
		go func() {
			if err := mcpServer.Start(ctx); err != nil {
				log.Error("MCP server failed", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("shutdown failed", "error", err)
		}
	}()

	// ── Start ────────────────────────────────────────────────────────────
	log.Info("🌐 Fiber listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}
