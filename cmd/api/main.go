package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/baraka-desk/backend/internal/api/handlers"
	"github.com/baraka-desk/backend/internal/auth"
	cache "github.com/baraka-desk/backend/internal/cache/redis"
	"github.com/baraka-desk/backend/internal/chat"
	"github.com/baraka-desk/backend/internal/dataset"
	"github.com/baraka-desk/backend/internal/llm"
	"github.com/baraka-desk/backend/internal/metrics"
	"github.com/baraka-desk/backend/internal/middleware/ratelimit"
	"github.com/baraka-desk/backend/internal/middleware/security"
	"github.com/baraka-desk/backend/internal/middleware/validation"
	"github.com/baraka-desk/backend/internal/routing"
	"github.com/baraka-desk/backend/internal/storage/sqlite"
	"github.com/baraka-desk/backend/pkg/config"
	appLogger "github.com/baraka-desk/backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	err = appLogger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.OutputPath)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting Baraka SACCO Support API Server")

	metrics.Init()

	sqliteClient, err := sqlite.NewClient(cfg.SQLite.Path)
	if err != nil {
		appLogger.Fatal("Failed to create SQLite client", zap.Error(err))
	}
	defer sqliteClient.Close()

	err = sqliteClient.InitSchema()
	if err != nil {
		appLogger.Fatal("Failed to initialize schema", zap.Error(err))
	}

	authService := auth.NewService(sqliteClient)
	err = authService.SeedDemoUsers()
	if err != nil {
		appLogger.Fatal("Failed to seed demo users", zap.Error(err))
	}

	var replyCache *cache.Client
	if cfg.Redis.Enabled {
		replyCache, err = cache.NewClient(
			cfg.Redis.Host,
			cfg.Redis.Port,
			cfg.Redis.Password,
			cfg.Redis.DB,
			time.Duration(cfg.Redis.TTLSec)*time.Second,
		)
		if err != nil {
			appLogger.Warn("Redis unavailable, reply caching disabled", zap.Error(err))
			replyCache = nil
		}
	}
	defer replyCache.Close()

	baseStore, err := dataset.Load(cfg.Dataset.Path)
	if err != nil {
		appLogger.Fatal("Failed to load base FAQ dataset", zap.Error(err))
	}
	appLogger.Info("Base FAQ dataset loaded", zap.Int("entries", baseStore.Len()))

	llmClient := llm.NewClient(llm.Config{
		APIKey:           cfg.LLM.APIKey,
		Model:            cfg.LLM.Model,
		TranslationModel: cfg.LLM.TranslationModel,
		Temperature:      cfg.LLM.Temperature,
		MaxTokens:        cfg.LLM.MaxTokens,
		TimeoutSec:       cfg.LLM.TimeoutSec,
	})

	router := routing.NewRouter(cfg.Retrieval.RouteThreshold)

	engine := chat.NewEngine(sqliteClient, baseStore, llmClient, router, replyCache, chat.Config{
		TopK:            cfg.Retrieval.TopK,
		CustomThreshold: cfg.Retrieval.CustomThreshold,
		BaseThreshold:   cfg.Retrieval.BaseThreshold,
	})

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
	})

	limiter := ratelimit.New(ratelimit.Config{
		MaxRequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		Logger:               appLogger.GetLogger(),
	})
	defer limiter.Stop()

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(security.Headers())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	authHandler := handlers.NewAuthHandler(authService)
	chatHandler := handlers.NewChatHandler(engine)
	wsHandler := handlers.NewWebSocketHandler(engine, cfg.Retrieval.MaxMessageLen)
	complaintHandler := handlers.NewComplaintHandler(sqliteClient, engine)
	faqHandler := handlers.NewFAQHandler(sqliteClient, replyCache)
	logHandler := handlers.NewLogHandler(sqliteClient)
	healthHandler := handlers.NewHealthHandler(baseStore, llmClient)

	api := app.Group("/api/v1")

	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/logout", authHandler.RequireAuth(), authHandler.Logout)

	api.Post("/chat",
		authHandler.RequireAuth(),
		limiter.Middleware(),
		validation.ChatMessage(cfg.Retrieval.MaxMessageLen),
		chatHandler.Handle,
	)

	api.Use("/chat/ws", authHandler.RequireAuth(), func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	api.Get("/chat/ws", websocket.New(wsHandler.HandleConnection))

	api.Post("/complaints",
		authHandler.RequireAuth(),
		limiter.Middleware(),
		validation.ComplaintText(cfg.Retrieval.MaxMessageLen),
		complaintHandler.Create,
	)

	admin := api.Group("/admin", authHandler.RequireAuth(), authHandler.RequireAdmin())
	admin.Get("/faqs", faqHandler.List)
	admin.Post("/faqs", faqHandler.Create)
	admin.Put("/faqs/:id", faqHandler.Update)
	admin.Delete("/faqs/:id", faqHandler.Delete)
	admin.Get("/complaints", complaintHandler.List)
	admin.Get("/complaints/:id", complaintHandler.Get)
	admin.Put("/complaints/:id", complaintHandler.Update)
	admin.Get("/chatlogs", logHandler.List)

	api.Get("/health", healthHandler.Health)
	api.Get("/departments", healthHandler.Departments)
	app.Get("/metrics", metrics.Handler())

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	appLogger.Info("Server starting", zap.String("address", addr))

	go func() {
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Server shutting down gracefully...")
	app.Shutdown()
	appLogger.Info("Server stopped")
}
