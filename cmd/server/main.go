package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"marstiles-server/internal/location"
	"marstiles-server/internal/middleware"
	"marstiles-server/internal/search"
	"marstiles-server/internal/server"
	"marstiles-server/internal/shared/config"
	"marstiles-server/internal/shared/database"
	"marstiles-server/internal/shared/logger"
	"marstiles-server/internal/shared/redis"
	"marstiles-server/internal/tiles"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger.Init(cfg)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if err := os.MkdirAll(cfg.Tiles.BaseDir, 0o755); err != nil {
		log.Fatal("Failed to create tiles directory:", err)
	}

	redisClient, err := redis.Connect(cfg)
	if err != nil {
		// The cache is an optimization; resolution works without it
		slog.Warn("Redis unavailable, continuing without search cache", "error", err)
		redisClient = nil
	}
	defer redisClient.Close()

	locationRepo := location.NewRepository(db.DB)
	locationService := location.NewService(locationRepo, slog.Default())

	if err := locationService.SeedSampleLocations(context.Background()); err != nil {
		log.Fatal("Failed to seed locations:", err)
	}

	tilesService := tiles.NewService(cfg.Tiles, slog.Default())

	engine := search.NewGeminiClient(cfg.Gemini)
	searchCache := search.NewCache(redisClient, cfg.Redis.CacheTTL)
	searchService := search.NewService(locationService, engine, searchCache, slog.Default())

	routes := server.NewRoutes(cfg, db, tilesService, locationService, searchService, slog.Default())
	mux := routes.Setup()

	corsMiddleware := middleware.NewCORS(cfg)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit)

	handler := corsMiddleware.Middleware(rateLimiter.Middleware(mux))

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	slog.Info("Tile server starting",
		"addr", cfg.Addr(),
		"tiles_dir", cfg.Tiles.BaseDir,
		"db_path", cfg.Database.Path,
		"environment", cfg.Server.Environment,
	)

	if err := srv.ListenAndServe(); err != nil {
		log.Fatal("Server failed:", err)
	}
}
