package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	slogmulti "github.com/samber/slog-multi"

	"github.com/mikeboe/research-agent/pkg/clients"
	"github.com/mikeboe/research-agent/pkg/config"
	"github.com/mikeboe/research-agent/pkg/research"
	"github.com/mikeboe/research-agent/pkg/research/tools"
	"github.com/mikeboe/research-agent/pkg/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	// Fan logs out to the terminal and to the in-memory store backing
	// the /api/logs endpoint.
	memLogs := server.NewMemoryLogHandler(500)
	logger := slog.New(slogmulti.Fanout(
		slog.NewTextHandler(os.Stdout, nil),
		memLogs,
	))
	slog.SetDefault(logger)

	// Provider mode is decided once here from credential presence; a nil
	// provider keeps the pipeline on its deterministic fallback path.
	var completer research.Completer
	if cfg.AIEnabled() {
		client, err := clients.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.Model)
		if err != nil {
			log.Fatalf("Failed to init OpenAI client: %v", err)
		}
		completer = client
	}

	var searcher research.Searcher
	if cfg.SearchEnabled() {
		searcher = tools.NewSerperClient(cfg.SerperAPIKey)
	}

	engine := research.NewEngine(completer, searcher, research.NewHistory())
	engine.Logger = logger

	svc := server.NewService(engine, cfg)
	handler := server.NewHandler(svc, memLogs)

	// Web Server Setup
	r := gin.Default()

	// CORS Setup
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Allow all for dev
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	handler.RegisterRoutes(r)

	if cfg.AIEnabled() {
		logger.Info("AI features enabled", "model", cfg.Model, "web_search", cfg.SearchEnabled())
	} else {
		logger.Warn("Running in fallback mode (no API keys)",
			"hint", "add OPENAI_API_KEY and SERPER_API_KEY to .env")
	}

	fmt.Printf("Server starting on port %s\n", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
