package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"graph-calculator/internal/common/config"
	"graph-calculator/internal/common/middleware"
	"graph-calculator/internal/grapher/handlers"
	"graph-calculator/internal/grapher/llm"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Grapher Service
// ============================================================

func main() {
	cfg := config.Load()

	var generator handlers.Generator
	if cfg.GeminiAPIKey != "" {
		client, err := llm.New(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("init gemini client: %v", err)
		}
		generator = client
	} else {
		// Без ключа сервис работает в мок-режиме (см. Generate).
		log.Printf("GEMINI_API_KEY is not set, /generate runs in mock mode")
	}

	graphHandler := handlers.NewGraphHandler(generator)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Grapher Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS(cfg.CORSOrigins))

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready"})
	})

	// ============================================================
	// Grapher Routes
	// ============================================================

	app.Post("/generate", graphHandler.Generate)
	app.Post("/compile", handlers.CompileIntent)
	app.Post("/sanitize", handlers.SanitizeScene)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Grapher Service on %s (env: %s)", addr, cfg.Environment)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
