package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"graph-calculator/internal/common/config"
	"graph-calculator/internal/common/middleware"
	"graph-calculator/internal/gateway/handlers"
	"graph-calculator/internal/gateway/proxy"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// API Gateway
// ============================================================

func main() {
	cfg := config.Load()

	grapherURL := getEnv("GRAPHER_URL", "http://localhost:3001")
	authURL := getEnv("AUTH_URL", "http://localhost:3002")

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "API Gateway",
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

	health := &handlers.HealthHandler{GrapherURL: grapherURL, AuthURL: authURL}
	app.Get("/health/live", handlers.LivenessProbe)
	app.Get("/health/ready", health.ReadinessProbe)
	app.Get("/health/startup", handlers.StartupProbe)

	// ============================================================
	// Docs
	// ============================================================

	app.Get("/docs", handlers.SwaggerUI)
	app.Get("/docs/openapi.yaml", handlers.SwaggerSpec)

	// ============================================================
	// API Routes
	// ============================================================

	api := app.Group("/api/v1")

	api.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Graph Calculator API v1",
			"status":  "ok",
		})
	})

	// ============================================================
	// Service Routes (Proxy)
	// ============================================================

	// Grapher Service
	api.Post("/generate", proxy.ProxyTo(grapherURL+"/generate"))
	api.Post("/compile", proxy.ProxyTo(grapherURL+"/compile"))
	api.Post("/sanitize", proxy.ProxyTo(grapherURL+"/sanitize"))

	// Auth Service
	api.Post("/login", proxy.ProxyTo(authURL+"/login"))
	api.Post("/logout", proxy.ProxyTo(authURL+"/logout"))
	api.Get("/users/:id", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/users/%s", authURL, c.Params("id")))
	})
	api.Post("/users/:id/scenes", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/users/%s/scenes", authURL, c.Params("id")))
	})
	api.Get("/users/:id/scenes", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/users/%s/scenes", authURL, c.Params("id")))
	})
	api.Get("/users/:id/scenes/:sceneId", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/users/%s/scenes/%s", authURL, c.Params("id"), c.Params("sceneId")))
	})
	api.Delete("/users/:id/scenes/:sceneId", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/users/%s/scenes/%s", authURL, c.Params("id"), c.Params("sceneId")))
	})

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting API Gateway on %s (env: %s)", addr, cfg.Environment)
	log.Printf("Proxying /generate to %s", grapherURL)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}
