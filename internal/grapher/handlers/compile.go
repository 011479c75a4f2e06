package handlers

import (
	"encoding/json"
	"log"

	"graph-calculator/internal/grapher/compiler"
	"graph-calculator/internal/grapher/models"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Compile Handler
// ============================================================

// CompileIntent компилирует готовый интент без похода в LLM.
func CompileIntent(c fiber.Ctx) error {
	log.Printf("[GRAPHER] Compile request, body: %d bytes", len(c.Body()))

	if len(c.Body()) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "body required"})
	}

	var intent models.Intent
	if err := json.Unmarshal(c.Body(), &intent); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON payload"})
	}
	if intent.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "intent required"})
	}

	resp := compiler.Compile(intent)
	log.Printf("[GRAPHER] Compiled intent %q into %d elements", intent.Name, len(resp.Elements))
	return c.JSON(resp)
}
