package handlers

import (
	"encoding/json"
	"log"

	"graph-calculator/internal/grapher/models"
	"graph-calculator/internal/grapher/sanitizer"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Sanitize Handler
// ============================================================

// SanitizeScene фильтрует недоверенный список элементов. Элементы с
// кодоподобными строками в parents молча выбрасываются, остальное
// возвращается как есть.
func SanitizeScene(c fiber.Ctx) error {
	log.Printf("[GRAPHER] Sanitize request, body: %d bytes", len(c.Body()))

	if len(c.Body()) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "body required"})
	}

	var scene models.CompiledScene
	if err := json.Unmarshal(c.Body(), &scene); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON payload"})
	}

	clean := sanitizer.Sanitize(scene)
	log.Printf("[GRAPHER] Sanitized %d -> %d elements", len(scene.Elements), len(clean.Elements))
	return c.JSON(clean)
}
