package handlers

import (
	"context"
	"encoding/json"
	"log"

	"graph-calculator/internal/grapher/compiler"
	"graph-calculator/internal/grapher/models"
	"graph-calculator/internal/grapher/parser"
	"graph-calculator/internal/grapher/sanitizer"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Generate Handler
// ============================================================

// Generator — вызов LLM. nil, если ключ не настроен.
type Generator interface {
	Generate(ctx context.Context, prompt string, history []models.ChatMessage) (string, error)
}

type GraphHandler struct {
	llm Generator
}

func NewGraphHandler(llm Generator) *GraphHandler {
	return &GraphHandler{llm: llm}
}

// Generate переводит запрос пользователя через LLM в команду и
// компилирует её в сцену. Любая кривая команда от модели деградирует
// до валидной (возможно пустой) сцены с пояснением; жесткая ошибка —
// только недоступность модели или нечитаемый JSON.
func (h *GraphHandler) Generate(c fiber.Ctx) error {
	log.Printf("[GRAPHER] Generate request, body: %d bytes", len(c.Body()))

	var req models.PromptRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON payload"})
	}
	if req.Prompt == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "prompt required"})
	}

	if h.llm == nil {
		// Ключ не настроен — отвечаем фиксированной командой,
		// чтобы фронтенд можно было гонять без Gemini.
		log.Printf("[GRAPHER] No API key, returning mock command")
		return c.JSON(models.GraphResponse{
			Intent:      "plot_function",
			Data:        map[string]any{"expressions": []string{"sin(x)"}},
			Elements:    []models.Element{},
			Explanation: "No API key configured. Test plot of sin(x).",
		})
	}

	text, err := h.llm.Generate(c.Context(), req.Prompt, req.History)
	if err != nil {
		log.Printf("[GRAPHER] LLM error: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "model unavailable"})
	}

	cmd, err := parser.Parse(text)
	if err != nil {
		log.Printf("[GRAPHER] Parse error: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "failed to parse model response"})
	}

	if cmd.IsElements() {
		// Модель прислала готовые элементы — только фильтруем.
		clean := sanitizer.Sanitize(models.CompiledScene{
			Elements:    cmd.Elements,
			Explanation: cmd.Explanation,
		})
		log.Printf("[GRAPHER] Sanitized %d -> %d elements", len(cmd.Elements), len(clean.Elements))
		return c.JSON(models.GraphResponse{
			Elements:    clean.Elements,
			Explanation: clean.Explanation,
		})
	}

	resp := compiler.Compile(models.Intent{
		Name:        cmd.Intent,
		Data:        cmd.Data,
		Explanation: cmd.Explanation,
	})
	log.Printf("[GRAPHER] Compiled intent %q into %d elements", cmd.Intent, len(resp.Elements))
	return c.JSON(resp)
}
