package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"graph-calculator/internal/grapher/models"
)

// ============================================================
// LLM Response Parser
// ============================================================

// Command — распакованный ответ LLM. Либо интент с параметрами, либо
// уже готовый список элементов (Elements != nil).
type Command struct {
	Intent      string           `json:"intent"`
	Data        map[string]any   `json:"data"`
	Elements    []models.Element `json:"elements"`
	Explanation string           `json:"explanation"`
}

// IsElements сообщает, что ответ несет готовые элементы, а не интент.
func (c *Command) IsElements() bool {
	return c.Elements != nil
}

// StripFences убирает markdown-ограждение вокруг JSON. Сначала ищем
// блок ```json, затем голый ```; порядок совпадает с поведением
// исходного бэкенда.
func StripFences(text string) string {
	if idx := strings.Index(text, "```json"); idx >= 0 {
		rest := text[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}

	if idx := strings.Index(text, "```"); idx >= 0 {
		rest := text[idx+len("```"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}

	return strings.TrimSpace(text)
}

// Parse срезает ограждение и декодирует команду. Невалидный JSON —
// различимая ошибка парсинга, она не маскируется под пустую сцену.
func Parse(text string) (*Command, error) {
	payload := StripFences(text)
	if payload == "" {
		return nil, fmt.Errorf("empty LLM response")
	}

	var cmd Command
	if err := json.Unmarshal([]byte(payload), &cmd); err != nil {
		return nil, fmt.Errorf("decode LLM response: %w", err)
	}

	if cmd.Intent == "" && cmd.Elements == nil {
		return nil, fmt.Errorf("LLM response has neither intent nor elements")
	}

	return &cmd, nil
}
