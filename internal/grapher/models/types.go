package models

// ============================================================
// Chat API
// ============================================================

type ChatMessage struct {
	Role    string `json:"role"` // user | assistant
	Content string `json:"content"`
}

type PromptRequest struct {
	Prompt  string        `json:"prompt"`
	History []ChatMessage `json:"history,omitempty"`
}

// ============================================================
// Intent
// ============================================================

// Intent — структурированная команда от LLM: имя интента плюс
// произвольный мешок параметров. Содержимое Data не доверенное.
type Intent struct {
	Name        string         `json:"intent"`
	Data        map[string]any `json:"data"`
	Explanation string         `json:"explanation,omitempty"`
}

// ============================================================
// Geometry primitives
// ============================================================

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ============================================================
// Scene graph
// ============================================================

// Element kinds, рендерер выбирает примитив по Type.
const (
	KindPoint   = "point"
	KindSegment = "segment"
	KindLine    = "line"
	KindCircle  = "circle"
	KindPolygon = "polygon"
	KindAngle   = "angle"
)

// Element — один примитив сцены. Parents содержит числовые литералы
// либо id ранее объявленных элементов (точки всегда раньше зависимых).
type Element struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Parents    []any          `json:"parents"`
	Properties map[string]any `json:"properties,omitempty"`
}

// CompiledScene — итоговый контракт движка: упорядоченные элементы
// плюс человекочитаемое пояснение.
type CompiledScene struct {
	Elements    []Element `json:"elements"`
	Explanation string    `json:"explanation"`
}

// GraphResponse — ответ сервиса. Для plot_* интентов сцена пустая, а
// intent/data пробрасываются клиентскому математическому движку.
type GraphResponse struct {
	Intent      string         `json:"intent,omitempty"`
	Data        map[string]any `json:"data,omitempty"`
	Elements    []Element      `json:"elements"`
	Explanation string         `json:"explanation"`
}
