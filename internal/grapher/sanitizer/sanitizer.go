package sanitizer

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"graph-calculator/internal/grapher/models"
)

// ============================================================
// Output Sanitizer
// ============================================================

// denylist — маркеры исполняемого кода в строковых слотах. Список
// намеренно консервативный: ловим симптомы, а не грамматику.
var denylist = []string{
	"function",
	"=>",
	"return",
	"eval(",
	"Math.",
	"JXG",
	"board.",
	"window.",
	"document.",
	"();",
	"${",
	"`",
}

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,63}$`)

// Suspect сообщает, содержит ли строка запрещенный фрагмент.
func Suspect(s string) bool {
	for _, marker := range denylist {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

// Identifier сообщает, похожа ли строка на id элемента.
func Identifier(s string) bool {
	return identifierRe.MatchString(s)
}

// Sanitize фильтрует недоверенную сцену поэлементно. Координаты не
// пересчитываются: каждый слот либо принимается, либо приводится к
// числу, либо валит весь элемент. Частичная чистка одного слота не
// делается — элемент с подозрительной строкой недоверен целиком.
func Sanitize(in models.CompiledScene) models.CompiledScene {
	out := models.CompiledScene{
		Elements:    []models.Element{},
		Explanation: in.Explanation,
	}

	for _, el := range in.Elements {
		clean, ok := sanitizeElement(el)
		if !ok {
			continue
		}
		out.Elements = append(out.Elements, clean)
	}

	return out
}

func sanitizeElement(el models.Element) (models.Element, bool) {
	// Битый id/type — не угроза, подставляем запасные значения.
	if !Identifier(el.ID) {
		el.ID = "unknown"
	}
	if !Identifier(el.Type) {
		el.Type = models.KindPoint
	}

	parents := make([]any, 0, len(el.Parents))
	for _, slot := range el.Parents {
		value, ok := sanitizeSlot(slot)
		if !ok {
			return models.Element{}, false
		}
		parents = append(parents, value)
	}
	el.Parents = parents

	// Properties — непрозрачный мешок атрибутов отображения,
	// рендерер обязан трактовать их как данные, не как код.
	return el, true
}

func sanitizeSlot(v any) (any, bool) {
	switch value := v.(type) {
	case float64:
		return value, finite(value)
	case float32:
		return float64(value), finite(float64(value))
	case int:
		return float64(value), true
	case int64:
		return float64(value), true
	case string:
		if Suspect(value) {
			return nil, false
		}
		// ParseFloat принимает "NaN"/"Inf"; такие значения не
		// сериализуются в JSON, поэтому слот считается битым.
		if n, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return n, finite(n)
		}
		// Не число и не код — считаем ссылкой на id.
		return value, true
	default:
		// Булевы и вложенные значения в слоте ссылки
		// структурно неверны.
		return nil, false
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
