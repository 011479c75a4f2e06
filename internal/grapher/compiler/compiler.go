package compiler

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"graph-calculator/internal/grapher/models"
	"graph-calculator/internal/grapher/sanitizer"
	"graph-calculator/internal/grapher/scene"
	"graph-calculator/internal/grapher/schema"
)

// ============================================================
// Geometry Compiler
// ============================================================

// Координаты округляются до 6 знаков, чтобы вывод был побайтово
// воспроизводим между запусками.
const coordScale = 1e6

func round(v float64) float64 {
	return math.Round(v*coordScale) / coordScale
}

// Compile детерминированно превращает интент в сцену. Никогда не
// возвращает ошибку: нераспознанный интент или битые параметры дают
// пустую сцену с пояснением.
func Compile(intent models.Intent) models.GraphResponse {
	spec, ok := schema.Lookup(intent.Name)
	if !ok {
		return emptyResponse(fmt.Sprintf("Intent %q is not supported. Supported intents: %s.",
			intent.Name, strings.Join(schema.Names(), ", ")))
	}

	if missing := schema.MissingRequired(intent.Name, intent.Data); len(missing) > 0 {
		return emptyResponse(fmt.Sprintf(
			"Intent %q is missing required parameters: %s.",
			intent.Name, strings.Join(missing, ", ")))
	}

	if spec.Analytic {
		return compileAnalytic(intent)
	}

	sc := compileGeometric(intent)

	// Пояснение от LLM дружелюбнее сгенерированного, но для
	// calculate_* авторитетно вычисленное значение.
	explanation := sc.Explanation
	if intent.Explanation != "" && !strings.HasPrefix(intent.Name, "calculate_") {
		explanation = intent.Explanation
	}

	return models.GraphResponse{
		Intent:      intent.Name,
		Elements:    sc.Elements,
		Explanation: explanation,
	}
}

func compileGeometric(intent models.Intent) models.CompiledScene {
	data := intent.Data

	switch intent.Name {
	case "create_point":
		return createPoint(data)
	case "create_line":
		return createLine(data)
	case "create_circle":
		return createCircle(data)
	case "create_triangle":
		return createTriangle(data)
	case "create_rectangle":
		return createRectangle(data)
	case "create_square":
		return createSquare(data)
	case "create_polygon":
		return createPolygon(data)
	case "calculate_distance":
		return calculateDistance(data)
	case "calculate_midpoint":
		return calculateMidpoint(data)
	}

	return emptyScene(fmt.Sprintf("Intent %q is not supported.", intent.Name))
}

// ============================================================
// Intent handlers
// ============================================================

func createPoint(data map[string]any) models.CompiledScene {
	x, okX := asNumber(data["x"])
	y, okY := asNumber(data["y"])
	if !okX || !okY {
		return emptyScene("Point coordinates must be numbers.")
	}

	a := scene.NewAssembler()
	name := stringOr(data, "name", "")
	a.AddPoint(name, models.Point{X: round(x), Y: round(y)}, nil)

	return a.Scene(fmt.Sprintf("Created point at (%g, %g).", round(x), round(y)))
}

func createLine(data map[string]any) models.CompiledScene {
	p1, ok1 := asPair(data["point1"])
	p2, ok2 := asPair(data["point2"])
	if !ok1 || !ok2 {
		return emptyScene("Line endpoints must be pairs of numbers.")
	}

	a := scene.NewAssembler()
	names := stringListOr(data, "names")
	id1 := a.AddPoint(nameAt(names, 0, a), roundPoint(p1), nil)
	id2 := a.AddPoint(nameAt(names, 1, a), roundPoint(p2), nil)
	a.Add(models.KindLine, []any{id1, id2}, nil)

	return a.Scene(fmt.Sprintf("Created line through (%g, %g) and (%g, %g).",
		round(p1.X), round(p1.Y), round(p2.X), round(p2.Y)))
}

func createCircle(data map[string]any) models.CompiledScene {
	center, okC := asPair(data["center"])
	radius, okR := asNumber(data["radius"])
	if !okC || !okR {
		return emptyScene("Circle needs a center pair and a numeric radius.")
	}

	a := scene.NewAssembler()
	centerID := a.AddPoint(stringOr(data, "name", ""), roundPoint(center), nil)
	a.Add(models.KindCircle, []any{centerID, round(radius)}, nil)

	return a.Scene(fmt.Sprintf("Created circle with radius %g centered at (%g, %g).",
		round(radius), round(center.X), round(center.Y)))
}

func createTriangle(data map[string]any) models.CompiledScene {
	base, ok := asNumber(data["base_length"])
	if !ok {
		return emptyScene("Triangle base_length must be a number.")
	}

	anchor, _ := asPairOr(data["anchor"], models.Point{})
	kind := strings.ToLower(stringOr(data, "type", "general"))

	// A — якорь, B — конец основания, C зависит от типа.
	va := anchor
	vb := models.Point{X: anchor.X + base, Y: anchor.Y}
	var vc models.Point

	switch kind {
	case "equilateral":
		// Высота выводится из основания, из входа не берется.
		vc = models.Point{X: anchor.X + base/2, Y: anchor.Y + base*math.Sqrt(3)/2}
	case "isosceles":
		height := numberOr(data, "height", 0.8*base)
		vc = models.Point{X: anchor.X + base/2, Y: anchor.Y + height}
	case "right":
		// Прямой угол в якоре.
		height := numberOr(data, "height", 0.75*base)
		vc = models.Point{X: anchor.X, Y: anchor.Y + height}
	default:
		// Историческое fallback-размещение для произвольного
		// треугольника. Геометрического смысла не имеет и при
		// некоторых входах дает вырожденный треугольник, но
		// сохранено как есть ради совместимости вывода.
		vc = models.Point{X: anchor.X + 0.3*base, Y: anchor.Y + 0.7*base}
	}

	a := scene.NewAssembler()
	idA := a.AddPoint("A", roundPoint(va), nil)
	idB := a.AddPoint("B", roundPoint(vb), nil)
	idC := a.AddPoint("C", roundPoint(vc), nil)
	a.Add(models.KindSegment, []any{idA, idB}, nil)
	a.Add(models.KindSegment, []any{idB, idC}, nil)
	a.Add(models.KindSegment, []any{idC, idA}, nil)

	return a.Scene(fmt.Sprintf("Created %s triangle with base %g.", kind, round(base)))
}

func createRectangle(data map[string]any) models.CompiledScene {
	anchor, okA := asPair(data["anchor"])
	width, okW := asNumber(data["width"])
	height, okH := asNumber(data["height"])
	if !okA || !okW || !okH {
		return emptyScene("Rectangle needs an anchor pair and numeric width and height.")
	}

	sc := quad(anchor, width, height)
	sc.Explanation = fmt.Sprintf("Created rectangle %g x %g at (%g, %g).",
		round(width), round(height), round(anchor.X), round(anchor.Y))
	return sc
}

func createSquare(data map[string]any) models.CompiledScene {
	anchor, okA := asPair(data["anchor"])
	side, okS := asNumber(data["side"])
	if !okA || !okS {
		return emptyScene("Square needs an anchor pair and a numeric side.")
	}

	sc := quad(anchor, side, side)
	sc.Explanation = fmt.Sprintf("Created square with side %g at (%g, %g).",
		round(side), round(anchor.X), round(anchor.Y))
	return sc
}

// quad строит четырехугольник против часовой стрелки: левый нижний,
// правый нижний, правый верхний, левый верхний.
func quad(anchor models.Point, width, height float64) models.CompiledScene {
	corners := []models.Point{
		{X: anchor.X, Y: anchor.Y},
		{X: anchor.X + width, Y: anchor.Y},
		{X: anchor.X + width, Y: anchor.Y + height},
		{X: anchor.X, Y: anchor.Y + height},
	}

	a := scene.NewAssembler()
	names := []string{"A", "B", "C", "D"}
	ids := make([]any, 0, len(corners))
	for i, corner := range corners {
		ids = append(ids, a.AddPoint(names[i], roundPoint(corner), nil))
	}
	a.Add(models.KindPolygon, ids, nil)

	return a.Scene("")
}

func createPolygon(data map[string]any) models.CompiledScene {
	vertices, ok := asPointList(data["vertices"])
	if !ok || len(vertices) == 0 {
		return emptyScene("Polygon vertices must be a list of number pairs.")
	}

	a := scene.NewAssembler()
	names := stringListOr(data, "names")
	ids := make([]any, 0, len(vertices))
	for i, v := range vertices {
		ids = append(ids, a.AddPoint(nameAt(names, i, a), roundPoint(v), nil))
	}
	a.Add(models.KindPolygon, ids, nil)

	return a.Scene(fmt.Sprintf("Created polygon with %d vertices.", len(vertices)))
}

func calculateDistance(data map[string]any) models.CompiledScene {
	p1, ok1 := asPair(data["point1"])
	p2, ok2 := asPair(data["point2"])
	if !ok1 || !ok2 {
		return emptyScene("Distance needs two pairs of numbers.")
	}

	d := math.Hypot(p2.X-p1.X, p2.Y-p1.Y)
	return emptyScene(fmt.Sprintf("Distance between (%g, %g) and (%g, %g) is %.2f.",
		round(p1.X), round(p1.Y), round(p2.X), round(p2.Y), d))
}

func calculateMidpoint(data map[string]any) models.CompiledScene {
	p1, ok1 := asPair(data["point1"])
	p2, ok2 := asPair(data["point2"])
	if !ok1 || !ok2 {
		return emptyScene("Midpoint needs two pairs of numbers.")
	}

	mid := models.Point{X: round((p1.X + p2.X) / 2), Y: round((p1.Y + p2.Y) / 2)}

	a := scene.NewAssembler()
	a.AddPoint("M", mid, nil)
	return a.Scene(fmt.Sprintf("Midpoint of (%g, %g) and (%g, %g) is (%g, %g).",
		round(p1.X), round(p1.Y), round(p2.X), round(p2.Y), mid.X, mid.Y))
}

// ============================================================
// Analytic intents
// ============================================================

// compileAnalytic не считает математику: выражения проверяются на
// запрещенные фрагменты и пробрасываются клиентскому движку как есть.
func compileAnalytic(intent models.Intent) models.GraphResponse {
	expressions := collectExpressions(intent.Data)
	if len(expressions) == 0 {
		return emptyResponse(fmt.Sprintf("Intent %q needs at least one expression.", intent.Name))
	}

	for _, expr := range expressions {
		if sanitizer.Suspect(expr) {
			return emptyResponse(fmt.Sprintf(
				"Expression %q contains a disallowed fragment and was rejected.", expr))
		}
	}

	explanation := intent.Explanation
	if explanation == "" {
		explanation = fmt.Sprintf("Delegated %s to the math engine.", intent.Name)
	}

	return models.GraphResponse{
		Intent:      intent.Name,
		Data:        intent.Data,
		Elements:    []models.Element{},
		Explanation: explanation,
	}
}

func collectExpressions(data map[string]any) []string {
	if expr, ok := data["expression"].(string); ok {
		return []string{expr}
	}

	var out []string
	switch list := data["expressions"].(type) {
	case []any:
		for _, v := range list {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
	case []string:
		out = list
	}
	return out
}

// ============================================================
// Parameter coercion
// ============================================================

func asNumber(v any) (float64, bool) {
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
		// ParseFloat принимает "NaN"/"Inf", а encoding/json такие
		// значения сериализовать не может — отсекаем здесь.
		n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		return n, err == nil && finite(n)
	default:
		return 0, false
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func asPair(v any) (models.Point, bool) {
	switch value := v.(type) {
	case []any:
		if len(value) < 2 {
			return models.Point{}, false
		}
		x, okX := asNumber(value[0])
		y, okY := asNumber(value[1])
		return models.Point{X: x, Y: y}, okX && okY
	case []float64:
		if len(value) < 2 {
			return models.Point{}, false
		}
		return models.Point{X: value[0], Y: value[1]}, true
	case map[string]any:
		x, okX := asNumber(value["x"])
		y, okY := asNumber(value["y"])
		return models.Point{X: x, Y: y}, okX && okY
	default:
		return models.Point{}, false
	}
}

func asPairOr(v any, def models.Point) (models.Point, bool) {
	if v == nil {
		return def, true
	}
	if p, ok := asPair(v); ok {
		return p, true
	}
	return def, false
}

func asPointList(v any) ([]models.Point, bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	points := make([]models.Point, 0, len(list))
	for _, item := range list {
		p, ok := asPair(item)
		if !ok {
			return nil, false
		}
		points = append(points, p)
	}
	return points, true
}

func numberOr(data map[string]any, key string, def float64) float64 {
	if n, ok := asNumber(data[key]); ok {
		return n
	}
	return def
}

func stringOr(data map[string]any, key, def string) string {
	if s, ok := data[key].(string); ok && s != "" {
		return s
	}
	return def
}

func stringListOr(data map[string]any, key string) []string {
	switch list := data[key].(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, v := range list {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// nameAt берет имя из списка либо очередную алфавитную метку.
func nameAt(names []string, i int, a *scene.Assembler) string {
	if i < len(names) && names[i] != "" {
		return names[i]
	}
	return a.NextLabel()
}

func roundPoint(p models.Point) models.Point {
	return models.Point{X: round(p.X), Y: round(p.Y)}
}

func emptyScene(explanation string) models.CompiledScene {
	return models.CompiledScene{Elements: []models.Element{}, Explanation: explanation}
}

func emptyResponse(explanation string) models.GraphResponse {
	return models.GraphResponse{Elements: []models.Element{}, Explanation: explanation}
}
