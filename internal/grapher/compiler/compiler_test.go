package compiler

import (
	"encoding/json"
	"math"
	"testing"

	"graph-calculator/internal/grapher/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coords(t *testing.T, el models.Element) (float64, float64) {
	t.Helper()
	require.Equal(t, models.KindPoint, el.Type)
	require.Len(t, el.Parents, 2)
	x, ok := el.Parents[0].(float64)
	require.True(t, ok)
	y, ok := el.Parents[1].(float64)
	require.True(t, ok)
	return x, y
}

func dist(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

func TestEquilateralTriangleSidesEqual(t *testing.T) {
	resp := Compile(models.Intent{
		Name: "create_triangle",
		Data: map[string]any{"type": "equilateral", "base_length": 5.0},
	})

	require.Len(t, resp.Elements, 6) // 3 points + 3 segments

	ax, ay := coords(t, resp.Elements[0])
	bx, by := coords(t, resp.Elements[1])
	cx, cy := coords(t, resp.Elements[2])

	assert.InDelta(t, 5.0, dist(ax, ay, bx, by), 1e-6)
	assert.InDelta(t, 5.0, dist(bx, by, cx, cy), 1e-6)
	assert.InDelta(t, 5.0, dist(cx, cy, ax, ay), 1e-6)

	for _, el := range resp.Elements[3:] {
		assert.Equal(t, models.KindSegment, el.Type)
	}
}

func TestTriangleHeightDefaults(t *testing.T) {
	tests := []struct {
		name  string
		kind  string
		wantC models.Point
	}{
		{"isosceles default height", "isosceles", models.Point{X: 2, Y: 3.2}},
		{"right default height", "right", models.Point{X: 0, Y: 3}},
		{"general fallback placement", "general", models.Point{X: 1.2, Y: 2.8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := Compile(models.Intent{
				Name: "create_triangle",
				Data: map[string]any{"type": tt.kind, "base_length": 4.0},
			})
			require.Len(t, resp.Elements, 6)

			cx, cy := coords(t, resp.Elements[2])
			assert.InDelta(t, tt.wantC.X, cx, 1e-6)
			assert.InDelta(t, tt.wantC.Y, cy, 1e-6)
		})
	}
}

func TestTriangleEquilateralIgnoresHeight(t *testing.T) {
	resp := Compile(models.Intent{
		Name: "create_triangle",
		Data: map[string]any{"type": "equilateral", "base_length": 2.0, "height": 99.0},
	})

	_, cy := coords(t, resp.Elements[2])
	assert.InDelta(t, math.Sqrt(3), cy, 1e-6)
}

func TestRectangleCorners(t *testing.T) {
	resp := Compile(models.Intent{
		Name: "create_rectangle",
		Data: map[string]any{"anchor": []any{0.0, 0.0}, "width": 6.0, "height": 3.0},
	})

	require.Len(t, resp.Elements, 5)

	want := [][2]float64{{0, 0}, {6, 0}, {6, 3}, {0, 3}}
	for i, w := range want {
		x, y := coords(t, resp.Elements[i])
		assert.Equal(t, w[0], x)
		assert.Equal(t, w[1], y)
	}

	poly := resp.Elements[4]
	require.Equal(t, models.KindPolygon, poly.Type)
	require.Len(t, poly.Parents, 4)
	for i := range want {
		assert.Equal(t, resp.Elements[i].ID, poly.Parents[i])
	}
}

func TestSquareEndToEnd(t *testing.T) {
	resp := Compile(models.Intent{
		Name: "create_square",
		Data: map[string]any{"anchor": []any{0.0, 0.0}, "side": 4.0},
	})

	require.Len(t, resp.Elements, 5)

	want := [][2]float64{{0, 0}, {4, 0}, {4, 4}, {0, 4}}
	for i, w := range want {
		x, y := coords(t, resp.Elements[i])
		assert.Equal(t, w[0], x)
		assert.Equal(t, w[1], y)
	}

	poly := resp.Elements[4]
	require.Equal(t, models.KindPolygon, poly.Type)
	assert.Equal(t, []any{resp.Elements[0].ID, resp.Elements[1].ID, resp.Elements[2].ID, resp.Elements[3].ID}, poly.Parents)
}

func TestCircleEndToEnd(t *testing.T) {
	resp := Compile(models.Intent{
		Name: "create_circle",
		Data: map[string]any{"center": []any{2.0, 4.0}, "radius": 3.0, "name": "O"},
	})

	require.Len(t, resp.Elements, 2)

	center := resp.Elements[0]
	assert.Equal(t, "pO", center.ID)
	x, y := coords(t, center)
	assert.Equal(t, 2.0, x)
	assert.Equal(t, 4.0, y)

	circle := resp.Elements[1]
	require.Equal(t, models.KindCircle, circle.Type)
	assert.Equal(t, []any{"pO", 3.0}, circle.Parents)
}

func TestCreateLine(t *testing.T) {
	resp := Compile(models.Intent{
		Name: "create_line",
		Data: map[string]any{"point1": []any{0.0, 0.0}, "point2": []any{3.0, 4.0}},
	})

	require.Len(t, resp.Elements, 3)
	line := resp.Elements[2]
	require.Equal(t, models.KindLine, line.Type)
	assert.Equal(t, []any{resp.Elements[0].ID, resp.Elements[1].ID}, line.Parents)
}

func TestCreatePolygonAutoNames(t *testing.T) {
	resp := Compile(models.Intent{
		Name: "create_polygon",
		Data: map[string]any{
			"vertices": []any{[]any{0.0, 0.0}, []any{4.0, 0.0}, []any{2.0, 3.0}},
			"names":    []any{"P"},
		},
	})

	require.Len(t, resp.Elements, 4)
	assert.Equal(t, "pP", resp.Elements[0].ID)
	assert.Equal(t, "pA", resp.Elements[1].ID)
	assert.Equal(t, "pB", resp.Elements[2].ID)

	poly := resp.Elements[3]
	require.Equal(t, models.KindPolygon, poly.Type)
	require.Len(t, poly.Parents, 3)
}

func TestCalculateDistance(t *testing.T) {
	resp := Compile(models.Intent{
		Name: "calculate_distance",
		Data: map[string]any{"point1": []any{0.0, 0.0}, "point2": []any{3.0, 4.0}},
	})

	assert.Empty(t, resp.Elements)
	assert.Contains(t, resp.Explanation, "5.00")
}

func TestCalculateMidpoint(t *testing.T) {
	resp := Compile(models.Intent{
		Name: "calculate_midpoint",
		Data: map[string]any{"point1": []any{0.0, 0.0}, "point2": []any{4.0, 6.0}},
	})

	require.Len(t, resp.Elements, 1)
	x, y := coords(t, resp.Elements[0])
	assert.Equal(t, 2.0, x)
	assert.Equal(t, 3.0, y)

	// Середина равноудалена от концов.
	assert.InDelta(t, dist(0, 0, x, y), dist(4, 6, x, y), 1e-6)
}

func TestUnknownIntent(t *testing.T) {
	resp := Compile(models.Intent{Name: "draw_unicorn", Data: map[string]any{}})

	assert.Empty(t, resp.Elements)
	assert.Contains(t, resp.Explanation, "draw_unicorn")
	// Пояснение перечисляет поддерживаемые интенты.
	assert.Contains(t, resp.Explanation, "create_point")
	assert.Contains(t, resp.Explanation, "plot_function")
}

func TestMissingRequiredParameters(t *testing.T) {
	resp := Compile(models.Intent{
		Name: "create_circle",
		Data: map[string]any{"center": []any{0.0, 0.0}},
	})

	assert.Empty(t, resp.Elements)
	assert.Contains(t, resp.Explanation, "radius")
}

func TestDegenerateSizesAccepted(t *testing.T) {
	resp := Compile(models.Intent{
		Name: "create_square",
		Data: map[string]any{"anchor": []any{1.0, 1.0}, "side": 0.0},
	})
	assert.Len(t, resp.Elements, 5)

	resp = Compile(models.Intent{
		Name: "create_circle",
		Data: map[string]any{"center": []any{0.0, 0.0}, "radius": -2.0},
	})
	assert.Len(t, resp.Elements, 2)
}

func TestCompileIsDeterministic(t *testing.T) {
	intent := models.Intent{
		Name: "create_triangle",
		Data: map[string]any{"type": "isosceles", "base_length": 7.3, "anchor": []any{1.5, -2.25}},
	}

	first := Compile(intent)
	second := Compile(intent)
	assert.Equal(t, first, second)
}

func TestNumericStringCoercion(t *testing.T) {
	resp := Compile(models.Intent{
		Name: "create_point",
		Data: map[string]any{"x": "1.5", "y": 2.0},
	})

	require.Len(t, resp.Elements, 1)
	x, y := coords(t, resp.Elements[0])
	assert.Equal(t, 1.5, x)
	assert.Equal(t, 2.0, y)
}

func TestNonFiniteInputRejected(t *testing.T) {
	// ParseFloat принимает "NaN"/"Inf", но в сцену такие значения
	// попадать не должны: json.Marshal на них падает.
	resp := Compile(models.Intent{
		Name: "create_point",
		Data: map[string]any{"x": "NaN", "y": "Inf"},
	})

	assert.Empty(t, resp.Elements)
	assert.Contains(t, resp.Explanation, "numbers")

	resp = Compile(models.Intent{
		Name: "create_circle",
		Data: map[string]any{"center": []any{0.0, 0.0}, "radius": math.Inf(1)},
	})
	assert.Empty(t, resp.Elements)

	_, err := json.Marshal(resp)
	assert.NoError(t, err)
}

func TestCoordinateRounding(t *testing.T) {
	resp := Compile(models.Intent{
		Name: "create_point",
		Data: map[string]any{"x": 0.1 + 0.2, "y": 0.0},
	})

	x, _ := coords(t, resp.Elements[0])
	assert.Equal(t, 0.3, x)
}

func TestAnalyticIntentPassThrough(t *testing.T) {
	resp := Compile(models.Intent{
		Name:        "plot_function",
		Data:        map[string]any{"expressions": []any{"sin(x)", "x**2"}},
		Explanation: "Plotted sin(x) and x^2.",
	})

	assert.Equal(t, "plot_function", resp.Intent)
	assert.Empty(t, resp.Elements)
	assert.Equal(t, "Plotted sin(x) and x^2.", resp.Explanation)
	assert.Equal(t, map[string]any{"expressions": []any{"sin(x)", "x**2"}}, resp.Data)
}

func TestAnalyticIntentRejectsSuspectExpression(t *testing.T) {
	resp := Compile(models.Intent{
		Name: "plot_derivative",
		Data: map[string]any{"expression": "Math.sin(x)"},
	})

	assert.Empty(t, resp.Elements)
	assert.Nil(t, resp.Data)
	assert.Contains(t, resp.Explanation, "rejected")
}

func TestExplanationPrefersUpstreamForGeometry(t *testing.T) {
	resp := Compile(models.Intent{
		Name:        "create_square",
		Data:        map[string]any{"anchor": []any{0.0, 0.0}, "side": 1.0},
		Explanation: "Нарисовал квадрат со стороной 1.",
	})

	assert.Equal(t, "Нарисовал квадрат со стороной 1.", resp.Explanation)
}
