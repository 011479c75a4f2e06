package sanitizer

import (
	"encoding/json"
	"math"
	"testing"

	"graph-calculator/internal/grapher/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuspect(t *testing.T) {
	suspect := []string{
		"(a)=>{return 1}",
		"function evil() {}",
		"Math.sin(x)",
		"JXG.Board",
		"board.create('point')",
		"eval(code)",
		"window.location",
		"`template`",
		"${payload}",
	}
	for _, s := range suspect {
		assert.True(t, Suspect(s), "expected suspect: %q", s)
	}

	clean := []string{"pA", "point_1", "O", "3.14", "vertex_12"}
	for _, s := range clean {
		assert.False(t, Suspect(s), "expected clean: %q", s)
	}
}

func TestIdentifier(t *testing.T) {
	assert.True(t, Identifier("pA"))
	assert.True(t, Identifier("vertex_12"))
	assert.False(t, Identifier("12abc"))
	assert.False(t, Identifier("a b"))
	assert.False(t, Identifier(""))
}

func TestSanitizeDropsTaintedElement(t *testing.T) {
	in := models.CompiledScene{
		Elements: []models.Element{
			{ID: "x1", Type: "point", Parents: []any{"(a)=>{return 1}", 2.0}},
			{ID: "x2", Type: "point", Parents: []any{1.0, 2.0}},
		},
		Explanation: "two points",
	}

	out := Sanitize(in)

	require.Len(t, out.Elements, 1)
	assert.Equal(t, "x2", out.Elements[0].ID)
	assert.Equal(t, "two points", out.Explanation)
}

func TestSanitizeAllOrNothingPerElement(t *testing.T) {
	// Один подозрительный слот валит весь элемент, даже если
	// остальные слоты безобидны.
	in := models.CompiledScene{
		Elements: []models.Element{
			{ID: "seg1", Type: "segment", Parents: []any{"pA", "function(){}", "pB"}},
		},
	}

	out := Sanitize(in)
	assert.Empty(t, out.Elements)
}

func TestSanitizeCoercesNumericStrings(t *testing.T) {
	in := models.CompiledScene{
		Elements: []models.Element{
			{ID: "p1", Type: "point", Parents: []any{"2", " 3.5 "}},
		},
	}

	out := Sanitize(in)

	require.Len(t, out.Elements, 1)
	assert.Equal(t, []any{2.0, 3.5}, out.Elements[0].Parents)
}

func TestSanitizeKeepsIdentifierReferences(t *testing.T) {
	in := models.CompiledScene{
		Elements: []models.Element{
			{ID: "c1", Type: "circle", Parents: []any{"pO", 3.0}},
		},
	}

	out := Sanitize(in)

	require.Len(t, out.Elements, 1)
	assert.Equal(t, []any{"pO", 3.0}, out.Elements[0].Parents)
}

func TestSanitizeFallbackIDAndKind(t *testing.T) {
	in := models.CompiledScene{
		Elements: []models.Element{
			{Parents: []any{1.0, 2.0}},
			{ID: "board.create", Type: "a b", Parents: []any{3.0, 4.0}},
		},
	}

	out := Sanitize(in)

	require.Len(t, out.Elements, 2)
	for _, el := range out.Elements {
		assert.Equal(t, "unknown", el.ID)
		assert.Equal(t, models.KindPoint, el.Type)
	}
}

func TestSanitizeDropsNonFiniteNumbers(t *testing.T) {
	// "NaN"/"Infinity" проходят через ParseFloat, но ломают
	// json.Marshal ответа — такие слоты считаются битыми.
	in := models.CompiledScene{
		Elements: []models.Element{
			{ID: "p1", Type: "point", Parents: []any{"NaN", 2.0}},
			{ID: "p2", Type: "point", Parents: []any{"Infinity", 2.0}},
			{ID: "p3", Type: "point", Parents: []any{math.Inf(-1), 2.0}},
			{ID: "p4", Type: "point", Parents: []any{1.0, 2.0}},
		},
	}

	out := Sanitize(in)

	require.Len(t, out.Elements, 1)
	assert.Equal(t, "p4", out.Elements[0].ID)

	_, err := json.Marshal(out)
	assert.NoError(t, err)
}

func TestSanitizeDropsBoolSlots(t *testing.T) {
	in := models.CompiledScene{
		Elements: []models.Element{
			{ID: "p1", Type: "point", Parents: []any{true, 2.0}},
			{ID: "p2", Type: "point", Parents: []any{1.0, 2.0}},
		},
	}

	out := Sanitize(in)

	require.Len(t, out.Elements, 1)
	assert.Equal(t, "p2", out.Elements[0].ID)
}

func TestSanitizeDropsStructuredSlots(t *testing.T) {
	in := models.CompiledScene{
		Elements: []models.Element{
			{ID: "p1", Type: "point", Parents: []any{[]any{1.0, 2.0}}},
			{ID: "p2", Type: "point", Parents: []any{map[string]any{"x": 1.0}}},
		},
	}

	out := Sanitize(in)
	assert.Empty(t, out.Elements)
}

func TestSanitizePreservesProperties(t *testing.T) {
	props := map[string]any{"name": "A", "color": "#ff0000", "custom": true}
	in := models.CompiledScene{
		Elements: []models.Element{
			{ID: "p1", Type: "point", Parents: []any{0.0, 0.0}, Properties: props},
		},
	}

	out := Sanitize(in)

	require.Len(t, out.Elements, 1)
	assert.Equal(t, props, out.Elements[0].Properties)
}

func TestSanitizeDefaultsExplanation(t *testing.T) {
	out := Sanitize(models.CompiledScene{})
	assert.Equal(t, "", out.Explanation)
	assert.NotNil(t, out.Elements)
}
