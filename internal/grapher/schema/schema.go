package schema

import "sort"

// ============================================================
// Intent Schema
// ============================================================

// ParamType — семантический тип параметра интента.
type ParamType int

const (
	Number ParamType = iota
	NumberPair
	String
	PointList  // последовательность пар чисел
	StringList // имена точек, выражения, цвета
)

// IntentSpec описывает форму мешка параметров одного интента.
type IntentSpec struct {
	Required map[string]ParamType
	Optional map[string]ParamType
	// Analytic: вся математика делегируется клиентскому движку,
	// сервис только валидирует и пробрасывает параметры.
	Analytic bool
}

// vocabulary — закрытый словарь интентов. Единственный источник
// правды для компилятора и санитайзера.
var vocabulary = map[string]IntentSpec{
	"create_point": {
		Required: map[string]ParamType{"x": Number, "y": Number},
		Optional: map[string]ParamType{"name": String},
	},
	"create_line": {
		Required: map[string]ParamType{"point1": NumberPair, "point2": NumberPair},
		Optional: map[string]ParamType{"names": StringList},
	},
	"create_circle": {
		Required: map[string]ParamType{"center": NumberPair, "radius": Number},
		Optional: map[string]ParamType{"name": String},
	},
	"create_triangle": {
		Required: map[string]ParamType{"base_length": Number},
		Optional: map[string]ParamType{"type": String, "anchor": NumberPair, "height": Number},
	},
	"create_rectangle": {
		Required: map[string]ParamType{"anchor": NumberPair, "width": Number, "height": Number},
	},
	"create_square": {
		Required: map[string]ParamType{"anchor": NumberPair, "side": Number},
	},
	"create_polygon": {
		Required: map[string]ParamType{"vertices": PointList},
		Optional: map[string]ParamType{"names": StringList},
	},
	"calculate_distance": {
		Required: map[string]ParamType{"point1": NumberPair, "point2": NumberPair},
	},
	"calculate_midpoint": {
		Required: map[string]ParamType{"point1": NumberPair, "point2": NumberPair},
	},
	"plot_function": {
		Required: map[string]ParamType{"expressions": StringList},
		Optional: map[string]ParamType{"colors": StringList},
		Analytic: true,
	},
	"plot_derivative": {
		Required: map[string]ParamType{"expression": String},
		Optional: map[string]ParamType{"order": Number},
		Analytic: true,
	},
	"plot_integral": {
		Required: map[string]ParamType{"expression": String},
		Analytic: true,
	},
	"solve_and_plot": {
		Required: map[string]ParamType{"expression": String},
		Analytic: true,
	},
	"find_extrema": {
		Required: map[string]ParamType{"expression": String},
		Analytic: true,
	},
}

// Lookup возвращает спецификацию интента по имени.
func Lookup(name string) (IntentSpec, bool) {
	spec, ok := vocabulary[name]
	return spec, ok
}

// MissingRequired возвращает обязательные ключи, отсутствующие в data.
func MissingRequired(name string, data map[string]any) []string {
	spec, ok := vocabulary[name]
	if !ok {
		return nil
	}
	var missing []string
	for key := range spec.Required {
		if _, present := data[key]; !present {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}

// Names возвращает все распознаваемые имена интентов.
func Names() []string {
	names := make([]string, 0, len(vocabulary))
	for name := range vocabulary {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
