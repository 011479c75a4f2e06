package scene

import (
	"fmt"

	"graph-calculator/internal/grapher/models"
)

// ============================================================
// Scene Assembler
// ============================================================

// Assembler собирает итоговую сцену: выдает стабильные id и хранит
// элементы в порядке добавления (точки раньше зависимых элементов).
type Assembler struct {
	elements []models.Element
	used     map[string]bool
	seq      map[string]int
	labelSeq int
}

func NewAssembler() *Assembler {
	return &Assembler{
		elements: []models.Element{},
		used:     make(map[string]bool),
		seq:      make(map[string]int),
	}
}

// AddPoint добавляет точку и возвращает её id. Точка с именем "A"
// получает id "pA"; коллизии разрешаются числовым суффиксом.
func (a *Assembler) AddPoint(name string, p models.Point, props map[string]any) string {
	if name == "" {
		name = a.NextLabel()
	}

	id := a.uniqueID("p" + name)

	merged := map[string]any{"name": name}
	for k, v := range props {
		merged[k] = v
	}

	a.elements = append(a.elements, models.Element{
		ID:         id,
		Type:       models.KindPoint,
		Parents:    []any{p.X, p.Y},
		Properties: merged,
	})
	return id
}

// Add добавляет не-точечный элемент. Все id точек в parents должны
// быть уже добавлены — порядок сцены отражает DAG зависимостей.
func (a *Assembler) Add(kind string, parents []any, props map[string]any) string {
	a.seq[kind]++
	id := a.uniqueID(fmt.Sprintf("%s%d", kindPrefix(kind), a.seq[kind]))

	a.elements = append(a.elements, models.Element{
		ID:         id,
		Type:       kind,
		Parents:    parents,
		Properties: props,
	})
	return id
}

// NextLabel выдает очередную алфавитную метку: A..Z, затем A1, B1, ...
func (a *Assembler) NextLabel() string {
	letter := string(rune('A' + a.labelSeq%26))
	round := a.labelSeq / 26
	a.labelSeq++
	if round == 0 {
		return letter
	}
	return fmt.Sprintf("%s%d", letter, round)
}

// Scene выпускает собранную сцену.
func (a *Assembler) Scene(explanation string) models.CompiledScene {
	return models.CompiledScene{
		Elements:    a.elements,
		Explanation: explanation,
	}
}

func (a *Assembler) uniqueID(id string) string {
	candidate := id
	for n := 2; a.used[candidate]; n++ {
		candidate = fmt.Sprintf("%s_%d", id, n)
	}
	a.used[candidate] = true
	return candidate
}

func kindPrefix(kind string) string {
	switch kind {
	case models.KindSegment:
		return "seg"
	case models.KindLine:
		return "line"
	case models.KindCircle:
		return "circ"
	case models.KindPolygon:
		return "poly"
	case models.KindAngle:
		return "ang"
	default:
		return "el"
	}
}
