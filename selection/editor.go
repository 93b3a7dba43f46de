package selection

import (
	"slices"
	"time"

	"github.com/aadit2805/project3-group7-deploy-sub000/models"
)

// Editor owns the selection of the order line currently being built. Both
// ordering surfaces drive the same editor; nothing in it is shared between
// lines or sessions.
type Editor struct {
	MealType models.MealType
	Entrees  State
	Sides    State
	Drink    *models.MenuItem
}

func NewEditor(mealType models.MealType) *Editor {
	e := &Editor{}
	e.Reset(mealType)
	return e
}

// Reset switches to a meal type and clears every selection.
func (e *Editor) Reset(mealType models.MealType) {
	e.MealType = mealType
	e.Entrees = NewState()
	e.Sides = NewState()
	e.Drink = nil
}

// Click applies one click and reports whether the selection changed. Clicks on
// unselectable items, on a full category, or on a drink for a meal without one
// are ignored.
func (e *Editor) Click(item models.MenuItem, now time.Time) bool {
	if !Selectable(item, now) {
		return false
	}

	switch item.Category {
	case models.CategoryEntree:
		next := Apply(e.Entrees, item, e.MealType.EntreeCount)
		changed := !slices.Equal(next.IDs(), e.Entrees.IDs())
		e.Entrees = next
		return changed
	case models.CategorySide:
		next := Apply(e.Sides, item, e.MealType.SideCount)
		changed := !slices.Equal(next.IDs(), e.Sides.IDs())
		e.Sides = next
		return changed
	case models.CategoryDrink:
		if !e.MealType.IncludesDrink() {
			return false
		}
		e.Drink = ToggleDrink(e.Drink, item)
		return true
	}
	return false
}

// Ready reports whether the line may be committed.
func (e *Editor) Ready() bool {
	return CheckLine(e.line()) == nil
}

// Commit hands out the finished line and clears the selections, keeping the
// meal type for the next line.
func (e *Editor) Commit() (Line, error) {
	l := e.line()
	if err := CheckLine(l); err != nil {
		return Line{}, err
	}
	e.Reset(e.MealType)
	return l, nil
}

// Edit loads a committed line back for changes. Every selected item restarts
// its cycle ascending.
func (e *Editor) Edit(l Line) {
	e.Reset(l.MealType)
	e.Entrees = load(l.Entrees)
	e.Sides = load(l.Sides)
	if l.Drink != nil {
		d := *l.Drink
		e.Drink = &d
	}
}

func (e *Editor) line() Line {
	l := Line{
		MealType: e.MealType,
		Entrees:  slices.Clone(e.Entrees.Selected),
		Sides:    slices.Clone(e.Sides.Selected),
	}
	if l.Entrees == nil {
		l.Entrees = []models.MenuItem{}
	}
	if l.Sides == nil {
		l.Sides = []models.MenuItem{}
	}
	if e.Drink != nil {
		d := *e.Drink
		l.Drink = &d
	}
	return l
}

func load(items []models.MenuItem) State {
	s := NewState()
	s.Selected = slices.Clone(items)
	for _, it := range items {
		s.Direction[it.ID] = Ascending
	}
	return s
}
