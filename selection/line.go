package selection

import (
	"errors"
	"fmt"

	"github.com/aadit2805/project3-group7-deploy-sub000/models"
)

var (
	ErrIncompleteLine = errors.New("order line is incomplete")
	ErrWrongCategory  = errors.New("menu item does not belong to this slot")
	ErrLineIndex      = errors.New("order line index out of range")
)

// Line is one combo in the cart with its concrete selections.
type Line struct {
	MealType models.MealType   `json:"meal_type"`
	Entrees  []models.MenuItem `json:"entrees"`
	Sides    []models.MenuItem `json:"sides"`
	Drink    *models.MenuItem  `json:"drink,omitempty"`
}

// Price is the meal base price plus every selected item's upcharge.
func (l Line) Price() float64 {
	total := l.MealType.BasePrice
	for _, it := range l.Entrees {
		total += it.Upcharge
	}
	for _, it := range l.Sides {
		total += it.Upcharge
	}
	if l.Drink != nil {
		total += l.Drink.Upcharge
	}
	return total
}

// CheckLine enforces the commit invariant: exact entree and side counts for the
// meal type, items in their own slots, and a drink iff the meal includes one.
func CheckLine(l Line) error {
	mt := l.MealType
	if len(l.Entrees) != mt.EntreeCount {
		return fmt.Errorf("%w: %s needs %d entrees, got %d", ErrIncompleteLine, mt.Name, mt.EntreeCount, len(l.Entrees))
	}
	if len(l.Sides) != mt.SideCount {
		return fmt.Errorf("%w: %s needs %d sides, got %d", ErrIncompleteLine, mt.Name, mt.SideCount, len(l.Sides))
	}
	if mt.IncludesDrink() && l.Drink == nil {
		return fmt.Errorf("%w: %s needs a drink", ErrIncompleteLine, mt.Name)
	}
	if !mt.IncludesDrink() && l.Drink != nil {
		return fmt.Errorf("%w: %s does not include a drink", ErrWrongCategory, mt.Name)
	}
	for _, it := range l.Entrees {
		if it.Category != models.CategoryEntree {
			return fmt.Errorf("%w: %s is not an entree", ErrWrongCategory, it.Name)
		}
	}
	for _, it := range l.Sides {
		if it.Category != models.CategorySide {
			return fmt.Errorf("%w: %s is not a side", ErrWrongCategory, it.Name)
		}
	}
	if l.Drink != nil && l.Drink.Category != models.CategoryDrink {
		return fmt.Errorf("%w: %s is not a drink", ErrWrongCategory, l.Drink.Name)
	}
	return nil
}
