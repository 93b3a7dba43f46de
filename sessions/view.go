package sessions

import (
	"time"

	"github.com/aadit2805/project3-group7-deploy-sub000/models"
	"github.com/aadit2805/project3-group7-deploy-sub000/selection"
	"github.com/aadit2805/project3-group7-deploy-sub000/utils"
)

// View is the JSON snapshot of a session sent back after every request.
type View struct {
	ID        string           `json:"id"`
	Surface   string           `json:"surface"`
	CashierID *uint            `json:"cashier_id,omitempty"`
	Editor    *EditorView      `json:"editor,omitempty"`
	Lines     []selection.Line `json:"lines"`
	Total     float64          `json:"total"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type EditorView struct {
	MealType   models.MealType   `json:"meal_type"`
	Entrees    []models.MenuItem `json:"entrees"`
	Sides      []models.MenuItem `json:"sides"`
	Drink      *models.MenuItem  `json:"drink,omitempty"`
	Directions map[uint]string   `json:"directions"`
	Ready      bool              `json:"ready"`
	EditIndex  *int              `json:"edit_index,omitempty"`
}

func (s *Session) view() View {
	v := View{
		ID:        s.ID,
		Surface:   s.Surface,
		CashierID: s.CashierID,
		Lines:     s.Cart.Lines(),
		Total:     utils.RoundCents(s.Cart.Total()),
		UpdatedAt: s.UpdatedAt,
	}
	if e := s.Editor; e != nil {
		ev := &EditorView{
			MealType:   e.MealType,
			Entrees:    append([]models.MenuItem{}, e.Entrees.Selected...),
			Sides:      append([]models.MenuItem{}, e.Sides.Selected...),
			Directions: make(map[uint]string),
			Ready:      e.Ready(),
		}
		for id, d := range e.Entrees.Direction {
			ev.Directions[id] = d.String()
		}
		for id, d := range e.Sides.Direction {
			ev.Directions[id] = d.String()
		}
		if e.Drink != nil {
			d := *e.Drink
			ev.Drink = &d
		}
		if s.EditIndex >= 0 {
			idx := s.EditIndex
			ev.EditIndex = &idx
		}
		v.Editor = ev
	}
	return v
}
