// Package selection holds the meal customization state machine shared by the
// kiosk and the cashier terminal.
//
// Clicking the same menu item repeatedly cycles its count up to the category
// capacity and back down to zero, so no separate remove control is needed.
// Items in one category compete for the same capacity: a full category blocks
// new additions but never evicts an item that is already selected.
package selection

import "github.com/aadit2805/project3-group7-deploy-sub000/models"

type Direction uint8

const (
	Ascending Direction = iota + 1
	Descending
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "ascending"
	case Descending:
		return "descending"
	}
	return "absent"
}

// State is the selection of one category (entrees or sides) of one order line.
// Direction has an entry exactly for the items present in Selected.
type State struct {
	Selected  []models.MenuItem
	Direction map[uint]Direction
}

func NewState() State {
	return State{Direction: make(map[uint]Direction)}
}

// Count returns how many copies of the item are selected.
func (s State) Count(itemID uint) int {
	n := 0
	for _, it := range s.Selected {
		if it.ID == itemID {
			n++
		}
	}
	return n
}

func (s State) Len() int {
	return len(s.Selected)
}

func (s State) clone() State {
	next := State{
		Selected:  make([]models.MenuItem, len(s.Selected), len(s.Selected)+1),
		Direction: make(map[uint]Direction, len(s.Direction)+1),
	}
	copy(next.Selected, s.Selected)
	for id, d := range s.Direction {
		next.Direction[id] = d
	}
	return next
}

func (s *State) removeFirst(itemID uint) {
	for i, it := range s.Selected {
		if it.ID == itemID {
			s.Selected = append(s.Selected[:i], s.Selected[i+1:]...)
			return
		}
	}
}

// Apply returns the state after one click on item in a category holding at
// most capacity items. The input state is not modified.
func Apply(s State, item models.MenuItem, capacity int) State {
	next := s.clone()
	itemCount := next.Count(item.ID)
	totalCount := len(next.Selected)

	switch {
	case itemCount == 0:
		if totalCount < capacity {
			next.Selected = append(next.Selected, item)
			next.Direction[item.ID] = Ascending
		}
	case itemCount < capacity && next.Direction[item.ID] == Ascending:
		if totalCount < capacity {
			next.Selected = append(next.Selected, item)
			break
		}
		// no room left for another copy: turn around
		next.removeFirst(item.ID)
		next.settle(item.ID)
	default:
		next.removeFirst(item.ID)
		next.settle(item.ID)
	}
	return next
}

// settle marks a just-decremented item as descending, or forgets it once its
// last copy is gone so the next click starts a fresh cycle.
func (s *State) settle(itemID uint) {
	if s.Count(itemID) == 0 {
		delete(s.Direction, itemID)
		return
	}
	s.Direction[itemID] = Descending
}

// IDs lists the selected item ids in click order.
func (s State) IDs() []uint {
	ids := make([]uint, len(s.Selected))
	for i, it := range s.Selected {
		ids[i] = it.ID
	}
	return ids
}
