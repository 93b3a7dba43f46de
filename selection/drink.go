package selection

import "github.com/aadit2805/project3-group7-deploy-sub000/models"

// ToggleDrink is the single-select drink rule: clicking the current drink
// clears it, clicking any other drink replaces it.
func ToggleDrink(current *models.MenuItem, item models.MenuItem) *models.MenuItem {
	if current != nil && current.ID == item.ID {
		return nil
	}
	picked := item
	return &picked
}
