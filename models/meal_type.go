package models

import "time"

const (
	DrinkNone   = "none"
	DrinkSmall  = "small"
	DrinkMedium = "medium"
	DrinkLarge  = "large"
)

// MealType is a purchasable combo: it fixes how many entrees and sides a line
// must carry and whether a drink comes with it.
type MealType struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);unique;not null" json:"name"`
	BasePrice   float64   `gorm:"type:decimal(10,2);not null" json:"base_price"`
	EntreeCount int       `gorm:"not null" json:"entree_count"`
	SideCount   int       `gorm:"not null" json:"side_count"`
	DrinkSize   string    `gorm:"type:varchar(10);not null;default:'none'" json:"drink_size"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

// IncludesDrink reports whether a committed line of this meal type needs a drink.
func (m MealType) IncludesDrink() bool {
	return m.DrinkSize != "" && m.DrinkSize != DrinkNone
}

func ValidDrinkSize(size string) bool {
	switch size {
	case DrinkNone, DrinkSmall, DrinkMedium, DrinkLarge:
		return true
	}
	return false
}
