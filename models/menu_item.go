package models

import "time"

const (
	CategoryEntree = "entree"
	CategorySide   = "side"
	CategoryDrink  = "drink"
)

// MenuItem is a single selectable entree, side or drink. Upcharge is added on
// top of the meal type's base price.
type MenuItem struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	Upcharge       float64   `gorm:"type:decimal(10,2);not null" json:"upcharge"`
	IsAvailable    bool      `gorm:"not null" json:"is_available"`
	Category       string    `gorm:"type:varchar(20);not null;index" json:"category"`
	AvailableFrom  *string   `gorm:"type:varchar(5)" json:"available_from,omitempty"`
	AvailableUntil *string   `gorm:"type:varchar(5)" json:"available_until,omitempty"`
	Allergens      []string  `gorm:"serializer:json;type:text" json:"allergens"`
	Stock          int       `gorm:"not null" json:"stock"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}

func ValidCategory(category string) bool {
	switch category {
	case CategoryEntree, CategorySide, CategoryDrink:
		return true
	}
	return false
}
