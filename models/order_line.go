package models

import "time"

const (
	RoleEntree = "entree"
	RoleSide   = "side"
	RoleDrink  = "drink"
)

// OrderLine is one committed combo of an order.
type OrderLine struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	OrderID    uint `gorm:"not null;index" json:"order_id"`
	// Omitting Order field from JSON to avoid recursive nesting
	Order      Order           `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MealTypeID uint            `gorm:"not null" json:"meal_type_id"`
	MealType   MealType        `gorm:"foreignKey:MealTypeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"meal_type"`
	Price      float64         `gorm:"type:decimal(10,2);not null" json:"price"`
	Items      []OrderLineItem `gorm:"foreignKey:OrderLineID" json:"items"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
}

// OrderLineItem is one selected menu item of a line; duplicates are stored as
// separate rows. Upcharge is captured at order time.
type OrderLineItem struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	OrderLineID uint     `gorm:"not null;index" json:"order_line_id"`
	MenuItemID  uint     `gorm:"not null" json:"menu_item_id"`
	MenuItem    MenuItem `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"menu_item"`
	Role        string   `gorm:"type:varchar(10);not null" json:"role"`
	Upcharge    float64  `gorm:"type:decimal(10,2);not null" json:"upcharge"`
}
