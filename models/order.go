package models

import (
	"fmt"
	"time"
)

const (
	SourceKiosk   = "kiosk"
	SourceCashier = "cashier"
)

const (
	OrderPlaced     = "placed"
	OrderInProgress = "in_progress"
	OrderReady      = "ready"
	OrderCompleted  = "completed"
)

type Order struct {
	ID                uint        `gorm:"primaryKey" json:"id"`
	Source            string      `gorm:"type:varchar(10);not null" json:"source"`
	CashierID         *uint       `gorm:"index" json:"cashier_id,omitempty"`
	Cashier           *User       `gorm:"foreignKey:CashierID" json:"cashier,omitempty"`
	Status            string      `gorm:"type:varchar(20);not null;default:'placed'" json:"status"`
	Total             float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total"`
	DayCloseID        *uint       `gorm:"index" json:"day_close_id,omitempty"`
	StartCookingTime  *time.Time  `json:"start_cooking_time,omitempty"`
	FinishCookingTime *time.Time  `json:"finish_cooking_time,omitempty"`
	Lines             []OrderLine `gorm:"foreignKey:OrderID" json:"lines"`
	CreatedAt         time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time   `gorm:"not null" json:"updated_at"`
}

// TicketNumber is the short number called out at the counter.
func (o *Order) TicketNumber() string {
	return fmt.Sprintf("#%03d", o.ID%1000)
}
