package models

import "time"

// DayClose is a Z-Report: the totals of every order closed out together.
type DayClose struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	BusinessDate string    `gorm:"type:varchar(10);not null;index" json:"business_date"`
	OrderCount   int64     `gorm:"not null" json:"order_count"`
	GrossTotal   float64   `gorm:"type:decimal(12,2);not null" json:"gross_total"`
	KioskTotal   float64   `gorm:"type:decimal(12,2);not null" json:"kiosk_total"`
	CashierTotal float64   `gorm:"type:decimal(12,2);not null" json:"cashier_total"`
	ClosedBy     uint      `gorm:"not null" json:"closed_by"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}
