package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/aadit2805/project3-group7-deploy-sub000/kds"
	"github.com/aadit2805/project3-group7-deploy-sub000/models"
	"github.com/aadit2805/project3-group7-deploy-sub000/utils"
)

type ItemSales struct {
	MenuItemID    uint    `json:"menu_item_id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Quantity      int64   `json:"quantity"`
	UpchargeTotal float64 `json:"upcharge_total"`
}

// Summary is the running total of orders that have not been day-closed yet.
type Summary struct {
	OrderCount   int64       `json:"order_count"`
	GrossTotal   float64     `json:"gross_total"`
	KioskTotal   float64     `json:"kiosk_total"`
	CashierTotal float64     `json:"cashier_total"`
	Items        []ItemSales `gorm:"-" json:"items"`
}

type ReportService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db, Now: time.Now}
}

const totalsQuery = `
SELECT COUNT(*) AS order_count,
       COALESCE(SUM(total), 0) AS gross_total,
       COALESCE(SUM(CASE WHEN source = ? THEN total ELSE 0 END), 0) AS kiosk_total,
       COALESCE(SUM(CASE WHEN source = ? THEN total ELSE 0 END), 0) AS cashier_total
FROM orders
WHERE day_close_id IS NULL`

const openItemsQuery = `
SELECT oli.menu_item_id, mi.name, mi.category,
       COUNT(*) AS quantity,
       COALESCE(SUM(oli.upcharge), 0) AS upcharge_total
FROM order_line_items oli
JOIN order_lines ol ON ol.id = oli.order_line_id
JOIN orders o ON o.id = ol.order_id
JOIN menu_items mi ON mi.id = oli.menu_item_id
WHERE o.day_close_id IS NULL
GROUP BY oli.menu_item_id, mi.name, mi.category
ORDER BY quantity DESC, mi.name ASC`

const rangeItemsQuery = `
SELECT oli.menu_item_id, mi.name, mi.category,
       COUNT(*) AS quantity,
       COALESCE(SUM(oli.upcharge), 0) AS upcharge_total
FROM order_line_items oli
JOIN order_lines ol ON ol.id = oli.order_line_id
JOIN orders o ON o.id = ol.order_id
JOIN menu_items mi ON mi.id = oli.menu_item_id
WHERE o.created_at >= ? AND o.created_at < ?
GROUP BY oli.menu_item_id, mi.name, mi.category
ORDER BY quantity DESC, mi.name ASC`

func summarize(db *gorm.DB) (*Summary, error) {
	var sum Summary
	if err := db.Raw(totalsQuery, models.SourceKiosk, models.SourceCashier).Scan(&sum).Error; err != nil {
		return nil, err
	}
	sum.Items = []ItemSales{}
	if err := db.Raw(openItemsQuery).Scan(&sum.Items).Error; err != nil {
		return nil, err
	}
	sum.GrossTotal = utils.RoundCents(sum.GrossTotal)
	sum.KioskTotal = utils.RoundCents(sum.KioskTotal)
	sum.CashierTotal = utils.RoundCents(sum.CashierTotal)
	return &sum, nil
}

// XReport reads the current totals without closing anything.
func (s *ReportService) XReport(ctx context.Context) (*Summary, error) {
	return summarize(s.DB.WithContext(ctx))
}

// ZReport closes the day: it records the open totals as a DayClose and stamps
// every open order with it, all or nothing.
func (s *ReportService) ZReport(ctx context.Context, managerID uint) (*models.DayClose, error) {
	var closed models.DayClose
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&models.Order{}).Where("day_close_id IS NULL").Pluck("id", &ids).Error; err != nil {
			return err
		}

		sum := Summary{}
		if len(ids) > 0 {
			err := tx.Raw(totalsQuery+" AND id IN ?", models.SourceKiosk, models.SourceCashier, ids).Scan(&sum).Error
			if err != nil {
				return err
			}
		}

		closed = models.DayClose{
			BusinessDate: s.Now().Format("2006-01-02"),
			OrderCount:   sum.OrderCount,
			GrossTotal:   utils.RoundCents(sum.GrossTotal),
			KioskTotal:   utils.RoundCents(sum.KioskTotal),
			CashierTotal: utils.RoundCents(sum.CashierTotal),
			ClosedBy:     managerID,
		}
		if err := tx.Create(&closed).Error; err != nil {
			return err
		}

		if len(ids) > 0 {
			err := tx.Model(&models.Order{}).Where("id IN ?", ids).Update("day_close_id", closed.ID).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.ErrorLogger.Errorf("Z-report failed: %v", err)
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"day_close_id": closed.ID,
		"orders":       closed.OrderCount,
		"gross":        closed.GrossTotal,
	}).Info("day closed")
	kds.BroadcastDayClosed(closed)
	return &closed, nil
}

// SalesByItem counts sold items in [from, to).
func (s *ReportService) SalesByItem(ctx context.Context, from, to time.Time) ([]ItemSales, error) {
	sales := []ItemSales{}
	if err := s.DB.WithContext(ctx).Raw(rangeItemsQuery, from, to).Scan(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

func (s *ReportService) DayCloses(ctx context.Context, limit int) ([]models.DayClose, error) {
	q := s.DB.WithContext(ctx).Order("created_at desc, id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var closes []models.DayClose
	if err := q.Find(&closes).Error; err != nil {
		return nil, err
	}
	return closes, nil
}
