package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/aadit2805/project3-group7-deploy-sub000/kds"
	"github.com/aadit2805/project3-group7-deploy-sub000/models"
	"github.com/aadit2805/project3-group7-deploy-sub000/selection"
	"github.com/aadit2805/project3-group7-deploy-sub000/utils"
)

// LineRequest is one submitted order line, by id.
type LineRequest struct {
	MealTypeID uint   `json:"meal_type_id" binding:"required"`
	EntreeIDs  []uint `json:"entree_ids"`
	SideIDs    []uint `json:"side_ids"`
	DrinkID    *uint  `json:"drink_id,omitempty"`
}

type OrderRequest struct {
	Source    string
	CashierID *uint
	Lines     []LineRequest
}

// LineRequestFrom flattens an edited line back to ids so it is re-validated
// like any other submission.
func LineRequestFrom(l selection.Line) LineRequest {
	req := LineRequest{MealTypeID: l.MealType.ID}
	for _, it := range l.Entrees {
		req.EntreeIDs = append(req.EntreeIDs, it.ID)
	}
	for _, it := range l.Sides {
		req.SideIDs = append(req.SideIDs, it.ID)
	}
	if l.Drink != nil {
		id := l.Drink.ID
		req.DrinkID = &id
	}
	return req
}

type OrderService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db, Now: time.Now}
}

// PlaceOrder validates every line against the current menu, reserves stock and
// stores the order in a single transaction.
func (s *OrderService) PlaceOrder(ctx context.Context, req OrderRequest) (*models.Order, error) {
	if req.Source != models.SourceKiosk && req.Source != models.SourceCashier {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSource, req.Source)
	}
	if len(req.Lines) == 0 {
		return nil, ErrEmptyOrder
	}

	lines, err := s.resolve(ctx, req.Lines)
	if err != nil {
		return nil, err
	}

	order := models.Order{
		Source:    req.Source,
		CashierID: req.CashierID,
		Status:    models.OrderPlaced,
	}
	needs := make(map[uint]int)
	var total float64
	for _, l := range lines {
		row := models.OrderLine{
			MealTypeID: l.MealType.ID,
			Price:      utils.RoundCents(l.Price()),
		}
		add := func(it models.MenuItem, role string) {
			row.Items = append(row.Items, models.OrderLineItem{MenuItemID: it.ID, Role: role, Upcharge: it.Upcharge})
			needs[it.ID]++
		}
		for _, it := range l.Entrees {
			add(it, models.RoleEntree)
		}
		for _, it := range l.Sides {
			add(it, models.RoleSide)
		}
		if l.Drink != nil {
			add(*l.Drink, models.RoleDrink)
		}
		total += row.Price
		order.Lines = append(order.Lines, row)
	}
	order.Total = utils.RoundCents(total)

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := make([]uint, 0, len(needs))
		for id := range needs {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		for _, id := range ids {
			res := tx.Model(&models.MenuItem{}).
				Where("id = ? AND stock >= ?", id, needs[id]).
				Update("stock", gorm.Expr("stock - ?", needs[id]))
			if res.Error != nil {
				return fmt.Errorf("reserve stock for item %d: %w", id, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: item %d", ErrOutOfStock, id)
			}
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}

	placed, err := s.Get(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"order_id": placed.ID,
		"source":   placed.Source,
		"lines":    len(placed.Lines),
		"total":    placed.Total,
	}).Info("order placed")
	kds.BroadcastOrderCreated(*placed)
	return placed, nil
}

// resolve loads the meal types and items a submission references and checks
// each line the same way the editor does before committing.
func (s *OrderService) resolve(ctx context.Context, reqs []LineRequest) ([]selection.Line, error) {
	mealTypeIDs := make([]uint, 0, len(reqs))
	var itemIDs []uint
	for _, r := range reqs {
		mealTypeIDs = append(mealTypeIDs, r.MealTypeID)
		itemIDs = append(itemIDs, r.EntreeIDs...)
		itemIDs = append(itemIDs, r.SideIDs...)
		if r.DrinkID != nil {
			itemIDs = append(itemIDs, *r.DrinkID)
		}
	}

	var mealTypes []models.MealType
	if err := s.DB.WithContext(ctx).Where("id IN ?", mealTypeIDs).Find(&mealTypes).Error; err != nil {
		return nil, fmt.Errorf("load meal types: %w", err)
	}
	mealTypeByID := make(map[uint]models.MealType, len(mealTypes))
	for _, mt := range mealTypes {
		mealTypeByID[mt.ID] = mt
	}

	itemByID := make(map[uint]models.MenuItem)
	if len(itemIDs) > 0 {
		var items []models.MenuItem
		if err := s.DB.WithContext(ctx).Where("id IN ?", itemIDs).Find(&items).Error; err != nil {
			return nil, fmt.Errorf("load menu items: %w", err)
		}
		for _, it := range items {
			itemByID[it.ID] = it
		}
	}

	now := s.Now()
	lookup := func(id uint) (models.MenuItem, error) {
		it, ok := itemByID[id]
		if !ok {
			return models.MenuItem{}, fmt.Errorf("%w: menu item %d", ErrNotFound, id)
		}
		if !selection.Selectable(it, now) {
			return models.MenuItem{}, fmt.Errorf("%w: %s", ErrUnavailable, it.Name)
		}
		return it, nil
	}

	lines := make([]selection.Line, 0, len(reqs))
	for i, r := range reqs {
		mt, ok := mealTypeByID[r.MealTypeID]
		if !ok {
			return nil, fmt.Errorf("line %d: %w: meal type %d", i+1, ErrNotFound, r.MealTypeID)
		}
		l := selection.Line{MealType: mt, Entrees: []models.MenuItem{}, Sides: []models.MenuItem{}}
		for _, id := range r.EntreeIDs {
			it, err := lookup(id)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			l.Entrees = append(l.Entrees, it)
		}
		for _, id := range r.SideIDs {
			it, err := lookup(id)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			l.Sides = append(l.Sides, it)
		}
		if r.DrinkID != nil {
			it, err := lookup(*r.DrinkID)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			l.Drink = &it
		}
		if err := selection.CheckLine(l); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		lines = append(lines, l)
	}
	return lines, nil
}

func (s *OrderService) preloaded(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx).
		Preload("Lines.MealType").
		Preload("Lines.Items.MenuItem")
}

func (s *OrderService) Get(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := s.preloaded(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &order, nil
}

// List returns orders newest first, optionally filtered by status.
func (s *OrderService) List(ctx context.Context, status string, limit int) ([]models.Order, error) {
	q := s.preloaded(ctx).Order("created_at desc, id desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// KitchenQueue is every order still being worked on, oldest first.
func (s *OrderService) KitchenQueue(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.preloaded(ctx).
		Where("status IN ?", []string{models.OrderPlaced, models.OrderInProgress, models.OrderReady}).
		Order("created_at asc, id asc").
		Find(&orders).Error
	return orders, err
}

var nextStatus = map[string]string{
	models.OrderPlaced:     models.OrderInProgress,
	models.OrderInProgress: models.OrderReady,
	models.OrderReady:      models.OrderCompleted,
}

// Advance moves an order to status "to", which must directly follow its
// current status.
func (s *OrderService) Advance(ctx context.Context, id uint, to string) (*models.Order, error) {
	var from string
	for f, t := range nextStatus {
		if t == to {
			from = f
		}
	}
	if from == "" {
		return nil, fmt.Errorf("%w: to %q", ErrInvalidTransition, to)
	}

	now := s.Now()
	updates := map[string]interface{}{"status": to, "updated_at": now}
	switch to {
	case models.OrderInProgress:
		updates["start_cooking_time"] = now
	case models.OrderReady:
		updates["finish_cooking_time"] = now
	}

	res := s.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		current, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: order %d is %s, not %s", ErrInvalidTransition, id, current.Status, from)
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	utils.InfoLogger.WithFields(logrus.Fields{"order_id": id, "status": to}).Info("order advanced")
	kds.BroadcastOrderUpdate(*order)
	return order, nil
}
