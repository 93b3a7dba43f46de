package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/aadit2805/project3-group7-deploy-sub000/database"
	"github.com/aadit2805/project3-group7-deploy-sub000/models"
)

var noon = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

type fixture struct {
	db        *gorm.DB
	combo     models.MealType
	bowl      models.MealType
	chicken   models.MenuItem
	beef      models.MenuItem
	rice      models.MenuItem
	noodles   models.MenuItem
	soda      models.MenuItem
	breakfast models.MenuItem
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	from, until := "06:00", "10:30"
	f := &fixture{
		db:        db,
		combo:     models.MealType{Name: "Combo", BasePrice: 11.50, EntreeCount: 2, SideCount: 1, DrinkSize: models.DrinkMedium},
		bowl:      models.MealType{Name: "Bowl", BasePrice: 8.30, EntreeCount: 1, SideCount: 1, DrinkSize: models.DrinkNone},
		chicken:   models.MenuItem{Name: "Orange Chicken", Category: models.CategoryEntree, IsAvailable: true, Stock: 10},
		beef:      models.MenuItem{Name: "Beijing Beef", Category: models.CategoryEntree, Upcharge: 1.50, IsAvailable: true, Stock: 1},
		rice:      models.MenuItem{Name: "Fried Rice", Category: models.CategorySide, IsAvailable: true, Stock: 10},
		noodles:   models.MenuItem{Name: "Chow Mein", Category: models.CategorySide, IsAvailable: true, Stock: 10},
		soda:      models.MenuItem{Name: "Soda", Category: models.CategoryDrink, IsAvailable: true, Stock: 10},
		breakfast: models.MenuItem{Name: "Breakfast Bao", Category: models.CategoryEntree, IsAvailable: true, Stock: 10, AvailableFrom: &from, AvailableUntil: &until},
	}
	for _, mt := range []*models.MealType{&f.combo, &f.bowl} {
		require.NoError(t, db.Create(mt).Error)
	}
	for _, it := range []*models.MenuItem{&f.chicken, &f.beef, &f.rice, &f.noodles, &f.soda, &f.breakfast} {
		require.NoError(t, db.Create(it).Error)
	}
	return f
}

func (f *fixture) orders() *OrderService {
	s := NewOrderService(f.db)
	s.Now = func() time.Time { return noon }
	return s
}

func (f *fixture) bowlOf(entree, side models.MenuItem) LineRequest {
	return LineRequest{MealTypeID: f.bowl.ID, EntreeIDs: []uint{entree.ID}, SideIDs: []uint{side.ID}}
}

func (f *fixture) stock(t *testing.T, id uint) int {
	t.Helper()
	var it models.MenuItem
	require.NoError(t, f.db.First(&it, id).Error)
	return it.Stock
}

func (f *fixture) place(t *testing.T, source string, lines ...LineRequest) *models.Order {
	t.Helper()
	order, err := f.orders().PlaceOrder(context.Background(), OrderRequest{Source: source, Lines: lines})
	require.NoError(t, err)
	return order
}
