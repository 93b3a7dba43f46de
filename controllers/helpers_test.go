package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/aadit2805/project3-group7-deploy-sub000/database"
	"github.com/aadit2805/project3-group7-deploy-sub000/models"
	"github.com/aadit2805/project3-group7-deploy-sub000/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("controllers-secret", time.Hour)
}

var lunch = time.Date(2026, 3, 14, 12, 30, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
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
	return db
}

type menu struct {
	bowl    models.MealType
	combo   models.MealType
	chicken models.MenuItem
	beef    models.MenuItem
	rice    models.MenuItem
	noodles models.MenuItem
	tea     models.MenuItem
	soldOut models.MenuItem
	morning models.MenuItem
}

func seedMenu(t *testing.T, db *gorm.DB) menu {
	t.Helper()
	from, until := "06:00", "10:30"
	m := menu{
		bowl:    models.MealType{Name: "Bowl", BasePrice: 8.30, EntreeCount: 1, SideCount: 2, DrinkSize: models.DrinkNone},
		combo:   models.MealType{Name: "Combo", BasePrice: 11.50, EntreeCount: 2, SideCount: 1, DrinkSize: models.DrinkMedium},
		chicken: models.MenuItem{Name: "Orange Chicken", Category: models.CategoryEntree, IsAvailable: true, Stock: 20},
		beef:    models.MenuItem{Name: "Beijing Beef", Category: models.CategoryEntree, Upcharge: 1.50, IsAvailable: true, Stock: 1},
		rice:    models.MenuItem{Name: "Fried Rice", Category: models.CategorySide, IsAvailable: true, Stock: 20},
		noodles: models.MenuItem{Name: "Chow Mein", Category: models.CategorySide, IsAvailable: true, Stock: 20},
		tea:     models.MenuItem{Name: "Iced Tea", Category: models.CategoryDrink, IsAvailable: true, Stock: 20},
		soldOut: models.MenuItem{Name: "Honey Walnut Shrimp", Category: models.CategoryEntree, IsAvailable: true, Stock: 0},
		morning: models.MenuItem{Name: "Breakfast Bao", Category: models.CategoryEntree, IsAvailable: true, Stock: 20, AvailableFrom: &from, AvailableUntil: &until},
	}
	require.NoError(t, db.Create(&m.bowl).Error)
	require.NoError(t, db.Create(&m.combo).Error)
	for _, it := range []*models.MenuItem{&m.chicken, &m.beef, &m.rice, &m.noodles, &m.tea, &m.soldOut, &m.morning} {
		require.NoError(t, db.Create(it).Error)
	}
	return m
}

// asUser stands in for the auth middleware.
func asUser(id uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", id)
		c.Set("role", role)
		c.Next()
	}
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}, bearer string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func decode(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, v), string(env.Data))
}
