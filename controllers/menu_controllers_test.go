package controllers_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aadit2805/project3-group7-deploy-sub000/controllers"
	"github.com/aadit2805/project3-group7-deploy-sub000/models"
	"github.com/aadit2805/project3-group7-deploy-sub000/services"
)

func setupMenuRouter(db *gorm.DB) (*gin.Engine, *services.AvailabilityMonitor) {
	monitor := services.NewAvailabilityMonitor(db, time.Hour)
	monitor.Now = func() time.Time { return lunch }
	menuCtrl := controllers.NewMenuController(db, monitor)
	menuCtrl.Now = func() time.Time { return lunch }

	r := gin.New()
	r.GET("/menu-items", menuCtrl.GetAllMenuItems)
	r.GET("/menu-items/:item_id", menuCtrl.GetMenuItemByID)
	r.POST("/menu-items", menuCtrl.CreateMenuItem)
	r.PATCH("/menu-items/:item_id", menuCtrl.UpdateMenuItem)
	r.DELETE("/menu-items/:item_id", menuCtrl.DeleteMenuItem)
	r.GET("/menu/selectable", menuCtrl.GetSelectable)
	return r, monitor
}

func TestMenuItemCRUD(t *testing.T) {
	db := setupTestDB(t)
	r, monitor := setupMenuRouter(db)

	w, env := doJSON(t, r, http.MethodPost, "/menu-items", gin.H{
		"name":            "Kung Pao Chicken",
		"category":        "entree",
		"upcharge":        0.5,
		"stock":           12,
		"allergens":       []string{"peanuts"},
		"available_from":  "11:00",
		"available_until": "21:00",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, env.Message)

	var created models.MenuItem
	decode(t, env, &created)
	assert.NotZero(t, created.ID)
	assert.True(t, created.IsAvailable, "new items default to available")
	assert.Equal(t, []string{"peanuts"}, created.Allergens)
	assert.Contains(t, monitor.Selectable(), created.ID)

	path := fmt.Sprintf("/menu-items/%d", created.ID)
	w, env = doJSON(t, r, http.MethodPatch, path, gin.H{"is_available": false, "available_until": ""}, "")
	require.Equal(t, http.StatusOK, w.Code, env.Message)
	var updated models.MenuItem
	decode(t, env, &updated)
	assert.False(t, updated.IsAvailable)
	assert.Nil(t, updated.AvailableUntil)
	require.NotNil(t, updated.AvailableFrom)
	assert.Equal(t, "11:00", *updated.AvailableFrom)
	assert.Equal(t, 12, updated.Stock)
	assert.NotContains(t, monitor.Selectable(), created.ID)

	w, env = doJSON(t, r, http.MethodGet, "/menu-items?category=entree", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var entrees []models.MenuItem
	decode(t, env, &entrees)
	assert.Len(t, entrees, 1)

	w, _ = doJSON(t, r, http.MethodDelete, path, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, r, http.MethodGet, path, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = doJSON(t, r, http.MethodDelete, path, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteSoldMenuItem(t *testing.T) {
	db := setupTestDB(t)
	m := seedMenu(t, db)
	r, monitor := setupMenuRouter(db)

	orders := services.NewOrderService(db)
	orders.Now = func() time.Time { return lunch }
	_, err := orders.PlaceOrder(context.Background(), services.OrderRequest{
		Source: models.SourceKiosk,
		Lines: []services.LineRequest{{
			MealTypeID: m.bowl.ID,
			EntreeIDs:  []uint{m.chicken.ID},
			SideIDs:    []uint{m.rice.ID, m.rice.ID},
		}},
	})
	require.NoError(t, err)

	path := fmt.Sprintf("/menu-items/%d", m.chicken.ID)
	w, env := doJSON(t, r, http.MethodDelete, path, nil, "")
	assert.Equal(t, http.StatusConflict, w.Code, env.Message)

	w, env = doJSON(t, r, http.MethodPatch, path, gin.H{"is_available": false}, "")
	require.Equal(t, http.StatusOK, w.Code, env.Message)
	assert.NotContains(t, monitor.Selectable(), m.chicken.ID)

	summary, err := services.NewReportService(db).XReport(context.Background())
	require.NoError(t, err)
	names := map[string]int64{}
	for _, it := range summary.Items {
		names[it.Name] = it.Quantity
	}
	assert.Equal(t, int64(1), names["Orange Chicken"])
	assert.Equal(t, int64(2), names["Fried Rice"])

	w, _ = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/menu-items/%d", m.noodles.ID), nil, "")
	assert.Equal(t, http.StatusOK, w.Code, "unsold items can still be deleted")
}

func TestMenuItemValidation(t *testing.T) {
	db := setupTestDB(t)
	r, _ := setupMenuRouter(db)

	cases := []struct {
		name string
		body gin.H
	}{
		{"missing name", gin.H{"category": "side"}},
		{"bad category", gin.H{"name": "Egg Roll", "category": "appetizer"}},
		{"bad window", gin.H{"name": "Egg Roll", "category": "side", "available_from": "25:99"}},
		{"negative stock", gin.H{"name": "Egg Roll", "category": "side", "stock": -1}},
		{"negative upcharge", gin.H{"name": "Egg Roll", "category": "side", "upcharge": -2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, env := doJSON(t, r, http.MethodPost, "/menu-items", tc.body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code, env.Message)
			assert.False(t, env.Status)
		})
	}

	w, _ := doJSON(t, r, http.MethodGet, "/menu-items?category=dessert", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = doJSON(t, r, http.MethodGet, "/menu-items/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSelectable(t *testing.T) {
	db := setupTestDB(t)
	m := seedMenu(t, db)
	r, _ := setupMenuRouter(db)

	type selectable struct {
		MealType models.MealType   `json:"meal_type"`
		Entrees  []models.MenuItem `json:"entrees"`
		Sides    []models.MenuItem `json:"sides"`
		Drinks   []models.MenuItem `json:"drinks"`
	}
	names := func(items []models.MenuItem) []string {
		out := []string{}
		for _, it := range items {
			out = append(out, it.Name)
		}
		return out
	}

	w, env := doJSON(t, r, http.MethodGet, fmt.Sprintf("/menu/selectable?meal_type_id=%d", m.bowl.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code, env.Message)
	var bowl selectable
	decode(t, env, &bowl)
	assert.Equal(t, []string{"Beijing Beef", "Orange Chicken"}, names(bowl.Entrees), "sold out and out-of-window items are hidden")
	assert.Equal(t, []string{"Chow Mein", "Fried Rice"}, names(bowl.Sides))
	assert.Empty(t, bowl.Drinks, "bowl has no drink")

	w, env = doJSON(t, r, http.MethodGet, fmt.Sprintf("/menu/selectable?meal_type_id=%d", m.combo.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var combo selectable
	decode(t, env, &combo)
	assert.Equal(t, []string{"Iced Tea"}, names(combo.Drinks))

	w, _ = doJSON(t, r, http.MethodGet, "/menu/selectable", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = doJSON(t, r, http.MethodGet, "/menu/selectable?meal_type_id=999", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
