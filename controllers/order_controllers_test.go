package controllers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aadit2805/project3-group7-deploy-sub000/controllers"
	"github.com/aadit2805/project3-group7-deploy-sub000/middlewares"
	"github.com/aadit2805/project3-group7-deploy-sub000/models"
	"github.com/aadit2805/project3-group7-deploy-sub000/services"
)

func setupOrderRouter(db *gorm.DB) *gin.Engine {
	orders := services.NewOrderService(db)
	orders.Now = func() time.Time { return lunch }
	oc := controllers.NewOrderController(orders)

	r := gin.New()
	r.POST("/kiosk/orders", middlewares.Surface(models.SourceKiosk), oc.CreateOrder)
	r.GET("/orders", oc.GetAllOrders)
	r.GET("/orders/:order_id", oc.GetOrderByID)
	r.GET("/kitchen/orders", oc.GetKitchenDisplay)
	r.PUT("/orders/:order_id/start", oc.StartCooking)
	r.PUT("/orders/:order_id/finish", oc.FinishCooking)
	r.PUT("/orders/:order_id/complete", oc.CompleteOrder)
	return r
}

func TestCreateOrderDirect(t *testing.T) {
	db := setupTestDB(t)
	m := seedMenu(t, db)
	r := setupOrderRouter(db)

	w, env := doJSON(t, r, http.MethodPost, "/kiosk/orders", gin.H{
		"lines": []gin.H{
			{"meal_type_id": m.bowl.ID, "entree_ids": []uint{m.beef.ID}, "side_ids": []uint{m.rice.ID, m.noodles.ID}},
			{"meal_type_id": m.combo.ID, "entree_ids": []uint{m.chicken.ID, m.chicken.ID}, "side_ids": []uint{m.rice.ID}, "drink_id": m.tea.ID},
		},
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, env.Message)

	var out struct {
		Order  models.Order `json:"order"`
		Ticket string       `json:"ticket"`
		Total  string       `json:"total"`
	}
	decode(t, env, &out)
	assert.Equal(t, models.SourceKiosk, out.Order.Source)
	assert.InDelta(t, 21.30, out.Order.Total, 0.001)
	assert.Equal(t, "$21.30", out.Total)
	require.Len(t, out.Order.Lines, 2)
	assert.Len(t, out.Order.Lines[1].Items, 4)

	w, env = doJSON(t, r, http.MethodGet, fmt.Sprintf("/orders/%d", out.Order.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var fetched models.Order
	decode(t, env, &fetched)
	assert.Equal(t, "Beijing Beef", fetched.Lines[0].Items[0].MenuItem.Name)
}

func TestCreateOrderRejected(t *testing.T) {
	db := setupTestDB(t)
	m := seedMenu(t, db)
	r := setupOrderRouter(db)

	cases := []struct {
		name string
		body gin.H
		code int
	}{
		{"no lines", gin.H{"lines": []gin.H{}}, http.StatusBadRequest},
		{"missing meal type", gin.H{"lines": []gin.H{{"entree_ids": []uint{m.chicken.ID}}}}, http.StatusBadRequest},
		{"short line", gin.H{"lines": []gin.H{{"meal_type_id": m.bowl.ID, "entree_ids": []uint{m.chicken.ID}, "side_ids": []uint{m.rice.ID}}}}, http.StatusUnprocessableEntity},
		{"sold out", gin.H{"lines": []gin.H{{"meal_type_id": m.bowl.ID, "entree_ids": []uint{m.soldOut.ID}, "side_ids": []uint{m.rice.ID, m.rice.ID}}}}, http.StatusConflict},
		{"unknown item", gin.H{"lines": []gin.H{{"meal_type_id": m.bowl.ID, "entree_ids": []uint{999}, "side_ids": []uint{m.rice.ID, m.rice.ID}}}}, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, env := doJSON(t, r, http.MethodPost, "/kiosk/orders", tc.body, "")
			assert.Equal(t, tc.code, w.Code, env.Message)
		})
	}
}

func TestKitchenFlow(t *testing.T) {
	db := setupTestDB(t)
	m := seedMenu(t, db)
	r := setupOrderRouter(db)

	w, env := doJSON(t, r, http.MethodPost, "/kiosk/orders", gin.H{
		"lines": []gin.H{{"meal_type_id": m.bowl.ID, "entree_ids": []uint{m.chicken.ID}, "side_ids": []uint{m.rice.ID, m.rice.ID}}},
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	var out struct {
		Order models.Order `json:"order"`
	}
	decode(t, env, &out)
	base := fmt.Sprintf("/orders/%d", out.Order.ID)

	w, _ = doJSON(t, r, http.MethodPut, base+"/finish", nil, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	for _, step := range []struct{ action, status string }{
		{"start", models.OrderInProgress},
		{"finish", models.OrderReady},
	} {
		w, env = doJSON(t, r, http.MethodPut, base+"/"+step.action, nil, "")
		require.Equal(t, http.StatusOK, w.Code, env.Message)
		var o models.Order
		decode(t, env, &o)
		assert.Equal(t, step.status, o.Status)
	}

	w, env = doJSON(t, r, http.MethodGet, "/kitchen/orders", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var queue []models.Order
	decode(t, env, &queue)
	assert.Len(t, queue, 1)

	w, _ = doJSON(t, r, http.MethodPut, base+"/complete", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w, env = doJSON(t, r, http.MethodGet, "/kitchen/orders", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, env, &queue)
	assert.Empty(t, queue)

	w, env = doJSON(t, r, http.MethodGet, "/orders?status=completed", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var done []models.Order
	decode(t, env, &done)
	assert.Len(t, done, 1)

	w, _ = doJSON(t, r, http.MethodPut, "/orders/999/start", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
