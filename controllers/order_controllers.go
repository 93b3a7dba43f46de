package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aadit2805/project3-group7-deploy-sub000/models"
	"github.com/aadit2805/project3-group7-deploy-sub000/services"
	"github.com/aadit2805/project3-group7-deploy-sub000/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// CreateOrder takes a whole order in one request, for clients that keep the
// cart themselves. The source comes from the route group.
// Endpoint: POST /orders {"lines": [{"meal_type_id":1,"entree_ids":[3],"side_ids":[5,5]}]}
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var input struct {
		Lines []services.LineRequest `json:"lines" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	req := services.OrderRequest{Source: c.GetString("surface"), Lines: input.Lines}
	if id, ok := userID(c); ok {
		req.CashierID = &id
	}

	order, err := oc.Orders.PlaceOrder(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order placed", gin.H{
		"order":  order,
		"ticket": order.TicketNumber(),
		"total":  utils.FormatUSD(order.Total),
	})
}

// GetAllOrders lists orders newest first, optionally filtered by status.
// Endpoint: GET /orders?status=<status>&limit=<n>
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	orders, err := oc.Orders.List(c.Request.Context(), c.Query("status"), limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, err := paramID(c, "order_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := oc.Orders.Get(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

func (oc *OrderController) advance(c *gin.Context, to, message string) {
	id, err := paramID(c, "order_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := oc.Orders.Advance(c.Request.Context(), id, to)
	if err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, message, order)
}

func (oc *OrderController) StartCooking(c *gin.Context) {
	oc.advance(c, models.OrderInProgress, "Order in progress")
}

func (oc *OrderController) FinishCooking(c *gin.Context) {
	oc.advance(c, models.OrderReady, "Order ready")
}

func (oc *OrderController) CompleteOrder(c *gin.Context) {
	oc.advance(c, models.OrderCompleted, "Order completed")
}

// GetKitchenDisplay is the open ticket list a kitchen screen loads before it
// starts following the websocket.
func (oc *OrderController) GetKitchenDisplay(c *gin.Context) {
	orders, err := oc.Orders.KitchenQueue(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Kitchen display", orders)
}
