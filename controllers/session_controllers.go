package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aadit2805/project3-group7-deploy-sub000/models"
	"github.com/aadit2805/project3-group7-deploy-sub000/selection"
	"github.com/aadit2805/project3-group7-deploy-sub000/services"
	"github.com/aadit2805/project3-group7-deploy-sub000/sessions"
	"github.com/aadit2805/project3-group7-deploy-sub000/utils"
)

// SessionController drives the order-line editor of one ordering surface.
type SessionController struct {
	DB     *gorm.DB
	Store  *sessions.Store
	Orders *services.OrderService
}

func NewSessionController(db *gorm.DB, store *sessions.Store, orders *services.OrderService) *SessionController {
	return &SessionController{DB: db, Store: store, Orders: orders}
}

func (sc *SessionController) CreateSession(c *gin.Context) {
	var cashierID *uint
	if id, ok := userID(c); ok {
		cashierID = &id
	}
	utils.RespondJSON(c, http.StatusCreated, "Session created", sc.Store.Create(cashierID))
}

// sessionID resolves the session in the path. A session opened by a cashier
// answers only to that cashier.
func (sc *SessionController) sessionID(c *gin.Context) (string, bool) {
	id := c.Param("session_id")
	owner, err := sc.Store.Owner(id)
	if err != nil {
		respondErr(c, err)
		return "", false
	}
	if owner != nil {
		if uid, ok := userID(c); !ok || uid != *owner {
			utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
			return "", false
		}
	}
	return id, true
}

func (sc *SessionController) GetSession(c *gin.Context) {
	id, ok := sc.sessionID(c)
	if !ok {
		return
	}
	view, err := sc.Store.Get(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Session detail", view)
}

func (sc *SessionController) DiscardSession(c *gin.Context) {
	id, ok := sc.sessionID(c)
	if !ok {
		return
	}
	if err := sc.Store.Discard(id); err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Session discarded", nil)
}

// StartLine opens (or switches) the meal type being built.
// Endpoint: POST /sessions/:session_id/line {"meal_type_id": 1}
func (sc *SessionController) StartLine(c *gin.Context) {
	id, ok := sc.sessionID(c)
	if !ok {
		return
	}
	var req struct {
		MealTypeID uint `json:"meal_type_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var mealType models.MealType
	if err := sc.DB.First(&mealType, req.MealTypeID).Error; err != nil {
		respondErr(c, err)
		return
	}

	view, err := sc.Store.StartLine(id, mealType)
	if err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Line started", view)
}

// Click applies one tap on a menu item. The item is loaded fresh so stock and
// availability are current; an ignored tap still answers 200 with changed=false.
// Endpoint: POST /sessions/:session_id/click {"menu_item_id": 3}
func (sc *SessionController) Click(c *gin.Context) {
	id, ok := sc.sessionID(c)
	if !ok {
		return
	}
	var req struct {
		MenuItemID uint `json:"menu_item_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var item models.MenuItem
	if err := sc.DB.First(&item, req.MenuItemID).Error; err != nil {
		respondErr(c, err)
		return
	}

	view, changed, err := sc.Store.Click(id, item)
	if err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Click applied", gin.H{
		"changed": changed,
		"session": view,
	})
}

func (sc *SessionController) CommitLine(c *gin.Context) {
	id, ok := sc.sessionID(c)
	if !ok {
		return
	}
	view, err := sc.Store.CommitLine(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Line committed", view)
}

func (sc *SessionController) CancelLine(c *gin.Context) {
	id, ok := sc.sessionID(c)
	if !ok {
		return
	}
	view, err := sc.Store.CancelLine(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Line cancelled", view)
}

func lineIndex(c *gin.Context) (int, error) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return 0, errors.New("invalid line index")
	}
	return index, nil
}

func (sc *SessionController) EditLine(c *gin.Context) {
	id, ok := sc.sessionID(c)
	if !ok {
		return
	}
	index, err := lineIndex(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	view, err := sc.Store.EditLine(id, index)
	if err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Line opened for editing", view)
}

func (sc *SessionController) RemoveLine(c *gin.Context) {
	id, ok := sc.sessionID(c)
	if !ok {
		return
	}
	index, err := lineIndex(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	view, err := sc.Store.RemoveLine(id, index)
	if err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Line removed", view)
}

// Checkout submits the cart as an order. The lines are re-validated against
// the database, so a sold-out item fails here and the cart is kept.
func (sc *SessionController) Checkout(c *gin.Context) {
	id, ok := sc.sessionID(c)
	if !ok {
		return
	}
	var order *models.Order
	view, err := sc.Store.Checkout(id, func(lines []selection.Line, cashierID *uint) error {
		req := services.OrderRequest{Source: sc.Store.Surface, CashierID: cashierID}
		for _, l := range lines {
			req.Lines = append(req.Lines, services.LineRequestFrom(l))
		}
		placed, err := sc.Orders.PlaceOrder(c.Request.Context(), req)
		if err != nil {
			return err
		}
		order = placed
		return nil
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order placed", gin.H{
		"order":   order,
		"ticket":  order.TicketNumber(),
		"total":   utils.FormatUSD(order.Total),
		"session": view,
	})
}
