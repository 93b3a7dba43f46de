package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aadit2805/project3-group7-deploy-sub000/models"
	"github.com/aadit2805/project3-group7-deploy-sub000/selection"
	"github.com/aadit2805/project3-group7-deploy-sub000/services"
	"github.com/aadit2805/project3-group7-deploy-sub000/utils"
)

type MenuController struct {
	DB      *gorm.DB
	Monitor *services.AvailabilityMonitor
	Now     func() time.Time
}

func NewMenuController(db *gorm.DB, monitor *services.AvailabilityMonitor) *MenuController {
	return &MenuController{DB: db, Monitor: monitor, Now: time.Now}
}

type menuItemInput struct {
	Name           *string   `json:"name"`
	Upcharge       *float64  `json:"upcharge"`
	IsAvailable    *bool     `json:"is_available"`
	Category       *string   `json:"category"`
	AvailableFrom  *string   `json:"available_from"`
	AvailableUntil *string   `json:"available_until"`
	Allergens      *[]string `json:"allergens"`
	Stock          *int      `json:"stock"`
}

// apply copies the set fields onto item. An empty window bound clears it.
func (in menuItemInput) apply(item *models.MenuItem) error {
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Upcharge != nil {
		if *in.Upcharge < 0 {
			return errors.New("upcharge must not be negative")
		}
		item.Upcharge = utils.RoundCents(*in.Upcharge)
	}
	if in.IsAvailable != nil {
		item.IsAvailable = *in.IsAvailable
	}
	if in.Category != nil {
		if !models.ValidCategory(*in.Category) {
			return fmt.Errorf("invalid category %q", *in.Category)
		}
		item.Category = *in.Category
	}
	if err := setClock(&item.AvailableFrom, in.AvailableFrom); err != nil {
		return err
	}
	if err := setClock(&item.AvailableUntil, in.AvailableUntil); err != nil {
		return err
	}
	if in.Allergens != nil {
		item.Allergens = *in.Allergens
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return errors.New("stock must not be negative")
		}
		item.Stock = *in.Stock
	}
	if item.Name == "" {
		return errors.New("name is required")
	}
	if !models.ValidCategory(item.Category) {
		return errors.New("category is required")
	}
	return nil
}

func setClock(dst **string, v *string) error {
	switch {
	case v == nil:
		return nil
	case *v == "":
		*dst = nil
		return nil
	}
	if _, err := selection.ParseClock(*v); err != nil {
		return err
	}
	clock := *v
	*dst = &clock
	return nil
}

// menuChanged lets screens pick up the edit without waiting for the next tick.
func (mc *MenuController) menuChanged() {
	if mc.Monitor == nil {
		return
	}
	if _, err := mc.Monitor.Check(); err != nil {
		utils.ErrorLogger.Errorf("availability check after menu change failed: %v", err)
	}
}

// GetAllMenuItems lists the whole menu, optionally one category.
// Endpoint: GET /menu-items?category=<entree|side|drink>
func (mc *MenuController) GetAllMenuItems(c *gin.Context) {
	q := mc.DB.Order("category, name")
	if category := c.Query("category"); category != "" {
		if !models.ValidCategory(category) {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid category %q", category))
			return
		}
		q = q.Where("category = ?", category)
	}

	var items []models.MenuItem
	if err := q.Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

func (mc *MenuController) GetMenuItemByID(c *gin.Context) {
	id, err := paramID(c, "item_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item detail", item)
}

func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	var in menuItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item := models.MenuItem{IsAvailable: true, Allergens: []string{}}
	if err := in.apply(&item); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Menu item created: %s (%s)", item.Name, item.Category)
	mc.menuChanged()
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	id, err := paramID(c, "item_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		respondErr(c, err)
		return
	}

	var in menuItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := in.apply(&item); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := mc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mc.menuChanged()
	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	id, err := paramID(c, "item_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	// sold items stay so past orders and reports keep their names; retire them
	// with is_available=false instead
	var sold int64
	if err := mc.DB.Model(&models.OrderLineItem{}).Where("menu_item_id = ?", id).Count(&sold).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if sold > 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("menu item is referenced by existing orders"))
		return
	}

	res := mc.DB.Delete(&models.MenuItem{}, id)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, gorm.ErrRecordNotFound)
		return
	}

	mc.menuChanged()
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", nil)
}

// GetSelectable returns what an ordering screen may show for a meal type right
// now: available, in stock and inside the serving window.
// Endpoint: GET /menu/selectable?meal_type_id=<id>
func (mc *MenuController) GetSelectable(c *gin.Context) {
	mealTypeID, err := strconv.ParseUint(c.Query("meal_type_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("query parameter 'meal_type_id' is required"))
		return
	}

	var mealType models.MealType
	if err := mc.DB.First(&mealType, mealTypeID).Error; err != nil {
		respondErr(c, err)
		return
	}

	var items []models.MenuItem
	if err := mc.DB.Where("is_available = ? AND stock > 0", true).Order("name").Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	now := mc.Now()
	data := gin.H{
		"meal_type": mealType,
		"entrees":   []models.MenuItem{},
		"sides":     []models.MenuItem{},
		"drinks":    []models.MenuItem{},
	}
	if mealType.EntreeCount > 0 {
		data["entrees"] = selection.Filter(items, models.CategoryEntree, now)
	}
	if mealType.SideCount > 0 {
		data["sides"] = selection.Filter(items, models.CategorySide, now)
	}
	if mealType.IncludesDrink() {
		data["drinks"] = selection.Filter(items, models.CategoryDrink, now)
	}
	utils.RespondJSON(c, http.StatusOK, fmt.Sprintf("Selectable items for %s", mealType.Name), data)
}
