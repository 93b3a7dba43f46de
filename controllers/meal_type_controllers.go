package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aadit2805/project3-group7-deploy-sub000/models"
	"github.com/aadit2805/project3-group7-deploy-sub000/utils"
)

type MealTypeController struct {
	DB *gorm.DB
}

func NewMealTypeController(db *gorm.DB) *MealTypeController {
	return &MealTypeController{DB: db}
}

type mealTypeInput struct {
	Name        *string  `json:"name"`
	BasePrice   *float64 `json:"base_price"`
	EntreeCount *int     `json:"entree_count"`
	SideCount   *int     `json:"side_count"`
	DrinkSize   *string  `json:"drink_size"`
}

func (in mealTypeInput) apply(mt *models.MealType) error {
	if in.Name != nil {
		mt.Name = *in.Name
	}
	if in.BasePrice != nil {
		mt.BasePrice = utils.RoundCents(*in.BasePrice)
	}
	if in.EntreeCount != nil {
		mt.EntreeCount = *in.EntreeCount
	}
	if in.SideCount != nil {
		mt.SideCount = *in.SideCount
	}
	if in.DrinkSize != nil {
		mt.DrinkSize = *in.DrinkSize
	}

	switch {
	case mt.Name == "":
		return errors.New("name is required")
	case mt.BasePrice < 0:
		return errors.New("base_price must not be negative")
	case mt.EntreeCount < 0 || mt.SideCount < 0:
		return errors.New("entree_count and side_count must not be negative")
	case !models.ValidDrinkSize(mt.DrinkSize):
		return fmt.Errorf("invalid drink_size %q", mt.DrinkSize)
	case mt.EntreeCount == 0 && mt.SideCount == 0 && !mt.IncludesDrink():
		return errors.New("meal type must include at least one item")
	}
	return nil
}

func (mc *MealTypeController) GetAllMealTypes(c *gin.Context) {
	var mealTypes []models.MealType
	if err := mc.DB.Order("id").Find(&mealTypes).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of meal types", mealTypes)
}

func (mc *MealTypeController) GetMealTypeByID(c *gin.Context) {
	id, err := paramID(c, "meal_type_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var mealType models.MealType
	if err := mc.DB.First(&mealType, id).Error; err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Meal type detail", mealType)
}

func (mc *MealTypeController) CreateMealType(c *gin.Context) {
	var in mealTypeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	mealType := models.MealType{DrinkSize: models.DrinkNone}
	if err := in.apply(&mealType); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := mc.DB.Create(&mealType).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Meal type created: %s", mealType.Name)
	utils.RespondJSON(c, http.StatusCreated, "Meal type created", mealType)
}

func (mc *MealTypeController) UpdateMealType(c *gin.Context) {
	id, err := paramID(c, "meal_type_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var mealType models.MealType
	if err := mc.DB.First(&mealType, id).Error; err != nil {
		respondErr(c, err)
		return
	}

	var in mealTypeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := in.apply(&mealType); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := mc.DB.Save(&mealType).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Meal type updated", mealType)
}

func (mc *MealTypeController) DeleteMealType(c *gin.Context) {
	id, err := paramID(c, "meal_type_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var used int64
	if err := mc.DB.Model(&models.OrderLine{}).Where("meal_type_id = ?", id).Count(&used).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if used > 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("meal type is referenced by existing orders"))
		return
	}

	res := mc.DB.Delete(&models.MealType{}, id)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, gorm.ErrRecordNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Meal type deleted", nil)
}
