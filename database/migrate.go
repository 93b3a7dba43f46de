package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/aadit2805/project3-group7-deploy-sub000/models"
	"github.com/aadit2805/project3-group7-deploy-sub000/utils"
)

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.MealType{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderLine{},
		&models.OrderLineItem{},
		&models.DayClose{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}

// DefaultMealTypes is the combo lineup seeded into an empty database.
var DefaultMealTypes = []models.MealType{
	{Name: "Bowl", BasePrice: 8.30, EntreeCount: 1, SideCount: 1, DrinkSize: models.DrinkNone},
	{Name: "Plate", BasePrice: 9.80, EntreeCount: 2, SideCount: 1, DrinkSize: models.DrinkNone},
	{Name: "Bigger Plate", BasePrice: 11.30, EntreeCount: 3, SideCount: 1, DrinkSize: models.DrinkNone},
	{Name: "Family Meal", BasePrice: 43.00, EntreeCount: 3, SideCount: 2, DrinkSize: models.DrinkLarge},
	{Name: "A La Carte Entree", BasePrice: 5.20, EntreeCount: 1, SideCount: 0, DrinkSize: models.DrinkNone},
	{Name: "A La Carte Side", BasePrice: 4.40, EntreeCount: 0, SideCount: 1, DrinkSize: models.DrinkNone},
	{Name: "Drink", BasePrice: 2.10, EntreeCount: 0, SideCount: 0, DrinkSize: models.DrinkMedium},
}

// SeedMealTypes inserts the default meal types when none exist yet.
func SeedMealTypes(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.MealType{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count meal types: %w", err)
	}
	if count > 0 {
		return nil
	}

	seed := make([]models.MealType, len(DefaultMealTypes))
	copy(seed, DefaultMealTypes)
	if err := db.Create(&seed).Error; err != nil {
		return fmt.Errorf("seed meal types: %w", err)
	}
	utils.InfoLogger.Printf("Seeded %d meal types", len(seed))
	return nil
}
