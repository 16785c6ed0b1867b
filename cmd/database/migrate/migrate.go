package migration

import (
	"Pantry-Tracker/entities"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	models := []struct {
		name  string
		model any
	}{
		{"food item", &entities.FoodItem{}},
		{"notification", &entities.Notification{}},
		{"shopping cart item", &entities.ShoppingCartItem{}},
		{"consumption marker", &entities.ConsumptionMarker{}},
	}

	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			log.Errorf("Error migrating %s database: %v", m.name, err)
			return fmt.Errorf("migrate %s: %w", m.name, err)
		}
	}

	log.Info("Database migration complete")
	return nil
}
