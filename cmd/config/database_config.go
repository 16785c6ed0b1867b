package config

import (
	"fmt"
	"time"

	"Pantry-Tracker/internal/utils"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func DSN() string {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		utils.GetConfig("DB_HOST"),
		utils.GetConfig("DB_USER"),
		utils.GetConfig("DB_PASSWORD"),
		utils.GetConfig("DB_NAME"),
		utils.GetConfig("DB_PORT"),
	)
	// the server session zone only matters for timestamps rendered by
	// postgres itself; "Local" is not a name postgres understands
	if loc := utils.GetLocation(); loc != time.Local {
		dsn += " TimeZone=" + loc.String()
	}
	return dsn
}

func ConnectDB() (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return db, nil
}
