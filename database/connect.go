package database

import (
	"fmt"
	"strconv"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"hostel_manager/config"
	"hostel_manager/model"
)

// DB serves the directory CRUD handlers. The allocation engine never
// touches it; the engine's store is injected in main.
var DB *gorm.DB

func ConnectDB() (*gorm.DB, error) {
	p := config.ConfigOr("DB_PORT", "5432")
	port, err := strconv.ParseUint(p, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("parse database port: %w", err)
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		config.Config("DB_HOST"), port, config.Config("DB_USER"),
		config.Config("DB_PASSWORD"), config.Config("DB_NAME"))
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := DB.AutoMigrate(
		&model.Student{},
		&model.MaintenanceRequest{},
		&model.MealPlan{},
		&model.MealOrder{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return DB, nil
}
