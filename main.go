package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"hostel_manager/allocation"
	"hostel_manager/config"
	"hostel_manager/database"
	"hostel_manager/handler"
	"hostel_manager/helper"
	"hostel_manager/router"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	db, err := database.ConnectDB()
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	store := allocation.NewGormStore(db)
	if err := store.Migrate(); err != nil {
		logger.Fatal("engine migration failed", zap.Error(err))
	}
	database.SeedData(db)

	coordinator := allocation.NewCoordinator(store, logger)
	query := allocation.NewQueryService(store)
	directory := allocation.NewDirectory(store)

	handler.InitRealtime(config.Config("REDIS_ADDR"))
	coordinator.OnAvailabilityChange = handler.PublishAvailability

	helper.StartOccupancyAudit(db)
	defer helper.StopOccupancyAudit()
	helper.StartDailyReport(directory)
	defer helper.StopDailyReport()

	app := fiber.New(fiber.Config{})
	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigOr("CORS_ORIGIN", "http://localhost:5173"),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	allocHandler := handler.NewAllocationHandler(coordinator, query, directory)
	router.SetupRoutes(app, allocHandler)

	logger.Fatal("server stopped", zap.Error(app.Listen(":"+config.ConfigOr("PORT", "8002"))))
}
