package validate

import (
	"github.com/gofiber/fiber/v2"

	"hostel_manager/model"
)

func CreateMaintenance() fiber.Handler {
	return body[model.CreateMaintenanceInput]("inputCreateMaintenance")
}

func UpdateMaintenance(key string) fiber.Handler {
	return editBody[model.UpdateMaintenanceInput](key, "inputUpdateMaintenance")
}
