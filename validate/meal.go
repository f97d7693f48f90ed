package validate

import (
	"github.com/gofiber/fiber/v2"

	"hostel_manager/model"
)

func CreateMealPlan() fiber.Handler {
	return body[model.CreateMealPlanInput]("inputCreateMealPlan")
}

func CreateMealOrder() fiber.Handler {
	return body[model.CreateMealOrderInput]("inputCreateMealOrder")
}
