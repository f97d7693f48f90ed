package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"hostel_manager/constants"
	"hostel_manager/database"
	"hostel_manager/helper"
	"hostel_manager/model"
	"hostel_manager/utils"
)

func GetMealPlans(c *fiber.Ctx) error {
	var plans []model.MealPlan
	err := database.DB.
		Where("available = ?", true).
		Order("meal_type ASC, price ASC").
		Find(&plans).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, plans)
}

func CreateMealPlan(c *fiber.Ctx) error {
	input, ok := c.Locals("inputCreateMealPlan").(model.CreateMealPlanInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse input fail"))
	}

	plan := model.MealPlan{
		Name:        input.Name,
		MealType:    input.MealType,
		Description: input.Description,
		Price:       input.Price,
		Available:   true,
	}
	if err := database.DB.Create(&plan).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, plan)
}

func CreateMealOrder(c *fiber.Ctx) error {
	input, ok := c.Locals("inputCreateMealOrder").(model.CreateMealOrderInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse input fail"))
	}
	claim := helper.GetStudentClaim(c)

	var plan model.MealPlan
	if err := database.DB.First(&plan, input.MealPlanID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	if !plan.Available {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Meal plan not available", errors.New("plan disabled"))
	}

	order := model.MealOrder{
		StudentID:  claim.StudentId,
		MealPlanID: plan.ID,
		OrderDate:  time.Now(),
		Status:     constants.MEAL_ORDER_PLACED,
	}
	if err := database.DB.Create(&order).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, order)
}

func GetMyMealOrders(c *fiber.Ctx) error {
	claim := helper.GetStudentClaim(c)

	var orders []model.MealOrder
	err := database.DB.
		Preload("MealPlan").
		Where("student_id = ?", claim.StudentId).
		Order("order_date DESC").
		Find(&orders).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, orders)
}
