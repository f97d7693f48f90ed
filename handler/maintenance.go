package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"hostel_manager/constants"
	"hostel_manager/database"
	"hostel_manager/helper"
	"hostel_manager/model"
	"hostel_manager/utils"
)

// CreateMaintenance files a request against the student's current room.
// The room is resolved through the allocation engine; no active
// allocation means no eligible room and the submission is refused.
func (h *AllocationHandler) CreateMaintenance(c *fiber.Ctx) error {
	input, ok := c.Locals("inputCreateMaintenance").(model.CreateMaintenanceInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse input fail"))
	}
	claim := helper.GetStudentClaim(c)

	active, err := h.Query.GetActiveAllocation(c.Context(), claim.StudentId)
	if err != nil {
		return allocationError(c, err)
	}
	if active == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.NO_ACTIVE_ALLOCATION, errors.New("no room to report"))
	}

	request := model.MaintenanceRequest{
		StudentID:   claim.StudentId,
		RoomID:      active.RoomID,
		Title:       input.Title,
		Description: input.Description,
		Status:      constants.MAINTENANCE_PENDING,
	}
	if err := database.DB.Create(&request).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, request)
}

func GetMyMaintenance(c *fiber.Ctx) error {
	claim := helper.GetStudentClaim(c)

	var requests []model.MaintenanceRequest
	err := database.DB.
		Preload("Room").
		Where("student_id = ?", claim.StudentId).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, requests)
}

func GetMaintenance(c *fiber.Ctx) error {
	filterInput := new(model.FilterMaintenance)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	condition := db.Model(&model.MaintenanceRequest{})
	if filterInput.Status != nil {
		condition = condition.Where("status = ?", *filterInput.Status)
	}
	if filterInput.RoomID != nil {
		condition = condition.Where("room_id = ?", *filterInput.RoomID)
	}

	var totalCount int64
	condition.Count(&totalCount)
	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)

	var requests []model.MaintenanceRequest
	if err := condition.Preload("Room").Order("created_at DESC").Find(&requests).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	response := &model.ResponseCustom{
		Rows:       requests,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func UpdateMaintenance(c *fiber.Ctx) error {
	requestId, ok := c.Locals("inputId").(uint)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse id fail"))
	}
	input, ok := c.Locals("inputUpdateMaintenance").(model.UpdateMaintenanceInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse input fail"))
	}

	db := database.DB
	var request model.MaintenanceRequest
	if err := db.First(&request, requestId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	request.Status = input.Status
	if err := db.Save(&request).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, request)
}
