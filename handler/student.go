package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"

	"hostel_manager/constants"
	"hostel_manager/database"
	"hostel_manager/model"
	"hostel_manager/utils"
)

func GetStudents(c *fiber.Ctx) error {
	filterInput := new(model.FilterStudent)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	condition := db.Model(&model.Student{})
	if filterInput.SearchKey != "" {
		key := "%" + strings.ToLower(filterInput.SearchKey) + "%"
		condition = condition.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR national_id LIKE ?", key, key, key)
	}
	if filterInput.Role != nil {
		condition = condition.Where("role = ?", *filterInput.Role)
	}
	if filterInput.Active != nil {
		condition = condition.Where("active = ?", *filterInput.Active)
	}

	var totalCount int64
	condition.Count(&totalCount)
	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)

	var students []model.Student
	if err := condition.Order("id ASC").Find(&students).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	response := &model.ResponseCustom{
		Rows:       students,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func EditStudent(c *fiber.Ctx) error {
	studentId, ok := c.Locals("inputId").(uint)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse id fail"))
	}
	input, ok := c.Locals("inputEditStudent").(model.EditStudentInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse input fail"))
	}

	db := database.DB
	var student model.Student
	if err := db.First(&student, studentId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	copier.CopyWithOption(&student, &input, copier.Option{IgnoreEmpty: true})
	if err := db.Save(&student).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, student)
}

// DeleteStudent refuses while the student holds an active allocation:
// the room must be released first so no active allocation is orphaned.
func (h *AllocationHandler) DeleteStudent(c *fiber.Ctx) error {
	studentId, ok := c.Locals("inputId").(uint)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse id fail"))
	}

	active, err := h.Query.GetActiveAllocation(c.Context(), studentId)
	if err != nil {
		return allocationError(c, err)
	}
	if active != nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.STUDENT_HAS_ROOM, errors.New("release room first"))
	}

	result := database.DB.Delete(&model.Student{}, studentId)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, errors.New("student not found"))
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": studentId})
}
