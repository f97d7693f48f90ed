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

func GetRooms(c *fiber.Ctx) error {
	filterInput := new(model.FilterRoom)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	condition := db.Model(&model.Room{})
	if filterInput.Floor != nil {
		condition = condition.Where("floor = ?", *filterInput.Floor)
	}
	if filterInput.Type != nil {
		condition = condition.Where("type = ?", *filterInput.Type)
	}
	if filterInput.MaxPrice != nil {
		condition = condition.Where("price_per_month <= ?", *filterInput.MaxPrice)
	}

	var totalCount int64
	condition.Count(&totalCount)
	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)

	var rooms []model.Room
	if err := condition.Order("room_number ASC").Find(&rooms).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	response := &model.ResponseCustom{
		Rows:       rooms,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func GetRoomById(c *fiber.Ctx) error {
	roomId, ok := c.Locals("inputId").(uint)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse id fail"))
	}

	var room model.Room
	if err := database.DB.First(&room, roomId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, room)
}

func CreateRoom(c *fiber.Ctx) error {
	input, ok := c.Locals("inputCreateRoom").(model.CreateRoomInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse input fail"))
	}

	var newRoom model.Room
	copier.Copy(&newRoom, &input)
	if newRoom.Type == "" {
		newRoom.Type = model.RoomSingle
	}

	if err := database.DB.Create(&newRoom).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "UNIQUE") {
			return utils.ErrorResponse(c, fiber.StatusConflict, "Room number already exists", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, newRoom)
}

// EditRoom updates room attributes. The occupied flag is owned by the
// booking coordinator and is deliberately not touchable here.
func EditRoom(c *fiber.Ctx) error {
	roomId, ok := c.Locals("inputId").(uint)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse id fail"))
	}
	input, ok := c.Locals("inputEditRoom").(model.EditRoomInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse input fail"))
	}

	db := database.DB
	var room model.Room
	if err := db.First(&room, roomId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	copier.CopyWithOption(&room, &input, copier.Option{IgnoreEmpty: true})
	if err := db.Save(&room).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, room)
}

// DeleteRoom refuses while an active allocation references the room.
func (h *AllocationHandler) DeleteRoom(c *fiber.Ctx) error {
	roomId, ok := c.Locals("inputId").(uint)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse id fail"))
	}

	occupant, err := h.Query.GetCurrentOccupant(c.Context(), roomId)
	if err != nil {
		return allocationError(c, err)
	}
	if occupant != nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.ROOM_HAS_OCCUPANT, errors.New("release allocation first"))
	}

	result := database.DB.Delete(&model.Room{}, roomId)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, errors.New("room not found"))
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": roomId})
}
