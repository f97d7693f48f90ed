package handler

import (
	"encoding/base64"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"hostel_manager/allocation"
	"hostel_manager/constants"
	"hostel_manager/database"
	"hostel_manager/helper"
	"hostel_manager/model"
	"hostel_manager/utils"
)

// AllocationHandler exposes the booking engine over HTTP. The
// coordinator, query service and directory are injected; nothing here
// touches the inventory tables directly.
//
// Ambiguous outcomes (a timeout after the store write) are not retried
// here: the client resolves them by re-reading /allocations/me.
type AllocationHandler struct {
	Coordinator *allocation.Coordinator
	Query       *allocation.QueryService
	Directory   *allocation.Directory
}

func NewAllocationHandler(coord *allocation.Coordinator, query *allocation.QueryService, directory *allocation.Directory) *AllocationHandler {
	return &AllocationHandler{Coordinator: coord, Query: query, Directory: directory}
}

// allocationError maps the engine taxonomy onto HTTP statuses. The
// three claim outcomes stay distinguishable: "you already hold a room",
// "this room was just taken" and "transient failure, retry" must not
// collapse into one.
func allocationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, allocation.ErrNotAuthenticated):
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.PERMISSION_DENIED, err)
	case errors.Is(err, allocation.ErrAlreadyAllocated):
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.ALREADY_ALLOCATED, err)
	case errors.Is(err, allocation.ErrRoomUnavailable):
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.ROOM_UNAVAILABLE, err)
	case errors.Is(err, allocation.ErrNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	case errors.Is(err, allocation.ErrAlreadyReleased):
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.ALREADY_RELEASED, err)
	case errors.Is(err, allocation.ErrStoreUnavailable):
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, constants.STORE_UNAVAILABLE, err)
	default:
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
}

func (h *AllocationHandler) BookRoom(c *fiber.Ctx) error {
	input, ok := c.Locals("inputClaimRoom").(model.ClaimRoomInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse input fail"))
	}
	claim := helper.GetStudentClaim(c)

	alloc, err := h.Coordinator.ClaimRoom(c.Context(), claim.StudentId, input.RoomID)
	if err != nil {
		return allocationError(c, err)
	}

	qrBase64 := ""
	if qrBytes, err := utils.GenerateQRCode(alloc.PublicCode, 400); err != nil {
		log.Printf("failed to build QR for booking %s: %v", alloc.PublicCode, err)
	} else {
		qrBase64 = "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrBytes)
	}

	// Confirmation mail goes out async; booking already committed.
	go func(alloc model.Allocation) {
		var student model.Student
		var room model.Room
		if err := database.DB.First(&student, alloc.StudentID).Error; err != nil {
			return
		}
		if err := database.DB.First(&room, alloc.RoomID).Error; err != nil {
			return
		}
		helper.SendBookingConfirmation(student, room, alloc)
	}(*alloc)

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"allocation": alloc,
		"qrCode":     qrBase64,
	})
}

func (h *AllocationHandler) ReleaseRoom(c *fiber.Ctx) error {
	allocationId, ok := c.Locals("inputId").(uint)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse id fail"))
	}
	claim := helper.GetStudentClaim(c)

	// Students may only release their own allocation; admins any.
	if claim.Role != constants.ROLE_ADMIN {
		target, err := h.Query.GetAllocation(c.Context(), allocationId)
		if err != nil {
			return allocationError(c, err)
		}
		if target.StudentID != claim.StudentId {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.PERMISSION_DENIED, errors.New("not your allocation"))
		}
	}

	released, err := h.Coordinator.ReleaseRoom(c.Context(), allocationId)
	if err != nil {
		// A replay of a release that already succeeded is success for
		// an at-least-once caller.
		if errors.Is(err, allocation.ErrAlreadyReleased) {
			alloc, lerr := h.Query.GetAllocation(c.Context(), allocationId)
			if lerr != nil {
				return allocationError(c, lerr)
			}
			return utils.SuccessResponse(c, fiber.StatusOK, alloc)
		}
		return allocationError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, released)
}

func (h *AllocationHandler) MyRoom(c *fiber.Ctx) error {
	claim := helper.GetStudentClaim(c)

	alloc, err := h.Query.GetActiveAllocation(c.Context(), claim.StudentId)
	if err != nil {
		return allocationError(c, err)
	}
	if alloc == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NO_ACTIVE_ALLOCATION, nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, alloc)
}

func (h *AllocationHandler) History(c *fiber.Ctx) error {
	claim := helper.GetStudentClaim(c)

	history, err := h.Query.ListHistory(c.Context(), claim.StudentId)
	if err != nil {
		return allocationError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, history)
}

func (h *AllocationHandler) AvailableRooms(c *fiber.Ctx) error {
	filterInput := new(model.FilterRoom)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	rooms, err := h.Query.ListAvailableRooms(c.Context(), allocation.RoomFilter{
		Floor:    filterInput.Floor,
		Type:     filterInput.Type,
		MaxPrice: filterInput.MaxPrice,
	})
	if err != nil {
		return allocationError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, rooms)
}

func (h *AllocationHandler) CurrentOccupant(c *fiber.Ctx) error {
	roomId, ok := c.Locals("inputId").(uint)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse id fail"))
	}

	occupant, err := h.Query.GetCurrentOccupant(c.Context(), roomId)
	if err != nil {
		return allocationError(c, err)
	}
	if occupant == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NO_ACTIVE_ALLOCATION, nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, occupant)
}

func (h *AllocationHandler) Dashboard(c *fiber.Ctx) error {
	summary, err := h.Directory.Summary(c.Context())
	if err != nil {
		return allocationError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, summary)
}

func (h *AllocationHandler) ActiveAllocations(c *fiber.Ctx) error {
	active, err := h.Directory.ActiveAllocations(c.Context())
	if err != nil {
		return allocationError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, active)
}
