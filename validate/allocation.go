package validate

import (
	"github.com/gofiber/fiber/v2"

	"hostel_manager/model"
)

func ClaimRoom() fiber.Handler {
	return body[model.ClaimRoomInput]("inputClaimRoom")
}
