package validate

import (
	"github.com/gofiber/fiber/v2"

	"hostel_manager/model"
)

func CreateRoom() fiber.Handler {
	return body[model.CreateRoomInput]("inputCreateRoom")
}

func EditRoom(key string) fiber.Handler {
	return editBody[model.EditRoomInput](key, "inputEditRoom")
}
