package validate

import (
	"github.com/gofiber/fiber/v2"

	"hostel_manager/model"
)

func Register() fiber.Handler {
	return body[model.RegisterInput]("inputRegister")
}

func Login() fiber.Handler {
	return body[model.LoginInput]("inputLogin")
}

func EditStudent(key string) fiber.Handler {
	return editBody[model.EditStudentInput](key, "inputEditStudent")
}
