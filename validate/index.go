package validate

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"hostel_manager/constants"
	"hostel_manager/utils"
)

var validate = validator.New()

// GetById parses a numeric route parameter into c.Locals("inputId").
func GetById(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil || valueKey <= 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		c.Locals("inputId", uint(valueKey))
		return c.Next()
	}
}

// body parses and validates the request body, then stores it under the
// given locals key.
func body[T any](key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input T
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		c.Locals(key, input)
		return c.Next()
	}
}

// editBody additionally parses the numeric route parameter into
// c.Locals("inputId").
func editBody[T any](paramKey, localsKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(paramKey)
		valueKey, err := strconv.Atoi(params)
		if err != nil || valueKey <= 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}
		var input T
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		c.Locals("inputId", uint(valueKey))
		c.Locals(localsKey, input)
		return c.Next()
	}
}
