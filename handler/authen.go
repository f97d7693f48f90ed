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

func Register(c *fiber.Ctx) error {
	input, ok := c.Locals("inputRegister").(model.RegisterInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse input fail"))
	}

	existing, err := helper.GetStudentByEmail(input.Email)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if existing != nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.EMAIL_ALREADY_USED, errors.New("email exists"))
	}

	hash, err := helper.HashPassword(input.Password)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
	}

	student := model.Student{
		FullName:   input.FullName,
		NationalID: input.NationalID,
		Email:      input.Email,
		Password:   hash,
		Role:       constants.ROLE_STUDENT,
		Active:     true,
	}
	if err := database.DB.Create(&student).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, student)
}

func Login(c *fiber.Ctx) error {
	input, ok := c.Locals("inputLogin").(model.LoginInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse input fail"))
	}

	student, err := helper.GetStudentByEmail(input.Email)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if student == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_EMAIL, errors.New("email not registered"))
	}
	if !helper.CheckPasswordHash(input.Password, student.Password) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_PASSWORD, errors.New("password does not match"))
	}
	if !student.Active {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.PERMISSION_DENIED, errors.New("account disabled"))
	}

	tokenClaim := model.TokenClaim{
		StudentId: student.ID,
		Email:     student.Email,
		Role:      student.Role,
	}
	token, err := helper.GenerateAccessToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	refreshToken, err := helper.GenerateRefreshToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		HTTPOnly: true,
		SameSite: "None",
		Path:     "/",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HTTPOnly: true,
		SameSite: "None",
		Path:     "/",
	})

	return c.JSON(fiber.Map{
		"message": "login success",
		"student": fiber.Map{
			"id":       student.ID,
			"fullName": student.FullName,
			"email":    student.Email,
			"role":     student.Role,
		},
		"tokens": model.TokenData{AccessToken: token, RefreshToken: refreshToken},
	})
}

func Me(c *fiber.Ctx) error {
	claim := helper.GetStudentClaim(c)
	if claim.StudentId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.PERMISSION_DENIED, errors.New("no identity"))
	}

	var student model.Student
	if err := database.DB.First(&student, claim.StudentId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, student)
}
