package helper

import (
	"errors"
	"fmt"
	"net/mail"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hostel_manager/database"
	"hostel_manager/model"
)

var JwtSecret = []byte(os.Getenv("JWT_SECRET"))

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func GetStudentByEmail(e string) (*model.Student, error) {
	db := database.DB
	var student model.Student
	if err := db.Where(&model.Student{Email: e}).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &student, nil
}

func ValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

func GenerateAccessToken(tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["studentId"] = tokenClaim.StudentId
	claims["email"] = tokenClaim.Email
	claims["role"] = tokenClaim.Role
	claims["exp"] = time.Now().Add(time.Minute * 60).Unix()

	return token.SignedString(JwtSecret)
}

func GenerateRefreshToken(tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["studentId"] = tokenClaim.StudentId
	claims["email"] = tokenClaim.Email
	claims["exp"] = time.Now().Add(time.Hour * 24 * 7).Unix()

	return token.SignedString(JwtSecret)
}

func ParseToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return JwtSecret, nil
	})
}

// GetStudentClaim reads the authenticated identity stashed by
// middleware.Protected. A zero StudentId means no valid identity.
func GetStudentClaim(c *fiber.Ctx) model.TokenClaim {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return model.TokenClaim{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.TokenClaim{}
	}
	id, _ := claims["studentId"].(float64)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	return model.TokenClaim{
		StudentId: uint(id),
		Email:     email,
		Role:      role,
	}
}
