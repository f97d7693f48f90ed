package model

import "time"

type MealPlan struct {
	DTO
	Name        string  `gorm:"not null" validate:"required" json:"name"`
	MealType    string  `gorm:"not null" validate:"required,oneof=breakfast lunch dinner snack" json:"mealType"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null" validate:"min=0" json:"price"`
	Available   bool    `gorm:"default:true" json:"available"`
}

type MealOrder struct {
	DTO
	StudentID  uint      `gorm:"not null;index" json:"studentId"`
	MealPlanID uint      `gorm:"not null;index" json:"mealPlanId"`
	OrderDate  time.Time `gorm:"not null" json:"orderDate"`
	Status     string    `gorm:"not null;default:'placed'" json:"status"`

	MealPlan MealPlan `gorm:"foreignKey:MealPlanID" json:"mealPlan,omitempty"`
	Student  Student  `gorm:"foreignKey:StudentID" json:"-"`
}

type CreateMealPlanInput struct {
	Name        string  `json:"name" validate:"required"`
	MealType    string  `json:"mealType" validate:"required,oneof=breakfast lunch dinner snack"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"min=0"`
}

type CreateMealOrderInput struct {
	MealPlanID uint `json:"mealPlanId" validate:"required,gt=0"`
}
