package model

type Student struct {
	DTO
	FullName   string `gorm:"not null" validate:"required" json:"fullName"`
	NationalID string `gorm:"uniqueIndex;not null" validate:"required" json:"nationalId"`
	Email      string `gorm:"uniqueIndex;not null" validate:"required,email" json:"email"`
	Password   string `gorm:"not null" json:"-"`
	Role       string `gorm:"not null;default:'student'" json:"role"`
	Active     bool   `gorm:"default:true" json:"active"`
}

type RegisterInput struct {
	FullName   string `json:"fullName" validate:"required"`
	NationalID string `json:"nationalId" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type EditStudentInput struct {
	FullName   *string `json:"fullName"`
	NationalID *string `json:"nationalId"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Active     *bool   `json:"active"`
}

type FilterStudent struct {
	Pagination
	SearchKey string  `query:"searchKey" json:"searchKey"`
	Role      *string `query:"role" json:"role"`
	Active    *bool   `query:"active" json:"active"`
}
