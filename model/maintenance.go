package model

type MaintenanceRequest struct {
	DTO
	StudentID   uint   `gorm:"not null;index" json:"studentId"`
	RoomID      uint   `gorm:"not null;index" json:"roomId"`
	Title       string `gorm:"not null" validate:"required" json:"title"`
	Description string `gorm:"not null" validate:"required" json:"description"`
	Status      string `gorm:"not null;default:'pending'" json:"status"`

	Room    Room    `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Student Student `gorm:"foreignKey:StudentID" json:"-"`
}

type CreateMaintenanceInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type UpdateMaintenanceInput struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress resolved"`
}

type FilterMaintenance struct {
	Pagination
	Status *string `query:"status" json:"status"`
	RoomID *uint   `query:"roomId" json:"roomId"`
}
