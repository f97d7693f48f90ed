package model

type RoomType string

const (
	RoomSingle RoomType = "single"
	RoomDouble RoomType = "double"
	RoomShared RoomType = "shared"
	RoomStudio RoomType = "studio"
)

type Room struct {
	DTO
	RoomNumber    string   `gorm:"uniqueIndex;not null" validate:"required" json:"roomNumber"`
	Floor         int      `gorm:"not null" json:"floor"`
	Capacity      int      `gorm:"not null;default:1" validate:"min=1" json:"capacity"`
	PricePerMonth float64  `gorm:"not null" validate:"min=0" json:"pricePerMonth"`
	Type          RoomType `gorm:"not null;default:'single'" json:"type"`
	// Occupied is owned by the booking coordinator. Room CRUD must never
	// write it.
	Occupied bool `gorm:"not null;default:false" json:"occupied"`
}

type CreateRoomInput struct {
	RoomNumber    string   `json:"roomNumber" validate:"required"`
	Floor         int      `json:"floor" validate:"min=0"`
	Capacity      int      `json:"capacity" validate:"required,min=1"`
	PricePerMonth float64  `json:"pricePerMonth" validate:"min=0"`
	Type          RoomType `json:"type" validate:"omitempty,oneof=single double shared studio"`
}

type EditRoomInput struct {
	RoomNumber    *string   `json:"roomNumber"`
	Floor         *int      `json:"floor"`
	Capacity      *int      `json:"capacity" validate:"omitempty,min=1"`
	PricePerMonth *float64  `json:"pricePerMonth" validate:"omitempty,min=0"`
	Type          *RoomType `json:"type" validate:"omitempty,oneof=single double shared studio"`
}

type FilterRoom struct {
	Pagination
	Floor    *int     `query:"floor" json:"floor"`
	Type     *string  `query:"type" json:"type"`
	MaxPrice *float64 `query:"maxPrice" json:"maxPrice"`
}
