package model

import "time"

// Allocation records a student holding a room. EndDate nil means the
// allocation is active; once set it is never changed again.
type Allocation struct {
	DTO
	PublicCode string     `gorm:"uniqueIndex;size:20" json:"publicCode"`
	StudentID  uint       `gorm:"not null;index" json:"studentId"`
	RoomID     uint       `gorm:"not null;index" json:"roomId"`
	StartDate  time.Time  `gorm:"not null" json:"startDate"`
	EndDate    *time.Time `gorm:"default:null" json:"endDate"`

	Room    Room    `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Student Student `gorm:"foreignKey:StudentID" json:"-"`
}

// Active reports whether the allocation has not been released yet.
func (a *Allocation) Active() bool {
	return a.EndDate == nil
}

type ClaimRoomInput struct {
	RoomID uint `json:"roomId" validate:"required,gt=0"`
}
