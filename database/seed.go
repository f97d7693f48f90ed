package database

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hostel_manager/constants"
	"hostel_manager/model"
)

// SeedData creates the admin account, a demo student and the room grid.
// Idempotent: existing records are left alone.
func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("hostel123"), 10)
	if err != nil {
		log.Println("failed to hash seed password:", err)
		return
	}
	hash := string(bytes)

	students := []model.Student{
		{FullName: "Hostel Administration", NationalID: "ADMIN-0001", Email: "admin@hostel.local", Password: hash, Role: constants.ROLE_ADMIN, Active: true},
		{FullName: "Demo Student", NationalID: "29805120100001", Email: "student@hostel.local", Password: hash, Role: constants.ROLE_STUDENT, Active: true},
	}
	for _, student := range students {
		if err := db.Where(model.Student{Email: student.Email}).FirstOrCreate(&student).Error; err != nil {
			log.Println("failed to seed student:", student.Email, "error:", err)
		}
	}

	// Four floors, eight rooms each. Ground floor singles, upper floors
	// mixed.
	for floor := 1; floor <= 4; floor++ {
		for n := 1; n <= 8; n++ {
			room := model.Room{
				RoomNumber: fmt.Sprintf("%d%02d", floor, n),
				Floor:      floor,
				Capacity:   1,
				Type:       model.RoomSingle,
			}
			switch {
			case n > 6:
				room.Type = model.RoomShared
				room.Capacity = 4
				room.PricePerMonth = 180
			case n > 4:
				room.Type = model.RoomDouble
				room.Capacity = 2
				room.PricePerMonth = 260
			default:
				room.PricePerMonth = 320
			}
			if err := db.Where(model.Room{RoomNumber: room.RoomNumber}).FirstOrCreate(&room).Error; err != nil {
				log.Println("failed to seed room:", room.RoomNumber, "error:", err)
			}
		}
	}

	mealPlans := []model.MealPlan{
		{Name: "Continental breakfast", MealType: "breakfast", Price: 4.5},
		{Name: "Daily lunch menu", MealType: "lunch", Price: 7},
		{Name: "Dinner menu", MealType: "dinner", Price: 6.5},
	}
	for _, plan := range mealPlans {
		if err := db.Where(model.MealPlan{Name: plan.Name}).FirstOrCreate(&plan).Error; err != nil {
			log.Println("failed to seed meal plan:", plan.Name, "error:", err)
		}
	}
}
