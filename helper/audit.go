package helper

import (
	"log"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"hostel_manager/model"
)

var auditScheduler *cron.Cron

// StartOccupancyAudit checks every 5 minutes that each room's occupied
// flag agrees with the existence of an active allocation. Mismatches are
// reported, never repaired: the booking coordinator is the only writer
// and a mismatch means an operation died between its two store writes.
func StartOccupancyAudit(db *gorm.DB) {
	auditScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := auditScheduler.AddFunc("*/5 * * * *", func() { runOccupancyAudit(db) })
	if err != nil {
		log.Printf("failed to start occupancy audit: %v", err)
		return
	}

	auditScheduler.Start()
	log.Println("occupancy audit started (every 5 minutes)")
}

func runOccupancyAudit(db *gorm.DB) {
	var phantom []model.Room
	err := db.Where("occupied = ?", true).
		Where("id NOT IN (?)", db.Model(&model.Allocation{}).Select("room_id").Where("end_date IS NULL")).
		Find(&phantom).Error
	if err != nil {
		log.Printf("occupancy audit query failed: %v", err)
		return
	}
	for _, room := range phantom {
		log.Printf("AUDIT: room %s (id=%d) marked occupied with no active allocation", room.RoomNumber, room.ID)
	}

	var orphaned []model.Room
	err = db.Where("occupied = ?", false).
		Where("id IN (?)", db.Model(&model.Allocation{}).Select("room_id").Where("end_date IS NULL")).
		Find(&orphaned).Error
	if err != nil {
		log.Printf("occupancy audit query failed: %v", err)
		return
	}
	for _, room := range orphaned {
		log.Printf("AUDIT: room %s (id=%d) marked free with an active allocation", room.RoomNumber, room.ID)
	}
}

func StopOccupancyAudit() {
	if auditScheduler != nil {
		auditScheduler.Stop()
		log.Println("occupancy audit stopped")
	}
}
