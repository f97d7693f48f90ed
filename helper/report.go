package helper

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"hostel_manager/allocation"
)

var reportScheduler gocron.Scheduler

// StartDailyReport logs an occupancy summary every night at 23:55.
func StartDailyReport(directory *allocation.Directory) {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.Local),
	)
	if err != nil {
		log.Printf("failed to create report scheduler: %v", err)
		return
	}

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(23, 55, 0),
			),
		),
		gocron.NewTask(func() {
			summary, err := directory.Summary(context.Background())
			if err != nil {
				log.Printf("daily report failed: %v", err)
				return
			}
			log.Printf("daily occupancy: %d/%d rooms occupied, %d active allocations, %d students",
				summary.OccupiedRooms, summary.TotalRooms, summary.ActiveAllocations, summary.TotalStudents)
		}),
	)
	if err != nil {
		log.Printf("failed to schedule daily report: %v", err)
		return
	}

	s.Start()
	reportScheduler = s
}

func StopDailyReport() {
	if reportScheduler != nil {
		_ = reportScheduler.Shutdown()
	}
}
