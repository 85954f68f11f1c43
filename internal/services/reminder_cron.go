package services

import (
	"fmt"
	"log"
	"time"

	"railpass/internal/engine"
	"railpass/internal/repositories"
	"railpass/internal/utils"

	"github.com/robfig/cron/v3"
)

// ReminderService sweeps unbooked reservation tasks whose travel date is
// inside the risk window and logs a reminder. It never mutates tasks; status
// changes stay with the caller.
type ReminderService struct {
	TaskRepo repositories.TaskRepository
	Config   engine.Config
	Now      func() time.Time
}

// StartReminderCron schedules the sweep. Returns the cron so main can stop it
// on shutdown.
func StartReminderCron(spec string, svc ReminderService) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if err := svc.Sweep(); err != nil {
			log.Printf("[REMINDER] sweep failed: %v", err)
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	log.Printf("[REMINDER] scheduled with spec %q", spec)
	return c, nil
}

// Sweep logs one reminder per unbooked task close to departure.
func (s ReminderService) Sweep() error {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	window := s.Config.ReminderWindowDays
	if window <= 0 {
		window = 7
	}
	cutoff := now.AddDate(0, 0, window).Format("2006-01-02")

	tasks, err := s.TaskRepo.ListUnbooked(cutoff)
	if err != nil {
		return err
	}
	for _, t := range tasks {
		utils.LogEvent("", "reminder", "unbooked_task",
			fmt.Sprintf("task=%s segment=%s travel_date=%s status=%s risk=%s",
				t.ID, t.SegmentID, t.TravelDate, t.Status, t.Requirement.QuotaRisk))
	}
	if len(tasks) > 0 {
		log.Printf("[REMINDER] %d unbooked task(s) within %d days", len(tasks), window)
	}
	return nil
}
