package common

import (
	"log"
	"time"

	"crs/src/config"
	"crs/src/db"
	"crs/src/lib"
	"crs/src/models"
	"crs/src/types"

	"github.com/go-co-op/gocron/v2"
)

// ScheduleReminderJobs runs a daily scan for next-day checkins and checkouts
// and emits reminder events. Reminders only read bookings, they never
// mutate them.
func ScheduleReminderJobs() {
	sched, err := lib.GetScheduler()
	if err != nil {
		return
	}
	_, err = sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(9, 0, 0))),
		gocron.NewTask(SendStayReminders),
	)
	if err != nil {
		log.Printf("[reminders] Error scheduling daily job: %s\n", err.Error())
		return
	}
	sched.Start()
}

func SendStayReminders() {
	gdb := db.GetDb()
	today := time.Now().UTC().Truncate(24 * time.Hour)
	tomorrow := today.Add(24 * time.Hour)

	var checkins []models.Booking
	err := gdb.
		Model(&models.Booking{}).
		Where("status = ?", types.BOOKING_CONFIRMED).
		Where("checkin_date = ?", tomorrow).
		Find(&checkins).
		Error
	if err != nil {
		log.Printf("[reminders] Error loading checkins: %s\n", err.Error())
		return
	}
	for _, b := range checkins {
		produceReminder("checkin", &b)
	}

	var checkouts []models.Booking
	err = gdb.
		Model(&models.Booking{}).
		Where("status = ?", types.BOOKING_CONFIRMED).
		Where("checkout_date = ?", tomorrow).
		Find(&checkouts).
		Error
	if err != nil {
		log.Printf("[reminders] Error loading checkouts: %s\n", err.Error())
		return
	}
	for _, b := range checkouts {
		produceReminder("checkout", &b)
	}
	log.Printf("[reminders] queued %d checkin and %d checkout reminders\n", len(checkins), len(checkouts))
}

func produceReminder(kind string, b *models.Booking) {
	payload := map[string]any{
		"kind":          kind,
		"booking_id":    b.ID,
		"reference_id":  b.ReferenceID,
		"property":      string(b.Property),
		"checkin_date":  b.CheckinDate.Format(config.DATE_PARSE_FORMAT),
		"checkout_date": b.CheckoutDate.Format(config.DATE_PARSE_FORMAT),
		"user_id":       b.UserID,
	}
	if err := lib.KafkaProduceMessage("booking_reminders_producer", lib.TOPIC_BOOKING_REMINDERS, payload); err != nil {
		log.Printf("[reminders] Error producing %s reminder for booking %d: %s\n", kind, b.ID, err.Error())
	}
}
