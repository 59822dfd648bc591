package boot

import (
	"log"

	"crs/src/common"
	"crs/src/db"
	"crs/src/engine"
	"crs/src/lib"
	"crs/src/models"
	"crs/src/types"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.RoomCategory{},
		&models.Season{},
		&models.Room{},
		&models.PricingRule{},
		&models.Booking{},
		&models.Payment{},
		&models.RefundPolicy{},
		&models.RefundPolicyRule{},
		&models.PendingRefund{},
		&models.RefundResult{},
		&models.Trail{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

// ValidateConfiguration fails fast on configuration gaps that would
// otherwise surface mid-request: a property without a default season cannot
// resolve stays, and a bookable (property, mode) without an active refund
// policy cannot process cancellations.
func ValidateConfiguration(gdb *gorm.DB) {
	for _, property := range types.AllProperties() {
		var count int64
		err := gdb.
			Model(&models.Season{}).
			Where("property = ? AND is_default = ?", property, true).
			Count(&count).
			Error
		if err != nil {
			log.Fatalf("[boot] Error checking default season for %s: %s", property, err.Error())
		}
		if count == 0 {
			log.Fatalf("[boot] %s: %s", engine.ErrNoSeasonConfigured.Error(), property)
		}
		if count > 1 {
			log.Fatalf("[boot] property %s has %d default seasons, want exactly 1", property, count)
		}

		for _, mode := range types.AllBookingModes() {
			var policies int64
			err := gdb.
				Model(&models.RefundPolicy{}).
				Where("property = ? AND mode = ? AND is_active = ?", property, mode, true).
				Count(&policies).
				Error
			if err != nil {
				log.Fatalf("[boot] Error checking refund policy for %s/%s: %s", property, mode, err.Error())
			}
			if policies == 0 {
				log.Fatalf("[boot] %s: property=%s mode=%s", engine.ErrNoPolicyConfigured.Error(), property, mode)
			}
			if policies > 1 {
				log.Fatalf("[boot] property %s mode %s has %d active refund policies, want exactly 1", property, mode, policies)
			}
		}
	}
	log.Println("[boot] configuration validated")
}

func InitBroker() {
	go lib.KafkaCreateTopics(
		lib.TOPIC_BOOKINGS_CONFIRMED,
		lib.TOPIC_BOOKINGS_CANCELLED,
		lib.TOPIC_REFUNDS_PENDING,
		lib.TOPIC_BOOKING_REMINDERS,
		lib.TOPIC_PAYMENTS_CAPTURED,
	)
	common.KafkaConsumers()
	common.SubscribeCacheInvalidations()
}

func InitScheduler() {
	common.ScheduleReminderJobs()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		return
	}
	if err := sched.Shutdown(); err != nil {
		log.Printf("[boot] Error shutting down scheduler: %s\n", err.Error())
	}
}
