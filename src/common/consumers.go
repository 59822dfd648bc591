package common

import (
	"context"
	"log"

	"crs/src/config"
	"crs/src/db"
	"crs/src/engine"
	"crs/src/lib"

	"github.com/tidwall/gjson"
)

const cacheInvalidationChannel = "config-invalidate"

// KafkaConsumers logs domain event traffic. The real subscribers are the
// notification layer and accounting sync, which live outside this service.
func KafkaConsumers() {
	lib.KafkaSubscribe("crs_bookings", lib.TOPIC_BOOKINGS_CONFIRMED, func(payload string) {
		if !gjson.Valid(payload) {
			log.Printf("[%s]: Received invalid json body. Aborting", lib.TOPIC_BOOKINGS_CONFIRMED)
			return
		}
		ref := gjson.Get(payload, "reference_id").String()
		log.Printf("[%s] booking %s confirmed\n", lib.TOPIC_BOOKINGS_CONFIRMED, ref)
	})
	lib.KafkaSubscribe("crs_bookings", lib.TOPIC_BOOKINGS_CANCELLED, func(payload string) {
		if !gjson.Valid(payload) {
			log.Printf("[%s]: Received invalid json body. Aborting", lib.TOPIC_BOOKINGS_CANCELLED)
			return
		}
		id := gjson.Get(payload, "booking_id").Uint()
		outcome := gjson.Get(payload, "outcome").String()
		log.Printf("[%s] booking %d cancelled, refund outcome %s\n", lib.TOPIC_BOOKINGS_CANCELLED, id, outcome)
	})
	lib.KafkaSubscribe("crs_refunds", lib.TOPIC_REFUNDS_PENDING, func(payload string) {
		id := gjson.Get(payload, "id").Uint()
		log.Printf("[%s] pending refund %d awaiting review\n", lib.TOPIC_REFUNDS_PENDING, id)
	})
	lib.KafkaSubscribe("crs_payments", lib.TOPIC_PAYMENTS_CAPTURED, func(payload string) {
		if !gjson.Valid(payload) {
			log.Printf("[%s]: Received invalid json body. Aborting", lib.TOPIC_PAYMENTS_CAPTURED)
			return
		}
		bookingId := uint(gjson.Get(payload, "booking_id").Uint())
		reference := gjson.Get(payload, "reference_id").String()
		if bookingId == 0 || reference == "" {
			log.Printf("[%s] payload missing booking_id or reference_id\n", lib.TOPIC_PAYMENTS_CAPTURED)
			return
		}
		amount := gjson.Get(payload, "amount_cents").Int()
		currency := gjson.Get(payload, "currency").String()
		if currency == "" {
			currency = config.DefaultCurrency
		}
		if _, err := engine.ConfirmBookingPayment(db.GetDb(), bookingId, amount, currency, reference); err != nil {
			log.Printf("[%s] Error confirming booking %d: %s\n", lib.TOPIC_PAYMENTS_CAPTURED, bookingId, err.Error())
			return
		}
		log.Printf("[%s] booking %d confirmed\n", lib.TOPIC_PAYMENTS_CAPTURED, bookingId)
	})
}

// PublishCacheInvalidation tells sibling processes to drop a config key.
// The local cache is invalidated synchronously by the caller; this channel
// is only the cross-process hint.
func PublishCacheInvalidation(key string) {
	rdb := lib.GetRedisClient()
	if rdb == nil {
		return
	}
	if err := rdb.Publish(context.Background(), cacheInvalidationChannel, key).Err(); err != nil {
		log.Printf("[cache] Error publishing invalidation for %s: %s\n", key, err.Error())
	}
}

func SubscribeCacheInvalidations() {
	rdb := lib.GetRedisClient()
	if rdb == nil {
		return
	}
	sub := rdb.Subscribe(context.Background(), cacheInvalidationChannel)
	go func() {
		for msg := range sub.Channel() {
			if msg.Payload == "*" {
				engine.Cache.InvalidateAll()
				continue
			}
			engine.Cache.Invalidate(msg.Payload)
		}
	}()
}
