package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"crs/src/config"
	"crs/src/lib"
	"crs/src/models"
	"crs/src/money"
	"crs/src/types"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PickRefundRule selects the tightest band covering daysBefore. Rule
// thresholds are exclusive upper bounds: with bands {14: 0%, 21: 50%} a
// cancellation 18 days out gets the 21-day rule (at least 14 days notice
// was given, 21 was not). Equal thresholds tie-break on higher priority.
// Nil means the cancellation beat every configured threshold, i.e. a full
// refund.
func PickRefundRule(rules []models.RefundPolicyRule, daysBefore int) *models.RefundPolicyRule {
	var best *models.RefundPolicyRule
	for i := range rules {
		r := &rules[i]
		if int(r.DaysBeforeCheckin) <= daysBefore {
			continue
		}
		if best == nil ||
			r.DaysBeforeCheckin < best.DaysBeforeCheckin ||
			(r.DaysBeforeCheckin == best.DaysBeforeCheckin && r.Priority > best.Priority) {
			best = r
		}
	}
	return best
}

// DaysBeforeCheckin counts calendar days between the cancellation instant
// and the checkin date, in the property's local day, not wall-clock hours.
func DaysBeforeCheckin(checkin time.Time, cancelledAt time.Time, loc *time.Location) int {
	local := cancelledAt.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	ci := time.Date(checkin.Year(), checkin.Month(), checkin.Day(), 0, 0, 0, 0, time.UTC)
	return int(ci.Sub(today).Hours() / 24)
}

type RefundComputation struct {
	Amount          money.Money
	Percentage      uint
	AppliedRuleDays uint
	AutoProcessable bool
}

// ComputeRefund applies the active policy to the captured payment. Only a
// full or a zero refund is auto-processable, and only when the policy does
// not demand manual sign-off; everything else goes to human review.
func ComputeRefund(policy *models.RefundPolicy, payment money.Money, daysBefore int) RefundComputation {
	pct := uint(100)
	var ruleDays uint
	if rule := PickRefundRule(policy.Rules, daysBefore); rule != nil {
		pct = rule.RefundPercentage
		ruleDays = rule.DaysBeforeCheckin
	}
	amount := payment.Percent(pct)
	auto := !policy.RequiresReview && (amount.IsZero() || amount.Equal(payment))
	return RefundComputation{
		Amount:          amount,
		Percentage:      pct,
		AppliedRuleDays: ruleDays,
		AutoProcessable: auto,
	}
}

// ResolveActivePolicy loads the single active policy for (property, mode)
// through the config cache. Absence blocks cancellation entirely; it is a
// configuration gap, never a silent 0% or 100% default.
func ResolveActivePolicy(tx *gorm.DB, property types.Property, mode types.BookingMode) (*models.RefundPolicy, error) {
	key := PolicyCacheKey(property, mode)
	if v, ok := Cache.Get(key); ok {
		return v.(*models.RefundPolicy), nil
	}
	var policies []models.RefundPolicy
	err := tx.
		Model(&models.RefundPolicy{}).
		Where("property = ? AND mode = ? AND is_active = ?", property, mode, true).
		Preload("Rules").
		Order("id asc").
		Limit(1).
		Find(&policies).
		Error
	if err != nil {
		return nil, err
	}
	if len(policies) == 0 {
		return nil, fmt.Errorf("%w: property=%s mode=%s", ErrNoPolicyConfigured, property, mode)
	}
	policy := &policies[0]
	Cache.Put(key, policy)
	return policy, nil
}

type CancelRequest struct {
	BookingID      uint
	Reason         string
	IdempotencyKey string
}

// CancelAndRefund cancels a booking and computes the refund owed. The whole
// computation is idempotent on the caller's key: replays return the stored
// RefundResult without recomputing, double-refunding or duplicating a
// PendingRefund. Cancelling an already-cancelled booking under a fresh key
// also returns the original result. An auto-processed refund whose provider
// call failed stays out of the replay cache, so the next replay retries the
// disbursement.
func CancelAndRefund(gdb *gorm.DB, req *CancelRequest) (*models.RefundResult, error) {
	if req.IdempotencyKey == "" {
		return nil, errors.New("engine: idempotency key is required")
	}
	if cached := replayFromRedis(req.IdempotencyKey); cached != nil {
		return cached, nil
	}

	var result *models.RefundResult
	var payment models.Payment
	var pending *models.PendingRefund
	replayed := false
	err := gdb.Transaction(func(tx *gorm.DB) error {
		var existing models.RefundResult
		err := tx.
			Where(&models.RefundResult{IdempotencyKey: req.IdempotencyKey}).
			First(&existing).
			Error
		if err == nil {
			result = &existing
			replayed = true
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var booking models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(&models.Booking{ID: req.BookingID}).
			First(&booking).
			Error; err != nil {
			return err
		}
		if booking.Status == types.BOOKING_CANCELLED {
			var prior models.RefundResult
			if err := tx.
				Where(&models.RefundResult{BookingID: booking.ID}).
				Order("created_at asc").
				First(&prior).
				Error; err != nil {
				return fmt.Errorf("booking %d already cancelled with no refund record: %w", booking.ID, err)
			}
			result = &prior
			replayed = true
			return nil
		}

		var comp RefundComputation
		err = tx.
			Where(&models.Payment{BookingID: booking.ID}).
			First(&payment).
			Error
		switch {
		case err == nil:
			policy, perr := ResolveActivePolicy(tx, booking.Property, booking.Mode)
			if perr != nil {
				return perr
			}
			days := DaysBeforeCheckin(booking.CheckinDate, Now(), config.PropertyLocation(booking.Property))
			comp = ComputeRefund(policy, payment.Amount(), days)
		case errors.Is(err, gorm.ErrRecordNotFound) && booking.Status == types.BOOKING_PENDING:
			// nothing captured yet, cancelling just releases the window
			comp = RefundComputation{
				Amount:          money.Zero(config.DefaultCurrency),
				Percentage:      0,
				AutoProcessable: true,
			}
		default:
			return fmt.Errorf("no captured payment for booking %d: %w", booking.ID, err)
		}

		res := models.RefundResult{
			IdempotencyKey:           req.IdempotencyKey,
			BookingID:                booking.ID,
			RefundAmountCents:        comp.Amount.Amount,
			Currency:                 comp.Amount.Currency,
			AppliedDaysBeforeCheckin: comp.AppliedRuleDays,
			AppliedRefundPercentage:  comp.Percentage,
			Reason:                   req.Reason,
		}
		switch {
		case comp.AutoProcessable && comp.Amount.IsZero():
			res.Outcome = types.REFUND_NONE
		case comp.AutoProcessable:
			res.Outcome = types.REFUND_AUTO_PROCESSED
		default:
			p := models.PendingRefund{
				BookingID:                    booking.ID,
				PolicyRefundAmountCents:      comp.Amount.Amount,
				Currency:                     comp.Amount.Currency,
				AppliedRuleDaysBeforeCheckin: comp.AppliedRuleDays,
				AppliedRuleRefundPercentage:  comp.Percentage,
				CancellationReason:           req.Reason,
				Status:                       types.PENDING_REFUND_OPEN,
			}
			if err := tx.Create(&p).Error; err != nil {
				return err
			}
			pending = &p
			res.Outcome = types.REFUND_PENDING_REVIEW
			res.PendingRefundID = &p.ID
		}
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: booking.ID}).
			Update("status", types.BOOKING_CANCELLED).
			Error; err != nil {
			return err
		}
		if err := tx.Create(&res).Error; err != nil {
			return err
		}
		result = &res
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Disbursement runs outside the transaction and is retried on every
	// replay until the provider refund id is stamped. Amounts are never
	// sent twice: a stamped result short-circuits here, and the redis
	// replay cache only holds fully disbursed results.
	if result.Outcome == types.REFUND_AUTO_PROCESSED && result.ProviderRefundID == nil && result.RefundAmountCents > 0 {
		disburse(gdb, result)
	}
	if !replayed {
		go ProduceBookingCancelled(result)
		if pending != nil {
			go ProduceRefundPending(pending)
		}
	}
	if result.Outcome != types.REFUND_AUTO_PROCESSED || result.ProviderRefundID != nil || result.RefundAmountCents == 0 {
		storeInRedis(result)
	}
	return result, nil
}

func disburse(gdb *gorm.DB, result *models.RefundResult) {
	var payment models.Payment
	if err := gdb.
		Where(&models.Payment{BookingID: result.BookingID}).
		First(&payment).
		Error; err != nil {
		log.Printf("[alert] no payment to disburse refund %s for booking %d: %s\n", result.ID, result.BookingID, err.Error())
		return
	}
	refundId, err := lib.CreateRefund(payment.ReferenceID, result.RefundAmountCents)
	if err != nil {
		log.Printf("[alert] stripe refund for booking %d failed, will retry on replay: %s\n", result.BookingID, err.Error())
		return
	}
	if err := gdb.
		Model(&models.RefundResult{}).
		Where(&models.RefundResult{ID: result.ID}).
		Update("provider_refund_id", refundId).
		Error; err != nil {
		log.Printf("[engine] Error stamping provider refund %s on result %s: %s\n", refundId, result.ID, err.Error())
		return
	}
	result.ProviderRefundID = &refundId
}

func replayFromRedis(key string) *models.RefundResult {
	rdb := lib.GetRedisClient()
	if rdb == nil {
		return nil
	}
	raw, err := rdb.Get(context.Background(), "refund_result:"+key).Result()
	if err != nil {
		return nil
	}
	var result models.RefundResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		log.Printf("[engine] Error decoding cached refund result: %s\n", err.Error())
		return nil
	}
	return &result
}

func storeInRedis(result *models.RefundResult) {
	rdb := lib.GetRedisClient()
	if rdb == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := rdb.Set(context.Background(), "refund_result:"+result.IdempotencyKey, string(raw), 24*time.Hour).Err(); err != nil {
		log.Printf("[engine] Error caching refund result: %s\n", err.Error())
	}
}
