package engine

import (
	"encoding/json"
	"testing"
	"time"

	"crs/src/lib"
	"crs/src/models"
	"crs/src/types"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestRefundResultReplayCache(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	lib.NewRedisClient(rdb)

	result := &models.RefundResult{
		IdempotencyKey:          "cancel-7f3a",
		BookingID:               7,
		Outcome:                 types.REFUND_NONE,
		RefundAmountCents:       0,
		Currency:                "USD",
		AppliedRefundPercentage: 0,
		Reason:                  "change of plans",
	}
	raw, err := json.Marshal(result)
	assert.Nil(t, err)

	mock.ExpectSet("refund_result:cancel-7f3a", string(raw), 24*time.Hour).SetVal("OK")
	storeInRedis(result)

	mock.ExpectGet("refund_result:cancel-7f3a").SetVal(string(raw))
	cached := replayFromRedis("cancel-7f3a")
	assert.NotNil(t, cached)
	assert.Equal(t, result.IdempotencyKey, cached.IdempotencyKey)
	assert.Equal(t, result.BookingID, cached.BookingID)
	assert.Equal(t, result.Outcome, cached.Outcome)

	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestRefundResultReplayCacheMiss(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	lib.NewRedisClient(rdb)

	mock.ExpectGet("refund_result:unseen").RedisNil()
	assert.Nil(t, replayFromRedis("unseen"))
	assert.Nil(t, mock.ExpectationsWereMet())
}
