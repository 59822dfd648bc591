package utils

import (
	"log"
	"strings"
	"time"

	"crs/src/config"
	"crs/src/models"
	"crs/src/types"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// NewBookingReference builds the member-facing booking identifier, e.g.
// "tahoe-9f1c2b3a".
func NewBookingReference(p types.Property) string {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return slug.Make(string(p)) + "-" + suffix
}

func ParseStayDate(s string) (time.Time, error) {
	return time.ParseInLocation(config.DATE_PARSE_FORMAT, s, time.UTC)
}

// RecordTrail writes an audit row; failures are logged, never fatal.
func RecordTrail(gdb *gorm.DB, actorID uint, action string, resource string, resourceID uint, meta types.JSONB) {
	trail := models.Trail{
		ActorID:    actorID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Metadata:   meta,
	}
	if err := gdb.Create(&trail).Error; err != nil {
		log.Printf("[audit] Error recording trail for %s %s/%d: %s\n", action, resource, resourceID, err.Error())
	}
}
