package auditlog

import (
	"time"

	"github.com/google/uuid"
)

// Entry represents a row in the logs table.
type Entry struct {
	ID        uuid.UUID
	Actor     string
	Message   string
	CreatedAt time.Time
}
