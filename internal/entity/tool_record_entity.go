package entity

import (
	"time"

	"github.com/google/uuid"
)

// ToolRecord is one tool's saved payload for one user. The Data map is the
// tool's own schema; the core never interprets it here.
type ToolRecord struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID `gorm:"type:uuid;index"`
	ToolId    string
	Data      map[string]interface{}
	CreatedAt time.Time
	UpdatedAt *time.Time
}
