package contract

import (
	"context"

	"ai-retirement-be/internal/entity"

	"github.com/google/uuid"
)

// ToolRecordRepository is the durable per-user tool-record store. Absence of a
// record is (nil, nil), never an error.
type ToolRecordRepository interface {
	// Upsert saves one tool's payload for a user and returns the record id.
	Upsert(ctx context.Context, userId uuid.UUID, toolId string, data map[string]interface{}) (uuid.UUID, error)
	FindOne(ctx context.Context, userId uuid.UUID, toolId string) (*entity.ToolRecord, error)
	FindAllByUser(ctx context.Context, userId uuid.UUID) ([]*entity.ToolRecord, error)
	Delete(ctx context.Context, userId uuid.UUID, toolId string) error
}
