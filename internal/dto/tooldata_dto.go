package dto

import (
	"time"

	"github.com/google/uuid"
)

type SaveToolDataRequest struct {
	Data map[string]interface{} `json:"data" validate:"required"`
}

type SaveToolDataResponse struct {
	RecordId uuid.UUID `json:"record_id"`
}

type ToolDataResponse struct {
	ToolId    string                 `json:"tool_id"`
	Data      map[string]interface{} `json:"data"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt *time.Time             `json:"updated_at"`
}

type ToolDataListResponse struct {
	Tools []ToolDataResponse `json:"tools"`
}
