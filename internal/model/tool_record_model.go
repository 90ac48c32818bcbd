package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ToolRecord struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index:idx_tool_records_user_tool,unique"`
	ToolId    string         `gorm:"type:varchar(64);not null;index:idx_tool_records_user_tool,unique"`
	Data      datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (ToolRecord) TableName() string {
	return "tool_records"
}
