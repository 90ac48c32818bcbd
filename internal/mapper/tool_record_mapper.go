package mapper

import (
	"encoding/json"

	"ai-retirement-be/internal/entity"
	"ai-retirement-be/internal/model"

	"gorm.io/datatypes"
)

type ToolRecordMapper struct{}

func NewToolRecordMapper() *ToolRecordMapper {
	return &ToolRecordMapper{}
}

func (m *ToolRecordMapper) ToModel(record *entity.ToolRecord) *model.ToolRecord {
	raw, err := json.Marshal(record.Data)
	if err != nil {
		raw = []byte("{}")
	}

	out := &model.ToolRecord{
		Id:     record.Id,
		UserId: record.UserId,
		ToolId: record.ToolId,
		Data:   datatypes.JSON(raw),
	}
	out.CreatedAt = record.CreatedAt
	if record.UpdatedAt != nil {
		out.UpdatedAt = *record.UpdatedAt
	}
	return out
}

func (m *ToolRecordMapper) ToEntity(record *model.ToolRecord) *entity.ToolRecord {
	data := map[string]interface{}{}
	// A corrupt payload degrades to an empty map; the normalizer treats that
	// as "no data" for the tool.
	_ = json.Unmarshal(record.Data, &data)

	updatedAt := record.UpdatedAt
	return &entity.ToolRecord{
		Id:        record.Id,
		UserId:    record.UserId,
		ToolId:    record.ToolId,
		Data:      data,
		CreatedAt: record.CreatedAt,
		UpdatedAt: &updatedAt,
	}
}

func (m *ToolRecordMapper) ToEntities(records []*model.ToolRecord) []*entity.ToolRecord {
	out := make([]*entity.ToolRecord, 0, len(records))
	for _, record := range records {
		out = append(out, m.ToEntity(record))
	}
	return out
}
