package implementation

import (
	"context"
	"encoding/json"
	"errors"

	"ai-retirement-be/internal/entity"
	"ai-retirement-be/internal/mapper"
	"ai-retirement-be/internal/model"
	"ai-retirement-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ToolRecordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ToolRecordMapper
}

func NewToolRecordRepository(db *gorm.DB) contract.ToolRecordRepository {
	return &ToolRecordRepositoryImpl{
		db:     db,
		mapper: mapper.NewToolRecordMapper(),
	}
}

func (r *ToolRecordRepositoryImpl) Upsert(ctx context.Context, userId uuid.UUID, toolId string, data map[string]interface{}) (uuid.UUID, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return uuid.Nil, err
	}

	m := &model.ToolRecord{
		UserId: userId,
		ToolId: toolId,
		Data:   datatypes.JSON(raw),
	}

	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "tool_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return uuid.Nil, err
	}

	// On conflict gorm doesn't refill the generated id; look it up.
	if m.Id == uuid.Nil {
		existing, err := r.FindOne(ctx, userId, toolId)
		if err != nil {
			return uuid.Nil, err
		}
		if existing != nil {
			return existing.Id, nil
		}
	}
	return m.Id, nil
}

func (r *ToolRecordRepositoryImpl) FindOne(ctx context.Context, userId uuid.UUID, toolId string) (*entity.ToolRecord, error) {
	var m model.ToolRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND tool_id = ?", userId, toolId).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ToolRecordRepositoryImpl) FindAllByUser(ctx context.Context, userId uuid.UUID) ([]*entity.ToolRecord, error) {
	var models []*model.ToolRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ToolRecordRepositoryImpl) Delete(ctx context.Context, userId uuid.UUID, toolId string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND tool_id = ?", userId, toolId).
		Delete(&model.ToolRecord{}).Error
}
