package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-retirement-be/internal/dto"
	"ai-retirement-be/internal/pkg/logger"
	"ai-retirement-be/internal/repository/contract"
	"ai-retirement-be/pkg/events"
	"ai-retirement-be/pkg/tooldata"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// TopicToolDataSaved is the in-process bus topic for tool-record writes.
const TopicToolDataSaved = "TOOL_DATA_SAVED"

type IToolDataService interface {
	Save(ctx context.Context, userId uuid.UUID, toolId string, req *dto.SaveToolDataRequest) (*dto.SaveToolDataResponse, error)
	Show(ctx context.Context, userId uuid.UUID, toolId string) (*dto.ToolDataResponse, error)
	List(ctx context.Context, userId uuid.UUID) (*dto.ToolDataListResponse, error)

	// Load implements planner.ToolStore: the raw record map for one user,
	// served from a short-lived cache when the durable store was read recently.
	Load(ctx context.Context, userId string) (map[string]tooldata.RawToolRecord, error)
}

type toolDataService struct {
	records   contract.ToolRecordRepository
	publisher IPublisherService
	rawCache  *gocache.Cache
	logger    logger.ILogger
}

func NewToolDataService(records contract.ToolRecordRepository, publisher IPublisherService, sysLogger logger.ILogger) IToolDataService {
	// Raw tool data is re-read on every generation; a short TTL only saves the
	// redundant fetch when insights and generation run back to back.
	rawCache := gocache.New(5*time.Minute, 10*time.Minute)
	return &toolDataService{
		records:   records,
		publisher: publisher,
		rawCache:  rawCache,
		logger:    sysLogger,
	}
}

func (s *toolDataService) Save(ctx context.Context, userId uuid.UUID, toolId string, req *dto.SaveToolDataRequest) (*dto.SaveToolDataResponse, error) {
	if !tooldata.IsKnownTool(toolId) {
		return nil, fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("unknown tool: %s", toolId))
	}

	recordId, err := s.records.Upsert(ctx, userId, toolId, req.Data)
	if err != nil {
		return nil, err
	}

	// The snapshot must see the new record on the next aggregation.
	s.rawCache.Delete(userId.String())

	evt := events.NewToolDataSaved(userId.String(), toolId, recordId.String())
	payload, err := json.Marshal(evt.Payload())
	if err == nil {
		if err := s.publisher.Publish(ctx, TopicToolDataSaved, payload); err != nil {
			s.logger.Warn("TOOLDATA", "Failed to publish tool data saved event", map[string]interface{}{
				"tool_id": toolId,
				"error":   err.Error(),
			})
		}
	}

	return &dto.SaveToolDataResponse{RecordId: recordId}, nil
}

func (s *toolDataService) Show(ctx context.Context, userId uuid.UUID, toolId string) (*dto.ToolDataResponse, error) {
	if !tooldata.IsKnownTool(toolId) {
		return nil, fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("unknown tool: %s", toolId))
	}

	record, err := s.records.FindOne(ctx, userId, toolId)
	if err != nil {
		return nil, err
	}
	if record == nil {
		// Absence is "no data", not an error; serve an empty payload.
		return &dto.ToolDataResponse{ToolId: toolId, Data: map[string]interface{}{}}, nil
	}

	return &dto.ToolDataResponse{
		ToolId:    record.ToolId,
		Data:      record.Data,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}, nil
}

func (s *toolDataService) List(ctx context.Context, userId uuid.UUID) (*dto.ToolDataListResponse, error) {
	records, err := s.records.FindAllByUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	res := &dto.ToolDataListResponse{Tools: []dto.ToolDataResponse{}}
	for _, record := range records {
		if !tooldata.IsKnownTool(record.ToolId) {
			continue // plan artifact and any future reserved ids
		}
		res.Tools = append(res.Tools, dto.ToolDataResponse{
			ToolId:    record.ToolId,
			Data:      record.Data,
			CreatedAt: record.CreatedAt,
			UpdatedAt: record.UpdatedAt,
		})
	}
	return res, nil
}

func (s *toolDataService) Load(ctx context.Context, userId string) (map[string]tooldata.RawToolRecord, error) {
	if x, found := s.rawCache.Get(userId); found {
		return x.(map[string]tooldata.RawToolRecord), nil
	}

	uid, err := uuid.Parse(userId)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	records, err := s.records.FindAllByUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	raw := make(map[string]tooldata.RawToolRecord, len(records))
	for _, record := range records {
		if !tooldata.IsKnownTool(record.ToolId) {
			continue
		}
		raw[record.ToolId] = tooldata.RawToolRecord{
			Data:      record.Data,
			CreatedAt: record.CreatedAt,
		}
	}

	s.rawCache.Set(userId, raw, gocache.DefaultExpiration)
	return raw, nil
}
