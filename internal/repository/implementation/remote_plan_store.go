package implementation

import (
	"context"
	"encoding/json"
	"fmt"

	"ai-retirement-be/internal/repository/contract"
	"ai-retirement-be/pkg/plancache"
	"ai-retirement-be/pkg/tooldata"

	"github.com/google/uuid"
)

// RemotePlanStore is the durable plan-cache tier. The generated plan is just
// another record in the tool store, keyed by the reserved plan tool id.
type RemotePlanStore struct {
	records contract.ToolRecordRepository
}

var _ plancache.RemoteStore = &RemotePlanStore{}

func NewRemotePlanStore(records contract.ToolRecordRepository) *RemotePlanStore {
	return &RemotePlanStore{records: records}
}

func (s *RemotePlanStore) LoadPlan(ctx context.Context, userId string) (*plancache.CachedPlan, error) {
	uid, err := uuid.Parse(userId)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	record, err := s.records.FindOne(ctx, uid, tooldata.ToolPlanArtifact)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	raw, err := json.Marshal(record.Data)
	if err != nil {
		return nil, err
	}

	var cached plancache.CachedPlan
	if err := json.Unmarshal(raw, &cached); err != nil {
		// A payload we can't decode is treated as no cached plan rather than a
		// hard failure; the plan is regenerable.
		return nil, nil
	}
	return &cached, nil
}

func (s *RemotePlanStore) SavePlan(ctx context.Context, cached *plancache.CachedPlan) error {
	uid, err := uuid.Parse(cached.UserId)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}

	raw, err := json.Marshal(cached)
	if err != nil {
		return err
	}
	data := map[string]interface{}{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return err
	}

	_, err = s.records.Upsert(ctx, uid, tooldata.ToolPlanArtifact, data)
	return err
}
