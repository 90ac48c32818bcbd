package service

import (
	"context"
	"encoding/json"
	"time"

	"ai-retirement-be/internal/dto"
	"ai-retirement-be/internal/pkg/logger"
	"ai-retirement-be/pkg/events"
	"ai-retirement-be/pkg/insight"
	"ai-retirement-be/pkg/plancache"
	"ai-retirement-be/pkg/planner"
	"ai-retirement-be/pkg/tooldata"
)

// TopicPlanGenerated is the in-process bus topic for finished generations.
const TopicPlanGenerated = "PLAN_GENERATED"

type IPlanService interface {
	GeneratePlan(ctx context.Context, userId, authToken string, req *dto.GeneratePlanRequest) (*dto.GeneratePlanResponse, error)
	GetCachedPlan(ctx context.Context, userId string) (*dto.CachedPlanResponse, error)
	GetInsights(ctx context.Context, userId string) (*dto.InsightsResponse, error)
}

type planService struct {
	orchestrator *planner.Orchestrator
	cache        *plancache.Manager
	toolData     IToolDataService
	publisher    IPublisherService
	logger       logger.ILogger
}

func NewPlanService(
	orchestrator *planner.Orchestrator,
	cache *plancache.Manager,
	toolData IToolDataService,
	publisher IPublisherService,
	sysLogger logger.ILogger,
) IPlanService {
	return &planService{
		orchestrator: orchestrator,
		cache:        cache,
		toolData:     toolData,
		publisher:    publisher,
		logger:       sysLogger,
	}
}

// GeneratePlan serves a fresh cached plan when one exists and the caller did
// not force a refresh; otherwise it runs the full pipeline. Overlapping calls
// for one user are not serialized: the cache reconciler's last-write-wins is
// sufficient because plans are regenerable.
func (s *planService) GeneratePlan(ctx context.Context, userId, authToken string, req *dto.GeneratePlanRequest) (*dto.GeneratePlanResponse, error) {
	if !req.ForceRefresh {
		cached, staleness, err := s.loadWithStaleness(ctx, userId)
		if err == nil && cached != nil && !staleness.Stale {
			return &dto.GeneratePlanResponse{
				Plan:       &cached.Plan,
				Cached:     true,
				TierUsed:   cached.TierUsed,
				TokensUsed: cached.TokensUsed,
				Staleness:  &staleness,
			}, nil
		}
	}

	result, err := s.orchestrator.Generate(ctx, planner.GenerateInput{
		UserId:     userId,
		AuthToken:  authToken,
		Tier:       req.Tier,
		FocusAreas: req.FocusAreas,
	})
	if err != nil {
		return nil, err
	}

	evt := events.NewPlanGenerated(userId, result.Plan.Id, result.TierUsed, result.Plan.ModelUsed)
	if payload, err := json.Marshal(evt.Payload()); err == nil {
		if err := s.publisher.Publish(ctx, TopicPlanGenerated, payload); err != nil {
			s.logger.Warn("PLAN", "Failed to publish plan generated event", map[string]interface{}{
				"plan_id": result.Plan.Id,
				"error":   err.Error(),
			})
		}
	}

	return &dto.GeneratePlanResponse{
		Plan:       result.Plan,
		Cached:     false,
		TierUsed:   result.TierUsed,
		TokensUsed: result.TokensUsed,
	}, nil
}

func (s *planService) GetCachedPlan(ctx context.Context, userId string) (*dto.CachedPlanResponse, error) {
	cached, staleness, err := s.loadWithStaleness(ctx, userId)
	if err != nil {
		return nil, err
	}
	if cached == nil {
		return nil, nil
	}

	return &dto.CachedPlanResponse{
		Plan:      &cached.Plan,
		TierUsed:  cached.TierUsed,
		CachedAt:  cached.CachedAt.Format(time.RFC3339),
		Staleness: staleness,
	}, nil
}

func (s *planService) GetInsights(ctx context.Context, userId string) (*dto.InsightsResponse, error) {
	raw, err := s.toolData.Load(ctx, userId)
	if err != nil {
		return nil, err
	}

	snapshot := tooldata.Normalize(raw)
	return &dto.InsightsResponse{
		Insights:         insight.Analyze(snapshot),
		ToolsWithData:    snapshot.ToolsWithData,
		DataCompleteness: snapshot.DataCompleteness,
	}, nil
}

// loadWithStaleness reconciles the cache tiers and flags the winner against
// the current snapshot signature. Both staleness reasons are surfaced so the
// consumer can explain why a refresh is suggested.
func (s *planService) loadWithStaleness(ctx context.Context, userId string) (*plancache.CachedPlan, plancache.Staleness, error) {
	cached, err := s.cache.LoadCached(ctx, userId)
	if err != nil || cached == nil {
		return nil, plancache.Staleness{}, err
	}

	currentSignature := ""
	if raw, err := s.toolData.Load(ctx, userId); err == nil {
		snapshot := tooldata.Normalize(raw)
		if sig, err := plancache.Signature(snapshot); err == nil {
			currentSignature = sig
		}
	}

	staleness := plancache.CheckStaleness(cached, currentSignature, time.Now())
	return cached, staleness, nil
}
