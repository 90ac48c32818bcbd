package bootstrap

import (
	"log"

	"ai-retirement-be/internal/config"
	"ai-retirement-be/internal/controller"
	"ai-retirement-be/internal/pkg/logger"
	"ai-retirement-be/internal/repository/implementation"
	"ai-retirement-be/internal/service"
	"ai-retirement-be/pkg/llm"
	"ai-retirement-be/pkg/llm/factory"
	"ai-retirement-be/pkg/llm/gemini"
	"ai-retirement-be/pkg/plancache"
	"ai-retirement-be/pkg/planner"

	pkgNats "ai-retirement-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	PlanController     controller.IPlanController
	InsightController  controller.IInsightController
	ToolDataController controller.IToolDataController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	NatsPublisher *pkgNats.Publisher
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS is optional infrastructure; the service runs without it.
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// 3. LLM Providers
	// Either provider may be absent; the orchestrator degrades across the
	// ones that exist.
	var geminiProvider llm.Provider
	if cfg.Ai.HasGemini() {
		if len(cfg.Ai.GeminiModels) > 0 {
			geminiProvider = gemini.NewGeminiProvider(cfg.Ai.GeminiAPIKey, cfg.Ai.GeminiModels)
		} else {
			geminiProvider, err = factory.NewLLMProvider(llm.ProviderGemini, cfg.Ai.GeminiAPIKey, "")
			if err != nil {
				log.Fatalf("[FATAL] Failed to initialize Gemini provider: %v", err)
			}
		}
		log.Printf("[INFO] LLM provider configured: %s", llm.ProviderGemini)
	}

	var anthropicProvider llm.Provider
	if cfg.Ai.HasAnthropic() {
		anthropicProvider, err = factory.NewLLMProvider(llm.ProviderAnthropic, cfg.Ai.AnthropicAPIKey, cfg.Ai.AnthropicModel)
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize Anthropic provider: %v", err)
		}
		log.Printf("[INFO] LLM provider configured: %s", llm.ProviderAnthropic)
	}

	// 4. Repositories
	toolRecordRepo := implementation.NewToolRecordRepository(db)
	remotePlanStore := implementation.NewRemotePlanStore(toolRecordRepo)

	// 5. Plan Cache (local memory tier + durable tier)
	cacheManager := plancache.NewManager(remotePlanStore)

	// 6. Services
	publisherService := service.NewPublisherService(pubSub)
	toolDataService := service.NewToolDataService(toolRecordRepo, publisherService, sysLogger)

	orchestrator := planner.NewOrchestrator(
		toolDataService,
		cacheManager,
		geminiProvider,
		anthropicProvider,
		sysLogger,
	)

	planService := service.NewPlanService(orchestrator, cacheManager, toolDataService, publisherService, sysLogger)

	consumerService := service.NewConsumerService(
		pubSub,
		[]string{service.TopicPlanGenerated, service.TopicToolDataSaved},
		natsPub,
	)

	// 7. Controllers
	planController := controller.NewPlanController(planService)
	insightController := controller.NewInsightController(planService)
	toolDataController := controller.NewToolDataController(toolDataService)

	return &Container{
		PlanController:     planController,
		InsightController:  insightController,
		ToolDataController: toolDataController,
		ConsumerService:    consumerService,
		NatsPublisher:      natsPub,
	}
}
