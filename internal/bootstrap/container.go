package bootstrap

import (
	"context"
	"log"

	"career-assistant-be/internal/config"
	"career-assistant-be/internal/controller"
	"career-assistant-be/internal/handler"
	"career-assistant-be/internal/pkg/logger"
	"career-assistant-be/internal/repository/memory"
	"career-assistant-be/internal/repository/unitofwork"
	"career-assistant-be/internal/service"
	"career-assistant-be/internal/websocket"
	"career-assistant-be/pkg/events"
	"career-assistant-be/pkg/extractor"
	"career-assistant-be/pkg/llm"
	"career-assistant-be/pkg/llm/factory"
	pktNats "career-assistant-be/pkg/nats"
	"career-assistant-be/pkg/ocr"
	"career-assistant-be/pkg/rabbitmq"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SessionController controller.ISessionController
	FormController    controller.IFormController
	ResumeController  controller.IResumeController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	EventHandler *handler.EventHandler
	WebSocketHub *websocket.Hub

	// Broker is nil unless EVENT_BROKER selects one.
	Broker events.Broker
	PubSub *gochannel.GoChannel

	Health Health
}

// Health reports which optional backends came up.
type Health struct {
	IdentityStore bool   `json:"identity_store"`
	ClusterPush   bool   `json:"cluster_push"`
	Broker        string `json:"broker,omitempty"`
}

// NewContainer wires every dependency. db may be nil: identity then degrades
// to unpersisted sessions.
func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	var uowFactory unitofwork.RepositoryFactory
	if db != nil {
		uowFactory = unitofwork.NewRepositoryFactory(db)
	}
	sysLogger := logger.New(logger.Options{
		FilePath:   cfg.App.LogFilePath,
		Console:    true,
		Production: cfg.App.Environment == "production",
		Level:      cfg.App.LogLevel,
	})

	if cfg.App.JWTSecret == "" {
		log.Printf("[WARN] JWT_SECRET is empty, session tokens are not secure")
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Providers
	llmProvider, err := factory.NewLLMProvider(ctx, factory.Config{
		Provider:    cfg.Ai.LLMProvider,
		APIKey:      apiKeyFor(cfg),
		Model:       cfg.Ai.LLMModel,
		BaseURL:     cfg.Ai.BaseURL,
		Temperature: cfg.Ai.Temperature,
		Timeout:     cfg.Ai.Timeout,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	model := cfg.Ai.LLMModel
	if m, ok := llmProvider.(interface{ Model() string }); ok {
		model = m.Model()
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, model)

	fileExtractor := extractor.New(ocr.NewVisionProvider(cfg.Keys.GoogleCredentialsFile))

	// In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository(cfg.Session.TTL, cfg.Session.CleanupInterval)

	// 4. Infrastructure
	broker := newBroker(cfg)

	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis, push stays local: %v", err)
			rdb.Close()
			rdb = nil
		}
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/events.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run(ctx)

	// 5. Services
	publisherService := service.NewPublisherService(events.TopicSession, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		events.TopicSession,
		wsHub,
		broker,
		wsLogger,
	)

	identityService := service.NewIdentityService(uowFactory, cfg.Session.TokenTTL)
	sessionService := service.NewSessionService(sessionRepo, identityService, publisherService, sysLogger)
	var generateOpts []llm.Option
	if cfg.Ai.MaxTokens > 0 {
		generateOpts = append(generateOpts, llm.WithMaxTokens(cfg.Ai.MaxTokens))
	}
	submissionService := service.NewSubmissionService(sessionService, llmProvider, publisherService, sysLogger, generateOpts...)
	extractionService := service.NewExtractionService(sessionService, fileExtractor, publisherService, sysLogger)

	// 6. Controllers
	return &Container{
		SessionController: controller.NewSessionController(sessionService),
		FormController:    controller.NewFormController(submissionService),
		ResumeController:  controller.NewResumeController(extractionService, int64(cfg.App.UploadLimitBytes)),

		ConsumerService: consumerService,

		EventHandler: handler.NewEventHandler(wsHub, sessionService, wsLogger),
		WebSocketHub: wsHub,

		Broker: broker,
		PubSub: pubSub,

		Health: Health{
			IdentityStore: db != nil,
			ClusterPush:   rdb != nil,
			Broker:        brokerName(cfg, broker),
		},
	}
}

func brokerName(cfg *config.Config, broker events.Broker) string {
	if broker == nil {
		return ""
	}
	return cfg.Broker.Kind
}

// Close releases the event bus and the external broker.
func (c *Container) Close() {
	if c.PubSub != nil {
		c.PubSub.Close()
	}
	if c.Broker != nil {
		c.Broker.Close()
	}
}

func apiKeyFor(cfg *config.Config) string {
	if cfg.Ai.LLMProvider == "gemini" {
		return cfg.Keys.GoogleGemini
	}
	return cfg.Keys.OpenAI
}

func newBroker(cfg *config.Config) events.Broker {
	switch cfg.Broker.Kind {
	case "nats":
		pub, err := pktNats.NewPublisher(cfg.Broker.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			return nil
		}
		return pub
	case "amqp":
		pub, err := rabbitmq.NewPublisher(cfg.Broker.RabbitMQURL, cfg.Broker.RabbitExchange)
		if err != nil {
			log.Printf("[WARN] Failed to connect to RabbitMQ: %v", err)
			return nil
		}
		return pub
	default:
		return nil
	}
}
