package bootstrap

import (
	"context"
	"log"

	"doc-templates-be/internal/config"
	"doc-templates-be/internal/controller"
	"doc-templates-be/internal/handler"
	"doc-templates-be/internal/pkg/logger"
	"doc-templates-be/internal/pkg/mailer"
	"doc-templates-be/internal/pkg/serverutils"
	"doc-templates-be/internal/repository/contract"
	"doc-templates-be/internal/repository/implementation"
	"doc-templates-be/internal/repository/memory"
	"doc-templates-be/internal/service"
	"doc-templates-be/internal/websocket"
	"doc-templates-be/pkg/catalog"
	pktNats "doc-templates-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	SessionController controller.ISessionController
	CatalogController controller.ICatalogController

	// Background Services (Exposed for main.go to run)
	NoticeConsumer service.INoticeConsumer
	WebSocketHub   *websocket.Hub

	NoticeHandler *handler.NoticeHandler

	Logger logger.ILogger

	closers []func()
}

// NewContainer wires the application. db may be nil, the activity ledger
// is then disabled. NATS and Redis are optional in the same way.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c := &Container{Logger: sysLogger}

	cat, err := catalog.Default()
	if err != nil {
		log.Fatalf("[FATAL] Failed to load template catalog: %v", err)
	}

	// Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { pubSub.Close() })

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.SenderName,
		)
	}

	sessionRepo := memory.NewSessionRepository(cfg.Session.TTL, cfg.Session.CleanupInterval)

	var activityRepo contract.ActivityRepository
	if db != nil {
		activityRepo = implementation.NewActivityRepository(db)
	}

	// NATS
	var eventPublisher service.EventPublisher
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			eventPublisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	// Redis
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		c.closers = append(c.closers, func() { rdb.Close() })
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger(cfg.App.NoticeLogFilePath)
	c.WebSocketHub = websocket.NewHub(rdb, wsLogger)

	verifier := serverutils.NewIdentityVerifier(cfg.Auth.IdentitySecret, cfg.Auth.Issuer)
	noticePublisher := service.NewNoticePublisher(service.NoticeTopic, pubSub)
	c.NoticeConsumer = service.NewNoticeConsumer(pubSub, service.NoticeTopic, c.WebSocketHub, emailService, sysLogger)

	sessionService := service.NewSessionService(
		cat,
		sessionRepo,
		verifier,
		activityRepo,
		eventPublisher,
		noticePublisher,
		sysLogger,
	)
	catalogService := service.NewCatalogService(cat)

	c.SessionController = controller.NewSessionController(sessionService)
	c.CatalogController = controller.NewCatalogController(catalogService)
	c.NoticeHandler = handler.NewNoticeHandler(sessionRepo, c.WebSocketHub, wsLogger)

	return c
}

// Close releases broker and cache connections.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.Logger.Sync()
}
