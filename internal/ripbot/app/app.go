package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/bootstrap"
	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/telemetry"
	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/di"
	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/httpserver"
	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/messageprovider"
	commonmq "github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/mq"
	ripassets "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/assets"
	ripclock "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/clock"
	ripconfig "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/config"
	riphttpapi "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/httpapi"
	ripmq "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/mq"
	ripredis "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/redis"
	riprepo "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/repository"
	ripsecurity "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/security"
	ripsvc "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/service"
)

type ripStores struct {
	stateStore            *ripredis.StateStore
	roundStore            *ripredis.RoundStore
	resolveLock           *ripredis.ResolveLock
	processingLockService *ripredis.ProcessingLockService
}

func newRipStores(client di.DataValkeyClient, logger *slog.Logger) *ripStores {
	return &ripStores{
		stateStore:            ripredis.NewStateStore(client.Client, logger),
		roundStore:            ripredis.NewRoundStore(client.Client, logger),
		resolveLock:           ripredis.NewResolveLock(client.Client, logger),
		processingLockService: ripredis.NewProcessingLockService(client.Client, logger),
	}
}

type ripServices struct {
	activityService *ripsvc.ActivityService
	wageringService *ripsvc.WageringService
	ledgerView      *ripsvc.LedgerView
	adminService    *ripsvc.AdminService
	seasonManager   *ripsvc.SeasonManager
	roundScheduler  *ripsvc.RoundScheduler
}

func newRipServices(
	cfg *ripconfig.Config,
	msgProvider *messageprovider.Provider,
	stores *ripStores,
	repo *riprepo.Repository,
	logger *slog.Logger,
) *ripServices {
	clk := ripclock.SystemClock{}
	random := ripsvc.SystemRandomSource{}

	tracker := ripsvc.NewPeriodTracker()
	critEngine := ripsvc.NewCritEngine(random)
	scheduler := ripsvc.NewRoundScheduler(logger)

	activityService := ripsvc.NewActivityService(stores.stateStore, tracker, critEngine, msgProvider, clk, cfg.Game, logger)
	wageringService := ripsvc.NewWageringService(
		stores.stateStore,
		stores.roundStore,
		stores.resolveLock,
		msgProvider,
		random,
		clk,
		scheduler,
		cfg.Game,
		logger,
	)
	scheduler.SetResolver(wageringService.ResolveAndAnnounce)

	ledgerView := ripsvc.NewLedgerView(stores.stateStore, msgProvider, logger)
	adminService := ripsvc.NewAdminService(stores.stateStore, repo, msgProvider, logger)
	seasonManager := ripsvc.NewSeasonManager(stores.stateStore, repo, msgProvider, clk, logger)

	return &ripServices{
		activityService: activityService,
		wageringService: wageringService,
		ledgerView:      ledgerView,
		adminService:    adminService,
		seasonManager:   seasonManager,
		roundScheduler:  scheduler,
	}
}

func newRipReplyPublisher(cfg *ripconfig.Config, mqValkey di.MQValkeyClient, logger *slog.Logger) *ripmq.ReplyPublisher {
	return commonmq.NewBotReplyPublisher(
		mqValkey.Client,
		logger,
		cfg.Valkey.ReplyStreamKey,
		cfg.Valkey.StreamMaxLen,
	)
}

func newRipStreamConsumer(cfg *ripconfig.Config, mqValkey di.MQValkeyClient, logger *slog.Logger) *commonmq.StreamConsumer {
	return commonmq.NewBotStreamConsumer(
		mqValkey.Client,
		logger,
		cfg.Valkey.StreamKey,
		cfg.Valkey.ConsumerGroup,
		cfg.Valkey.ConsumerName,
		cfg.Valkey.BatchSize,
		cfg.Valkey.BlockTimeout,
		cfg.Valkey.Concurrency,
		cfg.Valkey.ResetConsumerGroupOnStartup,
	)
}

type ripMQPipeline struct {
	streamConsumer *commonmq.StreamConsumer
	streamHandler  *ripmq.StreamMessageHandler
}

// newRipMQPipeline: MQ 수신 파이프라인을 조립한다. 발표 경로(정산/시즌 마감)는
// ChatAnnouncer를 통해 서비스 계층에 지연 주입된다.
func newRipMQPipeline(
	cfg *ripconfig.Config,
	mqValkey di.MQValkeyClient,
	msgProvider *messageprovider.Provider,
	stores *ripStores,
	services *ripServices,
	logger *slog.Logger,
) *ripMQPipeline {
	accessControl := ripsecurity.NewAccessControl(cfg.Access)
	duplicateGuard := ripsecurity.NewDuplicateGuard(
		ripconfig.DuplicateGuardMaxEntries,
		time.Duration(ripconfig.DuplicateGuardTTLSeconds)*time.Second,
	)
	replyPublisher := newRipReplyPublisher(cfg, mqValkey, logger)

	announcer := ripmq.NewChatAnnouncer(replyPublisher)
	services.wageringService.SetAnnouncer(announcer)
	services.seasonManager.SetAnnouncer(announcer)

	commandParser := ripmq.NewCommandParser(cfg.Commands.Prefix)
	messageSender := ripmq.NewMessageSender(msgProvider, replyPublisher.Publish)

	commandHandler := ripmq.NewGameCommandHandler(
		services.wageringService,
		services.activityService,
		services.ledgerView,
		services.adminService,
		services.seasonManager,
		msgProvider,
		cfg.Admin,
		cfg.Commands.Prefix,
		logger,
	)

	botMessageService := ripmq.NewBotMessageService(
		commandHandler,
		services.activityService,
		messageSender,
		msgProvider,
		accessControl,
		commandParser,
		stores.processingLockService,
		duplicateGuard,
		cfg.Commands.Prefix,
		logger,
	)

	streamHandler := ripmq.NewStreamMessageHandler(botMessageService, logger)
	streamConsumer := newRipStreamConsumer(cfg, mqValkey, logger)
	return &ripMQPipeline{
		streamConsumer: streamConsumer,
		streamHandler:  streamHandler,
	}
}

func newRipDataValkey(
	ctx context.Context,
	cfg *ripconfig.Config,
	logger *slog.Logger,
) (di.DataValkeyClient, func(), error) {
	client, closeFn, err := bootstrap.NewAndPingDataValkeyClient(ctx, cfg.Redis, logger)
	if err != nil {
		return di.DataValkeyClient{}, nil, fmt.Errorf("init valkey failed: %w", err)
	}
	return client, closeFn, nil
}

func newRipMQValkey(
	ctx context.Context,
	cfg *ripconfig.Config,
	logger *slog.Logger,
) (di.MQValkeyClient, func(), error) {
	client, closeFn, err := bootstrap.NewAndPingMQValkeyClient(ctx, cfg.Valkey, logger)
	if err != nil {
		return di.MQValkeyClient{}, nil, fmt.Errorf("init valkey mq failed: %w", err)
	}
	return client, closeFn, nil
}

func newRipMessageProvider() (*messageprovider.Provider, error) {
	provider, err := messageprovider.NewFromYAMLAtPath(ripassets.GameMessagesYAML, "rip")
	if err != nil {
		return nil, fmt.Errorf("load messages failed: %w", err)
	}
	return provider, nil
}

func newRipDB(
	ctx context.Context,
	cfg *ripconfig.Config,
	logger *slog.Logger,
) (*gorm.DB, func(), error) {
	db, sqlDB, err := openPostgres(ctx, cfg.Postgres)
	if err != nil {
		return nil, nil, fmt.Errorf("open postgres failed: %w", err)
	}

	closeFn := func() {
		if closeErr := sqlDB.Close(); closeErr != nil {
			logger.Warn("postgres_close_failed", "err", closeErr)
		}
	}
	return db, closeFn, nil
}

func newRipRepository(ctx context.Context, db *gorm.DB) (*riprepo.Repository, error) {
	repo := riprepo.New(db)
	if err := repo.AutoMigrate(ctx); err != nil {
		return nil, fmt.Errorf("auto migrate failed: %w", err)
	}
	return repo, nil
}

func newRipHTTPMux(
	services *ripServices,
	db *gorm.DB,
	logger *slog.Logger,
) *http.ServeMux {
	mux := http.NewServeMux()
	riphttpapi.Register(mux, services.ledgerView, db, logger)
	return mux
}

func newRipTelemetry(ctx context.Context, cfg *ripconfig.Config, logger *slog.Logger) (*telemetry.Provider, func(), error) {
	provider, err := telemetry.NewProvider(ctx, cfg.Telemetry)
	if err != nil {
		return nil, nil, fmt.Errorf("init telemetry failed: %w", err)
	}
	cleanup := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := provider.Shutdown(shutdownCtx); shutdownErr != nil {
			logger.Warn("telemetry_shutdown_failed", "err", shutdownErr)
		}
	}
	return provider, cleanup, nil
}

func newRipHTTPServer(cfg *ripconfig.Config, mux *http.ServeMux) *http.Server {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	handler := otelhttp.NewHandler(mux, "ripbot.http")
	return httpserver.NewServer(addr, handler, httpserver.ServerOptions{
		UseH2C:            true,
		ReadHeaderTimeout: cfg.ServerTuning.ReadHeaderTimeout,
		IdleTimeout:       cfg.ServerTuning.IdleTimeout,
		MaxHeaderBytes:    cfg.ServerTuning.MaxHeaderBytes,
	})
}

func newRipServerApp(
	cfg *ripconfig.Config,
	logger *slog.Logger,
	server *http.Server,
	services *ripServices,
	mqPipeline *ripMQPipeline,
) *bootstrap.ServerApp {
	seasonTick := time.Duration(cfg.Game.SeasonTickMinutes) * time.Minute

	return bootstrap.NewServerApp(
		"ripbot",
		logger,
		server,
		10*time.Second,
		bootstrap.BackgroundTask{
			Name:        "mq_consumer",
			ErrorLogKey: "mq_consumer_failed",
			Run: func(ctx context.Context) error {
				return mqPipeline.streamConsumer.Run(ctx, mqPipeline.streamHandler.HandleStreamMessage)
			},
		},
		bootstrap.BackgroundTask{
			Name:        "round_scheduler",
			ErrorLogKey: "round_scheduler_failed",
			Run: func(ctx context.Context) error {
				return services.roundScheduler.Run(ctx)
			},
		},
		bootstrap.BackgroundTask{
			Name:        "season_manager",
			ErrorLogKey: "season_manager_failed",
			Run: func(ctx context.Context) error {
				return services.seasonManager.Run(ctx, seasonTick)
			},
		},
		bootstrap.BackgroundTask{
			Name:        "round_resume",
			ErrorLogKey: "round_resume_failed",
			Run: func(ctx context.Context) error {
				return services.wageringService.ResumeOpenRounds(ctx)
			},
		},
	)
}

func openPostgres(ctx context.Context, cfg ripconfig.PostgresConfig) (*gorm.DB, *sql.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("gorm open failed: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("get sql db failed: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, nil, fmt.Errorf("db ping failed: %w", err)
	}

	return db, sqlDB, nil
}
