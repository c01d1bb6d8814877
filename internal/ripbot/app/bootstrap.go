//go:build !wireinject

package app

import (
	"context"
	"log/slog"

	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/bootstrap"
	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/config"
)

// Initialize 는 립 봇 애플리케이션 의존성을 초기화하고 ServerApp을 반환한다.
func Initialize(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*bootstrap.ServerApp, func(), error) {
	msgProvider, err := newRipMessageProvider()
	if err != nil {
		return nil, nil, err
	}

	_, cleanupTelemetry, err := newRipTelemetry(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	dataValkeyClient, cleanupDataValkey, err := newRipDataValkey(ctx, cfg, logger)
	if err != nil {
		cleanupTelemetry()
		return nil, nil, err
	}

	stores := newRipStores(dataValkeyClient, logger)

	db, cleanupDB, err := newRipDB(ctx, cfg, logger)
	if err != nil {
		cleanupDataValkey()
		cleanupTelemetry()
		return nil, nil, err
	}

	repository, err := newRipRepository(ctx, db)
	if err != nil {
		cleanupDB()
		cleanupDataValkey()
		cleanupTelemetry()
		return nil, nil, err
	}

	services := newRipServices(cfg, msgProvider, stores, repository, logger)

	httpMux := newRipHTTPMux(services, db, logger)
	httpServer := newRipHTTPServer(cfg, httpMux)

	mqValkeyClient, cleanupMQValkey, err := newRipMQValkey(ctx, cfg, logger)
	if err != nil {
		cleanupDB()
		cleanupDataValkey()
		cleanupTelemetry()
		return nil, nil, err
	}

	mqPipeline := newRipMQPipeline(cfg, mqValkeyClient, msgProvider, stores, services, logger)

	serverApp := newRipServerApp(cfg, logger, httpServer, services, mqPipeline)

	cleanup := func() {
		cleanupMQValkey()
		cleanupDB()
		cleanupDataValkey()
		cleanupTelemetry()
	}

	return serverApp, cleanup, nil
}
