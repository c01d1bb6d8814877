package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/bootstrap"
	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/health"
	ripapp "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/app"
	ripconfig "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/config"
)

// Version: 빌드 시 ldflags로 주입됨 (예: -ldflags="-X main.Version=1.0.0")
var Version = "dev"

func main() {
	health.Init(Version)

	logger := bootstrap.NewLogger()
	slog.SetDefault(logger)

	finalLogger, err := bootstrap.RunBotEntrypoint(
		context.Background(),
		logger,
		"ripbot.log",
		ripconfig.LoadFromEnv,
		func(cfg *ripconfig.Config) ripconfig.LogConfig { return cfg.Log },
		ripapp.Initialize,
	)
	if err != nil {
		logger = finalLogger
		logger.Error("fatal", "err", err)
		os.Exit(1)
	}
}
