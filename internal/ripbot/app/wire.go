//go:build wireinject

package app

import (
	"context"
	"log/slog"

	"github.com/google/wire"

	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/bootstrap"
	ripconfig "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/config"
)

//go:generate go run github.com/google/wire/cmd/wire@v0.7.0
func Initialize(
	ctx context.Context,
	cfg *ripconfig.Config,
	logger *slog.Logger,
) (*bootstrap.ServerApp, func(), error) {
	wire.Build(
		ripProviderSet,
	)
	return nil, nil, nil
}
