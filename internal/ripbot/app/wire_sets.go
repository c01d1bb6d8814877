//go:build wireinject

package app

import "github.com/google/wire"

var ripProviderSet = wire.NewSet(
	newRipTelemetry,
	newRipDataValkey,
	newRipMQValkey,
	newRipMessageProvider,
	newRipDB,
	newRipRepository,
	newRipStores,
	newRipServices,
	newRipMQPipeline,
	newRipHTTPMux,
	newRipHTTPServer,
	newRipServerApp,
)
