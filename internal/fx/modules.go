package fx

import (
	"streak-tracker/internal/api"
	"streak-tracker/internal/config"
	"streak-tracker/internal/leaderboard"
	"streak-tracker/internal/logger"
	"streak-tracker/internal/server"
	"streak-tracker/internal/service"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	// api client
	fx.Provide(api.NewClient),
	// board
	fx.Provide(leaderboard.NewBoard),
	// svc
	fx.Provide(service.NewUserService),
	// server
	fx.Provide(server.NewTrackerServer),
)
