package main

import (
	"context"
	"os"

	"geocache-finder/config"
	"geocache-finder/di"
	"geocache-finder/logger"
)

func main() {
	logger.Setup()
	cfg := config.Load()

	container, err := di.NewContainer(context.Background(), cfg)
	if err != nil {
		logger.L().Error("container_init_failed", "err", err)
		os.Exit(1)
	}
	defer container.Close()

	if err := container.GeocacheHttpServer.Start(); err != nil {
		logger.L().Error("server_failed", "err", err)
		container.Close()
		os.Exit(1)
	}
}
