package main

import (
	"atrium/config"
	"atrium/di"
	"atrium/shared/logger"
)

// @title Atrium API
// @version 1.0
// @description Hotel management service for rooms, guests, and bookings.
// @BasePath /
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
