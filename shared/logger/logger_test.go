package logger_test

import (
	"testing"

	"github.com/rs/zerolog"

	"atrium/config"
	"atrium/shared/logger"
)

func TestSetLogLevel_ValidLevel(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.LogLevel = "warn"

	logger.SetLogLevel(cfg)

	if zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Errorf("expected global level warn, got %s", zerolog.GlobalLevel())
	}
}

func TestSetLogLevel_InvalidLevelFallsBack(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.LogLevel = "shouting"

	logger.SetLogLevel(cfg)

	if zerolog.GlobalLevel() != zerolog.TraceLevel {
		t.Errorf("expected fallback to trace, got %s", zerolog.GlobalLevel())
	}
}
