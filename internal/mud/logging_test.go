package mud

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSlogBridgeLevels(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := SlogBridge(zap.New(core))

	log.Debug("hidden")
	log.Info("client connected", "client", "car")
	log.Warn("client dropped", "error", errors.New("EOF"))
	log.Error("listener failed", "error", "bind: address in use")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Message != "client connected" || entries[0].ContextMap()["client"] != "car" {
		t.Fatalf("unexpected entry %+v", entries[0])
	}
	if entries[1].Level != zapcore.ErrorLevel {
		t.Fatalf("expected error level, got %s", entries[1].Level)
	}
}
