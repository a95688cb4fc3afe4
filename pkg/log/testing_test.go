package log_test

import (
	"testing"

	"github.com/ezoic/evalharness/pkg/log"
)

func TestTestLoggerCapture(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)

	logger.Info("Dataset split",
		log.TrainSizeKey, 8,
		log.HoldoutSizeKey, 2,
	)

	if !logger.ContainsMessage("Dataset split") {
		t.Error("expected captured message")
	}
	if !logger.ContainsField(log.TrainSizeKey, float64(8)) {
		t.Error("expected captured train size field")
	}

	entries, err := logger.GetLogEntries()
	if err != nil {
		t.Fatalf("GetLogEntries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0]["level"] != "INFO" {
		t.Errorf("expected INFO level, got %v", entries[0]["level"])
	}
}

func TestTestLoggerLevelFiltering(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelWarn)

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("visible")

	entries, err := logger.GetLogEntries()
	if err != nil {
		t.Fatalf("GetLogEntries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0]["message"] != "visible" {
		t.Errorf("unexpected message: %v", entries[0]["message"])
	}
}

func TestTestLoggerWith(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelInfo)
	child := logger.With(log.RunIDKey, "run-123")

	child.Info("phase complete")

	testLogger, ok := child.(*log.TestLogger)
	if !ok {
		t.Fatalf("With should return a *TestLogger, got %T", child)
	}
	if !testLogger.ContainsField(log.RunIDKey, "run-123") {
		t.Error("expected inherited run id field")
	}
}

func TestTestLoggerClear(t *testing.T) {
	logger, buffer := log.NewTestLogger(log.LevelInfo)
	logger.Info("something")
	logger.Clear()

	if buffer.Len() != 0 {
		t.Error("Clear must discard captured output")
	}
}
