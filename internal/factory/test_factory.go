package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/intega-app/intega/internal/dependencies/mocks"
	"github.com/intega-app/intega/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	MemoryStore *memory.Storage
	MockClock   *mocks.MockClock
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Cookie keys are fixed so tests can craft and inspect session cookies.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	hashKey := []byte("test-hash-key-0123456789abcdef01")
	app := newWithDependencies(store, mockClock, hashKey, nil, logger)

	return &TestApp{
		App:         app,
		MemoryStore: store,
		MockClock:   mockClock,
	}
}
