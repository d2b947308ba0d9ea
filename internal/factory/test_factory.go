package factory

import (
	"time"

	"github.com/nhamil/tilewe-go/internal/dependencies/mocks"
	"github.com/nhamil/tilewe-go/internal/storage/memory"
	"github.com/nhamil/tilewe-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// With nothing queued, MockRandom always returns 0, so every bot seat plays
// the first candidate it is offered and games are reproducible.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, 0, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
