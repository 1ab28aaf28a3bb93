package factory

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/progressjournal/internal/dependencies/mocks"
	"github.com/mcoot/progressjournal/internal/services/auth"
	"github.com/mcoot/progressjournal/internal/services/records"
	"github.com/mcoot/progressjournal/internal/storage/memory"
	"github.com/mcoot/progressjournal/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Memory is the backing store, for inspecting raw documents
	Memory *memory.Storage

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local))
	mockRandom := mocks.NewMockRandom()

	app, err := newWithDependencies(store, mockClock, mockRandom, auth.DefaultConfig(), records.Config{
		BcryptCost:    bcrypt.MinCost,
		CorruptPolicy: records.CorruptRecover,
	}, testutil.NopLogger())
	if err != nil {
		panic(err)
	}

	return &TestApp{
		App:        app,
		Memory:     store,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
