package factory

import (
	"github.com/jonboulle/clockwork"

	"github.com/fastfingers/typerace/internal/dependencies/mocks"
	"github.com/fastfingers/typerace/internal/services/race"
	"github.com/fastfingers/typerace/internal/storage/memory"
	"github.com/fastfingers/typerace/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Test control over time and randomness
	FakeClock  *clockwork.FakeClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with a fake clock
// and scripted randomness
func NewTestApp() *TestApp {
	store := memory.New()
	fakeClock := clockwork.NewFakeClock()
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, fakeClock, mockRandom, race.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		FakeClock:  fakeClock,
		MockRandom: mockRandom,
	}
}
