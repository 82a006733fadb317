package race

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/suite"

	"github.com/fastfingers/typerace/internal/dependencies/mocks"
	"github.com/fastfingers/typerace/internal/dependencies/random"
	"github.com/fastfingers/typerace/internal/model"
	"github.com/fastfingers/typerace/internal/testutil"
)

type RegistrySuite struct {
	suite.Suite
	clock  *clockwork.FakeClock
	random *mocks.MockRandom
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.clock = clockwork.NewFakeClock()
	s.random = mocks.NewMockRandom()
}

func (s *RegistrySuite) newRegistry(rnd random.Random) *Registry {
	return NewRegistry(
		stubTexts{testText},
		s.clock,
		rnd,
		NopNotifier{},
		NopSink{},
		DefaultConfig(),
		testutil.NopLogger(),
	)
}

func (s *RegistrySuite) owner() model.Player {
	return model.Player{ID: "owner", Username: "owner"}
}

func (s *RegistrySuite) TestCreateRoom() {
	s.random.QueueCode("ABC123")
	registry := s.newRegistry(s.random)

	room, err := registry.CreateRoom(s.owner(), "My Room", 90)
	s.Require().NoError(err)

	s.Equal(model.RoomCode("ABC123"), room.Code())
	s.Equal(1, registry.RoomCount())

	snap := room.Snapshot()
	s.Equal("My Room", snap.Name)
	s.Equal(90, snap.Duration)
	s.Equal(model.DefaultMaxPlayers, snap.MaxPlayers)
	s.Equal(testText, snap.Text)
	s.NotEmpty(room.ID())
}

func (s *RegistrySuite) TestCreateRoomTrimsName() {
	s.random.QueueCode("ABC123")
	registry := s.newRegistry(s.random)

	room, err := registry.CreateRoom(s.owner(), "  Spaced Out  ", 0)
	s.Require().NoError(err)
	s.Equal("Spaced Out", room.Snapshot().Name)
}

func (s *RegistrySuite) TestCreateRoomRejectsBadNames() {
	registry := s.newRegistry(s.random)

	for _, name := range []string{"", "   ", strings.Repeat("x", model.RoomNameMaxLength+1)} {
		_, err := registry.CreateRoom(s.owner(), name, 60)
		s.ErrorIs(err, model.ErrInvalidRoomName)
	}
	s.Equal(0, registry.RoomCount())
}

func (s *RegistrySuite) TestCreateRoomDefaultDuration() {
	s.random.QueueCode("ABC123")
	registry := s.newRegistry(s.random)

	room, err := registry.CreateRoom(s.owner(), "Room", -5)
	s.Require().NoError(err)
	s.Equal(model.DefaultDuration, room.Snapshot().Duration)
}

func (s *RegistrySuite) TestCreateRoomUsesConfiguredDefaultDuration() {
	s.random.QueueCode("ABC123")
	cfg := DefaultConfig()
	cfg.DefaultDuration = 120
	registry := NewRegistry(
		stubTexts{testText},
		s.clock,
		s.random,
		NopNotifier{},
		NopSink{},
		cfg,
		testutil.NopLogger(),
	)

	room, err := registry.CreateRoom(s.owner(), "Room", 0)
	s.Require().NoError(err)
	s.Equal(120, room.Snapshot().Duration)
}

func (s *RegistrySuite) TestCodeCollisionRetries() {
	s.random.QueueCode("AAAAAA", "AAAAAA", "BBBBBB")
	registry := s.newRegistry(s.random)

	first, err := registry.CreateRoom(s.owner(), "First", 60)
	s.Require().NoError(err)
	second, err := registry.CreateRoom(s.owner(), "Second", 60)
	s.Require().NoError(err)

	s.Equal(model.RoomCode("AAAAAA"), first.Code())
	s.Equal(model.RoomCode("BBBBBB"), second.Code())
}

func (s *RegistrySuite) TestConcurrentCreatesGetDistinctCodes() {
	registry := s.newRegistry(random.New())

	const n = 20
	var wg sync.WaitGroup
	codes := make(chan model.RoomCode, n)
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			room, err := registry.CreateRoom(s.owner(), "Room", 60)
			if err != nil {
				errs <- err
				return
			}
			codes <- room.Code()
		}()
	}
	wg.Wait()
	close(codes)
	close(errs)

	for err := range errs {
		s.Require().NoError(err)
	}
	seen := make(map[model.RoomCode]bool)
	for code := range codes {
		s.False(seen[code], "duplicate code %s", code)
		seen[code] = true
	}
	s.Equal(n, registry.RoomCount())
}

func (s *RegistrySuite) TestFindByCodeNormalizes() {
	s.random.QueueCode("ABC123")
	registry := s.newRegistry(s.random)

	created, err := registry.CreateRoom(s.owner(), "Room", 60)
	s.Require().NoError(err)

	for _, lookup := range []string{"ABC123", "abc123", "  abc123  "} {
		room, err := registry.FindByCode(model.RoomCode(lookup))
		s.Require().NoError(err)
		s.Equal(created.ID(), room.ID())
	}
}

func (s *RegistrySuite) TestFindByCodeNotFound() {
	registry := s.newRegistry(s.random)
	_, err := registry.FindByCode("NOPE99")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *RegistrySuite) TestEvict() {
	s.random.QueueCode("ABC123")
	registry := s.newRegistry(s.random)

	room, err := registry.CreateRoom(s.owner(), "Room", 60)
	s.Require().NoError(err)

	registry.Evict(room.ID())
	s.Equal(0, registry.RoomCount())

	// Evicting an absent room is a no-op
	registry.Evict(room.ID())
	s.Equal(0, registry.RoomCount())
}

func (s *RegistrySuite) TestEmptiedRoomLeavesRegistry() {
	s.random.QueueCode("ABC123")
	registry := s.newRegistry(s.random)

	room, err := registry.CreateRoom(s.owner(), "Room", 60)
	s.Require().NoError(err)

	s.Require().NoError(room.Leave("owner"))

	s.Equal(0, registry.RoomCount())
	_, err = registry.FindByCode("ABC123")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *RegistrySuite) TestSweepEvictsIdleRooms() {
	s.random.QueueCode("ABC123")
	registry := s.newRegistry(s.random)

	room, err := registry.CreateRoom(s.owner(), "Room", 60)
	s.Require().NoError(err)

	// A connected player keeps the room alive regardless of age
	s.clock.Advance(time.Hour)
	registry.sweepIdle()
	s.Equal(1, registry.RoomCount())

	// Mark the only player disconnected the way a dropped transport
	// would during an active race, then age the room past the timeout.
	room.mu.Lock()
	room.state.Status = model.RoomStatusActive
	room.state.Players[0].Connected = false
	room.mu.Unlock()

	s.clock.Advance(time.Hour)
	registry.sweepIdle()
	s.Equal(0, registry.RoomCount())
}
