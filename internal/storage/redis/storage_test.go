package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/fastfingers/typerace/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) result(id, username string, wpm int) *model.GameResult {
	return &model.GameResult{
		ID:         id,
		Username:   username,
		WPM:        wpm,
		Accuracy:   95.5,
		Errors:     3,
		TotalChars: 180,
		RoomCode:   "ABC123",
		RecordedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func (s *StorageSuite) TestSaveAndTop() {
	s.Require().NoError(s.storage.SaveResult(s.ctx, s.result("r1", "alice", 72)))
	s.Require().NoError(s.storage.SaveResult(s.ctx, s.result("r2", "bob", 88)))
	s.Require().NoError(s.storage.SaveResult(s.ctx, s.result("r3", "carol", 65)))

	top, err := s.storage.TopResults(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(top, 3)
	s.Equal("bob", top[0].Username)
	s.Equal("alice", top[1].Username)
	s.Equal("carol", top[2].Username)
}

func (s *StorageSuite) TestTopLimits() {
	for i, wpm := range []int{40, 60, 50} {
		r := s.result(string(rune('a'+i)), "player", wpm)
		s.Require().NoError(s.storage.SaveResult(s.ctx, r))
	}

	top, err := s.storage.TopResults(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(top, 2)
	s.Equal(60, top[0].WPM)
	s.Equal(50, top[1].WPM)
}

func (s *StorageSuite) TestTopZero() {
	top, err := s.storage.TopResults(s.ctx, 0)
	s.Require().NoError(err)
	s.Empty(top)
}

func (s *StorageSuite) TestTopEmpty() {
	top, err := s.storage.TopResults(s.ctx, 5)
	s.Require().NoError(err)
	s.Empty(top)
}

func (s *StorageSuite) TestRoundTripFields() {
	orig := s.result("r9", "dave", 101)
	s.Require().NoError(s.storage.SaveResult(s.ctx, orig))

	top, err := s.storage.TopResults(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(top, 1)
	s.Equal(orig.Accuracy, top[0].Accuracy)
	s.Equal(orig.Errors, top[0].Errors)
	s.Equal(orig.TotalChars, top[0].TotalChars)
	s.Equal(orig.RoomCode, top[0].RoomCode)
}

func (s *StorageSuite) TestResultCount() {
	count, err := s.storage.ResultCount(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, count)

	s.Require().NoError(s.storage.SaveResult(s.ctx, s.result("r1", "alice", 70)))
	count, err = s.storage.ResultCount(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *StorageSuite) TestExpiredEntrySkipped() {
	cfg := DefaultConfig()
	cfg.ResultTTL = time.Minute
	s.storage.cfg = cfg

	s.Require().NoError(s.storage.SaveResult(s.ctx, s.result("r1", "alice", 70)))
	s.mini.FastForward(2 * time.Minute)

	top, err := s.storage.TopResults(s.ctx, 5)
	s.Require().NoError(err)
	s.Empty(top)
}
