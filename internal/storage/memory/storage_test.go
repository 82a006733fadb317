package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/fastfingers/typerace/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) TestTopOrderedByWPM() {
	for _, r := range []*model.GameResult{
		{ID: "r1", Username: "alice", WPM: 55},
		{ID: "r2", Username: "bob", WPM: 80},
		{ID: "r3", Username: "carol", WPM: 67},
	} {
		s.Require().NoError(s.storage.SaveResult(s.ctx, r))
	}

	top, err := s.storage.TopResults(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(top, 3)
	s.Equal("bob", top[0].Username)
	s.Equal("carol", top[1].Username)
	s.Equal("alice", top[2].Username)
}

func (s *StorageSuite) TestTopRespectsLimit() {
	for i := 0; i < 15; i++ {
		r := &model.GameResult{ID: string(rune('a' + i)), Username: "p", WPM: i}
		s.Require().NoError(s.storage.SaveResult(s.ctx, r))
	}

	top, err := s.storage.TopResults(s.ctx, 10)
	s.Require().NoError(err)
	s.Len(top, 10)
	s.Equal(14, top[0].WPM)
}

func (s *StorageSuite) TestSaveCopiesInput() {
	r := &model.GameResult{ID: "r1", Username: "alice", WPM: 50}
	s.Require().NoError(s.storage.SaveResult(s.ctx, r))

	r.WPM = 999

	top, err := s.storage.TopResults(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(50, top[0].WPM)
}

func (s *StorageSuite) TestResultCount() {
	count, err := s.storage.ResultCount(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, count)

	s.Require().NoError(s.storage.SaveResult(s.ctx, &model.GameResult{ID: "r1"}))
	count, err = s.storage.ResultCount(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, count)
}
