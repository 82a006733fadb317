package leaderboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/fastfingers/typerace/internal/model"
	"github.com/fastfingers/typerace/internal/storage/memory"
	"github.com/fastfingers/typerace/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestSubmitAndTop() {
	s.Require().NoError(s.service.SubmitResult(s.ctx, &model.GameResult{ID: "r1", Username: "alice", WPM: 60}))
	s.Require().NoError(s.service.SubmitResult(s.ctx, &model.GameResult{ID: "r2", Username: "bob", WPM: 75}))

	top, err := s.service.Top(s.ctx, 5)
	s.Require().NoError(err)
	s.Require().Len(top, 2)
	s.Equal("bob", top[0].Username)
}

func (s *ServiceSuite) TestSubmitSkipsAnonymous() {
	s.Require().NoError(s.service.SubmitResult(s.ctx, &model.GameResult{ID: "r1", WPM: 60}))

	count, err := s.storage.ResultCount(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, count)
}

func (s *ServiceSuite) TestTopDefaultsToTen() {
	for i := 0; i < 14; i++ {
		r := &model.GameResult{ID: string(rune('a' + i)), Username: "p", WPM: i}
		s.Require().NoError(s.service.SubmitResult(s.ctx, r))
	}

	top, err := s.service.Top(s.ctx, 0)
	s.Require().NoError(err)
	s.Len(top, DefaultTopN)
}
