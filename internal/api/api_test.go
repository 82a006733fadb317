package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/fastfingers/typerace/internal/api/apierr"
	"github.com/fastfingers/typerace/internal/api/response"
	"github.com/fastfingers/typerace/internal/dependencies/clock"
	"github.com/fastfingers/typerace/internal/dependencies/random"
	"github.com/fastfingers/typerace/internal/services/leaderboard"
	"github.com/fastfingers/typerace/internal/services/race"
	"github.com/fastfingers/typerace/internal/storage/memory"
	"github.com/fastfingers/typerace/internal/testutil"
)

type fixedTexts struct{}

func (fixedTexts) Pick() string { return "The quick brown fox jumps over the lazy dog." }

type APISuite struct {
	suite.Suite
	registry *race.Registry
	router   http.Handler
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	logger := testutil.NopLogger()
	s.registry = race.NewRegistry(
		fixedTexts{},
		clock.New(),
		random.New(),
		race.NopNotifier{},
		race.NopSink{},
		race.DefaultConfig(),
		logger,
	)
	s.router = NewRouter(RouterConfig{
		Logger:      logger,
		Registry:    s.registry,
		Leaderboard: leaderboard.New(memory.New(), logger),
	})
}

func (s *APISuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *APISuite) decode(rec *httptest.ResponseRecorder, out any) {
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(out))
}

func (s *APISuite) TestCreateGuest() {
	rec := s.do(http.MethodPost, "/api/v1/players/guest", map[string]string{
		"username": "alice",
		"avatar":   "fox",
	})
	s.Require().Equal(http.StatusCreated, rec.Code)

	var player response.Player
	s.decode(rec, &player)
	s.NotEmpty(player.ID)
	s.Equal("alice", player.Username)
	s.Equal("fox", player.Avatar)
}

func (s *APISuite) TestCreateGuestRequiresUsername() {
	rec := s.do(http.MethodPost, "/api/v1/players/guest", map[string]string{})
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	var body apierr.ErrorResponse
	s.decode(rec, &body)
	s.Equal(apierr.CodeInvalidRequest, body.Error.Code)
}

func (s *APISuite) TestCreateAndGetRoom() {
	rec := s.do(http.MethodPost, "/api/v1/rooms", map[string]any{
		"name":     "Friday Sprint",
		"username": "alice",
		"duration": 90,
	})
	s.Require().Equal(http.StatusCreated, rec.Code)

	var created response.Room
	s.decode(rec, &created)
	s.Len(created.Code, race.CodeLength)
	s.Equal("Friday Sprint", created.Name)
	s.Equal(90, created.Duration)
	s.Require().Len(created.Players, 1)
	s.True(created.Players[0].IsHost)

	rec = s.do(http.MethodGet, "/api/v1/rooms/"+created.Code, nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var fetched response.Room
	s.decode(rec, &fetched)
	s.Equal(created.ID, fetched.ID)
	s.Equal("waiting", fetched.Status)
}

func (s *APISuite) TestCreateRoomRejectsBadName() {
	rec := s.do(http.MethodPost, "/api/v1/rooms", map[string]any{
		"name":     "   ",
		"username": "alice",
	})
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	var body apierr.ErrorResponse
	s.decode(rec, &body)
	s.Equal(apierr.CodeInvalidRoomName, body.Error.Code)
}

func (s *APISuite) TestGetRoomNotFound() {
	rec := s.do(http.MethodGet, "/api/v1/rooms/NOPE99", nil)
	s.Require().Equal(http.StatusNotFound, rec.Code)

	var body apierr.ErrorResponse
	s.decode(rec, &body)
	s.Equal(apierr.CodeRoomNotFound, body.Error.Code)
}

func (s *APISuite) TestSubmitAndFetchLeaderboard() {
	for i, wpm := range []int{62, 85, 71} {
		rec := s.do(http.MethodPost, "/api/v1/results", map[string]any{
			"username":    fmt.Sprintf("player%d", i),
			"wpm":         wpm,
			"accuracy":    97.5,
			"errors":      2,
			"total_chars": 200,
		})
		s.Require().Equal(http.StatusCreated, rec.Code)
	}

	rec := s.do(http.MethodGet, "/api/v1/leaderboard?limit=2", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var board response.LeaderboardResponse
	s.decode(rec, &board)
	s.Require().Len(board.Results, 2)
	s.Equal(1, board.Results[0].Rank)
	s.Equal(85, board.Results[0].WPM)
	s.Equal(71, board.Results[1].WPM)
}

func (s *APISuite) TestSubmitResultValidation() {
	rec := s.do(http.MethodPost, "/api/v1/results", map[string]any{
		"username": "alice",
		"wpm":      -5,
	})
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/results", map[string]any{
		"wpm": 50,
	})
	s.Require().Equal(http.StatusBadRequest, rec.Code)
}

func (s *APISuite) TestLeaderboardLimitValidation() {
	rec := s.do(http.MethodGet, "/api/v1/leaderboard?limit=banana", nil)
	s.Require().Equal(http.StatusBadRequest, rec.Code)
}

func (s *APISuite) TestHealth() {
	rec := s.do(http.MethodGet, "/api/v1/health", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var health response.HealthResponse
	s.decode(rec, &health)
	s.Equal("ok", health.Status)
	s.Equal(0, health.ActiveRooms)
}
