// Package leaderboard is the persistence sink for finished games. It
// sits outside the race engine's invariants: rooms emit summaries, the
// service stores them and serves a top-N view by WPM.
package leaderboard

import (
	"context"
	"log/slog"

	"github.com/fastfingers/typerace/internal/model"
	"github.com/fastfingers/typerace/internal/services/race"
	"github.com/fastfingers/typerace/internal/storage"
)

// DefaultTopN is the leaderboard size served when no limit is given
const DefaultTopN = 10

// Service records game results and serves the leaderboard
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// Ensure the service can act as the rooms' result sink
var _ race.ResultSink = (*Service)(nil)

// New creates a leaderboard service
func New(store storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		logger:  logger.With(slog.String("component", "leaderboard")),
	}
}

// SubmitResult records one finished-game summary
func (s *Service) SubmitResult(ctx context.Context, result *model.GameResult) error {
	if result.Username == "" {
		return nil
	}
	if err := s.storage.SaveResult(ctx, result); err != nil {
		return err
	}
	s.logger.Info("result recorded",
		slog.String("username", result.Username),
		slog.Int("wpm", result.WPM),
	)
	return nil
}

// Top returns up to n results ordered by WPM descending. n <= 0 falls
// back to the default leaderboard size.
func (s *Service) Top(ctx context.Context, n int) ([]*model.GameResult, error) {
	if n <= 0 {
		n = DefaultTopN
	}
	return s.storage.TopResults(ctx, n)
}
