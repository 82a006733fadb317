package storage

import (
	"context"

	"github.com/fastfingers/typerace/internal/model"
)

// Storage persists finished-game results for the leaderboard. Live
// race state never touches storage; rooms are owned in memory by the
// registry and this interface is deliberately narrow.
type Storage interface {
	// SaveResult records one finished-game summary
	SaveResult(ctx context.Context, result *model.GameResult) error

	// TopResults returns up to n results ordered by WPM descending
	TopResults(ctx context.Context, n int) ([]*model.GameResult, error)

	// ResultCount returns the total number of recorded results
	ResultCount(ctx context.Context) (int, error)
}
