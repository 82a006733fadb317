package race

import (
	"context"

	"github.com/fastfingers/typerace/internal/model"
)

// Notifier delivers engine events to connected clients. The engine
// calls into it but does not implement transport. Rooms publish while
// holding their own lock so that broadcasts observe a total order of
// state changes; implementations must therefore never block for long
// and must never call back into the room from Publish.
type Notifier interface {
	Publish(code model.RoomCode, event model.Event)
}

// NopNotifier discards all events
type NopNotifier struct{}

// Publish implements Notifier
func (NopNotifier) Publish(model.RoomCode, model.Event) {}

// ResultSink receives finished-game summaries for persistence.
// Durable storage is an external concern; rooms hand results off on a
// background goroutine and do not care whether the sink succeeds.
type ResultSink interface {
	SubmitResult(ctx context.Context, result *model.GameResult) error
}

// NopSink discards all results
type NopSink struct{}

// SubmitResult implements ResultSink
func (NopSink) SubmitResult(context.Context, *model.GameResult) error { return nil }
