package race

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fastfingers/typerace/internal/dependencies/clock"
	"github.com/fastfingers/typerace/internal/metrics"
	"github.com/fastfingers/typerace/internal/model"
)

// Room is the single serialized owner of one race session. Every
// mutation - join, leave, ready, progress, grace expiry, tick - runs
// under the room mutex, giving a total order over state changes
// within a room. Reads from outside go through Snapshot, which
// returns a deep copy, never a view into live state.
type Room struct {
	mu    sync.Mutex
	state *model.Room

	clock       clock.Clock
	notifier    Notifier
	sink        ResultSink
	logger      *slog.Logger
	gracePeriod time.Duration

	// onEmpty tells the registry to drop this room once the last
	// player leaves
	onEmpty func(roomID string)

	startedAt    time.Time
	lastActivity time.Time
	graceCancel  chan struct{}
	tickCancel   chan struct{}
	closed       bool
}

func newRoom(
	state *model.Room,
	clk clock.Clock,
	notifier Notifier,
	sink ResultSink,
	gracePeriod time.Duration,
	onEmpty func(roomID string),
	logger *slog.Logger,
) *Room {
	return &Room{
		state:        state,
		clock:        clk,
		notifier:     notifier,
		sink:         sink,
		logger:       logger.With(slog.String("room_code", string(state.Code))),
		gracePeriod:  gracePeriod,
		onEmpty:      onEmpty,
		lastActivity: clk.Now(),
	}
}

// ID returns the room's internal identifier. Immutable, no lock needed.
func (r *Room) ID() string {
	return r.state.ID
}

// Code returns the room's join code. Immutable, no lock needed.
func (r *Room) Code() model.RoomCode {
	return r.state.Code
}

// Snapshot returns a deep copy of the current room state, always
// internally consistent.
func (r *Room) Snapshot() *model.Room {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.Clone()
}

// Join adds a player. Fails with ErrInvalidState outside the waiting
// phase and ErrRoomFull at capacity. A player already in the room is
// treated as a transport reconnect and marked connected again.
func (r *Room) Join(player model.Player) (*model.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, model.ErrRoomNotFound
	}
	r.touchLocked()

	if existing := r.state.GetPlayer(player.ID); existing != nil {
		existing.Connected = true
		r.publishRoomStateLocked()
		return r.state.Clone(), nil
	}

	if r.state.Status != model.RoomStatusWaiting {
		return nil, model.ErrInvalidState
	}
	if r.state.IsFull() {
		return nil, model.ErrRoomFull
	}

	p := &model.Player{
		ID:        player.ID,
		Username:  player.Username,
		Avatar:    player.Avatar,
		Connected: true,
		Accuracy:  100,
		JoinedAt:  r.clock.Now(),
	}
	r.state.Players = append(r.state.Players, p)

	r.logger.Info("player joined",
		slog.String("player_id", string(p.ID)),
		slog.Int("player_count", len(r.state.Players)),
	)

	r.rederiveLocked()
	r.publishRoomStateLocked()
	return r.state.Clone(), nil
}

// SetReady sets a player's ready flag. Idempotent: repeating the same
// value leaves the room unchanged.
func (r *Room) SetReady(playerID model.PlayerID, ready bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return model.ErrRoomNotFound
	}
	p := r.state.GetPlayer(playerID)
	if p == nil {
		return model.ErrPlayerNotFound
	}
	if p.IsReady == ready {
		return nil
	}
	r.touchLocked()

	p.IsReady = ready
	r.rederiveLocked()
	r.publishRoomStateLocked()
	return nil
}

// SubmitProgress applies one typed-prefix snapshot for a player.
// Outside the active phase it is a silent no-op. Prefixes longer than
// the race text are truncated rather than rejected, tolerating
// client-side races.
func (r *Room) SubmitProgress(playerID model.PlayerID, typed string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return model.ErrRoomNotFound
	}
	p := r.state.GetPlayer(playerID)
	if p == nil {
		return model.ErrPlayerNotFound
	}
	if r.state.Status != model.RoomStatusActive || p.Finished {
		return nil
	}
	r.touchLocked()

	typed = metrics.Truncate(r.state.Text, typed)
	res := metrics.Compute(r.state.Text, typed, r.clock.Since(r.startedAt))

	p.WPM = res.WPM
	p.Accuracy = res.Accuracy
	p.Errors = res.Errors
	p.TypedLength = len([]rune(typed))
	if typed == r.state.Text {
		p.Finished = true
		p.Progress = 100
	} else {
		p.Progress = metrics.Progress(r.state.Text, p.TypedLength)
	}

	r.publishLocked(model.EventPlayerProgress, model.PlayerProgressPayload{
		Standings: standings(r.state.Players),
	})

	if r.state.AllConnectedFinished() {
		r.finishLocked()
	}
	return nil
}

// Leave removes a player. The last player out closes the room; a
// departing host hands off to the earliest-joined survivor; a
// departure during the grace period that breaks the all-ready
// condition aborts the start.
func (r *Room) Leave(playerID model.PlayerID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return model.ErrRoomNotFound
	}
	if r.state.GetPlayer(playerID) == nil {
		return model.ErrPlayerNotFound
	}
	r.touchLocked()
	r.removePlayerLocked(playerID)
	return nil
}

// Disconnect handles a transport-reported connection loss. During an
// active race the player stays in the room with frozen metrics and
// remains eligible for final ranking; in any other phase a disconnect
// is the same as leaving.
func (r *Room) Disconnect(playerID model.PlayerID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	p := r.state.GetPlayer(playerID)
	if p == nil {
		return
	}
	r.touchLocked()

	if r.state.Status != model.RoomStatusActive {
		r.removePlayerLocked(playerID)
		return
	}

	p.Connected = false
	r.logger.Info("player disconnected mid-race", slog.String("player_id", string(playerID)))
	r.publishRoomStateLocked()
	if r.state.AllConnectedFinished() {
		r.finishLocked()
	}
}

// Idle reports whether the room has had no connected players for
// longer than timeout
func (r *Room) Idle(timeout time.Duration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.state.Players {
		if p.Connected {
			return false
		}
	}
	return r.clock.Since(r.lastActivity) > timeout
}

// shutdown cancels pending timers when the registry evicts the room
func (r *Room) shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closeLocked(false)
}

// removePlayerLocked drops a player and re-derives every invariant
// that depends on membership
func (r *Room) removePlayerLocked(playerID model.PlayerID) {
	players := r.state.Players
	for i, p := range players {
		if p.ID == playerID {
			r.state.Players = append(players[:i], players[i+1:]...)
			break
		}
	}
	r.logger.Info("player left",
		slog.String("player_id", string(playerID)),
		slog.Int("player_count", len(r.state.Players)),
	)

	if len(r.state.Players) == 0 {
		r.closeLocked(true)
		return
	}

	r.rederiveLocked()
	if r.state.Status == model.RoomStatusActive && r.state.AllConnectedFinished() {
		r.finishLocked()
		return
	}
	r.publishRoomStateLocked()
}

// rederiveLocked re-establishes the host invariant and evaluates the
// all-ready condition after every mutating operation. Keeping this in
// one place is what enforces the state machine's invariants centrally
// instead of via scattered checks.
func (r *Room) rederiveLocked() {
	if len(r.state.Players) > 0 && r.state.GetHost() == nil {
		r.state.Players[0].IsHost = true
		r.logger.Info("host transferred",
			slog.String("player_id", string(r.state.Players[0].ID)))
	}

	switch r.state.Status {
	case model.RoomStatusWaiting:
		if r.state.AllReady() {
			r.armGraceLocked()
		}
	case model.RoomStatusStarting:
		if !r.state.AllReady() {
			r.abortStartLocked()
		}
	}
}

// armGraceLocked moves waiting -> starting and schedules the grace
// timer
func (r *Room) armGraceLocked() {
	r.state.Status = model.RoomStatusStarting
	r.publishLocked(model.EventGameStarting, model.GameStartingPayload{
		GracePeriodMs: r.gracePeriod.Milliseconds(),
	})

	cancel := make(chan struct{})
	r.graceCancel = cancel
	timer := r.clock.NewTimer(r.gracePeriod)

	go func() {
		select {
		case <-timer.Chan():
			r.graceExpired(cancel)
		case <-cancel:
			timer.Stop()
		}
	}()

	r.logger.Info("grace period started", slog.Duration("grace_period", r.gracePeriod))
}

// abortStartLocked reverts starting -> waiting and cancels the grace
// timer
func (r *Room) abortStartLocked() {
	r.state.Status = model.RoomStatusWaiting
	if r.graceCancel != nil {
		close(r.graceCancel)
		r.graceCancel = nil
	}
	r.logger.Info("start aborted")
}

// graceExpired fires when the grace timer elapses. cancel identifies
// the arming that scheduled the fire: a fire that lost the lock to an
// abort followed by a re-ready would otherwise observe the re-armed
// starting phase and begin the race early. Only the currently armed
// timer may act; the all-ready condition is then re-validated.
func (r *Room) graceExpired(cancel chan struct{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.graceCancel != cancel || r.state.Status != model.RoomStatusStarting {
		return
	}
	r.graceCancel = nil
	if !r.state.AllReady() {
		r.abortStartLocked()
		r.publishRoomStateLocked()
		return
	}
	r.beginRaceLocked()
}

// beginRaceLocked moves starting -> active and starts the per-second
// session ticker
func (r *Room) beginRaceLocked() {
	r.state.Status = model.RoomStatusActive
	r.state.Remaining = r.state.Duration
	r.startedAt = r.clock.Now()

	for _, p := range r.state.Players {
		p.Progress = 0
		p.WPM = 0
		p.Accuracy = 100
		p.Errors = 0
		p.TypedLength = 0
		p.Finished = false
	}

	r.logger.Info("race started",
		slog.Int("duration", r.state.Duration),
		slog.Int("player_count", len(r.state.Players)),
	)
	r.publishRoomStateLocked()

	cancel := make(chan struct{})
	r.tickCancel = cancel
	ticker := r.clock.NewTicker(time.Second)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.Chan():
				if !r.tick(cancel) {
					return
				}
			case <-cancel:
				return
			}
		}
	}()
}

// tick decrements the remaining time and ends the race at zero.
// Returns false once the ticker should stop. cancel identifies the
// race that started the ticker: a tick already in flight when the race
// ends must not count down a rematch that started in the meantime.
func (r *Room) tick(cancel chan struct{}) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.tickCancel != cancel || r.state.Status != model.RoomStatusActive {
		return false
	}

	r.state.Remaining--
	r.publishLocked(model.EventGameTick, model.GameTickPayload{
		Remaining: r.state.Remaining,
	})

	if r.state.Remaining <= 0 {
		r.finishLocked()
		return false
	}
	return true
}

// finishLocked ends the race: final placements go out, results go to
// the sink, and the room resets to waiting so the same code can host
// a rematch.
func (r *Room) finishLocked() {
	r.state.Status = model.RoomStatusFinished
	r.state.Remaining = 0
	if r.tickCancel != nil {
		close(r.tickCancel)
		r.tickCancel = nil
	}

	results := finalResults(r.state.Players)
	r.publishLocked(model.EventGameEnd, model.GameEndPayload{Ranking: results})
	r.logger.Info("race finished", slog.Int("player_count", len(results)))

	r.submitResultsLocked(results)
	r.resetForRematchLocked()
}

// submitResultsLocked hands finished-game summaries to the sink on a
// background goroutine; the room never blocks on persistence
func (r *Room) submitResultsLocked(results []model.PlayerResult) {
	now := r.clock.Now()
	code := r.state.Code
	summaries := make([]*model.GameResult, len(results))
	for i, res := range results {
		summaries[i] = &model.GameResult{
			ID:         uuid.NewString(),
			Username:   res.Username,
			WPM:        res.WPM,
			Accuracy:   res.Accuracy,
			Errors:     res.Errors,
			TotalChars: res.TotalChars,
			RoomCode:   code,
			RecordedAt: now,
		}
	}

	sink := r.sink
	logger := r.logger
	go func() {
		ctx, cancelCtx := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancelCtx()
		for _, summary := range summaries {
			if err := sink.SubmitResult(ctx, summary); err != nil {
				logger.Warn("failed to record game result",
					slog.String("username", summary.Username),
					slog.String("error", err.Error()),
				)
			}
		}
	}()
}

// resetForRematchLocked clears per-race state and drops players whose
// connections died mid-race, leaving the room joinable again
func (r *Room) resetForRematchLocked() {
	kept := r.state.Players[:0]
	for _, p := range r.state.Players {
		if p.Connected {
			p.ResetRace()
			kept = append(kept, p)
		}
	}
	r.state.Players = kept

	if len(r.state.Players) == 0 {
		r.closeLocked(true)
		return
	}

	r.state.Status = model.RoomStatusWaiting
	r.rederiveLocked()
	r.publishRoomStateLocked()
}

// closeLocked tears the room down; notifyRegistry is false when the
// eviction originated from the registry itself
func (r *Room) closeLocked(notifyRegistry bool) {
	if r.closed {
		return
	}
	r.closed = true

	if r.graceCancel != nil {
		close(r.graceCancel)
		r.graceCancel = nil
	}
	if r.tickCancel != nil {
		close(r.tickCancel)
		r.tickCancel = nil
	}

	r.publishLocked(model.EventRoomClosed, nil)
	r.logger.Info("room closed")

	if notifyRegistry && r.onEmpty != nil {
		r.onEmpty(r.state.ID)
	}
}

func (r *Room) touchLocked() {
	r.lastActivity = r.clock.Now()
}

func (r *Room) publishRoomStateLocked() {
	r.publishLocked(model.EventRoomState, model.RoomStatePayload{Room: r.state.Clone()})
}

func (r *Room) publishLocked(eventType model.EventType, payload any) {
	r.notifier.Publish(r.state.Code, model.Event{
		Type:      eventType,
		RoomCode:  r.state.Code,
		Timestamp: r.clock.Now(),
		Payload:   payload,
	})
}
