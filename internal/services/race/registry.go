package race

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fastfingers/typerace/internal/dependencies/clock"
	"github.com/fastfingers/typerace/internal/dependencies/random"
	"github.com/fastfingers/typerace/internal/model"
)

const (
	// CodeLength is the length of generated room codes
	CodeLength = 6
	// CodeAlphabet is the full uppercase alphanumeric keyspace; 36^6
	// codes makes collision retries effectively free
	CodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// TextSource supplies race paragraphs; text selection is a
// collaborator, not part of the engine
type TextSource interface {
	Pick() string
}

// Config holds tunables shared by every room the registry creates
type Config struct {
	// GracePeriod is the delay between all-ready and race start
	GracePeriod time.Duration
	// IdleTimeout is how long a room may sit with no connected
	// players before the janitor evicts it
	IdleTimeout time.Duration
	// DefaultDuration is the race length in seconds applied when a
	// create request does not specify one
	DefaultDuration int
}

// DefaultConfig returns the default registry configuration
func DefaultConfig() Config {
	return Config{
		GracePeriod:     3 * time.Second,
		IdleTimeout:     10 * time.Minute,
		DefaultDuration: model.DefaultDuration,
	}
}

// Registry creates rooms, allocates unique codes and looks rooms up.
// The code and id maps are the only registry-wide shared state; locks
// here are short-held and never cover room-internal work.
type Registry struct {
	mu       sync.RWMutex
	byCode   map[model.RoomCode]*Room
	codeByID map[string]model.RoomCode

	texts    TextSource
	clock    clock.Clock
	random   random.Random
	notifier Notifier
	sink     ResultSink
	cfg      Config
	logger   *slog.Logger
}

// NewRegistry creates a room registry
func NewRegistry(
	texts TextSource,
	clk clock.Clock,
	rnd random.Random,
	notifier Notifier,
	sink ResultSink,
	cfg Config,
	logger *slog.Logger,
) *Registry {
	return &Registry{
		byCode:   make(map[model.RoomCode]*Room),
		codeByID: make(map[string]model.RoomCode),
		texts:    texts,
		clock:    clk,
		random:   rnd,
		notifier: notifier,
		sink:     sink,
		cfg:      cfg,
		logger:   logger.With(slog.String("component", "registry")),
	}
}

// CreateRoom validates the name, allocates a unique code, selects the
// race text and registers a new room with the creator as host.
func (g *Registry) CreateRoom(owner model.Player, name string, duration int) (*Room, error) {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > model.RoomNameMaxLength {
		return nil, model.ErrInvalidRoomName
	}
	if duration <= 0 {
		duration = g.cfg.DefaultDuration
		if duration <= 0 {
			duration = model.DefaultDuration
		}
	}

	now := g.clock.Now()
	state := &model.Room{
		ID:   uuid.NewString(),
		Name: name,
		Players: []*model.Player{{
			ID:        owner.ID,
			Username:  owner.Username,
			Avatar:    owner.Avatar,
			IsHost:    true,
			Connected: true,
			Accuracy:  100,
			JoinedAt:  now,
		}},
		MaxPlayers: model.DefaultMaxPlayers,
		Text:       g.texts.Pick(),
		Duration:   duration,
		Status:     model.RoomStatusWaiting,
		CreatedAt:  now,
	}

	g.mu.Lock()
	for {
		code := model.RoomCode(g.random.Code(CodeLength, CodeAlphabet))
		if _, taken := g.byCode[code]; !taken {
			state.Code = code
			break
		}
	}
	room := newRoom(state, g.clock, g.notifier, g.sink, g.cfg.GracePeriod, g.remove, g.logger)
	g.byCode[state.Code] = room
	g.codeByID[state.ID] = state.Code
	count := len(g.byCode)
	g.mu.Unlock()

	g.logger.Info("room created",
		slog.String("room_code", string(state.Code)),
		slog.String("room_name", name),
		slog.Int("duration", duration),
		slog.Int("active_rooms", count),
	)
	return room, nil
}

// FindByCode looks up an active room by its join code
func (g *Registry) FindByCode(code model.RoomCode) (*Room, error) {
	normalized := model.RoomCode(strings.ToUpper(strings.TrimSpace(string(code))))

	g.mu.RLock()
	room, ok := g.byCode[normalized]
	g.mu.RUnlock()

	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return room, nil
}

// Evict removes a room from the active set and cancels its timers.
// Safe to call for rooms that are already gone.
func (g *Registry) Evict(roomID string) {
	if room := g.take(roomID); room != nil {
		room.shutdown()
	}
}

// RoomCount returns the number of active rooms
func (g *Registry) RoomCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.byCode)
}

// StartJanitor evicts rooms that have sat without connected players
// past the idle timeout. Runs until ctx is cancelled.
func (g *Registry) StartJanitor(ctx context.Context) {
	ticker := g.clock.NewTicker(time.Minute)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.Chan():
				g.sweepIdle()
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (g *Registry) sweepIdle() {
	g.mu.RLock()
	rooms := make([]*Room, 0, len(g.byCode))
	for _, room := range g.byCode {
		rooms = append(rooms, room)
	}
	g.mu.RUnlock()

	for _, room := range rooms {
		if room.Idle(g.cfg.IdleTimeout) {
			g.logger.Info("evicting idle room", slog.String("room_code", string(room.Code())))
			g.Evict(room.ID())
		}
	}
}

// take removes a room from the maps and returns it, or nil if absent
func (g *Registry) take(roomID string) *Room {
	g.mu.Lock()
	defer g.mu.Unlock()

	code, ok := g.codeByID[roomID]
	if !ok {
		return nil
	}
	room := g.byCode[code]
	delete(g.byCode, code)
	delete(g.codeByID, roomID)
	return room
}

// remove is the rooms' on-empty callback
func (g *Registry) remove(roomID string) {
	if room := g.take(roomID); room != nil {
		g.logger.Info("room evicted", slog.String("room_code", string(room.Code())))
	}
}
