package ws

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/fastfingers/typerace/internal/model"
	"github.com/fastfingers/typerace/internal/services/race"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer
	pongWait = 60 * time.Second

	// Ping interval; must be under pongWait
	pingPeriod = (pongWait * 9) / 10

	// Largest client message we accept
	maxMessageSize = 4096

	// Buffer size for outgoing messages
	sendBufferSize = 256

	// Progress updates allowed per second per socket, with room for a
	// small burst after a network stall
	progressRate  = 15
	progressBurst = 30
)

// Client is one player's socket. It belongs to at most one room at a
// time; the read pump drives engine calls and the write pump drains
// hub broadcasts and direct error replies.
type Client struct {
	handler  *Handler
	conn     *websocket.Conn
	playerID model.PlayerID
	username string
	avatar   string
	send     chan []byte

	connectedAt time.Time
	progress    *rate.Limiter

	// Owned by the read pump, nil until a create or join succeeds
	hub  *Hub
	room *race.Room

	closeOnce sync.Once
	logger    *slog.Logger
}

func newClient(handler *Handler, conn *websocket.Conn, playerID model.PlayerID, username, avatar string) *Client {
	return &Client{
		handler:     handler,
		conn:        conn,
		playerID:    playerID,
		username:    username,
		avatar:      avatar,
		send:        make(chan []byte, sendBufferSize),
		connectedAt: time.Now(),
		progress:    rate.NewLimiter(rate.Limit(progressRate), progressBurst),
		logger: handler.logger.With(
			slog.String("player_id", string(playerID)),
		),
	}
}

// Close shuts the send channel down, ending the write pump. The
// client owns the channel; hubs never close it because a socket can
// outlive the room it was registered to.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// sendDirect queues a message for this socket only
func (c *Client) sendDirect(message []byte) {
	select {
	case c.send <- message:
	default:
		c.logger.Warn("direct message dropped, client buffer full")
	}
}

func (c *Client) readPump() {
	defer func() {
		c.handler.disconnect(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info("socket read error", slog.String("error", err.Error()))
			}
			return
		}
		c.handler.dispatch(c, message)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
