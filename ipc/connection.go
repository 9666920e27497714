package ipc

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
)

// ErrInterrupted is returned by Call once the host has answered a command
// with something other than an action_result. The rest of the exchange is
// abandoned and the message is handled after the current handler returns.
var ErrInterrupted = errors.New("exchange interrupted by host")

// Handler processes a received envelope. Return nil to send no reply.
type Handler func(env Envelope) (*Envelope, error)

// Connection represents a single game host talking to the sidecar.
// Each match player gets its own connection, identified after the hello handshake.
type Connection struct {
	conn     net.Conn
	handlers map[string]Handler
	Player   string

	// Owned by the read loop goroutine.
	pending     []Envelope
	interrupted bool
}

func NewConnection(conn net.Conn, handlers map[string]Handler) *Connection {
	if handlers == nil {
		handlers = make(map[string]Handler)
	}
	return &Connection{
		conn:     conn,
		handlers: handlers,
	}
}

func (c *Connection) RegisterHandler(msgType string, handler Handler) {
	c.handlers[msgType] = handler
}

func (c *Connection) Send(msgType string, data any) error {
	env, err := NewEnvelope(msgType, data)
	if err != nil {
		return err
	}
	return WriteEnvelope(c.conn, env)
}

// Call sends a command and blocks for the host's action_result. It reads the
// connection directly, so it may only run on the read loop's goroutine (from
// inside a handler) or before ReadLoop starts.
//
// Any other message arriving in place of the result is queued for the read
// loop and the exchange is interrupted: this and every later Call made by the
// same handler fail with ErrInterrupted without touching the wire.
func (c *Connection) Call(msgType string, data any) (ActionResult, error) {
	if c.interrupted {
		return ActionResult{}, fmt.Errorf("%s: %w", msgType, ErrInterrupted)
	}
	if err := c.Send(msgType, data); err != nil {
		return ActionResult{}, fmt.Errorf("send %s: %w", msgType, err)
	}
	env, err := ReadEnvelope(c.conn)
	if err != nil {
		return ActionResult{}, fmt.Errorf("await %s result: %w", msgType, err)
	}
	if env.Type != TypeActionResult {
		c.pending = append(c.pending, env)
		c.interrupted = true
		slog.Info("host interrupted exchange", "command", msgType, "got", env.Type, "player", c.Player)
		return ActionResult{}, fmt.Errorf("await %s result: got %q: %w", msgType, env.Type, ErrInterrupted)
	}
	var res ActionResult
	if err := env.Decode(&res); err != nil {
		return ActionResult{}, err
	}
	return res, nil
}

// ReadLoop blocks until the connection closes or errors. It owns the conn lifetime
// so callers don't need to track cleanup.
func (c *Connection) ReadLoop() {
	defer c.conn.Close()

	for {
		env, err := ReadEnvelope(c.conn)
		if err != nil {
			slog.Info("connection read ended", "player", c.Player, "error", err)
			return
		}
		if !c.dispatch(env) {
			return
		}
		// Messages that cut into a handler's exchange run next, in arrival order.
		for len(c.pending) > 0 {
			next := c.pending[0]
			c.pending = c.pending[1:]
			if !c.dispatch(next) {
				return
			}
		}
	}
}

// dispatch runs the handler for env and writes its reply. It reports false
// when the connection can no longer be written to.
func (c *Connection) dispatch(env Envelope) bool {
	handler, ok := c.handlers[env.Type]
	if !ok {
		slog.Warn("no handler for message type", "type", env.Type)
		return true
	}

	resp, err := handler(env)
	if c.interrupted {
		// The host moved on; a reply to the abandoned exchange would be read
		// as the answer to whatever it sent instead.
		c.interrupted = false
		slog.Debug("dropped reply to interrupted exchange", "type", env.Type, "player", c.Player, "error", err)
		return true
	}
	if err != nil {
		slog.Error("handler error", "type", env.Type, "error", err)
		return true
	}

	if resp != nil {
		if err := WriteEnvelope(c.conn, *resp); err != nil {
			slog.Error("failed to send response", "type", resp.Type, "error", err)
			return false
		}
		slog.Debug("sent response", "type", resp.Type, "player", c.Player)
	}
	return true
}
