package http

import (
	"context"
	"errors"
	"io"
	stdhttp "net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/peerlink/signaling-server/internal/core"
	"github.com/peerlink/signaling-server/internal/proto"
)

// WSHandler upgrades HTTP connections and bridges them to the relay.
// The websocket transport guarantees in-order delivery per connection;
// the relay depends on that and never reorders.
type WSHandler struct {
	relay *core.Relay
	log   *zerolog.Logger
}

// NewWSHandler builds the signaling WebSocket handler.
func NewWSHandler(relay *core.Relay, logger *zerolog.Logger) stdhttp.Handler {
	return &WSHandler{relay: relay, log: logger}
}

func (h *WSHandler) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	ctx := r.Context()

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	client := h.relay.Connect(r.RemoteAddr)
	defer h.relay.Disconnect(client)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, client)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, client)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != 0 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			h.log.Warn().Err(err).Int64("client_id", client.ID).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		_, raw, err := conn.Read(ctx)
		if err != nil {
			return err
		}

		env, payload, err := proto.DecodeInbound(raw)
		if err != nil {
			// Malformed input costs one message, never the connection.
			h.log.Warn().Err(err).Int64("client_id", client.ID).Msg("malformed message discarded")
			continue
		}
		h.dispatch(client, env, payload)
	}
}

// dispatch routes one inbound record. The type switch is closed over the
// known kinds; unrecognized tags are logged and ignored.
func (h *WSHandler) dispatch(client *core.Client, env proto.Envelope, payload map[string]any) {
	switch env.Type {
	case proto.TypeRegister:
		name := env.PeerName
		if name == "" {
			name = env.Name
		}
		h.relay.Register(client, name, env.RoomID)
	case proto.TypeGetPeers:
		h.relay.PeerList(client)
	default:
		kind, ok := forwardKind(env.Type)
		if !ok {
			h.log.Debug().Str("type", env.Type).Int64("client_id", client.ID).Msg("unknown message type ignored")
			return
		}
		if err := h.relay.Forward(client, kind, int64(env.TargetID), payload); err != nil {
			h.log.Debug().Err(err).Str("type", env.Type).Int64("client_id", client.ID).Msg("message dropped")
		}
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		select {
		case ev, ok := <-client.Events:
			if !ok {
				return nil
			}
			if err := wsjson.Write(ctx, conn, outboundFromEvent(ev)); err != nil {
				h.log.Error().Err(err).Int64("client_id", client.ID).Msg("write ws event")
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
