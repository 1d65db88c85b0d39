package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/DoyleJ11/dice-tracker/internal/engine"
	"github.com/DoyleJ11/dice-tracker/internal/hub"
	"github.com/DoyleJ11/dice-tracker/internal/table"
	"github.com/DoyleJ11/dice-tracker/internal/types"
	wire "github.com/DoyleJ11/dice-tracker/pkg/types"
	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errBadJSON = errors.New("bad json")

type Options struct {
	// ReadTimeout bounds how long a client may stay silent; zero means forever.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// Buffer is the outbox size; a client that falls this far behind is dropped.
	Buffer int
}

func Handler(h *hub.Hub, opts Options, logger *zap.Logger) http.HandlerFunc {
	log := logger.Named("ws")
	if opts.Buffer < 1 {
		opts.Buffer = 8
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 3 * time.Second
	}

	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		tb := h.Lookup(r.Context(), code)
		if tb == nil {
			http.Error(w, "table not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// In dev ONLY, you can loosen origin checks:
			// OriginPatterns: []string{"http://localhost:*", "http://127.0.0.1:*"},
		})
		if err != nil {
			log.Debug("accept failed", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan table.Snapshot, opts.Buffer)
		clientID := uuid.NewString()
		clog := log.With(zap.String("code", code), zap.String("client", clientID))

		if err := tb.Send(r.Context(), table.Join{ClientID: clientID, Outbox: out}); err != nil {
			conn.Close(websocket.StatusGoingAway, "table closed")
			return
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = tb.Send(ctx, table.Leave{ClientID: clientID})
		}()
		clog.Info("client connected")

		send := func(ctx context.Context, msg wire.ServerMessage) error {
			payload, err := json.Marshal(msg)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(ctx, opts.WriteTimeout)
			defer cancel()
			return conn.Write(ctx, websocket.MessageText, payload)
		}

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for {
				select {
				case snap, ok := <-out:
					if !ok {
						// The table closed our outbox: we left, were too slow, or it shut down.
						conn.Close(websocket.StatusGoingAway, "table closed")
						return
					}
					if err := send(writeCtx, types.StateMessage(snap.Version, snap.State)); err != nil {
						clog.Debug("write failed", zap.Error(err))
					}
				case <-writeCtx.Done():
					return
				}
			}
		}()

		// Reader loop
		for {
			ctx, cancel := readContext(r.Context(), opts.ReadTimeout)
			_, data, err := conn.Read(ctx)
			cancel()
			if err != nil {
				// Treat clean close/going-away as normal:
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					clog.Info("client disconnected")
				default:
					clog.Debug("read ended", zap.Error(err))
				}
				return
			}

			var cm wire.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				_ = send(r.Context(), types.ErrorMessage(errBadJSON))
				continue
			}

			cmd, err := types.ToCommand(cm)
			if err != nil {
				_ = send(r.Context(), types.ErrorMessage(err))
				continue
			}

			if err := apply(r.Context(), tb, clientID, cmd); err != nil {
				if errors.Is(err, table.ErrClosed) {
					return
				}
				_ = send(r.Context(), types.ErrorMessage(err))
			}
		}
	}
}

// apply hands cmd to the table and waits for the engine's verdict.
func apply(ctx context.Context, tb *table.Table, clientID string, cmd engine.Command) error {
	reply := make(chan error, 1)
	if err := tb.Send(ctx, table.FromClient{ClientID: clientID, Cmd: cmd, Reply: reply}); err != nil {
		return err
	}
	select {
	case err := <-reply:
		return err
	case <-tb.Done():
		return table.ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func readContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
