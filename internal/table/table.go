package table

import (
	"context"
	"errors"

	"github.com/DoyleJ11/dice-tracker/internal/engine"
	"github.com/DoyleJ11/dice-tracker/internal/metrics"
	"go.uber.org/zap"
)

var ErrClosed = errors.New("table closed")

type Msg interface{ isTableMsg() }

// FromClient applies Cmd to the table's engine. If Reply is set it must be
// buffered; it receives the engine's error (nil on success).
type FromClient struct {
	ClientID string
	Cmd      engine.Command
	Reply    chan error
}

func (FromClient) isTableMsg() {}

type Join struct {
	ClientID string
	Outbox   chan Snapshot // where this client wants to receive snapshots
}

func (Join) isTableMsg() {}

type Leave struct{ ClientID string }

func (Leave) isTableMsg() {}

type Shutdown struct{}

func (Shutdown) isTableMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isTableMsg() {}

type Snapshot struct {
	Version int
	State   engine.State
}

type View struct {
	Version    int
	NumClients int
	State      engine.State
}

// Table is one running dice table. Its loop goroutine is the only caller of
// the engine, which keeps the engine single-writer.
type Table struct {
	code    string
	inbox   chan Msg
	engine  *engine.Engine
	latest  engine.State
	version int
	clients map[string]chan Snapshot
	log     *zap.Logger
	metrics *metrics.Metrics
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewTable(parent context.Context, code string, eng *engine.Engine, logger *zap.Logger, m *metrics.Metrics) *Table {
	ctx, cancel := context.WithCancel(parent)

	t := &Table{
		code:    code,
		inbox:   make(chan Msg, 64), // Small buffer
		engine:  eng,
		latest:  eng.State(),
		clients: make(map[string]chan Snapshot),
		log:     logger.Named("table").With(zap.String("code", code)),
		metrics: m,
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	eng.Subscribe(t.onChange)

	go t.loop()
	return t
}

func (t *Table) loop() {
	defer close(t.done)
	for {
		select {
		case <-t.ctx.Done():
			t.shutdown()
			return

		case m := <-t.inbox:
			switch msg := m.(type) {
			case Join:
				// Register client + send current snapshot immediately
				select {
				case msg.Outbox <- Snapshot{Version: t.version, State: t.latest}:
					t.clients[msg.ClientID] = msg.Outbox
					t.metrics.Clients.Inc()
					t.log.Debug("client joined", zap.String("client", msg.ClientID))
				default:
					close(msg.Outbox)
					t.log.Warn("client outbox full on join", zap.String("client", msg.ClientID))
				}

			case Leave:
				if ch, ok := t.clients[msg.ClientID]; ok {
					close(ch) // releases the client's writer
					delete(t.clients, msg.ClientID)
					t.metrics.Clients.Dec()
					t.log.Debug("client left", zap.String("client", msg.ClientID))
				}

			case FromClient:
				// Accepted commands notify through onChange, which bumps the version and broadcasts.
				err := t.engine.Apply(msg.Cmd)
				t.metrics.CommandApplied(string(msg.Cmd.Type), err)
				if err != nil {
					t.log.Debug("command rejected",
						zap.String("client", msg.ClientID),
						zap.String("type", string(msg.Cmd.Type)),
						zap.Error(err),
					)
				}
				if msg.Reply != nil {
					msg.Reply <- err
				}

			case GetState:
				msg.Reply <- View{
					Version:    t.version,
					NumClients: len(t.clients),
					State:      t.latest,
				}

			case Shutdown:
				t.shutdown()
				return
			}
		}
	}
}

func (t *Table) onChange(s engine.State) {
	t.latest = s
	t.version++
	t.broadcast(Snapshot{Version: t.version, State: s})
}

func (t *Table) shutdown() {
	for id, ch := range t.clients {
		close(ch) // Tell client no more snapshots
		delete(t.clients, id)
		t.metrics.Clients.Dec()
	}
	t.cancel()
	t.log.Info("table closed")
}

func (t *Table) broadcast(snap Snapshot) {
	for id, ch := range t.clients {
		select {
		case ch <- snap:
			//ok
		default:
			// Client is slow/full - drop them.
			close(ch)
			delete(t.clients, id)
			t.metrics.Clients.Dec()
			t.metrics.DroppedClients.Inc()
			t.log.Warn("dropped slow client", zap.String("client", id))
		}
	}
}

// Inbox exposes the raw inbox. Prefer Send from code that may outlive the table.
func (t *Table) Inbox() chan<- Msg { return t.inbox }

// Send delivers msg unless the table has stopped or ctx ends first.
func (t *Table) Send(ctx context.Context, msg Msg) error {
	select {
	case t.inbox <- msg:
		return nil
	case <-t.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed once the loop has exited.
func (t *Table) Done() <-chan struct{} { return t.done }

func (t *Table) Code() string { return t.code }
