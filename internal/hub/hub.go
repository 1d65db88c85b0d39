package hub

import (
	"context"

	"github.com/DoyleJ11/dice-tracker/internal/engine"
	"github.com/DoyleJ11/dice-tracker/internal/metrics"
	"github.com/DoyleJ11/dice-tracker/internal/table"
	"go.uber.org/zap"
)

type HubMsg interface{ isHubMsg() }

// CreateTable opens a table under Code, or returns the one already there.
type CreateTable struct {
	Code  string
	Reply chan *table.Table
}

type GetTable struct {
	Code  string
	Reply chan *table.Table
}

type EnsureTable struct {
	Code  string
	Reply chan *table.Table
}

type RemoveTable struct {
	Code string
}

type CountTables struct {
	Reply chan int
}

type ShutdownHub struct{}

func (CreateTable) isHubMsg() {}
func (GetTable) isHubMsg()    {}
func (EnsureTable) isHubMsg() {}
func (RemoveTable) isHubMsg() {}
func (CountTables) isHubMsg() {}
func (ShutdownHub) isHubMsg() {}

// EngineFactory builds the engine for a new table.
type EngineFactory func() *engine.Engine

// SeededEngines returns a factory whose n-th table rolls from seed+n, so a
// fixed seed replays the same dice. Seed 0 gives every table a random seed.
func SeededEngines(seed int64) EngineFactory {
	var n int64
	return func() *engine.Engine {
		if seed == 0 {
			return engine.New()
		}
		r := engine.NewRandomRoller(seed + n)
		n++
		return engine.New(engine.WithRoller(r))
	}
}

type Hub struct {
	inbox     chan HubMsg
	tables    map[string]*table.Table
	newEngine EngineFactory
	log       *zap.Logger
	metrics   *metrics.Metrics
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewHub(parent context.Context, newEngine EngineFactory, logger *zap.Logger, m *metrics.Metrics) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:     make(chan HubMsg, 64),
		tables:    make(map[string]*table.Table),
		newEngine: newEngine,
		log:       logger.Named("hub"),
		metrics:   m,
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

// Done is closed once the hub loop has exited.
func (h *Hub) Done() <-chan struct{} { return h.done }

func (h *Hub) loop() {
	defer close(h.done)
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateTable:
				msg.Reply <- h.ensure(msg.Code)

			case GetTable:
				msg.Reply <- h.tables[msg.Code] // May be nil

			case EnsureTable:
				msg.Reply <- h.ensure(msg.Code)

			case RemoveTable:
				if tb := h.tables[msg.Code]; tb != nil {
					select {
					case tb.Inbox() <- table.Shutdown{}:
					case <-tb.Done():
					}
					delete(h.tables, msg.Code)
					h.metrics.Tables.Dec()
					h.log.Info("table removed", zap.String("code", msg.Code))
				}

			case CountTables:
				msg.Reply <- len(h.tables)

			case ShutdownHub:
				h.shutdown()
				return
			}

		}
	}
}

func (h *Hub) ensure(code string) *table.Table {
	if tb := h.tables[code]; tb != nil {
		return tb
	}

	tb := table.NewTable(h.ctx, code, h.newEngine(), h.log, h.metrics)
	h.tables[code] = tb
	h.metrics.Tables.Inc()
	h.log.Info("table opened", zap.String("code", code))
	return tb
}

func (h *Hub) shutdown() {
	for code, tb := range h.tables {
		select {
		case tb.Inbox() <- table.Shutdown{}:
		case <-tb.Done():
		}
		<-tb.Done()
		delete(h.tables, code)
		h.metrics.Tables.Dec()
	}
	h.cancel()
}

// Lookup asks the hub for the table under code. It returns nil when there is
// none or ctx ends first.
func (h *Hub) Lookup(ctx context.Context, code string) *table.Table {
	return h.ask(ctx, func(reply chan *table.Table) HubMsg { return GetTable{Code: code, Reply: reply} })
}

// Ensure returns the table under code, opening it if needed.
func (h *Hub) Ensure(ctx context.Context, code string) *table.Table {
	return h.ask(ctx, func(reply chan *table.Table) HubMsg { return EnsureTable{Code: code, Reply: reply} })
}

func (h *Hub) ask(ctx context.Context, build func(chan *table.Table) HubMsg) *table.Table {
	reply := make(chan *table.Table, 1)
	select {
	case h.inbox <- build(reply):
	case <-h.done:
		return nil
	case <-ctx.Done():
		return nil
	}
	select {
	case tb := <-reply:
		return tb
	case <-h.done:
		return nil
	case <-ctx.Done():
		return nil
	}
}

// Count reports how many tables are open. ok is false if the hub did not answer.
func (h *Hub) Count(ctx context.Context) (n int, ok bool) {
	reply := make(chan int, 1)
	select {
	case h.inbox <- CountTables{Reply: reply}:
	case <-h.done:
		return 0, false
	case <-ctx.Done():
		return 0, false
	}
	select {
	case n := <-reply:
		return n, true
	case <-h.done:
		return 0, false
	case <-ctx.Done():
		return 0, false
	}
}
