// Package metrics holds the Prometheus collectors for the table server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
)

type Metrics struct {
	Commands       *prometheus.CounterVec
	DroppedClients prometheus.Counter
	Tables         prometheus.Gauge
	Clients        prometheus.Gauge
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dice_commands_total",
				Help: "Commands applied to table engines, by type and result",
			},
			[]string{"type", "result"},
		),
		DroppedClients: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dice_dropped_clients_total",
			Help: "Clients disconnected because their outbox was full",
		}),
		Tables: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dice_tables_open",
			Help: "Tables currently held by the hub",
		}),
		Clients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dice_clients_connected",
			Help: "Clients currently joined to a table",
		}),
	}
	reg.MustRegister(m.Commands, m.DroppedClients, m.Tables, m.Clients)
	return m
}

// NewNop returns collectors registered on a throwaway registry.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

func (m *Metrics) CommandApplied(cmdType string, err error) {
	result := ResultOK
	if err != nil {
		result = ResultRejected
	}
	m.Commands.WithLabelValues(cmdType, result).Inc()
}
