package types

import (
	"github.com/DoyleJ11/dice-tracker/internal/engine"
	wire "github.com/DoyleJ11/dice-tracker/pkg/types"
)

// Snapshot converts engine state into the viewer-facing form.
func Snapshot(s engine.State) *wire.StateSnapshot {
	out := &wire.StateSnapshot{
		Dice:                   make([]wire.DieView, 0, len(s.Dice)),
		ActiveMonsterZones:     s.ActiveMonsterZones,
		RerollCounter:          s.RerollCounter,
		PendingValueAssignment: s.PendingValueAssignment,
	}

	counts := map[engine.Zone]int{}
	for _, d := range s.Dice {
		counts[d.Zone]++
		view := wire.DieView{
			ID:       d.ID,
			Color:    string(d.Color),
			ColorHex: d.Color.Hex(),
			Zone:     d.Zone.String(),
			Hidden:   d.Hidden,
			Selected: d.Selected,
		}
		if !d.Hidden {
			v := d.Value
			view.Value = &v
		}
		out.Dice = append(out.Dice, view)
	}

	for _, z := range VisibleZones(s.ActiveMonsterZones) {
		out.Zones = append(out.Zones, wire.ZoneView{Zone: z.String(), Label: z.Label(), Count: counts[z]})
	}
	return out
}

// VisibleZones lists the zones a table shows with n monster slots open.
func VisibleZones(n int) []engine.Zone {
	zones := []engine.Zone{engine.Banished, engine.Exhausted, engine.Pool, engine.Muster}
	for i := 1; i <= n; i++ {
		zones = append(zones, engine.Monster(i))
	}
	return zones
}

func StateMessage(version int, s engine.State) wire.ServerMessage {
	return wire.ServerMessage{Type: wire.MsgStateSnapshot, Version: version, State: Snapshot(s)}
}

func ErrorMessage(err error) wire.ServerMessage {
	return wire.ServerMessage{Type: wire.MsgError, Error: err.Error()}
}

// ToCommand maps a client message onto an engine command.
func ToCommand(m wire.ClientMessage) (engine.Command, error) {
	cmd := engine.Command{
		Type:   engine.CommandType(m.Type),
		DieIDs: m.DieIDs,
		Value:  m.Value,
		Count:  m.Count,
	}

	if m.Zone != "" {
		z, err := engine.ParseZone(m.Zone)
		if err != nil {
			return engine.Command{}, err
		}
		cmd.Zone = z
	}
	return cmd, nil
}
