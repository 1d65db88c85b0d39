package types

// Client -> Server
//
//	type: one of the command names below
//	die_ids: string[]   dice the command acts on (the drag selection for MoveDice)
//	zone: string        pool | muster | exhausted | banished | monster1..monster5
//	value: number       1..6, SetValue only
//	count: number       SetMonsterZones (new count), DeleteMonsterZone (slot)
//
//	MoveDice, Reroll, Exhaust, EndRound, SetMonsterZones, AddMonsterZone,
//	DeleteMonsterZone, ToggleSelected, ClearSelection, SetValue, RollOne,
//	BeginValueEntry, CancelValueEntry, IncrementCounter, DecrementCounter, Reset
type ClientMessage struct {
	Type   string   `json:"type"`
	DieIDs []string `json:"die_ids,omitempty"`
	Zone   string   `json:"zone,omitempty"`
	Value  int      `json:"value,omitempty"`
	Count  int      `json:"count,omitempty"`
}

// Server -> Client
//
//	StateSnapshot: version + state, sent on join and after every change
//	Error: error message for the sending client only
type ServerMessage struct {
	Type    string         `json:"type"` // "StateSnapshot" | "Error"
	Version int            `json:"version,omitempty"`
	State   *StateSnapshot `json:"state,omitempty"`
	Error   string         `json:"error,omitempty"`
}

const (
	MsgStateSnapshot = "StateSnapshot"
	MsgError         = "Error"
)
