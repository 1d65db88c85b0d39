package types

// StateSnapshot is the table as sent to viewers.
//
//	version: number            (on the enclosing ServerMessage)
//	dice: DieView[]            registry order, never reordered
//	zones: ZoneView[]          fixed zones first, then monster1..active
//	active_monster_zones: 1..5
//	reroll_counter: number     muster rerolls since the last exhaust/reset
//	pending_value_assignment:  die id awaiting manual entry, omitted if none
type StateSnapshot struct {
	Dice                   []DieView  `json:"dice"`
	Zones                  []ZoneView `json:"zones"`
	ActiveMonsterZones     int        `json:"active_monster_zones"`
	RerollCounter          int        `json:"reroll_counter"`
	PendingValueAssignment string     `json:"pending_value_assignment,omitempty"`
}

// DieView omits Value while the die is hidden so viewers cannot peek.
type DieView struct {
	ID       string `json:"id"`
	Color    string `json:"color"`
	ColorHex string `json:"color_hex"`
	Value    *int   `json:"value,omitempty"`
	Zone     string `json:"zone"`
	Hidden   bool   `json:"hidden"`
	Selected bool   `json:"selected"`
}

type ZoneView struct {
	Zone  string `json:"zone"`
	Label string `json:"label"`
	Count int    `json:"count"`
}
