package engine

import (
	"errors"
	"slices"
)

var ErrInvalidValue = errors.New("die value must be between 1 and 6")
var ErrInvalidZone = errors.New("invalid zone")
var ErrUnsupportedCommand = errors.New("unsupported command")

const (
	MinValue = 1
	MaxValue = 6
)

type Die struct {
	ID       string `json:"id"`
	Color    Color  `json:"color"`
	Value    int    `json:"value"`
	Zone     Zone   `json:"zone"`
	Hidden   bool   `json:"hidden"`
	Selected bool   `json:"selected"`
}

type State struct {
	Dice               []Die `json:"dice"`
	ActiveMonsterZones int   `json:"active_monster_zones"`
	RerollCounter      int   `json:"reroll_counter"`
	// PendingValueAssignment is the id of the die awaiting manual value entry, or "".
	PendingValueAssignment string `json:"pending_value_assignment,omitempty"`
}

// Engine is the authoritative dice table. It is not safe for concurrent use;
// the owner serializes calls (see table.Table).
type Engine struct {
	state     State
	nextID    int
	roll      Roller
	listeners []listenerEntry
	nextSub   int
}

type Option func(*Engine)

// WithRoller replaces the default random source.
func WithRoller(r Roller) Option {
	return func(e *Engine) {
		e.roll = r
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.roll == nil {
		e.roll = NewRandomRoller(0)
	}
	e.state = e.freshState()
	return e
}

func (e *Engine) freshState() State {
	dice := NewDice(e.nextID, e.roll)
	e.nextID += len(dice)
	return State{
		Dice:               dice,
		ActiveMonsterZones: 1,
		RerollCounter:      0,
	}
}

// State returns a deep copy of the current table.
func (e *Engine) State() State {
	return e.state.clone()
}

func (e *Engine) find(id string) int {
	return slices.IndexFunc(e.state.Dice, func(d Die) bool { return d.ID == id })
}

// Die looks a die up by id.
func (e *Engine) Die(id string) (Die, bool) {
	i := e.find(id)
	if i < 0 {
		return Die{}, false
	}
	return e.state.Dice[i], true
}

func (e *Engine) DiceInZone(z Zone) []Die {
	return e.filter(func(d Die) bool { return d.Zone == z })
}

func (e *Engine) DiceByColor(c Color) []Die {
	return e.filter(func(d Die) bool { return d.Color == c })
}

func (e *Engine) MonsterDice() []Die {
	return e.filter(func(d Die) bool { return d.Zone.IsMonster() })
}

// Selected returns every selected die in registry order, across all zones.
func (e *Engine) Selected() []Die {
	return e.filter(func(d Die) bool { return d.Selected })
}

func (e *Engine) filter(keep func(Die) bool) []Die {
	out := []Die{}
	for _, d := range e.state.Dice {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}

// IsMonsterZoneActive reports whether z is a monster slot that is currently open.
func (e *Engine) IsMonsterZoneActive(z Zone) bool {
	return z.IsMonster() && z.Index >= 1 && z.Index <= e.state.ActiveMonsterZones
}

// addressable reports whether dice may be placed in z right now.
func (e *Engine) addressable(z Zone) bool {
	if !z.Valid() {
		return false
	}
	if z.IsMonster() {
		return e.IsMonsterZoneActive(z)
	}
	return true
}

// DragSelection returns the ids a drag starting on id should carry: the whole
// selection when id is selected, otherwise id alone.
func (e *Engine) DragSelection(id string) []string {
	d, ok := e.Die(id)
	if !ok {
		return nil
	}
	if !d.Selected {
		return []string{id}
	}
	ids := []string{}
	for _, s := range e.Selected() {
		ids = append(ids, s.ID)
	}
	return ids
}

// MoveMany moves every listed die into target. Moves into a closed monster
// slot are ignored entirely. Unknown ids are skipped.
func (e *Engine) MoveMany(ids []string, target Zone) {
	if !e.addressable(target) {
		return
	}
	e.moveMany(ids, target)
	e.notify()
}

func (e *Engine) Move(id string, target Zone) {
	e.MoveMany([]string{id}, target)
}

func (e *Engine) moveMany(ids []string, target Zone) {
	for i := range e.state.Dice {
		d := &e.state.Dice[i]
		if d.Zone == target || !slices.Contains(ids, d.ID) {
			continue
		}
		d.Zone = target
		if target == Pool {
			d.Hidden = true
		}
	}
}

// Reroll rolls the dice in zone, limited to selected when it is non-empty.
// Rerolling the muster always counts, even if nothing was rolled.
func (e *Engine) Reroll(zone Zone, selected []string) {
	for i := range e.state.Dice {
		d := &e.state.Dice[i]
		if d.Zone != zone {
			continue
		}
		if len(selected) > 0 && !slices.Contains(selected, d.ID) {
			continue
		}
		d.Value = e.roll.Roll()
		d.Hidden = false
	}
	if zone == Muster {
		e.state.RerollCounter++
	}
	e.clearSelection()
	e.notify()
}

// Exhaust sends everything in the muster and monster slots to exhausted and
// zeroes the reroll counter. It does not touch ActiveMonsterZones.
func (e *Engine) Exhaust() {
	e.exhaust()
	e.notify()
}

func (e *Engine) exhaust() {
	for i := range e.state.Dice {
		d := &e.state.Dice[i]
		if d.Zone == Muster || d.Zone.IsMonster() {
			d.Zone = Exhausted
		}
	}
	e.state.RerollCounter = 0
}

// EndRound exhausts and closes all but the first monster slot.
func (e *Engine) EndRound() {
	e.exhaust()
	e.state.ActiveMonsterZones = 1
	e.notify()
}

// SetActiveMonsterZones clamps n to [1, MaxMonsterZones]. Dice left in a
// closed slot stay there; use DeleteZone to clear a slot.
func (e *Engine) SetActiveMonsterZones(n int) {
	e.state.ActiveMonsterZones = clampMonsterZones(n)
	e.notify()
}

func (e *Engine) AddMonsterZone() {
	e.SetActiveMonsterZones(e.state.ActiveMonsterZones + 1)
}

// DeleteZone exhausts the dice in monster slot index, shifts later slots down
// by one and closes the last slot. Indexes outside the open range are ignored.
func (e *Engine) DeleteZone(index int) {
	active := e.state.ActiveMonsterZones
	if index < 1 || index > active {
		return
	}

	for i := range e.state.Dice {
		if e.state.Dice[i].Zone == Monster(index) {
			e.state.Dice[i].Zone = Exhausted
		}
	}
	for slot := index; slot < active; slot++ {
		for i := range e.state.Dice {
			if e.state.Dice[i].Zone == Monster(slot+1) {
				e.state.Dice[i].Zone = Monster(slot)
			}
		}
	}
	if active > 1 {
		e.state.ActiveMonsterZones = active - 1
	}
	e.notify()
}

func (e *Engine) ToggleSelected(id string) {
	i := e.find(id)
	if i < 0 {
		return
	}
	e.state.Dice[i].Selected = !e.state.Dice[i].Selected
	e.notify()
}

func (e *Engine) ClearSelection() {
	e.clearSelection()
	e.notify()
}

func (e *Engine) clearSelection() {
	for i := range e.state.Dice {
		e.state.Dice[i].Selected = false
	}
}

// SetValue records a value read off a physical die. Out-of-range values are a
// caller bug and rejected; unknown ids are ignored.
func (e *Engine) SetValue(id string, value int) error {
	if value < MinValue || value > MaxValue {
		return ErrInvalidValue
	}
	i := e.find(id)
	if i < 0 {
		return nil
	}
	e.state.Dice[i].Value = value
	e.state.Dice[i].Hidden = false
	e.settlePending(id)
	e.notify()
	return nil
}

func (e *Engine) RollOne(id string) {
	i := e.find(id)
	if i < 0 {
		return
	}
	e.state.Dice[i].Value = e.roll.Roll()
	e.state.Dice[i].Hidden = false
	e.settlePending(id)
	e.notify()
}

// BeginValueEntry marks id as awaiting manual value entry, replacing any
// previous pending die.
func (e *Engine) BeginValueEntry(id string) {
	if e.find(id) < 0 {
		return
	}
	e.state.PendingValueAssignment = id
	e.notify()
}

func (e *Engine) CancelValueEntry() {
	e.state.PendingValueAssignment = ""
	e.notify()
}

func (e *Engine) settlePending(id string) {
	if e.state.PendingValueAssignment == id {
		e.state.PendingValueAssignment = ""
	}
}

func (e *Engine) IncrementRerollCounter() {
	e.state.RerollCounter++
	e.notify()
}

func (e *Engine) DecrementRerollCounter() {
	e.state.RerollCounter = max(0, e.state.RerollCounter-1)
	e.notify()
}

// Reset throws the whole table away and deals a fresh one with new ids.
func (e *Engine) Reset() {
	e.state = e.freshState()
	e.notify()
}
