package engine

type CommandType string

const (
	CmdMoveDice          CommandType = "MoveDice"
	CmdReroll            CommandType = "Reroll"
	CmdExhaust           CommandType = "Exhaust"
	CmdEndRound          CommandType = "EndRound"
	CmdSetMonsterZones   CommandType = "SetMonsterZones"
	CmdAddMonsterZone    CommandType = "AddMonsterZone"
	CmdDeleteMonsterZone CommandType = "DeleteMonsterZone"
	CmdToggleSelected    CommandType = "ToggleSelected"
	CmdClearSelection    CommandType = "ClearSelection"
	CmdSetValue          CommandType = "SetValue"
	CmdRollOne           CommandType = "RollOne"
	CmdBeginValueEntry   CommandType = "BeginValueEntry"
	CmdCancelValueEntry  CommandType = "CancelValueEntry"
	CmdIncrementCounter  CommandType = "IncrementCounter"
	CmdDecrementCounter  CommandType = "DecrementCounter"
	CmdReset             CommandType = "Reset"
)

/*
	CmdMoveDice          -> DieIDs, Zone
	CmdReroll            -> Zone, DieIDs (optional subset)
	CmdSetMonsterZones   -> Count
	CmdDeleteMonsterZone -> Count (the 1-based slot)
	CmdToggleSelected    -> DieIDs[0]
	CmdSetValue          -> DieIDs[0], Value
	CmdRollOne           -> DieIDs[0]
	CmdBeginValueEntry   -> DieIDs[0]
	everything else      -> no arguments
*/

type Command struct {
	Type   CommandType
	DieIDs []string
	Zone   Zone
	Value  int
	Count  int
}

func (c Command) firstID() string {
	if len(c.DieIDs) == 0 {
		return ""
	}
	return c.DieIDs[0]
}

// Apply runs cmd against the engine. Only malformed commands return an error;
// commands that are valid but have nothing to act on are silent no-ops.
func (e *Engine) Apply(cmd Command) error {
	switch cmd.Type {
	case CmdMoveDice:
		if !cmd.Zone.Valid() {
			return ErrInvalidZone
		}
		e.MoveMany(cmd.DieIDs, cmd.Zone)

	case CmdReroll:
		if !cmd.Zone.Valid() {
			return ErrInvalidZone
		}
		e.Reroll(cmd.Zone, cmd.DieIDs)

	case CmdExhaust:
		e.Exhaust()

	case CmdEndRound:
		e.EndRound()

	case CmdSetMonsterZones:
		e.SetActiveMonsterZones(cmd.Count)

	case CmdAddMonsterZone:
		e.AddMonsterZone()

	case CmdDeleteMonsterZone:
		e.DeleteZone(cmd.Count)

	case CmdToggleSelected:
		e.ToggleSelected(cmd.firstID())

	case CmdClearSelection:
		e.ClearSelection()

	case CmdSetValue:
		return e.SetValue(cmd.firstID(), cmd.Value)

	case CmdRollOne:
		e.RollOne(cmd.firstID())

	case CmdBeginValueEntry:
		e.BeginValueEntry(cmd.firstID())

	case CmdCancelValueEntry:
		e.CancelValueEntry()

	case CmdIncrementCounter:
		e.IncrementRerollCounter()

	case CmdDecrementCounter:
		e.DecrementRerollCounter()

	case CmdReset:
		e.Reset()

	default:
		return ErrUnsupportedCommand
	}
	return nil
}
