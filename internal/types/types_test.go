package types

import (
	"errors"
	"testing"

	"github.com/DoyleJ11/dice-tracker/internal/engine"
	wire "github.com/DoyleJ11/dice-tracker/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotHidesConcealedValues(t *testing.T) {
	e := engine.New(engine.WithRoller(engine.RollerFunc(func() int { return 5 })))
	require.NoError(t, e.SetValue("die-2", 2))
	e.Move("die-2", engine.Muster)
	e.AddMonsterZone()

	snap := Snapshot(e.State())

	require.Len(t, snap.Dice, 17)
	assert.Nil(t, snap.Dice[0].Value)
	require.NotNil(t, snap.Dice[2].Value)
	assert.Equal(t, 2, *snap.Dice[2].Value)
	assert.Equal(t, "muster", snap.Dice[2].Zone)
	assert.Equal(t, "#8B8B00", snap.Dice[0].ColorHex)

	zones := map[string]wire.ZoneView{}
	for _, z := range snap.Zones {
		zones[z.Zone] = z
	}
	assert.Len(t, snap.Zones, 6)
	assert.Equal(t, 16, zones["pool"].Count)
	assert.Equal(t, 1, zones["muster"].Count)
	assert.Equal(t, "Monster", zones["monster2"].Label)
	assert.NotContains(t, zones, "monster3")
}

func TestToCommand(t *testing.T) {
	cmd, err := ToCommand(wire.ClientMessage{Type: "MoveDice", DieIDs: []string{"die-1"}, Zone: "monster2"})
	require.NoError(t, err)
	assert.Equal(t, engine.CmdMoveDice, cmd.Type)
	assert.Equal(t, engine.Monster(2), cmd.Zone)
	assert.Equal(t, []string{"die-1"}, cmd.DieIDs)

	cmd, err = ToCommand(wire.ClientMessage{Type: "Exhaust"})
	require.NoError(t, err)
	assert.Equal(t, engine.Zone{}, cmd.Zone)

	_, err = ToCommand(wire.ClientMessage{Type: "MoveDice", Zone: "attic"})
	assert.True(t, errors.Is(err, engine.ErrInvalidZone))
}
