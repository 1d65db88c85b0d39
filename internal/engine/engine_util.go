package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/DoyleJ11/dice-tracker/internal/random"
)

// Roller produces die faces in [MinValue, MaxValue].
type Roller interface {
	Roll() int
}

// RollerFunc adapts a plain function to Roller. Tests use it to script values.
type RollerFunc func() int

func (f RollerFunc) Roll() int { return f() }

type randomRoller struct {
	rng *rand.Rand
}

// NewRandomRoller returns a uniform d6 roller. A zero seed draws one from crypto/rand.
func NewRandomRoller(seed int64) Roller {
	if seed == 0 {
		s, err := random.NewSeed()
		if err != nil {
			s = time.Now().UnixNano()
		}
		seed = s
	}
	return &randomRoller{rng: rand.New(rand.NewSource(seed))}
}

func (r *randomRoller) Roll() int {
	return r.rng.Intn(MaxValue) + MinValue
}

// NewDice builds the full registry, numbering ids from firstID. Every die starts
// hidden in the pool.
func NewDice(firstID int, roll Roller) []Die {
	dice := make([]Die, 0, TotalDice())
	id := firstID
	for _, color := range Colors {
		for range InitialCounts[color] {
			dice = append(dice, Die{
				ID:     fmt.Sprintf("die-%d", id),
				Color:  color,
				Value:  roll.Roll(),
				Zone:   Pool,
				Hidden: true,
			})
			id++
		}
	}
	return dice
}

func TotalDice() int {
	n := 0
	for _, c := range InitialCounts {
		n += c
	}
	return n
}

func clampMonsterZones(n int) int {
	return max(1, min(MaxMonsterZones, n))
}

func (s State) clone() State {
	out := s
	out.Dice = append([]Die(nil), s.Dice...)
	return out
}

func ContainsDie(dice []Die, id string) bool {
	for _, d := range dice {
		if d.ID == id {
			return true
		}
	}
	return false
}
