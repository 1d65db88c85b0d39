package engine

import (
	"fmt"
	"strconv"
	"strings"
)

type Color string

const (
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorPurple Color = "purple"
	ColorRed    Color = "red"
)

// Colors lists every die color in registry order.
var Colors = []Color{ColorYellow, ColorGreen, ColorBlue, ColorPurple, ColorRed}

// InitialCounts is the fixed number of dice created per color.
var InitialCounts = map[Color]int{
	ColorYellow: 4,
	ColorGreen:  4,
	ColorBlue:   4,
	ColorPurple: 4,
	ColorRed:    1,
}

var colorHex = map[Color]string{
	ColorYellow: "#8B8B00",
	ColorGreen:  "#006400",
	ColorBlue:   "#00008B",
	ColorPurple: "#4B0082",
	ColorRed:    "#8B0000",
}

// Hex is the display color used by table views.
func (c Color) Hex() string { return colorHex[c] }

func (c Color) Valid() bool {
	_, ok := InitialCounts[c]
	return ok
}

const MaxMonsterZones = 5

type ZoneKind uint8

const (
	KindUnknown ZoneKind = iota
	KindPool
	KindMuster
	KindExhausted
	KindBanished
	KindMonster
)

// Zone is a place a die can sit. Monster zones carry their 1-based slot index;
// every other kind leaves Index at zero so zones compare with ==.
type Zone struct {
	Kind  ZoneKind
	Index int
}

var (
	Pool      = Zone{Kind: KindPool}
	Muster    = Zone{Kind: KindMuster}
	Exhausted = Zone{Kind: KindExhausted}
	Banished  = Zone{Kind: KindBanished}
)

func Monster(index int) Zone {
	return Zone{Kind: KindMonster, Index: index}
}

func (z Zone) IsMonster() bool { return z.Kind == KindMonster }

// Valid reports whether z names a real zone. Monster slots must be 1..MaxMonsterZones.
func (z Zone) Valid() bool {
	switch z.Kind {
	case KindPool, KindMuster, KindExhausted, KindBanished:
		return z.Index == 0
	case KindMonster:
		return z.Index >= 1 && z.Index <= MaxMonsterZones
	default:
		return false
	}
}

func (z Zone) String() string {
	switch z.Kind {
	case KindPool:
		return "pool"
	case KindMuster:
		return "muster"
	case KindExhausted:
		return "exhausted"
	case KindBanished:
		return "banished"
	case KindMonster:
		return "monster" + strconv.Itoa(z.Index)
	default:
		return ""
	}
}

// Label is the name printed on the table for this zone.
func (z Zone) Label() string {
	switch z.Kind {
	case KindPool:
		return "Würfelpool"
	case KindMuster:
		return "Aufmarsch"
	case KindExhausted:
		return "Erschöpft"
	case KindBanished:
		return "Verbannt"
	case KindMonster:
		return "Monster"
	default:
		return ""
	}
}

func ParseZone(s string) (Zone, error) {
	switch s {
	case "pool":
		return Pool, nil
	case "muster":
		return Muster, nil
	case "exhausted":
		return Exhausted, nil
	case "banished":
		return Banished, nil
	}

	if rest, ok := strings.CutPrefix(s, "monster"); ok {
		n, err := strconv.Atoi(rest)
		if err == nil {
			if z := Monster(n); z.Valid() {
				return z, nil
			}
		}
	}
	return Zone{}, fmt.Errorf("%w: %q", ErrInvalidZone, s)
}

func (z Zone) MarshalText() ([]byte, error) {
	if !z.Valid() {
		return nil, fmt.Errorf("%w: kind=%d index=%d", ErrInvalidZone, z.Kind, z.Index)
	}
	return []byte(z.String()), nil
}

func (z *Zone) UnmarshalText(b []byte) error {
	parsed, err := ParseZone(string(b))
	if err != nil {
		return err
	}
	*z = parsed
	return nil
}
