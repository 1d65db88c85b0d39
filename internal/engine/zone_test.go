package engine

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseZone(t *testing.T) {
	cases := []struct {
		in      string
		want    Zone
		wantErr bool
	}{
		{in: "pool", want: Pool},
		{in: "muster", want: Muster},
		{in: "exhausted", want: Exhausted},
		{in: "banished", want: Banished},
		{in: "monster1", want: Monster(1)},
		{in: "monster5", want: Monster(5)},
		{in: "monster0", wantErr: true},
		{in: "monster6", wantErr: true},
		{in: "monster", wantErr: true},
		{in: "monsterX", wantErr: true},
		{in: "Pool", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseZone(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidZone) {
					t.Fatalf("want ErrInvalidZone, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %#v, want %#v", got, tc.want)
			}
			if got.String() != tc.in {
				t.Fatalf("String(): got %q, want %q", got.String(), tc.in)
			}
		})
	}
}

func TestZoneLabels(t *testing.T) {
	if Monster(3).Label() != "Monster" {
		t.Fatalf("monster label: %q", Monster(3).Label())
	}
	if Muster.Label() != "Aufmarsch" {
		t.Fatalf("muster label: %q", Muster.Label())
	}
	if (Zone{}).Label() != "" {
		t.Fatalf("unknown zone should have no label")
	}
}

func TestDieJSONUsesZoneName(t *testing.T) {
	d := Die{ID: "die-3", Color: ColorBlue, Value: 4, Zone: Monster(2)}
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":"die-3","color":"blue","value":4,"zone":"monster2","hidden":false,"selected":false}`
	if string(b) != want {
		t.Fatalf("got %s, want %s", b, want)
	}

	var back Die
	if err := json.Unmarshal([]byte(`{"id":"x","zone":"monster9"}`), &back); err == nil {
		t.Fatalf("expected error decoding monster9")
	}
}

func TestColors(t *testing.T) {
	if ColorPurple.Hex() != "#4B0082" {
		t.Fatalf("purple hex: %s", ColorPurple.Hex())
	}
	if Color("orange").Valid() {
		t.Fatalf("orange should not be a die color")
	}
	if TotalDice() != 17 {
		t.Fatalf("total dice: %d", TotalDice())
	}
}
