package sleeper

import (
	"strings"
	"testing"

	"github.com/Praneshv25/KMSFL-Data/model"
)

func TestToPlayerInfo(t *testing.T) {
	tests := map[string]struct {
		id    string
		input sleeperPlayer
		want  model.PlayerInfo
	}{
		"offense": {
			id:    "6904",
			input: sleeperPlayer{ID: "6904", FirstName: "Jalen", LastName: "Hurts", Position: "QB", Team: "PHI"},
			want:  model.PlayerInfo{ID: "6904", Name: "Jalen Hurts", Position: "QB", Team: "PHI"},
		},
		"fullback kept": {
			id:    "1379",
			input: sleeperPlayer{FirstName: "Kyle", LastName: "Juszczyk", Position: "FB", Team: "SF"},
			want:  model.PlayerInfo{ID: "1379", Name: "Kyle Juszczyk", Position: "FB", Team: "SF"},
		},
		"defense": {
			id:    "SEA",
			input: sleeperPlayer{ID: "SEA", FirstName: "Seattle", LastName: "Seahawks", Position: "DEF", Team: "SEA"},
			want:  model.PlayerInfo{ID: "SEA", Name: "SEA D/ST", Position: "D/ST", Team: "SEA"},
		},
		"idp position kept": {
			id:    "3451",
			input: sleeperPlayer{FirstName: "Bobby", LastName: "Wagner", Position: "lb", Team: "WAS"},
			want:  model.PlayerInfo{ID: "3451", Name: "Bobby Wagner", Position: "LB", Team: "WAS"},
		},
		"full name only": {
			id:    "77",
			input: sleeperPlayer{FullName: "Someone Else", Position: "K"},
			want:  model.PlayerInfo{ID: "77", Name: "Someone Else", Position: "K"},
		},
		"no name": {
			id:    "78",
			input: sleeperPlayer{},
			want:  model.PlayerInfo{ID: "78", Name: "78", Position: "N/A"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := tc.input.toPlayerInfo(tc.id)
			if got != tc.want {
				t.Fatalf("expected: %+v, got: %+v", tc.want, got)
			}
		})
	}
}

func TestLoadDirectory_reader(t *testing.T) {
	dir, err := LoadDirectory(strings.NewReader(`{
		"1": {"first_name": "Player", "last_name": "Invalid"},
		"2": {"player_id": "2", "first_name": "Derrick", "last_name": "Henry", "position": "RB", "team": "BAL"}
	}`))
	if err != nil {
		t.Fatalf("error should have been nil, was: %v", err)
	}
	if len(dir) != 1 {
		t.Fatalf("expected 1 player, got %d", len(dir))
	}
	if dir["2"].Name != "Derrick Henry" {
		t.Errorf("unexpected player %+v", dir["2"])
	}

	if _, err := LoadDirectory(strings.NewReader("nope")); err == nil {
		t.Errorf("expected an error for bad input")
	}
}
