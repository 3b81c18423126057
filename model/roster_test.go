package model

import (
	"reflect"
	"testing"
)

func TestSortRoster(t *testing.T) {
	roster := []RosterEntry{
		{PlayerName: "bench k", Position: "K", Started: false},
		{PlayerName: "kicker", Position: "K", Started: true},
		{PlayerName: "ir guy", Position: "IR", Started: true},
		{PlayerName: "def", Position: "DEF", Started: true},
		{PlayerName: "bench qb", Position: "QB", Started: false},
		{PlayerName: "wr1", Position: "WR", Started: true},
		{PlayerName: "qb", Position: "QB", Started: true},
		{PlayerName: "wr2", Position: "WR", Started: true},
		{PlayerName: "flex", Position: "FLEX", Started: true},
		{PlayerName: "te", Position: "TE", Started: true},
		{PlayerName: "rb", Position: "RB", Started: true},
	}

	SortRoster(roster)

	got := make([]string, 0, len(roster))
	for _, r := range roster {
		got = append(got, r.PlayerName)
	}
	expected := []string{"qb", "rb", "wr1", "wr2", "te", "flex", "def", "kicker", "ir guy", "bench qb", "bench k"}
	if !reflect.DeepEqual(expected, got) {
		t.Errorf("wanted %v but got %v", expected, got)
	}
}

func TestProjectedTotal(t *testing.T) {
	roster := []RosterEntry{
		{TeamName: "A", Projected: 10.5, Started: true},
		{TeamName: "A", Projected: 4.25, Started: true},
		{TeamName: "A", Projected: 100, Started: false},
		{TeamName: "B", Projected: 7, Started: true},
	}

	if got := ProjectedTotal(roster, "A"); got != 14.75 {
		t.Errorf("expected 14.75, got %v", got)
	}
	if got := ProjectedTotal(roster, "B"); got != 7 {
		t.Errorf("expected 7, got %v", got)
	}
	if got := ProjectedTotal(roster, "C"); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
	if got := len(TeamRoster(roster, "A")); got != 3 {
		t.Errorf("expected 3 entries for A, got %d", got)
	}
}
