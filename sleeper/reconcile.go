package sleeper

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Praneshv25/KMSFL-Data/model"
)

const unknownOwner = "Unknown"

// Directory maps Sleeper player ids to player details.
type Directory map[string]model.PlayerInfo

// Lookup finds a player. Team defenses are keyed by their team abbreviation
// and resolve even when the directory has no entry for them.
func (d Directory) Lookup(id string) (model.PlayerInfo, bool) {
	if p, found := d[id]; found {
		return p, true
	}
	if model.IsDefenseID(id) {
		return defense(id), true
	}
	return model.PlayerInfo{}, false
}

// Resolve is Lookup with a fallback: an unknown id becomes a player named
// after the id with no team and an unknown position.
func (d Directory) Resolve(id string) model.PlayerInfo {
	if p, found := d.Lookup(id); found {
		return p
	}
	return model.PlayerInfo{
		ID:       id,
		Name:     id,
		Position: string(model.POS_UNKNOWN),
	}
}

func defense(id string) model.PlayerInfo {
	return model.PlayerInfo{
		ID:       id,
		Name:     fmt.Sprintf("%s D/ST", id),
		Position: string(model.POS_DST),
		Team:     id,
	}
}

type rosterTeam struct {
	name    string
	owner   string
	ownerID string
}

// rosterIndex joins users to rosters so roster ids and owner ids can be
// turned into team and owner names.
type rosterIndex struct {
	byRoster map[int]rosterTeam
	byOwner  map[string]string
	// owner id -> roster id
	ownerRoster map[string]int
}

func newRosterIndex(users []rawUser, rosters []rawRoster) *rosterIndex {
	idx := &rosterIndex{
		byRoster:    make(map[int]rosterTeam, len(rosters)),
		byOwner:     make(map[string]string, len(users)),
		ownerRoster: make(map[string]int, len(rosters)),
	}

	teamNames := make(map[string]string, len(users))
	for _, u := range users {
		idx.byOwner[u.UserID] = strings.TrimSpace(u.DisplayName)
		teamNames[u.UserID] = strings.TrimSpace(u.Metadata.TeamName)
	}

	for _, r := range rosters {
		t := rosterTeam{owner: unknownOwner}
		if r.OwnerID != nil {
			t.ownerID = *r.OwnerID
			idx.ownerRoster[t.ownerID] = r.RosterID
			if name := idx.byOwner[t.ownerID]; name != "" {
				t.owner = name
			}
			t.name = teamNames[t.ownerID]
		}
		if t.name == "" {
			t.name = t.owner
		}
		if t.name == unknownOwner {
			t.name = "Team " + strconv.Itoa(r.RosterID)
		}
		idx.byRoster[r.RosterID] = t
	}
	return idx
}

func (idx *rosterIndex) team(rosterID int) (rosterTeam, bool) {
	t, found := idx.byRoster[rosterID]
	return t, found
}

func (idx *rosterIndex) teamName(rosterID int) string {
	if t, found := idx.byRoster[rosterID]; found {
		return t.name
	}
	return ""
}

// teamForOwner finds the team drafted for by a user id.
func (idx *rosterIndex) teamForOwner(ownerID string) string {
	if id, found := idx.ownerRoster[ownerID]; found {
		return idx.teamName(id)
	}
	return ""
}
