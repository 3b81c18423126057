package sleeper

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Praneshv25/KMSFL-Data/model"
)

// sleeperPlayer is an entry of the /v1/players/nfl dump. Only the fields
// needed to resolve names are decoded.
type sleeperPlayer struct {
	ID        string `json:"player_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	Position  string `json:"position"`
	Team      string `json:"team"`
	Active    bool   `json:"active"`
}

func (p *sleeperPlayer) isInvalid() bool {
	return p.FirstName == "Player" && p.LastName == "Invalid"
}

func (p *sleeperPlayer) toPlayerInfo(id string) model.PlayerInfo {
	if p.ID != "" {
		id = p.ID
	}

	pos := model.ParsePosition(p.Position)
	if pos == model.POS_DST || model.IsDefenseID(id) {
		return defense(id)
	}

	position := string(pos)
	if pos == model.POS_UNKNOWN && p.Position != "" {
		position = strings.ToUpper(p.Position)
	}

	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name == "" {
		name = strings.TrimSpace(p.FullName)
	}
	if name == "" {
		name = id
	}

	return model.PlayerInfo{
		ID:       id,
		Name:     name,
		Position: position,
		Team:     p.Team,
	}
}

// LoadDirectory parses a players/nfl dump.
func LoadDirectory(r io.Reader) (Directory, error) {
	var parsed map[string]sleeperPlayer
	if err := json.NewDecoder(r).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("error parsing player directory: %w", err)
	}

	dir := make(Directory, len(parsed))
	for id, p := range parsed {
		if p.isInvalid() {
			continue
		}
		info := p.toPlayerInfo(id)
		dir[info.ID] = info
	}
	return dir, nil
}
