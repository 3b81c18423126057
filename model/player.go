package model

import (
	"regexp"
	"strings"
)

// PlayerInfo is an entry in the player directory used to resolve the
// opaque player ids found in modern platform exports.
type PlayerInfo struct {
	ID       string
	Name     string
	Position string
	Team     string
}

var parentheticalSuffix = regexp.MustCompile(`\s*\([^()]*\)\s*$`)

// CleanPlayerName removes a trailing parenthetical, so "Ja'Marr Chase (CIN WR)"
// becomes "Ja'Marr Chase".
func CleanPlayerName(name string) string {
	return strings.TrimSpace(parentheticalSuffix.ReplaceAllString(name, ""))
}
