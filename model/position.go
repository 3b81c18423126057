package model

import (
	"strings"
)

type Position string

const (
	POS_UNKNOWN Position = "N/A"
	POS_QB      Position = "QB"
	POS_RB      Position = "RB"
	POS_WR      Position = "WR"
	POS_TE      Position = "TE"
	POS_FLEX    Position = "FLEX"
	POS_DST     Position = "D/ST"
	POS_K       Position = "K"
	POS_BENCH   Position = "Bench"
)

// ParsePosition maps the spellings used by the different platforms onto a
// canonical position. Anything unrecognized is POS_UNKNOWN.
func ParsePosition(pos string) Position {
	pos = strings.ToLower(strings.TrimSpace(pos))
	switch pos {
	case "qb":
		return POS_QB
	case "rb":
		return POS_RB
	case "wr":
		return POS_WR
	case "te":
		return POS_TE
	case "flex", "w/r/t", "rb/wr/te":
		return POS_FLEX
	case "d/st", "dst", "def":
		return POS_DST
	case "k":
		return POS_K
	case "bench", "bn":
		return POS_BENCH
	default:
		return POS_UNKNOWN
	}
}

var slotPriority = map[Position]int{
	POS_QB:   0,
	POS_RB:   1,
	POS_WR:   2,
	POS_TE:   3,
	POS_FLEX: 4,
	POS_DST:  5,
	POS_K:    6,
}

// SlotPriority orders lineup slots QB, RB, WR, TE, FLEX, D/ST, K with every
// other position sorting after K.
func SlotPriority(pos string) int {
	if p, found := slotPriority[ParsePosition(pos)]; found {
		return p
	}
	return len(slotPriority)
}
