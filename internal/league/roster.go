package league

import (
	"fmt"

	"github.com/google/uuid"
)

// Position is a roster position group.
type Position string

const (
	QB Position = "QB"
	RB Position = "RB"
	WR Position = "WR"
	TE Position = "TE"
	OL Position = "OL"
	DL Position = "DL"
	LB Position = "LB"
	DB Position = "DB"
	K  Position = "K"
	P  Position = "P"
)

// OffensePositions and DefensePositions drive rating aggregation.
var (
	OffensePositions = []Position{QB, RB, WR, TE, OL}
	DefensePositions = []Position{DL, LB, DB}
)

// Player is a rostered player. The engine consumes players; it never
// creates or progresses them.
type Player struct {
	ID       uuid.UUID
	Name     string
	Position Position
	Overall  int
}

// Roster is a team's starters grouped by position.
type Roster map[Position][]*Player

// First returns the first starter at pos, or an error when the position is
// empty — an empty required position is a data-integrity violation the
// caller must guarantee against.
func (r Roster) First(pos Position) (*Player, error) {
	if len(r[pos]) == 0 {
		return nil, fmt.Errorf("roster has no starter at %s", pos)
	}
	return r[pos][0], nil
}

// RosterProvider supplies current starters for a team.
type RosterProvider interface {
	Starters(team *Team) (Roster, error)
}

// GameLog is one player's box-score line for one game.
type GameLog struct {
	GameID uuid.UUID
	Player *Player
	Team   *Team

	PassAttempts    int
	PassCompletions int
	PassYards       int
	PassTDs         int
	Interceptions   int

	RushAttempts int
	RushYards    int
	RushTDs      int

	Receptions int
	RecYards   int
	RecTDs     int

	FGMade     int
	FGAttempts int

	Punts     int
	PuntYards int
}

// CompletionPct returns pass completion percentage, 0 with no attempts.
func (l *GameLog) CompletionPct() float64 {
	if l.PassAttempts == 0 {
		return 0
	}
	return float64(l.PassCompletions) / float64(l.PassAttempts) * 100
}
