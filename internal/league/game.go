package league

import (
	"fmt"

	"github.com/google/uuid"
)

// Line is one side's pre-game betting line.
type Line struct {
	Spread    float64
	Moneyline int
	WinProb   float64
}

// Game is a single matchup. TeamA/TeamB ordering is arbitrary; Home is set
// only for games with a home-field edge (nil on neutral sites). A game is
// created unplayed and mutated to its terminal state exactly once.
type Game struct {
	ID    uuid.UUID
	Name  string // "Rivalry: ...", "SEC Championship", "Semifinal", ...
	Year  int
	TeamA *Team
	TeamB *Team
	Home  *Team // nil = neutral site

	WeekPlayed int // 0 = unscheduled
	Conference bool
	FixedWeek  bool // pre-seeded week, week assignment must not move it

	LineA Line
	LineB Line
	RankA int // ranking snapshots taken when the game is finalized
	RankB int

	Played bool
	ScoreA int
	ScoreB int
	Winner *Team
}

// NewGame creates an unplayed game between two teams.
func NewGame(a, b *Team, year int) *Game {
	return &Game{
		ID:         uuid.New(),
		Year:       year,
		TeamA:      a,
		TeamB:      b,
		Conference: a.Conference != "" && a.Conference == b.Conference,
	}
}

// Opponent returns the other participant, or nil if t is not in the game.
func (g *Game) Opponent(t *Team) *Team {
	switch t {
	case g.TeamA:
		return g.TeamB
	case g.TeamB:
		return g.TeamA
	}
	return nil
}

// Has reports whether t participates in the game.
func (g *Game) Has(t *Team) bool { return t == g.TeamA || t == g.TeamB }

// Loser returns the losing team of a played game, nil otherwise.
func (g *Game) Loser() *Team {
	if !g.Played || g.Winner == nil {
		return nil
	}
	return g.Opponent(g.Winner)
}

// Score returns (offense score, defense score) from off's point of view.
func (g *Game) Score(off *Team) (int, int) {
	if off == g.TeamA {
		return g.ScoreA, g.ScoreB
	}
	return g.ScoreB, g.ScoreA
}

func (g *Game) String() string {
	if g.Played {
		return fmt.Sprintf("%s %d - %d %s (week %d)", g.TeamA.Name, g.ScoreA, g.ScoreB, g.TeamB.Name, g.WeekPlayed)
	}
	return fmt.Sprintf("%s vs %s (week %d)", g.TeamA.Name, g.TeamB.Name, g.WeekPlayed)
}

// DriveResult is the terminal outcome of a possession.
type DriveResult int

const (
	DriveNone DriveResult = iota
	DriveTouchdown
	DriveFieldGoal
	DriveMissedFieldGoal
	DrivePunt
	DriveDowns
	DriveInterception
	DriveFumble
	DriveSafety
)

func (r DriveResult) String() string {
	switch r {
	case DriveTouchdown:
		return "touchdown"
	case DriveFieldGoal:
		return "field goal"
	case DriveMissedFieldGoal:
		return "missed field goal"
	case DrivePunt:
		return "punt"
	case DriveDowns:
		return "turnover on downs"
	case DriveInterception:
		return "interception"
	case DriveFumble:
		return "fumble"
	case DriveSafety:
		return "safety"
	}
	return "unknown"
}

// Turnover reports whether the result hands the ball over in place
// (the next offense starts at the mirrored field position).
func (r DriveResult) Turnover() bool {
	switch r {
	case DriveDowns, DriveInterception, DriveFumble, DriveMissedFieldGoal:
		return true
	}
	return false
}

// Drive is one continuous possession within a game.
type Drive struct {
	ID      uuid.UUID
	GameID  uuid.UUID
	Num     int // 0-based order within the game
	Offense *Team
	Defense *Team
	StartFP int // yards from the offense's own goal line
	Result  DriveResult
	Points  int
	// Score snapshot immediately after the drive, from the offense's side.
	ScoreOff int
	ScoreDef int
}

// PlayType is the called play.
type PlayType int

const (
	PlayRun PlayType = iota
	PlayPass
	PlayFieldGoal
	PlayPunt
)

func (p PlayType) String() string {
	switch p {
	case PlayRun:
		return "run"
	case PlayPass:
		return "pass"
	case PlayFieldGoal:
		return "field goal"
	case PlayPunt:
		return "punt"
	}
	return "unknown"
}

// PlayOutcome is what actually happened on the snap.
type PlayOutcome int

const (
	OutRush PlayOutcome = iota
	OutFumble
	OutComplete
	OutIncomplete
	OutSack
	OutInterception
	OutTouchdown
	OutSafety
	OutFieldGoalMade
	OutFieldGoalMissed
	OutPunt
)

func (o PlayOutcome) String() string {
	switch o {
	case OutRush:
		return "rush"
	case OutFumble:
		return "fumble"
	case OutComplete:
		return "complete"
	case OutIncomplete:
		return "incomplete"
	case OutSack:
		return "sack"
	case OutInterception:
		return "interception"
	case OutTouchdown:
		return "touchdown"
	case OutSafety:
		return "safety"
	case OutFieldGoalMade:
		return "field goal made"
	case OutFieldGoalMissed:
		return "field goal missed"
	case OutPunt:
		return "punt"
	}
	return "unknown"
}

// Play is a single snap. Insertion order is chronological order.
type Play struct {
	ID      uuid.UUID
	GameID  uuid.UUID
	DriveID uuid.UUID

	Down          int
	Distance      int
	FieldPosition int
	Type          PlayType
	Outcome       PlayOutcome
	Yards         int

	Passer   *Player
	Rusher   *Player
	Receiver *Player
	Kicker   *Player
	Punter   *Player

	// Score snapshot at the moment the play resolved, offense's side.
	ScoreOff int
	ScoreDef int
}
