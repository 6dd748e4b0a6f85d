package league

import "github.com/google/uuid"

// Team is one program in the league. Scheduling quota counters and
// win/loss records live here; transient scheduling state does not.
type Team struct {
	ID         uuid.UUID
	Name       string
	Conference string // empty = independent

	Rating  int
	Offense int
	Defense int

	ConfGames    int
	ConfLimit    int
	NonConfGames int
	NonConfLimit int

	ConfWins      int
	ConfLosses    int
	NonConfWins   int
	NonConfLosses int
	TotalWins     int
	TotalLosses   int
	GamesPlayed   int

	Ranking  int // 1-based, smaller is better; 0 = unranked
	LastRank int

	StrengthOfRecord float64
	PollScore        float64
}

// Independent reports whether the team has no conference affiliation.
func (t *Team) Independent() bool { return t.Conference == "" }

// RecordWin updates the team's counters for a finished game. Category game
// counters advance here, at finalization, so that
// ConfGames+NonConfGames == GamesPlayed always holds for played games.
func (t *Team) RecordWin(conference bool) {
	if conference {
		t.ConfWins++
		t.ConfGames++
	} else {
		t.NonConfWins++
		t.NonConfGames++
	}
	t.TotalWins++
	t.GamesPlayed++
}

// RecordLoss updates the team's counters for a finished game.
func (t *Team) RecordLoss(conference bool) {
	if conference {
		t.ConfLosses++
		t.ConfGames++
	} else {
		t.NonConfLosses++
		t.NonConfGames++
	}
	t.TotalLosses++
	t.GamesPlayed++
}

// WinPct returns the team's overall win percentage, 0 if no games played.
func (t *Team) WinPct() float64 {
	if t.GamesPlayed == 0 {
		return 0
	}
	return float64(t.TotalWins) / float64(t.GamesPlayed)
}

// ConfWinPct returns the team's conference win percentage, 0 if no
// conference games played.
func (t *Team) ConfWinPct() float64 {
	played := t.ConfWins + t.ConfLosses
	if played == 0 {
		return 0
	}
	return float64(t.ConfWins) / float64(played)
}

// Conference groups teams and carries its championship game once scheduled.
type Conference struct {
	Name      string
	Teams     []*Team
	TitleGame *Game
}

// Champion returns the conference champion: the title game winner when the
// game has been played, otherwise the best team by conference record.
func (c *Conference) Champion() *Team {
	if c.TitleGame != nil && c.TitleGame.Winner != nil {
		return c.TitleGame.Winner
	}
	var best *Team
	for _, t := range c.Teams {
		if best == nil || t.ConfWinPct() > best.ConfWinPct() ||
			(t.ConfWinPct() == best.ConfWinPct() && t.Ranking != 0 && (best.Ranking == 0 || t.Ranking < best.Ranking)) {
			best = t
		}
	}
	return best
}
