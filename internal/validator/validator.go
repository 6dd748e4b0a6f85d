// Package validator checks a generated season against its hard and soft
// constraints. Hard breaks are errors; balance issues are warnings.
package validator

import (
	"fmt"
	"math"

	"github.com/gridironlabs/gridiron/internal/league"
)

// Violation represents a constraint violation found during validation.
type Violation struct {
	Type    string // "error" or "warning"
	Message string
}

// Validate checks the season's games for the given teams. weeks is the
// regular-season length; games beyond it (championships, playoffs) are
// exempt from quota accounting.
func Validate(teams []*league.Team, games []*league.Game, weeks int) []Violation {
	var violations []Violation

	violations = append(violations, checkQuotas(teams, games, weeks)...)
	violations = append(violations, checkDoubleBooking(games)...)
	violations = append(violations, checkTerminality(games)...)
	violations = append(violations, checkUnscheduled(games)...)
	violations = append(violations, checkByeBalance(teams, games, weeks)...)

	return violations
}

func checkQuotas(teams []*league.Team, games []*league.Game, weeks int) []Violation {
	var violations []Violation
	for _, t := range teams {
		conf, nonConf := 0, 0
		for _, g := range games {
			if g.WeekPlayed < 1 || g.WeekPlayed > weeks || !g.Has(t) {
				continue
			}
			if g.Conference {
				conf++
			} else {
				nonConf++
			}
		}
		if conf != t.ConfLimit {
			violations = append(violations, Violation{
				Type: "error",
				Message: fmt.Sprintf("%s has %d conference games, quota is %d",
					t.Name, conf, t.ConfLimit),
			})
		}
		if nonConf != t.NonConfLimit {
			violations = append(violations, Violation{
				Type: "error",
				Message: fmt.Sprintf("%s has %d non-conference games, quota is %d",
					t.Name, nonConf, t.NonConfLimit),
			})
		}
	}
	return violations
}

func checkDoubleBooking(games []*league.Game) []Violation {
	type teamWeek struct {
		team *league.Team
		week int
	}
	seen := make(map[teamWeek]int)
	for _, g := range games {
		if g.WeekPlayed == 0 {
			continue
		}
		seen[teamWeek{g.TeamA, g.WeekPlayed}]++
		seen[teamWeek{g.TeamB, g.WeekPlayed}]++
	}
	var violations []Violation
	for tw, n := range seen {
		if n > 1 {
			violations = append(violations, Violation{
				Type:    "error",
				Message: fmt.Sprintf("%s plays %d games in week %d", tw.team.Name, n, tw.week),
			})
		}
	}
	return violations
}

func checkTerminality(games []*league.Game) []Violation {
	var violations []Violation
	for _, g := range games {
		if !g.Played {
			if g.Winner != nil {
				violations = append(violations, Violation{
					Type:    "error",
					Message: fmt.Sprintf("unplayed game %s has a winner", g),
				})
			}
			continue
		}
		switch {
		case g.Winner == nil:
			violations = append(violations, Violation{
				Type:    "error",
				Message: fmt.Sprintf("played game %s has no winner", g),
			})
		case g.ScoreA == g.ScoreB:
			violations = append(violations, Violation{
				Type:    "error",
				Message: fmt.Sprintf("played game %s ended tied", g),
			})
		case (g.ScoreA > g.ScoreB) != (g.Winner == g.TeamA):
			violations = append(violations, Violation{
				Type:    "error",
				Message: fmt.Sprintf("game %s: winner does not match score", g),
			})
		}
	}
	return violations
}

func checkUnscheduled(games []*league.Game) []Violation {
	n := 0
	for _, g := range games {
		if g.WeekPlayed == 0 {
			n++
		}
	}
	if n == 0 {
		return nil
	}
	return []Violation{{
		Type:    "warning",
		Message: fmt.Sprintf("%d games have no week assigned", n),
	}}
}

func checkByeBalance(teams []*league.Team, games []*league.Game, weeks int) []Violation {
	if len(teams) == 0 {
		return nil
	}
	minGames, maxGames := math.MaxInt, 0
	for _, t := range teams {
		n := 0
		for _, g := range games {
			if g.WeekPlayed >= 1 && g.WeekPlayed <= weeks && g.Has(t) {
				n++
			}
		}
		if n < minGames {
			minGames = n
		}
		if n > maxGames {
			maxGames = n
		}
	}
	if maxGames-minGames > 1 {
		return []Violation{{
			Type: "warning",
			Message: fmt.Sprintf("regular-season game counts are uneven: min %d, max %d",
				minGames, maxGames),
		}}
	}
	return nil
}
