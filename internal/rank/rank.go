// Package rank orders teams by schedule-adjusted resume with poll-inertia
// smoothing. The math is deterministic: the same inputs always produce the
// same ordering.
package rank

import (
	"math"
	"sort"

	"github.com/gridironlabs/gridiron/internal/league"
)

// Params tunes the resume and inertia math.
type Params struct {
	// Asymmetric exponents: a win over a good team is worth more than a
	// loss to the same team costs, so playing tough schedules pays.
	WinExponent  float64
	LossExponent float64

	// Inertia factors by last result, pulling a team toward its previous
	// rank. Decays linearly to zero at the final ranked week.
	WinInertia  float64
	LossInertia float64
}

func DefaultParams() *Params {
	return &Params{
		WinExponent:  1.28,
		LossExponent: 0.97,
		WinInertia:   0.75,
		LossInertia:  0.25,
	}
}

// Engine ranks teams week over week.
type Engine struct {
	p          *Params
	totalWeeks int // ranked weeks in the season, for inertia decay
}

func New(p *Params, totalRankedWeeks int) *Engine {
	if p == nil {
		p = DefaultParams()
	}
	return &Engine{p: p, totalWeeks: totalRankedWeeks}
}

// Preseason seeds the initial rankings from raw team ratings.
func (e *Engine) Preseason(teams []*league.Team) {
	sorted := make([]*league.Team, len(teams))
	copy(sorted, teams)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Rating != sorted[j].Rating {
			return sorted[i].Rating > sorted[j].Rating
		}
		return sorted[i].Name < sorted[j].Name
	})
	for i, t := range sorted {
		t.Ranking = i + 1
		t.LastRank = i + 1
	}
}

// Update folds one week's completed games into every team's resume and
// re-ranks. week is the current ranked week (1-based); on the final ranked
// week the inertia term is dropped entirely. championship, when played,
// overrides the top two slots: its winner is #1 and its loser #2 no matter
// what the resume math says.
func (e *Engine) Update(teams []*league.Team, completed []*league.Game, week int, championship *league.Game) {
	won := make(map[*league.Team]bool)
	lost := make(map[*league.Team]bool)

	for _, g := range completed {
		if !g.Played || g.Winner == nil {
			continue
		}
		loser := g.Loser()
		g.Winner.StrengthOfRecord += math.Pow(float64(loser.Rating), e.p.WinExponent)
		loser.StrengthOfRecord += math.Pow(float64(g.Winner.Rating), e.p.LossExponent)
		won[g.Winner] = true
		lost[loser] = true
	}

	final := week >= e.totalWeeks
	weeksRemaining := e.totalWeeks - week
	if weeksRemaining < 0 {
		weeksRemaining = 0
	}

	for _, t := range teams {
		score := 0.0
		if t.GamesPlayed > 0 {
			score = t.StrengthOfRecord / float64(t.GamesPlayed)
		}
		if !final {
			factor := e.p.WinInertia // byes keep the benefit of the doubt
			if lost[t] {
				factor = e.p.LossInertia
			}
			prev := t.Ranking
			if prev == 0 {
				prev = len(teams)
			}
			score += factor * float64(len(teams)-prev) *
				float64(weeksRemaining) / float64(e.totalWeeks)
		}
		t.PollScore = score
	}

	sorted := make([]*league.Team, len(teams))
	copy(sorted, teams)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })

	// A decided national championship is authoritative for the top two.
	if championship != nil && championship.Played && championship.Winner != nil {
		winner, loser := championship.Winner, championship.Loser()
		rest := make([]*league.Team, 0, len(sorted))
		for _, t := range sorted {
			if t != winner && t != loser {
				rest = append(rest, t)
			}
		}
		sorted = append([]*league.Team{winner, loser}, rest...)
	}

	for i, t := range sorted {
		t.LastRank = t.Ranking
		t.Ranking = i + 1
	}
}

func less(a, b *league.Team) bool {
	if a.PollScore != b.PollScore {
		return a.PollScore > b.PollScore
	}
	if a.Rating != b.Rating {
		return a.Rating > b.Rating
	}
	return a.Name < b.Name
}
