// Package strategy generates a season's matchups: who plays whom, under
// per-team conference and non-conference quotas. Week assignment is a
// separate pass in the schedule package.
package strategy

import (
	"fmt"
	"math/rand"

	"github.com/gridironlabs/gridiron/internal/league"
)

// Rivalry is a pre-seeded fixture, optionally pinned to a week.
type Rivalry struct {
	A    *league.Team
	B    *league.Team
	Week int // 0 = no preferred week
	Name string
}

// Matchups is the output of pairing: unscheduled games plus any quota
// shortfalls that could not be paired (soft failures).
type Matchups struct {
	Games    []*league.Game
	Warnings []string
}

// Strategy generates the list of matchups for a season.
type Strategy interface {
	GenerateMatchups(teams []*league.Team, rivalries []Rivalry, year int, rng *rand.Rand) *Matchups
}

// Get returns a Strategy by name.
func Get(name string) (Strategy, error) {
	switch name {
	case "quota_slack":
		return &QuotaSlack{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy: %q", name)
	}
}

// QuotaSlack pairs most-constrained teams first. A team's slack is the
// number of valid remaining opponents minus the games it still needs;
// pairing the lowest-slack team against its own lowest-slack opponent
// avoids the dead ends a random pairing order runs into.
type QuotaSlack struct{}

// teamState is scheduling scratch kept out of the long-lived Team entity.
type teamState struct {
	team        *league.Team
	needConf    int
	needNonConf int
	opponents   map[*league.Team]bool
	scheduled   int
}

func (ts *teamState) need(conference bool) int {
	if conference {
		return ts.needConf
	}
	return ts.needNonConf
}

func (ts *teamState) take(conference bool) {
	if conference {
		ts.needConf--
	} else {
		ts.needNonConf--
	}
	ts.scheduled++
}

func (s *QuotaSlack) GenerateMatchups(teams []*league.Team, rivalries []Rivalry, year int, rng *rand.Rand) *Matchups {
	states := make(map[*league.Team]*teamState, len(teams))
	order := make([]*teamState, 0, len(teams))
	for _, t := range teams {
		ts := &teamState{
			team:        t,
			needConf:    t.ConfLimit,
			needNonConf: t.NonConfLimit,
			opponents:   make(map[*league.Team]bool),
		}
		states[t] = ts
		order = append(order, ts)
	}

	m := &Matchups{}

	// Rivalries come off the top so the constrained pairing only fills in
	// the remainder.
	for _, r := range rivalries {
		a, b := states[r.A], states[r.B]
		if a == nil || b == nil {
			m.Warnings = append(m.Warnings, fmt.Sprintf("rivalry %q references an unknown team", r.Name))
			continue
		}
		conference := r.A.Conference != "" && r.A.Conference == r.B.Conference
		if a.need(conference) <= 0 || b.need(conference) <= 0 {
			m.Warnings = append(m.Warnings, fmt.Sprintf("rivalry %q exceeds a team's quota, skipped", r.Name))
			continue
		}
		g := league.NewGame(r.A, r.B, year)
		g.Name = r.Name
		if r.Week > 0 {
			g.WeekPlayed = r.Week
			g.FixedWeek = true
		}
		s.setHome(g, rng)
		a.take(conference)
		b.take(conference)
		a.opponents[r.B] = true
		b.opponents[r.A] = true
		m.Games = append(m.Games, g)
	}

	s.pairCategory(order, true, year, rng, m)
	s.pairCategory(order, false, year, rng, m)
	return m
}

// pairCategory runs the greedy most-constrained-first loop for one game
// category until every quota is met or provably unmeetable.
func (s *QuotaSlack) pairCategory(order []*teamState, conference bool, year int, rng *rand.Rand, m *Matchups) {
	for {
		// Shuffle so metric ties break differently run to run.
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		var pick *teamState
		pickSlack := 0
		for _, ts := range order {
			if ts.need(conference) <= 0 {
				continue
			}
			slack := len(s.validOpponents(ts, order, conference)) - ts.need(conference)
			if pick == nil || slack < pickSlack ||
				(slack == pickSlack && ts.scheduled < pick.scheduled) {
				pick = ts
				pickSlack = slack
			}
		}
		if pick == nil {
			return
		}

		opps := s.validOpponents(pick, order, conference)
		if len(opps) == 0 {
			m.Warnings = append(m.Warnings, fmt.Sprintf(
				"%s has no legal %s opponents left (%d games short)",
				pick.team.Name, category(conference), pick.need(conference)))
			if conference {
				pick.needConf = 0
			} else {
				pick.needNonConf = 0
			}
			continue
		}

		var opp *teamState
		oppSlack := 0
		for _, o := range opps {
			slack := len(s.validOpponents(o, order, conference)) - o.need(conference)
			if opp == nil || slack < oppSlack ||
				(slack == oppSlack && o.scheduled < opp.scheduled) {
				opp = o
				oppSlack = slack
			}
		}

		g := league.NewGame(pick.team, opp.team, year)
		s.setHome(g, rng)
		pick.take(conference)
		opp.take(conference)
		pick.opponents[opp.team] = true
		opp.opponents[pick.team] = true
		m.Games = append(m.Games, g)
	}
}

func (s *QuotaSlack) validOpponents(ts *teamState, order []*teamState, conference bool) []*teamState {
	var valid []*teamState
	for _, o := range order {
		if o == ts || o.need(conference) <= 0 || ts.opponents[o.team] {
			continue
		}
		sameConf := ts.team.Conference != "" && ts.team.Conference == o.team.Conference
		if conference != sameConf {
			continue
		}
		valid = append(valid, o)
	}
	return valid
}

func (s *QuotaSlack) setHome(g *league.Game, rng *rand.Rand) {
	if rng.Intn(2) == 0 {
		g.Home = g.TeamA
	} else {
		g.Home = g.TeamB
	}
}

func category(conference bool) string {
	if conference {
		return "conference"
	}
	return "non-conference"
}
