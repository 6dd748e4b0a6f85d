// Package sim is the possession-level game simulator: alternating drives
// with correct down/distance/field-position bookkeeping, a 4th-down
// decision table, a banded field-goal curve, and paired-possession
// overtime. All randomness flows through an injected seeded source.
package sim

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/gridironlabs/gridiron/internal/league"
)

// Simulator simulates games to their terminal state.
type Simulator struct {
	p       *Params
	rosters league.RosterProvider
	rng     *rand.Rand
	src     rand.Source
}

// New builds a Simulator with an explicit seed so batch runs are
// reproducible.
func New(p *Params, rosters league.RosterProvider, seed uint64) *Simulator {
	if p == nil {
		p = DefaultParams()
	}
	src := rand.NewPCG(seed, 0x6772696469726f6e)
	return &Simulator{
		p:       p,
		rosters: rosters,
		rng:     rand.New(src),
		src:     src,
	}
}

func (s *Simulator) normal(mu, sigma float64) float64 {
	return distuv.Normal{Mu: mu, Sigma: sigma, Src: s.src}.Rand()
}

type side struct {
	team   *league.Team
	roster league.Roster
	score  int
}

type gameState struct {
	g     *league.Game
	a, b  side
	batch *league.Batch
	logs  map[*league.Player]*league.GameLog
	bonus int // home-field rating bonus, 0 on neutral sites
}

// advantage is the offense-vs-defense rating gap the yardage means shift by.
func (st *gameState) advantage(off, def *side) float64 {
	offRating := off.team.Offense
	defRating := def.team.Defense
	if st.g.Home == off.team {
		offRating += st.bonus
	}
	if st.g.Home == def.team {
		defRating += st.bonus
	}
	return float64(offRating - defRating)
}

func (st *gameState) log(team *league.Team, p *league.Player) *league.GameLog {
	if l, ok := st.logs[p]; ok {
		return l
	}
	l := &league.GameLog{GameID: st.g.ID, Player: p, Team: team}
	st.logs[p] = l
	st.batch.Logs = append(st.batch.Logs, l)
	return l
}

// requiredPositions must be non-empty for box-score attribution to work.
var requiredPositions = []league.Position{
	league.QB, league.RB, league.WR, league.TE, league.K, league.P,
}

// SimulateGame plays an unplayed game to completion, mutating it to its
// terminal state and returning the drives, plays, and box-score logs it
// produced. Overtime guarantees a winner.
func (s *Simulator) SimulateGame(g *league.Game) (*league.Batch, error) {
	if g.Played {
		return nil, fmt.Errorf("game %s has already been played", g)
	}

	rosterA, err := s.starters(g.TeamA)
	if err != nil {
		return nil, err
	}
	rosterB, err := s.starters(g.TeamB)
	if err != nil {
		return nil, err
	}

	st := &gameState{
		g:     g,
		a:     side{team: g.TeamA, roster: rosterA},
		b:     side{team: g.TeamB, roster: rosterB},
		batch: &league.Batch{},
		logs:  make(map[*league.Player]*league.GameLog),
	}
	if g.Home != nil {
		st.bonus = s.p.HomeFieldBonus
	}

	total := s.p.RegulationPossessions * 2
	off, def := &st.a, &st.b
	fp := s.p.KickoffFieldPos

	for i := 0; i < total; i++ {
		if i == 0 || i == s.p.RegulationPossessions {
			// Opening possession of a half.
			fp = s.p.KickoffFieldPos
		}
		remaining := (total - i + 1) / 2
		pn := pointsNeeded(off.score, def.score, remaining)
		_, next := s.simulateDrive(st, off, def, fp, i, pn)
		fp = next
		off, def = def, off
	}

	driveNum := total
	for st.a.score == st.b.score {
		// One possession each from midfield; periods repeat until a
		// period ends with the scores apart.
		for _, pair := range [][2]*side{{&st.a, &st.b}, {&st.b, &st.a}} {
			o, d := pair[0], pair[1]
			pn := pointsNeeded(o.score, d.score, 1)
			s.simulateDrive(st, o, d, s.p.OvertimeFieldPos, driveNum, pn)
			driveNum++
		}
	}

	s.finalize(st)
	return st.batch, nil
}

func (s *Simulator) starters(t *league.Team) (league.Roster, error) {
	r, err := s.rosters.Starters(t)
	if err != nil {
		return nil, fmt.Errorf("looking up starters: %w", err)
	}
	for _, pos := range requiredPositions {
		if _, err := r.First(pos); err != nil {
			return nil, fmt.Errorf("team %s: %w", t.Name, err)
		}
	}
	return r, nil
}

func (s *Simulator) finalize(st *gameState) {
	g := st.g
	g.ScoreA = st.a.score
	g.ScoreB = st.b.score
	g.RankA = st.a.team.Ranking
	g.RankB = st.b.team.Ranking
	g.Played = true

	if g.ScoreA > g.ScoreB {
		g.Winner = g.TeamA
	} else {
		g.Winner = g.TeamB
	}
	g.Winner.RecordWin(g.Conference)
	g.Opponent(g.Winner).RecordLoss(g.Conference)
}

// pointsNeeded picks the smallest score value that keeps the deficit
// closeable given the offense's remaining possessions at 8 points apiece.
// Zero when not trailing. It biases 4th-down aggression only.
func pointsNeeded(offScore, defScore, remaining int) int {
	deficit := defScore - offScore
	if deficit <= 0 {
		return 0
	}
	for _, v := range []int{3, 6, 7, 8} {
		if deficit-v <= 8*(remaining-1) {
			return v
		}
	}
	return 8
}
