// Package odds precomputes betting lines by self-play: for each rating gap
// it simulates many games between synthetic teams differing only by that
// gap and derives spread, win probability, and moneylines from the results.
package odds

import (
	"fmt"
	"math"

	"github.com/gridironlabs/gridiron/internal/league"
	"github.com/gridironlabs/gridiron/internal/ratings"
	"github.com/gridironlabs/gridiron/internal/sim"
)

// Entry is the precomputed line for one non-negative rating gap.
type Entry struct {
	Gap               int
	FavoredSpread     float64 // negative (laying points)
	UnderdogSpread    float64
	FavoredWinProb    float64
	UnderdogWinProb   float64
	FavoredMoneyline  int
	UnderdogMoneyline int
}

// Table maps rating gap to line. Built once per season batch.
type Table struct {
	entries []Entry
}

const (
	houseTax  = 0.02
	probFloor = 0.02
	baseline  = 70 // underdog rating used in self-play
)

// Build runs the self-play simulation for gaps 0..maxGap at the given
// trial count. Expensive; intended to run once at batch start.
func Build(p *sim.Params, maxGap, trials int, seed uint64) (*Table, error) {
	if maxGap < 0 || trials <= 0 {
		return nil, fmt.Errorf("odds table needs maxGap >= 0 and trials > 0, got %d/%d", maxGap, trials)
	}

	t := &Table{entries: make([]Entry, 0, maxGap+1)}
	for gap := 0; gap <= maxGap; gap++ {
		entry, err := simulateGap(p, gap, trials, seed+uint64(gap))
		if err != nil {
			return nil, err
		}
		t.entries = append(t.entries, entry)
	}
	return t, nil
}

func simulateGap(p *sim.Params, gap, trials int, seed uint64) (Entry, error) {
	provider := ratings.NewStaticProvider()
	favored := &league.Team{Name: "Favored", Rating: baseline + gap, Offense: baseline + gap, Defense: baseline + gap}
	underdog := &league.Team{Name: "Underdog", Rating: baseline, Offense: baseline, Defense: baseline}
	if err := provider.Add(favored.Name, ratings.Synthetic(favored.Name, favored.Rating)); err != nil {
		return Entry{}, err
	}
	if err := provider.Add(underdog.Name, ratings.Synthetic(underdog.Name, underdog.Rating)); err != nil {
		return Entry{}, err
	}

	simulator := sim.New(p, provider, seed)
	wins := 0
	marginSum := 0
	for i := 0; i < trials; i++ {
		g := league.NewGame(favored, underdog, 0)
		if _, err := simulator.SimulateGame(g); err != nil {
			return Entry{}, fmt.Errorf("self-play for gap %d: %w", gap, err)
		}
		if g.Winner == favored {
			wins++
		}
		marginSum += g.ScoreA - g.ScoreB
	}

	spread := roundHalf(float64(marginSum) / float64(trials))
	favProb := clampProb(float64(wins)/float64(trials) + houseTax)
	dogProb := clampProb(1 - float64(wins)/float64(trials) + houseTax)

	return Entry{
		Gap:               gap,
		FavoredSpread:     -spread,
		UnderdogSpread:    spread,
		FavoredWinProb:    favProb,
		UnderdogWinProb:   dogProb,
		FavoredMoneyline:  Moneyline(favProb),
		UnderdogMoneyline: Moneyline(dogProb),
	}, nil
}

// Lookup returns the line for a rating gap, clamped into the built range.
func (t *Table) Lookup(gap int) Entry {
	if gap < 0 {
		gap = -gap
	}
	if gap >= len(t.entries) {
		gap = len(t.entries) - 1
	}
	return t.entries[gap]
}

// Assign stamps the pre-game lines on an unplayed game from the two
// teams' current ratings.
func (t *Table) Assign(g *league.Game) {
	e := t.Lookup(g.TeamA.Rating - g.TeamB.Rating)
	fav := league.Line{Spread: e.FavoredSpread, Moneyline: e.FavoredMoneyline, WinProb: e.FavoredWinProb}
	dog := league.Line{Spread: e.UnderdogSpread, Moneyline: e.UnderdogMoneyline, WinProb: e.UnderdogWinProb}
	if g.TeamA.Rating >= g.TeamB.Rating {
		g.LineA, g.LineB = fav, dog
	} else {
		g.LineA, g.LineB = dog, fav
	}
}

// Moneyline converts a win probability to American odds.
func Moneyline(prob float64) int {
	if prob >= 0.5 {
		return -int(math.Round(prob / (1 - prob) * 100))
	}
	return int(math.Round((1 - prob) / prob * 100))
}

func roundHalf(v float64) float64 {
	return math.Round(v*2) / 2
}

func clampProb(p float64) float64 {
	return math.Min(1-probFloor, math.Max(probFloor, p))
}
