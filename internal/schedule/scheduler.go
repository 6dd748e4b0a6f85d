// Package schedule assigns paired games to season weeks: no team twice in
// a week, fixed-week games honored, byes spread fairly. Infeasibility is a
// soft condition — the caller gets the best partial schedule plus warnings.
package schedule

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/gridironlabs/gridiron/internal/league"
)

// maxAttempts bounds the re-randomized retry loop.
const maxAttempts = 50

// Result is the output of week assignment.
type Result struct {
	Games      []*league.Game
	Unassigned []*league.Game
	Warnings   []string
	WeekLoad   map[int]int // games per week
}

// AssignWeeks places every unfixed game into one of weeks 1..weeks.
// Greedy most-constrained-first with bounded retries under fresh random
// tie-breaking; after the retry cap the best partial assignment is written
// back alongside an error the caller may treat as fatal or not.
func AssignWeeks(games []*league.Game, weeks int, seed int64) (*Result, error) {
	var best *assigner
	bestScore := math.MaxFloat64
	var bestFailure *assigner

	for attempt := 0; attempt < maxAttempts; attempt++ {
		rng := rand.New(rand.NewSource(seed + int64(attempt)))
		a := newAssigner(games, weeks)
		if a.run(rng) {
			score := a.softScore()
			if score < bestScore {
				bestScore = score
				best = a
			}
		} else if bestFailure == nil || len(a.assigned) > len(bestFailure.assigned) {
			bestFailure = a
		}
	}

	if best != nil {
		best.commit()
		return best.result(), nil
	}

	bestFailure.commit()
	res := bestFailure.result()
	res.Warnings = append(res.Warnings, fmt.Sprintf(
		"week assignment incomplete after %d attempts: %d of %d games unassigned",
		maxAttempts, len(res.Unassigned), len(games)))
	return res, fmt.Errorf("could not assign all %d games into %d weeks (%d left over)",
		len(games), weeks, len(res.Unassigned))
}

// PlaceGame pins a single game to a week, the path used for championship
// and playoff fixtures.
func PlaceGame(g *league.Game, week int) {
	g.WeekPlayed = week
	g.FixedWeek = true
}

type teamWeek struct {
	team *league.Team
	week int
}

type assigner struct {
	games    []*league.Game
	weeks    int
	busy     map[teamWeek]bool
	weekLoad map[int]int
	assigned map[*league.Game]int
	leftover []*league.Game
	warnings []string
}

func newAssigner(games []*league.Game, weeks int) *assigner {
	return &assigner{
		games:    games,
		weeks:    weeks,
		busy:     make(map[teamWeek]bool),
		weekLoad: make(map[int]int),
		assigned: make(map[*league.Game]int),
	}
}

func (a *assigner) run(rng *rand.Rand) bool {
	var remaining []*league.Game
	for _, g := range a.games {
		if g.FixedWeek && g.WeekPlayed > 0 {
			a.place(g, g.WeekPlayed, true)
			continue
		}
		remaining = append(remaining, g)
	}
	rng.Shuffle(len(remaining), func(i, j int) {
		remaining[i], remaining[j] = remaining[j], remaining[i]
	})

	for len(remaining) > 0 {
		// Most constrained first: the game with the fewest legal weeks.
		pickIdx := -1
		var pickWeeks []int
		for i, g := range remaining {
			legal := a.legalWeeks(g)
			if pickIdx < 0 || len(legal) < len(pickWeeks) {
				pickIdx = i
				pickWeeks = legal
			}
		}
		if len(pickWeeks) == 0 {
			a.leftover = remaining
			return false
		}

		g := remaining[pickIdx]
		remaining = append(remaining[:pickIdx], remaining[pickIdx+1:]...)

		// Deprioritize crowded weeks to spread the load.
		bestWeek := pickWeeks[0]
		for _, w := range pickWeeks[1:] {
			if a.weekLoad[w] < a.weekLoad[bestWeek] {
				bestWeek = w
			}
		}
		a.place(g, bestWeek, false)
	}
	return true
}

func (a *assigner) legalWeeks(g *league.Game) []int {
	var legal []int
	for w := 1; w <= a.weeks; w++ {
		if a.busy[teamWeek{g.TeamA, w}] || a.busy[teamWeek{g.TeamB, w}] {
			continue
		}
		legal = append(legal, w)
	}
	return legal
}

func (a *assigner) place(g *league.Game, week int, fixed bool) {
	if fixed && (a.busy[teamWeek{g.TeamA, week}] || a.busy[teamWeek{g.TeamB, week}]) {
		a.warnings = append(a.warnings, fmt.Sprintf(
			"fixed-week game %s double-books a team in week %d", g, week))
	}
	a.assigned[g] = week
	a.busy[teamWeek{g.TeamA, week}] = true
	a.busy[teamWeek{g.TeamB, week}] = true
	a.weekLoad[week]++
}

// softScore is lower for better-balanced schedules: the spread between the
// heaviest and lightest week.
func (a *assigner) softScore() float64 {
	maxLoad, minLoad := 0, math.MaxInt
	for w := 1; w <= a.weeks; w++ {
		load := a.weekLoad[w]
		if load > maxLoad {
			maxLoad = load
		}
		if load < minLoad {
			minLoad = load
		}
	}
	return float64(maxLoad - minLoad)
}

// commit writes the provisional assignment onto the games.
func (a *assigner) commit() {
	for g, w := range a.assigned {
		g.WeekPlayed = w
	}
}

func (a *assigner) result() *Result {
	return &Result{
		Games:      a.games,
		Unassigned: a.leftover,
		Warnings:   a.warnings,
		WeekLoad:   a.weekLoad,
	}
}
