package ratings

import (
	"fmt"
	"math"

	"github.com/gridironlabs/gridiron/internal/league"
)

// Position weights for aggregate ratings. The weights within each side of
// the ball sum to 1 so a fully-stocked roster maps a 0-100 player scale
// onto a 0-100 team scale.
var (
	offenseWeights = map[league.Position]float64{
		league.QB: 0.30,
		league.RB: 0.15,
		league.WR: 0.20,
		league.TE: 0.10,
		league.OL: 0.25,
	}
	defenseWeights = map[league.Position]float64{
		league.DL: 0.35,
		league.LB: 0.30,
		league.DB: 0.35,
	}
)

// Offense computes a team's offensive rating from its starters.
func Offense(r league.Roster) int {
	return weighted(r, offenseWeights)
}

// Defense computes a team's defensive rating from its starters.
func Defense(r league.Roster) int {
	return weighted(r, defenseWeights)
}

// Overall is the headline team rating.
func Overall(offense, defense int) int {
	return int(math.Round(float64(offense+defense) / 2))
}

// Spread is the population standard deviation of all starter overalls,
// a rough volatility measure surfaced for display.
func Spread(r league.Roster) float64 {
	var sum, n float64
	for _, players := range r {
		for _, p := range players {
			sum += float64(p.Overall)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	mean := sum / n
	var variance float64
	for _, players := range r {
		for _, p := range players {
			d := float64(p.Overall) - mean
			variance += d * d
		}
	}
	return math.Sqrt(variance / n)
}

func weighted(r league.Roster, weights map[league.Position]float64) int {
	var total, used float64
	for pos, w := range weights {
		players := r[pos]
		if len(players) == 0 {
			continue
		}
		var sum float64
		for _, p := range players {
			sum += float64(p.Overall)
		}
		total += w * (sum / float64(len(players)))
		used += w
	}
	if used == 0 {
		return 0
	}
	// Renormalize when a weighted position group is missing entirely.
	return int(math.Round(total / used))
}

// Apply recomputes and stores a team's ratings from its roster.
func Apply(t *league.Team, r league.Roster) {
	t.Offense = Offense(r)
	t.Defense = Defense(r)
	t.Rating = Overall(t.Offense, t.Defense)
}

// required positions for simulation box-score attribution.
var required = []league.Position{league.QB, league.RB, league.WR, league.TE, league.K, league.P}

// StaticProvider serves rosters registered up front, one per team name.
type StaticProvider struct {
	rosters map[string]league.Roster
}

func NewStaticProvider() *StaticProvider {
	return &StaticProvider{rosters: make(map[string]league.Roster)}
}

// Add registers a roster after checking the positions the simulator
// depends on are populated.
func (p *StaticProvider) Add(teamName string, r league.Roster) error {
	for _, pos := range required {
		if len(r[pos]) == 0 {
			return fmt.Errorf("team %q: roster has no starter at %s", teamName, pos)
		}
	}
	p.rosters[teamName] = r
	return nil
}

func (p *StaticProvider) Starters(t *league.Team) (league.Roster, error) {
	r, ok := p.rosters[t.Name]
	if !ok {
		return nil, fmt.Errorf("no roster registered for team %q", t.Name)
	}
	return r, nil
}

// Synthetic builds a placeholder starter set where every player carries the
// given overall. Used when a season config supplies flat team ratings
// rather than named rosters.
func Synthetic(teamName string, overall int) league.Roster {
	r := make(league.Roster)
	add := func(pos league.Position, n int) {
		for i := 1; i <= n; i++ {
			r[pos] = append(r[pos], &league.Player{
				Name:     fmt.Sprintf("%s %s%d", teamName, pos, i),
				Position: pos,
				Overall:  overall,
			})
		}
	}
	add(league.QB, 1)
	add(league.RB, 2)
	add(league.WR, 3)
	add(league.TE, 1)
	add(league.OL, 5)
	add(league.DL, 4)
	add(league.LB, 3)
	add(league.DB, 4)
	add(league.K, 1)
	add(league.P, 1)
	return r
}
