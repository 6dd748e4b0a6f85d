// Package playoff runs the postseason: conference championships, field
// seeding with autobids and byes, and a named-slot bracket state machine
// for the 2, 4, and 12-team formats.
package playoff

import (
	"fmt"
	"sort"

	"github.com/gridironlabs/gridiron/internal/league"
	"github.com/gridironlabs/gridiron/internal/schedule"
)

// Config is the playoff policy surface.
type Config struct {
	Teams             int // 2, 4, or 12
	Autobids          int // highest-ranked conference champs auto-qualifying
	ConfChampsGetTop4 bool
}

// Normalize forces the short formats' invariants: no autobids, no
// champ-reserved byes.
func (c Config) Normalize() (Config, error) {
	switch c.Teams {
	case 2, 4:
		c.Autobids = 0
		c.ConfChampsGetTop4 = false
	case 12:
	default:
		return c, fmt.Errorf("unsupported playoff size %d (want 2, 4, or 12)", c.Teams)
	}
	return c, nil
}

// Round is the bracket's position in its lifecycle.
type Round int

const (
	RoundSeeding Round = iota
	RoundFirst         // 12-team only
	RoundQuarter       // 12-team only
	RoundSemi          // 4 and 12-team
	RoundChampionship
	RoundDone
)

func (r Round) String() string {
	switch r {
	case RoundSeeding:
		return "seeding"
	case RoundFirst:
		return "first round"
	case RoundQuarter:
		return "quarterfinals"
	case RoundSemi:
		return "semifinals"
	case RoundChampionship:
		return "championship"
	case RoundDone:
		return "done"
	}
	return "unknown"
}

// Slot names. Later rounds reference feeders by these names, so the exact
// cross-bracket wiring below is load-bearing: seed 1 awaits 8v9, seed 4
// awaits 5v12, seed 2 awaits 7v10, seed 3 awaits 6v11.
const (
	SlotLeftR11       = "leftR1_1"  // 8 v 9
	SlotLeftR12       = "leftR1_2"  // 5 v 12
	SlotRightR11      = "rightR1_1" // 7 v 10
	SlotRightR12      = "rightR1_2" // 6 v 11
	SlotLeftQuarter1  = "leftQuarter_1"
	SlotLeftQuarter2  = "leftQuarter_2"
	SlotRightQuarter1 = "rightQuarter_1"
	SlotRightQuarter2 = "rightQuarter_2"
	SlotLeftSemi      = "leftSemi"
	SlotRightSemi     = "rightSemi"
	SlotNatty         = "natty"
)

// Bracket is the playoff state for one season.
type Bracket struct {
	Config Config
	Year   int
	Seeds  []*league.Team // Seeds[0] is seed 1
	Bubble []*league.Team // first teams out, display only
	Slots  map[string]*league.Game
	Round  Round
}

// bubbleSize is how many first-out teams are retained for display.
const bubbleSize = 4

// Seed builds the bracket field from final rankings and conference
// results. Pure function of its inputs: no randomness, so repeated calls
// produce identical seeding.
func Seed(teams []*league.Team, confs []*league.Conference, cfg Config, year int) (*Bracket, error) {
	cfg, err := cfg.Normalize()
	if err != nil {
		return nil, err
	}
	if len(teams) < cfg.Teams {
		return nil, fmt.Errorf("cannot seed %d-team playoff from %d teams", cfg.Teams, len(teams))
	}

	byRank := make([]*league.Team, len(teams))
	copy(byRank, teams)
	sort.SliceStable(byRank, func(i, j int) bool { return byRank[i].Ranking < byRank[j].Ranking })

	champs := make([]*league.Team, 0, len(confs))
	for _, c := range confs {
		if champ := c.Champion(); champ != nil {
			champs = append(champs, champ)
		}
	}
	sort.SliceStable(champs, func(i, j int) bool { return champs[i].Ranking < champs[j].Ranking })

	autobids := champs
	if len(autobids) > cfg.Autobids {
		autobids = autobids[:cfg.Autobids]
	}
	isAutobid := make(map[*league.Team]bool, len(autobids))
	for _, t := range autobids {
		isAutobid[t] = true
	}

	var seeds []*league.Team
	switch {
	case cfg.Teams != 12:
		seeds = byRank[:cfg.Teams]
	case cfg.ConfChampsGetTop4:
		// Top-4 autobid champs take the bye seeds; everyone else fills in
		// by ranking, remaining autobid champs first.
		top := autobids
		if len(top) > 4 {
			top = top[:4]
		}
		seeds = append(seeds, top...)
		taken := make(map[*league.Team]bool)
		for _, t := range seeds {
			taken[t] = true
		}
		for _, t := range autobids {
			if len(seeds) >= cfg.Teams {
				break
			}
			if !taken[t] {
				seeds = append(seeds, t)
				taken[t] = true
			}
		}
		for _, t := range byRank {
			if len(seeds) >= cfg.Teams {
				break
			}
			if !taken[t] {
				seeds = append(seeds, t)
				taken[t] = true
			}
		}
	default:
		// Byes go to the top 4 overall; autobid champs are guaranteed a
		// slot ahead of at-large teams, all ordered by pure ranking.
		field := make([]*league.Team, 0, cfg.Teams)
		taken := make(map[*league.Team]bool)
		for _, t := range autobids {
			field = append(field, t)
			taken[t] = true
		}
		for _, t := range byRank {
			if len(field) >= cfg.Teams {
				break
			}
			if !taken[t] {
				field = append(field, t)
				taken[t] = true
			}
		}
		sort.SliceStable(field, func(i, j int) bool { return field[i].Ranking < field[j].Ranking })
		seeds = field
	}

	inField := make(map[*league.Team]bool, len(seeds))
	for _, t := range seeds {
		inField[t] = true
	}
	var bubble []*league.Team
	for _, t := range byRank {
		if len(bubble) >= bubbleSize {
			break
		}
		if !inField[t] {
			bubble = append(bubble, t)
		}
	}

	round := RoundFirst
	switch cfg.Teams {
	case 2:
		round = RoundChampionship
	case 4:
		round = RoundSemi
	}

	return &Bracket{
		Config: cfg,
		Year:   year,
		Seeds:  seeds,
		Bubble: bubble,
		Slots:  make(map[string]*league.Game),
		Round:  round,
	}, nil
}

// AdvanceRound schedules the bracket's next round into the given week and
// returns the newly created games. It fails loudly when a feeder slot has
// no winner yet — that is a sequencing bug in the caller, not a state to
// paper over.
func (b *Bracket) AdvanceRound(week int) ([]*league.Game, error) {
	switch b.Round {
	case RoundFirst:
		games := []*league.Game{
			b.create(SlotLeftR11, b.seed(8), b.seed(9), "Playoff First Round", week),
			b.create(SlotLeftR12, b.seed(5), b.seed(12), "Playoff First Round", week),
			b.create(SlotRightR11, b.seed(7), b.seed(10), "Playoff First Round", week),
			b.create(SlotRightR12, b.seed(6), b.seed(11), "Playoff First Round", week),
		}
		b.Round = RoundQuarter
		return games, nil

	case RoundQuarter:
		w, err := b.winners(SlotLeftR11, SlotLeftR12, SlotRightR11, SlotRightR12)
		if err != nil {
			return nil, err
		}
		games := []*league.Game{
			b.create(SlotLeftQuarter1, b.seed(1), w[0], "Quarterfinal", week),
			b.create(SlotLeftQuarter2, b.seed(4), w[1], "Quarterfinal", week),
			b.create(SlotRightQuarter1, b.seed(2), w[2], "Quarterfinal", week),
			b.create(SlotRightQuarter2, b.seed(3), w[3], "Quarterfinal", week),
		}
		b.Round = RoundSemi
		return games, nil

	case RoundSemi:
		var games []*league.Game
		if b.Config.Teams == 4 {
			games = []*league.Game{
				b.create(SlotLeftSemi, b.seed(1), b.seed(4), "Semifinal", week),
				b.create(SlotRightSemi, b.seed(2), b.seed(3), "Semifinal", week),
			}
		} else {
			w, err := b.winners(SlotLeftQuarter1, SlotLeftQuarter2, SlotRightQuarter1, SlotRightQuarter2)
			if err != nil {
				return nil, err
			}
			games = []*league.Game{
				b.create(SlotLeftSemi, w[0], w[1], "Semifinal", week),
				b.create(SlotRightSemi, w[2], w[3], "Semifinal", week),
			}
		}
		b.Round = RoundChampionship
		return games, nil

	case RoundChampionship:
		var a, c *league.Team
		if b.Config.Teams == 2 {
			a, c = b.seed(1), b.seed(2)
		} else {
			w, err := b.winners(SlotLeftSemi, SlotRightSemi)
			if err != nil {
				return nil, err
			}
			a, c = w[0], w[1]
		}
		g := b.create(SlotNatty, a, c, "National Championship", week)
		b.Round = RoundDone
		return []*league.Game{g}, nil

	case RoundDone:
		return nil, fmt.Errorf("bracket already complete")
	}
	return nil, fmt.Errorf("bracket not seeded yet")
}

// Championship returns the title game once scheduled, nil before.
func (b *Bracket) Championship() *league.Game { return b.Slots[SlotNatty] }

func (b *Bracket) seed(n int) *league.Team { return b.Seeds[n-1] }

func (b *Bracket) create(slot string, a, c *league.Team, name string, week int) *league.Game {
	g := league.NewGame(a, c, b.Year)
	g.Name = name
	g.Conference = false // neutral-site postseason, never a conference game
	schedule.PlaceGame(g, week)
	b.Slots[slot] = g
	return g
}

func (b *Bracket) winners(slots ...string) ([]*league.Team, error) {
	out := make([]*league.Team, 0, len(slots))
	for _, s := range slots {
		g := b.Slots[s]
		if g == nil {
			return nil, fmt.Errorf("slot %s referenced before being scheduled", s)
		}
		if !g.Played || g.Winner == nil {
			return nil, fmt.Errorf("slot %s has no winner yet", s)
		}
		out = append(out, g.Winner)
	}
	return out, nil
}

// ConferenceChampionships pairs each conference's top two by conference
// record into a neutral-site title game at the given week and records it
// on the conference. Conferences with fewer than two teams are skipped.
func ConferenceChampionships(confs []*league.Conference, week, year int) []*league.Game {
	var games []*league.Game
	for _, c := range confs {
		if len(c.Teams) < 2 {
			continue
		}
		top := make([]*league.Team, len(c.Teams))
		copy(top, c.Teams)
		sort.SliceStable(top, func(i, j int) bool {
			if top[i].ConfWinPct() != top[j].ConfWinPct() {
				return top[i].ConfWinPct() > top[j].ConfWinPct()
			}
			if top[i].Ranking != top[j].Ranking {
				return top[i].Ranking < top[j].Ranking
			}
			return top[i].Name < top[j].Name
		})
		g := league.NewGame(top[0], top[1], year)
		g.Name = fmt.Sprintf("%s Championship", c.Name)
		g.Conference = true
		g.Home = nil
		schedule.PlaceGame(g, week)
		c.TitleGame = g
		games = append(games, g)
	}
	return games
}
