// Package season orchestrates one full season: schedule generation, week
// by week simulation, ranking updates behind a week barrier, conference
// championships, and the playoff bracket. All newly produced entities are
// flushed to the Store in one batch per advanced week.
package season

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/gridironlabs/gridiron/internal/config"
	"github.com/gridironlabs/gridiron/internal/league"
	"github.com/gridironlabs/gridiron/internal/odds"
	"github.com/gridironlabs/gridiron/internal/playoff"
	"github.com/gridironlabs/gridiron/internal/rank"
	"github.com/gridironlabs/gridiron/internal/schedule"
	"github.com/gridironlabs/gridiron/internal/sim"
	"github.com/gridironlabs/gridiron/internal/strategy"
)

// Season holds the in-memory state of one simulated season. It assumes
// exclusive access to the collections it was given; callers serialize
// concurrent operations per season.
type Season struct {
	cfg    *config.Config
	world  *config.League
	store  league.Store
	log    logrus.FieldLogger
	simtor *sim.Simulator
	table  *odds.Table
	ranker *rank.Engine

	games      []*league.Game
	bracket    *playoff.Bracket
	postseason []*league.Game // completed playoff games, folded into the final ranking
	warnings   []string

	week int // next week to simulate
}

// New builds the odds table, generates and week-assigns the regular-season
// schedule, and seeds preseason rankings. The initial slate of games is
// persisted as one batch.
func New(cfg *config.Config, world *config.League, store league.Store, log logrus.FieldLogger) (*Season, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	params := cfg.SimParams()
	log.WithFields(logrus.Fields{
		"max_gap": cfg.Odds.MaxGap,
		"trials":  cfg.Odds.Trials,
	}).Info("building odds table")
	table, err := odds.Build(params, cfg.Odds.MaxGap, cfg.Odds.Trials, uint64(cfg.Season.Seed))
	if err != nil {
		return nil, fmt.Errorf("building odds table: %w", err)
	}

	s := &Season{
		cfg:    cfg,
		world:  world,
		store:  store,
		log:    log,
		simtor: sim.New(params, world.Rosters, uint64(cfg.Season.Seed)+1),
		table:  table,
		ranker: rank.New(nil, cfg.Season.RegularSeasonWeeks+1),
		week:   1,
	}
	s.ranker.Preseason(world.Teams)

	if err := s.buildSchedule(); err != nil {
		return nil, err
	}

	if err := store.SaveBatch(&league.Batch{Games: s.games}); err != nil {
		return nil, fmt.Errorf("persisting schedule: %w", err)
	}
	return s, nil
}

func (s *Season) buildSchedule() error {
	strat, err := strategy.Get(s.cfg.Season.Strategy)
	if err != nil {
		return err
	}
	rng := rand.New(rand.NewSource(s.cfg.Season.Seed))
	matchups := strat.GenerateMatchups(s.world.Teams, s.world.Rivalries, s.cfg.Season.Year, rng)
	s.warnings = append(s.warnings, matchups.Warnings...)

	result, err := schedule.AssignWeeks(matchups.Games, s.cfg.Season.RegularSeasonWeeks, s.cfg.Season.Seed)
	s.warnings = append(s.warnings, result.Warnings...)
	if err != nil {
		// Infeasibility is soft: proceed with the partial schedule.
		s.log.WithError(err).Warn("schedule is incomplete, continuing best-effort")
	}

	for _, g := range result.Games {
		s.table.Assign(g)
	}
	s.games = result.Games
	s.log.WithFields(logrus.Fields{
		"games":    len(s.games),
		"weeks":    s.cfg.Season.RegularSeasonWeeks,
		"warnings": len(s.warnings),
	}).Info("season schedule built")
	return nil
}

// Calendar landmarks.

func (s *Season) championshipWeek() int { return s.cfg.Season.RegularSeasonWeeks + 1 }

func (s *Season) playoffRounds() int {
	switch s.cfg.Playoff.Teams {
	case 12:
		return 4
	case 4:
		return 2
	default:
		return 1
	}
}

// FinalWeek is the national championship week.
func (s *Season) FinalWeek() int { return s.championshipWeek() + s.playoffRounds() }

// Week returns the next week to be simulated.
func (s *Season) Week() int { return s.week }

// Games returns every game created so far.
func (s *Season) Games() []*league.Game { return s.games }

// Bracket returns the playoff bracket, nil before seeding.
func (s *Season) Bracket() *playoff.Bracket { return s.bracket }

// Warnings returns accumulated soft-failure reports.
func (s *Season) Warnings() []string { return s.warnings }

// Done reports whether the national championship has been played.
func (s *Season) Done() bool { return s.week > s.FinalWeek() }

// AdvanceWeek simulates the next week end to end: create any
// championship/playoff fixtures due this week, simulate every game in the
// week, then — only after all of them are final — update rankings and
// bracket state. Everything new is saved as one batch.
func (s *Season) AdvanceWeek() error {
	if s.Done() {
		return fmt.Errorf("season is complete (week %d past final week %d)", s.week, s.FinalWeek())
	}
	w := s.week
	batch := &league.Batch{}

	created, err := s.scheduleWeek(w)
	if err != nil {
		return err
	}
	batch.Games = append(batch.Games, created...)

	weekGames := s.gamesOfWeek(w)
	for _, g := range weekGames {
		if g.Played {
			continue
		}
		gb, err := s.simtor.SimulateGame(g)
		if err != nil {
			return fmt.Errorf("week %d: simulating %s vs %s: %w", w, g.TeamA.Name, g.TeamB.Name, err)
		}
		batch.Append(gb)
		s.log.WithFields(logrus.Fields{
			"week":  w,
			"final": fmt.Sprintf("%s %d - %d %s", g.TeamA.Name, g.ScoreA, g.ScoreB, g.TeamB.Name),
		}).Debug("game simulated")
	}

	// Barrier: every game in the week is final before aggregates move.
	if err := s.afterWeek(w, weekGames); err != nil {
		return err
	}

	if err := s.store.SaveBatch(batch); err != nil {
		return fmt.Errorf("persisting week %d: %w", w, err)
	}
	s.week++
	return nil
}

// scheduleWeek creates the fixtures that come due in week w.
func (s *Season) scheduleWeek(w int) ([]*league.Game, error) {
	var created []*league.Game

	if w == s.championshipWeek() {
		created = playoff.ConferenceChampionships(s.world.Conferences, w, s.cfg.Season.Year)
		s.log.WithField("week", w).Infof("scheduled %d conference championships", len(created))
	} else if w > s.championshipWeek() {
		if s.bracket == nil {
			return nil, fmt.Errorf("week %d: playoff round reached before bracket seeding", w)
		}
		games, err := s.bracket.AdvanceRound(w)
		if err != nil {
			return nil, fmt.Errorf("advancing bracket into week %d: %w", w, err)
		}
		created = games
		s.log.WithFields(logrus.Fields{"week": w, "round": s.bracket.Round}).
			Infof("scheduled %d playoff games", len(games))
	}

	for _, g := range created {
		s.table.Assign(g)
		s.games = append(s.games, g)
	}
	return created, nil
}

// afterWeek applies post-barrier aggregates: rankings during ranked weeks,
// bracket seeding at the championship week, and the authoritative final
// ranking once the title game has a winner.
func (s *Season) afterWeek(w int, weekGames []*league.Game) error {
	switch {
	case w <= s.championshipWeek():
		s.ranker.Update(s.world.Teams, weekGames, w, nil)
		if w == s.championshipWeek() {
			return s.seedBracket()
		}
	default:
		// Playoff weeks skip ranking updates; resume effects land in one
		// final pass when the championship is decided.
		s.postseason = append(s.postseason, weekGames...)
		natty := s.bracket.Championship()
		if natty != nil && natty.Played {
			s.ranker.Update(s.world.Teams, s.postseason, s.championshipWeek(), natty)
			s.log.WithField("champion", natty.Winner.Name).Info("national championship decided")
		}
	}
	return nil
}

func (s *Season) seedBracket() error {
	pcfg, err := s.cfg.PlayoffConfig()
	if err != nil {
		return err
	}
	b, err := playoff.Seed(s.world.Teams, s.world.Conferences, pcfg, s.cfg.Season.Year)
	if err != nil {
		return fmt.Errorf("seeding playoff: %w", err)
	}
	s.bracket = b
	for i, t := range b.Seeds {
		s.log.WithFields(logrus.Fields{"seed": i + 1, "team": t.Name}).Debug("playoff seed")
	}
	return nil
}

// AdvanceTo simulates weeks until the given week is next (exclusive).
func (s *Season) AdvanceTo(week int) error {
	for s.week < week && !s.Done() {
		if err := s.AdvanceWeek(); err != nil {
			return err
		}
	}
	return nil
}

// Complete runs the season through the national championship.
func (s *Season) Complete() error {
	for !s.Done() {
		if err := s.AdvanceWeek(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Season) gamesOfWeek(w int) []*league.Game {
	var out []*league.Game
	for _, g := range s.games {
		if g.WeekPlayed == w {
			out = append(out, g)
		}
	}
	return out
}
