package season

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/gridironlabs/gridiron/internal/config"
	"github.com/gridironlabs/gridiron/internal/league"
)

// testConfig is a compact league that keeps the odds table cheap: two
// nine-team conferences give every conference a full round robin and a
// comfortable non-conference pool.
func testConfig(t *testing.T, playoffTeams int) *config.Config {
	t.Helper()
	var sb strings.Builder
	sb.WriteString(`
season:
  year: 2026
  regular_season_weeks: 14
  seed: 9
playoff:
  teams: `)
	fmt.Fprintf(&sb, "%d", playoffTeams)
	sb.WriteString(`
odds:
  max_gap: 6
  trials: 20
conferences:
`)
	for c, confName := range []string{"Coastal", "Heartland"} {
		fmt.Fprintf(&sb, "  - name: %s\n    teams:\n", confName)
		for i := 0; i < 9; i++ {
			fmt.Fprintf(&sb, "      - { name: %s%d, rating: %d }\n", confName, i+1, 88-i*3-c)
		}
	}

	cfg, err := config.LoadFromBytes([]byte(sb.String()))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return cfg
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)
	return l
}

// captureStore records how many entities were flushed per batch.
type captureStore struct {
	games, drives, plays, logs int
	batches                    int
}

func (c *captureStore) SaveBatch(b *league.Batch) error {
	c.batches++
	c.games += len(b.Games)
	c.drives += len(b.Drives)
	c.plays += len(b.Plays)
	c.logs += len(b.Logs)
	return nil
}

func TestSeasonCompletes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping full-season simulation in short mode")
	}
	cfg := testConfig(t, 4)
	world, err := cfg.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	store := &captureStore{}

	s, err := New(cfg, world, store, quietLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	t.Run("calendar landmarks", func(t *testing.T) {
		// 14 regular weeks, championships at 15, two playoff rounds after.
		if s.FinalWeek() != 17 {
			t.Errorf("FinalWeek = %d, want 17", s.FinalWeek())
		}
	})

	if err := s.Complete(); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	t.Run("season reaches its terminal state", func(t *testing.T) {
		if !s.Done() {
			t.Error("season not done after Complete")
		}
		if s.Bracket() == nil {
			t.Fatal("no bracket after the championship week")
		}
		natty := s.Bracket().Championship()
		if natty == nil || !natty.Played {
			t.Fatal("national championship never played")
		}
	})

	t.Run("champion holds the top ranking", func(t *testing.T) {
		champ := s.Bracket().Championship().Winner
		if champ.Ranking != 1 {
			t.Errorf("champion %s ranked %d, want 1", champ.Name, champ.Ranking)
		}
		loser := s.Bracket().Championship().Loser()
		if loser.Ranking != 2 {
			t.Errorf("runner-up %s ranked %d, want 2", loser.Name, loser.Ranking)
		}
	})

	t.Run("every scheduled game was simulated", func(t *testing.T) {
		for _, g := range s.Games() {
			if g.WeekPlayed > 0 && !g.Played {
				t.Errorf("scheduled game %s never played", g)
			}
		}
	})

	t.Run("conference title games exist", func(t *testing.T) {
		for _, c := range world.Conferences {
			if c.TitleGame == nil || !c.TitleGame.Played {
				t.Errorf("conference %s has no decided title game", c.Name)
			}
			if c.Champion() != c.TitleGame.Winner {
				t.Errorf("conference %s champion does not match its title game", c.Name)
			}
		}
	})

	t.Run("batches flowed to the store", func(t *testing.T) {
		// One initial batch plus one per simulated week.
		if store.batches != s.FinalWeek()+1 {
			t.Errorf("%d batches, want %d", store.batches, s.FinalWeek()+1)
		}
		if store.drives == 0 || store.plays == 0 || store.logs == 0 {
			t.Error("play-by-play entities never persisted")
		}
	})

	t.Run("advancing past the end fails", func(t *testing.T) {
		if err := s.AdvanceWeek(); err == nil {
			t.Error("AdvanceWeek after completion should error")
		}
	})
}

func TestSeasonAdvanceTo(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping simulation test in short mode")
	}
	cfg := testConfig(t, 2)
	world, err := cfg.Build()
	if err != nil {
		t.Fatal(err)
	}
	s, err := New(cfg, world, league.NopStore{}, quietLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := s.AdvanceTo(4); err != nil {
		t.Fatalf("AdvanceTo: %v", err)
	}
	if s.Week() != 4 {
		t.Errorf("Week = %d, want 4", s.Week())
	}
	for _, g := range s.Games() {
		if g.WeekPlayed >= 1 && g.WeekPlayed <= 3 && !g.Played {
			t.Errorf("game %s in a completed week is unplayed", g)
		}
		if g.WeekPlayed >= 4 && g.Played {
			t.Errorf("game %s in a future week is already played", g)
		}
	}

	// Resuming from the middle continues to the title game.
	if err := s.Complete(); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if !s.Done() {
		t.Error("season not done after resume")
	}
}

func TestSeasonDeterminism(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping simulation test in short mode")
	}
	run := func() []int {
		cfg := testConfig(t, 2)
		world, err := cfg.Build()
		if err != nil {
			t.Fatal(err)
		}
		s, err := New(cfg, world, league.NopStore{}, quietLogger())
		if err != nil {
			t.Fatal(err)
		}
		if err := s.Complete(); err != nil {
			t.Fatal(err)
		}
		ranks := make([]int, len(world.Teams))
		for i, tm := range world.Teams {
			ranks[i] = tm.Ranking
		}
		return ranks
	}

	first := run()
	second := run()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("team %d ranked %d then %d from the same seed", i, first[i], second[i])
		}
	}
}
