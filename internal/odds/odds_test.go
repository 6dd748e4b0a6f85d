package odds

import (
	"testing"

	"github.com/gridironlabs/gridiron/internal/league"
)

func TestMoneyline(t *testing.T) {
	tests := []struct {
		prob float64
		want int
	}{
		{0.5, -100},
		{0.75, -300},
		{0.8, -400},
		{0.25, 300},
		{0.2, 400},
	}
	for _, tt := range tests {
		if got := Moneyline(tt.prob); got != tt.want {
			t.Errorf("Moneyline(%v) = %d, want %d", tt.prob, got, tt.want)
		}
	}
}

func TestBuildValidation(t *testing.T) {
	if _, err := Build(nil, -1, 10, 1); err == nil {
		t.Error("negative maxGap should error")
	}
	if _, err := Build(nil, 5, 0, 1); err == nil {
		t.Error("zero trials should error")
	}
}

func TestTable(t *testing.T) {
	table, err := Build(nil, 6, 40, 21)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	t.Run("spreads are mirrored and probabilities clamped", func(t *testing.T) {
		for gap := 0; gap <= 6; gap++ {
			e := table.Lookup(gap)
			if e.Gap != gap {
				t.Errorf("Lookup(%d).Gap = %d", gap, e.Gap)
			}
			if e.FavoredSpread != -e.UnderdogSpread {
				t.Errorf("gap %d: spreads %v/%v not mirrored", gap, e.FavoredSpread, e.UnderdogSpread)
			}
			for _, p := range []float64{e.FavoredWinProb, e.UnderdogWinProb} {
				if p < probFloor || p > 1-probFloor {
					t.Errorf("gap %d: probability %v outside clamp", gap, p)
				}
			}
		}
	})

	t.Run("lookup is symmetric and clamps out of range", func(t *testing.T) {
		if table.Lookup(-4) != table.Lookup(4) {
			t.Error("negative gap should mirror positive")
		}
		if table.Lookup(100) != table.Lookup(6) {
			t.Error("oversized gap should clamp to the last entry")
		}
	})

	t.Run("assign orients lines by rating", func(t *testing.T) {
		fav := &league.Team{Name: "Favored", Rating: 85}
		dog := &league.Team{Name: "Underdog", Rating: 80}
		e := table.Lookup(5)

		g := league.NewGame(fav, dog, 2026)
		table.Assign(g)
		if g.LineA.Spread != e.FavoredSpread || g.LineB.Spread != e.UnderdogSpread {
			t.Errorf("higher-rated TeamA got %v, TeamB %v; want %v/%v",
				g.LineA.Spread, g.LineB.Spread, e.FavoredSpread, e.UnderdogSpread)
		}

		flipped := league.NewGame(dog, fav, 2026)
		table.Assign(flipped)
		if flipped.LineB.Spread != e.FavoredSpread || flipped.LineA.Spread != e.UnderdogSpread {
			t.Error("line orientation should follow the higher rating, not team order")
		}
	})
}

func TestLargeGapFavorsStrongTeam(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping self-play distribution test in short mode")
	}
	table, err := Build(nil, 20, 80, 9)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	e := table.Lookup(20)
	if e.FavoredWinProb <= 0.5 {
		t.Errorf("20-point gap favored win prob = %v, want above 0.5", e.FavoredWinProb)
	}
	if e.FavoredSpread > 0 {
		t.Errorf("favored spread = %v, want negative (laying points)", e.FavoredSpread)
	}
	if e.FavoredMoneyline >= 0 {
		t.Errorf("favored moneyline = %d, want negative", e.FavoredMoneyline)
	}
}
