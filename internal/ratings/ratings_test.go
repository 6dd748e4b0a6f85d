package ratings

import (
	"testing"

	"github.com/gridironlabs/gridiron/internal/league"
)

func TestWeightedRatings(t *testing.T) {
	t.Run("uniform roster maps onto the player scale", func(t *testing.T) {
		r := Synthetic("Ashford", 80)
		if got := Offense(r); got != 80 {
			t.Errorf("Offense = %d, want 80", got)
		}
		if got := Defense(r); got != 80 {
			t.Errorf("Defense = %d, want 80", got)
		}
		if got := Overall(Offense(r), Defense(r)); got != 80 {
			t.Errorf("Overall = %d, want 80", got)
		}
	})

	t.Run("missing groups renormalize", func(t *testing.T) {
		r := league.Roster{
			league.QB: {{Position: league.QB, Overall: 90}},
			league.OL: {{Position: league.OL, Overall: 60}},
		}
		// 0.30*90 + 0.25*60 over 0.55 of weight = 76.36 -> 76
		if got := Offense(r); got != 76 {
			t.Errorf("Offense = %d, want 76", got)
		}
	})

	t.Run("empty roster is zero", func(t *testing.T) {
		if got := Offense(league.Roster{}); got != 0 {
			t.Errorf("Offense = %d, want 0", got)
		}
	})
}

func TestApply(t *testing.T) {
	tm := &league.Team{Name: "Bayport"}
	Apply(tm, Synthetic("Bayport", 75))
	if tm.Offense != 75 || tm.Defense != 75 || tm.Rating != 75 {
		t.Errorf("Apply gave %d/%d/%d, want 75 across", tm.Offense, tm.Defense, tm.Rating)
	}
}

func TestSpread(t *testing.T) {
	if got := Spread(Synthetic("Flat", 70)); got != 0 {
		t.Errorf("uniform roster spread = %v, want 0", got)
	}
	r := league.Roster{
		league.QB: {{Overall: 60}, {Overall: 80}},
	}
	if got := Spread(r); got != 10 {
		t.Errorf("Spread = %v, want 10", got)
	}
}

func TestStaticProvider(t *testing.T) {
	p := NewStaticProvider()

	t.Run("rejects rosters missing required positions", func(t *testing.T) {
		r := league.Roster{league.QB: {{Position: league.QB, Overall: 80}}}
		if err := p.Add("Incomplete", r); err == nil {
			t.Error("Add should reject a roster with no RB/WR/TE/K/P")
		}
	})

	t.Run("serves registered rosters", func(t *testing.T) {
		if err := p.Add("Ashford", Synthetic("Ashford", 85)); err != nil {
			t.Fatalf("Add: %v", err)
		}
		r, err := p.Starters(&league.Team{Name: "Ashford"})
		if err != nil {
			t.Fatalf("Starters: %v", err)
		}
		if len(r[league.QB]) != 1 {
			t.Error("roster came back wrong")
		}
	})

	t.Run("unknown team errors", func(t *testing.T) {
		if _, err := p.Starters(&league.Team{Name: "Nowhere"}); err == nil {
			t.Error("Starters for unregistered team should error")
		}
	})
}

func TestSynthetic(t *testing.T) {
	r := Synthetic("Cresthill", 70)
	want := map[league.Position]int{
		league.QB: 1, league.RB: 2, league.WR: 3, league.TE: 1, league.OL: 5,
		league.DL: 4, league.LB: 3, league.DB: 4, league.K: 1, league.P: 1,
	}
	for pos, n := range want {
		if len(r[pos]) != n {
			t.Errorf("%s has %d players, want %d", pos, len(r[pos]), n)
		}
		for _, p := range r[pos] {
			if p.Overall != 70 {
				t.Errorf("player %s overall = %d, want 70", p.Name, p.Overall)
			}
		}
	}
}
