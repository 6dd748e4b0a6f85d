package excel

import (
	"testing"

	"github.com/gridironlabs/gridiron/internal/league"
	"github.com/gridironlabs/gridiron/internal/playoff"
)

func TestGenerate(t *testing.T) {
	a := &league.Team{Name: "Ashford", Conference: "Coastal", Rating: 90, Ranking: 1,
		TotalWins: 11, TotalLosses: 1, ConfWins: 7, ConfLosses: 1}
	b := &league.Team{Name: "Bayport", Conference: "Coastal", Rating: 85, Ranking: 2,
		TotalWins: 10, TotalLosses: 2, ConfWins: 6, ConfLosses: 2}
	ind := &league.Team{Name: "Ironwood", Rating: 70, Ranking: 3,
		TotalWins: 6, TotalLosses: 6}
	teams := []*league.Team{a, b, ind}
	confs := []*league.Conference{{Name: "Coastal", Teams: []*league.Team{a, b}}}

	g := league.NewGame(a, b, 2026)
	g.WeekPlayed = 5
	g.Played = true
	g.ScoreA, g.ScoreB = 31, 24
	g.Winner = a
	g.LineA = league.Line{Spread: -6.5}
	g.LineB = league.Line{Spread: 6.5}

	f, err := Generate(teams, confs, []*league.Game{g}, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	t.Run("sheets exist", func(t *testing.T) {
		for _, sheet := range []string{"Standings", "Schedule", "Rankings"} {
			if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
				t.Errorf("sheet %s missing", sheet)
			}
		}
		if idx, _ := f.GetSheetIndex("Bracket"); idx >= 0 {
			t.Error("bracket sheet written without a bracket")
		}
	})

	t.Run("standings include conference and independents", func(t *testing.T) {
		top, err := f.GetCellValue("Standings", "B2")
		if err != nil {
			t.Fatal(err)
		}
		if top != "Ashford" {
			t.Errorf("first standings team = %q, want Ashford", top)
		}
		label, _ := f.GetCellValue("Standings", "A4")
		if label != "Independent" {
			t.Errorf("independent label = %q", label)
		}
	})

	t.Run("schedule row carries the result", func(t *testing.T) {
		result, err := f.GetCellValue("Schedule", "E2")
		if err != nil {
			t.Fatal(err)
		}
		if result != "Ashford 31-24" {
			t.Errorf("result cell = %q", result)
		}
	})
}

func TestGenerateBracketSheet(t *testing.T) {
	teams := make([]*league.Team, 4)
	for i := range teams {
		teams[i] = &league.Team{Name: string(rune('A' + i)), Ranking: i + 1, Rating: 90 - i}
	}
	b, err := playoff.Seed(teams, nil, playoff.Config{Teams: 4}, 2026)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.AdvanceRound(15); err != nil {
		t.Fatal(err)
	}

	f, err := Generate(teams, nil, nil, b)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if idx, _ := f.GetSheetIndex("Bracket"); idx < 0 {
		t.Fatal("bracket sheet missing")
	}
	seed1, _ := f.GetCellValue("Bracket", "B2")
	if seed1 != "A" {
		t.Errorf("first bracket row = %q, want seed 1", seed1)
	}
}

func TestCellRef(t *testing.T) {
	tests := []struct {
		col, row int
		want     string
	}{
		{1, 1, "A1"},
		{2, 3, "B3"},
		{26, 10, "Z10"},
		{27, 1, "AA1"},
		{52, 2, "AZ2"},
	}
	for _, tt := range tests {
		if got := cellRef(tt.col, tt.row); got != tt.want {
			t.Errorf("cellRef(%d, %d) = %q, want %q", tt.col, tt.row, got, tt.want)
		}
	}
}
