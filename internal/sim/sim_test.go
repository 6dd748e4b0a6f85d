package sim

import (
	"testing"

	"github.com/google/uuid"

	"github.com/gridironlabs/gridiron/internal/league"
	"github.com/gridironlabs/gridiron/internal/ratings"
)

func testTeams(t *testing.T, ratingA, ratingB int) (*league.Team, *league.Team, *ratings.StaticProvider) {
	t.Helper()
	a := &league.Team{Name: "Ashford", Rating: ratingA, Offense: ratingA, Defense: ratingA}
	b := &league.Team{Name: "Bayport", Rating: ratingB, Offense: ratingB, Defense: ratingB}
	p := ratings.NewStaticProvider()
	if err := p.Add(a.Name, ratings.Synthetic(a.Name, ratingA)); err != nil {
		t.Fatalf("roster for %s: %v", a.Name, err)
	}
	if err := p.Add(b.Name, ratings.Synthetic(b.Name, ratingB)); err != nil {
		t.Fatalf("roster for %s: %v", b.Name, err)
	}
	return a, b, p
}

func TestFourthDownCall(t *testing.T) {
	tests := []struct {
		name        string
		fp, ytg, pn int
		want        Call
	}{
		{"own territory default punt", 30, 4, 0, CallPunt},
		{"own territory short when desperate", 30, 2, 6, CallGo},
		{"own territory short without pressure", 30, 2, 0, CallPunt},
		{"midfield short yardage", 45, 3, 0, CallGo},
		{"midfield medium needs pressure", 45, 5, 0, CallPunt},
		{"midfield medium with pressure", 45, 5, 3, CallGo},
		{"fringe range short", 65, 2, 0, CallGo},
		{"fringe range long takes the points", 65, 6, 0, CallFieldGoal},
		{"fringe range medium when desperate", 65, 5, 6, CallGo},
		{"red zone short", 75, 2, 0, CallGo},
		{"red zone long takes the points", 75, 4, 0, CallFieldGoal},
		{"red zone desperate goes regardless", 75, 8, 6, CallGo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FourthDownCall(tt.fp, tt.ytg, tt.pn); got != tt.want {
				t.Errorf("FourthDownCall(%d, %d, %d) = %s, want %s",
					tt.fp, tt.ytg, tt.pn, got, tt.want)
			}
		})
	}
}

func TestFieldGoalProb(t *testing.T) {
	t.Run("band anchors", func(t *testing.T) {
		anchors := []struct {
			distance int
			want     float64
		}{
			{25, 0.99},
			{37, 0.99},
			{47, 0.74},
			{57, 0.29},
			{61, 0.05},
			{70, 0.05},
		}
		for _, a := range anchors {
			got := FieldGoalProb(a.distance)
			if diff := got - a.want; diff < -1e-9 || diff > 1e-9 {
				t.Errorf("FieldGoalProb(%d) = %v, want %v", a.distance, got, a.want)
			}
		}
	})

	t.Run("non-increasing with a nonzero floor", func(t *testing.T) {
		prev := 1.0
		for d := 18; d <= 75; d++ {
			p := FieldGoalProb(d)
			if p > prev+1e-9 {
				t.Fatalf("probability rose from %v to %v at distance %d", prev, p, d)
			}
			if p <= 0 || p > 1 {
				t.Fatalf("FieldGoalProb(%d) = %v out of range", d, p)
			}
			prev = p
		}
	})
}

func TestPointsNeeded(t *testing.T) {
	tests := []struct {
		name                string
		off, def, remaining int
		want                int
	}{
		{"tied", 14, 14, 3, 0},
		{"leading", 21, 14, 3, 0},
		{"one score late", 20, 21, 1, 3},
		{"two scores with two possessions", 14, 28, 2, 6},
		{"big deficit last possession", 0, 10, 1, 8},
		{"big deficit plenty of time", 0, 10, 2, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pointsNeeded(tt.off, tt.def, tt.remaining); got != tt.want {
				t.Errorf("pointsNeeded(%d, %d, %d) = %d, want %d",
					tt.off, tt.def, tt.remaining, got, tt.want)
			}
		})
	}
}

func TestAmplify(t *testing.T) {
	t.Run("negative draws pass through", func(t *testing.T) {
		if got := amplify(-3, 0.011, 1.9); got != -3 {
			t.Errorf("amplify(-3) = %d, want -3", got)
		}
	})
	t.Run("positive draws stretch", func(t *testing.T) {
		if got := amplify(10, 0.011, 1.9); got < 10 {
			t.Errorf("amplify(10) = %d, should not shrink", got)
		}
	})
	t.Run("capped at 99", func(t *testing.T) {
		if got := amplify(200, 0.011, 1.9); got != 99 {
			t.Errorf("amplify(200) = %d, want 99", got)
		}
	})
}

func TestSimulateGameStructure(t *testing.T) {
	a, b, provider := testTeams(t, 80, 80)
	s := New(nil, provider, 7)

	g := league.NewGame(a, b, 2026)
	batch, err := s.SimulateGame(g)
	if err != nil {
		t.Fatalf("SimulateGame: %v", err)
	}

	t.Run("terminal with a winner, never tied", func(t *testing.T) {
		if !g.Played {
			t.Fatal("game not marked played")
		}
		if g.ScoreA == g.ScoreB {
			t.Error("game ended tied")
		}
		if g.Winner == nil {
			t.Fatal("no winner")
		}
		if (g.ScoreA > g.ScoreB) != (g.Winner == a) {
			t.Error("winner does not match score")
		}
	})

	t.Run("records advance on both teams", func(t *testing.T) {
		if a.GamesPlayed != 1 || b.GamesPlayed != 1 {
			t.Errorf("games played %d/%d, want 1/1", a.GamesPlayed, b.GamesPlayed)
		}
		if g.Winner.TotalWins != 1 || g.Loser().TotalLosses != 1 {
			t.Error("win/loss counters wrong")
		}
	})

	t.Run("regulation drives alternate possession", func(t *testing.T) {
		regulation := DefaultParams().RegulationPossessions * 2
		if len(batch.Drives) < regulation {
			t.Fatalf("%d drives, want at least %d", len(batch.Drives), regulation)
		}
		for i := 0; i < regulation; i++ {
			d := batch.Drives[i]
			wantOff := a
			if i%2 == 1 {
				wantOff = b
			}
			if d.Offense != wantOff {
				t.Fatalf("drive %d offense = %s, want %s", i, d.Offense.Name, wantOff.Name)
			}
			if d.Num != i {
				t.Fatalf("drive %d numbered %d", i, d.Num)
			}
		}
	})

	t.Run("halves open at the kickoff spot", func(t *testing.T) {
		p := DefaultParams()
		if got := batch.Drives[0].StartFP; got != p.KickoffFieldPos {
			t.Errorf("opening drive starts at %d, want %d", got, p.KickoffFieldPos)
		}
		if got := batch.Drives[p.RegulationPossessions].StartFP; got != p.KickoffFieldPos {
			t.Errorf("second half opens at %d, want %d", got, p.KickoffFieldPos)
		}
	})

	t.Run("scoring drives hand the kickoff spot to the opponent", func(t *testing.T) {
		p := DefaultParams()
		regulation := p.RegulationPossessions * 2
		for i := 0; i < regulation-1; i++ {
			if i+1 == p.RegulationPossessions {
				continue // half boundary resets regardless
			}
			d := batch.Drives[i]
			if d.Result == league.DriveTouchdown || d.Result == league.DriveFieldGoal {
				if next := batch.Drives[i+1].StartFP; next != p.KickoffFieldPos {
					t.Errorf("drive %d (%s) followed by start at %d, want %d",
						i, d.Result, next, p.KickoffFieldPos)
				}
			}
		}
	})

	t.Run("drives stay inside the field", func(t *testing.T) {
		for _, d := range batch.Drives {
			if d.StartFP < 1 || d.StartFP > 99 {
				t.Errorf("drive %d starts at %d", d.Num, d.StartFP)
			}
			if d.Result == league.DriveNone {
				t.Errorf("drive %d has no result", d.Num)
			}
		}
	})

	t.Run("plays reference their drives", func(t *testing.T) {
		driveIDs := make(map[uuid.UUID]bool, len(batch.Drives))
		for _, d := range batch.Drives {
			driveIDs[d.ID] = true
		}
		if len(batch.Plays) == 0 {
			t.Fatal("no plays recorded")
		}
		for _, p := range batch.Plays {
			if !driveIDs[p.DriveID] {
				t.Error("play references an unknown drive")
			}
			if p.Down < 1 || p.Down > 4 {
				t.Errorf("play has down %d", p.Down)
			}
		}
	})

	t.Run("box score totals exist", func(t *testing.T) {
		if len(batch.Logs) == 0 {
			t.Fatal("no game logs recorded")
		}
		for _, l := range batch.Logs {
			if l.Player == nil || l.Team == nil {
				t.Error("log missing player or team")
			}
		}
	})
}

func TestGameLogsMatchPlayRecords(t *testing.T) {
	_, _, provider := testTeams(t, 85, 75)
	s := New(nil, provider, 29)

	for i := 0; i < 20; i++ {
		a := &league.Team{Name: "Ashford", Rating: 85, Offense: 85, Defense: 85}
		b := &league.Team{Name: "Bayport", Rating: 75, Offense: 75, Defense: 75}
		batch, err := s.SimulateGame(league.NewGame(a, b, 2026))
		if err != nil {
			t.Fatalf("game %d: %v", i, err)
		}

		passYards := make(map[*league.Player]int)
		recYards := make(map[*league.Player]int)
		rushYards := make(map[*league.Player]int)
		for _, p := range batch.Plays {
			switch p.Type {
			case league.PlayPass:
				if p.Receiver != nil {
					passYards[p.Passer] += p.Yards
					recYards[p.Receiver] += p.Yards
				}
			case league.PlayRun:
				if p.Outcome != league.OutFumble {
					rushYards[p.Rusher] += p.Yards
				}
			}
		}

		for _, l := range batch.Logs {
			if l.PassYards != passYards[l.Player] {
				t.Errorf("game %d: %s log PassYards=%d, plays sum to %d",
					i, l.Player.Name, l.PassYards, passYards[l.Player])
			}
			if l.RecYards != recYards[l.Player] {
				t.Errorf("game %d: %s log RecYards=%d, plays sum to %d",
					i, l.Player.Name, l.RecYards, recYards[l.Player])
			}
			if l.RushYards != rushYards[l.Player] {
				t.Errorf("game %d: %s log RushYards=%d, plays sum to %d",
					i, l.Player.Name, l.RushYards, rushYards[l.Player])
			}
		}
	}
}

func TestSimulateGameRejectsReplay(t *testing.T) {
	a, b, provider := testTeams(t, 75, 75)
	s := New(nil, provider, 3)
	g := league.NewGame(a, b, 2026)
	if _, err := s.SimulateGame(g); err != nil {
		t.Fatalf("first simulation: %v", err)
	}
	if _, err := s.SimulateGame(g); err == nil {
		t.Error("re-simulating a played game should error")
	}
}

func TestSimulateGameMissingRoster(t *testing.T) {
	a, _, provider := testTeams(t, 75, 75)
	ghost := &league.Team{Name: "Ghost", Rating: 75, Offense: 75, Defense: 75}
	s := New(nil, provider, 3)
	if _, err := s.SimulateGame(league.NewGame(a, ghost, 2026)); err == nil {
		t.Error("simulating without a roster should error")
	}
}

func TestEqualTeamsSplitEvenly(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping simulation distribution test in short mode")
	}
	_, _, provider := testTeams(t, 80, 80)
	s := New(nil, provider, 11)

	const n = 300
	winsA := 0
	for i := 0; i < n; i++ {
		a := &league.Team{Name: "Ashford", Rating: 80, Offense: 80, Defense: 80}
		b := &league.Team{Name: "Bayport", Rating: 80, Offense: 80, Defense: 80}
		g := league.NewGame(a, b, 2026)
		if _, err := s.SimulateGame(g); err != nil {
			t.Fatalf("game %d: %v", i, err)
		}
		if g.Winner == a {
			winsA++
		}
	}
	if winsA < n/3 || winsA > n*2/3 {
		t.Errorf("equal teams: side A won %d of %d, expected a near-even split", winsA, n)
	}
}

func TestStrongTeamDominates(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping simulation distribution test in short mode")
	}
	provider := ratings.NewStaticProvider()
	if err := provider.Add("Strong", ratings.Synthetic("Strong", 95)); err != nil {
		t.Fatal(err)
	}
	if err := provider.Add("Weak", ratings.Synthetic("Weak", 60)); err != nil {
		t.Fatal(err)
	}
	s := New(nil, provider, 13)

	const n = 200
	wins := 0
	for i := 0; i < n; i++ {
		strong := &league.Team{Name: "Strong", Rating: 95, Offense: 95, Defense: 95}
		weak := &league.Team{Name: "Weak", Rating: 60, Offense: 60, Defense: 60}
		g := league.NewGame(strong, weak, 2026)
		if _, err := s.SimulateGame(g); err != nil {
			t.Fatalf("game %d: %v", i, err)
		}
		if g.Winner == strong {
			wins++
		}
	}
	if wins < n*7/10 {
		t.Errorf("95-rated team won only %d of %d against a 60", wins, n)
	}
}
