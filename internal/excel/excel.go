// Package excel renders a finished (or in-progress) season into a
// workbook: standings, full schedule with lines and results, the current
// rankings, and the playoff bracket.
package excel

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/gridironlabs/gridiron/internal/league"
	"github.com/gridironlabs/gridiron/internal/playoff"
)

// Generate creates the season report workbook.
func Generate(teams []*league.Team, confs []*league.Conference, games []*league.Game, bracket *playoff.Bracket) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetDefaultFont("Arial")

	if err := writeStandings(f, confs, teams); err != nil {
		return nil, fmt.Errorf("writing standings: %w", err)
	}
	if err := writeSchedule(f, games); err != nil {
		return nil, fmt.Errorf("writing schedule: %w", err)
	}
	if err := writeRankings(f, teams); err != nil {
		return nil, fmt.Errorf("writing rankings: %w", err)
	}
	if bracket != nil {
		if err := writeBracket(f, bracket); err != nil {
			return nil, fmt.Errorf("writing bracket: %w", err)
		}
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

func headerStyle(f *excelize.File) int {
	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	return style
}

func writeHeaders(f *excelize.File, sheet string, headers []string) {
	style := headerStyle(f)
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
		if style != 0 {
			f.SetCellStyle(sheet, cellRef(i+1, 1), cellRef(i+1, 1), style)
		}
	}
}

func writeStandings(f *excelize.File, confs []*league.Conference, teams []*league.Team) error {
	sheet := "Standings"
	f.NewSheet(sheet)
	writeHeaders(f, sheet, []string{"Conference", "Team", "Overall", "Conf", "Rank", "Rating"})

	row := 2
	writeTeam := func(confName string, t *league.Team) {
		f.SetCellValue(sheet, cellRef(1, row), confName)
		f.SetCellValue(sheet, cellRef(2, row), t.Name)
		f.SetCellValue(sheet, cellRef(3, row), fmt.Sprintf("%d-%d", t.TotalWins, t.TotalLosses))
		f.SetCellValue(sheet, cellRef(4, row), fmt.Sprintf("%d-%d", t.ConfWins, t.ConfLosses))
		f.SetCellValue(sheet, cellRef(5, row), t.Ranking)
		f.SetCellValue(sheet, cellRef(6, row), t.Rating)
		row++
	}

	for _, c := range confs {
		sorted := make([]*league.Team, len(c.Teams))
		copy(sorted, c.Teams)
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].ConfWinPct() != sorted[j].ConfWinPct() {
				return sorted[i].ConfWinPct() > sorted[j].ConfWinPct()
			}
			return sorted[i].Ranking < sorted[j].Ranking
		})
		for _, t := range sorted {
			writeTeam(c.Name, t)
		}
	}
	for _, t := range teams {
		if t.Independent() {
			writeTeam("Independent", t)
		}
	}

	f.SetColWidth(sheet, "A", "B", 22)
	f.SetColWidth(sheet, "C", "F", 10)
	return nil
}

func writeSchedule(f *excelize.File, games []*league.Game) error {
	sheet := "Schedule"
	f.NewSheet(sheet)
	writeHeaders(f, sheet, []string{"Week", "Game", "Matchup", "Spread", "Result"})

	sorted := make([]*league.Game, len(games))
	copy(sorted, games)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].WeekPlayed != sorted[j].WeekPlayed {
			return sorted[i].WeekPlayed < sorted[j].WeekPlayed
		}
		return sorted[i].TeamA.Name < sorted[j].TeamA.Name
	})

	for i, g := range sorted {
		row := i + 2
		f.SetCellValue(sheet, cellRef(1, row), g.WeekPlayed)
		f.SetCellValue(sheet, cellRef(2, row), g.Name)
		f.SetCellValue(sheet, cellRef(3, row), fmt.Sprintf("%s vs %s", g.TeamA.Name, g.TeamB.Name))
		f.SetCellValue(sheet, cellRef(4, row), fmt.Sprintf("%+.1f / %+.1f", g.LineA.Spread, g.LineB.Spread))
		if g.Played {
			f.SetCellValue(sheet, cellRef(5, row),
				fmt.Sprintf("%s %d-%d", g.Winner.Name, max(g.ScoreA, g.ScoreB), min(g.ScoreA, g.ScoreB)))
		}
	}

	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "C", 34)
	f.SetColWidth(sheet, "D", "E", 18)
	return nil
}

func writeRankings(f *excelize.File, teams []*league.Team) error {
	sheet := "Rankings"
	f.NewSheet(sheet)
	writeHeaders(f, sheet, []string{"Rank", "Team", "Record", "Poll Score", "Last Week"})

	sorted := make([]*league.Team, len(teams))
	copy(sorted, teams)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Ranking < sorted[j].Ranking })

	limit := 25
	if len(sorted) < limit {
		limit = len(sorted)
	}
	for i := 0; i < limit; i++ {
		t := sorted[i]
		row := i + 2
		f.SetCellValue(sheet, cellRef(1, row), t.Ranking)
		f.SetCellValue(sheet, cellRef(2, row), t.Name)
		f.SetCellValue(sheet, cellRef(3, row), fmt.Sprintf("%d-%d", t.TotalWins, t.TotalLosses))
		f.SetCellValue(sheet, cellRef(4, row), fmt.Sprintf("%.2f", t.PollScore))
		f.SetCellValue(sheet, cellRef(5, row), t.LastRank)
	}

	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 22)
	f.SetColWidth(sheet, "C", "E", 12)
	return nil
}

func writeBracket(f *excelize.File, b *playoff.Bracket) error {
	sheet := "Bracket"
	f.NewSheet(sheet)
	writeHeaders(f, sheet, []string{"Slot", "Matchup", "Result"})

	slotOrder := []string{
		playoff.SlotLeftR11, playoff.SlotLeftR12,
		playoff.SlotRightR11, playoff.SlotRightR12,
		playoff.SlotLeftQuarter1, playoff.SlotLeftQuarter2,
		playoff.SlotRightQuarter1, playoff.SlotRightQuarter2,
		playoff.SlotLeftSemi, playoff.SlotRightSemi,
		playoff.SlotNatty,
	}

	row := 2
	for i, t := range b.Seeds {
		f.SetCellValue(sheet, cellRef(1, row), fmt.Sprintf("seed_%d", i+1))
		f.SetCellValue(sheet, cellRef(2, row), t.Name)
		row++
	}
	for _, t := range b.Bubble {
		f.SetCellValue(sheet, cellRef(1, row), "bubble")
		f.SetCellValue(sheet, cellRef(2, row), t.Name)
		row++
	}
	for _, slot := range slotOrder {
		g := b.Slots[slot]
		if g == nil {
			continue
		}
		f.SetCellValue(sheet, cellRef(1, row), slot)
		f.SetCellValue(sheet, cellRef(2, row), fmt.Sprintf("%s vs %s", g.TeamA.Name, g.TeamB.Name))
		if g.Played {
			f.SetCellValue(sheet, cellRef(3, row),
				fmt.Sprintf("%s %d-%d", g.Winner.Name, max(g.ScoreA, g.ScoreB), min(g.ScoreA, g.ScoreB)))
		}
		row++
	}

	f.SetColWidth(sheet, "A", "A", 16)
	f.SetColWidth(sheet, "B", "C", 30)
	return nil
}

// cellRef converts 1-indexed column/row to an Excel reference like "B3".
func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

// colLetter converts a 1-indexed column number to its letter form.
func colLetter(col int) string {
	name := ""
	for col > 0 {
		col--
		name = string(rune('A'+col%26)) + name
		col /= 26
	}
	return name
}
