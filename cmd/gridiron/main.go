package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gridironlabs/gridiron/internal/config"
	"github.com/gridironlabs/gridiron/internal/excel"
	"github.com/gridironlabs/gridiron/internal/league"
	"github.com/gridironlabs/gridiron/internal/season"
	"github.com/gridironlabs/gridiron/internal/validator"
)

const defaultConfigFile = "config.yaml"

func resolveConfigPath(configFlag string) (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, nil
	}
	return "", fmt.Errorf("no config file found. Either create %s in the current directory or pass --config", defaultConfigFile)
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "gridiron",
		Short: "College football season simulator",
	}

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter config.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultConfigFile, "Output path for the config file")

	seasonCmd := &cobra.Command{
		Use:   "season",
		Short: "Run and inspect season simulations",
	}

	var configFile string
	seasonCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (default: config.yaml in current directory)")

	var outputFile string
	var throughWeek int
	var verbose bool
	simulateCmd := &cobra.Command{
		Use:          "simulate",
		Short:        "Simulate a season from a config file",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runSimulate(configPath, outputFile, throughWeek, verbose)
		},
	}
	simulateCmd.Flags().StringVarP(&outputFile, "output", "o", "season.xlsx", "Output Excel file path")
	simulateCmd.Flags().IntVarP(&throughWeek, "weeks", "w", 0, "Simulate through this week only (0 = full season)")
	simulateCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log each simulated game")

	validateCmd := &cobra.Command{
		Use:          "validate",
		Short:        "Generate a schedule from a config file and check its constraints",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runValidate(configPath)
		},
	}

	seasonCmd.AddCommand(simulateCmd, validateCmd)
	rootCmd.AddCommand(initCmd, seasonCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runInit(outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("✓ Created %s\n", outputPath)
	return nil
}

func runSimulate(configPath, outputPath string, throughWeek int, verbose bool) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	world, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("building league: %w", err)
	}

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	s, err := season.New(cfg, world, league.NopStore{}, logger)
	if err != nil {
		return fmt.Errorf("setting up season: %w", err)
	}

	if throughWeek > 0 {
		err = s.AdvanceTo(throughWeek + 1)
	} else {
		err = s.Complete()
	}
	if err != nil {
		return fmt.Errorf("simulating: %w", err)
	}

	printRankings(world.Teams)

	violations := validator.Validate(world.Teams, s.Games(), cfg.Season.RegularSeasonWeeks)
	errors := 0
	for _, v := range violations {
		switch v.Type {
		case "error":
			errors++
			fmt.Printf("✗ Rule violation: %s\n", v.Message)
		case "warning":
			fmt.Printf("⚠ Guideline violation: %s\n", v.Message)
		}
	}
	for _, w := range s.Warnings() {
		fmt.Printf("⚠ %s\n", w)
	}

	f, err := excel.Generate(world.Teams, world.Conferences, s.Games(), s.Bracket())
	if err != nil {
		return fmt.Errorf("generating report: %w", err)
	}
	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}
	fmt.Printf("\n✓ Season report saved to %s\n", outputPath)

	if errors > 0 {
		return fmt.Errorf("%d constraint violations found", errors)
	}
	return nil
}

func runValidate(configPath string) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	world, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("building league: %w", err)
	}

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	// Builds the schedule without simulating a single game; the validator
	// checks the unplayed slate.
	s, err := season.New(cfg, world, league.NopStore{}, logger)
	if err != nil {
		return fmt.Errorf("setting up season: %w", err)
	}

	violations := validator.Validate(world.Teams, s.Games(), cfg.Season.RegularSeasonWeeks)
	errors := 0
	for _, v := range violations {
		switch v.Type {
		case "error":
			errors++
			fmt.Printf("✗ Rule violation: %s\n", v.Message)
		case "warning":
			fmt.Printf("⚠ Guideline violation: %s\n", v.Message)
		}
	}
	for _, w := range s.Warnings() {
		fmt.Printf("⚠ %s\n", w)
	}

	if errors > 0 {
		return fmt.Errorf("%d constraint violations found", errors)
	}
	fmt.Println("✓ Schedule satisfies all constraints")
	return nil
}

func printRankings(teams []*league.Team) {
	sorted := make([]*league.Team, len(teams))
	copy(sorted, teams)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Ranking < sorted[j].Ranking })

	fmt.Println("\nFinal Rankings:")
	limit := 25
	if len(sorted) < limit {
		limit = len(sorted)
	}
	for _, t := range sorted[:limit] {
		fmt.Printf("  %2d. %-20s %2d-%-2d\n", t.Ranking, t.Name, t.TotalWins, t.TotalLosses)
	}
}

const configTemplate = `# Gridiron Season Configuration
# =============================
# Defines the league shape, playoff policy, and simulation tuning.

season:
  year: 2026

  # Weeks in the regular season. Must exceed the 12-game slate so byes fit.
  # The conference championship week and playoff rounds follow it.
  regular_season_weeks: 14

  # Seed for schedule generation and game simulation. Change it to get a
  # different season from the same league.
  seed: 42

  # Matchup strategy. "quota_slack" pairs the most constrained team first,
  # which avoids dead ends in tight conference/non-conference quotas.
  strategy: quota_slack

# Home-field advantage: a flat rating bonus applied to the home team.
# Neutral-site games (championships, playoffs) never get it.
home_field:
  enabled: true
  bonus: 3

# Playoff policy.
#   teams: 2, 4, or 12
#   autobids: highest-ranked conference champions that qualify automatically
#             (forced to 0 in the 2 and 4-team formats)
#   conf_champs_get_top4: in the 12-team format, reserve the four bye seeds
#             for the best conference champions
playoff:
  teams: 12
  autobids: 2
  conf_champs_get_top4: false

# Betting lines are precomputed by self-play simulation per rating gap.
odds:
  max_gap: 40
  trials: 250

# Conferences and their teams. Each team needs a rating (1-100) or an
# explicit players list. Conference game quotas derive from conference
# size, capped at 8; the rest of the 12-game slate is non-conference.
conferences:
  - name: Coastal
    teams:
      - { name: Ashford, rating: 92 }
      - { name: Bayport, rating: 88 }
      - { name: Cresthill, rating: 85 }
      - { name: Dunmore, rating: 82 }
      - { name: Eastlake, rating: 79 }
      - { name: Fairfield Tech, rating: 76 }
      - { name: Graniteville, rating: 73 }
      - { name: Harborview, rating: 70 }
      - { name: Ironwood, rating: 67 }
      - { name: Jasper State, rating: 64 }
  - name: Heartland
    teams:
      - { name: Kingsbridge, rating: 91 }
      - { name: Lakemont, rating: 87 }
      - { name: Midvale, rating: 84 }
      - { name: Northgate, rating: 81 }
      - { name: Oakhurst, rating: 78 }
      - { name: Pinecrest, rating: 75 }
      - { name: Quarry Ridge, rating: 72 }
      - { name: Riverton, rating: 69 }
      - { name: Stonebrook, rating: 66 }
      - { name: Talloaks, rating: 63 }

# Rivalry games are scheduled before the general pairing pass. A week pins
# the game to that week; omit it to let the scheduler place it.
rivalries:
  - { a: Ashford, b: Bayport, week: 13, name: "Harbor Bowl" }
  - { a: Kingsbridge, b: Lakemont, week: 13, name: "Old Iron Kettle" }
`
