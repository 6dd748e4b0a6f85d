package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gridironlabs/gridiron/internal/league"
	"github.com/gridironlabs/gridiron/internal/playoff"
	"github.com/gridironlabs/gridiron/internal/ratings"
	"github.com/gridironlabs/gridiron/internal/sim"
	"github.com/gridironlabs/gridiron/internal/strategy"
)

// TotalRegularSeasonGames is fixed; per-team quotas are derived from it
// and from conference size.
const TotalRegularSeasonGames = 12

// maxConferenceGames caps the conference slate for large conferences.
const maxConferenceGames = 8

type Season struct {
	Year               int    `yaml:"year"`
	RegularSeasonWeeks int    `yaml:"regular_season_weeks"`
	Seed               int64  `yaml:"seed"`
	AutoRealignment    bool   `yaml:"auto_realignment"`
	Strategy           string `yaml:"strategy"`
}

type HomeField struct {
	Enabled bool `yaml:"enabled"`
	Bonus   int  `yaml:"bonus"`
}

type Playoff struct {
	Teams             int  `yaml:"teams"`
	Autobids          int  `yaml:"autobids"`
	ConfChampsGetTop4 bool `yaml:"conf_champs_get_top4"`
}

type PlayerConfig struct {
	Name     string `yaml:"name"`
	Position string `yaml:"position"`
	Overall  int    `yaml:"overall"`
}

type TeamConfig struct {
	Name    string         `yaml:"name"`
	Rating  int            `yaml:"rating"`
	Players []PlayerConfig `yaml:"players"` // optional; synthetic roster when empty
}

type ConferenceConfig struct {
	Name  string       `yaml:"name"`
	Teams []TeamConfig `yaml:"teams"`
}

type RivalryConfig struct {
	A    string `yaml:"a"`
	B    string `yaml:"b"`
	Week int    `yaml:"week"`
	Name string `yaml:"name"`
}

type OddsConfig struct {
	MaxGap int `yaml:"max_gap"`
	Trials int `yaml:"trials"`
}

// SimOverrides exposes the most commonly tuned simulator constants; zero
// values fall through to the defaults.
type SimOverrides struct {
	RegulationPossessions int     `yaml:"regulation_possessions"`
	PassRate              float64 `yaml:"pass_rate"`
	CompletionRate        float64 `yaml:"completion_rate"`
}

type Config struct {
	Season       Season             `yaml:"season"`
	HomeField    HomeField          `yaml:"home_field"`
	Playoff      Playoff            `yaml:"playoff"`
	Conferences  []ConferenceConfig `yaml:"conferences"`
	Independents []TeamConfig       `yaml:"independents"`
	Rivalries    []RivalryConfig    `yaml:"rivalries"`
	Odds         OddsConfig         `yaml:"odds"`
	Sim          SimOverrides       `yaml:"sim"`
}

// LoadFromBytes parses YAML bytes into a Config and validates it.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

func (c *Config) applyDefaults() {
	if c.Season.RegularSeasonWeeks == 0 {
		c.Season.RegularSeasonWeeks = 14
	}
	if c.Season.Seed == 0 {
		c.Season.Seed = 1
	}
	if c.Season.Strategy == "" {
		c.Season.Strategy = "quota_slack"
	}
	if c.Playoff.Teams == 0 {
		c.Playoff.Teams = 4
	}
	if c.Odds.MaxGap == 0 {
		c.Odds.MaxGap = 40
	}
	if c.Odds.Trials == 0 {
		c.Odds.Trials = 250
	}
}

func (c *Config) validate() error {
	switch c.Playoff.Teams {
	case 2, 4, 12:
	default:
		return fmt.Errorf("playoff.teams must be 2, 4, or 12, got %d", c.Playoff.Teams)
	}

	if len(c.Conferences) == 0 && len(c.Independents) < 2 {
		return fmt.Errorf("at least one conference or two independents are required")
	}

	if c.Season.RegularSeasonWeeks <= TotalRegularSeasonGames {
		return fmt.Errorf("regular_season_weeks (%d) must exceed the %d-game slate to allow byes",
			c.Season.RegularSeasonWeeks, TotalRegularSeasonGames)
	}

	seen := make(map[string]string)
	checkTeam := func(t TeamConfig, where string) error {
		if t.Name == "" {
			return fmt.Errorf("%s contains a team with no name", where)
		}
		if prev, ok := seen[t.Name]; ok {
			return fmt.Errorf("team %q appears in both %q and %q", t.Name, prev, where)
		}
		seen[t.Name] = where
		if len(t.Players) == 0 && (t.Rating < 1 || t.Rating > 100) {
			return fmt.Errorf("team %q needs a rating in 1..100 or an explicit roster", t.Name)
		}
		for _, p := range t.Players {
			if p.Overall < 1 || p.Overall > 100 {
				return fmt.Errorf("team %q: player %q overall out of range", t.Name, p.Name)
			}
		}
		return nil
	}

	for _, conf := range c.Conferences {
		if len(conf.Teams) < 2 {
			return fmt.Errorf("conference %q needs at least two teams", conf.Name)
		}
		for _, t := range conf.Teams {
			if err := checkTeam(t, conf.Name); err != nil {
				return err
			}
		}
	}
	for _, t := range c.Independents {
		if err := checkTeam(t, "independents"); err != nil {
			return err
		}
	}

	for _, r := range c.Rivalries {
		if _, ok := seen[r.A]; !ok {
			return fmt.Errorf("rivalry %q: unknown team %q", r.Name, r.A)
		}
		if _, ok := seen[r.B]; !ok {
			return fmt.Errorf("rivalry %q: unknown team %q", r.Name, r.B)
		}
		if r.Week < 0 || r.Week > c.Season.RegularSeasonWeeks {
			return fmt.Errorf("rivalry %q: week %d outside the regular season", r.Name, r.Week)
		}
	}

	return nil
}

// League is the assembled in-memory world a season runs against.
type League struct {
	Teams       []*league.Team
	Conferences []*league.Conference
	Rosters     *ratings.StaticProvider
	Rivalries   []strategy.Rivalry
}

// Build materializes teams, conferences, rosters, and rivalries.
func (c *Config) Build() (*League, error) {
	l := &League{Rosters: ratings.NewStaticProvider()}
	byName := make(map[string]*league.Team)

	buildTeam := func(tc TeamConfig, conference string) (*league.Team, error) {
		t := &league.Team{Name: tc.Name, Conference: conference}
		var roster league.Roster
		if len(tc.Players) > 0 {
			roster = make(league.Roster)
			for _, p := range tc.Players {
				pos := league.Position(p.Position)
				roster[pos] = append(roster[pos], &league.Player{
					Name:     p.Name,
					Position: pos,
					Overall:  p.Overall,
				})
			}
			ratings.Apply(t, roster)
		} else {
			roster = ratings.Synthetic(tc.Name, tc.Rating)
			t.Rating = tc.Rating
			t.Offense = tc.Rating
			t.Defense = tc.Rating
		}
		if err := l.Rosters.Add(tc.Name, roster); err != nil {
			return nil, err
		}
		byName[t.Name] = t
		l.Teams = append(l.Teams, t)
		return t, nil
	}

	for _, cc := range c.Conferences {
		conf := &league.Conference{Name: cc.Name}
		confGames := len(cc.Teams) - 1
		if confGames > maxConferenceGames {
			confGames = maxConferenceGames
		}
		for _, tc := range cc.Teams {
			t, err := buildTeam(tc, cc.Name)
			if err != nil {
				return nil, err
			}
			t.ConfLimit = confGames
			t.NonConfLimit = TotalRegularSeasonGames - confGames
			conf.Teams = append(conf.Teams, t)
		}
		l.Conferences = append(l.Conferences, conf)
	}

	for _, tc := range c.Independents {
		t, err := buildTeam(tc, "")
		if err != nil {
			return nil, err
		}
		t.ConfLimit = 0
		t.NonConfLimit = TotalRegularSeasonGames
	}

	for _, rc := range c.Rivalries {
		l.Rivalries = append(l.Rivalries, strategy.Rivalry{
			A:    byName[rc.A],
			B:    byName[rc.B],
			Week: rc.Week,
			Name: rc.Name,
		})
	}

	return l, nil
}

// SimParams maps the config overrides onto the simulator defaults.
func (c *Config) SimParams() *sim.Params {
	p := sim.DefaultParams()
	if c.Sim.RegulationPossessions > 0 {
		p.RegulationPossessions = c.Sim.RegulationPossessions
	}
	if c.Sim.PassRate > 0 {
		p.PassRate = c.Sim.PassRate
	}
	if c.Sim.CompletionRate > 0 {
		p.CompletionRate = c.Sim.CompletionRate
	}
	if c.HomeField.Enabled {
		p.HomeFieldBonus = c.HomeField.Bonus
	}
	return p
}

// PlayoffConfig returns the normalized playoff policy.
func (c *Config) PlayoffConfig() (playoff.Config, error) {
	return playoff.Config{
		Teams:             c.Playoff.Teams,
		Autobids:          c.Playoff.Autobids,
		ConfChampsGetTop4: c.Playoff.ConfChampsGetTop4,
	}.Normalize()
}
