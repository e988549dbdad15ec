package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"wumpus/agents"
	"wumpus/grid_world"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ErrConfig is returned for configurations describing an unplayable game.
var ErrConfig = errors.New("invalid game config")

// OuterConfig is the envelope of a yaml config document: Kind names the
// document type and Def holds the GameConfig itself.
type OuterConfig struct {
	Kind string      `mapstructure:"kind"`
	Def  interface{} `mapstructure:"def"`
}

// GameConfig is everything needed to set up a game, supplied once at start.
// Viper folds keys to lower case before the def is re-marshalled, hence the
// lower case yaml tags on camelCase keys.
type GameConfig struct {
	// Size is N, the side of the square world.
	Size int `mapstructure:"size" yaml:"size" toml:"size"`
	// Layout holds N rows of N cell symbols: '.', '#', 'P', 'W'.
	Layout []string `mapstructure:"layout" yaml:"layout" toml:"layout"`
	// Monsters, when positive, must agree with the monsters in Layout.
	Monsters int            `mapstructure:"monsters" yaml:"monsters" toml:"monsters"`
	Agent    AgentConfig    `mapstructure:"agent" yaml:"agent" toml:"agent"`
	Wanderer WandererConfig `mapstructure:"wanderer" yaml:"wanderer" toml:"wanderer"`
	// Strategy names a registered agents.Strategy.
	Strategy string        `mapstructure:"strategy" yaml:"strategy" toml:"strategy"`
	Tuning   agents.Tuning `mapstructure:"tuning" yaml:"tuning" toml:"tuning"`
	// MaxTicks caps the run; zero means no cap.
	MaxTicks int `mapstructure:"maxTicks" yaml:"maxticks" toml:"max_ticks"`
	// Seed drives the wanderer; zero picks one from the clock.
	Seed    int64         `mapstructure:"seed" yaml:"seed" toml:"seed"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging" toml:"logging"`
	Server  ServerConfig  `mapstructure:"server" yaml:"server" toml:"server"`
}

// Pose is a start cell and heading. Heading is one of south, east, north, west.
type Pose struct {
	Row     int    `mapstructure:"row" yaml:"row" toml:"row"`
	Col     int    `mapstructure:"col" yaml:"col" toml:"col"`
	Heading string `mapstructure:"heading" yaml:"heading" toml:"heading"`
}

type AgentConfig struct {
	Name   string `mapstructure:"name" yaml:"name" toml:"name"`
	Start  Pose   `mapstructure:"start" yaml:"start" toml:"start"`
	Arrows int    `mapstructure:"arrows" yaml:"arrows" toml:"arrows"`
}

type WandererConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled" toml:"enabled"`
	ID      string `mapstructure:"id" yaml:"id" toml:"id"`
	Start   Pose   `mapstructure:"start" yaml:"start" toml:"start"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" toml:"level"`
	Format string `mapstructure:"format" yaml:"format" toml:"format"` // "json" or "console"
}

type ServerConfig struct {
	Host string `mapstructure:"host" yaml:"host" toml:"host"`
	Port string `mapstructure:"port" yaml:"port" toml:"port"`
	// PublishEvery is the number of ticks between snapshots sent to viewers.
	PublishEvery int `mapstructure:"publishEvery" yaml:"publishevery" toml:"publish_every"`
}

// DefaultConfig returns the fixture game: the 5x5 test board, the hero at the
// center facing east with one arrow, and the wanderer in the corner.
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Size:     len(grid_world.DefaultLayout),
		Layout:   append([]string{}, grid_world.DefaultLayout...),
		Monsters: 1,
		Agent: AgentConfig{
			Name:   "hero",
			Start:  Pose{Row: 2, Col: 2, Heading: "east"},
			Arrows: 1,
		},
		Wanderer: WandererConfig{
			Enabled: true,
			ID:      "dummy",
			Start:   Pose{Row: 0, Col: 0, Heading: "south"},
		},
		Strategy: "explorer",
		Tuning:   agents.DefaultTuning(),
		MaxTicks: 1000,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Server: ServerConfig{
			Port:         "8080",
			PublishEvery: 1,
		},
	}
}

// Load reads a config file, picking the decoder by extension: .toml files are
// plain documents, anything else is a yaml {kind, def} envelope.
func Load(path string) (*GameConfig, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FromToml(path)
	default:
		return FromYaml(path)
	}
}

// FromYaml reads the envelope with viper, then decodes its def over the
// defaults, so omitted fields keep their default values.
func FromYaml(path string) (*GameConfig, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))
	var err error
	if err = vp.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	outerConfig := &OuterConfig{}
	if err = vp.Unmarshal(outerConfig); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	var spec []byte
	if spec, err = yaml.Marshal(outerConfig.Def); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err = yaml.Unmarshal(spec, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// FromToml decodes a toml document over the defaults.
func FromToml(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseHeading maps a heading name to its unit vector.
func ParseHeading(name string) (grid_world.Orientation, error) {
	for _, o := range grid_world.Orientations {
		if strings.EqualFold(o.String(), name) {
			return o, nil
		}
	}
	return grid_world.Orientation{}, fmt.Errorf("%w: unknown heading %q", ErrConfig, name)
}

// Validate checks that the config describes a playable game.
func (cfg *GameConfig) Validate() error {
	if cfg.Size < 1 {
		return fmt.Errorf("%w: size %d", ErrConfig, cfg.Size)
	}
	if len(cfg.Layout) != cfg.Size {
		return fmt.Errorf("%w: layout has %d rows, want %d", ErrConfig, len(cfg.Layout), cfg.Size)
	}
	grid, err := grid_world.Convert(cfg.Layout)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if monsters := grid.Count(grid_world.MONSTER); monsters == 0 {
		return fmt.Errorf("%w: layout has no monster", ErrConfig)
	} else if cfg.Monsters > 0 && cfg.Monsters != monsters {
		return fmt.Errorf("%w: monsters is %d but layout holds %d", ErrConfig, cfg.Monsters, monsters)
	}

	if cfg.Agent.Arrows < 0 {
		return fmt.Errorf("%w: negative arrows", ErrConfig)
	}
	if err := cfg.Agent.Start.validate(cfg.Size); err != nil {
		return fmt.Errorf("agent start: %w", err)
	}
	start := grid.CellAt(cfg.Agent.Start.Position())
	if start != grid_world.EMPTY {
		return fmt.Errorf("%w: agent starts on %v", ErrConfig, start)
	}
	if cfg.Wanderer.Enabled {
		if cfg.Wanderer.ID == "" {
			return fmt.Errorf("%w: wanderer needs an id", ErrConfig)
		}
		// The wanderer is immune, so any cell will do.
		if err := cfg.Wanderer.Start.validate(cfg.Size); err != nil {
			return fmt.Errorf("wanderer start: %w", err)
		}
	}

	if cfg.Tuning.MaxRetries < 0 || cfg.Tuning.MaxShares < 0 {
		return fmt.Errorf("%w: negative tuning", ErrConfig)
	}
	if cfg.MaxTicks < 0 {
		return fmt.Errorf("%w: negative maxTicks", ErrConfig)
	}
	return nil
}

func (p Pose) validate(n int) error {
	if p.Row < 0 || p.Row >= n || p.Col < 0 || p.Col >= n {
		return fmt.Errorf("%w: (%d,%d) is off the board", ErrConfig, p.Row, p.Col)
	}
	_, err := ParseHeading(p.Heading)
	return err
}

// Position is the start cell of the pose.
func (p Pose) Position() grid_world.Position {
	return grid_world.Position{Row: p.Row, Col: p.Col}
}
