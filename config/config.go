// Package config loads settings from defaults, an optional config file,
// BLOCKADE_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug            = "debug"
	ConfigMode             = "mode"
	ConfigScorers          = "scorers"
	ConfigSeed             = "seed"
	ConfigExhaustionPolicy = "exhaustion-policy"
	ConfigMaxRounds        = "max-rounds"
	ConfigNumGames         = "num-games"
	ConfigThreads          = "threads"
	ConfigLogFile          = "log-file"
	ConfigResultsDB        = "results-db"
	ConfigSeedsFile        = "seeds-file"
	ConfigColor            = "color"
	ConfigCPUProfile       = "cpu-profile"
	ConfigFile             = "config"
)

const (
	ModeLocal       = "local"
	ModeInteractive = "interactive"
	ModeShell       = "shell"
	ModeBatch       = "batch"
)

type Config struct {
	*viper.Viper
}

// DefaultConfig returns a config holding only the defaults. Tests use it.
func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigMode, ModeLocal)
	c.SetDefault(ConfigScorers, []string{"smallest", "smallest", "smallest", "smallest"})
	c.SetDefault(ConfigSeed, "")
	c.SetDefault(ConfigExhaustionPolicy, "retry")
	c.SetDefault(ConfigMaxRounds, 0)
	c.SetDefault(ConfigNumGames, 100)
	c.SetDefault(ConfigThreads, 4)
	c.SetDefault(ConfigLogFile, "")
	c.SetDefault(ConfigResultsDB, "")
	c.SetDefault(ConfigSeedsFile, "")
	c.SetDefault(ConfigColor, true)
	c.SetDefault(ConfigCPUProfile, "")
}

// Load reads the environment, the flags in args, and the config file
// named by --config if any.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	c.setDefaults()
	c.SetEnvPrefix("blockade")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	fs := pflag.NewFlagSet("blockade", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigMode, ModeLocal, "run mode: local, interactive, shell or batch")
	fs.StringSlice(ConfigScorers, nil, "scorer per player: random, smallest, reach or script:<file.lua>")
	fs.String(ConfigSeed, "", "base64 32-byte seed for reproducible games")
	fs.String(ConfigExhaustionPolicy, "retry", "retry (search stuck players every round) or retire")
	fs.Int(ConfigMaxRounds, 0, "stop a game after this many rounds (0 = no limit)")
	fs.Int(ConfigNumGames, 100, "number of games in batch mode")
	fs.Int(ConfigThreads, 4, "worker goroutines in batch mode")
	fs.String(ConfigLogFile, "", "per-turn CSV log for batch mode")
	fs.String(ConfigResultsDB, "", "sqlite file to store batch results in")
	fs.String(ConfigSeedsFile, "", "file of seeds, one game per seed, for batch mode")
	fs.Bool(ConfigColor, true, "color board output")
	fs.String(ConfigCPUProfile, "", "write a CPU profile here")
	fs.String(ConfigFile, "", "optional config file (yaml, toml or json)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	if f := c.GetString(ConfigFile); f != "" {
		c.SetConfigFile(f)
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", f, err)
		}
	}
	return c.validate()
}

func (c *Config) validate() error {
	switch c.GetString(ConfigMode) {
	case ModeLocal, ModeInteractive, ModeShell, ModeBatch:
	default:
		return fmt.Errorf("unknown mode %q", c.GetString(ConfigMode))
	}
	switch c.GetString(ConfigExhaustionPolicy) {
	case "retry", "retire":
	default:
		return fmt.Errorf("unknown exhaustion policy %q", c.GetString(ConfigExhaustionPolicy))
	}
	if n := len(c.GetStringSlice(ConfigScorers)); n != 4 {
		return fmt.Errorf("need 4 scorers, got %d", n)
	}
	if c.GetInt(ConfigThreads) < 1 {
		return fmt.Errorf("threads must be at least 1")
	}
	return nil
}

// SanitizedSettings returns all settings, for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
