// Package config layers engine settings from defaults, an optional yaml
// file, FOURPLY_* environment variables, and command-line flags.
package config

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	KeyRows                = "rows"
	KeyCols                = "cols"
	KeyStrength            = "strength"
	KeyEvaluator           = "evaluator"
	KeyRandomSeed          = "random-seed"
	KeyCachePhaseThreshold = "cache-phase-threshold"
	KeyCacheTablePower     = "cache-table-power"
	KeyLines3WinningScale  = "lines3-winning-scale"
	KeyLines3ParityFactor  = "lines3-parity-factor"
	KeyLines3TieBreak      = "lines3-tie-break"
	KeyAnalyzerDB          = "analyzer-db"
)

// Config wraps a viper instance with typed accessors.
type Config struct {
	v *viper.Viper
}

// DefaultConfig returns a Config with defaults and environment binding, but
// no flags or file applied yet.
func DefaultConfig() *Config {
	v := viper.New()
	v.SetDefault(KeyRows, 6)
	v.SetDefault(KeyCols, 7)
	v.SetDefault(KeyStrength, 4)
	v.SetDefault(KeyEvaluator, "linesofthree")
	v.SetDefault(KeyRandomSeed, 42)
	v.SetDefault(KeyCachePhaseThreshold, 2)
	v.SetDefault(KeyCacheTablePower, 0) // 0: size from system memory
	v.SetDefault(KeyLines3WinningScale, 1000)
	v.SetDefault(KeyLines3ParityFactor, 2)
	v.SetDefault(KeyLines3TieBreak, 10)
	v.SetDefault(KeyAnalyzerDB, "")

	v.SetEnvPrefix("fourply")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return &Config{v: v}
}

// Load parses flags (and an optional --config yaml file) over the defaults.
func (c *Config) Load(args []string) error {
	fs := pflag.NewFlagSet("fourply", pflag.ContinueOnError)
	// Binaries layer their own flags on top of these.
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Int(KeyRows, c.v.GetInt(KeyRows), "board rows, 4 to 8")
	fs.Int(KeyCols, c.v.GetInt(KeyCols), "board columns, 4 to 8")
	fs.Int(KeyStrength, c.v.GetInt(KeyStrength), "search strength in rounds (two plies per round)")
	fs.String(KeyEvaluator, c.v.GetString(KeyEvaluator), "evaluator: fixed, random, squareweights, linesofthree")
	fs.Uint64(KeyRandomSeed, c.v.GetUint64(KeyRandomSeed), "seed for the random evaluator")
	fs.Int(KeyCachePhaseThreshold, c.v.GetInt(KeyCachePhaseThreshold), "men per rank both players need before caching starts")
	fs.Int(KeyCacheTablePower, c.v.GetInt(KeyCacheTablePower), "log2 of transposition table entries; 0 sizes from memory")
	fs.String(KeyAnalyzerDB, c.v.GetString(KeyAnalyzerDB), "sqlite path for analyzer output; empty disables")
	configPath := fs.String("config", "", "optional yaml config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *configPath != "" {
		c.v.SetConfigFile(*configPath)
		c.v.SetConfigType("yaml")
		if err := c.v.ReadInConfig(); err != nil {
			return err
		}
		log.Info().Str("path", *configPath).Msg("read-config-file")
	}
	return c.v.BindPFlags(fs)
}

func (c *Config) Rows() int                 { return c.v.GetInt(KeyRows) }
func (c *Config) Cols() int                 { return c.v.GetInt(KeyCols) }
func (c *Config) Strength() int             { return c.v.GetInt(KeyStrength) }
func (c *Config) Evaluator() string         { return c.v.GetString(KeyEvaluator) }
func (c *Config) RandomSeed() uint64        { return c.v.GetUint64(KeyRandomSeed) }
func (c *Config) CachePhaseThreshold() int  { return c.v.GetInt(KeyCachePhaseThreshold) }
func (c *Config) CacheTablePower() int      { return c.v.GetInt(KeyCacheTablePower) }
func (c *Config) Lines3WinningScale() int32 { return c.v.GetInt32(KeyLines3WinningScale) }
func (c *Config) Lines3ParityFactor() int32 { return c.v.GetInt32(KeyLines3ParityFactor) }
func (c *Config) Lines3TieBreak() int32     { return c.v.GetInt32(KeyLines3TieBreak) }
func (c *Config) AnalyzerDB() string        { return c.v.GetString(KeyAnalyzerDB) }

// Set overrides a single key, mostly for the shell's set command and tests.
func (c *Config) Set(key string, value any) { c.v.Set(key, value) }

// SanitizedSettings dumps every setting for logging.
func (c *Config) SanitizedSettings() map[string]any { return c.v.AllSettings() }
