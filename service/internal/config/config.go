// Package config loads self-play settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	engine "github.com/SabbeRubbish/azul-ai/engine"
	"github.com/SabbeRubbish/azul-ai/engine/agent"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	EnvPlayers    = "AZUL_PLAYERS"
	EnvDifficulty = "AZUL_DIFFICULTY"
	EnvSeed       = "AZUL_SEED"
	EnvGames      = "AZUL_GAMES"
	EnvWorkers    = "AZUL_WORKERS"
	EnvPolicies   = "AZUL_POLICIES"
	EnvLogLevel   = "LOG_LEVEL"
	EnvLogFormat  = "LOG_FORMAT"
)

// EnvVars lists every variable Load reads, for usage output.
var EnvVars = []string{
	EnvPlayers,
	EnvDifficulty,
	EnvSeed,
	EnvGames,
	EnvWorkers,
	EnvPolicies,
	EnvLogLevel,
	EnvLogFormat,
}

// ErrInvalid is wrapped by every validation error from Load.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the settings for a batch of self-play games.
type Config struct {
	Players    int
	Difficulty engine.Difficulty
	Seed       uint64
	Games      int
	Workers    int
	Policies   []string // cycled over the seats
	LogLevel   log.Level
	LogFormat  string // "text" or "json"
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Players:    2,
		Difficulty: engine.DifficultyStandard,
		Seed:       1,
		Games:      100,
		Workers:    4,
		Policies:   []string{"greedy", "random"},
		LogLevel:   log.InfoLevel,
		LogFormat:  "text",
	}
}

// Load reads the configuration. Values from lookupEnv win over values from
// envFile; a missing envFile is ignored. An empty envFile skips the file.
func Load(envFile string, lookupEnv func(string) (string, bool)) (Config, error) {
	fileValues := map[string]string{}
	if envFile != "" {
		values, err := godotenv.Read(envFile)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("reading %s: %w", envFile, err)
		default:
			fileValues = values
		}
	}
	lookup := func(key string) (string, bool) {
		if v, ok := lookupEnv(key); ok {
			return v, true
		}
		v, ok := fileValues[key]
		return v, ok
	}

	c := Default()
	var err error
	if v, ok := lookup(EnvPlayers); ok {
		if c.Players, err = positiveInt(EnvPlayers, v); err != nil {
			return Config{}, err
		}
	}
	if v, ok := lookup(EnvDifficulty); ok {
		if c.Difficulty, err = engine.ParseDifficulty(strings.TrimSpace(v)); err != nil {
			return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalid, EnvDifficulty, err)
		}
	}
	if v, ok := lookup(EnvSeed); ok {
		if c.Seed, err = strconv.ParseUint(strings.TrimSpace(v), 10, 64); err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q is not an unsigned integer", ErrInvalid, EnvSeed, v)
		}
	}
	if v, ok := lookup(EnvGames); ok {
		if c.Games, err = positiveInt(EnvGames, v); err != nil {
			return Config{}, err
		}
	}
	if v, ok := lookup(EnvWorkers); ok {
		if c.Workers, err = positiveInt(EnvWorkers, v); err != nil {
			return Config{}, err
		}
	}
	if v, ok := lookup(EnvPolicies); ok {
		c.Policies = splitList(v)
	}
	if v, ok := lookup(EnvLogLevel); ok {
		if c.LogLevel, err = log.ParseLevel(strings.TrimSpace(v)); err != nil {
			return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalid, EnvLogLevel, err)
		}
	}
	if v, ok := lookup(EnvLogFormat); ok {
		c.LogFormat = strings.ToLower(strings.TrimSpace(v))
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the settings against the engine's limits.
func (c Config) Validate() error {
	if c.Players < engine.MinPlayers || c.Players > engine.MaxPlayers {
		return fmt.Errorf("%w: %d players, need %d-%d", ErrInvalid, c.Players, engine.MinPlayers, engine.MaxPlayers)
	}
	rules := c.HouseRules()
	if err := rules.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Games < 1 || c.Workers < 1 {
		return fmt.Errorf("%w: games and workers must be positive", ErrInvalid)
	}
	if len(c.Policies) == 0 {
		return fmt.Errorf("%w: no policies", ErrInvalid)
	}
	for _, name := range c.Policies {
		if _, err := agent.NewPolicy(name, 0); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalid, c.LogFormat)
	}
	return nil
}

// HouseRules returns the engine rules for one game.
func (c Config) HouseRules() engine.HouseRules {
	rules := engine.DefaultHouseRules()
	rules.NumPlayers = uint8(c.Players)
	rules.Difficulty = c.Difficulty
	return rules
}

// PolicyName returns the policy seated at seat.
func (c Config) PolicyName(seat int) string {
	return c.Policies[seat%len(c.Policies)]
}

// NewLogger builds a logrus logger with the configured level and formatter.
func (c Config) NewLogger() *log.Logger {
	logger := log.New()
	logger.SetLevel(c.LogLevel)
	if c.LogFormat == "json" {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return logger
}

func positiveInt(key, v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %s=%q is not a positive integer", ErrInvalid, key, v)
	}
	return n, nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, strings.ToLower(s))
		}
	}
	return out
}
