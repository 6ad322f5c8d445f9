package config

import (
	"os"
	"path/filepath"
	"testing"

	engine "github.com/SabbeRubbish/azul-ai/engine"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapLookup returns a lookup func backed by m.
func mapLookup(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func writeEnvFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load("", mapLookup(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadMissingFileIsIgnored(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.env"), mapLookup(nil))
	require.NoError(t, err)
	assert.Equal(t, 2, c.Players)
}

func TestLoadFileAndEnvironment(t *testing.T) {
	path := writeEnvFile(t, `AZUL_PLAYERS=3
AZUL_DIFFICULTY=free
AZUL_SEED=42
AZUL_GAMES=10
AZUL_POLICIES=random, Greedy
LOG_FORMAT=json
`)
	env := map[string]string{
		EnvPlayers:  "4",
		EnvWorkers:  "2",
		EnvLogLevel: "debug",
	}

	c, err := Load(path, mapLookup(env))
	require.NoError(t, err)
	assert.Equal(t, 4, c.Players, "environment wins over the file")
	assert.Equal(t, engine.DifficultyFreeWall, c.Difficulty)
	assert.Equal(t, uint64(42), c.Seed)
	assert.Equal(t, 10, c.Games)
	assert.Equal(t, 2, c.Workers)
	assert.Equal(t, []string{"random", "greedy"}, c.Policies)
	assert.Equal(t, log.DebugLevel, c.LogLevel)
	assert.Equal(t, "json", c.LogFormat)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"one player":         {EnvPlayers: "1"},
		"five players":       {EnvPlayers: "5"},
		"players not int":    {EnvPlayers: "two"},
		"unknown difficulty": {EnvDifficulty: "expert"},
		"negative seed":      {EnvSeed: "-1"},
		"zero games":         {EnvGames: "0"},
		"zero workers":       {EnvWorkers: "0"},
		"empty policies":     {EnvPolicies: " , "},
		"unknown policy":     {EnvPolicies: "greedy,oracle"},
		"bad level":          {EnvLogLevel: "loud"},
		"bad format":         {EnvLogFormat: "xml"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load("", mapLookup(env))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeEnvFile(t, "AZUL_PLAYERS='3\n")
	_, err := Load(path, mapLookup(nil))
	assert.Error(t, err)
}

func TestHouseRules(t *testing.T) {
	c := Default()
	c.Players = 3
	c.Difficulty = engine.DifficultyFreeWall
	rules := c.HouseRules()
	assert.Equal(t, uint8(3), rules.NumPlayers)
	assert.Equal(t, engine.DifficultyFreeWall, rules.Difficulty)
	assert.NoError(t, rules.Validate())
}

func TestPolicyNameCycles(t *testing.T) {
	c := Default()
	c.Players = 4
	assert.Equal(t, "greedy", c.PolicyName(0))
	assert.Equal(t, "random", c.PolicyName(1))
	assert.Equal(t, "greedy", c.PolicyName(2))
	assert.Equal(t, "random", c.PolicyName(3))
}

func TestNewLogger(t *testing.T) {
	c := Default()
	c.LogLevel = log.WarnLevel
	logger := c.NewLogger()
	assert.Equal(t, log.WarnLevel, logger.GetLevel())
	assert.IsType(t, &log.TextFormatter{}, logger.Formatter)

	c.LogFormat = "json"
	assert.IsType(t, &log.JSONFormatter{}, c.NewLogger().Formatter)
}
