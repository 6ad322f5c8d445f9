package selfplay

import (
	"context"
	"testing"

	engine "github.com/SabbeRubbish/azul-ai/engine"
	"github.com/SabbeRubbish/azul-ai/service/internal/config"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(players, games int) config.Config {
	c := config.Default()
	c.Players = players
	c.Games = games
	c.Workers = 3
	c.Seed = 11
	return c
}

func TestRunStandardBatch(t *testing.T) {
	logger, hook := test.NewNullLogger()
	sum, err := Run(context.Background(), testConfig(2, 8), logger)
	require.NoError(t, err)

	assert.Equal(t, 8, sum.Games)
	assert.Equal(t, 8, sum.Finished)
	assert.Zero(t, sum.Stranded)
	assert.Zero(t, sum.Faulted)
	assert.Equal(t, []string{"greedy", "random"}, sum.Policies)
	assert.GreaterOrEqual(t, sum.Wins[0]+sum.Wins[1], 8)
	for seat := range sum.Policies {
		assert.GreaterOrEqual(t, sum.MeanScore(seat), 0.0)
	}

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, log.InfoLevel, entry.Level)
	assert.Equal(t, "Self-play finished", entry.Message)
	assert.Equal(t, 8, entry.Data["finished"])
}

func TestRunIsReproducible(t *testing.T) {
	logger, _ := test.NewNullLogger()
	cfg := testConfig(3, 6)
	a, err := Run(context.Background(), cfg, logger)
	require.NoError(t, err)
	b, err := Run(context.Background(), cfg, logger)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRunFreeWallAccountsEveryGame(t *testing.T) {
	logger, _ := test.NewNullLogger()
	cfg := testConfig(4, 4)
	cfg.Difficulty = engine.DifficultyFreeWall
	sum, err := Run(context.Background(), cfg, logger)
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Games)
	assert.Equal(t, sum.Games, sum.Finished+sum.Stranded+sum.Faulted)
	assert.Zero(t, sum.Faulted)
}

func TestRunCancelled(t *testing.T) {
	logger, _ := test.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, testConfig(2, 50), logger)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(2, 1)
	cfg.Policies = []string{"oracle"}
	_, err := Run(context.Background(), cfg, nil)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestMeanScoreWithoutFinishedGames(t *testing.T) {
	assert.Zero(t, Summary{Scores: []int{0}}.MeanScore(0))
}
