// Package selfplay runs batches of policy-versus-policy games through game
// sessions.
package selfplay

import (
	"context"
	"errors"
	"fmt"
	"sync"

	engine "github.com/SabbeRubbish/azul-ai/engine"
	"github.com/SabbeRubbish/azul-ai/engine/agent"
	"github.com/SabbeRubbish/azul-ai/service/internal/config"
	"github.com/SabbeRubbish/azul-ai/service/internal/game"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// MaxTurns stops a game that cannot finish. Free-wall games can reach a
// position where no wall row is completable.
const MaxTurns = 5000

// Summary aggregates the results of a batch.
type Summary struct {
	Games    int
	Finished int // reached game over
	Stranded int // stopped at MaxTurns
	Faulted  int
	Policies []string // policy per seat
	Wins     []int    // per seat; co-winners each count
	Scores   []int    // summed final score per seat
}

// MeanScore returns the average final score of seat over finished games.
func (s Summary) MeanScore(seat int) float64 {
	if s.Finished == 0 {
		return 0
	}
	return float64(s.Scores[seat]) / float64(s.Finished)
}

// result is the outcome of one game.
type result struct {
	stranded bool
	faulted  bool
	winners  []int
	scores   []int
}

// Run plays cfg.Games games with at most cfg.Workers in flight. Game i deals
// from a source seeded with cfg.Seed+i, so a batch is reproducible.
func Run(ctx context.Context, cfg config.Config, logger *log.Logger) (Summary, error) {
	if err := cfg.Validate(); err != nil {
		return Summary{}, err
	}
	if logger == nil {
		logger = log.StandardLogger()
	}

	sum := Summary{
		Policies: make([]string, cfg.Players),
		Wins:     make([]int, cfg.Players),
		Scores:   make([]int, cfg.Players),
	}
	for seat := range sum.Policies {
		sum.Policies[seat] = cfg.PolicyName(seat)
	}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := 0; i < cfg.Games; i++ {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			res, err := playGame(ctx, cfg, i, logger)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			mu.Lock()
			defer mu.Unlock()
			sum.add(res)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return sum, err
	}
	if err := ctx.Err(); err != nil {
		return sum, err
	}

	entry := logger.WithFields(log.Fields{
		"games":    sum.Games,
		"finished": sum.Finished,
		"stranded": sum.Stranded,
		"faulted":  sum.Faulted,
	})
	for seat, name := range sum.Policies {
		entry = entry.WithField(fmt.Sprintf("seat%d", seat), fmt.Sprintf("%s wins=%d mean=%.1f", name, sum.Wins[seat], sum.MeanScore(seat)))
	}
	entry.Info("Self-play finished")
	return sum, nil
}

// add folds one game into the summary.
func (s *Summary) add(r result) {
	s.Games++
	switch {
	case r.faulted:
		s.Faulted++
		return
	case r.stranded:
		s.Stranded++
		return
	}
	s.Finished++
	for _, w := range r.winners {
		s.Wins[w]++
	}
	for seat, score := range r.scores {
		s.Scores[seat] += score
	}
}

// playGame runs game index i to the end in its own session.
func playGame(ctx context.Context, cfg config.Config, i int, logger *log.Logger) (result, error) {
	seed := cfg.Seed + uint64(i)
	session := game.NewSession(cfg.HouseRules(), engine.NewRandomSource(seed), logger)

	policies := make([]agent.Policy, cfg.Players)
	seats := make(map[uuid.UUID]int, cfg.Players)
	for seat := range policies {
		p, err := agent.NewPolicy(cfg.PolicyName(seat), seed<<3|uint64(seat))
		if err != nil {
			return result{}, err
		}
		policies[seat] = p
		id, err := session.AddPlayer(p.Name())
		if err != nil {
			return result{}, err
		}
		seats[id] = seat
	}
	if err := session.Start(); err != nil {
		return result{}, err
	}

	var res result
	for turn := 0; ; turn++ {
		if err := ctx.Err(); err != nil {
			return result{}, err
		}
		id, ok := session.CurrentPlayer()
		if !ok {
			break
		}
		if turn >= MaxTurns {
			res.stranded = true
			break
		}
		a, err := policies[seats[id]].ChooseAction(session.Snapshot())
		if err != nil {
			return result{}, err
		}
		if err := session.ApplyAction(id, a); err != nil {
			if errors.Is(err, engine.ErrInvariantViolation) {
				res.faulted = true
				break
			}
			return result{}, err
		}
	}

	st := session.SyncState()
	for _, p := range st.Players {
		res.scores = append(res.scores, p.Score)
	}
	for _, w := range st.Winners {
		res.winners = append(res.winners, seats[w])
	}
	logger.WithFields(log.Fields{
		"game":    i,
		"game_id": session.ID,
		"seed":    seed,
		"scores":  res.scores,
		"winners": res.winners,
	}).Debug("Self-play game done")
	return res, nil
}
