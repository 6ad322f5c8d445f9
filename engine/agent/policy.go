package agent

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"

	engine "github.com/SabbeRubbish/azul-ai/engine"
)

// ErrNoLegalActions is returned when a policy is asked to move in a finished
// game.
var ErrNoLegalActions = errors.New("no legal actions")

// Policy picks the next draft for the acting player of a game.
type Policy interface {
	Name() string
	ChooseAction(g *engine.GameState) (engine.Action, error)
}

// NewPolicy builds a policy by name. seed drives any randomness.
func NewPolicy(name string, seed uint64) (Policy, error) {
	switch name {
	case "random":
		return NewRandomPolicy(seed), nil
	case "greedy":
		return &GreedyPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown policy: %q", name)
	}
}

// RandomPolicy picks uniformly among the legal actions. It is not safe for
// concurrent use.
type RandomPolicy struct {
	rng *rand.Rand
}

func NewRandomPolicy(seed uint64) *RandomPolicy {
	return &RandomPolicy{rng: rand.New(rand.NewPCG(seed, seed^0xA5A5A5A5A5A5A5A5))}
}

func (p *RandomPolicy) Name() string { return "random" }

func (p *RandomPolicy) ChooseAction(g *engine.GameState) (engine.Action, error) {
	legal := g.LegalActions()
	if len(legal) == 0 {
		return engine.Action{}, ErrNoLegalActions
	}
	return legal[p.rng.IntN(len(legal))], nil
}

// GreedyPolicy scores each legal draft by what it does to the acting board this
// turn: tiles staged, rows completed, and tiles dropped on the penalty track.
// Ties keep LegalActions order, so the policy is deterministic.
type GreedyPolicy struct{}

// Weights for GreedyPolicy.
const (
	greedyPlaced   = 2
	greedyComplete = 3
	greedyOverflow = -3
	greedyMarker   = -1
)

func (p *GreedyPolicy) Name() string { return "greedy" }

func (p *GreedyPolicy) ChooseAction(g *engine.GameState) (engine.Action, error) {
	legal := g.LegalActions()
	if len(legal) == 0 {
		return engine.Action{}, ErrNoLegalActions
	}

	type scored struct {
		action engine.Action
		score  int
	}
	board := &g.Boards[g.ActingPlayer()]
	moves := make([]scored, len(legal))
	for i, a := range legal {
		moves[i] = scored{action: a, score: scoreDraft(g, board, a)}
	}
	sort.SliceStable(moves, func(i, j int) bool {
		return moves[i].score > moves[j].score
	})
	return moves[0].action, nil
}

// scoreDraft estimates the immediate value of a for board.
func scoreDraft(g *engine.GameState, board *engine.PlayerBoard, a engine.Action) int {
	var taken int
	if a.FromPool() {
		taken = g.Pool.Bag.Count(a.Color)
	} else {
		taken = g.Factories[a.Source].Bag.Count(a.Color)
	}

	placed, complete := 0, false
	if a.Row != engine.RowFloor {
		free := board.Rows[a.Row].Free()
		placed = min(taken, free)
		complete = placed == free
	}

	score := placed*greedyPlaced + (taken-placed)*greedyOverflow
	if complete {
		score += greedyComplete
	}
	if a.FromPool() && g.Pool.HasMarker {
		score += greedyMarker
	}
	return score
}
