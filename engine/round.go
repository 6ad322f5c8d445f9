package engine

import "fmt"

// startRound refills the factories, puts the marker back in the pool and
// hands the opening turn to whoever took the marker last round. When nobody
// took it, play continues in plain rotation. A faulty tile source faults the
// game.
func (g *GameState) startRound() error {
	for i := range g.Factories {
		if err := g.Factories[i].ProduceTiles(g.source, int(g.Rules.FactoryTiles)); err != nil {
			g.Flags |= FlagFaulted
			return fmt.Errorf("round %d factory %d: %w", g.Round+1, i, err)
		}
	}
	g.Pool.Reset()
	g.Round++
	if g.nextStarter >= 0 {
		g.CurrentPlayer = uint8(g.nextStarter)
	}
	g.StartPlayer = g.CurrentPlayer
	g.nextStarter = -1
	return nil
}

// draftingDone reports whether every factory and the pool are out of
// drawable tiles. A lone marker does not keep the round going.
func (g *GameState) draftingDone() bool {
	for i := range g.Factories {
		if g.Factories[i].HasTiles() {
			return false
		}
	}
	return !g.Pool.HasTiles()
}

// IsRoundOver reports whether drafting for the current round is finished.
// Between ApplyAction calls this is only true once the game is over, since
// a finished round is scored and the next one dealt immediately.
func (g *GameState) IsRoundOver() bool { return g.draftingDone() }

// endRound tiles every wall, charges penalties, and either finishes the game
// or deals the next round. Boards are scored on copies; if any board fails,
// the game is faulted and no board is changed.
func (g *GameState) endRound() error {
	results := make([]RoundResult, len(g.Boards))
	scored := make([]PlayerBoard, len(g.Boards))
	for i := range g.Boards {
		scored[i] = g.Boards[i].clone()
		b := &scored[i]
		placement, err := b.TileWall()
		if err != nil {
			g.Flags |= FlagFaulted
			return fmt.Errorf("player %d round %d: %w", i, g.Round, err)
		}
		penalty := b.ApplyPenalty(g.Rules.FloorPenalties)
		results[i] = RoundResult{
			Player:    uint8(i),
			Placement: placement,
			Penalty:   penalty,
			Score:     b.Score,
		}
	}
	g.Boards = scored
	g.LastRound = results

	if g.IsEndGame() {
		g.finishGame()
		return nil
	}
	return g.startRound()
}
