package engine

import "fmt"

// ApplyAction applies a draft for the acting player. Any action outside
// LegalActions is rejected with ErrIllegalAction before the state changes.
//
// When the draft empties the last factory and the pool, the round is scored
// for every board, the end condition is checked, and unless the game is over
// the next round is dealt. The only error that can surface after mutation is
// ErrInvariantViolation from wall tiling or refilling, which also faults the
// game.
func (g *GameState) ApplyAction(a Action) error {
	if g.IsGameOver() || g.IsFaulted() {
		return fmt.Errorf("%w: game is already over", ErrIllegalAction)
	}
	if !g.IsLegal(a) {
		return fmt.Errorf("%w: %s for player %d", ErrIllegalAction, a, g.CurrentPlayer)
	}

	player := g.CurrentPlayer
	board := &g.Boards[player]
	info := LastActionInfo{Action: a, Player: player}

	if a.FromPool() {
		count, marker, err := g.Pool.TakeTiles(a.Color)
		if err != nil {
			return err
		}
		info.Taken = count
		if marker {
			// The marker takes the first free penalty slot.
			board.AddPenalty(TileFirstPlayer, 1)
			g.nextStarter = int8(player)
			info.TookMarker = true
		}
	} else {
		f := &g.Factories[a.Source]
		count, err := f.TakeTiles(a.Color)
		if err != nil {
			return err
		}
		info.Taken = count
		g.Pool.DepositRemainder(f.Drain())
	}

	info.Overflow = info.Taken
	if a.Row != RowFloor {
		info.Placed, info.Overflow = board.stage(a.Row, a.Color, info.Taken)
	}
	board.AddPenalty(a.Color, info.Overflow)

	g.TurnNumber++
	g.CurrentPlayer = g.NextPlayer(player)

	if !g.draftingDone() {
		g.LastAction = info
		return nil
	}
	info.RoundEnded = true
	g.LastAction = info
	return g.endRound()
}
