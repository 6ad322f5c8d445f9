package engine

// IsEndGame reports whether any board has a complete horizontal wall row.
// Walls only change during end-of-round tiling, so the answer never flips in
// the middle of a round.
func (g *GameState) IsEndGame() bool {
	for i := range g.Boards {
		if g.Boards[i].CompleteRows() > 0 {
			return true
		}
	}
	return false
}

// finishGame adds end-game bonuses and records every player tied for the top
// score as a winner.
func (g *GameState) finishGame() {
	best := 0
	for i := range g.Boards {
		b := &g.Boards[i]
		b.Score += b.EndGameBonus(&g.Rules)
		if i == 0 || b.Score > best {
			best = b.Score
		}
	}
	g.Winners = g.Winners[:0]
	for i := range g.Boards {
		if g.Boards[i].Score == best {
			g.Winners = append(g.Winners, uint8(i))
		}
	}
	g.Flags |= FlagGameOver
}

// IsTerminal returns true when no further action can be applied.
func (g *GameState) IsTerminal() bool { return g.IsGameOver() || g.IsFaulted() }

// IsWinner reports whether player p is among the winners.
func (g *GameState) IsWinner(p uint8) bool {
	for _, w := range g.Winners {
		if w == p {
			return true
		}
	}
	return false
}

// Utility returns the game outcome per player in [-1, +1].
//
//   - Winners get +1 and everyone else -1.
//   - If every player shares the top score the game is a draw: all 0.
//
// Before the game is over every entry is 0.
func (g *GameState) Utility() []float32 {
	u := make([]float32, len(g.Boards))
	if !g.IsGameOver() || len(g.Winners) == len(g.Boards) {
		return u
	}
	for i := range u {
		if g.IsWinner(uint8(i)) {
			u[i] = 1
		} else {
			u[i] = -1
		}
	}
	return u
}

// StateHash returns a 64-bit FNV-1a hash of everything that affects future
// play. Equal states always hash equal.
func (g *GameState) StateHash() uint64 {
	h := uint64(14695981039346656037)
	const prime = uint64(1099511628211)
	mix := func(v uint64) {
		h ^= v
		h *= prime
	}

	for i := range g.Boards {
		b := &g.Boards[i]
		for r := 0; r < WallSize; r++ {
			for c := 0; c < WallSize; c++ {
				mix(uint64(b.Wall[r][c]))
			}
		}
		for _, row := range b.Rows {
			mix(uint64(row.Color)<<8 | uint64(row.Count))
		}
		for _, t := range b.Penalty {
			mix(uint64(t))
		}
		mix(uint64(len(b.Penalty)) << 16)
		mix(uint64(int64(b.Score)))
	}
	for i := range g.Factories {
		for _, n := range g.Factories[i].Bag {
			mix(uint64(n))
		}
	}
	for _, n := range g.Pool.Bag {
		mix(uint64(n) << 8)
	}
	if g.Pool.HasMarker {
		mix(1 << 40)
	}
	mix(uint64(g.CurrentPlayer) << 48)
	mix(uint64(g.Round) << 32)
	return h
}
