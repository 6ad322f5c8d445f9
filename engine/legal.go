package engine

// LegalActions enumerates every draft available to the owner of board: each
// drawable color on each non-empty factory and in the pool, paired with each
// row from RowsAcceptingColor. The marker is never offered on its own.
//
// Order is deterministic: factories by index, then the pool; colors in
// palette order; rows ascending.
//
// If that set is empty while tiles remain, the player is forced to discard:
// every (source, color) pair is offered with Row = RowFloor.
func LegalActions(board *PlayerBoard, factories []Factory, pool *Pool) []Action {
	var actions []Action
	forEachTake(factories, pool, func(src int, color Tile) {
		for _, row := range board.RowsAcceptingColor(color) {
			actions = append(actions, Action{Source: src, Color: color, Row: row})
		}
	})
	if len(actions) > 0 {
		return actions
	}
	forEachTake(factories, pool, func(src int, color Tile) {
		actions = append(actions, Action{Source: src, Color: color, Row: RowFloor})
	})
	return actions
}

// forEachTake calls fn for every (source, color) that can be drafted.
func forEachTake(factories []Factory, pool *Pool, fn func(src int, color Tile)) {
	for i := range factories {
		for _, color := range factories[i].Bag.Present() {
			fn(i, color)
		}
	}
	for _, color := range pool.Bag.Present() {
		fn(SourcePool, color)
	}
}

// LegalActions returns the drafts available to the acting player. It is
// empty once the game is over.
func (g *GameState) LegalActions() []Action {
	if g.IsGameOver() || g.IsFaulted() {
		return nil
	}
	return LegalActions(&g.Boards[g.CurrentPlayer], g.Factories, &g.Pool)
}

// IsLegal reports whether a is in LegalActions.
func (g *GameState) IsLegal(a Action) bool {
	for _, l := range g.LegalActions() {
		if l == a {
			return true
		}
	}
	return false
}
