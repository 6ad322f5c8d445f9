// Package engine implements the rules of a tile-drafting game for 2-4
// players: drafting from factories and the shared pool into staging rows,
// end-of-round wall tiling and scoring, and end-of-game detection.
//
// The engine is synchronous and single-threaded. A GameState must be driven
// by one caller at a time; services that share a game between goroutines
// serialise access themselves.
package engine

import "fmt"

// ---------------------------------------------------------------------------
// Flags bitfield
// ---------------------------------------------------------------------------

const (
	FlagGameOver uint16 = 1 << 0
	// FlagFaulted marks a game stopped by ErrInvariantViolation.
	FlagFaulted uint16 = 1 << 1
)

// RoundResult records what one board scored at the end of a round.
type RoundResult struct {
	Player    uint8
	Placement int // points from wall tiling
	Penalty   int // non-positive penalty-track charge
	Score     int // score after clamping
}

// GameState holds the complete state of one game.
type GameState struct {
	Rules     HouseRules
	Boards    []PlayerBoard
	Factories []Factory
	Pool      Pool

	CurrentPlayer uint8
	StartPlayer   uint8  // player who opened the current round
	Round         uint16 // 1-based
	TurnNumber    uint16 // actions applied over the whole game
	Flags         uint16
	Winners       []uint8

	LastAction LastActionInfo
	LastRound  []RoundResult // scoring of the most recently finished round

	nextStarter int8 // player who took the marker this round, -1 if nobody
	source      TileSource
}

// NewGame validates rules, builds the boards and factories, and deals the
// first round from src. Player 0 starts.
func NewGame(rules HouseRules, src TileSource) (*GameState, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("%w: tile source is nil", ErrInvalidConfiguration)
	}
	g := &GameState{
		Rules:       rules.clone(),
		Boards:      make([]PlayerBoard, rules.NumPlayers),
		Factories:   make([]Factory, rules.numFactories()),
		nextStarter: -1,
		source:      src,
	}
	for i := range g.Boards {
		g.Boards[i] = NewPlayerBoard(rules.Difficulty)
	}
	if err := g.startRound(); err != nil {
		return nil, err
	}
	return g, nil
}

// NewSeededGame is NewGame with a RandomSource built from seed.
func NewSeededGame(seed uint64, rules HouseRules) (*GameState, error) {
	return NewGame(rules, NewRandomSource(seed))
}

// ---------------------------------------------------------------------------
// Query methods
// ---------------------------------------------------------------------------

// IsGameOver reports whether the game has ended normally.
func (g *GameState) IsGameOver() bool { return g.Flags&FlagGameOver != 0 }

// IsFaulted reports whether the game stopped on an invariant violation.
func (g *GameState) IsFaulted() bool { return g.Flags&FlagFaulted != 0 }

// NumPlayers returns the number of seats.
func (g *GameState) NumPlayers() uint8 { return uint8(len(g.Boards)) }

// ActingPlayer returns the index of the player who must act next.
func (g *GameState) ActingPlayer() uint8 { return g.CurrentPlayer }

// NextPlayer returns the player after current in turn order.
func (g *GameState) NextPlayer(current uint8) uint8 {
	return (current + 1) % g.NumPlayers()
}

// MarkerHolder returns the player who took the marker this round, if any.
func (g *GameState) MarkerHolder() (uint8, bool) {
	if g.nextStarter < 0 {
		return 0, false
	}
	return uint8(g.nextStarter), true
}

// Board returns a copy of player p's board.
func (g *GameState) Board(p uint8) PlayerBoard { return g.Boards[p].clone() }

// FactoryTiles returns the tiles on factory i.
func (g *GameState) FactoryTiles(i int) []Tile { return g.Factories[i].Tiles() }

// PoolTiles returns the pool contents, marker first when present.
func (g *GameState) PoolTiles() []Tile { return g.Pool.Tiles() }

// Scores returns every player's current score.
func (g *GameState) Scores() []int {
	out := make([]int, len(g.Boards))
	for i := range g.Boards {
		out[i] = g.Boards[i].Score
	}
	return out
}

// ---------------------------------------------------------------------------
// Snapshot Undo (Save / Restore)
// ---------------------------------------------------------------------------

// Snapshot is a deep copy of a GameState for undo support. The tile source is
// shared, not copied, so restored games continue drawing from the same stream.
type Snapshot GameState

// Clone returns a deep copy of the game.
func (g *GameState) Clone() *GameState {
	c := *g
	c.Rules = g.Rules.clone()
	c.Boards = make([]PlayerBoard, len(g.Boards))
	for i := range g.Boards {
		c.Boards[i] = g.Boards[i].clone()
	}
	c.Factories = append([]Factory(nil), g.Factories...)
	c.Winners = append([]uint8(nil), g.Winners...)
	c.LastRound = append([]RoundResult(nil), g.LastRound...)
	return &c
}

// Save returns a snapshot of the current game state.
func (g *GameState) Save() Snapshot { return Snapshot(*g.Clone()) }

// Restore replaces the game state with the given snapshot. The snapshot stays
// valid and can be restored again.
func (g *GameState) Restore(s Snapshot) {
	src := GameState(s)
	*g = *src.Clone()
}
