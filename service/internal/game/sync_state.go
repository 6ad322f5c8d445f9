// internal/game/sync_state.go
package game

import (
	engine "github.com/SabbeRubbish/azul-ai/engine"
	"github.com/google/uuid"
)

// RowState is one staging row as seen by clients.
type RowState struct {
	Color    string `json:"color,omitempty"`
	Count    int    `json:"count"`
	Capacity int    `json:"capacity"`
}

// PlayerState is one seat's public board.
type PlayerState struct {
	PlayerID      uuid.UUID                                 `json:"playerId"`
	Name          string                                    `json:"name"`
	Seat          int                                       `json:"seat"`
	Score         int                                       `json:"score"`
	IsCurrentTurn bool                                      `json:"isCurrentTurn"`
	HasMarker     bool                                      `json:"hasMarker"`
	Wall          [engine.WallSize][engine.WallSize]string  `json:"wall"`
	Pattern       *[engine.WallSize][engine.WallSize]string `json:"pattern,omitempty"` // nil on a free wall
	Rows          []RowState                                `json:"rows"`
	Floor         []string                                  `json:"floor"`
}

// RulesState summarises the house rules in force.
type RulesState struct {
	NumPlayers     int    `json:"numPlayers"`
	Difficulty     string `json:"difficulty"`
	FactoryTiles   int    `json:"factoryTiles"`
	FloorPenalties []int  `json:"floorPenalties"`
}

// SyncState is a full snapshot of a session for presentation layers. The game
// has no hidden information, so every observer gets the same view.
type SyncState struct {
	GameID          uuid.UUID     `json:"gameId"`
	Started         bool          `json:"started"`
	GameOver        bool          `json:"gameOver"`
	Faulted         bool          `json:"faulted,omitempty"`
	Round           int           `json:"round"`
	TurnID          int           `json:"turnId"`
	CurrentPlayerID uuid.UUID     `json:"currentPlayerId"`
	Factories       [][]string    `json:"factories"`
	Pool            []string      `json:"pool"`
	Players         []PlayerState `json:"players"`
	Winners         []uuid.UUID   `json:"winners,omitempty"`
	Rules           RulesState    `json:"rules"`
}

// tileNames converts tiles to their JSON names.
func tileNames(tiles []engine.Tile) []string {
	out := make([]string, len(tiles))
	for i, t := range tiles {
		out[i] = t.Name()
	}
	return out
}

// wallNames renders a wall with "" for empty cells.
func wallNames(w *engine.Wall) [engine.WallSize][engine.WallSize]string {
	var out [engine.WallSize][engine.WallSize]string
	for r := range w {
		for c, t := range w[r] {
			if t != engine.TileEmpty {
				out[r][c] = t.Name()
			}
		}
	}
	return out
}

// syncState builds the current SyncState.
// This function assumes the game lock is HELD by the caller.
func (s *Session) syncState() SyncState {
	st := SyncState{
		GameID:   s.ID,
		Started:  s.Started,
		GameOver: s.GameOver,
		TurnID:   s.TurnID,
		Rules: RulesState{
			NumPlayers:     len(s.Players),
			Difficulty:     s.Rules.Difficulty.String(),
			FactoryTiles:   int(s.Rules.FactoryTiles),
			FloorPenalties: append([]int(nil), s.Rules.FloorPenalties...),
		},
		Players: make([]PlayerState, len(s.Players)),
	}
	for i, p := range s.Players {
		st.Players[i] = PlayerState{PlayerID: p.ID, Name: p.Name, Seat: i}
	}
	if s.Engine == nil {
		return st
	}

	g := s.Engine
	st.Faulted = g.IsFaulted()
	st.Round = int(g.Round)
	if s.Started && !s.GameOver {
		st.CurrentPlayerID = s.EngineToPlayer[g.ActingPlayer()]
	}
	st.Factories = make([][]string, len(g.Factories))
	for i := range g.Factories {
		st.Factories[i] = tileNames(g.FactoryTiles(i))
	}
	st.Pool = tileNames(g.PoolTiles())

	for i := range st.Players {
		b := &g.Boards[i]
		ps := &st.Players[i]
		ps.Score = b.Score
		ps.IsCurrentTurn = st.CurrentPlayerID != uuid.Nil && st.CurrentPlayerID == ps.PlayerID
		ps.HasMarker = b.HasMarker()
		ps.Wall = wallNames(&b.Wall)
		if b.Difficulty == engine.DifficultyStandard {
			pattern := wallNames(&b.Pattern)
			ps.Pattern = &pattern
		}
		ps.Rows = make([]RowState, len(b.Rows))
		for r, row := range b.Rows {
			ps.Rows[r] = RowState{Count: int(row.Count), Capacity: int(row.Capacity)}
			if !row.IsEmpty() {
				ps.Rows[r].Color = row.Color.Name()
			}
		}
		ps.Floor = tileNames(b.Penalty)
	}
	for _, w := range g.Winners {
		st.Winners = append(st.Winners, s.EngineToPlayer[w])
	}
	return st
}
