// internal/game/events.go
package game

import (
	"github.com/google/uuid"
)

// OnGameEndFunc defines the signature for a callback executed when a game ends.
// It receives the game ID, every winner (ties share the win) and the final scores.
type OnGameEndFunc func(gameID uuid.UUID, winners []uuid.UUID, scores map[uuid.UUID]int)

// GameEventType represents the type of a game-related event.
type GameEventType string

// Constants defining the various GameEvent types.
const (
	EventPlayerJoin     GameEventType = "player_join"    // A player took a seat.
	EventGameStart      GameEventType = "game_start"     // Seats are fixed and the first round is dealt.
	EventPlayerAction   GameEventType = "player_action"  // A draft was applied.
	EventPlayerTimeout  GameEventType = "player_timeout" // The acting player ran out of time; a draft was made for them.
	EventRoundEnd       GameEventType = "round_end"      // Walls tiled, penalties charged, next round dealt.
	EventGamePlayerTurn GameEventType = "player_turn"    // Notification of the acting player.
	EventSyncState      GameEventType = "sync_state"     // Full state snapshot.
	EventGameEnd        GameEventType = "game_end"       // Game has ended, includes results.
)

// EventUser identifies a user within a GameEvent payload.
type EventUser struct {
	ID   uuid.UUID `json:"id"`
	Seat int       `json:"seat"`
}

// EventDraft describes an applied draft.
type EventDraft struct {
	Source     int    `json:"source"` // factory index, -1 for the pool
	Color      string `json:"color"`
	Row        int    `json:"row"` // staging row, -1 for the penalty track
	Taken      int    `json:"taken"`
	Placed     int    `json:"placed"`
	Overflow   int    `json:"overflow"`
	TookMarker bool   `json:"tookMarker,omitempty"`
}

// EventRoundScore is one player's line in a round_end event.
type EventRoundScore struct {
	User      EventUser `json:"user"`
	Placement int       `json:"placement"`
	Penalty   int       `json:"penalty"`
	Score     int       `json:"score"`
}

// GameEvent is the standard structure for broadcasting game state changes and actions.
type GameEvent struct {
	Type  GameEventType `json:"type"`
	User  *EventUser    `json:"user,omitempty"`  // The user initiating or targeted by the event.
	Draft *EventDraft   `json:"draft,omitempty"` // Set for player_action and player_timeout.

	Round  int               `json:"round,omitempty"`
	Scores []EventRoundScore `json:"scores,omitempty"` // Set for round_end.

	Payload map[string]interface{} `json:"payload,omitempty"` // Additional arbitrary data.

	State *SyncState `json:"state,omitempty"` // Full state for sync events.
}
