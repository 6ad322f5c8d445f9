// internal/game/engine_adapter.go
package game

import (
	"fmt"

	engine "github.com/SabbeRubbish/azul-ai/engine"
	"github.com/google/uuid"
)

// ActionRequest is a draft as sent by a client. Source is a factory index or
// -1 for the pool, Row is a staging row or -1 for the penalty track, and Color
// is a tile name such as "blue".
type ActionRequest struct {
	Source int    `json:"source"`
	Color  string `json:"color"`
	Row    int    `json:"row"`
}

// ToEngine converts the request into an engine.Action. Range checks are left
// to the engine's legality test.
func (r ActionRequest) ToEngine() (engine.Action, error) {
	color, ok := engine.ParseTile(r.Color)
	if !ok || !color.IsColor() {
		return engine.Action{}, fmt.Errorf("%w: unknown color %q", engine.ErrIllegalAction, r.Color)
	}
	return engine.Action{Source: r.Source, Color: color, Row: r.Row}, nil
}

// HandleRequest decodes req and applies it for playerID.
func (s *Session) HandleRequest(playerID uuid.UUID, req ActionRequest) error {
	a, err := req.ToEngine()
	if err != nil {
		s.log.WithField("player_id", playerID).WithError(err).Warn("Malformed draft request")
		return err
	}
	return s.ApplyAction(playerID, a)
}

// draftEvent converts the engine's last-action summary for broadcasting.
func draftEvent(info engine.LastActionInfo) *EventDraft {
	return &EventDraft{
		Source:     info.Action.Source,
		Color:      info.Action.Color.Name(),
		Row:        info.Action.Row,
		Taken:      info.Taken,
		Placed:     info.Placed,
		Overflow:   info.Overflow,
		TookMarker: info.TookMarker,
	}
}

// currentPlayerID maps the engine's acting seat to a player ID.
// Assumes lock is held by caller.
func (s *Session) currentPlayerID() uuid.UUID {
	return s.EngineToPlayer[s.Engine.ActingPlayer()]
}

// seatOf returns the engine seat for playerID.
// Assumes lock is held by caller.
func (s *Session) seatOf(playerID uuid.UUID) (uint8, bool) {
	seat, ok := s.PlayerToEngine[playerID]
	return seat, ok
}
