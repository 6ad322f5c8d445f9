// internal/game/session.go
package game

import (
	"errors"
	"fmt"
	"sync"
	"time"

	engine "github.com/SabbeRubbish/azul-ai/engine"
	"github.com/SabbeRubbish/azul-ai/engine/agent"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Errors returned by Session. Engine errors (engine.ErrIllegalAction,
// engine.ErrInvalidConfiguration, ...) are passed through wrapped.
var (
	ErrGameFull       = errors.New("game is full")
	ErrGameStarted    = errors.New("game already started")
	ErrGameNotStarted = errors.New("game not started")
	ErrGameOver       = errors.New("game is over")
	ErrUnknownPlayer  = errors.New("unknown player")
	ErrNotYourTurn    = errors.New("not your turn")
)

// Player is a seated participant.
type Player struct {
	ID   uuid.UUID
	Name string
}

// Session wraps one engine game for concurrent callers. Every exported method
// takes Mu; callbacks run with Mu held and must not call back into the session.
type Session struct {
	ID uuid.UUID // Unique identifier for this game instance.

	Rules   engine.HouseRules // NumPlayers caps seating; 0 allows up to engine.MaxPlayers.
	Players []*Player         // Seat order; index is the engine player index.

	// Engine integration, authoritative game state.
	Engine         *engine.GameState
	PlayerToEngine map[uuid.UUID]uint8
	EngineToPlayer [engine.MaxPlayers]uuid.UUID

	// Turn Management
	TurnID        int           // Increments with every applied draft.
	TurnDuration  time.Duration // Zero disables the turn timer.
	TimeoutPolicy agent.Policy  // Drafts for a player who runs out of time.
	turnTimer     *time.Timer

	// Game Lifecycle State
	Started  bool
	GameOver bool

	Mu sync.Mutex

	// Communication Callbacks
	BroadcastFn func(ev GameEvent)
	OnGameEnd   OnGameEndFunc

	source      engine.TileSource
	log         *log.Entry
	actionIndex int
}

// NewSession creates a session that will deal from src. A nil src gets a
// time-seeded random source; a nil logger uses the logrus standard logger.
func NewSession(rules engine.HouseRules, src engine.TileSource, logger *log.Logger) *Session {
	id := uuid.New()
	if src == nil {
		src = engine.NewRandomSource(uint64(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Session{
		ID:             id,
		Rules:          rules,
		PlayerToEngine: make(map[uuid.UUID]uint8),
		TimeoutPolicy:  &agent.GreedyPolicy{},
		source:         src,
		log:            logger.WithField("game_id", id.String()),
	}
}

// AddPlayer seats a new player and returns their ID.
func (s *Session) AddPlayer(name string) (uuid.UUID, error) {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	if s.Started {
		return uuid.Nil, ErrGameStarted
	}
	if len(s.Players) >= s.capacity() {
		return uuid.Nil, fmt.Errorf("%w: %d seats", ErrGameFull, s.capacity())
	}
	p := &Player{ID: uuid.New(), Name: name}
	s.Players = append(s.Players, p)

	seat := len(s.Players) - 1
	s.log.WithFields(log.Fields{"player_id": p.ID, "seat": seat, "name": name}).Info("Player added")
	s.logAction(p.ID, string(EventPlayerJoin), log.Fields{"name": name})
	s.fireEvent(GameEvent{Type: EventPlayerJoin, User: &EventUser{ID: p.ID, Seat: seat}})
	return p.ID, nil
}

// capacity is the number of seats on offer.
func (s *Session) capacity() int {
	if s.Rules.NumPlayers == 0 {
		return engine.MaxPlayers
	}
	return int(s.Rules.NumPlayers)
}

// Start fixes the seating and deals the first round.
func (s *Session) Start() error {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	if s.Started {
		return ErrGameStarted
	}
	if n := len(s.Players); n < engine.MinPlayers {
		err := fmt.Errorf("%w: %d players seated, need at least %d", engine.ErrInvalidConfiguration, n, engine.MinPlayers)
		s.log.WithError(err).Warn("Cannot start game")
		return fmt.Errorf("start game %s: %w", s.ID, err)
	}
	rules := s.Rules
	rules.NumPlayers = uint8(len(s.Players))
	g, err := engine.NewGame(rules, s.source)
	if err != nil {
		s.log.WithError(err).Warn("Cannot start game")
		return fmt.Errorf("start game %s: %w", s.ID, err)
	}

	s.Rules = rules
	s.Engine = g
	for i, p := range s.Players {
		s.PlayerToEngine[p.ID] = uint8(i)
		s.EngineToPlayer[i] = p.ID
	}
	s.Started = true

	s.log.WithFields(log.Fields{
		"players":    len(s.Players),
		"difficulty": rules.Difficulty.String(),
	}).Info("Game started")
	s.logAction(uuid.Nil, string(EventGameStart), nil)

	state := s.syncState()
	s.fireEvent(GameEvent{Type: EventGameStart, Round: int(g.Round), State: &state})
	s.scheduleTurnTimer()
	s.broadcastPlayerTurn()
	return nil
}

// ApplyAction applies a draft for playerID. The draft must come from the
// acting player and be legal; otherwise nothing changes.
func (s *Session) ApplyAction(playerID uuid.UUID, a engine.Action) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return s.applyAction(playerID, a, EventPlayerAction)
}

// applyAction validates turn ownership, applies a to the engine and emits the
// resulting events.
// Assumes lock is held by caller.
func (s *Session) applyAction(playerID uuid.UUID, a engine.Action, evType GameEventType) error {
	if !s.Started {
		return ErrGameNotStarted
	}
	if s.GameOver {
		return ErrGameOver
	}
	seat, ok := s.seatOf(playerID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPlayer, playerID)
	}
	if acting := s.Engine.ActingPlayer(); seat != acting {
		return fmt.Errorf("%w: seat %d acts, not seat %d", ErrNotYourTurn, acting, seat)
	}

	entry := s.log.WithFields(log.Fields{"player_id": playerID, "seat": seat, "action": a.String()})
	if err := s.Engine.ApplyAction(a); err != nil {
		if errors.Is(err, engine.ErrInvariantViolation) {
			entry.WithError(err).Error("Game faulted")
			s.endGame()
			return err
		}
		entry.WithError(err).Warn("Draft rejected")
		return err
	}

	s.TurnID++
	s.stopTurnTimer()

	info := s.Engine.LastAction
	entry.WithFields(log.Fields{
		"taken":    info.Taken,
		"placed":   info.Placed,
		"overflow": info.Overflow,
	}).Debug("Draft applied")
	s.logAction(playerID, string(evType), log.Fields{"action": a.String()})
	s.fireEvent(GameEvent{
		Type:  evType,
		User:  &EventUser{ID: playerID, Seat: int(seat)},
		Draft: draftEvent(info),
	})

	if info.RoundEnded {
		s.fireRoundEnd()
	}
	if s.Engine.IsTerminal() {
		s.endGame()
		return nil
	}
	s.scheduleTurnTimer()
	s.broadcastPlayerTurn()
	return nil
}

// fireRoundEnd reports the scoring of the round that just finished.
// Assumes lock is held by caller.
func (s *Session) fireRoundEnd() {
	g := s.Engine
	round := int(g.Round)
	if !g.IsTerminal() {
		// The next round has already been dealt.
		round--
	}
	scores := make([]EventRoundScore, len(g.LastRound))
	fields := log.Fields{"round": round}
	for i, r := range g.LastRound {
		id := s.EngineToPlayer[r.Player]
		scores[i] = EventRoundScore{
			User:      EventUser{ID: id, Seat: int(r.Player)},
			Placement: r.Placement,
			Penalty:   r.Penalty,
			Score:     r.Score,
		}
		fields[fmt.Sprintf("score_%d", r.Player)] = r.Score
	}
	s.log.WithFields(fields).Info("Round ended")
	s.logAction(uuid.Nil, string(EventRoundEnd), log.Fields{"round": round})
	s.fireEvent(GameEvent{Type: EventRoundEnd, Round: round, Scores: scores})
}

// endGame finalizes the game, broadcasts results, and triggers OnGameEnd.
// A faulted game ends with no winners.
// Assumes lock is held by caller.
func (s *Session) endGame() {
	if s.GameOver {
		return
	}
	s.GameOver = true
	s.stopTurnTimer()

	scores := make(map[uuid.UUID]int, len(s.Players))
	payloadScores := make(map[string]int, len(s.Players))
	for i, score := range s.Engine.Scores() {
		id := s.EngineToPlayer[i]
		scores[id] = score
		payloadScores[id.String()] = score
	}
	var winners []uuid.UUID
	payloadWinners := []string{}
	for _, w := range s.Engine.Winners {
		id := s.EngineToPlayer[w]
		winners = append(winners, id)
		payloadWinners = append(payloadWinners, id.String())
	}
	faulted := s.Engine.IsFaulted()

	s.log.WithFields(log.Fields{
		"rounds":  s.Engine.Round,
		"winners": payloadWinners,
		"scores":  s.Engine.Scores(),
		"faulted": faulted,
	}).Info("Game ended")
	s.logAction(uuid.Nil, string(EventGameEnd), log.Fields{"faulted": faulted})

	state := s.syncState()
	s.fireEvent(GameEvent{
		Type: EventGameEnd,
		Payload: map[string]interface{}{
			"scores":  payloadScores,
			"winners": payloadWinners,
			"faulted": faulted,
		},
		State: &state,
	})
	if s.OnGameEnd != nil {
		s.OnGameEnd(s.ID, winners, scores)
	}
}

// scheduleTurnTimer arms the timer for the acting player. When it fires the
// TimeoutPolicy drafts on their behalf.
// Assumes lock is held by caller.
func (s *Session) scheduleTurnTimer() {
	s.stopTurnTimer()
	if s.TurnDuration <= 0 || s.TimeoutPolicy == nil {
		return
	}
	turn := s.TurnID
	s.turnTimer = time.AfterFunc(s.TurnDuration, func() {
		s.Mu.Lock()
		defer s.Mu.Unlock()
		if s.GameOver || s.TurnID != turn {
			return
		}
		s.handleTimeout()
	})
}

// stopTurnTimer cancels a pending turn timer.
// Assumes lock is held by caller.
func (s *Session) stopTurnTimer() {
	if s.turnTimer != nil {
		s.turnTimer.Stop()
		s.turnTimer = nil
	}
}

// handleTimeout drafts for the acting player with TimeoutPolicy.
// Assumes lock is held by caller.
func (s *Session) handleTimeout() {
	playerID := s.currentPlayerID()
	entry := s.log.WithFields(log.Fields{"player_id": playerID, "turn": s.TurnID})
	entry.Info("Player timed out")

	a, err := s.TimeoutPolicy.ChooseAction(s.Engine)
	if err != nil {
		entry.WithError(err).Error("Timeout policy failed")
		return
	}
	if err := s.applyAction(playerID, a, EventPlayerTimeout); err != nil {
		entry.WithError(err).Error("Timeout draft rejected")
	}
}

// broadcastPlayerTurn notifies all players of the acting player.
// Assumes lock is held by caller.
func (s *Session) broadcastPlayerTurn() {
	if s.GameOver || !s.Started {
		return
	}
	seat := s.Engine.ActingPlayer()
	playerID := s.EngineToPlayer[seat]
	s.fireEvent(GameEvent{
		Type:  EventGamePlayerTurn,
		User:  &EventUser{ID: playerID, Seat: int(seat)},
		Round: int(s.Engine.Round),
		Payload: map[string]interface{}{
			"turn": s.TurnID,
		},
	})
}

// fireEvent sends an event through BroadcastFn.
// Assumes lock is held by caller.
func (s *Session) fireEvent(ev GameEvent) {
	if s.BroadcastFn != nil {
		s.BroadcastFn(ev)
	}
}

// logAction records a numbered entry in the game's action history.
// Assumes lock is held by caller.
func (s *Session) logAction(actorID uuid.UUID, actionType string, fields log.Fields) {
	s.actionIndex++
	entry := s.log.WithFields(log.Fields{
		"action_index": s.actionIndex,
		"action_type":  actionType,
	})
	if actorID != uuid.Nil {
		entry = entry.WithField("actor_id", actorID)
	}
	entry.WithFields(fields).Trace("Action recorded")
}

// SyncState returns a full snapshot of the session.
func (s *Session) SyncState() SyncState {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return s.syncState()
}

// BroadcastSync sends a sync_state event with the full snapshot, for
// observers that join late or lose track.
func (s *Session) BroadcastSync() {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	state := s.syncState()
	s.fireEvent(GameEvent{Type: EventSyncState, Round: state.Round, State: &state})
}

// Snapshot returns a deep copy of the engine state, or nil before Start.
func (s *Session) Snapshot() *engine.GameState {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if s.Engine == nil {
		return nil
	}
	return s.Engine.Clone()
}

// CurrentPlayer returns the acting player's ID. ok is false before Start and
// after the game ends.
func (s *Session) CurrentPlayer() (id uuid.UUID, ok bool) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if !s.Started || s.GameOver {
		return uuid.Nil, false
	}
	return s.currentPlayerID(), true
}

// IsOver reports whether the game has ended.
func (s *Session) IsOver() bool {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return s.GameOver
}
