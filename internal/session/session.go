// internal/session/session.go
package session

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cardkit/klondike/engine"
)

// OnChangeFunc is called after every accepted move with the move's outcome.
// It runs under the session lock; callbacks must not call back into the
// session.
type OnChangeFunc func(engine.MoveOutcome)

// Session owns one game World and serializes all access to it. The engine
// itself makes no concurrency guarantee, so every call path — UI input,
// remote moves from a relay — goes through the session lock.
type Session struct {
	ID uuid.UUID

	mu    sync.Mutex
	world *engine.World
	seed  uint64
	rules engine.Rules
	seq   uint64 // outbound move sequence number

	log      *logrus.Entry
	onChange OnChangeFunc
}

// New starts a game session with the given seed and rules.
func New(seed uint64, rules engine.Rules) *Session {
	id := uuid.New()
	s := &Session{
		ID:    id,
		world: engine.NewGame(seed, rules),
		seed:  seed,
		rules: rules,
		log:   logrus.WithFields(logrus.Fields{"session": id, "seed": seed}),
	}
	s.log.Info("session started")
	return s
}

// SetOnChange registers the post-move callback.
func (s *Session) SetOnChange(fn OnChangeFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Propose validates and applies a move. Rejections are logged and returned
// as-is; the game state is untouched by a rejected move.
func (s *Session) Propose(m engine.Move) (engine.MoveOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.proposeLocked(m)
}

func (s *Session) proposeLocked(m engine.Move) (engine.MoveOutcome, error) {
	out, err := engine.ProposeMove(s.world, m)
	if err != nil {
		if reason, ok := engine.IsIllegalMove(err); ok {
			s.log.WithFields(logrus.Fields{"move": m.String(), "reason": reason.String()}).Debug("move rejected")
		} else {
			s.log.WithField("move", m.String()).WithError(err).Error("engine failure")
		}
		return engine.MoveOutcome{}, err
	}

	s.seq++
	s.log.WithFields(logrus.Fields{
		"move":   m.String(),
		"seq":    s.seq,
		"status": out.Status.String(),
	}).Info("move applied")

	if s.onChange != nil {
		s.onChange(out)
	}
	return out, nil
}

// HandleRemote decodes a relayed wire message and feeds the move through the
// same path as a local proposal.
func (s *Session) HandleRemote(data []byte) (engine.MoveOutcome, error) {
	m, seq, err := engine.DecodeMove(data)
	if err != nil {
		s.log.WithError(err).Warn("dropping malformed remote move")
		return engine.MoveOutcome{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.WithFields(logrus.Fields{"move": m.String(), "remote_seq": seq}).Debug("remote move received")
	return s.proposeLocked(m)
}

// Encode serializes a move with the session's next outbound sequence number,
// for handing to a relay.
func (s *Session) Encode(m engine.Move) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.EncodeMove(m, s.seq+1)
}

// Seq returns the number of moves applied so far. An applied move's outbound
// sequence number equals Seq taken right after the apply.
func (s *Session) Seq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

// State returns the current game status.
func (s *Session) State() engine.GameStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.QueryState(s.world)
}

// Pile returns the ordered card views of a pile.
func (s *Session) Pile(ref engine.PileRef) []engine.CardView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.QueryPile(s.world, ref)
}

// Locate returns the pile currently holding the card.
func (s *Session) Locate(c engine.Card) (engine.PileRef, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.Locate(s.world, c)
}

// LegalMoves enumerates every currently legal move.
func (s *Session) LegalMoves() []engine.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.LegalMoves(s.world)
}

// Seed returns the seed this session was started with.
func (s *Session) Seed() uint64 { return s.seed }

// Reset discards the World and deals a fresh game with the given seed.
func (s *Session) Reset(seed uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.world = engine.NewGame(seed, s.rules)
	s.seed = seed
	s.seq = 0
	s.log = logrus.WithFields(logrus.Fields{"session": s.ID, "seed": seed})
	s.log.Info("session reset")
}

// ParseSeed converts external string input to a seed, wrapping failures in
// engine.ErrSeed so callers can prompt for a retry.
func ParseSeed(raw string) (uint64, error) {
	seed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", engine.ErrSeed, raw)
	}
	return seed, nil
}
