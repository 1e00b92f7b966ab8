package engine

import (
	"testing"

	"github.com/cardkit/klondike/ecs"
)

// tc is a card-with-face pair used to script pile contents in tests.
type tc struct {
	card Card
	face FaceState
}

func up(c Card) tc   { return tc{card: c, face: FaceUp} }
func down(c Card) tc { return tc{card: c, face: FaceDown} }

// mustCard parses the two-character card form or fails the test.
func mustCard(t *testing.T, s string) Card {
	t.Helper()
	c, err := ParseCard(s)
	if err != nil {
		t.Fatalf("ParseCard(%q): %v", s, err)
	}
	return c
}

// buildWorld constructs a World with the given pile contents (bottom to top).
// Cards not mentioned anywhere are placed face-down in the stock so that the
// full-deck invariant holds.
func buildWorld(t *testing.T, rules Rules, piles map[PileRef][]tc) *World {
	t.Helper()
	w := newWorld(rules)
	for _, ref := range pileOrder() {
		e := w.pool.Create()
		w.PileKinds.Set(e, ref)
		w.piles[ref] = e
	}

	placed := make(map[Card]bool, DeckSize)
	spawn := func(c Card, pile ecs.Entity, pos uint8, face FaceState) {
		if placed[c] {
			t.Fatalf("card %s placed twice", c)
		}
		placed[c] = true
		e := w.pool.Create()
		w.Identities.Set(e, c)
		w.Faces.Set(e, face)
		w.Memberships.Set(e, PileMembership{Pile: pile, Pos: pos})
		w.cards[c] = e
	}

	for ref, cards := range piles {
		pile, ok := w.piles[ref]
		if !ok {
			t.Fatalf("unknown pile ref %v", ref)
		}
		for pos, c := range cards {
			spawn(c.card, pile, uint8(pos), c.face)
		}
	}

	// Remainder goes to the stock, face-down, above any scripted stock cards.
	stock := w.piles[Stock]
	pos := uint8(w.PileLen(stock))
	for _, c := range StandardDeck() {
		if placed[c] {
			continue
		}
		spawn(c, stock, pos, FaceDown)
		pos++
	}
	return w
}

// wonWorld returns a World with all 52 cards correctly stacked on the four
// foundations.
func wonWorld(t *testing.T) *World {
	t.Helper()
	piles := make(map[PileRef][]tc, NumFoundations)
	for suit := uint8(0); suit < NumSuits; suit++ {
		run := make([]tc, 0, NumRanks)
		for rank := uint8(0); rank < NumRanks; rank++ {
			run = append(run, up(NewCard(suit, rank)))
		}
		piles[Foundation(suit)] = run
	}
	return buildWorld(t, DefaultRules(), piles)
}

// checkInvariants asserts the World invariants of the data model: every card
// in exactly one pile, contiguous positions, the full 52-card union, ordered
// foundations, and ordered face-up tableau runs.
func checkInvariants(t *testing.T, w *World) {
	t.Helper()

	if n := w.Identities.Len(); n != DeckSize {
		t.Fatalf("card entity count = %d, want %d", n, DeckSize)
	}
	if n := w.Memberships.Len(); n != DeckSize {
		t.Fatalf("membership count = %d, want %d (a card is nowhere)", n, DeckSize)
	}

	seen := make(map[Card]bool, DeckSize)
	total := 0
	for _, ref := range pileOrder() {
		pile := w.piles[ref]
		cards := w.PileCards(pile)
		total += len(cards)

		// Contiguity: PileCards indexes by position, so any gap or duplicate
		// leaves a hole.
		for pos, e := range cards {
			if e == ecs.NilEntity {
				t.Fatalf("pile %v: missing entity at position %d", ref, pos)
			}
			c, ok := w.identity(e)
			if !ok {
				t.Fatalf("pile %v: entity at position %d has no identity", ref, pos)
			}
			if seen[c] {
				t.Fatalf("card %s appears in more than one pile position", c)
			}
			seen[c] = true
		}

		switch ref.Kind {
		case PileFoundation:
			for pos, e := range cards {
				c, _ := w.identity(e)
				if c.Suit() != ref.Index {
					t.Errorf("foundation %v holds off-suit card %s", ref, c)
				}
				if c.Rank() != uint8(pos) {
					t.Errorf("foundation %v: position %d holds %s, want rank %d", ref, pos, c, pos)
				}
			}
		case PileTableau:
			// The top contiguous face-up run must descend in alternating colors.
			runStart := len(cards)
			for runStart > 0 && w.faceUp(cards[runStart-1]) {
				runStart--
			}
			for i := runStart + 1; i < len(cards); i++ {
				prev, _ := w.identity(cards[i-1])
				cur, _ := w.identity(cards[i])
				if prev.Rank() != cur.Rank()+1 {
					t.Errorf("tableau %v: face-up run not descending at %s over %s", ref, cur, prev)
				}
				if prev.IsRed() == cur.IsRed() {
					t.Errorf("tableau %v: face-up run colors not alternating at %s over %s", ref, cur, prev)
				}
			}
		}
	}
	if total != DeckSize {
		t.Fatalf("pile union holds %d cards, want %d", total, DeckSize)
	}
}

// mustApply applies the move or fails the test.
func mustApply(t *testing.T, w *World, m Move) MoveOutcome {
	t.Helper()
	out, err := Apply(w, m)
	if err != nil {
		t.Fatalf("Apply(%s): %v", m, err)
	}
	return out
}

// wantReject proposes the move and asserts it is rejected with the reason.
func wantReject(t *testing.T, w *World, m Move, want IllegalMoveReason) {
	t.Helper()
	before := w.Hash()
	_, err := ProposeMove(w, m)
	if err == nil {
		t.Fatalf("ProposeMove(%s): accepted, want rejection %s", m, want)
	}
	reason, ok := IsIllegalMove(err)
	if !ok {
		t.Fatalf("ProposeMove(%s): error %v is not an IllegalMoveError", m, err)
	}
	if reason != want {
		t.Fatalf("ProposeMove(%s): reason = %s, want %s", m, reason, want)
	}
	if w.Hash() != before {
		t.Fatalf("ProposeMove(%s): rejected move mutated the World", m)
	}
}
