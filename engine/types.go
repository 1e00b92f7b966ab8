// Package engine implements single-deck Klondike solitaire on a minimal
// entity-component core.
//
// All game state lives in a World value owned by the caller; the move engine
// itself is a stateless function family (Validate, Apply, QueryState) over
// that World. The package performs no I/O and no locking.
package engine

import (
	"fmt"

	"github.com/cardkit/klondike/ecs"
)

// Suit constants — packed into the upper 4 bits of Card.
const (
	SuitHearts   uint8 = 0
	SuitDiamonds uint8 = 1
	SuitClubs    uint8 = 2
	SuitSpades   uint8 = 3

	NumSuits = 4
)

// Rank constants — packed into the lower 4 bits of Card.
const (
	RankAce   uint8 = 0
	RankTwo   uint8 = 1
	RankThree uint8 = 2
	RankFour  uint8 = 3
	RankFive  uint8 = 4
	RankSix   uint8 = 5
	RankSeven uint8 = 6
	RankEight uint8 = 7
	RankNine  uint8 = 8
	RankTen   uint8 = 9
	RankJack  uint8 = 10
	RankQueen uint8 = 11
	RankKing  uint8 = 12

	NumRanks = 13
	DeckSize = 52
)

// Card is a packed uint8: upper 4 bits = suit, lower 4 bits = rank.
// It is the CardIdentity component, fixed at deal time for the game's life.
type Card uint8

// EmptyCard represents the absence of a card.
const EmptyCard Card = 0xFF

// NewCard constructs a Card from suit and rank.
func NewCard(suit, rank uint8) Card {
	return Card((suit << 4) | (rank & 0x0F))
}

// Suit returns the suit bits (upper 4).
func (c Card) Suit() uint8 { return uint8(c) >> 4 }

// Rank returns the rank bits (lower 4).
func (c Card) Rank() uint8 { return uint8(c) & 0x0F }

// IsRed reports whether the card's suit is Hearts or Diamonds.
func (c Card) IsRed() bool {
	s := c.Suit()
	return s == SuitHearts || s == SuitDiamonds
}

// String renders the card as rank char + suit char, e.g. "AH", "TD", "QS".
func (c Card) String() string {
	if c == EmptyCard {
		return "--"
	}
	return RankString(c.Rank()) + SuitString(c.Suit())
}

var rankChars = [NumRanks]string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "T", "J", "Q", "K"}
var suitChars = [NumSuits]string{"H", "D", "C", "S"}

// RankString converts a rank constant to its single-character form.
func RankString(rank uint8) string {
	if rank >= NumRanks {
		return "?"
	}
	return rankChars[rank]
}

// SuitString converts a suit constant to its single-character form.
func SuitString(suit uint8) string {
	if suit >= NumSuits {
		return "?"
	}
	return suitChars[suit]
}

// ParseCard converts the two-character form back to a Card.
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return EmptyCard, fmt.Errorf("parse card %q: want 2 characters", s)
	}
	rank, suit := uint8(0xFF), uint8(0xFF)
	for i, r := range rankChars {
		if r == s[:1] {
			rank = uint8(i)
		}
	}
	for i, sc := range suitChars {
		if sc == s[1:] {
			suit = uint8(i)
		}
	}
	if rank == 0xFF || suit == 0xFF {
		return EmptyCard, fmt.Errorf("parse card %q: unknown rank or suit", s)
	}
	return NewCard(suit, rank), nil
}

// FaceState marks whether a card is exposed (face-up) on the table.
type FaceState uint8

const (
	FaceDown FaceState = 0
	FaceUp   FaceState = 1
)

// PileKind tags the role a pile entity plays in the layout.
type PileKind uint8

const (
	PileTableau    PileKind = iota // Index 0..6
	PileFoundation                 // Index = suit constant
	PileStock                      // Index 0
	PileWaste                      // Index 0
)

const (
	NumTableaus    = 7
	NumFoundations = 4
	NumPiles       = NumTableaus + NumFoundations + 2
)

// PileRef identifies a pile to the outside world. It doubles as the PileKind
// component on pile entities; internal entity ids never cross the boundary.
type PileRef struct {
	Kind  PileKind
	Index uint8
}

// Tableau returns the ref of tableau column i (0..6).
func Tableau(i uint8) PileRef { return PileRef{Kind: PileTableau, Index: i} }

// Foundation returns the ref of the foundation for the given suit.
func Foundation(suit uint8) PileRef { return PileRef{Kind: PileFoundation, Index: suit} }

// Stock is the face-down draw pile.
var Stock = PileRef{Kind: PileStock}

// Waste is the face-up discard counterpart of the stock.
var Waste = PileRef{Kind: PileWaste}

// String renders the pile ref in the wire form: T0–T6, FH/FD/FC/FS, S, W.
func (p PileRef) String() string {
	switch p.Kind {
	case PileTableau:
		return fmt.Sprintf("T%d", p.Index)
	case PileFoundation:
		return "F" + SuitString(p.Index)
	case PileStock:
		return "S"
	case PileWaste:
		return "W"
	}
	return "?"
}

// ParsePile converts the wire form back to a PileRef.
func ParsePile(s string) (PileRef, error) {
	switch {
	case s == "S":
		return Stock, nil
	case s == "W":
		return Waste, nil
	case len(s) == 2 && s[0] == 'T':
		i := s[1] - '0'
		if i >= NumTableaus {
			return PileRef{}, fmt.Errorf("parse pile %q: tableau index out of range", s)
		}
		return Tableau(i), nil
	case len(s) == 2 && s[0] == 'F':
		for suit := uint8(0); suit < NumSuits; suit++ {
			if suitChars[suit] == s[1:] {
				return Foundation(suit), nil
			}
		}
	}
	return PileRef{}, fmt.Errorf("parse pile %q: unknown pile", s)
}

// PileMembership records which pile a card currently belongs to and its
// ordinal within that pile's sequence. Positions are contiguous from 0; the
// highest position is the pile's top. Mutated on every applied move.
type PileMembership struct {
	Pile ecs.Entity
	Pos  uint8
}
