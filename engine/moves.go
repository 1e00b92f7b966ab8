package engine

import (
	"fmt"

	"github.com/cardkit/klondike/ecs"
)

// MoveKind enumerates the closed set of move variants. Validate and Apply
// switch over it exhaustively; adding a kind forces updates to both.
type MoveKind uint8

const (
	MoveTableauToTableau MoveKind = iota
	MoveTableauToFoundation
	MoveFoundationToTableau
	MoveStockToWaste
	MoveWasteToTableau
	MoveWasteToFoundation
	MoveRecycleWaste

	numMoveKinds
)

// Move is a serializable move record: a variant tag plus operands. Card and
// pile operands are public identities, never entity ids. StockToWaste and
// RecycleWaste ignore the Card field.
type Move struct {
	Kind MoveKind
	Card Card
	From PileRef
	To   PileRef
}

// DrawMove returns the canonical stock→waste draw move.
func DrawMove() Move {
	return Move{Kind: MoveStockToWaste, Card: EmptyCard, From: Stock, To: Waste}
}

// RecycleMove returns the canonical waste→stock recycle move.
func RecycleMove() Move {
	return Move{Kind: MoveRecycleWaste, Card: EmptyCard, From: Waste, To: Stock}
}

// NewMove derives the move variant from the source and destination pile
// kinds. Hosts that know only "move this card from here to there" use it to
// build well-formed move records.
func NewMove(card Card, from, to PileRef) (Move, error) {
	m := Move{Card: card, From: from, To: to}
	switch {
	case from.Kind == PileTableau && to.Kind == PileTableau:
		m.Kind = MoveTableauToTableau
	case from.Kind == PileTableau && to.Kind == PileFoundation:
		m.Kind = MoveTableauToFoundation
	case from.Kind == PileFoundation && to.Kind == PileTableau:
		m.Kind = MoveFoundationToTableau
	case from.Kind == PileStock && to.Kind == PileWaste:
		m.Kind = MoveStockToWaste
	case from.Kind == PileWaste && to.Kind == PileTableau:
		m.Kind = MoveWasteToTableau
	case from.Kind == PileWaste && to.Kind == PileFoundation:
		m.Kind = MoveWasteToFoundation
	case from.Kind == PileWaste && to.Kind == PileStock:
		m.Kind = MoveRecycleWaste
	default:
		return Move{}, fmt.Errorf("no move variant for %s->%s", from, to)
	}
	return m, nil
}

func (m Move) String() string {
	switch m.Kind {
	case MoveStockToWaste:
		return "draw S->W"
	case MoveRecycleWaste:
		return "recycle W->S"
	default:
		return fmt.Sprintf("%s %s->%s", m.Card, m.From, m.To)
	}
}

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

// Validate checks a proposed move against the World and returns nil if it is
// legal, or an *IllegalMoveError describing the rejection. The World is never
// mutated. Internal inconsistencies (a card entity missing an expected
// component) surface as errors wrapping ErrMissingComponent.
func Validate(w *World, m Move) error {
	switch m.Kind {
	case MoveTableauToTableau:
		if m.From.Kind != PileTableau || m.To.Kind != PileTableau || m.From == m.To {
			return illegal(m, UnknownMove)
		}
		if _, err := w.tableauRun(m); err != nil {
			return err
		}
		to, ok := w.piles[m.To]
		if !ok {
			return illegal(m, UnknownMove)
		}
		return w.tableauAccepts(m, to)

	case MoveTableauToFoundation:
		if m.From.Kind != PileTableau || m.To.Kind != PileFoundation {
			return illegal(m, UnknownMove)
		}
		if err := w.requireTop(m, m.From); err != nil {
			return err
		}
		return w.foundationAccepts(m)

	case MoveFoundationToTableau:
		if m.From.Kind != PileFoundation || m.To.Kind != PileTableau {
			return illegal(m, UnknownMove)
		}
		if err := w.requireTop(m, m.From); err != nil {
			return err
		}
		to, ok := w.piles[m.To]
		if !ok {
			return illegal(m, UnknownMove)
		}
		return w.tableauAccepts(m, to)

	case MoveWasteToTableau:
		if m.From != Waste || m.To.Kind != PileTableau {
			return illegal(m, UnknownMove)
		}
		if err := w.requireTop(m, Waste); err != nil {
			return err
		}
		to, ok := w.piles[m.To]
		if !ok {
			return illegal(m, UnknownMove)
		}
		return w.tableauAccepts(m, to)

	case MoveWasteToFoundation:
		if m.From != Waste || m.To.Kind != PileFoundation {
			return illegal(m, UnknownMove)
		}
		if err := w.requireTop(m, Waste); err != nil {
			return err
		}
		return w.foundationAccepts(m)

	case MoveStockToWaste:
		if w.PileLen(w.piles[Stock]) > 0 {
			return nil
		}
		// Empty stock: the draw degrades to a recycle of the waste.
		return w.validateRecycle(m)

	case MoveRecycleWaste:
		if w.PileLen(w.piles[Stock]) > 0 {
			// Recycling is only available once the stock is exhausted.
			return illegal(m, StockNotEmpty)
		}
		return w.validateRecycle(m)
	}
	return illegal(m, UnknownMove)
}

// validateRecycle checks the waste→stock recycle preconditions. The stock is
// already known to be empty.
func (w *World) validateRecycle(m Move) error {
	if w.PileLen(w.piles[Waste]) == 0 {
		return illegal(m, StockEmpty)
	}
	if w.rules.MaxRecycles != 0 && w.recycles >= w.rules.MaxRecycles {
		return illegal(m, RecycleLimitExceeded)
	}
	return nil
}

// requireTop verifies m.Card is exactly the top card of the stated pile.
func (w *World) requireTop(m Move, ref PileRef) error {
	pile, ok := w.piles[ref]
	if !ok {
		return illegal(m, UnknownMove)
	}
	e, ok := w.cards[m.Card]
	if !ok {
		return illegal(m, UnknownMove)
	}
	mem, ok := w.Memberships.Get(e)
	if !ok {
		return fmt.Errorf("card %s: %w", m.Card, ErrMissingComponent)
	}
	if mem.Pile != pile || w.TopEntity(pile) != e {
		return illegal(m, NotTopOfPile)
	}
	return nil
}

// tableauRun resolves the face-up run headed by m.Card in its stated source
// tableau: the card itself plus every card above it. The run must sit at the
// top of the pile and be fully face-up.
func (w *World) tableauRun(m Move) ([]ecs.Entity, error) {
	pile, ok := w.piles[m.From]
	if !ok {
		return nil, illegal(m, UnknownMove)
	}
	e, ok := w.cards[m.Card]
	if !ok {
		return nil, illegal(m, UnknownMove)
	}
	mem, ok := w.Memberships.Get(e)
	if !ok {
		return nil, fmt.Errorf("card %s: %w", m.Card, ErrMissingComponent)
	}
	if mem.Pile != pile {
		return nil, illegal(m, NotTopOfPile)
	}
	if !w.faceUp(e) {
		return nil, illegal(m, NotTopOfPile)
	}
	cards := w.PileCards(pile)
	run := cards[mem.Pos:]
	for _, re := range run {
		if !w.faceUp(re) {
			return nil, illegal(m, NotTopOfPile)
		}
	}
	return run, nil
}

// tableauAccepts checks the destination tableau against the moving card
// (the head of the run for multi-card moves).
func (w *World) tableauAccepts(m Move, to ecs.Entity) error {
	top := w.TopCard(to)
	if top == EmptyCard {
		if w.rules.EmptyTableau == EmptyTableauKingsOnly && m.Card.Rank() != RankKing {
			return illegal(m, WrongRank)
		}
		return nil
	}
	if top.Rank() != m.Card.Rank()+1 {
		return illegal(m, WrongRank)
	}
	if top.IsRed() == m.Card.IsRed() {
		return illegal(m, WrongColor)
	}
	return nil
}

// foundationAccepts checks the destination foundation: matching suit,
// ascending rank from Ace, room left.
func (w *World) foundationAccepts(m Move) error {
	pile, ok := w.piles[m.To]
	if !ok {
		return illegal(m, UnknownMove)
	}
	if m.Card.Suit() != m.To.Index {
		return illegal(m, WrongColor)
	}
	if w.PileLen(pile) >= NumRanks {
		return illegal(m, DestinationFull)
	}
	top := w.TopCard(pile)
	if top == EmptyCard {
		if m.Card.Rank() != RankAce {
			return illegal(m, WrongRank)
		}
		return nil
	}
	if m.Card.Rank() != top.Rank()+1 {
		return illegal(m, WrongRank)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Enumeration
// ---------------------------------------------------------------------------

// LegalMoves returns every move that currently validates. It allocates; the
// win/stuck detector and tests are its main consumers.
func LegalMoves(w *World) []Move {
	var moves []Move
	try := func(m Move) {
		if Validate(w, m) == nil {
			moves = append(moves, m)
		}
	}

	// Tableau sources: every face-up card heads a candidate run; tops may
	// also go to their suit foundation.
	for i := uint8(0); i < NumTableaus; i++ {
		from := Tableau(i)
		pile := w.piles[from]
		cards := w.PileCards(pile)
		for pos, e := range cards {
			if !w.faceUp(e) {
				continue
			}
			c, ok := w.identity(e)
			if !ok {
				continue
			}
			for j := uint8(0); j < NumTableaus; j++ {
				if j == i {
					continue
				}
				try(Move{Kind: MoveTableauToTableau, Card: c, From: from, To: Tableau(j)})
			}
			if pos == len(cards)-1 {
				try(Move{Kind: MoveTableauToFoundation, Card: c, From: from, To: Foundation(c.Suit())})
			}
		}
	}

	// Waste top.
	if top := w.TopCard(w.piles[Waste]); top != EmptyCard {
		for j := uint8(0); j < NumTableaus; j++ {
			try(Move{Kind: MoveWasteToTableau, Card: top, From: Waste, To: Tableau(j)})
		}
		try(Move{Kind: MoveWasteToFoundation, Card: top, From: Waste, To: Foundation(top.Suit())})
	}

	// Foundation tops back to tableaus (undo-style).
	for suit := uint8(0); suit < NumFoundations; suit++ {
		from := Foundation(suit)
		top := w.TopCard(w.piles[from])
		if top == EmptyCard {
			continue
		}
		for j := uint8(0); j < NumTableaus; j++ {
			try(Move{Kind: MoveFoundationToTableau, Card: top, From: from, To: Tableau(j)})
		}
	}

	// Stock draw and waste recycle.
	try(DrawMove())
	try(RecycleMove())

	return moves
}
