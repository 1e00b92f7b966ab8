package engine

// CardView is the only card projection exposed outward: identity plus face
// state, no entity ids.
type CardView struct {
	Rank   uint8
	Suit   uint8
	FaceUp bool
}

// Card returns the packed identity of the viewed card.
func (v CardView) Card() Card { return NewCard(v.Suit, v.Rank) }

func (v CardView) String() string {
	if !v.FaceUp {
		return "##"
	}
	return v.Card().String()
}

// ProposeMove is the embedding-boundary entry point: it validates and applies
// the move, returning the outcome or the rejection. Rejections leave the
// World untouched.
func ProposeMove(w *World, m Move) (MoveOutcome, error) {
	return Apply(w, m)
}

// Locate returns the pile currently holding the card.
func Locate(w *World, c Card) (PileRef, bool) {
	e, ok := w.cards[c]
	if !ok {
		return PileRef{}, false
	}
	mem, ok := w.Memberships.Get(e)
	if !ok {
		return PileRef{}, false
	}
	ref, ok := w.PileKinds.Get(mem.Pile)
	return ref, ok
}

// QueryPile returns the pile's cards ascending by position as views.
// An unknown ref yields nil.
func QueryPile(w *World, ref PileRef) []CardView {
	pile, ok := w.piles[ref]
	if !ok {
		return nil
	}
	entities := w.PileCards(pile)
	views := make([]CardView, 0, len(entities))
	for _, e := range entities {
		views = append(views, w.cardView(e))
	}
	return views
}
