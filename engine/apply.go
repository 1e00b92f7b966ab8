package engine

import (
	"sort"

	"github.com/cardkit/klondike/ecs"
)

// MoveOutcome reports what an accepted move did: the cards that changed
// piles, the card newly exposed at a tableau source (if any), and the game
// status after the move.
type MoveOutcome struct {
	Move    Move
	Moved   []CardView
	Flipped *CardView
	Status  GameStatus
}

// Apply validates m and, if legal, mutates the World: pile memberships are
// rewritten with contiguous positions in both piles and a newly exposed
// tableau top is flipped face-up. On rejection the World is left unchanged —
// validation completes before the first mutation, so no partial state is
// ever observable.
func Apply(w *World, m Move) (MoveOutcome, error) {
	if err := Validate(w, m); err != nil {
		return MoveOutcome{}, err
	}

	var out MoveOutcome
	out.Move = m

	switch m.Kind {
	case MoveStockToWaste:
		if w.PileLen(w.piles[Stock]) == 0 {
			w.applyRecycle()
		} else {
			out.Moved = w.applyDraw()
		}

	case MoveRecycleWaste:
		w.applyRecycle()

	case MoveTableauToTableau:
		run, err := w.tableauRun(m)
		if err != nil {
			// Validate accepted the move; a failure here is an engine bug.
			return MoveOutcome{}, err
		}
		out.Moved = w.moveEntities(run, w.piles[m.From], w.piles[m.To])
		out.Flipped = w.exposeTop(m.From)

	case MoveTableauToFoundation:
		e := w.cards[m.Card]
		out.Moved = w.moveEntities([]ecs.Entity{e}, w.piles[m.From], w.piles[m.To])
		out.Flipped = w.exposeTop(m.From)

	case MoveFoundationToTableau, MoveWasteToTableau, MoveWasteToFoundation:
		e := w.cards[m.Card]
		out.Moved = w.moveEntities([]ecs.Entity{e}, w.piles[m.From], w.piles[m.To])
	}

	out.Status = QueryState(w)
	return out, nil
}

// moveEntities appends run (in order) to the destination pile and renumbers
// the source. The run is always the top of the source pile.
func (w *World) moveEntities(run []ecs.Entity, from, to ecs.Entity) []CardView {
	base := uint8(w.PileLen(to))
	views := make([]CardView, 0, len(run))
	for i, e := range run {
		w.Memberships.Set(e, PileMembership{Pile: to, Pos: base + uint8(i)})
		w.Faces.Set(e, FaceUp) // cards arriving on tableau/foundation/waste are exposed
		views = append(views, w.cardView(e))
	}
	w.renumberPile(from)
	return views
}

// renumberPile rewrites the pile's positions as 0..n-1 preserving order.
func (w *World) renumberPile(pile ecs.Entity) {
	type slot struct {
		e   ecs.Entity
		pos uint8
	}
	var slots []slot
	w.Memberships.Each(func(e ecs.Entity, m PileMembership) {
		if m.Pile == pile {
			slots = append(slots, slot{e: e, pos: m.Pos})
		}
	})
	sort.Slice(slots, func(i, j int) bool { return slots[i].pos < slots[j].pos })
	for i, s := range slots {
		w.Memberships.Set(s.e, PileMembership{Pile: pile, Pos: uint8(i)})
	}
}

// exposeTop flips the new top of a tableau source face-up if it is face-down,
// returning its view.
func (w *World) exposeTop(ref PileRef) *CardView {
	if ref.Kind != PileTableau {
		return nil
	}
	top := w.TopEntity(w.piles[ref])
	if top == ecs.NilEntity || w.faceUp(top) {
		return nil
	}
	w.Faces.Set(top, FaceUp)
	v := w.cardView(top)
	return &v
}

// applyDraw moves the configured number of cards (clamped to the stock size)
// from the stock top to the waste, each turned face-up. The last card drawn
// ends on top of the waste.
func (w *World) applyDraw() []CardView {
	stock := w.piles[Stock]
	waste := w.piles[Waste]
	n := int(w.rules.drawCount())
	if l := w.PileLen(stock); n > l {
		n = l
	}
	views := make([]CardView, 0, n)
	for i := 0; i < n; i++ {
		top := w.TopEntity(stock)
		pos := uint8(w.PileLen(waste))
		w.Memberships.Set(top, PileMembership{Pile: waste, Pos: pos})
		w.Faces.Set(top, FaceUp)
		views = append(views, w.cardView(top))
	}
	w.renumberPile(stock)
	return views
}

// applyRecycle moves the entire waste back to the stock in reversed order,
// all face-down, and counts the recycle. Drawing through the stock again then
// yields the cards in their original waste order.
func (w *World) applyRecycle() {
	stock := w.piles[Stock]
	waste := w.piles[Waste]
	cards := w.PileCards(waste)
	n := len(cards)
	for i, e := range cards {
		w.Memberships.Set(e, PileMembership{Pile: stock, Pos: uint8(n - 1 - i)})
		w.Faces.Set(e, FaceDown)
	}
	w.recycles++
}

// cardView projects a card entity to its public view.
func (w *World) cardView(e ecs.Entity) CardView {
	c, _ := w.identity(e)
	return CardView{Rank: c.Rank(), Suit: c.Suit(), FaceUp: w.faceUp(e)}
}
