package engine

import "github.com/cardkit/klondike/ecs"

// NewGame builds the initial World for the given seed and rules: 52 card
// entities, 13 pile entities, the standard deal. Deterministic in seed.
//
// Deal: tableau pile i (0-indexed) receives i+1 cards with only the last one
// face-up; the remaining 24 cards go to the stock face-down; waste and
// foundations start empty.
func NewGame(seed uint64, rules Rules) *World {
	w := newWorld(rules)

	// Pile entities first, in canonical order.
	for _, ref := range pileOrder() {
		e := w.pool.Create()
		w.PileKinds.Set(e, ref)
		w.piles[ref] = e
	}

	deck := Shuffle(StandardDeck(), seed)

	spawn := func(c Card, pile ecs.Entity, pos uint8, face FaceState) {
		e := w.pool.Create()
		w.Identities.Set(e, c)
		w.Faces.Set(e, face)
		w.Memberships.Set(e, PileMembership{Pile: pile, Pos: pos})
		w.cards[c] = e
	}

	next := 0
	for i := uint8(0); i < NumTableaus; i++ {
		pile := w.piles[Tableau(i)]
		for pos := uint8(0); pos <= i; pos++ {
			face := FaceDown
			if pos == i { // last dealt card in the column is exposed
				face = FaceUp
			}
			spawn(deck[next], pile, pos, face)
			next++
		}
	}

	stock := w.piles[Stock]
	for pos := uint8(0); next < len(deck); pos++ {
		spawn(deck[next], stock, pos, FaceDown)
		next++
	}

	return w
}
