package engine

import (
	"github.com/cardkit/klondike/ecs"
)

// World is the complete live game state: an entity pool plus one typed store
// per component kind, the rules fixed at game start, and the recycle counter.
// It is a single logical resource; callers must serialize access and must not
// mutate components while iterating a query result.
type World struct {
	pool     *ecs.Pool
	registry *ecs.Registry

	// Component stores, one per kind.
	Identities  *ecs.Store[Card]           // card entities, immutable after deal
	Faces       *ecs.Store[FaceState]      // card entities
	Memberships *ecs.Store[PileMembership] // card entities, mutated by every move
	PileKinds   *ecs.Store[PileRef]        // pile entities, immutable after deal

	// Lookup caches over immutable components, built by the layout builder.
	piles map[PileRef]ecs.Entity
	cards map[Card]ecs.Entity

	rules    Rules
	recycles uint16
}

// newWorld returns an empty World with all stores registered.
func newWorld(rules Rules) *World {
	w := &World{
		pool:        ecs.NewPool(),
		registry:    ecs.NewRegistry(),
		Identities:  ecs.NewStore[Card](),
		Faces:       ecs.NewStore[FaceState](),
		Memberships: ecs.NewStore[PileMembership](),
		PileKinds:   ecs.NewStore[PileRef](),
		piles:       make(map[PileRef]ecs.Entity, NumPiles),
		cards:       make(map[Card]ecs.Entity, DeckSize),
		rules:       rules,
	}
	w.registry.Register(w.Identities)
	w.registry.Register(w.Faces)
	w.registry.Register(w.Memberships)
	w.registry.Register(w.PileKinds)
	return w
}

// Rules returns the rule settings this game was started with.
func (w *World) Rules() Rules { return w.rules }

// Recycles returns how many waste→stock recycles have been applied.
func (w *World) Recycles() uint16 { return w.recycles }

// PileEntity resolves a public pile ref to its entity.
func (w *World) PileEntity(ref PileRef) (ecs.Entity, bool) {
	e, ok := w.piles[ref]
	return e, ok
}

// CardEntity resolves a card identity to its entity.
func (w *World) CardEntity(c Card) (ecs.Entity, bool) {
	e, ok := w.cards[c]
	return e, ok
}

// PileLen returns the number of cards currently in the pile.
func (w *World) PileLen(pile ecs.Entity) int {
	n := 0
	w.Memberships.Each(func(_ ecs.Entity, m PileMembership) {
		if m.Pile == pile {
			n++
		}
	})
	return n
}

// PileCards returns the pile's card entities ascending by position
// (index len-1 is the top). The result is a snapshot.
func (w *World) PileCards(pile ecs.Entity) []ecs.Entity {
	n := w.PileLen(pile)
	out := make([]ecs.Entity, n)
	w.Memberships.Each(func(e ecs.Entity, m PileMembership) {
		if m.Pile == pile && int(m.Pos) < n {
			out[m.Pos] = e
		}
	})
	return out
}

// TopEntity returns the top card entity of the pile, or ecs.NilEntity if the
// pile is empty.
func (w *World) TopEntity(pile ecs.Entity) ecs.Entity {
	top := ecs.NilEntity
	best := -1
	w.Memberships.Each(func(e ecs.Entity, m PileMembership) {
		if m.Pile == pile && int(m.Pos) > best {
			best = int(m.Pos)
			top = e
		}
	})
	return top
}

// TopCard returns the top card of the pile, or EmptyCard if the pile is empty.
func (w *World) TopCard(pile ecs.Entity) Card {
	e := w.TopEntity(pile)
	if e == ecs.NilEntity {
		return EmptyCard
	}
	c, ok := w.Identities.Get(e)
	if !ok {
		return EmptyCard
	}
	return c
}

// identity returns a card entity's identity component.
func (w *World) identity(e ecs.Entity) (Card, bool) {
	return w.Identities.Get(e)
}

// faceUp reports whether the card entity is face-up. A missing FaceState
// reads as face-down.
func (w *World) faceUp(e ecs.Entity) bool {
	f, ok := w.Faces.Get(e)
	return ok && f == FaceUp
}

// pileOrder lists all pile refs in canonical order for hashing and iteration.
func pileOrder() []PileRef {
	refs := make([]PileRef, 0, NumPiles)
	for i := uint8(0); i < NumTableaus; i++ {
		refs = append(refs, Tableau(i))
	}
	for suit := uint8(0); suit < NumFoundations; suit++ {
		refs = append(refs, Foundation(suit))
	}
	return append(refs, Stock, Waste)
}

// Hash returns a fast FNV-1a fingerprint of the observable game state: every
// pile's ordered contents and face states plus the recycle counter. Two
// Worlds with identical play state hash identically regardless of entity
// allocation order.
func (w *World) Hash() uint64 {
	h := uint64(14695981039346656037) // FNV-1a offset basis
	const prime = uint64(1099511628211)

	mix := func(b uint64) {
		h ^= b
		h *= prime
	}

	for _, ref := range pileOrder() {
		pile, ok := w.piles[ref]
		if !ok {
			continue
		}
		mix(uint64(ref.Kind)<<8 | uint64(ref.Index))
		for _, e := range w.PileCards(pile) {
			c, _ := w.identity(e)
			face := uint64(0)
			if w.faceUp(e) {
				face = 1
			}
			mix(uint64(c) | face<<16)
		}
	}
	mix(uint64(w.recycles) << 24)
	return h
}
