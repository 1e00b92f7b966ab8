package engine

// ---------------------------------------------------------------------------
// xorshift64 RNG — inline, no interface
// ---------------------------------------------------------------------------

// rng is a seeded xorshift64 generator. It is platform-independent, so the
// same seed produces the same shuffle everywhere — required for reproducible
// deals and for replaying moves between peers.
type rng struct {
	state uint64
}

func newRNG(seed uint64) rng {
	if seed == 0 {
		seed = 1 // xorshift can't start at 0
	}
	return rng{state: seed}
}

func (r *rng) next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	r.state = x
	return x
}

// n returns a value in [0, n).
func (r *rng) n(n uint64) uint64 {
	return r.next() % n
}

// ---------------------------------------------------------------------------
// Deck construction and shuffling
// ---------------------------------------------------------------------------

// StandardDeck returns the 52 canonical cards, each exactly once, in
// suit-major order.
func StandardDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for suit := uint8(0); suit < NumSuits; suit++ {
		for rank := uint8(0); rank < NumRanks; rank++ {
			deck = append(deck, NewCard(suit, rank))
		}
	}
	return deck
}

// Shuffle returns a Fisher–Yates permutation of deck, deterministic in seed.
// The input slice is not modified.
func Shuffle(deck []Card, seed uint64) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	r := newRNG(seed)
	for i := len(out) - 1; i > 0; i-- {
		j := int(r.n(uint64(i + 1)))
		out[i], out[j] = out[j], out[i]
	}
	return out
}
