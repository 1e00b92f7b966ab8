package engine

import "testing"

// TestStandardDeck verifies the deck holds each of the 52 cards exactly once.
func TestStandardDeck(t *testing.T) {
	deck := StandardDeck()
	if len(deck) != DeckSize {
		t.Fatalf("len = %d, want %d", len(deck), DeckSize)
	}
	seen := make(map[Card]bool, DeckSize)
	for i, c := range deck {
		if c.Suit() >= NumSuits || c.Rank() >= NumRanks {
			t.Errorf("deck[%d] = %s: malformed card", i, c)
		}
		if seen[c] {
			t.Errorf("duplicate card %s at index %d", c, i)
		}
		seen[c] = true
	}
}

// TestShuffleDeterministic verifies equal seeds produce identical orders.
func TestShuffleDeterministic(t *testing.T) {
	deck := StandardDeck()
	for _, seed := range []uint64{1, 42, 0xDEADBEEF, ^uint64(0)} {
		a := Shuffle(deck, seed)
		b := Shuffle(deck, seed)
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("seed %d: shuffles differ at index %d (%s vs %s)", seed, i, a[i], b[i])
			}
		}
	}
}

// TestShuffleSeedsDiffer verifies different seeds produce different orders.
func TestShuffleSeedsDiffer(t *testing.T) {
	deck := StandardDeck()
	a := Shuffle(deck, 1)
	b := Shuffle(deck, 2)
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("seeds 1 and 2 produced the same permutation")
	}
}

// TestShuffleDoesNotMutateInput verifies the input slice is left untouched.
func TestShuffleDoesNotMutateInput(t *testing.T) {
	deck := StandardDeck()
	want := StandardDeck()
	Shuffle(deck, 7)
	for i := range deck {
		if deck[i] != want[i] {
			t.Fatalf("input deck mutated at index %d", i)
		}
	}
}

// TestShuffleIsPermutation verifies the output is a permutation of the input.
func TestShuffleIsPermutation(t *testing.T) {
	out := Shuffle(StandardDeck(), 42)
	seen := make(map[Card]bool, DeckSize)
	for _, c := range out {
		if seen[c] {
			t.Fatalf("duplicate card %s after shuffle", c)
		}
		seen[c] = true
	}
	if len(seen) != DeckSize {
		t.Fatalf("got %d unique cards, want %d", len(seen), DeckSize)
	}
}

// TestShuffleSeedZero verifies seed 0 is corrected (xorshift fixed point)
// rather than degenerating.
func TestShuffleSeedZero(t *testing.T) {
	a := Shuffle(StandardDeck(), 0)
	b := Shuffle(StandardDeck(), 1)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("seed 0 and seed 1 differ at index %d; 0 should be corrected to 1", i)
		}
	}
}

// TestParseCardRoundTrip verifies String/ParseCard agree.
func TestParseCardRoundTrip(t *testing.T) {
	for _, c := range StandardDeck() {
		got, err := ParseCard(c.String())
		if err != nil {
			t.Fatalf("ParseCard(%q): %v", c.String(), err)
		}
		if got != c {
			t.Fatalf("round trip %s -> %s", c, got)
		}
	}
	if _, err := ParseCard("1X"); err == nil {
		t.Error("ParseCard(\"1X\") succeeded, want error")
	}
}
