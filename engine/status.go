package engine

// GameStatus is the detector's verdict over the current World state.
type GameStatus uint8

const (
	InProgress GameStatus = iota
	Won
	NoLegalMoves
)

func (s GameStatus) String() string {
	switch s {
	case InProgress:
		return "in progress"
	case Won:
		return "won"
	case NoLegalMoves:
		return "no legal moves"
	}
	return "unknown"
}

// QueryState derives the game status purely from World state. It never
// mutates and is idempotent: repeated calls without an intervening move
// return the same verdict.
//
// Won: all four foundations hold their full 13-card suit run.
//
// NoLegalMoves: no placement move validates, and cycling the stock cannot
// change that — either drawing/recycling is itself illegal, or no card in
// the stock or waste fits any current destination. With multi-card draws a
// theoretically unreachable fit is still reported InProgress; the detector
// errs toward playability rather than simulating cycle reachability.
func QueryState(w *World) GameStatus {
	if isWon(w) {
		return Won
	}

	for _, m := range LegalMoves(w) {
		if m.Kind != MoveStockToWaste && m.Kind != MoveRecycleWaste {
			return InProgress
		}
	}

	// Only draws/recycles remain (or nothing). Cycling helps only if some
	// buried stock or waste card fits a current destination.
	if !drawAvailable(w) {
		return NoLegalMoves
	}
	for _, pile := range []PileRef{Stock, Waste} {
		for _, e := range w.PileCards(w.piles[pile]) {
			c, ok := w.identity(e)
			if !ok {
				continue
			}
			if fitsAnywhere(w, c) {
				return InProgress
			}
		}
	}
	return NoLegalMoves
}

// isWon reports whether every foundation holds all 13 cards of its suit.
func isWon(w *World) bool {
	for suit := uint8(0); suit < NumFoundations; suit++ {
		if w.PileLen(w.piles[Foundation(suit)]) != NumRanks {
			return false
		}
	}
	return true
}

// drawAvailable reports whether a stock draw or waste recycle validates now.
func drawAvailable(w *World) bool {
	return Validate(w, DrawMove()) == nil || Validate(w, RecycleMove()) == nil
}

// fitsAnywhere reports whether the card could be placed on some current
// foundation or tableau top if it were drawn.
func fitsAnywhere(w *World, c Card) bool {
	fTop := w.TopCard(w.piles[Foundation(c.Suit())])
	if fTop == EmptyCard {
		if c.Rank() == RankAce {
			return true
		}
	} else if c.Rank() == fTop.Rank()+1 {
		return true
	}

	for i := uint8(0); i < NumTableaus; i++ {
		top := w.TopCard(w.piles[Tableau(i)])
		if top == EmptyCard {
			if w.rules.EmptyTableau == EmptyTableauAnyCard || c.Rank() == RankKing {
				return true
			}
			continue
		}
		if top.Rank() == c.Rank()+1 && top.IsRed() != c.IsRed() {
			return true
		}
	}
	return false
}
