package engine

// EmptyTableauPolicy names the rule for which cards an empty tableau column
// accepts. Standard patience allows only a King; some variants allow any card.
type EmptyTableauPolicy uint8

const (
	// EmptyTableauKingsOnly — an empty tableau accepts only a King (or a run
	// headed by a King). The standard rule and the default.
	EmptyTableauKingsOnly EmptyTableauPolicy = iota
	// EmptyTableauAnyCard — an empty tableau accepts any card.
	EmptyTableauAnyCard
)

// Rules holds configurable game rule settings, fixed at game start.
type Rules struct {
	EmptyTableau EmptyTableauPolicy
	MaxRecycles  uint16 // waste→stock recycles allowed; 0 = unlimited
	DrawCount    uint8  // cards moved per stock draw; 0 treated as 1
}

// DefaultRules returns the standard one-deck patience rules: kings-only empty
// tableaus, unlimited recycles, draw one.
func DefaultRules() Rules {
	return Rules{
		EmptyTableau: EmptyTableauKingsOnly,
		MaxRecycles:  0,
		DrawCount:    1,
	}
}

// drawCount returns the effective per-draw card count, treating 0 as 1.
func (r *Rules) drawCount() uint8 {
	if r.DrawCount == 0 {
		return 1
	}
	return r.DrawCount
}
