package engine

import (
	"encoding/json"
	"fmt"
)

// Move-message framing for the external transport. The engine only defines
// the records; it performs no socket work. A received remote move decodes to
// the same Move value a local caller would construct, so both feed through
// ProposeMove identically.

// MessageTypeMove tags a move-carrying wire envelope.
const MessageTypeMove = "move"

// Message is the wire envelope relayed between peers.
type Message struct {
	Type string    `json:"type"`
	Seq  uint64    `json:"seq,omitempty"`
	Move *WireMove `json:"move,omitempty"`
}

// WireMove is the serialized move record: variant tag plus textual operands
// ("2H", "T3", "FH", "S", "W").
type WireMove struct {
	Kind string `json:"kind"`
	Card string `json:"card,omitempty"`
	From string `json:"from"`
	To   string `json:"to"`
}

var moveKindNames = map[MoveKind]string{
	MoveTableauToTableau:    "tableau_to_tableau",
	MoveTableauToFoundation: "tableau_to_foundation",
	MoveFoundationToTableau: "foundation_to_tableau",
	MoveStockToWaste:        "stock_to_waste",
	MoveWasteToTableau:      "waste_to_tableau",
	MoveWasteToFoundation:   "waste_to_foundation",
	MoveRecycleWaste:        "recycle_waste",
}

var moveKindValues = func() map[string]MoveKind {
	m := make(map[string]MoveKind, len(moveKindNames))
	for k, v := range moveKindNames {
		m[v] = k
	}
	return m
}()

// EncodeMove serializes a move into a wire envelope with the given sequence
// number.
func EncodeMove(m Move, seq uint64) ([]byte, error) {
	name, ok := moveKindNames[m.Kind]
	if !ok {
		return nil, fmt.Errorf("encode move: unknown kind %d", m.Kind)
	}
	wm := WireMove{
		Kind: name,
		From: m.From.String(),
		To:   m.To.String(),
	}
	if m.Card != EmptyCard {
		wm.Card = m.Card.String()
	}
	return json.Marshal(Message{Type: MessageTypeMove, Seq: seq, Move: &wm})
}

// DecodeMove parses a wire envelope back into a Move.
func DecodeMove(data []byte) (Move, uint64, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Move{}, 0, fmt.Errorf("decode move: %w", err)
	}
	if msg.Type != MessageTypeMove || msg.Move == nil {
		return Move{}, 0, fmt.Errorf("decode move: not a move message (type %q)", msg.Type)
	}

	kind, ok := moveKindValues[msg.Move.Kind]
	if !ok {
		return Move{}, 0, fmt.Errorf("decode move: unknown kind %q", msg.Move.Kind)
	}
	m := Move{Kind: kind, Card: EmptyCard}

	var err error
	if m.From, err = ParsePile(msg.Move.From); err != nil {
		return Move{}, 0, fmt.Errorf("decode move: %w", err)
	}
	if m.To, err = ParsePile(msg.Move.To); err != nil {
		return Move{}, 0, fmt.Errorf("decode move: %w", err)
	}
	if msg.Move.Card != "" {
		if m.Card, err = ParseCard(msg.Move.Card); err != nil {
			return Move{}, 0, fmt.Errorf("decode move: %w", err)
		}
	}
	return m, msg.Seq, nil
}
