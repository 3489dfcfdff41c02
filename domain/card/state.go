package card

import "fmt"

// Kind tags of a serialized card.
const (
	KindSuit      = "suit"
	KindJoker     = "joker"
	KindExtension = "extension"
)

// State is the serializable form of a card.
type State struct {
	Kind   string      `json:"kind"`
	Suit   Suit        `json:"suit,omitempty"`
	Face   Face        `json:"face,omitempty"`
	Name   string      `json:"name,omitempty"`
	Trophy *TrophyType `json:"trophy,omitempty"`
}

// StateOf captures c, trophy metadata included.
func StateOf(c Card) State {
	var s State
	switch c := c.(type) {
	case *SuitCard:
		s = State{Kind: KindSuit, Suit: c.suit, Face: c.face}
	case *Joker:
		s = State{Kind: KindJoker}
	case *ExtensionCard:
		s = State{Kind: KindExtension, Name: c.name}
	}
	if t := c.Trophy(); t != nil {
		tt := *t
		s.Trophy = &tt
	}
	return s
}

// Restore rebuilds a new card instance from its state. Extension cards are
// looked up in catalog.
func (s State) Restore(catalog Catalog) (Card, error) {
	var c Card
	switch s.Kind {
	case KindSuit:
		sc, err := NewSuitCard(s.Suit, s.Face)
		if err != nil {
			return nil, err
		}
		c = sc
	case KindJoker:
		c = NewJoker()
	case KindExtension:
		ext, err := catalog.New(s.Name)
		if err != nil {
			return nil, err
		}
		c = ext
	default:
		return nil, fmt.Errorf("unknown card kind %q", s.Kind)
	}
	if s.Trophy != nil {
		c.MarkTrophy(*s.Trophy)
	}
	return c, nil
}

// StatesOf captures a list of cards.
func StatesOf(cards []Card) []State {
	out := make([]State, len(cards))
	for i, c := range cards {
		out[i] = StateOf(c)
	}
	return out
}

// RestoreAll rebuilds a list of cards.
func RestoreAll(states []State, catalog Catalog) ([]Card, error) {
	out := make([]Card, 0, len(states))
	for i, s := range states {
		c, err := s.Restore(catalog)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}
