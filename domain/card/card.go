package card

import (
	"fmt"
	"strings"
)

// Suit of a card. The numeric value is the suit strength used for tie-breaks.
type Suit int

const (
	NoSuit   Suit = 0
	Hearts   Suit = 1 // ♥
	Diamonds Suit = 2 // ♦
	Clubs    Suit = 3 // ♣
	Spades   Suit = 4 // ♠
)

// Suits lists the four suits from the strongest to the weakest.
var Suits = []Suit{Spades, Clubs, Diamonds, Hearts}

// Face value of a suit card.
type Face int

const (
	Ace   Face = 1
	Two   Face = 2
	Three Face = 3
	Four  Face = 4
)

// Faces lists the four faces in ascending order.
var Faces = []Face{Ace, Two, Three, Four}

// Card is any card of the game. The set of implementations is closed: use a
// type switch over *SuitCard, *Joker and *ExtensionCard.
type Card interface {
	FaceValue() int
	SuitValue() int
	String() string

	// Trophy returns the trophy criterion of the card, or nil unless the card
	// was drawn as a trophy.
	Trophy() *TrophyType
	MarkTrophy(t TrophyType)

	sealed()
}

type trophyInfo struct {
	trophy *TrophyType
}

func (t *trophyInfo) Trophy() *TrophyType {
	return t.trophy
}

func (t *trophyInfo) MarkTrophy(tt TrophyType) {
	t.trophy = &tt
}

// SuitCard is one of the sixteen Ace..Four cards.
type SuitCard struct {
	trophyInfo
	suit Suit
	face Face
}

// NewSuitCard creates a suit card, rejecting values outside the Jest deck.
func NewSuitCard(s Suit, f Face) (*SuitCard, error) {
	if s < Hearts || s > Spades || f < Ace || f > Four {
		return nil, fmt.Errorf("invalid card %d, %d", s, f)
	}
	return &SuitCard{suit: s, face: f}, nil
}

func (c *SuitCard) Suit() Suit     { return c.suit }
func (c *SuitCard) Face() Face     { return c.face }
func (c *SuitCard) FaceValue() int { return int(c.face) }
func (c *SuitCard) SuitValue() int { return int(c.suit) }
func (c *SuitCard) sealed()        {}

func (c *SuitCard) String() string {
	return c.face.String() + c.suit.Symbol()
}

// Joker is the single wildcard of the deck. Its face and suit values are 0.
type Joker struct {
	trophyInfo
}

// NewJoker returns a new Joker instance.
func NewJoker() *Joker {
	return &Joker{}
}

func (j *Joker) FaceValue() int { return 0 }
func (j *Joker) SuitValue() int { return 0 }
func (j *Joker) String() string { return "Joker" }
func (j *Joker) sealed()        {}

// StandardSet returns the seventeen cards of a standard Jest deck in a fixed
// order: the suit cards by suit then face, followed by the Joker.
func StandardSet() []Card {
	cards := make([]Card, 0, 17)
	for _, s := range []Suit{Hearts, Diamonds, Clubs, Spades} {
		for _, f := range Faces {
			cards = append(cards, &SuitCard{suit: s, face: f})
		}
	}
	return append(cards, NewJoker())
}

func (s Suit) String() string {
	switch s {
	case Hearts:
		return "hearts"
	case Diamonds:
		return "diamonds"
	case Clubs:
		return "clubs"
	case Spades:
		return "spades"
	default:
		return "none"
	}
}

// Symbol returns the suit glyph.
func (s Suit) Symbol() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// ParseSuit reads a suit from its name, case-insensitively.
func ParseSuit(name string) (Suit, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "hearts", "heart", "h":
		return Hearts, nil
	case "diamonds", "diamond", "d":
		return Diamonds, nil
	case "clubs", "club", "c":
		return Clubs, nil
	case "spades", "spade", "s":
		return Spades, nil
	}
	return NoSuit, fmt.Errorf("unknown suit %q", name)
}

func (f Face) String() string {
	switch f {
	case Ace:
		return "A"
	case Two, Three, Four:
		return fmt.Sprintf("%d", int(f))
	default:
		return "?"
	}
}
