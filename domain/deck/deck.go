package deck

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/luca-patrignani/jest/domain/card"
)

// ErrEmptyDeck is returned when a card is required from an empty deck.
var ErrEmptyDeck = errors.New("deck is empty")

// Deck is the shuffled draw pile of a match. Cards are dealt from the end of
// the pile.
type Deck struct {
	cards  []card.Card
	rng    Rand
	logger *slog.Logger
}

type deckOption func(*Deck)

// WithRand replaces the shuffle source, typically with a seeded one in tests.
func WithRand(r Rand) deckOption {
	return func(d *Deck) {
		d.rng = r
	}
}

func WithLogger(l *slog.Logger) deckOption {
	return func(d *Deck) {
		d.logger = l
	}
}

// New returns a shuffled standard deck of seventeen cards.
func New(opts ...deckOption) *Deck {
	d := FromCards(card.StandardSet(), opts...)
	d.Shuffle()
	return d
}

// FromCards builds a deck holding cards in the given order, without
// shuffling. The last card is the first to be dealt.
func FromCards(cards []card.Card, opts ...deckOption) *Deck {
	d := &Deck{
		cards:  append([]card.Card{}, cards...),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.rng == nil {
		d.rng = NewCryptoRand()
	}
	return d
}

// DealCard removes and returns the last card of the pile.
func (d *Deck) DealCard() (card.Card, error) {
	if len(d.cards) == 0 {
		return nil, ErrEmptyDeck
	}
	last := len(d.cards) - 1
	c := d.cards[last]
	d.cards[last] = nil
	d.cards = d.cards[:last]
	return c, nil
}

// AddCard puts c back on the pile. Nil cards and cards already in the pile
// are ignored; the result reports whether the card was added.
func (d *Deck) AddCard(c card.Card) bool {
	if c == nil {
		d.logger.Warn("refusing to add a nil card to the deck")
		return false
	}
	for _, existing := range d.cards {
		if existing == c {
			d.logger.Warn("card already in the deck", "card", c.String())
			return false
		}
	}
	d.cards = append(d.cards, c)
	return true
}

// TrophyCount returns how many trophies are drawn for playerCount players.
func TrophyCount(playerCount int) int {
	if playerCount == 3 {
		return 2
	}
	return 1
}

// ChooseTrophies deals the trophies of the match and marks each with its
// trophy type.
func (d *Deck) ChooseTrophies(playerCount int) ([]card.Card, error) {
	n := TrophyCount(playerCount)
	trophies := make([]card.Card, 0, n)
	for i := 0; i < n; i++ {
		c, err := d.DealCard()
		if err != nil {
			return nil, fmt.Errorf("drawing trophy %d: %w", i+1, err)
		}
		c.MarkTrophy(card.AssignTrophyType(c))
		trophies = append(trophies, c)
	}
	return trophies, nil
}

func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns a copy of the pile, bottom first.
func (d *Deck) Cards() []card.Card {
	return append([]card.Card{}, d.cards...)
}
