package jest

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/luca-patrignani/jest/domain/card"
	"github.com/luca-patrignani/jest/domain/scoring"
)

type Player struct {
	ID    uuid.UUID
	Name  string
	Hand  []card.Card
	Jest  []card.Card
	Offer *Offer
	Score int

	strategy Strategy
}

func NewHumanPlayer(name string) *Player {
	return &Player{ID: uuid.New(), Name: name}
}

func NewVirtualPlayer(name string, s Strategy) *Player {
	return &Player{ID: uuid.New(), Name: name, strategy: s}
}

func (p *Player) IsVirtual() bool    { return p.strategy != nil }
func (p *Player) Strategy() Strategy { return p.strategy }

func (p *Player) String() string { return p.Name }

// Receive adds dealt cards to the hand.
func (p *Player) Receive(cards ...card.Card) {
	p.Hand = append(p.Hand, cards...)
}

// Collect adds cards to the Jest.
func (p *Player) Collect(cards ...card.Card) {
	p.Jest = append(p.Jest, cards...)
}

// CalculateScore scores the Jest with v and caches the result in Score.
func (p *Player) CalculateScore(v scoring.Visitor) int {
	p.Score = v.CountJestScore(p.Jest)
	return p.Score
}

// MakeOffer lets the strategy of a virtual player compose the offer.
func (p *Player) MakeOffer() (*Offer, error) {
	if !p.IsVirtual() {
		return nil, fmt.Errorf("%w: %s is not a virtual player", ErrUnsupportedOperation, p.Name)
	}
	if len(p.Hand) < 2 {
		return nil, ErrNotEnoughCards
	}
	up, down := p.strategy.ComposeOffer(slices.Clone(p.Hand), p)
	i := p.handIndex(up)
	j := p.handIndex(down)
	if i < 0 || j < 0 || i == j {
		return nil, fmt.Errorf("%w: strategy %s offered cards outside the hand", ErrInvalidDecision, p.strategy.Kind())
	}
	return p.offer(i, j), nil
}

// MakeOfferAt builds the offer of a human player from two hand positions.
func (p *Player) MakeOfferAt(faceUp, faceDown int) (*Offer, error) {
	if p.IsVirtual() {
		return nil, fmt.Errorf("%w: %s is a virtual player", ErrUnsupportedOperation, p.Name)
	}
	if len(p.Hand) < 2 {
		return nil, ErrNotEnoughCards
	}
	if faceUp == faceDown || !p.inHand(faceUp) || !p.inHand(faceDown) {
		return nil, fmt.Errorf("%w: positions %d and %d of a %d card hand", ErrInvalidDecision, faceUp, faceDown, len(p.Hand))
	}
	return p.offer(faceUp, faceDown), nil
}

// ChooseCard lets the strategy of a virtual player take exactly one card from
// offers. It returns a nil offer when nothing can be taken.
func (p *Player) ChooseCard(offers []*Offer) (*Offer, card.Card, error) {
	if !p.IsVirtual() {
		return nil, nil, fmt.Errorf("%w: %s is not a virtual player", ErrUnsupportedOperation, p.Name)
	}
	selectable := SelectableOffers(offers, p)
	if len(selectable) == 0 {
		return nil, nil, nil
	}
	chosen, faceUp := p.strategy.SelectOffer(slices.Clone(selectable), p)
	if !slices.Contains(selectable, chosen) {
		return nil, nil, fmt.Errorf("%w: strategy %s chose an offer that is not selectable", ErrInvalidDecision, p.strategy.Kind())
	}
	return chosen, p.takeFrom(chosen, faceUp), nil
}

// ChooseCardFrom applies the choice of a human player. chosen must be one of
// the offers selectable among offers.
func (p *Player) ChooseCardFrom(offers []*Offer, chosen *Offer, faceUp bool) (card.Card, error) {
	if p.IsVirtual() {
		return nil, fmt.Errorf("%w: %s is a virtual player", ErrUnsupportedOperation, p.Name)
	}
	if !slices.Contains(SelectableOffers(offers, p), chosen) {
		return nil, fmt.Errorf("%w: offer is not selectable", ErrInvalidDecision)
	}
	return p.takeFrom(chosen, faceUp), nil
}

func (p *Player) takeFrom(o *Offer, faceUp bool) card.Card {
	c := o.TakeCard(faceUp)
	if c != nil {
		p.Collect(c)
	}
	return c
}

func (p *Player) offer(up, down int) *Offer {
	o := NewOffer(p, p.Hand[up], p.Hand[down])
	hand := make([]card.Card, 0, len(p.Hand)-2)
	for i, c := range p.Hand {
		if i != up && i != down {
			hand = append(hand, c)
		}
	}
	p.Hand = hand
	p.Offer = o
	return o
}

func (p *Player) inHand(i int) bool { return i >= 0 && i < len(p.Hand) }

func (p *Player) handIndex(c card.Card) int {
	if c == nil {
		return -1
	}
	for i, h := range p.Hand {
		if h == c {
			return i
		}
	}
	return -1
}
