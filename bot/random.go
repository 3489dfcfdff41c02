package bot

import (
	"github.com/luca-patrignani/jest/domain/card"
	"github.com/luca-patrignani/jest/domain/deck"
	"github.com/luca-patrignani/jest/domain/jest"
)

// Random offers and picks uniformly at random.
type Random struct {
	rng deck.Rand
}

func (r *Random) Kind() card.StrategyKind { return KindRandom }

func (r *Random) ComposeOffer(hand []card.Card, _ *jest.Player) (card.Card, card.Card) {
	i := r.rng.Intn(len(hand))
	j := r.rng.Intn(len(hand) - 1)
	if j >= i {
		j++
	}
	return hand[i], hand[j]
}

func (r *Random) SelectOffer(offers []*jest.Offer, _ *jest.Player) (*jest.Offer, bool) {
	return offers[r.rng.Intn(len(offers))], r.rng.Intn(2) == 0
}
