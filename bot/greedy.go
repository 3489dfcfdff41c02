package bot

import (
	"slices"

	"github.com/luca-patrignani/jest/domain/card"
	"github.com/luca-patrignani/jest/domain/jest"
	"github.com/luca-patrignani/jest/domain/scoring"
)

// Greedy takes the card that raises its score the most. A face-down card is
// valued as the average gain over the standard cards it has not seen yet.
type Greedy struct{}

func (g *Greedy) Kind() card.StrategyKind { return KindGreedy }

// ComposeOffer gives away the two cards worth the least to the player and
// shows the weaker of them.
func (g *Greedy) ComposeOffer(hand []card.Card, self *jest.Player) (card.Card, card.Card) {
	ranked := slices.Clone(hand)
	slices.SortStableFunc(ranked, func(a, b card.Card) int {
		return g.value(a, self.Jest) - g.value(b, self.Jest)
	})
	return ranked[0], ranked[1]
}

func (g *Greedy) SelectOffer(offers []*jest.Offer, self *jest.Player) (*jest.Offer, bool) {
	hidden := g.hiddenValue(offers, self)
	var (
		best   *jest.Offer
		faceUp bool
		top    float64
	)
	for _, o := range offers {
		up := float64(g.value(o.FaceUpCard(), self.Jest))
		if best == nil || up > top {
			best, faceUp, top = o, true, up
		}
		if hidden > top {
			best, faceUp, top = o, false, hidden
		}
	}
	return best, faceUp
}

// value is the score gained by adding c to pile, plus the interest of
// extension cards.
func (g *Greedy) value(c card.Card, pile []card.Card) int {
	v := scoring.NewStandard()
	before := v.CountJestScore(pile)
	after := v.CountJestScore(append(slices.Clone(pile), c))
	gain := after - before
	if ext, ok := c.(*card.ExtensionCard); ok {
		gain += ext.Interest(KindGreedy, pile)
	}
	return gain
}

func (g *Greedy) hiddenValue(offers []*jest.Offer, self *jest.Player) float64 {
	seen := make(map[string]bool)
	for _, c := range self.Jest {
		seen[c.String()] = true
	}
	for _, c := range self.Hand {
		seen[c.String()] = true
	}
	if self.Offer != nil {
		for _, c := range self.Offer.Remaining() {
			seen[c.String()] = true
		}
	}
	for _, o := range offers {
		if c := o.FaceUpCard(); c != nil {
			seen[c.String()] = true
		}
	}
	var total, n int
	for _, c := range card.StandardSet() {
		if seen[c.String()] {
			continue
		}
		total += g.value(c, self.Jest)
		n++
	}
	if n == 0 {
		return 0
	}
	return float64(total) / float64(n)
}
