package jest

import "github.com/luca-patrignani/jest/domain/card"

// Strategy decides for a virtual player. Both methods are pure: they inspect
// the arguments and report a choice, the Player applies it.
type Strategy interface {
	Kind() card.StrategyKind
	// ComposeOffer picks two distinct cards of hand, the first shown face up.
	ComposeOffer(hand []card.Card, self *Player) (faceUp, faceDown card.Card)
	// SelectOffer picks one of the selectable offers and the side to take.
	SelectOffer(offers []*Offer, self *Player) (chosen *Offer, faceUp bool)
}

// DecisionProvider answers the decisions of human players, typically by
// prompting someone at a terminal.
type DecisionProvider interface {
	// ChooseFaceUpCardIndex returns which of the given cards goes face up.
	ChooseFaceUpCardIndex(p *Player, cards []card.Card) (int, error)
	// ChooseTwoCardIndices returns the two hand positions that form the offer.
	ChooseTwoCardIndices(p *Player, hand []card.Card) (int, int, error)
	ChooseOffer(p *Player, selectable []*Offer) (*Offer, error)
	ChooseFaceUpOrDown(p *Player, offer *Offer) (bool, error)
}
