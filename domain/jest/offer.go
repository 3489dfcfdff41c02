package jest

import "github.com/luca-patrignani/jest/domain/card"

// Offer is the pair of cards a player commits each turn. Taken sides become
// nil; the owner never changes.
type Offer struct {
	owner    *Player
	faceUp   card.Card
	faceDown card.Card
}

func NewOffer(owner *Player, faceUp, faceDown card.Card) *Offer {
	return &Offer{owner: owner, faceUp: faceUp, faceDown: faceDown}
}

func (o *Offer) Owner() *Player          { return o.owner }
func (o *Offer) FaceUpCard() card.Card   { return o.faceUp }
func (o *Offer) FaceDownCard() card.Card { return o.faceDown }

// IsComplete reports whether neither side has been taken.
func (o *Offer) IsComplete() bool {
	return o.faceUp != nil && o.faceDown != nil
}

// IsEmpty reports whether both sides have been taken.
func (o *Offer) IsEmpty() bool {
	return o.faceUp == nil && o.faceDown == nil
}

// TakeCard removes and returns the requested side. It returns nil when that
// side was already taken.
func (o *Offer) TakeCard(faceUp bool) card.Card {
	var c card.Card
	if faceUp {
		c, o.faceUp = o.faceUp, nil
	} else {
		c, o.faceDown = o.faceDown, nil
	}
	return c
}

// Remaining returns the cards still in the offer, face-up first.
func (o *Offer) Remaining() []card.Card {
	var out []card.Card
	if o.faceUp != nil {
		out = append(out, o.faceUp)
	}
	if o.faceDown != nil {
		out = append(out, o.faceDown)
	}
	return out
}

// clear drops whatever is left in the offer.
func (o *Offer) clear() {
	o.faceUp = nil
	o.faceDown = nil
}

// SelectableOffers filters offers down to those chooser may take from: only
// complete offers, and never chooser's own unless it is the last complete
// one.
func SelectableOffers(offers []*Offer, chooser *Player) []*Offer {
	var complete, others []*Offer
	for _, o := range offers {
		if o == nil || !o.IsComplete() {
			continue
		}
		complete = append(complete, o)
		if o.owner != chooser {
			others = append(others, o)
		}
	}
	if len(others) > 0 {
		return others
	}
	return complete
}

// betterFaceUp reports whether a beats b by face value, then suit strength.
func betterFaceUp(a, b card.Card) bool {
	if a.FaceValue() != b.FaceValue() {
		return a.FaceValue() > b.FaceValue()
	}
	return a.SuitValue() > b.SuitValue()
}

// bestFaceUpOffer returns the offer showing the strongest face-up card, or
// nil when no offer shows one. Earlier offers win exact ties.
func bestFaceUpOffer(offers []*Offer) *Offer {
	var best *Offer
	for _, o := range offers {
		if o == nil || o.faceUp == nil {
			continue
		}
		if best == nil || betterFaceUp(o.faceUp, best.faceUp) {
			best = o
		}
	}
	return best
}
