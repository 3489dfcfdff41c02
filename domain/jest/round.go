package jest

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/luca-patrignani/jest/domain/card"
	"github.com/luca-patrignani/jest/domain/deck"
)

type RoundState int

const (
	RoundCreated RoundState = iota
	RoundDealing
	RoundOffering
	RoundDeterminingStarter
	RoundChoosing
	RoundEnding
	RoundOver
)

func (s RoundState) String() string {
	switch s {
	case RoundCreated:
		return "created"
	case RoundDealing:
		return "dealing"
	case RoundOffering:
		return "offering"
	case RoundDeterminingStarter:
		return "determining starter"
	case RoundChoosing:
		return "choosing"
	case RoundEnding:
		return "ending"
	case RoundOver:
		return "over"
	default:
		return "unknown"
	}
}

// Round runs one deal/offer/choose cycle over players it does not own. The
// Full Hand dealing mode turns it into a single round of repeated cycles.
type Round struct {
	number    int
	players   []*Player
	deck      *deck.Deck
	mode      DealMode
	decisions DecisionProvider
	notifier  Notifier
	logger    *slog.Logger

	state         RoundState
	dealt         bool
	offers        []*Offer
	alreadyPlayed []*Player
}

func (g *Game) newRound() *Round {
	return &Round{
		number:    g.RoundCounter,
		players:   g.Players,
		deck:      g.Deck,
		mode:      g.Variant.DealMode(),
		decisions: g.decisions,
		notifier:  g.notifier,
		logger:    g.logger.With("round", g.RoundCounter),
	}
}

func (r *Round) Number() int       { return r.number }
func (r *Round) State() RoundState { return r.state }

// Offers returns the offers of the current cycle.
func (r *Round) Offers() []*Offer { return slices.Clone(r.offers) }

// AlreadyPlayed returns the players that chose a card in the current cycle,
// in turn order.
func (r *Round) AlreadyPlayed() []*Player { return slices.Clone(r.alreadyPlayed) }

// Play runs the round to completion.
func (r *Round) Play() error {
	r.notify(Event{Kind: EventRoundStarted})
	if r.mode == DealFullHand {
		return r.playFullHand()
	}
	if err := r.Deal(); err != nil {
		return err
	}
	if err := r.cycle(); err != nil {
		return err
	}
	r.End()
	return nil
}

func (r *Round) cycle() error {
	if err := r.CollectOffers(); err != nil {
		return err
	}
	return r.PlayChoosingPhase(r.DetermineStarter())
}

func (r *Round) playFullHand() error {
	if err := r.Deal(); err != nil {
		return err
	}
	for !r.handsExhausted() {
		if err := r.cycle(); err != nil {
			return err
		}
		if len(r.offers) == 0 {
			r.warn(nil, "nobody could make an offer, ending the hand early")
			break
		}
		r.ReturnRemainingCardsToHands()
	}
	for _, p := range r.players {
		p.Collect(p.Hand...)
		p.Hand = nil
	}
	r.state = RoundOver
	r.notify(Event{Kind: EventRoundEnded})
	return nil
}

func (r *Round) handsExhausted() bool {
	for _, p := range r.players {
		if len(p.Hand) > 1 {
			return false
		}
	}
	return true
}

// Deal gives two cards to every player, one at a time in player order. In
// Full Hand mode it splits the whole deck instead, extra cards going to the
// first players, and only ever runs once.
func (r *Round) Deal() error {
	r.state = RoundDealing
	switch r.mode {
	case DealFullHand:
		if r.dealt {
			return nil
		}
		total, n := r.deck.Len(), len(r.players)
		for i, p := range r.players {
			count := total / n
			if i < total%n {
				count++
			}
			for range count {
				if err := r.dealTo(p); err != nil {
					return err
				}
			}
		}
	default:
		for range 2 {
			for _, p := range r.players {
				if err := r.dealTo(p); err != nil {
					return err
				}
			}
		}
	}
	r.dealt = true
	for _, p := range r.players {
		r.notify(Event{Kind: EventCardsDealt, Player: p.Name, Cards: cardNames(p.Hand)})
	}
	return nil
}

func (r *Round) dealTo(p *Player) error {
	c, err := r.deck.DealCard()
	if err != nil {
		return fmt.Errorf("dealing to %s: %w", p.Name, err)
	}
	p.Receive(c)
	return nil
}

// CollectOffers asks every player for an offer, in player order. Players
// that cannot offer are skipped.
func (r *Round) CollectOffers() error {
	r.state = RoundOffering
	r.offers = nil
	r.alreadyPlayed = nil
	r.notify(Event{Kind: EventOfferPhaseStarted})
	for _, p := range r.players {
		o, err := r.offerFor(p)
		if errors.Is(err, ErrNotEnoughCards) {
			r.warn(p, fmt.Sprintf("%s has fewer than two cards and makes no offer", p.Name))
			continue
		}
		if err != nil {
			return err
		}
		r.offers = append(r.offers, o)
		r.notify(Event{Kind: EventOfferMade, Player: p.Name, Card: o.FaceUpCard().String(), FaceUp: true})
	}
	return nil
}

func (r *Round) offerFor(p *Player) (*Offer, error) {
	if p.IsVirtual() {
		return p.MakeOffer()
	}
	if len(p.Hand) < 2 {
		return nil, ErrNotEnoughCards
	}
	if len(p.Hand) == 2 {
		up, err := r.decisions.ChooseFaceUpCardIndex(p, slices.Clone(p.Hand))
		if err != nil {
			return nil, fmt.Errorf("%s choosing the face-up card: %w", p.Name, err)
		}
		return p.MakeOfferAt(up, 1-up)
	}
	i, j, err := r.decisions.ChooseTwoCardIndices(p, slices.Clone(p.Hand))
	if err != nil {
		return nil, fmt.Errorf("%s choosing the offered cards: %w", p.Name, err)
	}
	if i == j || !p.inHand(i) || !p.inHand(j) {
		return nil, fmt.Errorf("%w: positions %d and %d of a %d card hand", ErrInvalidDecision, i, j, len(p.Hand))
	}
	up, err := r.decisions.ChooseFaceUpCardIndex(p, []card.Card{p.Hand[i], p.Hand[j]})
	if err != nil {
		return nil, fmt.Errorf("%s choosing the face-up card: %w", p.Name, err)
	}
	switch up {
	case 0:
		return p.MakeOfferAt(i, j)
	case 1:
		return p.MakeOfferAt(j, i)
	default:
		return nil, fmt.Errorf("%w: face-up choice %d out of two cards", ErrInvalidDecision, up)
	}
}

// DetermineStarter returns the owner of the strongest face-up card, the
// first player when nobody shows one.
func (r *Round) DetermineStarter() *Player {
	r.state = RoundDeterminingStarter
	best := bestFaceUpOffer(r.offers)
	if best == nil {
		r.warn(nil, "no face-up card on the table, the first player starts")
		r.notify(Event{Kind: EventStartingPlayer, Player: r.players[0].Name})
		return r.players[0]
	}
	r.notify(Event{Kind: EventStartingPlayer, Player: best.Owner().Name, Card: best.FaceUpCard().String(), FaceUp: true})
	return best.Owner()
}

// PlayChoosingPhase plays exactly one turn per player, starting from
// starter.
func (r *Round) PlayChoosingPhase(starter *Player) error {
	r.state = RoundChoosing
	current := starter
	for {
		r.notify(Event{Kind: EventTurn, Player: current.Name})
		taken, err := r.chooseFor(current)
		if err != nil {
			return err
		}
		r.alreadyPlayed = append(r.alreadyPlayed, current)
		if len(r.alreadyPlayed) == len(r.players) {
			break
		}
		current = r.nextPlayer(taken)
	}
	r.state = RoundEnding
	return nil
}

func (r *Round) chooseFor(p *Player) (*Offer, error) {
	var (
		chosen *Offer
		taken  card.Card
		err    error
	)
	if p.IsVirtual() {
		chosen, taken, err = p.ChooseCard(r.offers)
		if err != nil {
			return nil, err
		}
	} else if selectable := SelectableOffers(r.offers, p); len(selectable) > 0 {
		chosen, err = r.decisions.ChooseOffer(p, selectable)
		if err != nil {
			return nil, fmt.Errorf("%s choosing an offer: %w", p.Name, err)
		}
		if chosen == nil {
			return nil, fmt.Errorf("%w: %s chose no offer", ErrInvalidDecision, p.Name)
		}
		faceUp, err := r.decisions.ChooseFaceUpOrDown(p, chosen)
		if err != nil {
			return nil, fmt.Errorf("%s choosing a side: %w", p.Name, err)
		}
		if taken, err = p.ChooseCardFrom(r.offers, chosen, faceUp); err != nil {
			return nil, err
		}
	}
	if chosen == nil {
		r.warn(p, fmt.Sprintf("no offer left for %s to choose from", p.Name))
		return nil, nil
	}
	r.notify(Event{
		Kind:   EventCardTaken,
		Player: p.Name,
		Target: chosen.Owner().Name,
		Card:   taken.String(),
		// the offer was complete, so the side now missing is the one taken
		FaceUp: chosen.FaceUpCard() == nil,
	})
	return chosen, nil
}

// nextPlayer hands the turn to the owner of the offer just taken from, or to
// the pending player showing the strongest face-up card.
func (r *Round) nextPlayer(taken *Offer) *Player {
	if taken != nil && !r.hasPlayed(taken.Owner()) {
		return taken.Owner()
	}
	var pending []*Offer
	for _, o := range r.offers {
		if !r.hasPlayed(o.Owner()) {
			pending = append(pending, o)
		}
	}
	if best := bestFaceUpOffer(pending); best != nil {
		return best.Owner()
	}
	for _, p := range r.players {
		if !r.hasPlayed(p) {
			return p
		}
	}
	return nil
}

func (r *Round) hasPlayed(p *Player) bool {
	return slices.Contains(r.alreadyPlayed, p)
}

// End closes a standard round. When the deck ran out the leftovers of the
// offers go to their owners' Jests, otherwise they go back to the deck and
// the deck is reshuffled.
func (r *Round) End() {
	r.state = RoundEnding
	if r.deck.IsEmpty() {
		r.notify(Event{Kind: EventDeckEmpty})
		for _, o := range r.offers {
			o.Owner().Collect(o.Remaining()...)
			o.clear()
		}
	} else {
		r.ReturnRemainingCardsToDeck()
		r.deck.Shuffle()
	}
	for _, p := range r.players {
		if p.Offer != nil && p.Offer.IsEmpty() {
			p.Offer = nil
		}
	}
	r.state = RoundOver
	r.notify(Event{Kind: EventRoundEnded})
}

// ReturnRemainingCardsToDeck puts the leftovers of incomplete offers back in
// the deck. Complete offers are left untouched.
func (r *Round) ReturnRemainingCardsToDeck() {
	for _, o := range r.offers {
		if o.IsComplete() {
			r.warn(o.Owner(), fmt.Sprintf("offer of %s was never taken from and stays on the table", o.Owner().Name))
			continue
		}
		for _, c := range o.Remaining() {
			r.deck.AddCard(c)
		}
		o.clear()
	}
}

// ReturnRemainingCardsToHands gives the leftovers of every offer back to
// their owners.
func (r *Round) ReturnRemainingCardsToHands() {
	for _, o := range r.offers {
		o.Owner().Receive(o.Remaining()...)
		o.clear()
		o.Owner().Offer = nil
	}
}

func (r *Round) notify(e Event) {
	e.Round = r.number
	r.notifier.Notify(e)
}

func (r *Round) warn(p *Player, msg string) {
	e := Event{Kind: EventWarning, Message: msg}
	if p != nil {
		e.Player = p.Name
		r.logger.Warn(msg, "player", p.Name)
	} else {
		r.logger.Warn(msg)
	}
	r.notify(e)
}

func cardNames(cards []card.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
