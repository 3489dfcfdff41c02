package jest

import (
	"log/slog"
	"math/rand"
	"testing"

	"github.com/luca-patrignani/jest/domain/card"
	"github.com/luca-patrignani/jest/domain/deck"
	"github.com/stretchr/testify/require"
)

func suitCard(t *testing.T, s card.Suit, f card.Face) *card.SuitCard {
	t.Helper()
	c, err := card.NewSuitCard(s, f)
	require.NoError(t, err)
	return c
}

// firstChoice offers the first two cards of the hand and takes the face-up
// card of the first selectable offer.
type firstChoice struct{}

func (firstChoice) Kind() card.StrategyKind { return "first" }

func (firstChoice) ComposeOffer(hand []card.Card, _ *Player) (card.Card, card.Card) {
	return hand[0], hand[1]
}

func (firstChoice) SelectOffer(offers []*Offer, _ *Player) (*Offer, bool) {
	return offers[0], true
}

func strategies(kind card.StrategyKind) (Strategy, error) {
	return firstChoice{}, nil
}

// scripted answers every human decision with the first option.
type scripted struct {
	faceUpIndex int
	calls       []string
}

func (s *scripted) ChooseFaceUpCardIndex(p *Player, cards []card.Card) (int, error) {
	s.calls = append(s.calls, "face-up")
	return s.faceUpIndex, nil
}

func (s *scripted) ChooseTwoCardIndices(p *Player, hand []card.Card) (int, int, error) {
	s.calls = append(s.calls, "two")
	return 0, 1, nil
}

func (s *scripted) ChooseOffer(p *Player, selectable []*Offer) (*Offer, error) {
	s.calls = append(s.calls, "offer")
	return selectable[0], nil
}

func (s *scripted) ChooseFaceUpOrDown(p *Player, o *Offer) (bool, error) {
	s.calls = append(s.calls, "side")
	return false, nil
}

type recorder struct {
	events []Event
}

func (r *recorder) Notify(e Event) { r.events = append(r.events, e) }

func (r *recorder) count(kind EventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func virtualPlayers(names ...string) []*Player {
	players := make([]*Player, len(names))
	for i, n := range names {
		players[i] = NewVirtualPlayer(n, firstChoice{})
	}
	return players
}

func testRound(players []*Player, d *deck.Deck, mode DealMode, n Notifier) *Round {
	return &Round{
		number:   1,
		players:  players,
		deck:     d,
		mode:     mode,
		notifier: n,
		logger:   slog.Default(),
	}
}

func seeded(seed int64) GameOption {
	return WithRand(rand.New(rand.NewSource(seed)))
}
