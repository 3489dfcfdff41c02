package jest

import (
	"fmt"
	"testing"

	"github.com/luca-patrignani/jest/domain/card"
	"github.com/luca-patrignani/jest/domain/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fourHands deals fixed hands so that the face-up cards are 4♠, 2♥, 3♣ and A♦.
func fourHands(t *testing.T) []*Player {
	players := virtualPlayers("ann", "bob", "cid", "dan")
	players[0].Receive(suitCard(t, card.Spades, card.Four), suitCard(t, card.Hearts, card.Ace))
	players[1].Receive(suitCard(t, card.Hearts, card.Two), suitCard(t, card.Hearts, card.Three))
	players[2].Receive(suitCard(t, card.Clubs, card.Three), suitCard(t, card.Clubs, card.Two))
	players[3].Receive(suitCard(t, card.Diamonds, card.Ace), suitCard(t, card.Diamonds, card.Four))
	return players
}

func TestChoosingPhaseTurnOrder(t *testing.T) {
	players := fourHands(t)
	rec := &recorder{}
	r := testRound(players, deck.FromCards([]card.Card{card.NewJoker()}), DealStandard, rec)

	require.NoError(t, r.CollectOffers())
	require.Len(t, r.Offers(), len(players))
	starter := r.DetermineStarter()
	assert.Same(t, players[0], starter)
	require.NoError(t, r.PlayChoosingPhase(starter))

	// bob owns the offer ann took from; ann has played when bob takes from
	// her, so the best pending face-up card (cid's 3♣) decides.
	assert.Equal(t, players, r.AlreadyPlayed())
	assert.Equal(t, RoundEnding, r.State())
	assert.Equal(t, "2♥", players[0].Jest[0].String())
	assert.Equal(t, "4♠", players[1].Jest[0].String())
	assert.Equal(t, "A♦", players[2].Jest[0].String())
	assert.Equal(t, "3♣", players[3].Jest[0].String())
	assert.Equal(t, len(players), rec.count(EventTurn))
	assert.Equal(t, len(players), rec.count(EventCardTaken))
}

func TestEveryPlayerPlaysOncePerRound(t *testing.T) {
	for _, n := range []int{3, 4} {
		t.Run(fmt.Sprintf("%d players", n), func(t *testing.T) {
			players := virtualPlayers("ann", "bob", "cid", "dan")[:n]
			g, err := NewGame(players, nil, seeded(int64(n)))
			require.NoError(t, err)
			require.NoError(t, g.Setup(nil))

			g.RoundCounter++
			r := g.newRound()
			require.NoError(t, r.Play())
			assert.Equal(t, RoundOver, r.State())
			assert.Len(t, r.AlreadyPlayed(), n)
			assert.ElementsMatch(t, players, r.AlreadyPlayed())
			for _, p := range players {
				assert.Len(t, p.Jest, 1)
				assert.Empty(t, p.Hand)
				assert.Nil(t, p.Offer)
			}
		})
	}
}

func TestEndReturnsLeftoversToDeck(t *testing.T) {
	players := fourHands(t)
	d := deck.FromCards([]card.Card{card.NewJoker()})
	r := testRound(players, d, DealStandard, &recorder{})
	require.NoError(t, r.CollectOffers())
	require.NoError(t, r.PlayChoosingPhase(r.DetermineStarter()))

	r.End()
	assert.Equal(t, RoundOver, r.State())
	assert.Equal(t, 5, d.Len())
	for _, p := range players {
		assert.Len(t, p.Jest, 1)
		assert.Nil(t, p.Offer)
	}
}

func TestEndOnEmptyDeckFoldsLeftoversIntoJests(t *testing.T) {
	players := fourHands(t)
	rec := &recorder{}
	r := testRound(players, deck.FromCards(nil), DealStandard, rec)
	require.NoError(t, r.CollectOffers())
	require.NoError(t, r.PlayChoosingPhase(r.DetermineStarter()))

	r.End()
	assert.Equal(t, 1, rec.count(EventDeckEmpty))
	for _, p := range players {
		assert.Len(t, p.Jest, 2)
	}
	assert.Equal(t, "A♥", players[0].Jest[1].String())
}

func TestCompleteOfferStaysOnTable(t *testing.T) {
	players := fourHands(t)
	d := deck.FromCards(nil)
	r := testRound(players, d, DealStandard, &recorder{})
	require.NoError(t, r.CollectOffers())

	r.ReturnRemainingCardsToDeck()
	assert.Zero(t, d.Len())
	for _, o := range r.Offers() {
		assert.True(t, o.IsComplete())
	}
}

func TestStarterFallsBackToFirstPlayer(t *testing.T) {
	players := virtualPlayers("ann", "bob", "cid")
	rec := &recorder{}
	r := testRound(players, deck.FromCards(nil), DealStandard, rec)
	require.NoError(t, r.CollectOffers())

	assert.Empty(t, r.Offers())
	assert.Same(t, players[0], r.DetermineStarter())
	assert.Equal(t, len(players)+1, rec.count(EventWarning))
}

func TestStandardDealNeedsCards(t *testing.T) {
	players := virtualPlayers("ann", "bob", "cid")
	r := testRound(players, deck.FromCards(card.StandardSet()[:5]), DealStandard, &recorder{})
	assert.ErrorIs(t, r.Deal(), deck.ErrEmptyDeck)
}

func TestFullHandDeal(t *testing.T) {
	players := virtualPlayers("ann", "bob", "cid", "dan")
	d := deck.FromCards(card.StandardSet()[:15])
	r := testRound(players, d, DealFullHand, &recorder{})

	require.NoError(t, r.Deal())
	sizes := []int{}
	for _, p := range players {
		sizes = append(sizes, len(p.Hand))
	}
	assert.Equal(t, []int{4, 4, 4, 3}, sizes)
	assert.True(t, d.IsEmpty())

	require.NoError(t, r.Deal())
	assert.Len(t, players[0].Hand, 4)
}

func TestFullHandRound(t *testing.T) {
	players := virtualPlayers("ann", "bob", "cid")
	rec := &recorder{}
	r := testRound(players, deck.FromCards(card.StandardSet()[:15]), DealFullHand, rec)

	require.NoError(t, r.Play())
	assert.Equal(t, RoundOver, r.State())
	total := 0
	for _, p := range players {
		assert.Empty(t, p.Hand)
		total += len(p.Jest)
	}
	assert.Equal(t, 15, total)
	// five cards each: four cycles until one card is left in every hand
	assert.Equal(t, 4*len(players), rec.count(EventTurn))
}

func TestHumanDecisionsDriveTheRound(t *testing.T) {
	ann := NewHumanPlayer("ann")
	ann.Receive(suitCard(t, card.Spades, card.Ace), suitCard(t, card.Spades, card.Two), suitCard(t, card.Spades, card.Three))
	players := append([]*Player{ann}, virtualPlayers("bob", "cid")...)
	players[1].Receive(suitCard(t, card.Clubs, card.Four), suitCard(t, card.Clubs, card.Two))
	players[2].Receive(suitCard(t, card.Diamonds, card.Three), suitCard(t, card.Diamonds, card.Four))

	decisions := &scripted{}
	rec := &recorder{}
	r := testRound(players, deck.FromCards(nil), DealStandard, rec)
	r.decisions = decisions

	require.NoError(t, r.CollectOffers())
	assert.Equal(t, "A♠", ann.Offer.FaceUpCard().String())
	assert.Equal(t, "2♠", ann.Offer.FaceDownCard().String())
	require.Len(t, ann.Hand, 1)
	assert.Equal(t, "3♠", ann.Hand[0].String())

	starter := r.DetermineStarter()
	assert.Same(t, players[1], starter)
	require.NoError(t, r.PlayChoosingPhase(starter))

	assert.Equal(t, []*Player{players[1], ann, players[2]}, r.AlreadyPlayed())
	assert.Equal(t, "2♣", ann.Jest[0].String())
	assert.Equal(t, "A♠", players[1].Jest[0].String())
	assert.Equal(t, "3♦", players[2].Jest[0].String())
	assert.Equal(t, []string{"two", "face-up", "offer", "side"}, decisions.calls)

	var taken []Event
	for _, e := range rec.events {
		if e.Kind == EventCardTaken {
			taken = append(taken, e)
		}
	}
	require.Len(t, taken, 3)
	assert.Equal(t, Event{Kind: EventCardTaken, Round: 1, Player: "ann", Target: "bob", Card: "2♣"}, taken[1])
}
