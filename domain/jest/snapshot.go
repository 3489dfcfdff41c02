package jest

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/luca-patrignani/jest/domain/card"
	"github.com/luca-patrignani/jest/domain/deck"
)

// GameState is the serializable form of a Game between two rounds.
type GameState struct {
	ID           uuid.UUID     `json:"id"`
	Variant      string        `json:"variant"`
	RoundCounter int           `json:"round_counter"`
	Finished     bool          `json:"finished"`
	Deck         []card.State  `json:"deck"`
	Trophies     []card.State  `json:"trophies"`
	Players      []PlayerState `json:"players"`
}

type PlayerState struct {
	ID       uuid.UUID         `json:"id"`
	Name     string            `json:"name"`
	Virtual  bool              `json:"virtual"`
	Strategy card.StrategyKind `json:"strategy,omitempty"`
	Hand     []card.State      `json:"hand"`
	Jest     []card.State      `json:"jest"`
	Score    int               `json:"score"`
}

// StrategyFactory rebuilds the strategy of a restored virtual player.
type StrategyFactory func(kind card.StrategyKind) (Strategy, error)

func (g *Game) State() GameState {
	s := GameState{
		ID:           g.ID,
		Variant:      g.Variant.Name(),
		RoundCounter: g.RoundCounter,
		Finished:     g.Finished,
		Deck:         card.StatesOf(g.Deck.Cards()),
		Trophies:     card.StatesOf(g.Trophies),
	}
	for _, p := range g.Players {
		ps := PlayerState{
			ID:      p.ID,
			Name:    p.Name,
			Virtual: p.IsVirtual(),
			Hand:    card.StatesOf(p.Hand),
			Jest:    card.StatesOf(p.Jest),
			Score:   p.Score,
		}
		if p.IsVirtual() {
			ps.Strategy = p.strategy.Kind()
		}
		s.Players = append(s.Players, ps)
	}
	return s
}

// Snapshot encodes the match as JSON.
func (g *Game) Snapshot() ([]byte, error) {
	return json.MarshalIndent(g.State(), "", "  ")
}

// Restore rebuilds a match from a Snapshot. Extension cards are looked up in
// catalog and virtual players get their strategy from strategies; opts are
// applied as in NewGame.
func Restore(data []byte, catalog card.Catalog, strategies StrategyFactory, opts ...GameOption) (*Game, error) {
	var s GameState
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding game: %w", err)
	}
	v, err := VariantByName(s.Variant)
	if err != nil {
		return nil, err
	}
	trophies, err := card.RestoreAll(s.Trophies, catalog)
	if err != nil {
		return nil, fmt.Errorf("trophies: %w", err)
	}
	cards, err := card.RestoreAll(s.Deck, catalog)
	if err != nil {
		return nil, fmt.Errorf("deck: %w", err)
	}
	players := make([]*Player, 0, len(s.Players))
	for _, ps := range s.Players {
		p, err := restorePlayer(ps, catalog, strategies, trophies)
		if err != nil {
			return nil, fmt.Errorf("player %s: %w", ps.Name, err)
		}
		players = append(players, p)
	}

	g, err := NewGame(players, v, append([]GameOption{WithDeck(deck.FromCards(cards))}, opts...)...)
	if err != nil {
		return nil, err
	}
	g.ID = s.ID
	if g.rng != nil {
		g.Deck = deck.FromCards(cards, deck.WithRand(g.rng), deck.WithLogger(g.logger))
	}
	if len(trophies) > 0 {
		g.Trophies = trophies
	}
	g.RoundCounter = s.RoundCounter
	g.Finished = s.Finished
	return g, nil
}

func restorePlayer(ps PlayerState, catalog card.Catalog, strategies StrategyFactory, trophies []card.Card) (*Player, error) {
	p := NewHumanPlayer(ps.Name)
	if ps.Virtual {
		if strategies == nil {
			return nil, fmt.Errorf("no strategy factory for %q", ps.Strategy)
		}
		st, err := strategies(ps.Strategy)
		if err != nil {
			return nil, err
		}
		p = NewVirtualPlayer(ps.Name, st)
	}
	p.ID = ps.ID
	p.Score = ps.Score
	hand, err := card.RestoreAll(ps.Hand, catalog)
	if err != nil {
		return nil, fmt.Errorf("hand: %w", err)
	}
	jest, err := card.RestoreAll(ps.Jest, catalog)
	if err != nil {
		return nil, fmt.Errorf("jest: %w", err)
	}
	// an awarded trophy is the same card as the one in the trophy list
	for i, c := range jest {
		if c.Trophy() == nil {
			continue
		}
		for _, t := range trophies {
			if sameCard(c, t) {
				jest[i] = t
			}
		}
	}
	p.Hand = hand
	p.Jest = jest
	return p, nil
}

func sameCard(a, b card.Card) bool {
	sa, sb := card.StateOf(a), card.StateOf(b)
	return sa.Kind == sb.Kind && sa.Suit == sb.Suit && sa.Face == sb.Face && sa.Name == sb.Name
}
