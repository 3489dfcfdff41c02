// Package bot provides the strategies of computer-controlled Jest players.
package bot

import (
	"fmt"

	"github.com/luca-patrignani/jest/domain/card"
	"github.com/luca-patrignani/jest/domain/deck"
	"github.com/luca-patrignani/jest/domain/jest"
)

const (
	KindRandom card.StrategyKind = "random"
	KindGreedy card.StrategyKind = "greedy"
)

// Kinds lists the strategies New knows about.
func Kinds() []card.StrategyKind {
	return []card.StrategyKind{KindRandom, KindGreedy}
}

// New creates the strategy of the given kind. A nil rng falls back to the
// crypto source of the deck package.
func New(kind card.StrategyKind, rng deck.Rand) (jest.Strategy, error) {
	if rng == nil {
		rng = deck.NewCryptoRand()
	}
	switch kind {
	case KindRandom:
		return &Random{rng: rng}, nil
	case KindGreedy:
		return &Greedy{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", kind)
	}
}

// Factory adapts New for jest.Restore.
func Factory(rng deck.Rand) jest.StrategyFactory {
	return func(kind card.StrategyKind) (jest.Strategy, error) {
		return New(kind, rng)
	}
}
