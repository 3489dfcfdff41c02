package jest

import (
	"fmt"

	"github.com/luca-patrignani/jest/domain/deck"
)

// standardDeckSize counts the sixteen suit cards and the Joker.
const standardDeckSize = 17

// PlayableDeckSize is the number of cards left for the players once the
// trophies are drawn.
func PlayableDeckSize(extensions, playerCount int) int {
	return standardDeckSize + extensions - deck.TrophyCount(playerCount)
}

func ValidatePlayerCount(playerCount int) error {
	if playerCount < 3 || playerCount > 4 {
		return fmt.Errorf("%w: got %d", ErrInvalidPlayerCount, playerCount)
	}
	return nil
}

// ValidateExtensionSelection rejects a number of extension cards that would
// leave a playable deck not evenly divisible between the players.
func ValidateExtensionSelection(selected, playerCount int) error {
	if err := ValidatePlayerCount(playerCount); err != nil {
		return err
	}
	if selected < 0 {
		return fmt.Errorf("%w: negative extension count %d", ErrInvalidExtensionSelection, selected)
	}
	size := PlayableDeckSize(selected, playerCount)
	if size%playerCount != 0 {
		return fmt.Errorf("%w: with %d extension card(s) and %d players the playable deck holds %d cards (17 + %d - %d trophies), which cannot be split evenly between %d players",
			ErrInvalidExtensionSelection, selected, playerCount, size, selected, deck.TrophyCount(playerCount), playerCount)
	}
	return nil
}
