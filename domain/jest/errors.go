package jest

import "errors"

var (
	// ErrUnsupportedOperation signals a decision path that does not belong to
	// the player's kind, e.g. asking a human player's strategy to decide.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrInvalidDecision is returned when a decision names a card or an offer
	// that cannot be selected.
	ErrInvalidDecision = errors.New("invalid decision")

	// ErrNotEnoughCards is returned when a player cannot compose an offer.
	ErrNotEnoughCards = errors.New("not enough cards to make an offer")

	ErrInvalidExtensionSelection = errors.New("invalid extension selection")
	ErrInvalidPlayerCount        = errors.New("a match needs 3 or 4 players")
	ErrNoDecisionProvider        = errors.New("human players need a decision provider")
	ErrAlreadySetUp              = errors.New("game already set up")
)
