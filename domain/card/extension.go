package card

import (
	"fmt"
	"sort"
)

// Scoring flags extension effects may raise on the Board.
const (
	FlagNoNegativeDiamonds = "NO_NEGATIVE_DIAMONDS"
	FlagNoNegativeHearts   = "NO_NEGATIVE_HEARTS"
)

// StrategyKind names a computer player policy. Extension cards use it to
// tailor how attractive they look to a given policy.
type StrategyKind string

// Board is the view of a Jest under scoring that extension effects can read
// and alter.
type Board interface {
	SetFlag(name string, on bool)
	Flag(name string) bool
	HasJoker() bool
	HeartCount() int
	SuitFaces(s Suit) []Face
	JestSize() int
}

// Effect is the scoring behavior attached to an extension card.
// ApplyOnVisit runs during the census pass, CalculateBonus during the scoring
// pass once every card has been visited.
type Effect interface {
	ApplyOnVisit(b Board)
	CalculateBonus(b Board) int
}

// InterestFunc rates how desirable a card is for a policy holding jest.
type InterestFunc func(kind StrategyKind, jest []Card) int

// ExtensionCard is an optional card added to the deck before a match.
type ExtensionCard struct {
	trophyInfo
	name        string
	description string
	face        int
	effect      Effect
	interest    InterestFunc
}

// NewExtensionCard builds an extension card. A nil effect scores nothing
// beyond the face value; a nil interest rates the card by its face value.
func NewExtensionCard(name string, face int, description string, effect Effect, interest InterestFunc) *ExtensionCard {
	if effect == nil {
		effect = noEffect{}
	}
	return &ExtensionCard{
		name:        name,
		description: description,
		face:        face,
		effect:      effect,
		interest:    interest,
	}
}

func (e *ExtensionCard) Name() string        { return e.name }
func (e *ExtensionCard) Description() string { return e.description }
func (e *ExtensionCard) Effect() Effect      { return e.effect }
func (e *ExtensionCard) FaceValue() int      { return e.face }
func (e *ExtensionCard) SuitValue() int      { return 0 }
func (e *ExtensionCard) String() string      { return e.name }
func (e *ExtensionCard) sealed()             {}

// Interest rates the card for the given policy and current Jest.
func (e *ExtensionCard) Interest(kind StrategyKind, jest []Card) int {
	if e.interest == nil {
		return e.face
	}
	return e.interest(kind, jest)
}

type noEffect struct{}

func (noEffect) ApplyOnVisit(Board)       {}
func (noEffect) CalculateBonus(Board) int { return 0 }

// FlagEffect raises a scoring flag when visited.
type FlagEffect struct {
	Flag string
}

func (f FlagEffect) ApplyOnVisit(b Board)     { b.SetFlag(f.Flag, true) }
func (f FlagEffect) CalculateBonus(Board) int { return 0 }

// JokerWagerEffect pays Hit when the Jest holds the Joker and Miss otherwise.
type JokerWagerEffect struct {
	Hit  int
	Miss int
}

func (JokerWagerEffect) ApplyOnVisit(Board) {}

func (w JokerWagerEffect) CalculateBonus(b Board) int {
	if b.HasJoker() {
		return w.Hit
	}
	return w.Miss
}

// Constructor builds a fresh extension card instance.
type Constructor func() (*ExtensionCard, error)

// Catalog indexes extension cards by name.
type Catalog map[string]Constructor

// Names of the built-in extension cards.
const (
	ShieldOfDiamonds = "Shield of Diamonds"
	HeartWard        = "Heart Ward"
	JestersWager     = "Jester's Wager"
	BlackMoon        = "Black Moon"
)

const blackMoonScript = `
function bonus()
  return suit_count("spades")
end

function interest(kind)
  return suit_count("spades") + 2
end
`

// BuiltinCatalog returns the extension cards shipped with the game.
func BuiltinCatalog() Catalog {
	return Catalog{
		ShieldOfDiamonds: func() (*ExtensionCard, error) {
			return NewExtensionCard(ShieldOfDiamonds, 1, "Diamonds no longer cost points.",
				FlagEffect{Flag: FlagNoNegativeDiamonds}, suitInterest(Diamonds)), nil
		},
		HeartWard: func() (*ExtensionCard, error) {
			return NewExtensionCard(HeartWard, 1, "Hearts never cost points, even with the Joker.",
				FlagEffect{Flag: FlagNoNegativeHearts}, suitInterest(Hearts)), nil
		},
		JestersWager: func() (*ExtensionCard, error) {
			return NewExtensionCard(JestersWager, 0, "+10 if you hold the Joker, -5 otherwise.",
				JokerWagerEffect{Hit: 10, Miss: -5}, jokerInterest), nil
		},
		BlackMoon: func() (*ExtensionCard, error) {
			return NewScriptedExtension(BlackMoon, 2, "+1 for every Spade in your Jest.", blackMoonScript)
		},
	}
}

// NewScriptedExtension builds an extension card whose effect and interest
// are defined by a Lua script.
func NewScriptedExtension(name string, face int, description, script string) (*ExtensionCard, error) {
	effect, err := NewLuaEffect(name, script)
	if err != nil {
		return nil, err
	}
	return NewExtensionCard(name, face, description, effect, effect.Interest), nil
}

// New builds the extension card registered under name.
func (c Catalog) New(name string) (*ExtensionCard, error) {
	ctor, ok := c[name]
	if !ok {
		return nil, fmt.Errorf("unknown extension card %q", name)
	}
	return ctor()
}

// Register adds or replaces a constructor.
func (c Catalog) Register(name string, ctor Constructor) {
	c[name] = ctor
}

// Names returns the registered names in lexical order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func suitInterest(s Suit) InterestFunc {
	return func(_ StrategyKind, jest []Card) int {
		n := 0
		for _, c := range jest {
			if sc, ok := c.(*SuitCard); ok && sc.suit == s {
				n++
			}
		}
		return 2 * n
	}
}

func jokerInterest(_ StrategyKind, jest []Card) int {
	for _, c := range jest {
		if _, ok := c.(*Joker); ok {
			return 10
		}
	}
	return -5
}
