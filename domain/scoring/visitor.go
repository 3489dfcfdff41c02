package scoring

import "github.com/luca-patrignani/jest/domain/card"

const (
	soloAceValue    = 5
	blackPairBonus  = 2
	loneJokerBonus  = 4
	allHeartsNeeded = 4
)

var _ card.Board = (*Standard)(nil)

// Visitor turns a Jest into a score.
type Visitor interface {
	CountJestScore(jest []card.Card) int
}

// Standard is the rule set of the base game. It keeps the state of the last
// traversal and is not safe for concurrent use.
type Standard struct {
	suits      map[card.Suit][]card.Face
	heartCount int
	hasJoker   bool
	flags      map[string]bool
	size       int
}

func NewStandard() *Standard {
	v := &Standard{}
	v.Reset()
	return v
}

// Reset clears every bucket, counter and flag of the previous traversal.
func (v *Standard) Reset() {
	v.suits = map[card.Suit][]card.Face{}
	v.heartCount = 0
	v.hasJoker = false
	v.flags = map[string]bool{}
	v.size = 0
}

// CountJestScore resets the visitor and scores jest.
func (v *Standard) CountJestScore(jest []card.Card) int {
	v.Reset()
	v.size = len(jest)
	for _, c := range jest {
		v.census(c)
	}

	total := 0
	for _, c := range jest {
		switch c := c.(type) {
		case *card.SuitCard:
			total += v.suitCardValue(c)
		case *card.ExtensionCard:
			total += c.FaceValue() + c.Effect().CalculateBonus(v)
		case *card.Joker:
			// valued through the Hearts rule and the lone Joker bonus
		}
	}

	total += blackPairBonus * v.blackPairs()
	if v.hasJoker && v.heartCount == 0 {
		total += loneJokerBonus
	}
	return total
}

func (v *Standard) census(c card.Card) {
	switch c := c.(type) {
	case *card.SuitCard:
		v.suits[c.Suit()] = append(v.suits[c.Suit()], c.Face())
		if c.Suit() == card.Hearts {
			v.heartCount++
		}
	case *card.Joker:
		v.hasJoker = true
	case *card.ExtensionCard:
		c.Effect().ApplyOnVisit(v)
	}
}

func (v *Standard) suitCardValue(c *card.SuitCard) int {
	value := c.FaceValue()
	if c.Face() == card.Ace && len(v.suits[c.Suit()]) == 1 {
		value = soloAceValue
	}

	switch c.Suit() {
	case card.Spades, card.Clubs:
		return value
	case card.Diamonds:
		if v.flags[card.FlagNoNegativeDiamonds] {
			return 0
		}
		return -value
	case card.Hearts:
		switch {
		case !v.hasJoker:
			return 0
		case v.heartCount == allHeartsNeeded:
			return value
		case v.flags[card.FlagNoNegativeHearts]:
			return 0
		default:
			return -value
		}
	}
	return 0
}

// blackPairs counts the faces present in both Spades and Clubs.
func (v *Standard) blackPairs() int {
	clubs := map[card.Face]bool{}
	for _, f := range v.suits[card.Clubs] {
		clubs[f] = true
	}
	pairs := 0
	counted := map[card.Face]bool{}
	for _, f := range v.suits[card.Spades] {
		if clubs[f] && !counted[f] {
			counted[f] = true
			pairs++
		}
	}
	return pairs
}

func (v *Standard) SetFlag(name string, on bool)      { v.flags[name] = on }
func (v *Standard) Flag(name string) bool             { return v.flags[name] }
func (v *Standard) HasJoker() bool                    { return v.hasJoker }
func (v *Standard) HeartCount() int                   { return v.heartCount }
func (v *Standard) SuitFaces(s card.Suit) []card.Face { return v.suits[s] }
func (v *Standard) JestSize() int                     { return v.size }

// Reverse negates the total of the wrapped visitor.
type Reverse struct {
	Inner Visitor
}

func NewReverse(inner Visitor) Reverse {
	return Reverse{Inner: inner}
}

func (r Reverse) CountJestScore(jest []card.Card) int {
	return -r.Inner.CountJestScore(jest)
}
