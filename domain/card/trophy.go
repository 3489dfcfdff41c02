package card

import "fmt"

// TrophyKind is the family of criteria a trophy can reward.
type TrophyKind int

const (
	HighestFace TrophyKind = iota + 1
	LowestFace
	MajorityFace
	JokerOwner
	BestJest
	BestJestNoJoker
)

// TrophyType is a trophy criterion. Suit is only meaningful for HighestFace
// and LowestFace, Face only for MajorityFace.
type TrophyType struct {
	Kind TrophyKind `json:"kind"`
	Suit Suit       `json:"suit,omitempty"`
	Face Face       `json:"face,omitempty"`
}

func (k TrophyKind) String() string {
	switch k {
	case HighestFace:
		return "highest"
	case LowestFace:
		return "lowest"
	case MajorityFace:
		return "majority"
	case JokerOwner:
		return "joker"
	case BestJest:
		return "best jest"
	case BestJestNoJoker:
		return "best jest without joker"
	default:
		return "unknown"
	}
}

func (t TrophyType) String() string {
	switch t.Kind {
	case HighestFace, LowestFace:
		return fmt.Sprintf("%s %s", t.Kind, t.Suit)
	case MajorityFace:
		return fmt.Sprintf("majority %s", t.Face)
	default:
		return t.Kind.String()
	}
}

// AssignTrophyType maps a card to the trophy it stands for. The table is
// fixed by the game rules and is not derivable from the card values.
func AssignTrophyType(c Card) TrophyType {
	switch c := c.(type) {
	case *Joker:
		return TrophyType{Kind: BestJest}
	case *ExtensionCard:
		return TrophyType{Kind: BestJest}
	case *SuitCard:
		switch c.suit {
		case Hearts:
			return TrophyType{Kind: JokerOwner}
		case Clubs:
			switch c.face {
			case Ace:
				return TrophyType{Kind: HighestFace, Suit: Spades}
			case Two:
				return TrophyType{Kind: LowestFace, Suit: Hearts}
			case Three:
				return TrophyType{Kind: HighestFace, Suit: Hearts}
			case Four:
				return TrophyType{Kind: LowestFace, Suit: Spades}
			}
		case Spades:
			switch c.face {
			case Ace:
				return TrophyType{Kind: HighestFace, Suit: Clubs}
			case Two:
				return TrophyType{Kind: MajorityFace, Face: Three}
			case Three:
				return TrophyType{Kind: MajorityFace, Face: Two}
			case Four:
				return TrophyType{Kind: LowestFace, Suit: Clubs}
			}
		case Diamonds:
			switch c.face {
			case Ace:
				return TrophyType{Kind: MajorityFace, Face: Four}
			case Two:
				return TrophyType{Kind: HighestFace, Suit: Diamonds}
			case Three:
				return TrophyType{Kind: LowestFace, Suit: Diamonds}
			case Four:
				return TrophyType{Kind: BestJestNoJoker}
			}
		}
	}
	return TrophyType{Kind: BestJest}
}
