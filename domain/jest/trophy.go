package jest

import "github.com/luca-patrignani/jest/domain/card"

// TrophyWinner returns the player the trophy criterion t designates, or nil
// when nobody qualifies. Best-Jest criteria read Player.Score, which must be
// up to date.
func TrophyWinner(t card.TrophyType, players []*Player) *Player {
	switch t.Kind {
	case card.HighestFace:
		return extremeFace(players, t.Suit, func(face, best int) bool { return face > best })
	case card.LowestFace:
		return extremeFace(players, t.Suit, func(face, best int) bool { return face < best })
	case card.MajorityFace:
		return majorityFace(players, t.Face)
	case card.JokerOwner:
		for _, p := range players {
			if holdsJoker(p) {
				return p
			}
		}
		return nil
	case card.BestJest:
		return bestJest(players)
	case card.BestJestNoJoker:
		var candidates []*Player
		for _, p := range players {
			if !holdsJoker(p) {
				candidates = append(candidates, p)
			}
		}
		return bestJest(candidates)
	default:
		return nil
	}
}

// extremeFace keeps the first player reaching the best face of suit; later
// players only win by strictly beating it.
func extremeFace(players []*Player, suit card.Suit, better func(face, best int) bool) *Player {
	var (
		winner *Player
		best   int
	)
	for _, p := range players {
		for _, c := range p.Jest {
			sc, ok := c.(*card.SuitCard)
			if !ok || sc.Suit() != suit {
				continue
			}
			if winner == nil || better(sc.FaceValue(), best) {
				winner, best = p, sc.FaceValue()
			}
		}
	}
	return winner
}

func majorityFace(players []*Player, face card.Face) *Player {
	var (
		tied []*Player
		most int
	)
	for _, p := range players {
		n := 0
		for _, c := range p.Jest {
			if sc, ok := c.(*card.SuitCard); ok && sc.Face() == face {
				n++
			}
		}
		switch {
		case n == 0 || n < most:
		case n > most:
			most, tied = n, []*Player{p}
		default:
			tied = append(tied, p)
		}
	}
	if len(tied) <= 1 {
		return firstOrNil(tied)
	}
	var (
		winner    *Player
		strongest int
	)
	for _, p := range tied {
		for _, c := range p.Jest {
			if sc, ok := c.(*card.SuitCard); ok && sc.Face() == face && sc.SuitValue() > strongest {
				winner, strongest = p, sc.SuitValue()
			}
		}
	}
	return winner
}

// bestJest picks the highest score; ties go to the player holding the
// highest suit card, compared by face then suit.
func bestJest(players []*Player) *Player {
	var tied []*Player
	for _, p := range players {
		switch {
		case len(tied) == 0 || p.Score > tied[0].Score:
			tied = []*Player{p}
		case p.Score == tied[0].Score:
			tied = append(tied, p)
		}
	}
	if len(tied) <= 1 {
		return firstOrNil(tied)
	}
	var (
		winner *Player
		best   card.Card
	)
	for _, p := range tied {
		for _, c := range p.Jest {
			if _, ok := c.(*card.SuitCard); !ok {
				continue
			}
			if best == nil || betterFaceUp(c, best) {
				winner, best = p, c
			}
		}
	}
	if winner == nil {
		return tied[0]
	}
	return winner
}

func holdsJoker(p *Player) bool {
	for _, c := range p.Jest {
		if _, ok := c.(*card.Joker); ok {
			return true
		}
	}
	return false
}

func firstOrNil(players []*Player) *Player {
	if len(players) == 0 {
		return nil
	}
	return players[0]
}
