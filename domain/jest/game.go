package jest

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/luca-patrignani/jest/domain/card"
	"github.com/luca-patrignani/jest/domain/deck"
)

var (
	ErrNotSetUp = errors.New("game not set up")
	ErrGameOver = errors.New("game is over")
)

// Game is the match aggregate. RoundCounter numbers the rounds played so far
// and is persisted with the rest of the match.
type Game struct {
	ID           uuid.UUID
	Deck         *deck.Deck
	Players      []*Player
	Trophies     []card.Card
	Variant      Variant
	RoundCounter int
	Finished     bool

	decisions DecisionProvider
	notifier  Notifier
	logger    *slog.Logger
	rng       deck.Rand
}

type GameOption func(*Game)

// WithDecisions sets the provider answering for human players.
func WithDecisions(d DecisionProvider) GameOption {
	return func(g *Game) {
		g.decisions = d
	}
}

func WithNotifier(n Notifier) GameOption {
	return func(g *Game) {
		g.notifier = n
	}
}

func WithLogger(l *slog.Logger) GameOption {
	return func(g *Game) {
		g.logger = l
	}
}

// WithRand sets the shuffle source of the deck built by NewGame.
func WithRand(r deck.Rand) GameOption {
	return func(g *Game) {
		g.rng = r
	}
}

// WithDeck plays the match on d instead of a new shuffled deck.
func WithDeck(d *deck.Deck) GameOption {
	return func(g *Game) {
		g.Deck = d
	}
}

// NewGame prepares a match between 3 or 4 players with distinct names. A nil
// variant plays the standard rules.
func NewGame(players []*Player, v Variant, opts ...GameOption) (*Game, error) {
	if err := ValidatePlayerCount(len(players)); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(players))
	for _, p := range players {
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate player name %q", p.Name)
		}
		seen[p.Name] = true
	}
	if v == nil {
		v = StandardVariant()
	}
	g := &Game{
		ID:       uuid.New(),
		Players:  players,
		Variant:  v,
		notifier: nopNotifier{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.notifier == nil {
		g.notifier = nopNotifier{}
	}
	for _, p := range players {
		if !p.IsVirtual() && g.decisions == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoDecisionProvider, p.Name)
		}
	}
	if g.Deck == nil {
		if g.rng != nil {
			g.Deck = deck.New(deck.WithRand(g.rng), deck.WithLogger(g.logger))
		} else {
			g.Deck = deck.New(deck.WithLogger(g.logger))
		}
	}
	return g, nil
}

// Setup adds the selected extension cards, shuffles and draws the trophies.
func (g *Game) Setup(extensions []*card.ExtensionCard) error {
	if g.Trophies != nil {
		return ErrAlreadySetUp
	}
	for i, e := range extensions {
		if e == nil {
			return fmt.Errorf("%w: extension %d is missing", ErrInvalidExtensionSelection, i+1)
		}
	}
	if err := ValidateExtensionSelection(len(extensions), len(g.Players)); err != nil {
		return err
	}
	for _, e := range extensions {
		g.Deck.AddCard(e)
	}
	g.Deck.Shuffle()
	trophies, err := g.Deck.ChooseTrophies(len(g.Players))
	if err != nil {
		return err
	}
	g.Trophies = trophies
	names := make([]string, len(trophies))
	for i, t := range trophies {
		names[i] = fmt.Sprintf("%s (%s)", t, t.Trophy())
	}
	g.logger.Info("trophies drawn", "game", g.ID, "trophies", names, "variant", g.Variant.Name())
	g.notify(Event{Kind: EventTrophiesRevealed, Cards: names})
	return nil
}

// PlayRound plays the next round. The match finishes once the deck is
// exhausted, or after the single round of the Full Hand variant.
func (g *Game) PlayRound() error {
	if g.Finished {
		return ErrGameOver
	}
	if g.Trophies == nil {
		return ErrNotSetUp
	}
	g.RoundCounter++
	if err := g.newRound().Play(); err != nil {
		return fmt.Errorf("round %d: %w", g.RoundCounter, err)
	}
	g.logger.Debug("round over", "round", g.RoundCounter, "deck", g.Deck.Len())
	if g.Variant.DealMode() == DealFullHand || g.Deck.IsEmpty() {
		g.Finished = true
	}
	return nil
}

// Play runs the remaining rounds and the final scoring, and returns the
// winners.
func (g *Game) Play() ([]*Player, error) {
	for !g.Finished {
		if err := g.PlayRound(); err != nil {
			return nil, err
		}
	}
	return g.Finish(), nil
}

// Finish awards the trophies, computes the final scores and returns the
// winners. Trophies already held by a player are not awarded again.
func (g *Game) Finish() []*Player {
	g.AssignTrophies()
	scores := g.CalculateScores()
	g.notify(Event{Kind: EventScores, Scores: scores})
	winners := g.Winners()
	names := make([]string, len(winners))
	for i, w := range winners {
		names[i] = w.Name
	}
	g.logger.Info("match over", "game", g.ID, "winners", names)
	g.notify(Event{Kind: EventWinners, Winners: names, Scores: scores})
	return winners
}

// CalculateScores scores every Jest with the variant's visitor.
func (g *Game) CalculateScores() map[string]int {
	v := g.Variant.Visitor()
	scores := make(map[string]int, len(g.Players))
	for _, p := range g.Players {
		scores[p.Name] = p.CalculateScore(v)
	}
	return scores
}

type TrophyAward struct {
	Trophy card.Card
	Winner *Player
}

// AssignTrophies evaluates the trophies in draw order, recomputing the
// scores before each one, and moves each trophy into its winner's Jest.
func (g *Game) AssignTrophies() []TrophyAward {
	var awards []TrophyAward
	for _, t := range g.Trophies {
		if g.holder(t) != nil {
			continue
		}
		tt := card.AssignTrophyType(t)
		if marked := t.Trophy(); marked != nil {
			tt = *marked
		}
		g.CalculateScores()
		w := TrophyWinner(tt, g.Players)
		if w == nil {
			g.logger.Warn("trophy not awarded", "trophy", t.String(), "criterion", tt.String())
			g.notify(Event{Kind: EventWarning, Card: t.String(), Message: fmt.Sprintf("nobody qualifies for %s", tt)})
			continue
		}
		w.Collect(t)
		awards = append(awards, TrophyAward{Trophy: t, Winner: w})
		g.notify(Event{Kind: EventTrophyAwarded, Player: w.Name, Card: t.String(), Message: tt.String()})
	}
	return awards
}

// Winners returns every player sharing the highest score.
func (g *Game) Winners() []*Player {
	var winners []*Player
	for _, p := range g.Players {
		switch {
		case len(winners) == 0 || p.Score > winners[0].Score:
			winners = []*Player{p}
		case p.Score == winners[0].Score:
			winners = append(winners, p)
		}
	}
	return winners
}

func (g *Game) holder(c card.Card) *Player {
	for _, p := range g.Players {
		for _, j := range p.Jest {
			if j == c {
				return p
			}
		}
	}
	return nil
}

func (g *Game) notify(e Event) {
	e.Round = g.RoundCounter
	g.notifier.Notify(e)
}
