package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/luca-patrignani/jest/domain/card"
	"github.com/luca-patrignani/jest/domain/jest"
	"github.com/pterm/pterm"
)

func cardLabel(c card.Card) string {
	if c == nil {
		return pterm.Gray("--")
	}
	switch c := c.(type) {
	case *card.SuitCard:
		if c.Suit() == card.Hearts || c.Suit() == card.Diamonds {
			return pterm.LightRed(c.String())
		}
		return pterm.LightWhite(c.String())
	case *card.Joker:
		return pterm.LightMagenta(c.String())
	case *card.ExtensionCard:
		return pterm.LightCyan(fmt.Sprintf("%s (%d)", c.Name(), c.FaceValue()))
	}
	return c.String()
}

func cardsLabel(cards []card.Card) string {
	if len(cards) == 0 {
		return pterm.Gray("empty")
	}
	labels := make([]string, len(cards))
	for i, c := range cards {
		labels[i] = cardLabel(c)
	}
	return strings.Join(labels, " - ")
}

func offerLabel(o *jest.Offer) string {
	down := pterm.Gray("??")
	if o.FaceDownCard() == nil {
		down = pterm.Gray("--")
	}
	return fmt.Sprintf("%s: %s + %s", o.Owner().Name, cardLabel(o.FaceUpCard()), down)
}

func tableOfferLabel(o tableOffer) string {
	up, down := o.faceUp, pterm.Gray("??")
	if o.upTaken {
		up = pterm.Gray("--")
	}
	if o.downTaken {
		down = pterm.Gray("--")
	}
	return fmt.Sprintf("%s: %s + %s", o.owner, up, down)
}

func printPlayerInfo(p *jest.Player, main bool) string {
	hpadding := 4
	if main {
		hpadding = 10
	}
	pbox := pterm.DefaultBox.WithHorizontalPadding(hpadding).WithTopPadding(1).WithBottomPadding(1)
	kind := pterm.LightGreen("Human")
	if p.IsVirtual() {
		kind = pterm.LightBlue(fmt.Sprintf("Bot (%s)", p.Strategy().Kind()))
	}
	body := fmt.Sprintf("%s\nJest: %s\n", kind, cardsLabel(p.Jest))
	if main {
		body += pterm.BgGreen.Sprintf("Hand: %s", cardsLabel(p.Hand)) + "\n"
	}
	return pbox.WithTitle(p.Name).WithTitleTopLeft().Sprint(body)
}

// printState renders the table as seen by the player about to decide.
func printState(me *jest.Player, players []*jest.Player, offers []tableOffer) {
	var others []pterm.Panel
	for _, p := range players {
		if p != me {
			others = append(others, pterm.Panel{Data: printPlayerInfo(p, false)})
		}
	}
	lines := make([]string, len(offers))
	for i, o := range offers {
		lines[i] = tableOfferLabel(o)
	}
	table := pterm.DefaultBox.WithTitle(pterm.LightYellow("|OFFERS|")).WithTitleTopCenter().Sprint(strings.Join(lines, "\n"))
	if len(offers) == 0 {
		table = pterm.DefaultBox.WithTitle(pterm.LightYellow("|OFFERS|")).WithTitleTopCenter().Sprint(pterm.Gray("none yet"))
	}
	pterm.DefaultPanel.WithPanels([][]pterm.Panel{
		others,
		{{Data: table}},
		{{Data: printPlayerInfo(me, true)}},
	}).Render()
}

func scoresTable(scores map[string]int, winners []string) pterm.TableData {
	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		if scores[a] != scores[b] {
			return scores[b] - scores[a]
		}
		return strings.Compare(a, b)
	})
	data := pterm.TableData{{"Player", "Score", ""}}
	for _, name := range names {
		mark := ""
		if slices.Contains(winners, name) {
			mark = pterm.LightGreen("winner")
		}
		data = append(data, []string{name, fmt.Sprint(scores[name]), mark})
	}
	return data
}

// eventLine describes an event in one line, or returns "" for the events
// that are rendered some other way.
func eventLine(e jest.Event) string {
	switch e.Kind {
	case jest.EventCardsDealt, jest.EventOfferPhaseStarted, jest.EventTurn, jest.EventScores, jest.EventWinners:
		return ""
	case jest.EventRoundStarted:
		return fmt.Sprintf("Round %d", e.Round)
	case jest.EventOfferMade:
		return fmt.Sprintf("%s offers %s face up", pterm.LightCyan(e.Player), e.Card)
	case jest.EventStartingPlayer:
		if e.Card == "" {
			return fmt.Sprintf("%s starts", pterm.LightCyan(e.Player))
		}
		return fmt.Sprintf("%s starts with %s", pterm.LightCyan(e.Player), e.Card)
	case jest.EventCardTaken:
		side := "face-down card"
		if e.FaceUp {
			side = "face-up " + e.Card
		}
		return fmt.Sprintf("%s takes the %s from %s", pterm.LightCyan(e.Player), side, e.Target)
	case jest.EventRoundEnded:
		return fmt.Sprintf("Round %d is over", e.Round)
	case jest.EventDeckEmpty:
		return "The deck is empty, leftovers go to their owners"
	case jest.EventTrophiesRevealed:
		return "Trophies: " + strings.Join(e.Cards, ", ")
	case jest.EventTrophyAwarded:
		return fmt.Sprintf("%s wins the trophy %s (%s)", pterm.LightCyan(e.Player), e.Card, e.Message)
	case jest.EventWarning:
		return e.Message
	default:
		return string(e.Kind)
	}
}
