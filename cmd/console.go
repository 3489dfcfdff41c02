package main

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/luca-patrignani/jest/domain/card"
	"github.com/luca-patrignani/jest/domain/jest"
	"github.com/pterm/pterm"
)

type prompter interface {
	Select(text string, options []string) (int, error)
	Confirm(text string) (bool, error)
}

type ptermPrompter struct{}

func (ptermPrompter) Select(text string, options []string) (int, error) {
	selected, err := pterm.DefaultInteractiveSelect.WithDefaultText(text).WithOptions(options).Show()
	if err != nil {
		return 0, err
	}
	i := slices.Index(options, selected)
	if i < 0 {
		return 0, fmt.Errorf("unexpected selection %q", selected)
	}
	return i, nil
}

func (ptermPrompter) Confirm(text string) (bool, error) {
	return pterm.DefaultInteractiveConfirm.WithDefaultText(text).WithDefaultValue(true).Show()
}

// tableOffer is what everybody sees of an offer on the table.
type tableOffer struct {
	owner     string
	faceUp    string
	upTaken   bool
	downTaken bool
}

// console answers the decisions of the human players at the terminal.
type console struct {
	prompt  prompter
	players []*jest.Player
	offers  []tableOffer
	render  bool
}

func numbered(cards []card.Card) []string {
	options := make([]string, len(cards))
	for i, c := range cards {
		options[i] = fmt.Sprintf("%d. %s", i+1, cardLabel(c))
	}
	return options
}

func (c *console) show(p *jest.Player) {
	if c.render {
		printState(p, c.players, c.offers)
	}
}

func (c *console) ChooseFaceUpCardIndex(p *jest.Player, cards []card.Card) (int, error) {
	if len(cards) == len(p.Hand) {
		c.show(p)
	}
	return c.prompt.Select(fmt.Sprintf("%s, which card goes face up?", p.Name), numbered(cards))
}

func (c *console) ChooseTwoCardIndices(p *jest.Player, hand []card.Card) (int, int, error) {
	c.show(p)
	first, err := c.prompt.Select(fmt.Sprintf("%s, pick the first card of your offer", p.Name), numbered(hand))
	if err != nil {
		return 0, 0, err
	}
	rest := slices.Delete(slices.Clone(hand), first, first+1)
	second, err := c.prompt.Select(fmt.Sprintf("%s, pick the second card of your offer", p.Name), numbered(rest))
	if err != nil {
		return 0, 0, err
	}
	if second >= first {
		second++
	}
	return first, second, nil
}

func (c *console) ChooseOffer(p *jest.Player, selectable []*jest.Offer) (*jest.Offer, error) {
	c.show(p)
	options := make([]string, len(selectable))
	for i, o := range selectable {
		options[i] = fmt.Sprintf("%d. %s", i+1, offerLabel(o))
	}
	i, err := c.prompt.Select(fmt.Sprintf("%s, take from which offer?", p.Name), options)
	if err != nil {
		return nil, err
	}
	return selectable[i], nil
}

func (c *console) ChooseFaceUpOrDown(p *jest.Player, o *jest.Offer) (bool, error) {
	return c.prompt.Confirm(fmt.Sprintf("Take the face-up %s? Otherwise you get the hidden card", o.FaceUpCard()))
}

// Notify keeps track of the offers on the table from the event data alone
// and prints the match as it goes.
func (c *console) Notify(e jest.Event) {
	switch e.Kind {
	case jest.EventOfferPhaseStarted:
		c.offers = nil
	case jest.EventOfferMade:
		c.offers = append(c.offers, tableOffer{owner: e.Player, faceUp: e.Card})
	case jest.EventCardTaken:
		for i := range c.offers {
			if c.offers[i].owner != e.Target {
				continue
			}
			if e.FaceUp {
				c.offers[i].upTaken = true
			} else {
				c.offers[i].downTaken = true
			}
		}
	}
	if !c.render {
		return
	}
	switch e.Kind {
	case jest.EventRoundStarted:
		pterm.DefaultSection.Println(eventLine(e))
	case jest.EventWarning:
		pterm.Warning.Println(eventLine(e))
	case jest.EventScores:
		// the winners event carries the scores too
	case jest.EventWinners:
		if err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(scoresTable(e.Scores, e.Winners)).Render(); err != nil {
			slog.Error("rendering scores", "err", err)
		}
	default:
		if line := eventLine(e); line != "" {
			pterm.Info.Println(line)
		}
	}
}
