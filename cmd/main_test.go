package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/luca-patrignani/jest/bot"
	"github.com/luca-patrignani/jest/config"
	"github.com/luca-patrignani/jest/domain/card"
	"github.com/luca-patrignani/jest/domain/jest"
	"github.com/luca-patrignani/jest/ledger"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errInterrupted = errors.New("interrupted")

// fakePrompter replays scripted selections, then keeps answering 0 and yes.
// With a limit it fails every question past the first limit ones.
type fakePrompter struct {
	selections []int
	asked      []string
	limit      int
}

func (f *fakePrompter) interrupted() bool {
	return f.limit > 0 && len(f.asked) > f.limit
}

func (f *fakePrompter) Select(text string, options []string) (int, error) {
	f.asked = append(f.asked, text)
	if f.interrupted() {
		return 0, errInterrupted
	}
	if len(f.selections) == 0 {
		return 0, nil
	}
	i := f.selections[0]
	f.selections = f.selections[1:]
	return i, nil
}

func (f *fakePrompter) Confirm(text string) (bool, error) {
	f.asked = append(f.asked, text)
	if f.interrupted() {
		return false, errInterrupted
	}
	return true, nil
}

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

var ansi = regexp.MustCompile("\x1b\\[[0-9;]*m")

func plain(s string) string { return ansi.ReplaceAllString(s, "") }

func TestChooseTwoCardIndices(t *testing.T) {
	hand := card.StandardSet()[:4]
	p := jest.NewHumanPlayer("ann")
	p.Receive(hand...)

	tests := []struct {
		selections    []int
		first, second int
	}{
		{[]int{2, 2}, 2, 3},
		{[]int{2, 1}, 2, 1},
		{[]int{0, 0}, 0, 1},
		{[]int{3, 0}, 3, 0},
	}
	for _, tt := range tests {
		c := &console{prompt: &fakePrompter{selections: tt.selections}}
		first, second, err := c.ChooseTwoCardIndices(p, hand)
		require.NoError(t, err)
		assert.Equal(t, tt.first, first)
		assert.Equal(t, tt.second, second)
	}
}

func TestChooseOffer(t *testing.T) {
	ann, bob, cid := jest.NewHumanPlayer("ann"), jest.NewHumanPlayer("bob"), jest.NewHumanPlayer("cid")
	set := card.StandardSet()
	offers := []*jest.Offer{jest.NewOffer(bob, set[0], set[1]), jest.NewOffer(cid, set[2], set[3])}

	prompt := &fakePrompter{selections: []int{1}}
	c := &console{prompt: prompt}
	o, err := c.ChooseOffer(ann, offers)
	require.NoError(t, err)
	assert.Same(t, offers[1], o)

	faceUp, err := c.ChooseFaceUpOrDown(ann, o)
	require.NoError(t, err)
	assert.True(t, faceUp)
	assert.Contains(t, prompt.asked[1], set[2].String())
}

func TestEventLine(t *testing.T) {
	tests := []struct {
		e    jest.Event
		want string
	}{
		{jest.Event{Kind: jest.EventRoundStarted, Round: 3}, "Round 3"},
		{jest.Event{Kind: jest.EventCardTaken, Player: "ann", Target: "bob", Card: "4♠", FaceUp: true}, "ann takes the face-up 4♠ from bob"},
		{jest.Event{Kind: jest.EventCardTaken, Player: "ann", Target: "bob", Card: "4♠"}, "ann takes the face-down card from bob"},
		{jest.Event{Kind: jest.EventStartingPlayer, Player: "cid"}, "cid starts"},
		{jest.Event{Kind: jest.EventTrophyAwarded, Player: "bob", Card: "Joker", Message: "best jest"}, "bob wins the trophy Joker (best jest)"},
		{jest.Event{Kind: jest.EventTurn, Player: "ann"}, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, plain(eventLine(tt.e)))
	}
}

func TestScoresTable(t *testing.T) {
	data := scoresTable(map[string]int{"ann": 3, "bob": 7, "cid": 7}, []string{"bob", "cid"})
	require.Len(t, data, 4)
	for _, row := range data {
		for i := range row {
			row[i] = plain(row[i])
		}
	}
	assert.Equal(t, []string{"bob", "7", "winner"}, data[1])
	assert.Equal(t, []string{"cid", "7", "winner"}, data[2])
	assert.Equal(t, []string{"ann", "3", ""}, data[3])
}

func botsOnly(dir string) *config.MatchConfig {
	return &config.MatchConfig{
		Players: []config.Player{
			{Name: "ann", Strategy: bot.KindGreedy},
			{Name: "bob", Strategy: bot.KindRandom},
			{Name: "cid", Strategy: bot.KindGreedy},
			{Name: "dan", Strategy: bot.KindRandom},
		},
		Variant:    jest.VariantStandard,
		Extensions: []string{card.HeartWard, card.BlackMoon, card.JestersWager, card.ShieldOfDiamonds},
		Seed:       17,
		Ledger:     filepath.Join(dir, "ledger.json"),
	}
}

func TestRunSavesAndWritesLedger(t *testing.T) {
	dir := t.TempDir()
	cfg := botsOnly(dir)
	require.NoError(t, cfg.Validate())
	savePath := filepath.Join(dir, "save.json")

	winners, err := run(cfg, savePath, &fakePrompter{}, false, slog.Default())
	require.NoError(t, err)
	require.NotEmpty(t, winners)

	chain := readLedger(t, cfg.Ledger)
	events := chain.Events()
	assert.Equal(t, jest.EventWinners, events[len(events)-1].Kind)

	data, err := os.ReadFile(savePath)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"finished": true`))

	// resuming a finished match only replays the final scoring
	again, err := run(cfg, savePath, &fakePrompter{}, false, slog.Default())
	require.NoError(t, err)
	resumed := readLedger(t, cfg.Ledger)
	assert.GreaterOrEqual(t, resumed.Len(), chain.Len())
	assert.Equal(t, events, resumed.Events()[:len(events)])
	names := func(ps []*jest.Player) []string {
		out := make([]string, len(ps))
		for i, p := range ps {
			out[i] = p.Name
		}
		return out
	}
	assert.Equal(t, names(winners), names(again))
}

func TestRunWithHumanPlayer(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 5
	prompt := &fakePrompter{}

	winners, err := run(cfg, "", prompt, false, slog.Default())
	require.NoError(t, err)
	assert.NotEmpty(t, winners)
	assert.NotEmpty(t, prompt.asked)
}

func readLedger(t *testing.T, path string) *ledger.Blockchain {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	chain, err := ledger.Read(f)
	require.NoError(t, err)
	return chain
}

func TestResumeContinuesLedger(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Seed = 5
	cfg.Ledger = filepath.Join(dir, "ledger.json")
	savePath := filepath.Join(dir, "save.json")

	// the human answers the three questions of the first round, then walks away
	_, err := run(cfg, savePath, &fakePrompter{limit: 4}, false, slog.Default())
	require.ErrorIs(t, err, errInterrupted)

	data, err := os.ReadFile(savePath)
	require.NoError(t, err)
	var saved jest.GameState
	require.NoError(t, json.Unmarshal(data, &saved))
	require.Equal(t, 1, saved.RoundCounter)

	partial := readLedger(t, cfg.Ledger)
	require.Greater(t, partial.Len(), 1)
	assert.Equal(t, saved.ID, partial.GameID())
	before := partial.Events()
	assert.Equal(t, jest.EventRoundEnded, before[len(before)-1].Kind)

	winners, err := run(cfg, savePath, &fakePrompter{}, false, slog.Default())
	require.NoError(t, err)
	require.NotEmpty(t, winners)

	full := readLedger(t, cfg.Ledger)
	assert.Greater(t, full.Len(), partial.Len())
	assert.Equal(t, saved.ID, full.GameID())
	for i := 0; i < partial.Len(); i++ {
		want, err := partial.GetByIndex(i)
		require.NoError(t, err)
		got, err := full.GetByIndex(i)
		require.NoError(t, err)
		assert.Equal(t, want.Hash, got.Hash, "block %d", i)
	}

	revealed, rounds := 0, 0
	for _, e := range full.Events() {
		switch e.Kind {
		case jest.EventTrophiesRevealed:
			revealed++
		case jest.EventRoundStarted:
			rounds++
			assert.Equal(t, rounds, e.Round)
		}
	}
	assert.Equal(t, 1, revealed)
	assert.Equal(t, jest.EventWinners, full.Events()[len(full.Events())-1].Kind)
}

func TestResumeRefusesForeignLedger(t *testing.T) {
	dir := t.TempDir()
	cfg := botsOnly(dir)
	savePath := filepath.Join(dir, "save.json")
	_, err := run(cfg, savePath, &fakePrompter{}, false, slog.Default())
	require.NoError(t, err)

	other := ledger.NewBlockchain(uuid.New())
	require.NoError(t, writeLedger(other, cfg.Ledger))

	_, err = run(cfg, savePath, &fakePrompter{}, false, slog.Default())
	require.Error(t, err)
	assert.Equal(t, 1, readLedger(t, cfg.Ledger).Len())
}

func TestConsoleTracksOffersFromEvents(t *testing.T) {
	c := &console{}
	for _, e := range []jest.Event{
		{Kind: jest.EventOfferPhaseStarted},
		{Kind: jest.EventOfferMade, Player: "ann", Card: "4♠", FaceUp: true},
		{Kind: jest.EventOfferMade, Player: "bob", Card: "A♥", FaceUp: true},
		{Kind: jest.EventCardTaken, Player: "bob", Target: "ann", Card: "4♠", FaceUp: true},
		{Kind: jest.EventCardTaken, Player: "ann", Target: "bob", Card: "2♦"},
	} {
		c.Notify(e)
	}
	assert.Equal(t, []tableOffer{
		{owner: "ann", faceUp: "4♠", upTaken: true},
		{owner: "bob", faceUp: "A♥", downTaken: true},
	}, c.offers)
	assert.Equal(t, "ann: -- + ??", plain(tableOfferLabel(c.offers[0])))
	assert.Equal(t, "bob: A♥ + --", plain(tableOfferLabel(c.offers[1])))

	c.Notify(jest.Event{Kind: jest.EventOfferPhaseStarted})
	assert.Empty(t, c.offers)
}
