package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/luca-patrignani/jest/bot"
	"github.com/luca-patrignani/jest/config"
	"github.com/luca-patrignani/jest/domain/card"
	"github.com/luca-patrignani/jest/domain/jest"
	"github.com/luca-patrignani/jest/ledger"
)

func main() {
	if len(os.Args) > 2 {
		fmt.Fprintf(os.Stderr, "usage: %s [save-file]\n", os.Args[0])
		os.Exit(1)
	}
	var savePath string
	if len(os.Args) == 2 {
		savePath = os.Args[1]
	}

	// Create a new slog handler with the default PTerm logger
	handler := pterm.NewSlogHandler(&pterm.DefaultLogger)
	logger := slog.New(handler)
	slog.SetDefault(logger)

	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("J", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("est", pterm.FgDarkGray.ToStyle()),
	).Render()

	cfg, err := config.FromEnv()
	if err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}
	if _, err := run(cfg, savePath, ptermPrompter{}, true, logger); err != nil {
		logger.Error("match aborted", "err", err)
		os.Exit(1)
	}
}

// run plays a whole match, resuming from savePath when it holds a saved
// match and saving to it after every round.
func run(cfg *config.MatchConfig, savePath string, prompt prompter, render bool, logger *slog.Logger) ([]*jest.Player, error) {
	catalog, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}
	rng := cfg.Rand()

	var chain *ledger.Blockchain
	ui := &console{prompt: prompt, render: render}
	sinks := jest.Notifiers{ui}
	opts := []jest.GameOption{
		jest.WithDecisions(ui),
		jest.WithLogger(logger),
		jest.WithNotifier(jest.NotifierFunc(func(e jest.Event) { sinks.Notify(e) })),
	}
	if rng != nil {
		opts = append(opts, jest.WithRand(rng))
	}

	g, err := resume(savePath, catalog, bot.Factory(rng), opts)
	if err != nil {
		return nil, err
	}
	resumed := g != nil
	if !resumed {
		players, err := cfg.BuildPlayers(rng)
		if err != nil {
			return nil, err
		}
		v, err := jest.VariantByName(cfg.Variant)
		if err != nil {
			return nil, err
		}
		if g, err = jest.NewGame(players, v, opts...); err != nil {
			return nil, err
		}
	}
	ui.players = g.Players
	if cfg.Ledger != "" {
		if chain, err = openLedger(cfg.Ledger, g.ID, resumed); err != nil {
			return nil, err
		}
		sinks = append(sinks, chain)
	}

	if g.Trophies == nil {
		extensions, err := cfg.BuildExtensions(catalog)
		if err != nil {
			return nil, err
		}
		if err := g.Setup(extensions); err != nil {
			return nil, err
		}
	} else {
		pterm.Info.Printfln("Resuming match %s after round %d", g.ID, g.RoundCounter)
	}

	for !g.Finished {
		if err := g.PlayRound(); err != nil {
			return nil, err
		}
		if err := save(g, savePath); err != nil {
			logger.Warn("could not save the match", "path", savePath, "err", err)
		}
		if chain != nil {
			if err := writeLedger(chain, cfg.Ledger); err != nil {
				logger.Warn("could not write the ledger", "path", cfg.Ledger, "err", err)
			}
		}
	}
	winners := g.Finish()

	if chain != nil {
		if err := writeLedger(chain, cfg.Ledger); err != nil {
			return winners, err
		}
		logger.Info("ledger written", "path", cfg.Ledger, "blocks", chain.Len())
	}
	return winners, nil
}

// resume restores the match saved at path, or returns nil when there is
// none.
func resume(path string, catalog card.Catalog, strategies jest.StrategyFactory, opts []jest.GameOption) (*jest.Game, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return jest.Restore(data, catalog, strategies, opts...)
}

func save(g *jest.Game, path string) error {
	if path == "" {
		return nil
	}
	data, err := g.Snapshot()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// openLedger continues the ledger of a resumed match, or starts a new one.
// A ledger recording another game is never appended to.
func openLedger(path string, gameID uuid.UUID, resumed bool) (*ledger.Blockchain, error) {
	if !resumed {
		return ledger.NewBlockchain(gameID), nil
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ledger.NewBlockchain(gameID), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	chain, err := ledger.Read(f)
	if err != nil {
		return nil, fmt.Errorf("ledger %s: %w", path, err)
	}
	if chain.GameID() != gameID {
		return nil, fmt.Errorf("ledger %s records game %s, not the resumed game %s", path, chain.GameID(), gameID)
	}
	return chain, nil
}

func writeLedger(chain *ledger.Blockchain, path string) error {
	if err := chain.Verify(); err != nil {
		return fmt.Errorf("ledger corrupted: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := chain.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
