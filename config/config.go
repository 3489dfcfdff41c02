// Package config loads the configuration of a match from a JSON file and
// the environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/luca-patrignani/jest/bot"
	"github.com/luca-patrignani/jest/domain/card"
	"github.com/luca-patrignani/jest/domain/deck"
	"github.com/luca-patrignani/jest/domain/jest"
)

// Environment variables read by FromEnv.
const (
	EnvConfig  = "JEST_CONFIG"
	EnvSeed    = "JEST_SEED"
	EnvVariant = "JEST_VARIANT"
)

type Player struct {
	Name  string `json:"name"`
	Human bool   `json:"human"`
	// Strategy is ignored for human players.
	Strategy card.StrategyKind `json:"strategy,omitempty"`
}

// ScriptedExtension is an extension card whose effect is a Lua script, given
// inline or as a file relative to the configuration file.
type ScriptedExtension struct {
	Name        string `json:"name"`
	Face        int    `json:"face"`
	Description string `json:"description"`
	Script      string `json:"script,omitempty"`
	ScriptFile  string `json:"script_file,omitempty"`
}

type MatchConfig struct {
	Players    []Player            `json:"players"`
	Variant    string              `json:"variant"`
	Extensions []string            `json:"extensions"`
	Scripted   []ScriptedExtension `json:"scripted_extensions"`
	// Seed makes the shuffles reproducible; 0 shuffles with the crypto source.
	Seed int64 `json:"seed,omitempty"`
	// Ledger is the file the audit trail of the match is written to.
	Ledger string `json:"ledger,omitempty"`

	baseDir string
}

// Default is one human against a greedy and a random bot.
func Default() *MatchConfig {
	return &MatchConfig{
		Players: []Player{
			{Name: "you", Human: true},
			{Name: "greedy-bot", Strategy: bot.KindGreedy},
			{Name: "random-bot", Strategy: bot.KindRandom},
		},
		Variant: jest.VariantStandard,
	}
}

// Load reads the configuration at path.
func Load(path string) (*MatchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read match config: %w", err)
	}
	var c MatchConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match config: %w", err)
	}
	if c.Variant == "" {
		c.Variant = jest.VariantStandard
	}
	c.baseDir = filepath.Dir(path)
	return &c, nil
}

// FromEnv loads the .env files (".env" when none is given, missing files are
// fine), then the file named by JEST_CONFIG or the default configuration, and
// applies the JEST_SEED and JEST_VARIANT overrides. The result is validated.
func FromEnv(envFiles ...string) (*MatchConfig, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	c := Default()
	if path := os.Getenv(EnvConfig); path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		c = loaded
	}
	if s := os.Getenv(EnvSeed); s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = seed
	}
	if v := os.Getenv(EnvVariant); v != "" {
		c.Variant = v
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks everything that can be checked before a match starts.
func (c *MatchConfig) Validate() error {
	if err := jest.ValidatePlayerCount(len(c.Players)); err != nil {
		return err
	}
	names := make(map[string]bool, len(c.Players))
	for i, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("player %d has no name", i+1)
		}
		if names[p.Name] {
			return fmt.Errorf("duplicate player name %q", p.Name)
		}
		names[p.Name] = true
		if !p.Human && !slices.Contains(bot.Kinds(), p.Strategy) {
			return fmt.Errorf("player %s: unknown strategy %q", p.Name, p.Strategy)
		}
	}
	if _, err := jest.VariantByName(c.Variant); err != nil {
		return err
	}
	catalog, err := c.Catalog()
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(c.Extensions))
	for _, name := range c.Extensions {
		if _, ok := catalog[name]; !ok {
			return fmt.Errorf("unknown extension card %q", name)
		}
		if seen[name] {
			return fmt.Errorf("extension card %q selected twice", name)
		}
		seen[name] = true
	}
	return jest.ValidateExtensionSelection(len(c.Extensions), len(c.Players))
}

// Catalog returns the built-in extension cards plus the scripted ones.
func (c *MatchConfig) Catalog() (card.Catalog, error) {
	catalog := card.BuiltinCatalog()
	for _, s := range c.Scripted {
		script := s.Script
		if s.ScriptFile != "" {
			path := s.ScriptFile
			if !filepath.IsAbs(path) {
				path = filepath.Join(c.baseDir, path)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("extension %s: %w", s.Name, err)
			}
			script = string(data)
		}
		// compile once so broken scripts fail here rather than mid-match
		if _, err := card.NewScriptedExtension(s.Name, s.Face, s.Description, script); err != nil {
			return nil, fmt.Errorf("extension %s: %w", s.Name, err)
		}
		catalog.Register(s.Name, func() (*card.ExtensionCard, error) {
			return card.NewScriptedExtension(s.Name, s.Face, s.Description, script)
		})
	}
	return catalog, nil
}

// Rand returns the seeded shuffle source, or nil for the crypto default.
func (c *MatchConfig) Rand() deck.Rand {
	if c.Seed == 0 {
		return nil
	}
	return rand.New(rand.NewSource(c.Seed))
}

// BuildPlayers creates the players, virtual ones with their strategy.
func (c *MatchConfig) BuildPlayers(rng deck.Rand) ([]*jest.Player, error) {
	players := make([]*jest.Player, 0, len(c.Players))
	for _, p := range c.Players {
		if p.Human {
			players = append(players, jest.NewHumanPlayer(p.Name))
			continue
		}
		s, err := bot.New(p.Strategy, rng)
		if err != nil {
			return nil, fmt.Errorf("player %s: %w", p.Name, err)
		}
		players = append(players, jest.NewVirtualPlayer(p.Name, s))
	}
	return players, nil
}

// BuildExtensions instantiates the selected extension cards.
func (c *MatchConfig) BuildExtensions(catalog card.Catalog) ([]*card.ExtensionCard, error) {
	out := make([]*card.ExtensionCard, 0, len(c.Extensions))
	for _, name := range c.Extensions {
		e, err := catalog.New(name)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
