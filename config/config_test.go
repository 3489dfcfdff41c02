package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/luca-patrignani/jest/bot"
	"github.com/luca-patrignani/jest/domain/card"
	"github.com/luca-patrignani/jest/domain/jest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const matchJSON = `{
  "players": [
    {"name": "ann", "human": true},
    {"name": "bob", "strategy": "greedy"},
    {"name": "cid", "strategy": "random"}
  ],
  "variant": "full-hand",
  "extensions": ["Heart Ward", "Crescent", "Moonlit"],
  "scripted_extensions": [
    {"name": "Crescent", "face": 1, "description": "+3 with the Joker", "script": "function bonus() if has_joker() then return 3 end return 0 end"},
    {"name": "Moonlit", "face": 0, "description": "+1 per card", "script_file": "moonlit.lua"}
  ],
  "seed": 99
}`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "match.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "moonlit.lua"), []byte("function bonus() return jest_size() end"), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	c, err := Load(writeConfig(t, matchJSON))
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, jest.VariantFullHand, c.Variant)
	assert.Equal(t, int64(99), c.Seed)
	assert.NotNil(t, c.Rand())

	catalog, err := c.Catalog()
	require.NoError(t, err)
	exts, err := c.BuildExtensions(catalog)
	require.NoError(t, err)
	require.Len(t, exts, 3)
	assert.Equal(t, 4, exts[1].FaceValue()+exts[1].Effect().CalculateBonus(boardWithJoker{}))

	players, err := c.BuildPlayers(c.Rand())
	require.NoError(t, err)
	require.Len(t, players, 3)
	assert.False(t, players[0].IsVirtual())
	assert.Equal(t, bot.KindGreedy, players[1].Strategy().Kind())
	assert.Equal(t, bot.KindRandom, players[2].Strategy().Kind())
}

// boardWithJoker is a scoring board holding the Joker and five cards.
type boardWithJoker struct{}

func (boardWithJoker) SetFlag(string, bool)            {}
func (boardWithJoker) Flag(string) bool                { return false }
func (boardWithJoker) HasJoker() bool                  { return true }
func (boardWithJoker) HeartCount() int                 { return 0 }
func (boardWithJoker) SuitFaces(card.Suit) []card.Face { return nil }
func (boardWithJoker) JestSize() int                   { return 5 }

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
	_, err = Load(writeConfig(t, "{"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *MatchConfig)
		is     error
	}{
		{"default", func(*MatchConfig) {}, nil},
		{"too few players", func(c *MatchConfig) { c.Players = c.Players[:2] }, jest.ErrInvalidPlayerCount},
		{"bad extension count", func(c *MatchConfig) { c.Extensions = []string{card.HeartWard} }, jest.ErrInvalidExtensionSelection},
		{"three extensions", func(c *MatchConfig) {
			c.Extensions = []string{card.HeartWard, card.BlackMoon, card.JestersWager}
		}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			if tt.is == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}

	rejected := map[string]func(c *MatchConfig){
		"unknown variant":     func(c *MatchConfig) { c.Variant = "chaos" },
		"unknown strategy":    func(c *MatchConfig) { c.Players[1].Strategy = "psychic" },
		"duplicate name":      func(c *MatchConfig) { c.Players[2].Name = c.Players[1].Name },
		"empty name":          func(c *MatchConfig) { c.Players[0].Name = "" },
		"unknown extension":   func(c *MatchConfig) { c.Extensions = []string{"Nope", card.HeartWard, card.BlackMoon} },
		"duplicate extension": func(c *MatchConfig) { c.Extensions = []string{card.HeartWard, card.HeartWard, card.BlackMoon} },
		"broken script": func(c *MatchConfig) {
			c.Scripted = []ScriptedExtension{{Name: "Broken", Script: "function ("}}
		},
	}
	for name, mutate := range rejected {
		t.Run(name, func(t *testing.T) {
			c := Default()
			mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

// clearEnv unsets the variables for the test and restores them afterwards.
func clearEnv(t *testing.T) {
	for _, k := range []string{EnvConfig, EnvSeed, EnvVariant} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)
		c, err := FromEnv(filepath.Join(t.TempDir(), ".env"))
		require.NoError(t, err)
		assert.Equal(t, Default().Players, c.Players)
		assert.Nil(t, c.Rand())
	})
	t.Run("dotenv file", func(t *testing.T) {
		clearEnv(t)
		path := writeConfig(t, matchJSON)
		env := filepath.Join(t.TempDir(), ".env")
		content := "JEST_CONFIG=" + path + "\nJEST_SEED=7\nJEST_VARIANT=reverse\n"
		require.NoError(t, os.WriteFile(env, []byte(content), 0o600))

		c, err := FromEnv(env)
		require.NoError(t, err)
		assert.Equal(t, int64(7), c.Seed)
		assert.Equal(t, jest.VariantReverse, c.Variant)
		assert.Len(t, c.Scripted, 2)
	})
	t.Run("process environment wins", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvVariant, jest.VariantFullHand)
		env := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(env, []byte("JEST_VARIANT=reverse\n"), 0o600))

		c, err := FromEnv(env)
		require.NoError(t, err)
		assert.Equal(t, jest.VariantFullHand, c.Variant)
	})
	t.Run("bad seed", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvSeed, "twelve")
		_, err := FromEnv(filepath.Join(t.TempDir(), ".env"))
		assert.Error(t, err)
	})
}
