// Package config layers defaults, an optional YAML file and environment
// variables into the settings shared by the oracle binaries.
package config

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/JonathanFerron/oracle/internal/game"
)

// Config holds every configurable parameter.
type Config struct {
	Games             int     `yaml:"games"`
	Seed              string  `yaml:"seed"` // decimal, 0x hex or "random"
	InitialCash       int     `yaml:"initial_cash"`
	MaxTurns          int     `yaml:"max_turns"`
	Workers           int     `yaml:"workers"`
	DefendProbability float64 `yaml:"defend_probability"`
	Mode              string  `yaml:"mode"`
	DeckFile          string  `yaml:"deck_file"` // custom mode: YAML deck list
	Decks             [2]int  `yaml:"decks"`     // custom mode: deck numbers for A and B
	WebAddr           string  `yaml:"web_addr"`
	LogLevel          string  `yaml:"log_level"`
	DatabaseURL       string  `yaml:"database_url"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		Games:             1000,
		Seed:              "1337",
		InitialCash:       game.DefaultCash,
		MaxTurns:          game.DefaultMaxTurns,
		Workers:           1,
		DefendProbability: game.DefaultDefendProbability,
		Mode:              game.DeckRandom.String(),
		Decks:             [2]int{1, 2},
		WebAddr:           ":8080",
		LogLevel:          "info",
	}
}

// Load reads configuration from the YAML file at path, when path is not
// empty, then applies environment variable overrides. Fields not set in
// either source retain their default values.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	overrideInt(&cfg.Games, "ORACLE_GAMES")
	overrideString(&cfg.Seed, "ORACLE_SEED")
	overrideInt(&cfg.InitialCash, "ORACLE_INITIAL_CASH")
	overrideInt(&cfg.MaxTurns, "ORACLE_MAX_TURNS")
	overrideInt(&cfg.Workers, "ORACLE_WORKERS")
	overrideFloat(&cfg.DefendProbability, "ORACLE_DEFEND_PROBABILITY")
	overrideString(&cfg.Mode, "ORACLE_MODE")
	overrideString(&cfg.DeckFile, "ORACLE_DECK_FILE")
	overrideString(&cfg.WebAddr, "ORACLE_WEB_ADDR")
	overrideString(&cfg.LogLevel, "ORACLE_LOG_LEVEL")
	overrideString(&cfg.DatabaseURL, "DATABASE_URL")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.Games < 0 {
		errs = append(errs, fmt.Errorf("games must not be negative, got %d", c.Games))
	}
	if c.InitialCash < 0 || c.InitialCash > math.MaxUint16 {
		errs = append(errs, fmt.Errorf("initial_cash must be in 0-%d, got %d", math.MaxUint16, c.InitialCash))
	}
	if c.MaxTurns < 1 {
		errs = append(errs, fmt.Errorf("max_turns must be positive, got %d", c.MaxTurns))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if c.DefendProbability < 0 || c.DefendProbability > 1 {
		errs = append(errs, fmt.Errorf("defend_probability must be in [0, 1], got %g", c.DefendProbability))
	}
	if _, err := ParseMode(c.Mode); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SeedValue parses the configured seed.
func (c *Config) SeedValue() (uint32, error) {
	return ParseSeed(c.Seed)
}

// ModeValue parses the configured deck mode.
func (c *Config) ModeValue() (game.DeckMode, error) {
	return ParseMode(c.Mode)
}

// CustomDecks loads the two configured decks from DeckFile.
func (c *Config) CustomDecks() ([2][]game.CardIndex, error) {
	var decks [2][]game.CardIndex
	if c.DeckFile == "" {
		return decks, errors.New("custom mode needs a deck_file")
	}
	for p, n := range c.Decks {
		entry, err := game.DeckByNumber(c.DeckFile, n)
		if err != nil {
			return decks, err
		}
		if decks[p], err = entry.Indices(); err != nil {
			return decks, fmt.Errorf("deck %d (%s): %w", n, entry.Name, err)
		}
	}
	return decks, nil
}

// ParseSeed accepts a decimal or 0x-prefixed hexadecimal seed. An empty
// string or "random" draws a seed from crypto/rand.
func ParseSeed(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "random") {
		var b [4]byte
		if _, err := rand.Read(b[:]); err != nil {
			return 0, fmt.Errorf("random seed: %w", err)
		}
		return binary.LittleEndian.Uint32(b[:]), nil
	}

	base := 10
	digits := s
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base = 16
		digits = s[2:]
	}
	n, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid seed %q: %w", s, err)
	}
	return uint32(n), nil
}

// ParseMode parses a deck mode name.
func ParseMode(s string) (game.DeckMode, error) {
	return game.ParseDeckMode(s)
}

func overrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			*field = n
		} else {
			slog.Warn("invalid environment value", "tag", "config", "key", envKey, "value", val)
		}
	}
}

func overrideFloat(field *float64, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			*field = f
		} else {
			slog.Warn("invalid environment value", "tag", "config", "key", envKey, "value", val)
		}
	}
}

func overrideString(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}
