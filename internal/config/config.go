package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rp-combat-engine/internal/domain/combat"
)

// Config holds all configuration for the application
type Config struct {
	System        string
	Resolution    combat.PolicyKind // empty keeps the ruleset's own policy
	RulesetFile   string            // optional YAML override of the built-in ruleset
	CatalogueFile string            // optional YAML list of effect definitions
	Redis         RedisConfig
	Database      DatabaseConfig
	LogLevel      slog.Level

	// RandomSeed pins the dice for reproducible sessions; nil means crypto-seeded
	RandomSeed *uint64
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	URL string
}

// DatabaseConfig holds the combat log database configuration
type DatabaseConfig struct {
	URL string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		System:        strings.ToLower(getEnvOrDefault("RULE_SYSTEM", combat.SystemArkana)),
		Resolution:    combat.PolicyKind(strings.ToLower(os.Getenv("RESOLUTION_POLICY"))),
		RulesetFile:   os.Getenv("RULESET_FILE"),
		CatalogueFile: os.Getenv("CATALOGUE_FILE"),
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
	}

	level, err := parseLevel(getEnvOrDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if value := os.Getenv("RANDOM_SEED"); value != "" {
		seed, parseErr := strconv.ParseUint(value, 10, 64)
		if parseErr != nil {
			return nil, fmt.Errorf("RANDOM_SEED must be an unsigned integer: %w", parseErr)
		}
		cfg.RandomSeed = &seed
	}

	switch cfg.System {
	case combat.SystemGorean, combat.SystemArkana:
	default:
		return nil, fmt.Errorf("RULE_SYSTEM must be %q or %q, got %q", combat.SystemGorean, combat.SystemArkana, cfg.System)
	}

	switch cfg.Resolution {
	case "", combat.PolicyContested, combat.PolicyFixedTarget:
	default:
		return nil, fmt.Errorf("RESOLUTION_POLICY must be %q or %q, got %q",
			combat.PolicyContested, combat.PolicyFixedTarget, cfg.Resolution)
	}

	return cfg, nil
}

// Ruleset builds the ruleset for the configured system: the built-in rules,
// overlaid with the ruleset file when one is set, then the policy override
func (c *Config) Ruleset() (combat.Ruleset, error) {
	ruleset, err := combat.RulesetFor(c.System)
	if err != nil {
		return combat.Ruleset{}, err
	}

	if c.RulesetFile != "" {
		ruleset, err = LoadRuleset(c.RulesetFile, ruleset)
		if err != nil {
			return combat.Ruleset{}, err
		}
	}

	if c.Resolution != "" {
		ruleset = ruleset.WithResolution(c.Resolution)
	}

	if err := ruleset.Validate(); err != nil {
		return combat.Ruleset{}, fmt.Errorf("invalid ruleset: %w", err)
	}
	return ruleset, nil
}

// rulesetEntries captures attack and weapon entries raw so each one can be
// decoded over its built-in value
type rulesetEntries struct {
	Attacks map[combat.AttackType]yaml.Node `yaml:"attacks"`
	Weapons map[string]yaml.Node            `yaml:"weapons"`
}

// LoadRuleset overlays a YAML file onto base. Fields the file leaves out keep
// the base values, down to single fields of an attack or weapon entry; a missing
// file returns base unchanged.
func LoadRuleset(path string, base combat.Ruleset) (combat.Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil
		}
		return base, fmt.Errorf("reading ruleset %s: %w", path, err)
	}

	ruleset := base
	ruleset.Attacks = make(map[combat.AttackType]combat.AttackProfile, len(base.Attacks))
	for k, v := range base.Attacks {
		ruleset.Attacks[k] = v
	}
	ruleset.Weapons = make(map[string]combat.Weapon, len(base.Weapons))
	for k, v := range base.Weapons {
		ruleset.Weapons[k] = v
	}

	if err := yaml.Unmarshal(data, &ruleset); err != nil {
		return base, fmt.Errorf("parsing ruleset %s: %w", path, err)
	}

	// map entries decode from zero values; redo them on top of the base entry
	var entries rulesetEntries
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return base, fmt.Errorf("parsing ruleset %s: %w", path, err)
	}
	for key, node := range entries.Attacks {
		profile := base.Attacks[key]
		if err := node.Decode(&profile); err != nil {
			return base, fmt.Errorf("parsing ruleset %s: attack %s: %w", path, key, err)
		}
		ruleset.Attacks[key] = profile
	}
	for key, node := range entries.Weapons {
		weapon := base.Weapons[key]
		if err := node.Decode(&weapon); err != nil {
			return base, fmt.Errorf("parsing ruleset %s: weapon %s: %w", path, key, err)
		}
		ruleset.Weapons[key] = weapon
	}

	return ruleset, nil
}

func parseLevel(value string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
