// Package catalogues loads a rule system's effect catalogue from Redis.
//
// Each rule system keeps its definitions in one hash, "catalogue:<system>", keyed
// by effect id with the JSON definition as the value.
package catalogues

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rp-combat-engine/internal/domain/catalogue"
	engerr "github.com/KirkDiggler/rp-combat-engine/internal/errors"
)

// Loader reads and seeds catalogue hashes
type Loader struct {
	client redis.UniversalClient
	logger *slog.Logger
}

// LoaderConfig holds configuration for the catalogue loader
type LoaderConfig struct {
	Client redis.UniversalClient
	Logger *slog.Logger
}

// NewLoader creates a Redis-backed catalogue loader
func NewLoader(cfg *LoaderConfig) *Loader {
	if cfg == nil {
		panic("LoaderConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Loader{
		client: cfg.Client,
		logger: logger.With("component", "catalogue_loader"),
	}
}

func key(system string) string {
	return fmt.Sprintf("catalogue:%s", system)
}

// Load reads every definition of a rule system into an immutable catalogue.
// Entries that fail to decode or whose id disagrees with the hash field are
// skipped with a warning.
func (l *Loader) Load(ctx context.Context, system string) (*catalogue.Catalogue, error) {
	if system == "" {
		return nil, engerr.InvalidArgument("system is required")
	}

	entries, err := l.client.HGetAll(ctx, key(system)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalogue %s: %w", system, err)
	}

	ids := make([]string, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	definitions := make([]catalogue.Definition, 0, len(ids))
	for _, id := range ids {
		var def catalogue.Definition
		if err := json.Unmarshal([]byte(entries[id]), &def); err != nil {
			l.logger.Warn("skipping malformed catalogue entry",
				"system", system, "effect_id", id, "error", err)
			continue
		}
		if def.ID == "" {
			def.ID = id
		}
		if def.ID != id {
			l.logger.Warn("skipping catalogue entry with mismatched id",
				"system", system, "field", id, "effect_id", def.ID)
			continue
		}
		definitions = append(definitions, def)
	}

	l.logger.Debug("catalogue loaded", "system", system, "definitions", len(definitions))
	return catalogue.New(definitions...), nil
}

// Store writes definitions into a rule system's hash, replacing same-id entries
func (l *Loader) Store(ctx context.Context, system string, definitions ...catalogue.Definition) error {
	if system == "" {
		return engerr.InvalidArgument("system is required")
	}
	if len(definitions) == 0 {
		return nil
	}

	values := make([]any, 0, len(definitions)*2)
	for _, def := range definitions {
		if def.ID == "" {
			return engerr.InvalidArgument("definition ID is required")
		}
		data, err := json.Marshal(def)
		if err != nil {
			return fmt.Errorf("failed to marshal definition %s: %w", def.ID, err)
		}
		values = append(values, def.ID, string(data))
	}

	if err := l.client.HSet(ctx, key(system), values...).Err(); err != nil {
		return fmt.Errorf("failed to store catalogue %s: %w", system, err)
	}
	return nil
}
