package services

import (
	"log/slog"

	"github.com/KirkDiggler/rp-combat-engine/internal/clock"
	"github.com/KirkDiggler/rp-combat-engine/internal/dice"
	"github.com/KirkDiggler/rp-combat-engine/internal/domain/catalogue"
	rules "github.com/KirkDiggler/rp-combat-engine/internal/domain/combat"
	"github.com/KirkDiggler/rp-combat-engine/internal/repositories/characters"
	"github.com/KirkDiggler/rp-combat-engine/internal/repositories/combatlog"
	combatService "github.com/KirkDiggler/rp-combat-engine/internal/services/combat"
)

// Provider holds all service instances
type Provider struct {
	CombatService       combatService.Service
	CharacterRepository characters.Repository
	Resolver            *rules.Resolver
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	Ruleset             rules.Ruleset
	Catalogue           catalogue.Lookup
	Roller              dice.Roller
	CharacterRepository characters.Repository
	CombatLogRepository combatlog.Repository
	Clock               clock.Clock
	Logger              *slog.Logger
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) (*Provider, error) {
	// Use in-memory repositories if none provided
	charRepo := cfg.CharacterRepository
	if charRepo == nil {
		charRepo = characters.NewInMemoryRepository()
	}

	logRepo := cfg.CombatLogRepository
	if logRepo == nil {
		logRepo = combatlog.NewInMemoryRepository()
	}

	resolver, err := rules.NewResolver(&rules.ResolverConfig{
		Ruleset:   cfg.Ruleset,
		Catalogue: cfg.Catalogue,
		Roller:    cfg.Roller,
	})
	if err != nil {
		return nil, err
	}

	svc := combatService.NewService(&combatService.ServiceConfig{
		Characters: charRepo,
		CombatLog:  logRepo,
		Catalogue:  cfg.Catalogue,
		Resolver:   resolver,
		Clock:      cfg.Clock,
		Logger:     cfg.Logger,
	})

	return &Provider{
		CombatService:       svc,
		CharacterRepository: charRepo,
		Resolver:            resolver,
	}, nil
}
