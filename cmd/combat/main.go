package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rp-combat-engine/internal/config"
	"github.com/KirkDiggler/rp-combat-engine/internal/dice"
	"github.com/KirkDiggler/rp-combat-engine/internal/domain/catalogue"
	"github.com/KirkDiggler/rp-combat-engine/internal/domain/character"
	rules "github.com/KirkDiggler/rp-combat-engine/internal/domain/combat"
	"github.com/KirkDiggler/rp-combat-engine/internal/repositories/catalogues"
	"github.com/KirkDiggler/rp-combat-engine/internal/repositories/characters"
	"github.com/KirkDiggler/rp-combat-engine/internal/repositories/combatlog"
	"github.com/KirkDiggler/rp-combat-engine/internal/services"
	combatService "github.com/KirkDiggler/rp-combat-engine/internal/services/combat"
)

const usage = `Usage: combat <command> [arguments]

Commands:
  create <character.json>                       store a new character
  attack [-on-hit a,b] <attacker> <defender> <unarmed|melee|ranged> [weapon]
  ability <caster> <target> <name> <effect,effect,...>
  turn <character>                              end a character's turn
  clear-scene <character>                       end all scene and turn effects
  describe <character>                          explain active effects
  log <character> [limit]                       show the combat log
  seed-catalogue                                copy CATALOGUE_FILE into Redis`

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	if envErr != nil {
		logger.Debug("no .env file found")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Args[1], os.Args[2:]); err != nil {
		logger.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

// app is everything a command needs, with the resources to release afterwards
type app struct {
	provider *services.Provider
	loader   *catalogues.Loader
	cleanup  []func()
}

func (a *app) close() {
	for i := len(a.cleanup) - 1; i >= 0; i-- {
		a.cleanup[i]()
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, command string, args []string) error {
	a, err := setup(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	svc := a.provider.CombatService

	switch command {
	case "create":
		if len(args) != 1 {
			return fmt.Errorf("usage: create <character.json>")
		}
		return createCharacter(ctx, a.provider.CharacterRepository, cfg.System, args[0])

	case "attack":
		fs := flag.NewFlagSet("attack", flag.ContinueOnError)
		onHit := fs.String("on-hit", "", "comma separated effects delivered on a hit")
		if err := fs.Parse(args); err != nil {
			return err
		}
		rest := fs.Args()
		if len(rest) < 3 || len(rest) > 4 {
			return fmt.Errorf("usage: attack [-on-hit a,b] <attacker> <defender> <type> [weapon]")
		}
		input := &combatService.AttackInput{
			AttackerID: rest[0],
			DefenderID: rest[1],
			Attack: rules.AttackConfig{
				Type:  rules.AttackType(rest[2]),
				OnHit: splitList(*onHit),
			},
		}
		if len(rest) == 4 {
			input.Attack.Weapon = rest[3]
		}
		out, err := svc.Attack(ctx, input)
		if err != nil {
			return err
		}
		fmt.Println(out.Result.Message)
		fmt.Printf("%s: %d/%d HP\n", out.Defender.Name, out.Defender.Profile.HitPoints, out.Defender.Profile.MaxHitPoints)

	case "ability":
		if len(args) != 4 {
			return fmt.Errorf("usage: ability <caster> <target> <name> <effect,effect,...>")
		}
		out, err := svc.UseAbility(ctx, &combatService.AbilityInput{
			CasterID: args[0],
			TargetID: args[1],
			Ability:  rules.AbilityConfig{Name: args[2], Effects: splitList(args[3])},
		})
		if err != nil {
			return err
		}
		fmt.Println(out.Result.Message)

	case "turn":
		if len(args) != 1 {
			return fmt.Errorf("usage: turn <character>")
		}
		out, err := svc.AdvanceTurn(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Println(out.Message)

	case "clear-scene":
		if len(args) != 1 {
			return fmt.Errorf("usage: clear-scene <character>")
		}
		out, err := svc.ClearScene(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Println(out.Message)

	case "describe":
		if len(args) != 1 {
			return fmt.Errorf("usage: describe <character>")
		}
		text, err := svc.Describe(ctx, args[0])
		if err != nil {
			return err
		}
		if text == "" {
			text = "No active effects."
		}
		fmt.Println(text)

	case "log":
		if len(args) < 1 || len(args) > 2 {
			return fmt.Errorf("usage: log <character> [limit]")
		}
		limit := combatlog.DefaultLimit
		if len(args) == 2 {
			if limit, err = strconv.Atoi(args[1]); err != nil {
				return fmt.Errorf("limit must be a number: %w", err)
			}
		}
		entries, err := svc.History(ctx, args[0], limit)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			fmt.Printf("%s [%s] %s\n", entry.CreatedAt.Format(time.RFC3339), entry.Kind, entry.Message)
		}

	case "seed-catalogue":
		if a.loader == nil || cfg.CatalogueFile == "" {
			return fmt.Errorf("seed-catalogue needs REDIS_URL and CATALOGUE_FILE")
		}
		file, err := catalogues.LoadFile(cfg.CatalogueFile)
		if err != nil {
			return err
		}
		system := file.System
		if system == "" {
			system = cfg.System
		}
		if err := a.loader.Store(ctx, system, file.Effects...); err != nil {
			return err
		}
		fmt.Printf("Stored %d effects for %s\n", len(file.Effects), system)

	default:
		fmt.Println(usage)
		return fmt.Errorf("unknown command %q", command)
	}

	return nil
}

// setup wires stores, catalogue, dice and services from configuration.
// Redis and PostgreSQL are optional; without them state lives in memory for the
// length of the command.
func setup(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	a := &app{}

	ruleset, err := cfg.Ruleset()
	if err != nil {
		return nil, err
	}

	providerConfig := &services.ProviderConfig{
		Ruleset: ruleset,
		Logger:  logger,
	}

	if cfg.RandomSeed != nil {
		providerConfig.Roller = dice.NewSeededRoller(*cfg.RandomSeed)
	} else {
		providerConfig.Roller = dice.NewRandomRoller()
	}

	if cfg.Redis.URL != "" {
		client, err := connectRedis(ctx, cfg.Redis.URL)
		if err != nil {
			logger.Warn("redis unavailable, falling back to in-memory characters", "error", err)
		} else {
			a.cleanup = append(a.cleanup, func() {
				if err := client.Close(); err != nil {
					logger.Warn("error closing redis connection", "error", err)
				}
			})
			providerConfig.CharacterRepository = characters.NewRedis(client)
			a.loader = catalogues.NewLoader(&catalogues.LoaderConfig{Client: client, Logger: logger})
		}
	} else {
		logger.Debug("no REDIS_URL found, using in-memory characters")
	}

	if cfg.Database.URL != "" {
		if err := combatlog.RunMigrations(ctx, cfg.Database.URL); err != nil {
			a.close()
			return nil, err
		}
		pool, err := combatlog.Connect(ctx, cfg.Database.URL)
		if err != nil {
			a.close()
			return nil, err
		}
		a.cleanup = append(a.cleanup, pool.Close)
		providerConfig.CombatLogRepository = combatlog.NewPostgresRepository(pool, logger)
	}

	lookup, err := loadCatalogue(ctx, cfg, a.loader, logger)
	if err != nil {
		a.close()
		return nil, err
	}
	providerConfig.Catalogue = lookup

	a.provider, err = services.NewProvider(providerConfig)
	if err != nil {
		a.close()
		return nil, err
	}

	logger.Debug("combat engine ready",
		"system", ruleset.Name,
		"policy", a.provider.Resolver.Policy().Kind(),
		"effects", lookup.Len())

	return a, nil
}

func connectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// loadCatalogue prefers the catalogue file, then the Redis hash for the system
func loadCatalogue(ctx context.Context, cfg *config.Config, loader *catalogues.Loader, logger *slog.Logger) (*catalogue.Catalogue, error) {
	if cfg.CatalogueFile != "" {
		file, err := catalogues.LoadFile(cfg.CatalogueFile)
		if err != nil {
			return nil, err
		}
		return catalogue.New(file.Effects...), nil
	}

	if loader != nil {
		return loader.Load(ctx, cfg.System)
	}

	logger.Warn("no catalogue configured; effects will be ignored")
	return catalogue.New(), nil
}

func createCharacter(ctx context.Context, repo characters.Repository, system, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading character %s: %w", path, err)
	}

	var char character.Character
	if err := json.Unmarshal(data, &char); err != nil {
		return fmt.Errorf("parsing character %s: %w", path, err)
	}
	if char.System == "" {
		char.System = system
	}

	if err := repo.Create(ctx, &char); err != nil {
		return err
	}
	fmt.Printf("Created %s (%s)\n", char.Name, char.ID)
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
