package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"

	rules "github.com/KirkDiggler/rp-combat-engine/internal/domain/combat"
	"github.com/KirkDiggler/rp-combat-engine/internal/repositories/characters"
)

func main() {
	ctx := context.Background()

	system := rules.SystemArkana
	if len(os.Args) > 1 {
		system = strings.ToLower(os.Args[1])
	}

	// Set up Redis
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		slog.Error("failed to parse Redis URL", "error", err)
		os.Exit(1)
	}

	client := redis.NewClient(opts)
	defer client.Close()

	if pingErr := client.Ping(ctx).Err(); pingErr != nil {
		slog.Error("failed to connect to Redis", "error", pingErr)
		os.Exit(1)
	}

	chars, err := characters.NewRedis(client).ListBySystem(ctx, system)
	if err != nil {
		slog.Error("failed to list characters", "system", system, "error", err)
		os.Exit(1)
	}

	fmt.Printf("Found %d %s characters:\n", len(chars), system)
	for _, char := range chars {
		status := ""
		if char.Profile.IsDown() {
			status = " (down)"
		}
		fmt.Printf("  %s  %-20s %d/%d HP, %d active effects%s\n",
			char.ID, char.Name, char.Profile.HitPoints, char.Profile.MaxHitPoints, len(char.Effects), status)
	}
}
