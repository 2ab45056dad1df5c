package characters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rp-combat-engine/internal/clock"
	"github.com/KirkDiggler/rp-combat-engine/internal/domain/character"
	"github.com/KirkDiggler/rp-combat-engine/internal/domain/stats"
	engerr "github.com/KirkDiggler/rp-combat-engine/internal/errors"
)

func newTestInMemory(now time.Time) *InMemoryRepository {
	repo := NewInMemoryRepository()
	repo.clock = clock.Fixed(now)
	return repo
}

func testChar(id, system string) *character.Character {
	return &character.Character{
		ID:     id,
		Name:   "Char " + id,
		System: system,
		Profile: stats.Profile{
			Attributes:   map[stats.Stat]int{stats.StatPhysical: 3},
			HitPoints:    10,
			MaxHitPoints: 10,
		},
	}
}

func TestInMemoryRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := newTestInMemory(now)

	char := testChar("char-1", "arkana")
	require.NoError(t, repo.Create(ctx, char))
	assert.Equal(t, now, char.CreatedAt)

	err := repo.Create(ctx, testChar("char-1", "arkana"))
	assert.True(t, engerr.IsAlreadyExists(err))

	loaded, err := repo.Get(ctx, "char-1")
	require.NoError(t, err)
	assert.Equal(t, char, loaded)

	// stored copies are isolated from callers
	loaded.Profile.Attributes[stats.StatPhysical] = 1
	again, err := repo.Get(ctx, "char-1")
	require.NoError(t, err)
	assert.Equal(t, 3, again.Profile.Attributes[stats.StatPhysical])

	again.Profile.HitPoints = 2
	require.NoError(t, repo.Update(ctx, again))
	updated, err := repo.Get(ctx, "char-1")
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Profile.HitPoints)

	require.NoError(t, repo.Delete(ctx, "char-1"))
	_, err = repo.Get(ctx, "char-1")
	assert.True(t, engerr.IsNotFound(err))
	assert.True(t, engerr.IsNotFound(repo.Delete(ctx, "char-1")))
	assert.True(t, engerr.IsNotFound(repo.Update(ctx, testChar("char-1", "arkana"))))
}

func TestInMemoryRepository_ListBySystem(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	require.NoError(t, repo.Create(ctx, testChar("b", "arkana")))
	require.NoError(t, repo.Create(ctx, testChar("a", "arkana")))
	require.NoError(t, repo.Create(ctx, testChar("c", "gorean")))

	chars, err := repo.ListBySystem(ctx, "arkana")
	require.NoError(t, err)
	require.Len(t, chars, 2)
	assert.Equal(t, "a", chars[0].ID)
	assert.Equal(t, "b", chars[1].ID)

	_, err = repo.ListBySystem(ctx, "")
	assert.True(t, engerr.IsInvalidArgument(err))
}

func TestInMemoryRepository_Validation(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	assert.True(t, engerr.IsInvalidArgument(repo.Create(ctx, nil)))
	assert.True(t, engerr.IsInvalidArgument(repo.Create(ctx, testChar("", "arkana"))))
	assert.True(t, engerr.IsInvalidArgument(repo.Create(ctx, testChar("x", ""))))

	_, err := repo.Get(ctx, "")
	assert.True(t, engerr.IsInvalidArgument(err))
}
