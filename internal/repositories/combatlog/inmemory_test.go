package combatlog

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engerr "github.com/KirkDiggler/rp-combat-engine/internal/errors"
)

func TestInMemoryRepository_ListByCharacter(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	entries := []*Entry{
		{ID: "e1", CharacterID: "tarl", TargetID: "kamras", Kind: KindAttack, Message: "first", CreatedAt: base},
		{ID: "e2", CharacterID: "kamras", TargetID: "tarl", Kind: KindAttack, Message: "second", CreatedAt: base.Add(time.Second)},
		{ID: "e3", CharacterID: "mira", Kind: KindTurn, Message: "other", CreatedAt: base.Add(2 * time.Second)},
		{ID: "e4", CharacterID: "tarl", Kind: KindTurn, Message: "third", CreatedAt: base.Add(time.Second)},
		{ID: "e0", CharacterID: "tarl", Kind: KindClearScene, Message: "late arrival", CreatedAt: base.Add(-time.Minute)},
	}
	for _, entry := range entries {
		require.NoError(t, repo.Append(ctx, entry))
	}

	got, err := repo.ListByCharacter(ctx, "tarl", 0)
	require.NoError(t, err)

	var ids []string
	for _, entry := range got {
		ids = append(ids, entry.ID)
	}
	assert.Equal(t, []string{"e4", "e2", "e1", "e0"}, ids)

	got, err = repo.ListByCharacter(ctx, "tarl", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "e4", got[0].ID)

	got, err = repo.ListByCharacter(ctx, "nobody", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestInMemoryRepository_Append(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	entry := &Entry{
		ID:          "e1",
		CharacterID: "tarl",
		Kind:        KindAttack,
		Message:     "Tarl attacks Kamras",
		Result:      json.RawMessage(`{"hit":true}`),
	}
	require.NoError(t, repo.Append(ctx, entry))
	assert.True(t, engerr.IsAlreadyExists(repo.Append(ctx, entry)))

	// stored entries do not share the caller's buffer
	entry.Result[2] = 'X'
	got, err := repo.ListByCharacter(ctx, "tarl", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.JSONEq(t, `{"hit":true}`, string(got[0].Result))
}

func TestInMemoryRepository_Validation(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	tests := []struct {
		name  string
		entry *Entry
	}{
		{name: "nil entry", entry: nil},
		{name: "missing id", entry: &Entry{CharacterID: "tarl", Kind: KindAttack}},
		{name: "missing character", entry: &Entry{ID: "e1", Kind: KindAttack}},
		{name: "missing kind", entry: &Entry{ID: "e1", CharacterID: "tarl"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, engerr.IsInvalidArgument(repo.Append(ctx, tt.entry)))
		})
	}

	_, err := repo.ListByCharacter(ctx, "", 5)
	assert.True(t, engerr.IsInvalidArgument(err))
}
