package catalogues

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rp-combat-engine/internal/domain/catalogue"
	engerr "github.com/KirkDiggler/rp-combat-engine/internal/errors"
)

func newTestLoader(t *testing.T) (*Loader, redismock.ClientMock) {
	t.Helper()
	client, mock := redismock.NewClientMock()
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	loader := NewLoader(&LoaderConfig{
		Client: client,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return loader, mock
}

func encode(t *testing.T, def catalogue.Definition) string {
	t.Helper()
	data, err := json.Marshal(def)
	require.NoError(t, err)
	return string(data)
}

func TestLoader_Load(t *testing.T) {
	loader, mock := newTestLoader(t)

	bless := catalogue.NewBuilder("bless", "Bless").
		WithDuration(catalogue.Turns(3)).
		StatModifier("Physical", 1, catalogue.ModifierStatValue).
		Build()
	shield := catalogue.NewBuilder("shield", "Shield").
		WithDuration(catalogue.Scene()).
		Defense(2).
		Build()

	mock.ExpectHGetAll("catalogue:arkana").SetVal(map[string]string{
		"bless":   encode(t, bless),
		"shield":  encode(t, shield),
		"broken":  "{not json",
		"renamed": encode(t, catalogue.NewBuilder("other", "Other").Build()),
		"bare":    `{"name":"Bare","category":"utility"}`,
	})

	cat, err := loader.Load(context.Background(), "arkana")
	require.NoError(t, err)
	assert.Equal(t, 3, cat.Len())

	def, ok := cat.Definition("bless")
	require.True(t, ok)
	assert.Equal(t, bless, def)

	def, ok = cat.Definition("shield")
	require.True(t, ok)
	assert.Equal(t, catalogue.Scene(), def.Duration)

	def, ok = cat.Definition("bare")
	require.True(t, ok)
	assert.Equal(t, "bare", def.ID)
	assert.False(t, def.Duration.IsStored())

	_, ok = cat.Definition("broken")
	assert.False(t, ok)
	_, ok = cat.Definition("other")
	assert.False(t, ok)
}

func TestLoader_LoadEmpty(t *testing.T) {
	loader, mock := newTestLoader(t)
	mock.ExpectHGetAll("catalogue:gorean").SetVal(map[string]string{})

	cat, err := loader.Load(context.Background(), "gorean")
	require.NoError(t, err)
	assert.Equal(t, 0, cat.Len())
}

func TestLoader_LoadErrors(t *testing.T) {
	loader, mock := newTestLoader(t)

	_, err := loader.Load(context.Background(), "")
	assert.True(t, engerr.IsInvalidArgument(err))

	mock.ExpectHGetAll("catalogue:arkana").SetErr(errors.New("connection refused"))
	_, err = loader.Load(context.Background(), "arkana")
	assert.ErrorContains(t, err, "connection refused")
}

func TestLoader_Store(t *testing.T) {
	loader, mock := newTestLoader(t)

	stun := catalogue.NewBuilder("stun", "Stun").
		WithDuration(catalogue.Turns(1)).
		Control("stun").
		Build()
	mend := catalogue.NewBuilder("mend", "Mend").
		WithTarget(catalogue.TargetSelf).
		Heal("1+Physical").
		Build()

	mock.ExpectHSet("catalogue:arkana", "stun", encode(t, stun), "mend", encode(t, mend)).SetVal(2)

	require.NoError(t, loader.Store(context.Background(), "arkana", stun, mend))
	require.NoError(t, loader.Store(context.Background(), "arkana"))

	err := loader.Store(context.Background(), "arkana", catalogue.Definition{Name: "No id"})
	assert.True(t, engerr.IsInvalidArgument(err))
}
