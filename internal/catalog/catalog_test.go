package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	items []string
	err   error
}

func (s stubProvider) FetchCatalog(context.Context) ([]string, error) {
	return s.items, s.err
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	items, err := Load(ctx, stubProvider{items: []string{"pikachu", "eevee"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"pikachu", "eevee"}, items)

	_, err = Load(ctx, stubProvider{err: errors.New("connection refused")})
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
	assert.ErrorContains(t, err, "connection refused")

	_, err = Load(ctx, stubProvider{items: []string{}})
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestEmbeddedProvider(t *testing.T) {
	p := NewEmbeddedProvider()

	items, err := Load(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, items, 151)
	assert.Equal(t, "bulbasaur", items[0])
	assert.Equal(t, "pikachu", items[24])
	assert.Equal(t, "mew", items[150])

	items[0] = "changed"
	again, err := p.FetchCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "bulbasaur", again[0], "callers must get their own copy")
}

func TestLabels(t *testing.T) {
	cases := []struct {
		item, label, champion string
	}{
		{item: "pikachu", label: "pikachu", champion: "PIKACHU"},
		{item: "mr-mime", label: "mr mime", champion: "MR MIME"},
		{item: "nidoran-f", label: "nidoran f", champion: "NIDORAN F"},
		{item: "tapu-koko-x", label: "tapu koko x", champion: "TAPU KOKO X"},
	}
	for _, tc := range cases {
		t.Run(tc.item, func(t *testing.T) {
			assert.Equal(t, tc.label, Label(tc.item))
			assert.Equal(t, tc.champion, ChampionLabel(tc.item))
		})
	}
}

func TestClassify(t *testing.T) {
	err := classify(&pgconn.PgError{Code: pgUndefinedTable, Message: "relation does not exist"})
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
	assert.ErrorContains(t, err, "catalog_items missing")

	err = classify(errors.New("boom"))
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
	assert.ErrorContains(t, err, "boom")
}
