package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meur/unlockforge/internal/models"
	"github.com/meur/unlockforge/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()

	store, err := storage.New(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBulkCreateKeepsOrderAndPoints(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openStore(t)

	records := []models.RawItem{
		{Name: "Item 12", Points: models.Points(`4`), Expansion: "Core", Image: "img/12.png", XWS: "i12"},
		{Name: "Item 3", Points: models.PointsOf("*"), Expansion: "Wave 2", Image: "img/3.png", XWS: "i3"},
		{Name: "Shield", Expansion: "Core"},
	}
	require.NoError(t, store.BulkCreateRawItems(ctx, records))

	got, err := store.GetRawItems(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "Item 12", got[0].Name)
	require.Equal(t, "4", got[0].Points.String())
	require.Equal(t, "*", got[1].Points.String())
	require.Equal(t, "Wave 2", got[1].Expansion)
	require.Empty(t, got[2].Points.String())

	n, err := store.CountRawItems(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

func TestReopenKeepsRecords(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	store, err := storage.New(path)
	require.NoError(t, err)
	require.NoError(t, store.BulkCreateRawItems(ctx, []models.RawItem{{Name: "Item 1"}}))
	require.NoError(t, store.Close())

	reopened, err := storage.New(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetRawItems(ctx)
	require.NoError(t, err)
	require.Equal(t, []models.RawItem{{Name: "Item 1"}}, got)
}

func TestDeleteRawItems(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openStore(t)
	require.NoError(t, store.BulkCreateRawItems(ctx, []models.RawItem{{Name: "Item 1"}, {Name: "Item 2"}}))
	require.NoError(t, store.DeleteRawItems(ctx))

	n, err := store.CountRawItems(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	got, err := store.GetRawItems(ctx)
	require.NoError(t, err)
	require.Empty(t, got)
}
