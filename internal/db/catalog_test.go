package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"kisan/internal/model"
)

func openTestCatalog(t *testing.T) *sql.DB {
	t.Helper()
	database, err := Open(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestListPricesReturnsSeededTable(t *testing.T) {
	c := openTestCatalog(t)

	prices, err := ListPrices(context.Background(), c)
	require.NoError(t, err)
	require.Equal(t, DefaultPrices, prices)
}

func TestListSchemesFiltersByCategory(t *testing.T) {
	c := openTestCatalog(t)
	ctx := context.Background()

	all, err := ListSchemes(ctx, c, model.CategoryAll)
	require.NoError(t, err)
	require.Len(t, all, len(DefaultSchemes))
	require.Equal(t, DefaultSchemes, all)

	financial, err := ListSchemes(ctx, c, model.CategoryFinancial)
	require.NoError(t, err)
	require.Len(t, financial, 2)
	require.Equal(t, "PM-KISAN", financial[0].Name)
	require.Equal(t, "KCC Loan", financial[1].Name)

	for _, cat := range model.SchemeCategories {
		got, err := ListSchemes(ctx, c, cat)
		require.NoError(t, err)
		require.Equal(t, model.FilterSchemes(DefaultSchemes, cat), got, "category %s", cat)
	}
}

func TestSeedLeavesExistingCatalogAlone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	first, err := Open(path)
	require.NoError(t, err)
	_, err = first.Exec(`UPDATE crop_prices SET price = 99 WHERE name = 'Tomato'`)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	prices, err := ListPrices(context.Background(), second)
	require.NoError(t, err)
	require.Len(t, prices, len(DefaultPrices))
	require.Equal(t, 99, prices[0].Price)
}
