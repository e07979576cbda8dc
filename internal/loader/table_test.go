//-------------------------------------------------------------------------
//
// pgEdge Olist Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package loader

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/xxh3"

	"github.com/pgEdge/pgedge-olist/internal/olist"
	"github.com/pgEdge/pgedge-olist/internal/testutil"
)

func mustTable(t *testing.T, name string) olist.Table {
	t.Helper()
	tbl, ok := olist.Lookup(name)
	require.True(t, ok, "unknown table %s", name)
	return tbl
}

func TestLoadTableSubmitsQualifyingLines(t *testing.T) {
	ctx := context.Background()
	st := testutil.NewSQLiteStore(t)
	dir := t.TempDir()

	testutil.WriteCSV(t, dir, "product_category_name_translation.csv",
		"product_category_name,product_category_name_english",
		"perfumaria,perfumery",
		"artes,art\r",
		"short",
		"",
		`"moveis,decoracao",furniture_decor`,
		"pet_shop,pet_shop,extra",
	)

	res, err := LoadTable(ctx, st, mustTable(t, olist.Categories), dir, 2, nil)
	require.NoError(t, err)

	assert.Equal(t, olist.Categories, res.Table)
	assert.Equal(t, 1, res.Phase)
	assert.Equal(t, int64(4), res.Rows)
	assert.Equal(t, int64(2), res.Skipped)
	assert.NotEmpty(t, res.Checksum)
	assert.Equal(t, int64(4), testutil.CountRows(t, st, olist.Categories))

	var english string
	require.NoError(t, st.QueryRow(ctx,
		"SELECT category_name_english FROM CATEGORIES WHERE category_name_portuguese = ?", "artes").Scan(&english))
	assert.Equal(t, "art", english, "trailing carriage return is stripped")

	require.NoError(t, st.QueryRow(ctx,
		"SELECT category_name_english FROM CATEGORIES WHERE category_name_portuguese = ?", "moveis,decoracao").Scan(&english))
	assert.Equal(t, "furniture_decor", english)

	require.NoError(t, st.QueryRow(ctx,
		"SELECT category_name_english FROM CATEGORIES WHERE category_name_portuguese = ?", "pet_shop").Scan(&english))
	assert.Equal(t, "pet_shop", english, "fields beyond the column count are ignored")
}

func TestLoadTableNormalizesNulls(t *testing.T) {
	ctx := context.Background()
	st := testutil.NewSQLiteStore(t)
	dir := t.TempDir()

	testutil.WriteCSV(t, dir, "olist_products_dataset.csv",
		"product_id,product_category_name,product_name_lenght,product_description_lenght,product_photos_qty,product_weight_g,product_length_cm,product_height_cm,product_width_cm",
		"p1,NULL,40,287,1,225,16,10,14",
		"p2,  ,40,287,1,225,16,10,14",
		"p3,null,40,287,1,225,16,10,14",
		"p4, perfumaria ,40,287,1,225,16,10,14",
	)

	res, err := LoadTable(ctx, st, mustTable(t, olist.Products), dir, 100, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.Rows)

	var nulls int64
	require.NoError(t, st.QueryRow(ctx,
		"SELECT COUNT(*) FROM PRODUCTS WHERE category_name_portuguese IS NULL").Scan(&nulls))
	assert.Equal(t, int64(3), nulls)

	var category sql.NullString
	require.NoError(t, st.QueryRow(ctx,
		"SELECT category_name_portuguese FROM PRODUCTS WHERE product_id = ?", "p4").Scan(&category))
	assert.Equal(t, "perfumaria", category.String, "values are trimmed")
}

func TestLoadTableStaticStates(t *testing.T) {
	ctx := context.Background()
	st := testutil.NewSQLiteStore(t)

	res, err := LoadTable(ctx, st, mustTable(t, olist.States), "", DefaultBatchSize, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(27), res.Rows)
	assert.Empty(t, res.Checksum)

	for code, region := range map[string]string{"AC": "North", "SP": "Southeast", "DF": "Central-West"} {
		var got string
		require.NoError(t, st.QueryRow(ctx, "SELECT region FROM STATES WHERE state_code = ?", code).Scan(&got))
		assert.Equal(t, region, got, code)
	}
}

func TestLoadTableMissingFile(t *testing.T) {
	st := testutil.NewSQLiteStore(t)

	_, err := LoadTable(context.Background(), st, mustTable(t, olist.Sellers), t.TempDir(), 10, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadTableHeaderOnly(t *testing.T) {
	st := testutil.NewSQLiteStore(t)
	dir := t.TempDir()
	testutil.WriteCSV(t, dir, "olist_sellers_dataset.csv",
		"seller_id,seller_zip_code_prefix,seller_city,seller_state")

	res, err := LoadTable(context.Background(), st, mustTable(t, olist.Sellers), dir, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Rows)
	assert.Equal(t, int64(0), res.Skipped)
}

func TestLoadTableEmptyFile(t *testing.T) {
	st := testutil.NewSQLiteStore(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "olist_sellers_dataset.csv"), nil, 0o644))

	res, err := LoadTable(context.Background(), st, mustTable(t, olist.Sellers), dir, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Rows)
}

func TestLoadTableChecksum(t *testing.T) {
	st := testutil.NewSQLiteStore(t)
	dir := t.TempDir()
	path := testutil.WriteCSV(t, dir, "olist_sellers_dataset.csv",
		"seller_id,seller_zip_code_prefix,seller_city,seller_state",
		"s1,01037,sao paulo,SP",
		"s2,20020,rio de janeiro,RJ",
	)
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	res, err := LoadTable(context.Background(), st, mustTable(t, olist.Sellers), dir, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%016x", xxh3.Hash(data)), res.Checksum)
}

func TestLoadTableReportsCompletion(t *testing.T) {
	st := testutil.NewSQLiteStore(t)
	dir := writeFixtures(t)

	var last Progress
	res, err := LoadTable(context.Background(), st, mustTable(t, olist.Geolocation), dir, 2, func(p Progress) { last = p })
	require.NoError(t, err)

	assert.Equal(t, int64(4), res.Rows)
	assert.Equal(t, int64(1), res.Skipped)
	assert.True(t, last.Done)
	assert.Equal(t, int64(4), last.Rows)
	assert.Equal(t, 2, last.Batches)
}
