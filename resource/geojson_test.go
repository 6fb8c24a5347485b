// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package resource

import (
	"math/rand"
	"os"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/tabresgo/frame"
)

// pointsFrame builds a frame with a geometry column of random points plus
// one column per scalar kind.
func pointsFrame(t *testing.T, n int) *frame.Frame {
	t.Helper()
	rng := rand.New(rand.NewSource(7)) //nolint:gosec
	geoms := make([]orb.Geometry, n)
	vals := make([]float64, n)
	counts := make([]int64, n)
	for i := 0; i < n; i++ {
		geoms[i] = orb.Point{rng.Float64() * 10, rng.Float64() * 10}
		vals[i] = rng.Float64()
		counts[i] = int64(i)
	}
	f, err := frame.New(
		frame.Geometries("geometry", geoms),
		frame.Float64s("value", vals),
		frame.Int64s("count", counts),
	)
	require.NoError(t, err)
	return f
}

func TestGeoJSON_SaveLoad(t *testing.T) {
	path := tmpfile(t, "points.geojson")
	df := pointsFrame(t, 50)

	target := NewGeoJSON(path)
	require.NoError(t, target.Save(df))

	loaded, err := NewGeoJSON(path).Load()
	require.NoError(t, err)
	assert.True(t, frame.Equal(df, loaded, eps))
}

func TestGeoJSON_EmptyFrameWritesFeatureArray(t *testing.T) {
	path := tmpfile(t, "empty.geojson")
	df := pointsFrame(t, 0)

	require.NoError(t, NewGeoJSON(path).Save(df))

	// "features" must be an array, not null, for foreign readers.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"features":[]`)

	loaded, err := NewGeoJSON(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Rows())
	assert.Equal(t, df.Columns(), loaded.Columns())
}

func TestGeoJSON_RequiresGeometryColumn(t *testing.T) {
	err := NewGeoJSON(tmpfile(t, "plain.geojson")).Save(mixedFrame(t))
	assert.ErrorContains(t, err, "geometry column")
}

func TestGeoJSON_RejectsTwoGeometryColumns(t *testing.T) {
	df, err := frame.New(
		frame.Geometries("a", []orb.Geometry{orb.Point{0, 0}}),
		frame.Geometries("b", []orb.Geometry{orb.Point{1, 1}}),
	)
	require.NoError(t, err)

	err = NewGeoJSON(tmpfile(t, "twice.geojson")).Save(df)
	assert.ErrorContains(t, err, "more than one geometry column")
}

func TestGeoJSON_IndexIsLost(t *testing.T) {
	path := tmpfile(t, "points.geojson")
	df, err := pointsFrame(t, 5).WithIndex(frame.Int64s("row", []int64{5, 6, 7, 8, 9}))
	require.NoError(t, err)

	require.NoError(t, NewGeoJSON(path).Save(df))

	loaded, err := NewGeoJSON(path).Load()
	require.NoError(t, err)
	assert.Nil(t, loaded.Index())
}

func TestGeoJSON_ForeignFileLoads(t *testing.T) {
	// A FeatureCollection written by another tool: no "columns" member, so
	// properties come back sorted and numbers load as float64.
	doc := `{"type":"FeatureCollection","features":[
		{"type":"Feature","geometry":{"type":"Point","coordinates":[1,2]},"properties":{"b":1,"a":"x"}},
		{"type":"Feature","geometry":{"type":"Point","coordinates":[3,4]},"properties":{"b":2,"a":"y"}}]}`
	path := tmpfile(t, "foreign.geojson")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	loaded, err := NewGeoJSON(path).Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"geometry", "a", "b"}, loaded.Columns())
	b, _ := loaded.Column("b")
	assert.Equal(t, frame.Float64, b.Kind())
	assert.Equal(t, []float64{1, 2}, b.Float64s())
}

func TestGeoJSON_LoadMissingIsUnavailable(t *testing.T) {
	_, err := NewGeoJSON(tmpfile(t, "absent.geojson")).Load()
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGeoJSON_LoadCorruptIsUnavailable(t *testing.T) {
	path := tmpfile(t, "corrupt.geojson")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewGeoJSON(path).Load()
	assert.ErrorIs(t, err, ErrUnavailable)
}
