// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package resource

import (
	"os"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/tabresgo/frame"
)

func TestBinary_SaveLoad(t *testing.T) {
	path := tmpfile(t, "frame.bin")
	df := randFrame(t, 100)

	target := NewBinary(path)
	require.NoError(t, target.Save(df))

	loaded, err := target.Load()
	require.NoError(t, err)
	assert.True(t, frame.Equal(df, loaded, eps))
}

func TestBinary_OneSavesAnotherLoads(t *testing.T) {
	path := tmpfile(t, "frame.bin")
	df := mixedFrame(t)

	one := NewBinary(path)
	another := NewBinary(path)
	require.NoError(t, one.Save(df))

	loaded, err := another.Load()
	require.NoError(t, err)
	assert.True(t, frame.Equal(df, loaded, eps))
}

func TestBinary_PreservesIndex(t *testing.T) {
	path := tmpfile(t, "frame.bin")
	df, err := mixedFrame(t).WithIndex(frame.Strings("id", []string{"a", "b", "c"}))
	require.NoError(t, err)

	target := NewBinary(path)
	require.NoError(t, target.Save(df))

	loaded, err := target.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded.Index())
	assert.Equal(t, "id", loaded.Index().Name())
	assert.True(t, frame.Equal(df, loaded, eps))
}

func TestBinary_PreservesGeometry(t *testing.T) {
	path := tmpfile(t, "frame.bin")
	df, err := frame.New(
		frame.Geometries("geom", []orb.Geometry{orb.Point{1, 2}, orb.Point{3, 4}}),
		frame.Float64s("v", []float64{0.5, 1.5}),
	)
	require.NoError(t, err)

	target := NewBinary(path)
	require.NoError(t, target.Save(df))

	loaded, err := target.Load()
	require.NoError(t, err)
	assert.True(t, frame.Equal(df, loaded, eps))
}

func TestBinary_LoadMissingIsUnavailable(t *testing.T) {
	_, err := NewBinary(tmpfile(t, "absent.bin")).Load()
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestBinary_LoadCorruptIsUnavailable(t *testing.T) {
	path := tmpfile(t, "garbage.bin")
	require.NoError(t, os.WriteFile(path, []byte("not msgpack at all"), 0o600))

	_, err := NewBinary(path).Load()
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestBinary_SaveCreatesParentDirs(t *testing.T) {
	path := tmpfile(t, "deep/nested/frame.bin")
	df := mixedFrame(t)

	require.NoError(t, NewBinary(path).Save(df))

	loaded, err := NewBinary(path).Load()
	require.NoError(t, err)
	assert.True(t, frame.Equal(df, loaded, eps))
}
