// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package resource

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/tabresgo/frame"
)

func TestColumnar_SaveLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "archive")
	df := randFrame(t, 100)

	target := NewColumnar(dir)
	require.NoError(t, target.Save(df))

	loaded, err := NewColumnar(dir).Load()
	require.NoError(t, err)
	assert.True(t, frame.Equal(df, loaded, eps))
}

func TestColumnar_MixedKinds(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "archive")
	df := mixedFrame(t)

	require.NoError(t, NewColumnar(dir).Save(df))

	loaded, err := NewColumnar(dir).Load()
	require.NoError(t, err)
	assert.True(t, frame.Equal(df, loaded, eps))
}

func TestColumnar_LayoutOnDisk(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "archive")
	require.NoError(t, NewColumnar(dir).Save(mixedFrame(t)))

	for _, name := range []string{"meta.yaml", "score.arrow", "count.arrow", "label.arrow", "active.arrow"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestColumnar_RejectsBadColumnName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "archive")
	df, err := frame.New(frame.Float64s("not a name", []float64{1}))
	require.NoError(t, err)

	err = NewColumnar(dir).Save(df)
	require.ErrorIs(t, err, ErrColumnName)

	// Nothing may have been written.
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestColumnar_RejectsGeometry(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "archive")
	df, err := frame.New(frame.Geometries("geom", []orb.Geometry{orb.Point{0, 0}}))
	require.NoError(t, err)

	err = NewColumnar(dir).Save(df)
	assert.ErrorContains(t, err, "not supported")
}

func TestColumnar_IndexIsLost(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "archive")
	df, err := mixedFrame(t).WithIndex(frame.Strings("id", []string{"a", "b", "c"}))
	require.NoError(t, err)

	require.NoError(t, NewColumnar(dir).Save(df))

	loaded, err := NewColumnar(dir).Load()
	require.NoError(t, err)
	assert.Nil(t, loaded.Index())
}

func TestColumnar_LoadMissingIsUnavailable(t *testing.T) {
	_, err := NewColumnar(filepath.Join(t.TempDir(), "absent")).Load()
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestColumnar_LoadCorruptMetaIsUnavailable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "meta.yaml"), []byte("{{not yaml"), 0o600))

	_, err := NewColumnar(dir).Load()
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestColumnar_LoadMissingColumnFileIsUnavailable(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "archive")
	require.NoError(t, NewColumnar(dir).Save(mixedFrame(t)))
	require.NoError(t, os.Remove(filepath.Join(dir, "score.arrow")))

	_, err := NewColumnar(dir).Load()
	assert.ErrorIs(t, err, ErrUnavailable)
}
