// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package frame

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cols    []*Series
		wantErr string
	}{
		{
			name: "mismatched lengths",
			cols: []*Series{
				Float64s("a", []float64{1, 2}),
				Float64s("b", []float64{1}),
			},
			wantErr: "rows",
		},
		{
			name: "duplicate names",
			cols: []*Series{
				Float64s("a", []float64{1}),
				Int64s("a", []int64{1}),
			},
			wantErr: "duplicate",
		},
		{
			name: "empty name",
			cols: []*Series{
				Float64s("", []float64{1}),
			},
			wantErr: "no name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cols...)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestFrame_Shape(t *testing.T) {
	f, err := New(
		Float64s("x", []float64{1.5, 2.5, 3.5}),
		Strings("name", []string{"a", "b", "c"}),
		Bools("ok", []bool{true, false, true}),
	)
	require.NoError(t, err)

	assert.Equal(t, 3, f.Rows())
	assert.Equal(t, 3, f.Width())
	assert.Equal(t, []string{"x", "name", "ok"}, f.Columns())

	s, ok := f.Column("name")
	require.True(t, ok)
	assert.Equal(t, String, s.Kind())
	assert.Equal(t, []string{"a", "b", "c"}, s.Strings())

	_, ok = f.Column("missing")
	assert.False(t, ok)
}

func TestFrame_Index(t *testing.T) {
	f, err := New(Float64s("x", []float64{1, 2}))
	require.NoError(t, err)
	assert.Nil(t, f.Index())

	idx, err := f.WithIndex(Int64s("id", []int64{10, 20}))
	require.NoError(t, err)
	require.NotNil(t, idx.Index())
	assert.Equal(t, "id", idx.Index().Name())

	// The original frame is untouched.
	assert.Nil(t, f.Index())

	dropped := idx.DropIndex()
	assert.Nil(t, dropped.Index())
	assert.NotNil(t, idx.Index())

	_, err = f.WithIndex(Int64s("id", []int64{10}))
	assert.Error(t, err)
}

func TestFrame_Head(t *testing.T) {
	f, err := New(Int64s("n", []int64{1, 2, 3, 4, 5}))
	require.NoError(t, err)

	h := f.Head(2)
	assert.Equal(t, 2, h.Rows())
	s, _ := h.Column("n")
	assert.Equal(t, []int64{1, 2}, s.Int64s())

	// Asking for more rows than exist is a no-op.
	assert.Equal(t, 5, f.Head(100).Rows())
}

func TestEqual_Tolerance(t *testing.T) {
	a, _ := New(Float64s("x", []float64{1.0}))
	b, _ := New(Float64s("x", []float64{1.0 + 1e-13}))
	c, _ := New(Float64s("x", []float64{1.0 + 1e-9}))

	assert.True(t, Equal(a, b, 1e-12))
	assert.False(t, Equal(a, c, 1e-12))
}

func TestEqual_Geometry(t *testing.T) {
	g1 := []orb.Geometry{orb.Point{1, 2}, orb.Point{3, 4}}
	g2 := []orb.Geometry{orb.Point{1, 2}, orb.Point{3, 4}}
	g3 := []orb.Geometry{orb.Point{1, 2}, orb.Point{3, 5}}

	a, _ := New(Geometries("geom", g1))
	b, _ := New(Geometries("geom", g2))
	c, _ := New(Geometries("geom", g3))

	assert.True(t, Equal(a, b, 0))
	assert.False(t, Equal(a, c, 0))
}

func TestEqual_IndexMatters(t *testing.T) {
	base, _ := New(Float64s("x", []float64{1}))
	indexed, _ := base.WithIndex(Strings("id", []string{"r1"}))

	assert.False(t, Equal(base, indexed, 0))
	assert.True(t, Equal(indexed, indexed, 0))
}

func TestSeries_Format(t *testing.T) {
	s := Float64s("x", []float64{0.1})
	assert.Equal(t, "0.1", s.Format(0))

	g := Geometries("geom", []orb.Geometry{orb.Point{1, 2}})
	assert.Equal(t, "POINT(1 2)", g.Format(0))
}

func TestSeries_ImmutableConstruction(t *testing.T) {
	in := []float64{1, 2, 3}
	s := Float64s("x", in)
	in[0] = 99
	assert.Equal(t, 1.0, s.Float64s()[0])
}
