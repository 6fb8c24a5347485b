// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package resource

import (
	"math/rand"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/staranto/tabresgo/frame"
)

const eps = 1e-12

// randFrame mirrors the shape used throughout these tests: n rows of random
// floats across five columns named "c0".."c4".
func randFrame(t *testing.T, n int) *frame.Frame {
	t.Helper()
	rng := rand.New(rand.NewSource(42)) //nolint:gosec
	cols := make([]*frame.Series, 0, 5)
	for c := 0; c < 5; c++ {
		vals := make([]float64, n)
		for i := range vals {
			vals[i] = rng.Float64()
		}
		cols = append(cols, frame.Float64s("c"+strconv.Itoa(c), vals))
	}
	f, err := frame.New(cols...)
	require.NoError(t, err)
	return f
}

// mixedFrame exercises every scalar kind.
func mixedFrame(t *testing.T) *frame.Frame {
	t.Helper()
	f, err := frame.New(
		frame.Float64s("score", []float64{0.25, 1.75, -3.5}),
		frame.Int64s("count", []int64{1, 2, 3}),
		frame.Strings("label", []string{"red", "green", "blue"}),
		frame.Bools("active", []bool{true, false, true}),
	)
	require.NoError(t, err)
	return f
}

func tmpfile(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}
