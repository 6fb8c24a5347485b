// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/tabresgo/resource"
)

func TestParseSpec_ExplicitFormats(t *testing.T) {
	tests := []struct {
		spec string
		want any
	}{
		{"bin:data/a", &resource.Binary{}},
		{"csv:data/a", &resource.CSV{}},
		{"geojson:data/a", &resource.GeoJSON{}},
		{"col:data/a", &resource.Columnar{}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			res, err := ParseSpec(context.Background(), tt.spec, ',', "")
			require.NoError(t, err)
			assert.IsType(t, tt.want, res)
			assert.Equal(t, "data/a", res.Path())
		})
	}
}

func TestParseSpec_ExtensionInference(t *testing.T) {
	tests := []struct {
		spec string
		want any
	}{
		{"data/a.csv", &resource.CSV{}},
		{"data/a.bin", &resource.Binary{}},
		{"data/a.msgpack", &resource.Binary{}},
		{"data/a.geojson", &resource.GeoJSON{}},
		{"data/a.json", &resource.GeoJSON{}},
		{"data/archive", &resource.Columnar{}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			res, err := ParseSpec(context.Background(), tt.spec, ',', "")
			require.NoError(t, err)
			assert.IsType(t, tt.want, res)
		})
	}
}

func TestParseSpec_PrefixBeatsExtension(t *testing.T) {
	res, err := ParseSpec(context.Background(), "bin:data/a.csv", ',', "")
	require.NoError(t, err)
	assert.IsType(t, &resource.Binary{}, res)
}

func TestParseSpec_MalformedS3(t *testing.T) {
	_, err := ParseSpec(context.Background(), "csv:s3://bucket-only", ',', "")
	assert.ErrorContains(t, err, "s3://bucket/key")
}

func TestParseSpec_S3RejectsColumnar(t *testing.T) {
	_, err := ParseSpec(context.Background(), "col:s3://bucket/archive", ',', "")
	assert.ErrorContains(t, err, "cannot be mirrored")
}
