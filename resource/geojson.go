// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package resource

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/staranto/tabresgo/frame"
)

// GeoJSON persists a frame as a GeoJSON FeatureCollection, one feature per
// row. Exactly one geometry column is required; the remaining columns become
// feature properties. Column order and kinds are carried in a "columns"
// foreign member so our own files round-trip exactly; files written by other
// tools load with sorted property names and JSON's native types. A named row
// index is dropped with a warning.
type GeoJSON struct {
	path string
}

func NewGeoJSON(path string) *GeoJSON {
	return &GeoJSON{path: path}
}

func (r *GeoJSON) Path() string { return r.path }

func (r *GeoJSON) WithPath(path string) Resource {
	return NewGeoJSON(path)
}

type geoColumn struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// geoFile is a FeatureCollection plus the "columns" foreign member. Foreign
// members at the collection level are valid GeoJSON (RFC 7946 §6.1).
type geoFile struct {
	Type     string             `json:"type"`
	Columns  []geoColumn        `json:"columns,omitempty"`
	Features []*geojson.Feature `json:"features"`
}

func (r *GeoJSON) Load() (*frame.Frame, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, unavailable("load", r.path, err)
	}

	var gf geoFile
	if err := json.Unmarshal(data, &gf); err != nil {
		return nil, unavailable("load", r.path, err)
	}

	cols := gf.Columns
	if cols == nil {
		cols = inferGeoColumns(gf.Features)
	}

	series := make([]*frame.Series, 0, len(cols))
	for _, c := range cols {
		kind, err := frame.ParseKind(c.Kind)
		if err != nil {
			return nil, unavailable("load", r.path, err)
		}
		s, err := buildGeoSeries(c.Name, kind, gf.Features)
		if err != nil {
			return nil, unavailable("load", r.path, err)
		}
		series = append(series, s)
	}

	out, err := frame.New(series...)
	if err != nil {
		return nil, unavailable("load", r.path, err)
	}
	return out, nil
}

func (r *GeoJSON) Save(f *frame.Frame) error {
	f = dropIndex(f, r.path)

	geomCol := ""
	for _, s := range f.Cols() {
		if s.Kind() == frame.Geometry {
			if geomCol != "" {
				return fmt.Errorf("save %s: more than one geometry column (%q, %q)", r.path, geomCol, s.Name())
			}
			geomCol = s.Name()
		}
	}
	if geomCol == "" {
		return fmt.Errorf("save %s: a geojson resource requires a geometry column", r.path)
	}

	// "features" must be a JSON array even with no rows (RFC 7946 §3.3).
	gf := geoFile{Type: "FeatureCollection", Features: []*geojson.Feature{}}
	for _, s := range f.Cols() {
		gf.Columns = append(gf.Columns, geoColumn{Name: s.Name(), Kind: s.Kind().String()})
	}

	geoms, _ := f.Column(geomCol)
	for i := 0; i < f.Rows(); i++ {
		feat := geojson.NewFeature(geoms.Geometries()[i])
		for _, s := range f.Cols() {
			if s.Name() == geomCol {
				continue
			}
			feat.Properties[s.Name()] = s.Value(i)
		}
		gf.Features = append(gf.Features, feat)
	}

	data, err := json.Marshal(gf)
	if err != nil {
		return fmt.Errorf("save %s: %w", r.path, err)
	}

	path, err := ensureDir(r.path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:mnd
		return fmt.Errorf("save %s: %w", r.path, err)
	}
	return nil
}

// inferGeoColumns derives a schema from the first feature when the file was
// not written by us. Property order is not recoverable from JSON, so names
// sort alphabetically and numbers load as float64.
func inferGeoColumns(features []*geojson.Feature) []geoColumn {
	cols := []geoColumn{{Name: "geometry", Kind: frame.Geometry.String()}}
	if len(features) == 0 {
		return cols
	}
	names := make([]string, 0, len(features[0].Properties))
	for name := range features[0].Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		kind := frame.String
		switch features[0].Properties[name].(type) {
		case float64:
			kind = frame.Float64
		case bool:
			kind = frame.Bool
		}
		cols = append(cols, geoColumn{Name: name, Kind: kind.String()})
	}
	return cols
}

func buildGeoSeries(name string, kind frame.Kind, features []*geojson.Feature) (*frame.Series, error) {
	n := len(features)
	switch kind {
	case frame.Geometry:
		geoms := make([]orb.Geometry, 0, n)
		for _, feat := range features {
			geoms = append(geoms, feat.Geometry)
		}
		return frame.Geometries(name, geoms), nil
	case frame.Float64:
		vals := make([]float64, 0, n)
		for _, feat := range features {
			v, ok := feat.Properties[name].(float64)
			if !ok {
				return nil, fmt.Errorf("property %q is not a number", name)
			}
			vals = append(vals, v)
		}
		return frame.Float64s(name, vals), nil
	case frame.Int64:
		vals := make([]int64, 0, n)
		for _, feat := range features {
			// encoding/json decodes all numbers as float64.
			v, ok := feat.Properties[name].(float64)
			if !ok {
				return nil, fmt.Errorf("property %q is not a number", name)
			}
			vals = append(vals, int64(v))
		}
		return frame.Int64s(name, vals), nil
	case frame.Bool:
		vals := make([]bool, 0, n)
		for _, feat := range features {
			v, ok := feat.Properties[name].(bool)
			if !ok {
				return nil, fmt.Errorf("property %q is not a bool", name)
			}
			vals = append(vals, v)
		}
		return frame.Bools(name, vals), nil
	case frame.String:
		vals := make([]string, 0, n)
		for _, feat := range features {
			v, ok := feat.Properties[name].(string)
			if !ok {
				return nil, fmt.Errorf("property %q is not a string", name)
			}
			vals = append(vals, v)
		}
		return frame.Strings(name, vals), nil
	}
	return nil, fmt.Errorf("unknown column kind %v", kind)
}
