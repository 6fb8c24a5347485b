// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	yaml "gopkg.in/yaml.v2"

	"github.com/staranto/tabresgo/frame"
)

// Text writes f to w as a borderless table with a header row.
func Text(w io.Writer, f *frame.Frame) error {
	var rows [][]string
	for i := 0; i < f.Rows(); i++ {
		row := make([]string, 0, f.Width())
		for _, s := range f.Cols() {
			row = append(row, s.Format(i))
		}
		rows = append(rows, row)
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Align(lipgloss.Left)
			if col > 0 {
				style = style.PaddingLeft(2) //nolint:mnd
			}
			return style
		}).
		Rows(rows...)

	// https://github.com/charmbracelet/lipgloss/issues/261
	t = t.Headers(f.Columns()...).BorderHeader(false)

	_, err := fmt.Fprintln(w, t)
	return err
}

// JSON renders f as an array of row objects. Keys are emitted in column
// order, which encoding/json would not preserve, so the document is built
// directly; every key and value still goes through json.Marshal.
func JSON(f *frame.Frame) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i := 0; i < f.Rows(); i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, s := range f.Cols() {
			if j > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(s.Name())
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')

			var cell any = s.Value(i)
			if s.Kind() == frame.Geometry {
				cell = s.Format(i) // WKT
			}
			val, err := json.Marshal(cell)
			if err != nil {
				return nil, err
			}
			buf.Write(val)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// YAML renders f as a list of row maps.
func YAML(f *frame.Frame) ([]byte, error) {
	rows := make([]map[string]any, 0, f.Rows())
	for i := 0; i < f.Rows(); i++ {
		row := make(map[string]any, f.Width())
		for _, s := range f.Cols() {
			if s.Kind() == frame.Geometry {
				row[s.Name()] = s.Format(i)
				continue
			}
			row[s.Name()] = s.Value(i)
		}
		rows = append(rows, row)
	}
	return yaml.Marshal(rows)
}

// Query applies a gjson path to the JSON rendering.
func Query(doc []byte, path string) (string, error) {
	res := gjson.GetBytes(doc, path)
	if !res.Exists() {
		return "", fmt.Errorf("query %q matched nothing", path)
	}
	return res.String(), nil
}
