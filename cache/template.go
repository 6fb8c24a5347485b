// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package cache

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
)

// Binding is the name→value context a path template resolves against. For a
// method-shaped computation, expose the receiver under "self" so templates
// can reference its fields ("{self.Region}").
type Binding map[string]any

var placeholderRe = regexp.MustCompile(`\{([^{}]+)\}`)

// Expand substitutes every {name} or {name.Field} placeholder in tmpl with
// the bound value, formatted with %v. A placeholder that references a name
// or field absent from the binding is an error; names bound but never
// referenced are fine.
func (b Binding) Expand(tmpl string) (string, error) {
	var firstErr error
	out := placeholderRe.ReplaceAllStringFunc(tmpl, func(m string) string {
		expr := m[1 : len(m)-1]
		v, err := b.lookup(expr)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return m
		}
		return fmt.Sprintf("%v", v)
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}

func (b Binding) lookup(expr string) (any, error) {
	parts := strings.Split(expr, ".")
	cur, ok := b[parts[0]]
	if !ok {
		return nil, fmt.Errorf("path template references %q, which is not bound", parts[0])
	}
	for _, part := range parts[1:] {
		next, err := field(cur, part)
		if err != nil {
			return nil, fmt.Errorf("path template %q: %w", expr, err)
		}
		cur = next
	}
	return cur, nil
}

// field resolves one segment of a dotted placeholder against v: a key of a
// string-keyed map or an exported struct field, through pointers.
func field(v any, name string) (any, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("cannot resolve %q on nil pointer", name)
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("cannot resolve %q on map with non-string keys", name)
		}
		mv := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !mv.IsValid() {
			return nil, fmt.Errorf("no key %q", name)
		}
		return mv.Interface(), nil
	case reflect.Struct:
		fv := rv.FieldByName(name)
		if !fv.IsValid() || !fv.CanInterface() {
			return nil, fmt.Errorf("no exported field %q on %s", name, rv.Type())
		}
		return fv.Interface(), nil
	}
	return nil, fmt.Errorf("cannot resolve %q on %s", name, rv.Kind())
}
