// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package cache memoizes frame-producing computations through resources:
// each call first tries to load every declared resource and only falls back
// to computing (and persisting) when a load reports the resource as
// unavailable. Resource paths may be templates resolved against a Binding
// at call time.
package cache

import (
	"errors"
	"fmt"
	"os"

	"github.com/apex/log"

	"github.com/staranto/tabresgo/frame"
	"github.com/staranto/tabresgo/resource"
)

// Func is the multi-resource computation shape: one frame per declared
// resource, in declared order.
type Func func(b Binding) ([]*frame.Frame, error)

// OneFunc is the single-resource computation shape.
type OneFunc func(b Binding) (*frame.Frame, error)

// Cache pairs declared resources with the load-then-compute policy.
//
// The cache key is whatever the resolved paths say it is: a template that
// under-specifies the true inputs will happily serve a stale frame saved for
// a different call. Choose placeholders that cover everything the
// computation depends on.
type Cache struct {
	resources []resource.Resource
}

// New declares the resources a computation persists to. Paths may contain
// {name} placeholders resolved against the Binding of each call.
func New(resources ...resource.Resource) *Cache {
	return &Cache{resources: resources}
}

// enabled mirrors the usual opt-out: TABRES_CACHE=0 or false disables both
// the load attempt and the save, so every call computes.
func enabled() bool {
	v, _ := os.LookupEnv("TABRES_CACHE")
	return v == "" || (v != "0" && v != "false")
}

// resolve expands every declared resource's path template against b. The
// declared instances are never touched; resolution always derives new ones.
func (c *Cache) resolve(b Binding) ([]resource.Resource, error) {
	resolved := make([]resource.Resource, 0, len(c.resources))
	for _, r := range c.resources {
		path, err := b.Expand(r.Path())
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, r.WithPath(path))
	}
	return resolved, nil
}

// Through returns the cached frames for b if every declared resource loads,
// and otherwise invokes compute, saves its results one-to-one onto the
// resolved resources, and returns them.
//
// Only load failures wrapping resource.ErrUnavailable count as a miss;
// template-resolution errors, compute errors, and save errors all propagate.
// compute must return exactly one frame per declared resource.
func (c *Cache) Through(b Binding, compute func() ([]*frame.Frame, error)) ([]*frame.Frame, error) {
	resolved, err := c.resolve(b)
	if err != nil {
		return nil, err
	}

	if enabled() {
		frames, err := loadAll(resolved)
		if err == nil {
			log.Debugf("loaded %d resource(s) from cache", len(frames))
			return frames, nil
		}
		if !errors.Is(err, resource.ErrUnavailable) {
			return nil, err
		}
		log.Infof("cannot load from cache, computing: %v", err)
	}

	frames, err := compute()
	if err != nil {
		return nil, err
	}
	if len(frames) != len(resolved) {
		return nil, fmt.Errorf("computation returned %d frame(s) for %d declared resource(s)", len(frames), len(resolved))
	}

	if enabled() {
		for i, r := range resolved {
			if err := r.Save(frames[i]); err != nil {
				return nil, err
			}
		}
	}
	return frames, nil
}

// ThroughOne is Through for the single-resource case, unwrapping the
// singleton on both the hit and the compute path.
func (c *Cache) ThroughOne(b Binding, compute func() (*frame.Frame, error)) (*frame.Frame, error) {
	if len(c.resources) != 1 {
		return nil, fmt.Errorf("ThroughOne requires exactly one declared resource, have %d", len(c.resources))
	}
	frames, err := c.Through(b, func() ([]*frame.Frame, error) {
		f, err := compute()
		if err != nil {
			return nil, err
		}
		return []*frame.Frame{f}, nil
	})
	if err != nil {
		return nil, err
	}
	return frames[0], nil
}

// Wrap is the decorator form of Through: it returns a function with the
// same calling convention as fn that consults the cache first.
func (c *Cache) Wrap(fn Func) Func {
	return func(b Binding) ([]*frame.Frame, error) {
		return c.Through(b, func() ([]*frame.Frame, error) { return fn(b) })
	}
}

// WrapOne is the decorator form of ThroughOne.
func (c *Cache) WrapOne(fn OneFunc) OneFunc {
	return func(b Binding) (*frame.Frame, error) {
		return c.ThroughOne(b, func() (*frame.Frame, error) { return fn(b) })
	}
}

func loadAll(resources []resource.Resource) ([]*frame.Frame, error) {
	frames := make([]*frame.Frame, 0, len(resources))
	for _, r := range resources {
		f, err := r.Load()
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
	return frames, nil
}
