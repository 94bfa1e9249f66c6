package session

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/edubridge/edubridge/internal/schema"
)

// Item is one merged fan-out result. Origin names the school that produced
// it and is set only when more than one session took part, so single-school
// deployments look exactly like a direct call.
type Item[T any] struct {
	Origin string
	Value  T
}

// TenantError records one school's failure inside a fan-out.
type TenantError struct {
	School string
	Err    error
}

// FanOut runs op against the selected session, or against every registered
// session when school is empty and several are registered.
//
// Per-school calls run concurrently, but results are reassembled in login
// order so output is deterministic. One school failing does not abort the
// others: its error is collected as a TenantError and the call as a whole
// fails only when every school failed.
func FanOut[T any](ctx context.Context, reg *Registry, school string, op func(context.Context, schema.Session) ([]T, error)) ([]Item[T], []TenantError, error) {
	entries := reg.All()

	if school != "" || len(entries) <= 1 {
		sess, err := reg.Get(school)
		if err != nil {
			return nil, nil, err
		}
		values, err := op(ctx, sess)
		if err != nil {
			return nil, nil, err
		}
		items := make([]Item[T], len(values))
		for i, v := range values {
			items[i] = Item[T]{Value: v}
		}
		return items, nil, nil
	}

	results := make([][]T, len(entries))
	failures := make([]error, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	for i, e := range entries {
		g.Go(func() error {
			values, err := op(gctx, e.Session)
			if err != nil {
				// Collected per slot; never propagated through the
				// group, so the sibling calls keep running.
				failures[i] = err
				return nil
			}
			results[i] = values
			return nil
		})
	}
	_ = g.Wait()

	var (
		items []Item[T]
		terrs []TenantError
	)
	for i, e := range entries {
		if failures[i] != nil {
			terrs = append(terrs, TenantError{School: e.School, Err: failures[i]})
			continue
		}
		for _, v := range results[i] {
			items = append(items, Item[T]{Origin: e.School, Value: v})
		}
	}

	if len(terrs) == len(entries) {
		return nil, terrs, fmt.Errorf("all %d schools failed, first (%s): %w",
			len(entries), terrs[0].School, terrs[0].Err)
	}
	return items, terrs, nil
}

// Values strips the origin tags, applying tag to copy each item's origin
// into the value first (pass nil to drop origins entirely).
func Values[T any](items []Item[T], tag func(*T, string)) []T {
	out := make([]T, len(items))
	for i, it := range items {
		v := it.Value
		if tag != nil && it.Origin != "" {
			tag(&v, it.Origin)
		}
		out[i] = v
	}
	return out
}
