package views

import (
	"context"
	"slices"
)

// Collection holds the last fetched copy of a server collection. Each load
// replaces the items wholesale.
type Collection[T any] struct {
	fetch   func(context.Context) ([]T, error)
	items   []T
	loading bool
}

func NewCollection[T any](fetch func(context.Context) ([]T, error)) *Collection[T] {
	return &Collection[T]{fetch: fetch, loading: true}
}

// Load keeps the previous items when the fetch fails.
func (c *Collection[T]) Load(ctx context.Context) error {
	c.loading = true
	items, err := c.fetch(ctx)
	c.loading = false
	if err != nil {
		return err
	}
	c.items = items
	return nil
}

// Loading is true until the first fetch finishes and during each refetch.
func (c *Collection[T]) Loading() bool {
	return c.loading
}

func (c *Collection[T]) Items() []T {
	return slices.Clone(c.items)
}

func (c *Collection[T]) Len() int {
	return len(c.items)
}

func (c *Collection[T]) Find(match func(T) bool) (T, bool) {
	i := slices.IndexFunc(c.items, match)
	if i < 0 {
		var zero T
		return zero, false
	}
	return c.items[i], true
}

// First returns at most n items in server order.
func (c *Collection[T]) First(n int) []T {
	return slices.Clone(c.items[:min(n, len(c.items))])
}
