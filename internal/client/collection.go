package client

import (
	"fmt"

	"github.com/vulnguard-io/vulnguard-client/pkg/vulnguard"
)

// getByID scans a listing for the first entity whose id matches. Which
// entity wins when duplicate ids exist is unspecified; the scan keeps
// listing order. Zero matches yield ErrNotFound.
func getByID[T any](items []T, id string, idOf func(T) string) (*T, error) {
	for i := range items {
		if idOf(items[i]) == id {
			return &items[i], nil
		}
	}

	return nil, fmt.Errorf("id %q: %w", id, vulnguard.ErrNotFound)
}

// firstOf returns the head of a listing, or ErrNotFound when it is empty.
func firstOf[T any](items []T) (*T, error) {
	if len(items) == 0 {
		return nil, vulnguard.ErrNotFound
	}

	return &items[0], nil
}

// filterItems keeps the entities the match predicate accepts. A nil
// predicate keeps everything.
func filterItems[T any](items []T, match func(T) bool) []T {
	if match == nil {
		return items
	}

	kept := make([]T, 0, len(items))

	for _, item := range items {
		if match(item) {
			kept = append(kept, item)
		}
	}

	return kept
}
