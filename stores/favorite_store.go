package stores

import (
	"context"
	"slices"
)

const FavoritesKey = "favorite-recipes"

// FavoriteStore is the set of recipe ids a user bookmarked.
type FavoriteStore struct {
	doc *document[int]
}

func OpenFavoriteStore(ctx context.Context, storage Storage, key string) (*FavoriteStore, error) {
	doc, err := openDocument[int](ctx, storage, key)
	if err != nil {
		return nil, err
	}
	return &FavoriteStore{doc: doc}, nil
}

// Add is a no-op for ids already present.
func (s *FavoriteStore) Add(ctx context.Context, id int) error {
	return s.doc.update(ctx, func(ids []int) ([]int, error) {
		if slices.Contains(ids, id) {
			return ids, nil
		}
		return append(ids, id), nil
	})
}

func (s *FavoriteStore) Remove(ctx context.Context, id int) error {
	return s.doc.update(ctx, func(ids []int) ([]int, error) {
		return slices.DeleteFunc(ids, func(x int) bool { return x == id }), nil
	})
}

func (s *FavoriteStore) IsFavorite(id int) bool {
	return slices.Contains(s.doc.list(), id)
}

// Toggle flips membership and reports the new state.
func (s *FavoriteStore) Toggle(ctx context.Context, id int) (bool, error) {
	var now bool
	err := s.doc.update(ctx, func(ids []int) ([]int, error) {
		if slices.Contains(ids, id) {
			now = false
			return slices.DeleteFunc(ids, func(x int) bool { return x == id }), nil
		}
		now = true
		return append(ids, id), nil
	})
	return now, err
}

func (s *FavoriteStore) List() []int { return s.doc.list() }
