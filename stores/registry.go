package stores

import (
	"context"
	"fmt"
	"sync"
)

// UserKey namespaces a store document under one user.
func UserKey(prefix string, userID uint, name string) string {
	if prefix == "" {
		return fmt.Sprintf("%d/%s.json", userID, name)
	}
	return fmt.Sprintf("%s/%d/%s.json", prefix, userID, name)
}

type registryKey struct {
	userID uint
	name   string
}

// Registry opens each user's stores on first use and keeps them open.
type Registry struct {
	storage Storage
	prefix  string

	mu     sync.Mutex
	stores map[registryKey]any
}

func NewRegistry(storage Storage, prefix string) *Registry {
	return &Registry{storage: storage, prefix: prefix, stores: make(map[registryKey]any)}
}

func open[S any](ctx context.Context, r *Registry, userID uint, name string,
	opener func(context.Context, Storage, string) (*S, error)) (*S, error) {
	k := registryKey{userID: userID, name: name}

	r.mu.Lock()
	s, ok := r.stores[k]
	r.mu.Unlock()
	if ok {
		return s.(*S), nil
	}

	// Load without the lock; the first store cached for a key wins.
	opened, err := opener(ctx, r.storage, UserKey(r.prefix, userID, name))
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.stores[k]; ok {
		return s.(*S), nil
	}
	r.stores[k] = opened
	return opened, nil
}

func (r *Registry) Favorites(ctx context.Context, userID uint) (*FavoriteStore, error) {
	return open(ctx, r, userID, FavoritesKey, OpenFavoriteStore)
}

func (r *Registry) ShoppingList(ctx context.Context, userID uint) (*ShoppingListStore, error) {
	return open(ctx, r, userID, ShoppingListKey, OpenShoppingListStore)
}

func (r *Registry) CustomRecipes(ctx context.Context, userID uint) (*CustomRecipeStore, error) {
	return open(ctx, r, userID, CustomRecipesKey, OpenCustomRecipeStore)
}
