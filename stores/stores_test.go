package stores

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileStorage(t *testing.T) *FileStorage {
	t.Helper()
	s, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)
	return s
}

type failingStorage struct {
	Storage
	fail bool
}

func (f *failingStorage) Save(ctx context.Context, key string, data []byte) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.Storage.Save(ctx, key, data)
}

// gatedStorage holds loads of keys containing gate until release is closed.
type gatedStorage struct {
	Storage
	gate    string
	entered chan string
	release chan struct{}
}

func (g *gatedStorage) Load(ctx context.Context, key string) ([]byte, error) {
	if strings.Contains(key, g.gate) {
		g.entered <- key
		<-g.release
	}
	return g.Storage.Load(ctx, key)
}

func TestFileStorage_RoundTrip(t *testing.T) {
	s := newFileStorage(t)
	ctx := context.Background()

	_, err := s.Load(ctx, "users/1/x.json")
	assert.ErrorIs(t, err, ErrNotExist)

	require.NoError(t, s.Save(ctx, "users/1/x.json", []byte(`[1]`)))
	data, err := s.Load(ctx, "users/1/x.json")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(data))

	_, err = os.Stat(filepath.Join(s.Dir, "users", "1", "x.json.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestFileStorage_RejectsTraversal(t *testing.T) {
	s := newFileStorage(t)
	ctx := context.Background()

	assert.Error(t, s.Save(ctx, "../escape.json", []byte(`[]`)))
	_, err := s.Load(ctx, "users/../../etc/passwd")
	assert.Error(t, err)
	assert.Error(t, s.Save(ctx, "", nil))
}

func TestFavoriteStore(t *testing.T) {
	storage := newFileStorage(t)
	ctx := context.Background()

	fav, err := OpenFavoriteStore(ctx, storage, "favs.json")
	require.NoError(t, err)
	assert.Empty(t, fav.List())

	require.NoError(t, fav.Add(ctx, 11))
	require.NoError(t, fav.Add(ctx, 11))
	require.NoError(t, fav.Add(ctx, 12))
	assert.Equal(t, []int{11, 12}, fav.List())

	on, err := fav.Toggle(ctx, 13)
	require.NoError(t, err)
	assert.True(t, on)
	on, err = fav.Toggle(ctx, 13)
	require.NoError(t, err)
	assert.False(t, on)
	assert.False(t, fav.IsFavorite(13))

	require.NoError(t, fav.Remove(ctx, 11))
	require.NoError(t, fav.Remove(ctx, 99))

	reopened, err := OpenFavoriteStore(ctx, storage, "favs.json")
	require.NoError(t, err)
	assert.Equal(t, []int{12}, reopened.List())
}

func TestDocument_KeepsStateWhenSaveFails(t *testing.T) {
	storage := &failingStorage{Storage: newFileStorage(t)}
	ctx := context.Background()

	fav, err := OpenFavoriteStore(ctx, storage, "favs.json")
	require.NoError(t, err)
	require.NoError(t, fav.Add(ctx, 1))

	storage.fail = true
	assert.Error(t, fav.Add(ctx, 2))
	assert.Equal(t, []int{1}, fav.List())
}

func TestOpenDocument_CorruptData(t *testing.T) {
	storage := newFileStorage(t)
	ctx := context.Background()
	require.NoError(t, storage.Save(ctx, "favs.json", []byte("{oops")))

	_, err := OpenFavoriteStore(ctx, storage, "favs.json")
	assert.Error(t, err)
}

func TestShoppingListStore(t *testing.T) {
	storage := newFileStorage(t)
	ctx := context.Background()

	list, err := OpenShoppingListStore(ctx, storage, "list.json")
	require.NoError(t, err)

	recipeID := 715538
	added, err := list.AddItems(ctx, []ShoppingItem{
		{Name: "Flour", Amount: 500, Unit: "g", Checked: true},
		{Name: "Eggs", Amount: 2, RecipeID: &recipeID, RecipeTitle: "Cake"},
	})
	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.NotEmpty(t, added[0].ID)
	assert.NotEqual(t, added[0].ID, added[1].ID)
	assert.False(t, added[0].Checked, "new items start unchecked")

	item, err := list.ToggleItemChecked(ctx, added[0].ID)
	require.NoError(t, err)
	assert.True(t, item.Checked)

	amount := 3.0
	item, err = list.UpdateItem(ctx, added[1].ID, ShoppingItemPatch{Amount: &amount})
	require.NoError(t, err)
	assert.Equal(t, 3.0, item.Amount)
	assert.Equal(t, "Eggs", item.Name)

	_, err = list.ToggleItemChecked(ctx, "missing")
	assert.ErrorIs(t, err, ErrItemNotFound)

	require.NoError(t, list.ClearChecked(ctx))
	require.Len(t, list.List(), 1)
	assert.Equal(t, "Eggs", list.List()[0].Name)

	reopened, err := OpenShoppingListStore(ctx, storage, "list.json")
	require.NoError(t, err)
	require.Len(t, reopened.List(), 1)
	assert.Equal(t, &recipeID, reopened.List()[0].RecipeID)

	require.NoError(t, list.RemoveItem(ctx, added[1].ID))
	_, err = list.AddItem(ctx, ShoppingItem{Name: "Milk"})
	require.NoError(t, err)
	require.NoError(t, list.ClearItems(ctx))
	assert.Empty(t, list.List())
}

func TestCustomRecipeStore(t *testing.T) {
	storage := newFileStorage(t)
	ctx := context.Background()

	store, err := OpenCustomRecipeStore(ctx, storage, "custom.json")
	require.NoError(t, err)

	r, err := store.AddRecipe(ctx, CustomRecipe{
		Title:       "Gran's Soup",
		Servings:    4,
		Ingredients: []CustomIngredient{{Name: "Leek", Amount: 2}},
	})
	require.NoError(t, err)
	assert.True(t, r.IsCustom)
	assert.NotEmpty(t, r.ID)
	assert.NotEmpty(t, r.Ingredients[0].ID)
	assert.NotNil(t, r.Cuisines)

	title := "Gran's Best Soup"
	updated, err := store.UpdateRecipe(ctx, r.ID, CustomRecipePatch{Title: &title, Diets: []string{"vegetarian"}})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, 4, updated.Servings)
	assert.Equal(t, []string{"vegetarian"}, updated.Diets)

	_, err = store.UpdateRecipe(ctx, "nope", CustomRecipePatch{Title: &title})
	assert.ErrorIs(t, err, ErrItemNotFound)

	got := store.GetRecipeByID(r.ID)
	require.NotNil(t, got)
	assert.Equal(t, title, got.Title)
	assert.Nil(t, store.GetRecipeByID("nope"))

	require.NoError(t, store.RemoveRecipe(ctx, r.ID))
	assert.Empty(t, store.List())
}

func TestRegistry_NamespacesByUser(t *testing.T) {
	storage := newFileStorage(t)
	ctx := context.Background()
	reg := NewRegistry(storage, "users")

	a, err := reg.Favorites(ctx, 1)
	require.NoError(t, err)
	again, err := reg.Favorites(ctx, 1)
	require.NoError(t, err)
	assert.Same(t, a, again)

	b, err := reg.Favorites(ctx, 2)
	require.NoError(t, err)
	require.NoError(t, a.Add(ctx, 5))
	assert.Empty(t, b.List())

	_, err = os.Stat(filepath.Join(storage.Dir, "users", "1", FavoritesKey+".json"))
	assert.NoError(t, err)

	assert.Equal(t, "users/3/shopping-list.json", UserKey("users", 3, ShoppingListKey))
	assert.Equal(t, "3/custom-recipes.json", UserKey("", 3, CustomRecipesKey))

	list, err := reg.ShoppingList(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, list.List())
	custom, err := reg.CustomRecipes(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, custom.List())
}

func TestRegistry_SlowLoadDoesNotBlockOtherUsers(t *testing.T) {
	storage := &gatedStorage{
		Storage: newFileStorage(t),
		gate:    "/1/",
		entered: make(chan string, 2),
		release: make(chan struct{}),
	}
	reg := NewRegistry(storage, "users")
	ctx := context.Background()

	type result struct {
		fav *FavoriteStore
		err error
	}
	results := make(chan result, 2)
	openSlow := func() {
		fav, err := reg.Favorites(ctx, 1)
		results <- result{fav, err}
	}
	go openSlow()
	go openSlow()
	for i := 0; i < 2; i++ {
		select {
		case <-storage.entered:
		case <-time.After(2 * time.Second):
			t.Fatal("load for user 1 never started")
		}
	}

	other := make(chan error, 1)
	go func() {
		_, err := reg.Favorites(ctx, 2)
		other <- err
	}()
	select {
	case err := <-other:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("user 2 waited on user 1's load")
	}

	close(storage.release)
	a, b := <-results, <-results
	require.NoError(t, a.err)
	require.NoError(t, b.err)
	assert.Same(t, a.fav, b.fav)

	again, err := reg.Favorites(ctx, 1)
	require.NoError(t, err)
	assert.Same(t, a.fav, again)
}
