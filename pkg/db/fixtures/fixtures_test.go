package fixtures

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwantia/foodgram/pkg/db/models"
	"github.com/mwantia/foodgram/pkg/db/store"
)

func newSeededStore(t *testing.T) (*store.SQLiteStore, *Dataset) {
	t.Helper()

	s, err := store.NewSQLiteStore(store.SQLiteConfig{
		Path: filepath.Join(t.TempDir(), "fixtures.db"),
	})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()
	if err := s.Connect(ctx); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	data, err := Seed(ctx, s)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	return s, data
}

func TestSeed(t *testing.T) {
	t.Parallel()

	s, data := newSeededStore(t)
	ctx := context.Background()

	if len(data.Users) != 2 || len(data.Tags) != 3 || len(data.Ingredients) != 5 || len(data.Recipes) != 2 {
		t.Fatalf("unexpected dataset sizes: %d users, %d tags, %d ingredients, %d recipes",
			len(data.Users), len(data.Tags), len(data.Ingredients), len(data.Recipes))
	}

	avery, mila := data.Users[0], data.Users[1]

	recipes, err := s.ListRecipes(ctx, store.RecipeFilter{})
	if err != nil {
		t.Fatalf("ListRecipes: %v", err)
	}
	if len(recipes) != 2 {
		t.Fatalf("ListRecipes returned %d recipes, want 2", len(recipes))
	}

	subscribed, err := s.IsSubscribed(ctx, avery, mila)
	if err != nil || !subscribed {
		t.Fatalf("IsSubscribed(avery, mila) = %t, %v", subscribed, err)
	}

	scrambled := data.Recipes[1]
	favorite, err := s.IsFavorite(ctx, avery, scrambled.ID)
	if err != nil || !favorite {
		t.Fatalf("IsFavorite = %t, %v", favorite, err)
	}

	list, err := s.ShoppingList(ctx, avery)
	if err != nil {
		t.Fatalf("ShoppingList: %v", err)
	}
	if len(list) != 3 || list[0].Name != "butter" || list[0].Amount != 15 {
		t.Fatalf("ShoppingList = %+v", list)
	}

	got, err := s.GetRecipe(ctx, scrambled.ID)
	if err != nil {
		t.Fatalf("GetRecipe: %v", err)
	}
	if len(got.Ingredients) != 3 || len(got.Tags) != 2 {
		t.Fatalf("scrambled eggs has %d ingredients and %d tags", len(got.Ingredients), len(got.Tags))
	}
	if got.Image == nil || !strings.HasPrefix(*got.Image, models.RecipeImageDir) || !strings.HasSuffix(*got.Image, ".png") {
		t.Fatalf("scrambled eggs image = %v", got.Image)
	}

	pancakes := data.Recipes[0]
	if pancakes.Image == nil || !strings.HasSuffix(*pancakes.Image, ".jpg") {
		t.Fatalf("pancakes image = %v", pancakes.Image)
	}
	if *pancakes.Image == *got.Image {
		t.Fatal("seeded recipes share an image path")
	}
}

func TestSeedTwiceFailsOnDuplicates(t *testing.T) {
	t.Parallel()

	s, _ := newSeededStore(t)

	if _, err := Seed(context.Background(), s); !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("second Seed error = %v, want ErrDuplicate", err)
	}
}
