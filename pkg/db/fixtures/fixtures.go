// Package fixtures seeds a catalog store with representative demo data.
package fixtures

import (
	"context"
	"fmt"

	"github.com/mwantia/foodgram/pkg/db/models"
	"github.com/mwantia/foodgram/pkg/db/store"
)

// Dataset holds the rows created by Seed.
type Dataset struct {
	Users       []models.User
	Tags        []models.Tag
	Ingredients []models.Ingredient
	Recipes     []models.Recipe
}

// Seed inserts demo users, tags, ingredients and recipes, and links the
// first user to the second user's recipe through a subscription, a favorite
// and a shopping cart entry.
func Seed(ctx context.Context, s store.CatalogStore) (*Dataset, error) {
	data := &Dataset{
		Users: []models.User{
			{Email: "avery@foodgram.app", Username: "avery", FirstName: "Avery", LastName: "Stone"},
			{Email: "mila@foodgram.app", Username: "mila", FirstName: "Mila", LastName: "Kovac"},
		},
		Tags: []models.Tag{
			{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
			{Name: "Lunch", Color: "#49B64E", Slug: "lunch"},
			{Name: "Dinner", Color: "#8775D2", Slug: "dinner"},
		},
		Ingredients: []models.Ingredient{
			{Name: "eggs", MeasurementUnit: "pcs"},
			{Name: "milk", MeasurementUnit: "ml"},
			{Name: "wheat flour", MeasurementUnit: "g"},
			{Name: "butter", MeasurementUnit: "g"},
			{Name: "salt", MeasurementUnit: "pinch"},
		},
	}

	for i := range data.Users {
		if err := s.CreateUser(ctx, &data.Users[i]); err != nil {
			return nil, fmt.Errorf("seed user %q: %w", data.Users[i].Username, err)
		}
	}
	for i := range data.Tags {
		if err := s.CreateTag(ctx, &data.Tags[i]); err != nil {
			return nil, fmt.Errorf("seed tag %q: %w", data.Tags[i].Slug, err)
		}
	}
	for i := range data.Ingredients {
		if err := s.CreateIngredient(ctx, &data.Ingredients[i]); err != nil {
			return nil, fmt.Errorf("seed ingredient %q: %w", data.Ingredients[i].Name, err)
		}
	}

	avery, mila := data.Users[0], data.Users[1]
	eggs, milk, flour, butter, salt := data.Ingredients[0], data.Ingredients[1], data.Ingredients[2], data.Ingredients[3], data.Ingredients[4]

	pancakesImage := models.NewImagePath("pancakes.JPG")
	eggsImage := models.NewImagePath("scrambled-eggs.png")

	data.Recipes = []models.Recipe{
		{
			AuthorID:    avery.ID,
			Name:        "Buttermilk Pancakes",
			Text:        "Whisk the batter, rest it for ten minutes and fry in butter.",
			CookingTime: 25,
			Image:       &pancakesImage,
			Ingredients: []models.IngredientForRecipe{
				{IngredientID: eggs.ID, Amount: 2},
				{IngredientID: milk.ID, Amount: 300},
				{IngredientID: flour.ID, Amount: 200},
				{IngredientID: butter.ID, Amount: 30},
			},
			Tags: []models.RecipeTag{
				{TagID: data.Tags[0].ID},
			},
		},
		{
			AuthorID:    mila.ID,
			Name:        "Soft Scrambled Eggs",
			Text:        "Cook the eggs low and slow, stirring constantly.",
			CookingTime: 10,
			Image:       &eggsImage,
			Ingredients: []models.IngredientForRecipe{
				{IngredientID: eggs.ID, Amount: 3},
				{IngredientID: butter.ID, Amount: 15},
				{IngredientID: salt.ID, Amount: 1},
			},
			Tags: []models.RecipeTag{
				{TagID: data.Tags[0].ID},
				{TagID: data.Tags[1].ID},
			},
		},
	}

	for i := range data.Recipes {
		if err := s.CreateRecipe(ctx, &data.Recipes[i]); err != nil {
			return nil, fmt.Errorf("seed recipe %q: %w", data.Recipes[i].Name, err)
		}
	}

	scrambled := data.Recipes[1]
	if _, err := s.Subscribe(ctx, avery, mila); err != nil {
		return nil, fmt.Errorf("seed subscription: %w", err)
	}
	if _, err := s.AddFavorite(ctx, avery, scrambled.ID); err != nil {
		return nil, fmt.Errorf("seed favorite: %w", err)
	}
	if _, err := s.AddToShoppingCart(ctx, avery, scrambled.ID); err != nil {
		return nil, fmt.Errorf("seed shopping cart: %w", err)
	}

	return data, nil
}
