package store

import (
	"context"

	"github.com/mwantia/foodgram/pkg/db/models"
)

// RecipeFilter narrows ListRecipes. Zero values are ignored.
type RecipeFilter struct {
	AuthorID    uint
	TagSlugs    []string // any-of
	FavoritedBy models.Identity
	InCartOf    models.Identity
	Limit       int
	Offset      int
}

// CatalogStore defines the interface for recipe catalog persistence
type CatalogStore interface {
	// Lifecycle
	Connect(ctx context.Context) error
	Close() error
	Migrate(ctx context.Context) error
	Health(ctx context.Context) error

	// User operations
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uint) (*models.User, error)
	DeleteUser(ctx context.Context, id uint) error

	// Tag operations
	CreateTag(ctx context.Context, tag *models.Tag) error
	GetTag(ctx context.Context, id uint) (*models.Tag, error)
	GetTagBySlug(ctx context.Context, slug string) (*models.Tag, error)
	ListTags(ctx context.Context) ([]models.Tag, error)
	UpdateTag(ctx context.Context, tag *models.Tag) error
	DeleteTag(ctx context.Context, id uint) error

	// Ingredient operations
	CreateIngredient(ctx context.Context, ingredient *models.Ingredient) error
	GetIngredient(ctx context.Context, id uint) (*models.Ingredient, error)
	ListIngredients(ctx context.Context, namePrefix string) ([]models.Ingredient, error)
	UpdateIngredient(ctx context.Context, ingredient *models.Ingredient) error
	DeleteIngredient(ctx context.Context, id uint) error

	// Recipe operations
	CreateRecipe(ctx context.Context, recipe *models.Recipe) error
	GetRecipe(ctx context.Context, id uint) (*models.Recipe, error)
	ListRecipes(ctx context.Context, filter RecipeFilter) ([]models.Recipe, error)
	CountRecipes(ctx context.Context, authorID uint) (int64, error)
	UpdateRecipe(ctx context.Context, recipe *models.Recipe) error
	SetRecipeIngredients(ctx context.Context, recipeID uint, ingredients []models.IngredientForRecipe) error
	SetRecipeTags(ctx context.Context, recipeID uint, tagIDs []uint) error
	DeleteRecipe(ctx context.Context, id uint) error

	// Recipe ingredient operations
	AddRecipeIngredient(ctx context.Context, item *models.IngredientForRecipe) error
	ListRecipeIngredients(ctx context.Context, recipeID uint) ([]models.IngredientForRecipe, error)
	DeleteRecipeIngredient(ctx context.Context, id uint) error

	// Subscription operations
	Subscribe(ctx context.Context, user, author models.Identity) (*models.Subscribe, error)
	Unsubscribe(ctx context.Context, user, author models.Identity) error
	ListSubscriptions(ctx context.Context, user models.Identity) ([]models.Subscribe, error)
	IsSubscribed(ctx context.Context, user, author models.Identity) (bool, error)

	// Favorite operations
	AddFavorite(ctx context.Context, user models.Identity, recipeID uint) (*models.FavoriteRecipe, error)
	RemoveFavorite(ctx context.Context, user models.Identity, recipeID uint) error
	ListFavorites(ctx context.Context, user models.Identity) ([]models.FavoriteRecipe, error)
	IsFavorite(ctx context.Context, user models.Identity, recipeID uint) (bool, error)

	// Shopping cart operations
	AddToShoppingCart(ctx context.Context, user models.Identity, recipeID uint) (*models.ShoppingCart, error)
	RemoveFromShoppingCart(ctx context.Context, user models.Identity, recipeID uint) error
	ListShoppingCart(ctx context.Context, user models.Identity) ([]models.ShoppingCart, error)
	IsInShoppingCart(ctx context.Context, user models.Identity, recipeID uint) (bool, error)
	ShoppingList(ctx context.Context, user models.Identity) ([]models.ShoppingListItem, error)
}
