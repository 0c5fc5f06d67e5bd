package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mwantia/foodgram/pkg/clock"
	"github.com/mwantia/foodgram/pkg/db/migrations"
	"github.com/mwantia/foodgram/pkg/db/models"
	"github.com/mwantia/foodgram/pkg/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Options holds settings shared by every GORM-backed store
type Options struct {
	Logger        log.LoggerService
	LogLevel      logger.LogLevel
	SlowThreshold time.Duration

	// Clock stamps pub_date and created columns. Defaults to clock.System.
	Clock clock.Clock
}

// GormStore implements CatalogStore on top of any GORM dialector
type GormStore struct {
	db       *gorm.DB
	validate *validator.Validate
	log      log.LoggerService
}

var _ CatalogStore = (*GormStore)(nil)

func newGormStore(dialector gorm.Dialector, opts Options) (*GormStore, error) {
	if opts.Logger == nil {
		opts.Logger = log.NewDiscardLogger()
	}
	if opts.LogLevel == 0 {
		opts.LogLevel = logger.Silent
	}

	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: log.NewGormLogger(opts.Logger.Named("gorm"), opts.LogLevel, opts.SlowThreshold),
		NowFunc: func() time.Time {
			return opts.Clock.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	return &GormStore{
		db:       db,
		validate: newValidator(),
		log:      opts.Logger,
	}, nil
}

// DB returns the underlying GORM database instance
func (s *GormStore) DB() *gorm.DB {
	return s.db
}

// Connect verifies the database connection
func (s *GormStore) Connect(ctx context.Context) error {
	return s.Health(ctx)
}

// Close closes the database connection
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

// Migrator returns a migrator bound to the store's database
func (s *GormStore) Migrator() *migrations.Migrator {
	return migrations.NewMigrator(s.db)
}

// Migrate applies every pending schema migration
func (s *GormStore) Migrate(ctx context.Context) error {
	if err := s.Migrator().Migrate(ctx); err != nil {
		return err
	}
	s.log.Debug("schema migrations applied")
	return nil
}

// Health checks database connectivity
func (s *GormStore) Health(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// User operations

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	if err := validateStruct(s.validate, "user", user); err != nil {
		return err
	}
	return translateError(s.db.WithContext(ctx).Create(user).Error)
}

func (s *GormStore) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (s *GormStore) DeleteUser(ctx context.Context, id uint) error {
	return affected(s.db.WithContext(ctx).Delete(&models.User{}, id), "user", id)
}

// Tag operations

func (s *GormStore) CreateTag(ctx context.Context, tag *models.Tag) error {
	if err := validateStruct(s.validate, "tag", tag); err != nil {
		return err
	}
	return translateError(s.db.WithContext(ctx).Create(tag).Error)
}

func (s *GormStore) GetTag(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &tag, nil
}

func (s *GormStore) GetTagBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	var tag models.Tag
	err := s.db.WithContext(ctx).Where("slug = ?", slug).Order("id DESC").First(&tag).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &tag, nil
}

func (s *GormStore) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := s.db.WithContext(ctx).Order("id DESC").Find(&tags).Error
	return tags, translateError(err)
}

func (s *GormStore) UpdateTag(ctx context.Context, tag *models.Tag) error {
	if err := validateStruct(s.validate, "tag", tag); err != nil {
		return err
	}
	if tag.ID == 0 {
		return fmt.Errorf("%w: tag without id", ErrNotFound)
	}
	res := s.db.WithContext(ctx).Model(tag).Select("name", "color", "slug").Updates(tag)
	return affected(res, "tag", tag.ID)
}

func (s *GormStore) DeleteTag(ctx context.Context, id uint) error {
	return affected(s.db.WithContext(ctx).Delete(&models.Tag{}, id), "tag", id)
}

// Ingredient operations

func (s *GormStore) CreateIngredient(ctx context.Context, ingredient *models.Ingredient) error {
	if err := validateStruct(s.validate, "ingredient", ingredient); err != nil {
		return err
	}
	return translateError(s.db.WithContext(ctx).Create(ingredient).Error)
}

func (s *GormStore) GetIngredient(ctx context.Context, id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &ingredient, nil
}

func (s *GormStore) ListIngredients(ctx context.Context, namePrefix string) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	query := s.db.WithContext(ctx).Order("name ASC").Order("id ASC")

	if prefix := strings.TrimSpace(namePrefix); prefix != "" {
		query = query.Where("LOWER(name) LIKE ?", strings.ToLower(prefix)+"%")
	}

	err := query.Find(&ingredients).Error
	return ingredients, translateError(err)
}

func (s *GormStore) UpdateIngredient(ctx context.Context, ingredient *models.Ingredient) error {
	if err := validateStruct(s.validate, "ingredient", ingredient); err != nil {
		return err
	}
	if ingredient.ID == 0 {
		return fmt.Errorf("%w: ingredient without id", ErrNotFound)
	}
	res := s.db.WithContext(ctx).Model(ingredient).Select("name", "measurement_unit").Updates(ingredient)
	return affected(res, "ingredient", ingredient.ID)
}

func (s *GormStore) DeleteIngredient(ctx context.Context, id uint) error {
	return affected(s.db.WithContext(ctx).Delete(&models.Ingredient{}, id), "ingredient", id)
}

// Recipe operations

// CreateRecipe inserts the recipe row together with its ingredient and tag
// links. PubDate is always assigned by the store.
func (s *GormStore) CreateRecipe(ctx context.Context, recipe *models.Recipe) error {
	if err := validateStruct(s.validate, "recipe", recipe); err != nil {
		return err
	}
	recipe.PubDate = time.Time{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}
		if err := createIngredientLinks(tx, recipe.ID, recipe.Ingredients); err != nil {
			return err
		}
		return createTagLinks(tx, recipe.ID, recipe.Tags)
	})
	if err != nil {
		return translateError(err)
	}

	s.log.Debug("created recipe %d by author %d", recipe.ID, recipe.AuthorID)
	return nil
}

func (s *GormStore) GetRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.recipeQuery(ctx).First(&recipe, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &recipe, nil
}

func (s *GormStore) ListRecipes(ctx context.Context, filter RecipeFilter) ([]models.Recipe, error) {
	var recipes []models.Recipe
	query := s.recipeQuery(ctx).
		Order("recipes.pub_date DESC").
		Order("recipes.id DESC")

	if filter.AuthorID != 0 {
		query = query.Where("recipes.author_id = ?", filter.AuthorID)
	}

	if len(filter.TagSlugs) > 0 {
		tagged := s.db.WithContext(ctx).
			Model(&models.RecipeTag{}).
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs)
		query = query.Where("recipes.id IN (?)", tagged)
	}

	if filter.FavoritedBy != nil {
		favorites := s.db.WithContext(ctx).
			Model(&models.FavoriteRecipe{}).
			Select("recipe_id").
			Where("user_id = ?", filter.FavoritedBy.IdentityID())
		query = query.Where("recipes.id IN (?)", favorites)
	}

	if filter.InCartOf != nil {
		cart := s.db.WithContext(ctx).
			Model(&models.ShoppingCart{}).
			Select("recipe_id").
			Where("user_id = ?", filter.InCartOf.IdentityID())
		query = query.Where("recipes.id IN (?)", cart)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	err := query.Find(&recipes).Error
	return recipes, translateError(err)
}

func (s *GormStore) CountRecipes(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, translateError(err)
}

// UpdateRecipe writes the recipe's scalar fields. Author, publish date and
// links are left untouched; use SetRecipeIngredients and SetRecipeTags for links.
func (s *GormStore) UpdateRecipe(ctx context.Context, recipe *models.Recipe) error {
	if err := validateStruct(s.validate, "recipe", recipe, "Name", "Image", "Text", "CookingTime"); err != nil {
		return err
	}
	if recipe.ID == 0 {
		return fmt.Errorf("%w: recipe without id", ErrNotFound)
	}
	res := s.db.WithContext(ctx).
		Model(recipe).
		Select("name", "image", "text", "cooking_time").
		Omit(clause.Associations).
		Updates(recipe)
	return affected(res, "recipe", recipe.ID)
}

func (s *GormStore) SetRecipeIngredients(ctx context.Context, recipeID uint, ingredients []models.IngredientForRecipe) error {
	for i := range ingredients {
		if err := validateStruct(s.validate, "ingredient_for_recipe", &ingredients[i]); err != nil {
			return err
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.Recipe{}, recipeID).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.IngredientForRecipe{}).Error; err != nil {
			return err
		}
		return createIngredientLinks(tx, recipeID, ingredients)
	})
	return translateError(err)
}

func (s *GormStore) SetRecipeTags(ctx context.Context, recipeID uint, tagIDs []uint) error {
	links := make([]models.RecipeTag, 0, len(tagIDs))
	for _, id := range tagIDs {
		links = append(links, models.RecipeTag{TagID: id})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.Recipe{}, recipeID).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeTag{}).Error; err != nil {
			return err
		}
		return createTagLinks(tx, recipeID, links)
	})
	return translateError(err)
}

// DeleteRecipe removes the recipe; its links, favorites and cart entries are
// removed by the ON DELETE CASCADE foreign keys.
func (s *GormStore) DeleteRecipe(ctx context.Context, id uint) error {
	return affected(s.db.WithContext(ctx).Delete(&models.Recipe{}, id), "recipe", id)
}

// Recipe ingredient operations

func (s *GormStore) AddRecipeIngredient(ctx context.Context, item *models.IngredientForRecipe) error {
	if item.RecipeID == 0 {
		return &ValidationError{Entity: "ingredient_for_recipe", Field: "RecipeID", Message: "must not be empty"}
	}
	if err := validateStruct(s.validate, "ingredient_for_recipe", item); err != nil {
		return err
	}
	return translateError(s.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error)
}

func (s *GormStore) ListRecipeIngredients(ctx context.Context, recipeID uint) ([]models.IngredientForRecipe, error) {
	var items []models.IngredientForRecipe
	err := s.db.WithContext(ctx).
		Preload("Ingredient").
		Where("recipe_id = ?", recipeID).
		Order("id DESC").
		Find(&items).Error
	return items, translateError(err)
}

func (s *GormStore) DeleteRecipeIngredient(ctx context.Context, id uint) error {
	return affected(s.db.WithContext(ctx).Delete(&models.IngredientForRecipe{}, id), "ingredient_for_recipe", id)
}

// Subscription operations

func (s *GormStore) Subscribe(ctx context.Context, user, author models.Identity) (*models.Subscribe, error) {
	userID, err := identityID("subscribe", "UserID", user)
	if err != nil {
		return nil, err
	}
	authorID, err := identityID("subscribe", "AuthorID", author)
	if err != nil {
		return nil, err
	}
	if userID == authorID {
		return nil, &ValidationError{Entity: "subscribe", Field: "AuthorID", Message: "users cannot subscribe to themselves"}
	}

	sub := &models.Subscribe{UserID: userID, AuthorID: authorID}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(sub).Error; err != nil {
		return nil, translateError(err)
	}
	return sub, nil
}

func (s *GormStore) Unsubscribe(ctx context.Context, user, author models.Identity) error {
	userID, err := identityID("subscribe", "UserID", user)
	if err != nil {
		return err
	}
	authorID, err := identityID("subscribe", "AuthorID", author)
	if err != nil {
		return err
	}

	res := s.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Subscribe{})
	return affected(res, "subscription", authorID)
}

func (s *GormStore) ListSubscriptions(ctx context.Context, user models.Identity) ([]models.Subscribe, error) {
	userID, err := identityID("subscribe", "UserID", user)
	if err != nil {
		return nil, err
	}

	var subs []models.Subscribe
	err = s.db.WithContext(ctx).
		Preload("Author").
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&subs).Error
	return subs, translateError(err)
}

func (s *GormStore) IsSubscribed(ctx context.Context, user, author models.Identity) (bool, error) {
	if user == nil || author == nil {
		return false, nil
	}
	return s.exists(ctx, &models.Subscribe{}, "user_id = ? AND author_id = ?", user.IdentityID(), author.IdentityID())
}

// Favorite operations

// AddFavorite marks the recipe as a favorite. A nil user records an
// unattributed favorite.
func (s *GormStore) AddFavorite(ctx context.Context, user models.Identity, recipeID uint) (*models.FavoriteRecipe, error) {
	fav := &models.FavoriteRecipe{RecipeID: recipeID}
	if user != nil {
		id := user.IdentityID()
		fav.UserID = &id
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(fav).Error; err != nil {
		return nil, translateError(err)
	}
	return fav, nil
}

func (s *GormStore) RemoveFavorite(ctx context.Context, user models.Identity, recipeID uint) error {
	userID, err := identityID("favorite_recipe", "UserID", user)
	if err != nil {
		return err
	}

	res := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.FavoriteRecipe{})
	return affected(res, "favorite_recipe", recipeID)
}

func (s *GormStore) ListFavorites(ctx context.Context, user models.Identity) ([]models.FavoriteRecipe, error) {
	userID, err := identityID("favorite_recipe", "UserID", user)
	if err != nil {
		return nil, err
	}

	var favorites []models.FavoriteRecipe
	err = s.db.WithContext(ctx).
		Preload("Recipe").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&favorites).Error
	return favorites, translateError(err)
}

func (s *GormStore) IsFavorite(ctx context.Context, user models.Identity, recipeID uint) (bool, error) {
	if user == nil {
		return false, nil
	}
	return s.exists(ctx, &models.FavoriteRecipe{}, "user_id = ? AND recipe_id = ?", user.IdentityID(), recipeID)
}

// Shopping cart operations

func (s *GormStore) AddToShoppingCart(ctx context.Context, user models.Identity, recipeID uint) (*models.ShoppingCart, error) {
	userID, err := identityID("shopping_cart", "UserID", user)
	if err != nil {
		return nil, err
	}

	entry := &models.ShoppingCart{UserID: userID, RecipeID: recipeID}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(entry).Error; err != nil {
		return nil, translateError(err)
	}
	return entry, nil
}

func (s *GormStore) RemoveFromShoppingCart(ctx context.Context, user models.Identity, recipeID uint) error {
	userID, err := identityID("shopping_cart", "UserID", user)
	if err != nil {
		return err
	}

	res := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.ShoppingCart{})
	return affected(res, "shopping_cart", recipeID)
}

func (s *GormStore) ListShoppingCart(ctx context.Context, user models.Identity) ([]models.ShoppingCart, error) {
	userID, err := identityID("shopping_cart", "UserID", user)
	if err != nil {
		return nil, err
	}

	var entries []models.ShoppingCart
	err = s.db.WithContext(ctx).
		Preload("Recipe").
		Where("user_id = ?", userID).
		Order("pub_date DESC").
		Order("id DESC").
		Find(&entries).Error
	return entries, translateError(err)
}

func (s *GormStore) IsInShoppingCart(ctx context.Context, user models.Identity, recipeID uint) (bool, error) {
	if user == nil {
		return false, nil
	}
	return s.exists(ctx, &models.ShoppingCart{}, "user_id = ? AND recipe_id = ?", user.IdentityID(), recipeID)
}

// ShoppingList sums the ingredient amounts of every recipe in the user's cart.
func (s *GormStore) ShoppingList(ctx context.Context, user models.Identity) ([]models.ShoppingListItem, error) {
	userID, err := identityID("shopping_cart", "UserID", user)
	if err != nil {
		return nil, err
	}

	var items []models.ShoppingListItem
	err = s.db.WithContext(ctx).
		Model(&models.IngredientForRecipe{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, CAST(SUM(recipe_ingredients.amount) AS BIGINT) AS amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name ASC").
		Scan(&items).Error
	return items, translateError(err)
}

// Helpers

func (s *GormStore) recipeQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Author").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipe_ingredients.id DESC")
		}).
		Preload("Ingredients.Ingredient").
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipe_tags.id ASC")
		}).
		Preload("Tags.Tag")
}

func (s *GormStore) exists(ctx context.Context, model any, query string, args ...any) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(model).Where(query, args...).Count(&count).Error
	if err != nil {
		return false, translateError(err)
	}
	return count > 0, nil
}

func createIngredientLinks(tx *gorm.DB, recipeID uint, items []models.IngredientForRecipe) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].ID = 0
		items[i].RecipeID = recipeID
	}
	return tx.Omit(clause.Associations).Create(&items).Error
}

func createTagLinks(tx *gorm.DB, recipeID uint, links []models.RecipeTag) error {
	if len(links) == 0 {
		return nil
	}
	for i := range links {
		links[i].ID = 0
		links[i].RecipeID = recipeID
	}
	return tx.Omit(clause.Associations).Create(&links).Error
}

func identityID(entity, field string, identity models.Identity) (uint, error) {
	if identity == nil || identity.IdentityID() == 0 {
		return 0, &ValidationError{Entity: entity, Field: field, Message: "must not be empty"}
	}
	return identity.IdentityID(), nil
}

// affected reports ErrNotFound when an update or delete matched no rows.
func affected(res *gorm.DB, entity string, id uint) error {
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s %d", ErrNotFound, entity, id)
	}
	return nil
}
