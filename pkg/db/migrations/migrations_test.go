package migrations

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/mwantia/foodgram/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "migrations.db") + "?_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func TestMigrateCreatesSchema(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	m := NewMigrator(db)
	ctx := context.Background()

	if err := m.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	for _, table := range []string{
		"users",
		"tags",
		"ingredients",
		"recipes",
		"recipe_tags",
		"recipe_ingredients",
		"favorite_recipes",
		"shopping_carts",
		"subscriptions",
	} {
		if !db.Migrator().HasTable(table) {
			t.Fatalf("table %q missing after Migrate", table)
		}
	}

	for table, index := range map[string]string{
		"recipe_tags":        "unique_recipe_tag",
		"recipe_ingredients": "unique_recipe_ingredient",
		"shopping_carts":     "unique_shopping_cart",
		"subscriptions":      "unique_subscription",
	} {
		if !db.Migrator().HasIndex(table, index) {
			t.Fatalf("index %q missing on %q", index, table)
		}
	}

	// A second run is a no-op
	if err := m.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}

	var count int64
	if err := db.Model(&migrationHistory{}).Count(&count).Error; err != nil {
		t.Fatalf("count history: %v", err)
	}
	if count != int64(m.Latest()) {
		t.Fatalf("history rows = %d, want %d", count, m.Latest())
	}
}

func TestStatusReportsApplied(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	m := NewMigrator(db)
	ctx := context.Background()

	statuses, err := m.Status(ctx)
	if err != nil {
		t.Fatalf("Status before Migrate: %v", err)
	}
	if len(statuses) != 2 {
		t.Fatalf("Status returned %d migrations, want 2", len(statuses))
	}
	for _, s := range statuses {
		if s.Applied {
			t.Fatalf("migration %d reported applied before Migrate", s.Version)
		}
	}

	if err := m.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	statuses, err = m.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	for _, s := range statuses {
		if !s.Applied {
			t.Fatalf("migration %d (%s) not applied", s.Version, s.Description)
		}
	}
}

func TestRollbackRevertsLatestVersion(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	m := NewMigrator(db)
	ctx := context.Background()

	if err := m.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	if err := m.Rollback(ctx); err != nil {
		t.Fatalf("first Rollback: %v", err)
	}
	if db.Migrator().HasTable("subscriptions") {
		t.Fatal("subscriptions table still present after rolling back version 2")
	}
	if !db.Migrator().HasTable("recipes") {
		t.Fatal("recipes table dropped by rolling back version 2")
	}

	if err := m.Rollback(ctx); err != nil {
		t.Fatalf("second Rollback: %v", err)
	}
	if db.Migrator().HasTable("recipes") {
		t.Fatal("recipes table still present after rolling back version 1")
	}

	if err := m.Rollback(ctx); err == nil {
		t.Fatal("expected error when nothing is left to roll back")
	}

	// The schema can be rebuilt after a full rollback
	if err := m.Migrate(ctx); err != nil {
		t.Fatalf("Migrate after rollback: %v", err)
	}
	if !db.Migrator().HasTable("subscriptions") {
		t.Fatal("subscriptions table missing after re-migrating")
	}
}

func TestRollbackDropsPopulatedSchema(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	m := NewMigrator(db)
	ctx := context.Background()

	if err := m.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	user := models.User{Email: "avery@foodgram.app", Username: "avery"}
	reader := models.User{Email: "mila@foodgram.app", Username: "mila"}
	tag := models.Tag{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"}
	eggs := models.Ingredient{Name: "eggs", MeasurementUnit: "pcs"}
	for _, row := range []any{&user, &reader, &tag, &eggs} {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("create %T: %v", row, err)
		}
	}

	recipe := models.Recipe{AuthorID: user.ID, Name: "Eggs", Text: "Boil.", CookingTime: 8}
	if err := db.Omit(clause.Associations).Create(&recipe).Error; err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	readerID := reader.ID
	for _, row := range []any{
		&models.IngredientForRecipe{RecipeID: recipe.ID, IngredientID: eggs.ID, Amount: 2},
		&models.RecipeTag{RecipeID: recipe.ID, TagID: tag.ID},
		&models.FavoriteRecipe{UserID: &readerID, RecipeID: recipe.ID},
		&models.ShoppingCart{UserID: reader.ID, RecipeID: recipe.ID},
		&models.Subscribe{UserID: reader.ID, AuthorID: user.ID},
	} {
		if err := db.Omit(clause.Associations).Create(row).Error; err != nil {
			t.Fatalf("create %T: %v", row, err)
		}
	}

	for version := m.Latest(); version > 0; version-- {
		if err := m.Rollback(ctx); err != nil {
			t.Fatalf("Rollback of version %d: %v", version, err)
		}
	}

	for _, table := range []string{
		"users",
		"tags",
		"ingredients",
		"recipes",
		"recipe_tags",
		"recipe_ingredients",
		"favorite_recipes",
		"shopping_carts",
		"subscriptions",
	} {
		if db.Migrator().HasTable(table) {
			t.Fatalf("table %q still present after full rollback", table)
		}
	}

	statuses, err := m.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	for _, s := range statuses {
		if s.Applied {
			t.Fatalf("migration %d still recorded as applied", s.Version)
		}
	}
}

func TestLatest(t *testing.T) {
	t.Parallel()

	m := &Migrator{migrations: []Migration{{Version: 3}, {Version: 1}, {Version: 2}}}
	if got := m.Latest(); got != 3 {
		t.Fatalf("Latest() = %d, want 3", got)
	}
	if got := (&Migrator{}).Latest(); got != 0 {
		t.Fatalf("Latest() on empty migrator = %d, want 0", got)
	}
}
