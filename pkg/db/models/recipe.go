package models

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RecipeImageDir is the storage prefix every recipe image path lives under.
const RecipeImageDir = "static/recipe/"

// Recipe represents a published recipe owned by a single author
type Recipe struct {
	ID          uint    `gorm:"primaryKey"`
	AuthorID    uint    `gorm:"not null;index" validate:"required"`
	Name        string  `gorm:"type:varchar(250);not null" validate:"required,max=250"`
	Image       *string `gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	Text        string  `gorm:"type:text;not null" validate:"required"`
	CookingTime int     `gorm:"not null;check:chk_recipes_cooking_time,cooking_time >= 1" validate:"min=1"`

	// Set once by the store when the row is inserted
	PubDate time.Time `gorm:"autoCreateTime;<-:create;not null;index"`

	// Relationships
	Author      *User                 `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE" validate:"-"`
	Ingredients []IngredientForRecipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" validate:"dive"`
	Tags        []RecipeTag           `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" validate:"-"`
}

func (Recipe) TableName() string {
	return "recipes"
}

func (r Recipe) String() string {
	if r.Author != nil {
		return fmt.Sprintf("%s, %s", r.Author.Email, r.Name)
	}
	return r.Name
}

// TagIDs returns the ids of the tags linked to the recipe.
func (r Recipe) TagIDs() []uint {
	ids := make([]uint, 0, len(r.Tags))
	for _, t := range r.Tags {
		ids = append(ids, t.TagID)
	}
	return ids
}

// NewImagePath returns a collision-free storage path for an uploaded recipe
// image, keeping the extension of the original file name.
func NewImagePath(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return RecipeImageDir + uuid.NewString() + ext
}
