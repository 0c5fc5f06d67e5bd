package models

import "fmt"

// Ingredient is a catalog entry for an ingredient type and its unit
type Ingredient struct {
	ID              uint   `gorm:"primaryKey"`
	Name            string `gorm:"type:varchar(200);not null;index" validate:"required,max=200"`
	MeasurementUnit string `gorm:"type:varchar(200);not null" validate:"required,max=200"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}

func (i Ingredient) String() string {
	return fmt.Sprintf("%s, %s.", i.Name, i.MeasurementUnit)
}

// IngredientForRecipe quantifies an ingredient within a recipe
type IngredientForRecipe struct {
	ID           uint `gorm:"primaryKey"`
	RecipeID     uint `gorm:"not null;uniqueIndex:unique_recipe_ingredient"`
	IngredientID uint `gorm:"not null;uniqueIndex:unique_recipe_ingredient;index" validate:"required"`
	Amount       int  `gorm:"not null;default:1;check:chk_recipe_ingredients_amount,amount >= 1" validate:"min=1"`

	// Relationships
	Ingredient *Ingredient `gorm:"foreignKey:IngredientID;references:ID;constraint:OnDelete:CASCADE" validate:"-"`
}

func (IngredientForRecipe) TableName() string {
	return "recipe_ingredients"
}
