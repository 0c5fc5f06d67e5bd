package models

import "time"

// FavoriteRecipe marks a recipe as one of a user's favorites
type FavoriteRecipe struct {
	ID       uint  `gorm:"primaryKey"`
	UserID   *uint `gorm:"index"`
	RecipeID uint  `gorm:"not null;index"`

	PubDate time.Time `gorm:"autoCreateTime;<-:create;not null"`

	// Relationships
	User   *User   `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;references:ID;constraint:OnDelete:CASCADE"`
}

func (FavoriteRecipe) TableName() string {
	return "favorite_recipes"
}
