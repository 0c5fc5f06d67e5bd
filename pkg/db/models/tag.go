package models

// Tag represents a colored label used to categorize recipes
type Tag struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"type:varchar(100);not null;uniqueIndex" validate:"required,max=100"`
	Color string `gorm:"type:varchar(10);not null;uniqueIndex" validate:"required,max=10"`
	Slug  string `gorm:"type:varchar(100);not null;index" validate:"required,slug,max=100"`
}

func (Tag) TableName() string {
	return "tags"
}

// RecipeTag links a recipe to one of its tags
type RecipeTag struct {
	ID       uint `gorm:"primaryKey"`
	RecipeID uint `gorm:"not null;uniqueIndex:unique_recipe_tag"`
	TagID    uint `gorm:"not null;uniqueIndex:unique_recipe_tag;index"`

	// Relationships
	Tag *Tag `gorm:"foreignKey:TagID;references:ID;constraint:OnDelete:CASCADE"`
}

func (RecipeTag) TableName() string {
	return "recipe_tags"
}
