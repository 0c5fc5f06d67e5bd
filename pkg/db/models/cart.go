package models

import "time"

// ShoppingCart queues a recipe for a user's purchase list
type ShoppingCart struct {
	ID       uint `gorm:"primaryKey"`
	UserID   uint `gorm:"not null;uniqueIndex:unique_shopping_cart"`
	RecipeID uint `gorm:"not null;uniqueIndex:unique_shopping_cart;index"`

	PubDate time.Time `gorm:"autoCreateTime;<-:create;not null;index"`

	// Relationships
	User   *User   `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;references:ID;constraint:OnDelete:CASCADE"`
}

func (ShoppingCart) TableName() string {
	return "shopping_carts"
}

// ShoppingListItem is one aggregated line of a user's shopping list
type ShoppingListItem struct {
	Name            string
	MeasurementUnit string
	Amount          int64
}
