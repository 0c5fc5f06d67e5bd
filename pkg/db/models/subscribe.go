package models

import (
	"fmt"
	"time"
)

// Subscribe represents a user following an author
type Subscribe struct {
	ID       uint `gorm:"primaryKey"`
	UserID   uint `gorm:"not null;uniqueIndex:unique_subscription"`
	AuthorID uint `gorm:"not null;uniqueIndex:unique_subscription;index"`

	Created time.Time `gorm:"autoCreateTime;<-:create;not null"`

	// Relationships
	User   *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Author *User `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Subscribe) TableName() string {
	return "subscriptions"
}

func (s Subscribe) String() string {
	return fmt.Sprintf("user %d -> author %d", s.UserID, s.AuthorID)
}
