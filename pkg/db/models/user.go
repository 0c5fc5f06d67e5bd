package models

import "time"

// Identity is any account type the catalog can attribute rows to.
// Callers inject their own user type by implementing it.
type Identity interface {
	IdentityID() uint
}

// UserRef is a bare user id usable wherever an Identity is expected.
type UserRef uint

func (r UserRef) IdentityID() uint {
	return uint(r)
}

// User is the identity table that catalog foreign keys point at
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"type:varchar(254);not null;uniqueIndex" validate:"required,email,max=254"`
	Username  string `gorm:"type:varchar(150);not null;uniqueIndex" validate:"required,max=150"`
	FirstName string `gorm:"type:varchar(150)" validate:"max=150"`
	LastName  string `gorm:"type:varchar(150)" validate:"max=150"`

	CreatedAt time.Time `gorm:"<-:create"`
}

func (User) TableName() string {
	return "users"
}

func (u User) IdentityID() uint {
	return u.ID
}
