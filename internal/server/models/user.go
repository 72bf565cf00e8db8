// Package models holds the reference server's domain records.
package models

import (
	"time"

	"github.com/dmitrijs2005/artstore/internal/api"
	"github.com/shopspring/decimal"
)

type User struct {
	ID           int64
	UserName     string
	DisplayName  string
	PasswordHash []byte
	Balance      decimal.Decimal
	PhotoKey     string
	CreatedAt    time.Time
}

// ToAPI renders the user without credentials.
func (u *User) ToAPI() *api.User {
	id := u.ID
	return &api.User{
		ID:          &id,
		Username:    u.UserName,
		DisplayName: u.DisplayName,
		Balance:     u.Balance,
		Photo:       u.PhotoKey,
	}
}
