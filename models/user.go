package models

import (
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	Name     string             `bson:"name" json:"name"`
	Surname  string             `bson:"surname" json:"surname"`
	Address  string             `bson:"address,omitempty" json:"address,omitempty"`
	Birthday *time.Time         `bson:"birthday,omitempty" json:"birthday,omitempty"`
	IsAdmin  bool               `bson:"isAdmin" json:"isAdmin"`
	Insert   time.Time          `bson:"insert" json:"insert"`
	Modified *time.Time         `bson:"modified,omitempty" json:"modified,omitempty"`
}

// RegisterUserRequest is the POST /api/users payload.
type RegisterUserRequest struct {
	Email    string     `json:"email" validate:"required,email,max=255"`
	Password string     `json:"password" validate:"required,min=5,max=30"`
	Name     string     `json:"name" validate:"required,alphanum,max=50"`
	Surname  string     `json:"surname" validate:"required,alphanum,max=50"`
	Address  string     `json:"address" validate:"omitempty,alphanum,min=1,max=50"`
	Birthday *time.Time `json:"birthday"`
	IsAdmin  bool       `json:"isAdmin"`
}

// AuthenticateRequest is the POST /api/users/authentication payload.
type AuthenticateRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=5,max=30"`
}

const passwordSymbols = `:;}%!*\|{~#<^`

var birthdayFloor = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// Validate checks the tag rules plus the password policy and birthday floor.
func (r RegisterUserRequest) Validate() error {
	if err := checkStruct(r); err != nil {
		return err
	}
	if err := checkPasswordPolicy(r.Password); err != nil {
		return err
	}
	if r.Birthday != nil && !r.Birthday.After(birthdayFloor) {
		return errors.New("birthday must be after 1900")
	}
	return nil
}

// Validate checks the credential pair has a plausible shape. Whether it
// matches an account is decided later, against the store.
func (r AuthenticateRequest) Validate() error {
	return checkStruct(r)
}

func checkPasswordPolicy(password string) error {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, c := range password {
		switch {
		case c >= 'A' && c <= 'Z':
			hasUpper = true
		case c >= 'a' && c <= 'z':
			hasLower = true
		case c >= '0' && c <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, c):
			hasSymbol = true
		}
	}
	switch {
	case !hasUpper:
		return errors.New("password must contain an upper case character")
	case !hasLower:
		return errors.New("password must contain a lower case character")
	case !hasDigit:
		return errors.New("password must contain a number")
	case !hasSymbol:
		return errors.New("password must contain a symbol")
	}
	return nil
}
