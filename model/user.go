// Package model holds the records the samples stream: users, their
// comments and posts.
package model

import (
	"fmt"
	"strings"

	"github.com/kbukum/fluxkit/errors"
	"github.com/kbukum/fluxkit/validation"
)

// User is a person identified by a single-word given name and surname.
type User struct {
	Name    string `json:"name" validate:"required,word"`
	Surname string `json:"surname" validate:"required,word"`
}

// NewUser creates a User.
func NewUser(name, surname string) *User {
	return &User{Name: name, Surname: surname}
}

// SetName replaces the given name.
func (u *User) SetName(name string) { u.Name = name }

// FullName returns "Name Surname".
func (u *User) FullName() string { return u.Name + " " + u.Surname }

// String renders the user as User(name=<n>, surname=<s>).
func (u *User) String() string {
	if u == nil {
		return "User(null)"
	}
	return fmt.Sprintf("User(name=%s, surname=%s)", u.Name, u.Surname)
}

// Validate checks the struct tags.
func (u *User) Validate() error {
	return validation.Validate(u)
}

// ParseOption adjusts how ParseUser normalizes the two parts.
type ParseOption func(*parseOptions)

type parseOptions struct {
	upperName    bool
	upperSurname bool
}

// UpperName uppercases the given name.
func UpperName() ParseOption {
	return func(o *parseOptions) { o.upperName = true }
}

// UpperSurname uppercases the surname.
func UpperSurname() ParseOption {
	return func(o *parseOptions) { o.upperSurname = true }
}

// ParseUser splits "Given Family" on a single space. Anything that is not
// exactly two non-empty words is an INVALID_FORMAT fault.
func ParseUser(full string, opts ...ParseOption) (*User, error) {
	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}

	parts := strings.Split(full, " ")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, errors.InvalidFormat(full, "Name Surname")
	}

	u := NewUser(parts[0], parts[1])
	if o.upperName {
		u.Name = strings.ToUpper(u.Name)
	}
	if o.upperSurname {
		u.Surname = strings.ToUpper(u.Surname)
	}
	if err := u.Validate(); err != nil {
		return nil, errors.InvalidFormat(full, "Name Surname").WithCause(err)
	}
	return u, nil
}
