// Package model holds the values exchanged between an SDK and the flag
// evaluation backend: the user context, per-flag evaluation results, the
// aggregate "all flags" response and the evaluation request with its wire codec.
package model

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Built-in attribute names. They are reserved: custom attributes using one
// of these names are dropped when a User is built.
const (
	AttrName    = "Name"
	AttrKeyID   = "KeyId"
	AttrCountry = "Country"
	AttrEmail   = "Email"
)

var builtins = map[string]func(User) string{
	AttrName:    func(u User) string { return u.userName },
	AttrKeyID:   func(u User) string { return u.key },
	AttrCountry: func(u User) string { return u.country },
	AttrEmail:   func(u User) string { return u.email },
}

// IsBuiltinAttribute reports whether name is one of the reserved attribute names.
func IsBuiltinAttribute(name string) bool {
	_, ok := builtins[name]
	return ok
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// User is the set of attributes a flag is evaluated against. The key is
// mandatory and identifies the user; every other attribute is optional.
// A User is immutable and safe for concurrent reads.
type User struct {
	key      string
	userName string
	email    string
	country  string
	custom   map[string]string
}

// Key returns the user's unique key.
func (u User) Key() string { return u.key }

// UserName returns the display name, or "" when unset.
func (u User) UserName() string { return u.userName }

// Email returns the email, or "" when unset.
func (u User) Email() string { return u.email }

// Country returns the country, or "" when unset.
func (u User) Country() string { return u.country }

// Custom returns a copy of the custom attributes.
func (u User) Custom() map[string]string {
	return maps.Clone(u.custom)
}

// CustomLen returns the number of custom attributes.
func (u User) CustomLen() int { return len(u.custom) }

// customNames returns the custom attribute names in sorted order.
func (u User) customNames() []string {
	return slices.Sorted(maps.Keys(u.custom))
}

// Property returns the value of a built-in or custom attribute.
// Built-in names always resolve to the built-in field, even when it is "".
func (u User) Property(name string) (string, bool) {
	if get, ok := builtins[name]; ok {
		return get(u), true
	}
	v, ok := u.custom[name]
	return v, ok
}

// Equal reports whether both users carry the same key and attributes.
func (u User) Equal(other User) bool {
	return u.key == other.key &&
		u.userName == other.userName &&
		u.email == other.email &&
		u.country == other.country &&
		maps.Equal(u.custom, other.custom)
}

// String implements fmt.Stringer.
func (u User) String() string {
	return fmt.Sprintf("User{key=%q, userName=%q, email=%q, country=%q, custom=%v}",
		u.key, u.userName, u.email, u.country, u.custom)
}

// UserBuilder accumulates attributes for a User. It is not safe for
// concurrent use.
//
//	user, err := model.NewUserBuilder("user-123").
//		UserName("Ada").
//		Country("FR").
//		Custom("plan", "premium").
//		Build()
type UserBuilder struct {
	key      string
	userName string
	email    string
	country  string
	custom   map[string]string
}

// NewUserBuilder starts a builder with the given key.
func NewUserBuilder(key string) *UserBuilder {
	return &UserBuilder{key: key, custom: make(map[string]string)}
}

// Key replaces the user's key.
func (b *UserBuilder) Key(key string) *UserBuilder {
	b.key = key
	return b
}

// UserName sets the display name.
func (b *UserBuilder) UserName(name string) *UserBuilder {
	b.userName = name
	return b
}

// Email sets the email.
func (b *UserBuilder) Email(email string) *UserBuilder {
	b.email = email
	return b
}

// Country sets the country.
func (b *UserBuilder) Country(country string) *UserBuilder {
	b.country = country
	return b
}

// Custom adds a custom attribute. Blank names are ignored.
func (b *UserBuilder) Custom(name, value string) *UserBuilder {
	if !isBlank(name) {
		b.custom[name] = value
	}
	return b
}

// Build returns the User, or a ValidationError when the key is blank.
// Custom attributes named after a built-in attribute are dropped.
func (b *UserBuilder) Build() (User, error) {
	if isBlank(b.key) {
		return User{}, ValidationError{Field: "key", Message: "key shouldn't be empty"}
	}
	custom := make(map[string]string, len(b.custom))
	for name, value := range b.custom {
		if !IsBuiltinAttribute(name) {
			custom[name] = value
		}
	}
	return User{
		key:      b.key,
		userName: b.userName,
		email:    b.email,
		country:  b.country,
		custom:   custom,
	}, nil
}
