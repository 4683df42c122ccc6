package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Role is the permission level of a user. It is a closed enum: anything read
// from the outside world goes through ParseRole so handlers and services never
// compare raw strings.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// ParseRole validates an incoming role string.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleModerator, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// CanModerate reports whether the role may edit or delete other users' reviews
// and comments.
func (r Role) CanModerate() bool {
	return r == RoleModerator || r == RoleAdmin
}

// CanAdminister reports whether the role may manage users, categories, genres
// and titles.
func (r Role) CanAdminister() bool {
	return r == RoleAdmin
}

func (r Role) String() string {
	return string(r)
}

// usernameRe matches the allowed username charset (word chars plus .@+-).
var usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)

// ValidUsername reports whether the username matches the allowed charset.
func ValidUsername(username string) bool {
	return username != "" && len(username) <= 150 && usernameRe.MatchString(username)
}

// ReservedUsername reports whether the username collides with the /users/me
// sub-resource. The check is case-insensitive.
func ReservedUsername(username string) bool {
	return strings.EqualFold(username, "me")
}

type User struct {
	ID        int64     `json:"-" gorm:"primaryKey;autoIncrement"`
	Username  string    `json:"username" gorm:"uniqueIndex;size:150;not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:254;not null"`
	FirstName string    `json:"first_name" gorm:"size:150"`
	LastName  string    `json:"last_name" gorm:"size:150"`
	Bio       string    `json:"bio" gorm:"type:text"`
	Role      Role      `json:"role" gorm:"type:varchar(20);default:'user';not null"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}
