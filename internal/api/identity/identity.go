// Package identity carries the acting-user value threaded through each
// request. There is no ambient current-user state: middleware decodes the
// bearer token into an Identity and everything downstream takes it as an
// argument.
package identity

import "reviewhub/internal/api/models"

type Identity struct {
	UserID        int64
	Username      string
	Role          models.Role
	Authenticated bool
}

// Anonymous is the identity of requests with no (or an invalid) bearer token.
func Anonymous() Identity {
	return Identity{Role: models.RoleUser}
}

// Owns reports whether the identity authored the object with the given author
// id.
func (i Identity) Owns(authorID int64) bool {
	return i.Authenticated && i.UserID == authorID
}

// CanModerate reports whether the identity may write to other users' reviews
// and comments.
func (i Identity) CanModerate() bool {
	return i.Authenticated && i.Role.CanModerate()
}

// CanAdminister reports whether the identity holds the admin role.
func (i Identity) CanAdminister() bool {
	return i.Authenticated && i.Role.CanAdminister()
}
