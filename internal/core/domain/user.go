package domain

import "errors"

var ErrNotAuthenticated = errors.New("not authenticated")

// User models the authenticated shopper as returned by the remote profile
// endpoint. JSON field names follow the remote API's contract.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"e_mail_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Verified  bool   `json:"isVerified"`
}

// Session is the authenticated-identity state owned by the session manager.
// A non-nil User implies a stored credential exists; an empty Token implies
// User is nil.
type Session struct {
	Token string `json:"-"`
	User  *User  `json:"user,omitempty"`
}

// Authenticated reports whether the session holds a validated identity.
func (s Session) Authenticated() bool {
	return s.User != nil
}
