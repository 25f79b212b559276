package models

import "time"

// CreateUserRequest is the inbound payload of the account-creation endpoint.
// The requested group is carried as a code and resolved against the store
// during admission; the caller never supplies numeric ids.
type CreateUserRequest struct {
	Login       string     `json:"login"`
	Secret      string     `json:"secret"`
	UserGroup   string     `json:"user_group"`
	CreatedDate *time.Time `json:"created_date,omitempty"`
}

// ToUser converts the request into a candidate [User]. Group and state
// references are left unset: both are resolved by the admission controller.
func (r CreateUserRequest) ToUser() User {
	user := User{
		Login:  r.Login,
		Secret: r.Secret,
	}
	if r.CreatedDate != nil {
		user.CreatedDate = *r.CreatedDate
	}

	return user
}
