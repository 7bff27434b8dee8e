package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Account is a stored credential record. Reset fields are set together or not at all.
type Account struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"-"`
	Role             string     `json:"role"`
	ResetTokenHash   *string    `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// HasPendingReset reports whether a reset token is outstanding (it may already be expired).
func (a *Account) HasPendingReset() bool {
	return a.ResetTokenHash != nil && a.ResetTokenExpiry != nil
}

// AccountProfile is the public projection returned by every auth endpoint.
type AccountProfile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (a *Account) Profile() AccountProfile {
	return AccountProfile{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
	}
}
