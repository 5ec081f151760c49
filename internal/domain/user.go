package domain

import "time"

const (
	RoleAdmin      = "admin"
	RoleICUManager = "icu_manager"
	RoleWardStaff  = "ward_staff"
	RoleERStaff    = "er_staff"
)

type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Ward      string    `json:"ward,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RegisterUserDTO struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6,max=100"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role,omitempty"`
	Ward     string `json:"ward,omitempty"`
}

type LoginUserDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponseDTO struct {
	Token    string `json:"token"`
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Ward     string `json:"ward,omitempty"`
}

// Actor identifies who requested a change, for the transition audit alert.
type Actor struct {
	Username string
	Name     string
}

// DisplayName prefers the human name over the login name.
func (a Actor) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.Username
}
