package domain

import "time"

// User representa una cuenta registrada por email y password.
// VerificationCode presente significa verificación o reset pendiente.
type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	Roles            []string  `json:"roles"`
	VerificationCode *int      `json:"-"`
	ProfileID        *string   `json:"profile_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
