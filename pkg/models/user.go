package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           string    `bun:",pk" json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Email        string    `bun:",notnull" json:"email"`
	PasswordHash string    `bun:",notnull" json:"-"` // Never expose password hash
	FullName     string    `bun:",notnull" json:"fullName"`
	Username     *string   `json:"username"`
	AvatarURL    *string   `json:"avatarUrl"`
	Phone        *string   `json:"phone"`
}

// DisplayName is what the UI shows for the account, falling back to the
// email when no name was ever set.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}
