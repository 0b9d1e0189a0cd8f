package users

import "github.com/larlarbooks/larlar/pkg/patch"

// RegisterPayload represents the request body for registering an account.
type RegisterPayload struct {
	Name     string `json:"name" mod:"trim" validate:"required,max=100"`
	Email    string `json:"email" mod:"trim" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// UpdateProfilePayload is a partial update; absent keys are left alone.
type UpdateProfilePayload struct {
	FullName  patch.Field[string] `json:"fullName"`
	Username  patch.Field[string] `json:"username"`
	AvatarURL patch.Field[string] `json:"avatarUrl"`
}

type UpdateEmailPayload struct {
	Email string `json:"email" mod:"trim" validate:"required,email"`
}

type UpdatePhonePayload struct {
	Phone string `json:"phone" mod:"trim"`
}
