package models

import "time"

const (
	RoleMentor = "mentor"
	RoleMentee = "mentee"
)

type User struct {
	ID           int64     `json:"id"`
	UserName     string    `json:"user_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Bio          string    `json:"bio"`
	Skills       []string  `json:"skills"`
	ProfilePhoto string    `json:"profile_photo"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicProfile is the view of a user safe to show to other users.
type PublicProfile struct {
	ID           int64    `json:"id"`
	UserName     string   `json:"user_name"`
	Role         string   `json:"role"`
	Bio          string   `json:"bio"`
	Skills       []string `json:"skills"`
	ProfilePhoto string   `json:"profile_photo"`
}

func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:           u.ID,
		UserName:     u.UserName,
		Role:         u.Role,
		Bio:          u.Bio,
		Skills:       u.Skills,
		ProfilePhoto: u.ProfilePhoto,
	}
}
