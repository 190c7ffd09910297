package dto

import "time"

type UserBasicDTO struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	JobTitle    string `json:"jobTitle"`
	Department  string `json:"department"`
	PhotoURL    string `json:"photoUrl"`
}

type UserDTO struct {
	ID              string        `json:"id"`
	Username        string        `json:"username"`
	Email           string        `json:"email"`
	FirstName       string        `json:"firstName"`
	LastName        string        `json:"lastName"`
	DisplayName     string        `json:"displayName"`
	JobTitle        string        `json:"jobTitle"`
	Department      string        `json:"department"`
	PhoneNumber     string        `json:"phoneNumber"`
	PhotoURL        string        `json:"photoUrl"`
	IsActive        bool          `json:"isActive"`
	HasSeatAssigned bool          `json:"hasSeatAssigned"`
	AssignedSeat    *SeatBasicDTO `json:"assignedSeat"`
	Roles           []string      `json:"roles"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// UserUpdateDTO holds the profile fields a user (or an admin) may change.
type UserUpdateDTO struct {
	FirstName   string  `json:"firstName" validate:"required,max=100"`
	LastName    string  `json:"lastName" validate:"required,max=100"`
	DisplayName string  `json:"displayName" validate:"max=200"`
	JobTitle    string  `json:"jobTitle" validate:"max=100"`
	Department  string  `json:"department" validate:"max=100"`
	PhoneNumber string  `json:"phoneNumber" validate:"max=50"`
	PhotoURL    *string `json:"photoUrl" validate:"omitempty,max=500"`
}

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterDTO struct {
	Email       string `json:"email" validate:"required,email,max=256"`
	Password    string `json:"password" validate:"required,min=8"`
	FirstName   string `json:"firstName" validate:"required,max=100"`
	LastName    string `json:"lastName" validate:"required,max=100"`
	DisplayName string `json:"displayName" validate:"max=200"`
	JobTitle    string `json:"jobTitle" validate:"max=100"`
	Department  string `json:"department" validate:"max=100"`
	PhoneNumber string `json:"phoneNumber" validate:"max=50"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type AuthResponse struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refreshToken"`
	Expiration   time.Time `json:"expiration"`
	User         UserDTO   `json:"user"`
}
