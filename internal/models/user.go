package models

import "time"

// User is an account that owns runs and territories
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Height       *int      `json:"height"` // cm
	Weight       *int      `json:"weight"` // kg
	CreatedAt    time.Time `json:"-"`
}

// WeightKg returns the recorded weight, or 0 when it is unknown
func (u *User) WeightKg() float64 {
	if u == nil || u.Weight == nil {
		return 0
	}
	return float64(*u.Weight)
}

// ProfileUpdate carries the optional profile fields a user may change.
// Nil fields are left untouched.
type ProfileUpdate struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name" binding:"omitempty,max=150"`
	Height    *int    `json:"height" binding:"omitempty,min=0,max=300"`
	Weight    *int    `json:"weight" binding:"omitempty,min=0,max=500"`
}

// Registration is the payload for creating an account
type Registration struct {
	Username string `json:"username" binding:"required,max=150"`
	Password string `json:"password" binding:"required"`
	Weight   *int   `json:"weight" binding:"omitempty,min=0,max=500"`
	Height   *int   `json:"height" binding:"omitempty,min=0,max=300"`
}

// Credentials is the login payload
type Credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
