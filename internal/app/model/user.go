package model

import (
	"time"
)

type UserRole string

const (
	RoleUser  UserRole = "user"  // regular traveller
	RoleAdmin UserRole = "admin" // curates places, events and the hierarchy
)

type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                  // user ID
	Username     string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"` // login name
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`                     // login email
	PasswordHash string    `gorm:"not null" json:"-"`                                     // bcrypt hash
	DisplayName  string    `gorm:"type:varchar(200)" json:"display_name"`                 // shown in the feed
	PhotoURL     string    `gorm:"type:varchar(255)" json:"photo_url"`                    // avatar
	Role         UserRole  `gorm:"type:varchar(20);default:'user'" json:"role"`           // permissions
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserStats mirrors the counters shown on the profile screen.
type UserStats struct {
	Favorites int64 `json:"favorites"`
	Visited   int64 `json:"visited"`
	Routes    int64 `json:"routes"`
}
