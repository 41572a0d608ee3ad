package model

import (
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	PlaceID   uint      `gorm:"not null;index" json:"place_id"`
	Text      string    `gorm:"type:text" json:"text"`
	Rating    int       `gorm:"not null" json:"rating"` // 1-5
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	User  User  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user,omitempty"`
	Place Place `gorm:"foreignKey:PlaceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Review) TableName() string {
	return "reviews"
}
