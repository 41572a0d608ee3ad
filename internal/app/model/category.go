package model

import (
	"time"
)

// Category tags both places and routes (e.g. "Senderismo", "Cultura").
type Category struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	IconURL   string    `gorm:"type:varchar(255)" json:"icon_url"`
	ImageURL  string    `gorm:"type:varchar(255)" json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}
