package model

import (
	"time"
)

// Event is a dated happening hosted at a Place.
type Event struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	Name             string    `gorm:"type:varchar(200);not null" json:"name"`
	Description      string    `gorm:"type:text" json:"description"`
	ImageURL         *string   `gorm:"type:varchar(255)" json:"image_url"`
	EventDate        time.Time `gorm:"not null;index" json:"event_date"`
	Category         *string   `gorm:"type:varchar(100)" json:"category"`
	AlternateAddress *string   `gorm:"type:varchar(255)" json:"alternate_address"` // when not held at the place's own address
	PlaceID          uint      `gorm:"not null;index" json:"place_id"`

	Place Place `gorm:"foreignKey:PlaceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Event) TableName() string {
	return "events"
}

// EventView adds the host place name.
type EventView struct {
	Event
	PlaceName string `json:"place_name"`
}

// View requires Place to be preloaded.
func (e *Event) View() EventView {
	return EventView{Event: *e, PlaceName: e.Place.Name}
}
