package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Place is a point of interest. ParishID is the normalized hierarchy
// reference; the Legacy* columns are free text carried over from older data.
// When ParishID is set it wins, and the two are never reconciled.
type Place struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	Name        string          `gorm:"type:varchar(200);not null;index" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Latitude    decimal.Decimal `gorm:"type:decimal(10,6);not null" json:"latitude"`
	Longitude   decimal.Decimal `gorm:"type:decimal(10,6);not null" json:"longitude"`
	Address     string          `gorm:"type:varchar(255)" json:"address"`
	Hours       string          `gorm:"type:varchar(200)" json:"hours"`
	Contact     string          `gorm:"type:varchar(200)" json:"contact"`
	ImageURL    string          `gorm:"type:varchar(255)" json:"image_url"`

	ParishID *uint   `gorm:"index" json:"parish_id,omitempty"`
	Parish   *Parish `gorm:"foreignKey:ParishID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`

	LegacyProvince *string `gorm:"type:varchar(100)" json:"legacy_province,omitempty"`
	LegacyCanton   *string `gorm:"type:varchar(100)" json:"legacy_canton,omitempty"`
	LegacyParish   *string `gorm:"type:varchar(100)" json:"legacy_parish,omitempty"`

	Categories []Category `gorm:"many2many:place_categories;" json:"categories"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Place) TableName() string {
	return "places"
}

// PlaceDetail is a place plus its resolved hierarchy classification.
type PlaceDetail struct {
	Place
	Classification Classification `json:"classification"`
}

// RatingSummary aggregates the reviews of one place.
type RatingSummary struct {
	PlaceID uint    `json:"place_id"`
	Count   int64   `json:"count"`
	Average float64 `json:"average"`
}
