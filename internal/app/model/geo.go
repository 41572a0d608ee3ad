package model

import (
	"time"
)

// Province is the root of the administrative hierarchy.
type Province struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (Province) TableName() string {
	return "provinces"
}

// Canton names are unique within their province.
type Canton struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	ProvinceID uint      `gorm:"not null;index:idx_cantons_province_name,unique" json:"province_id"`
	Name       string    `gorm:"type:varchar(100);not null;index:idx_cantons_province_name,unique" json:"name"`
	CreatedAt  time.Time `json:"created_at"`

	Province Province `gorm:"foreignKey:ProvinceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Canton) TableName() string {
	return "cantons"
}

// Parish is the hierarchy leaf a Place may point at. Names are unique within their canton.
type Parish struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CantonID  uint      `gorm:"not null;index:idx_parishes_canton_name,unique" json:"canton_id"`
	Name      string    `gorm:"type:varchar(100);not null;index:idx_parishes_canton_name,unique" json:"name"`
	CreatedAt time.Time `json:"created_at"`

	Canton Canton `gorm:"foreignKey:CantonID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Parish) TableName() string {
	return "parishes"
}

// HierarchyOption is the {id, nombre} pair the admin dropdowns consume.
type HierarchyOption struct {
	ID     uint   `json:"id"`
	Nombre string `json:"nombre"`
}

const (
	ClassificationClassified   = "classified"
	ClassificationUnclassified = "unclassified"
)

// Classification is the resolved Province/Canton/Parish of a place.
type Classification struct {
	Status     string `json:"status"`
	ProvinceID uint   `json:"province_id,omitempty"`
	Province   string `json:"province,omitempty"`
	CantonID   uint   `json:"canton_id,omitempty"`
	Canton     string `json:"canton,omitempty"`
	ParishID   uint   `json:"parish_id,omitempty"`
	Parish     string `json:"parish,omitempty"`
}

// Unclassified is returned for places without a hierarchy reference.
var Unclassified = Classification{Status: ClassificationUnclassified}

func (c Classification) IsClassified() bool {
	return c.Status == ClassificationClassified
}

// ProvinceSeed describes one province subtree for idempotent seeding:
// canton name -> parish names.
type ProvinceSeed struct {
	Name    string
	Cantons []CantonSeed
}

type CantonSeed struct {
	Name     string
	Parishes []string
}
