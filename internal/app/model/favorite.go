package model

import (
	"strings"
	"time"
)

type FavoriteType string

const (
	FavoriteTypeFavorite FavoriteType = "FAV"   // marked as favorite
	FavoriteTypePending  FavoriteType = "PEND"  // wants to visit
	FavoriteTypeVisited  FavoriteType = "VISIT" // already visited
)

func ParseFavoriteType(s string) (FavoriteType, bool) {
	switch t := FavoriteType(strings.ToUpper(strings.TrimSpace(s))); t {
	case FavoriteTypeFavorite, FavoriteTypePending, FavoriteTypeVisited:
		return t, true
	}
	return "", false
}

// Favorite marks a place for a user. The same place may carry several types
// for one user, but each (user, place, type) only once.
type Favorite struct {
	ID        uint         `gorm:"primarykey" json:"id"`
	UserID    uint         `gorm:"not null;index:idx_favorites_user_place_type,unique" json:"user_id"`
	PlaceID   uint         `gorm:"not null;index:idx_favorites_user_place_type,unique;index" json:"place_id"`
	Type      FavoriteType `gorm:"type:varchar(5);not null;default:'FAV';index:idx_favorites_user_place_type,unique" json:"type"`
	CreatedAt time.Time    `json:"created_at"`

	User  User  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Place Place `gorm:"foreignKey:PlaceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"place,omitempty"`
}

func (Favorite) TableName() string {
	return "favorites"
}
