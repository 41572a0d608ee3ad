package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "PUBLIC"
	VisibilityPrivate Visibility = "PRIVATE"
)

// ParseVisibility accepts "public" or "private" in any case.
func ParseVisibility(s string) (Visibility, bool) {
	switch Visibility(strings.ToUpper(strings.TrimSpace(s))) {
	case VisibilityPublic:
		return VisibilityPublic, true
	case VisibilityPrivate:
		return VisibilityPrivate, true
	}
	return "", false
}

func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

type Route struct {
	ID              uint            `gorm:"primarykey" json:"id"`
	Name            string          `gorm:"type:varchar(200);not null" json:"name"`
	Description     string          `gorm:"type:text" json:"description"`
	Visibility      Visibility      `gorm:"type:varchar(10);not null;default:'PUBLIC';index" json:"visibility"`
	CoverImageURL   string          `gorm:"type:varchar(255)" json:"cover_image_url"`
	DurationSeconds int             `gorm:"not null;default:0" json:"duration_seconds"`
	DistanceKm      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"distance_km"`
	UserID          uint            `gorm:"not null;index" json:"user_id"`
	CreatedAt       time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	User       User       `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Categories []Category `gorm:"many2many:route_categories;" json:"categories"`
}

func (Route) TableName() string {
	return "routes"
}

// RouteView is the externally visible shape of a route. SavedCount and
// TotalEstimatedMinutes are computed on every read and never stored.
type RouteView struct {
	ID                    uint            `json:"id"`
	Name                  string          `json:"name"`
	Description           string          `json:"description"`
	Visibility            Visibility      `json:"visibility"`
	CoverImageURL         string          `json:"cover_image_url"`
	CreatedAt             time.Time       `json:"created_at"`
	DurationSeconds       int             `json:"duration_seconds"`
	DistanceKm            decimal.Decimal `json:"distance_km"`
	OwnerID               uint            `json:"owner_id"`
	OwnerUsername         string          `json:"owner_username"`
	Categories            []Category      `json:"categories"`
	SavedCount            int64           `json:"saved_count"`
	TotalEstimatedMinutes int             `json:"total_estimated_minutes"`
}

// VisibleTo reports whether viewerID may read the route; 0 is an anonymous viewer.
func (v RouteView) VisibleTo(viewerID uint) bool {
	return canView(v.Visibility, v.OwnerID, viewerID)
}

func (r *Route) VisibleTo(viewerID uint) bool {
	return canView(r.Visibility, r.UserID, viewerID)
}

func canView(visibility Visibility, ownerID, viewerID uint) bool {
	return visibility != VisibilityPrivate || (viewerID != 0 && ownerID == viewerID)
}

// TotalEstimatedMinutes is durationSeconds/60 (truncated) plus the stop suggestions.
func TotalEstimatedMinutes(durationSeconds int, suggestedMinutesSum int) int {
	return durationSeconds/60 + suggestedMinutesSum
}

// NewRouteView composes the stored row with its derived aggregates.
// The route's User and Categories must be preloaded.
func NewRouteView(r *Route, savedCount int64, suggestedMinutesSum int) RouteView {
	categories := r.Categories
	if categories == nil {
		categories = []Category{}
	}
	return RouteView{
		ID:                    r.ID,
		Name:                  r.Name,
		Description:           r.Description,
		Visibility:            r.Visibility,
		CoverImageURL:         r.CoverImageURL,
		CreatedAt:             r.CreatedAt,
		DurationSeconds:       r.DurationSeconds,
		DistanceKm:            r.DistanceKm,
		OwnerID:               r.UserID,
		OwnerUsername:         r.User.Username,
		Categories:            categories,
		SavedCount:            savedCount,
		TotalEstimatedMinutes: TotalEstimatedMinutes(r.DurationSeconds, suggestedMinutesSum),
	}
}
