package model

import (
	"time"
)

// RouteStop places one Place inside a Route. (route_id, place_id) is unique;
// Order is positive but neither unique nor contiguous. Stops iterate by
// stop_order ASC, id ASC.
type RouteStop struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	RouteID          uint      `gorm:"not null;index:idx_route_stops_route_place,unique" json:"route_id"`
	PlaceID          uint      `gorm:"not null;index:idx_route_stops_route_place,unique;index" json:"place_id"`
	Order            int       `gorm:"column:stop_order;not null" json:"order"`
	SuggestedMinutes int       `gorm:"not null;default:0" json:"suggested_minutes"`
	Note             *string   `gorm:"type:text" json:"note,omitempty"`
	CreatedAt        time.Time `json:"created_at"`

	Route Route `gorm:"foreignKey:RouteID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Place Place `gorm:"foreignKey:PlaceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (RouteStop) TableName() string {
	return "route_stops"
}

type StopView struct {
	ID               uint      `json:"id"`
	Order            int       `json:"order"`
	CreatedAt        time.Time `json:"created_at"`
	RouteID          uint      `json:"route_id"`
	RouteName        string    `json:"route_name"`
	PlaceID          uint      `json:"place_id"`
	PlaceName        string    `json:"place_name"`
	SuggestedMinutes int       `json:"suggested_minutes"`
	Note             *string   `json:"note"`
}

// View requires Route and Place to be preloaded.
func (s *RouteStop) View() StopView {
	return StopView{
		ID:               s.ID,
		Order:            s.Order,
		CreatedAt:        s.CreatedAt,
		RouteID:          s.RouteID,
		RouteName:        s.Route.Name,
		PlaceID:          s.PlaceID,
		PlaceName:        s.Place.Name,
		SuggestedMinutes: s.SuggestedMinutes,
		Note:             s.Note,
	}
}

func StopViews(stops []RouteStop) []StopView {
	views := make([]StopView, 0, len(stops))
	for i := range stops {
		views = append(views, stops[i].View())
	}
	return views
}
