package model

import (
	"time"
)

// SavedRoute is a user's bookmark of a route, ordered within the user's list.
type SavedRoute struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_saved_routes_user_route,unique" json:"user_id"`
	RouteID   uint      `gorm:"not null;index:idx_saved_routes_user_route,unique;index" json:"route_id"`
	Order     int       `gorm:"column:saved_order;not null;default:0" json:"order"`
	CreatedAt time.Time `json:"created_at"`

	User  User  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Route Route `gorm:"foreignKey:RouteID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (SavedRoute) TableName() string {
	return "saved_routes"
}

type SavedRouteView struct {
	ID        uint      `json:"id"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	RouteID   uint      `json:"route_id"`
	RouteName string    `json:"route_name"`
}

// View requires User and Route to be preloaded.
func (s *SavedRoute) View() SavedRouteView {
	return SavedRouteView{
		ID:        s.ID,
		Order:     s.Order,
		CreatedAt: s.CreatedAt,
		UserID:    s.UserID,
		Username:  s.User.Username,
		RouteID:   s.RouteID,
		RouteName: s.Route.Name,
	}
}
