package service

import (
	"errors"
	"fmt"
)

// Base error kinds. Specific errors wrap one of these so callers can match
// either the kind or the exact case with errors.Is.
var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidReference    = errors.New("invalid reference")
	ErrDuplicateStop       = errors.New("place already in route")
	ErrDuplicateSavedRoute = errors.New("route already saved by user")
	ErrDuplicateFavorite   = errors.New("place already marked with this type")
	ErrAccessDenied        = errors.New("access denied")
)

var (
	ErrRouteNotFound    = fmt.Errorf("route: %w", ErrNotFound)
	ErrPlaceNotFound    = fmt.Errorf("place: %w", ErrNotFound)
	ErrStopNotFound     = fmt.Errorf("route stop: %w", ErrNotFound)
	ErrProvinceNotFound = fmt.Errorf("province: %w", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("category: %w", ErrNotFound)
	ErrFavoriteNotFound = fmt.Errorf("favorite: %w", ErrNotFound)
	ErrReviewNotFound   = fmt.Errorf("review: %w", ErrNotFound)
	ErrEventNotFound    = fmt.Errorf("event: %w", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user: %w", ErrNotFound)

	ErrInvalidVisibility   = fmt.Errorf("visibility must be PUBLIC or PRIVATE: %w", ErrInvalidReference)
	ErrInvalidFavoriteType = fmt.Errorf("favorite type must be FAV, PEND or VISIT: %w", ErrInvalidReference)
	ErrUnknownPlace        = fmt.Errorf("place does not exist: %w", ErrInvalidReference)
	ErrUnknownRoute        = fmt.Errorf("route does not exist: %w", ErrInvalidReference)
	ErrUnknownCategory     = fmt.Errorf("category does not exist: %w", ErrInvalidReference)
	ErrUnknownParish       = fmt.Errorf("parish does not exist: %w", ErrInvalidReference)
	ErrInvalidOrder        = fmt.Errorf("order must be positive: %w", ErrInvalidReference)
	ErrInvalidMinutes      = fmt.Errorf("suggested minutes must not be negative: %w", ErrInvalidReference)
	ErrInvalidDuration     = fmt.Errorf("duration must not be negative: %w", ErrInvalidReference)
	ErrInvalidDistance     = fmt.Errorf("distance must not be negative: %w", ErrInvalidReference)
	ErrInvalidRating       = fmt.Errorf("rating must be between 1 and 5: %w", ErrInvalidReference)
	ErrInvalidPassword     = fmt.Errorf("password must be 6 to 72 bytes: %w", ErrInvalidReference)
	ErrInvalidRole         = fmt.Errorf("role must be user or admin: %w", ErrInvalidReference)
	ErrInvalidCoordinates  = fmt.Errorf("coordinates out of range: %w", ErrInvalidReference)

	ErrRouteAccessDenied = fmt.Errorf("route belongs to another user: %w", ErrAccessDenied)
)
