package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rutasloja/rutas-backend/internal/app/repository"
	"github.com/rutasloja/rutas-backend/internal/app/service"
)

type EventController struct {
	eventService service.EventService
}

func NewEventController(eventService service.EventService) *EventController {
	return &EventController{eventService: eventService}
}

// EventRequest is shared by create and update.
type EventRequest struct {
	Name             string    `json:"name" binding:"required,max=200"`
	Description      string    `json:"description"`
	ImageURL         string    `json:"image_url" binding:"max=255"`
	EventDate        time.Time `json:"event_date" binding:"required"`
	Category         string    `json:"category" binding:"max=100"`
	AlternateAddress string    `json:"alternate_address" binding:"max=255"`
	PlaceID          uint      `json:"place_id" binding:"required"`
}

func (r *EventRequest) input() service.EventInput {
	return service.EventInput{
		Name:             r.Name,
		Description:      r.Description,
		ImageURL:         r.ImageURL,
		EventDate:        r.EventDate,
		Category:         r.Category,
		AlternateAddress: r.AlternateAddress,
		PlaceID:          r.PlaceID,
	}
}

// ListEvents
// GET /api/v1/events?place=
func (ctrl *EventController) ListEvents(c *gin.Context) {
	var filter repository.EventFilter
	var ok bool
	if filter.PlaceID, ok = queryID(c, "place", "lugar"); !ok {
		return
	}

	events, err := ctrl.eventService.ListEvents(filter)
	if err != nil {
		respondServiceError(c, err, "list events")
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events, "count": len(events)})
}

// GetEvent
// GET /api/v1/events/:id
func (ctrl *EventController) GetEvent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	event, err := ctrl.eventService.GetEvent(id)
	if err != nil {
		respondServiceError(c, err, "get event")
		return
	}
	c.JSON(http.StatusOK, event)
}

// CreateEvent
// POST /api/v1/events
func (ctrl *EventController) CreateEvent(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	event, err := ctrl.eventService.CreateEvent(req.input())
	if err != nil {
		respondServiceError(c, err, "create event")
		return
	}
	c.JSON(http.StatusCreated, event)
}

// UpdateEvent
// PUT /api/v1/events/:id
func (ctrl *EventController) UpdateEvent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	event, err := ctrl.eventService.UpdateEvent(id, req.input())
	if err != nil {
		respondServiceError(c, err, "update event")
		return
	}
	c.JSON(http.StatusOK, event)
}

// DeleteEvent
// DELETE /api/v1/events/:id
func (ctrl *EventController) DeleteEvent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.eventService.DeleteEvent(id); err != nil {
		respondServiceError(c, err, "delete event")
		return
	}
	c.Status(http.StatusNoContent)
}
