package service

import (
	"errors"
	"strings"
	"time"

	"github.com/rutasloja/rutas-backend/internal/app/model"
	"github.com/rutasloja/rutas-backend/internal/app/repository"
	"github.com/rutasloja/rutas-backend/pkg/logger"
	"gorm.io/gorm"
)

// EventInput is the full writable state of an event.
type EventInput struct {
	Name             string
	Description      string
	ImageURL         string
	EventDate        time.Time
	Category         string
	AlternateAddress string
	PlaceID          uint
}

type EventService interface {
	CreateEvent(input EventInput) (*model.EventView, error)
	GetEvent(id uint) (*model.EventView, error)
	ListEvents(filter repository.EventFilter) ([]model.EventView, error)
	UpdateEvent(id uint, input EventInput) (*model.EventView, error)
	DeleteEvent(id uint) error
}

type eventService struct {
	eventRepo repository.EventRepository
	placeRepo repository.PlaceRepository
}

func NewEventService(
	eventRepo repository.EventRepository,
	placeRepo repository.PlaceRepository,
) EventService {
	return &eventService{
		eventRepo: eventRepo,
		placeRepo: placeRepo,
	}
}

func (s *eventService) CreateEvent(input EventInput) (*model.EventView, error) {
	if err := s.checkPlace(input.PlaceID); err != nil {
		return nil, err
	}

	event := &model.Event{}
	applyEventInput(event, input)
	if err := s.eventRepo.Create(event); err != nil {
		logger.Error("Failed to create event", err, map[string]interface{}{
			"place_id": input.PlaceID,
		})
		return nil, err
	}

	logger.Info("Event created", map[string]interface{}{
		"event_id":   event.ID,
		"place_id":   event.PlaceID,
		"event_date": event.EventDate,
	})
	view := event.View()
	return &view, nil
}

func (s *eventService) GetEvent(id uint) (*model.EventView, error) {
	event, err := s.find(id)
	if err != nil {
		return nil, err
	}
	view := event.View()
	return &view, nil
}

func (s *eventService) ListEvents(filter repository.EventFilter) ([]model.EventView, error) {
	events, err := s.eventRepo.FindAll(filter)
	if err != nil {
		return nil, err
	}
	views := make([]model.EventView, len(events))
	for i := range events {
		views[i] = events[i].View()
	}
	return views, nil
}

func (s *eventService) UpdateEvent(id uint, input EventInput) (*model.EventView, error) {
	event, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if input.PlaceID != event.PlaceID {
		if err := s.checkPlace(input.PlaceID); err != nil {
			return nil, err
		}
	}

	applyEventInput(event, input)
	if err := s.eventRepo.Update(event); err != nil {
		logger.Error("Failed to update event", err, map[string]interface{}{
			"event_id": id,
		})
		return nil, err
	}

	view := event.View()
	return &view, nil
}

func (s *eventService) DeleteEvent(id uint) error {
	if _, err := s.find(id); err != nil {
		return err
	}
	if err := s.eventRepo.Delete(id); err != nil {
		return err
	}
	logger.Info("Event deleted", map[string]interface{}{
		"event_id": id,
	})
	return nil
}

func (s *eventService) find(id uint) (*model.Event, error) {
	event, err := s.eventRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *eventService) checkPlace(placeID uint) error {
	exists, err := s.placeRepo.Exists(placeID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUnknownPlace
	}
	return nil
}

func applyEventInput(event *model.Event, input EventInput) {
	event.Name = input.Name
	event.Description = input.Description
	event.ImageURL = optionalText(input.ImageURL)
	event.EventDate = input.EventDate
	event.Category = optionalText(input.Category)
	event.AlternateAddress = optionalText(input.AlternateAddress)
	event.PlaceID = input.PlaceID
	event.Place = model.Place{}
}

// optionalText maps blank input to NULL.
func optionalText(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
