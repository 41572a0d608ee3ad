package repository

import (
	"github.com/rutasloja/rutas-backend/internal/app/model"
	"github.com/rutasloja/rutas-backend/pkg/logger"
	"gorm.io/gorm"
)

type EventFilter struct {
	PlaceID uint
}

type EventRepository interface {
	Create(event *model.Event) error
	FindByID(id uint) (*model.Event, error)
	FindAll(filter EventFilter) ([]model.Event, error)
	Update(event *model.Event) error
	Delete(id uint) error
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(event *model.Event) error {
	logger.Debug("Creating event in database", map[string]interface{}{
		"name":     event.Name,
		"place_id": event.PlaceID,
	})

	if err := r.db.Omit("Place").Create(event).Error; err != nil {
		logger.Error("Failed to create event in database", err, map[string]interface{}{
			"place_id": event.PlaceID,
		})
		return err
	}
	return r.db.Preload("Place").First(event, event.ID).Error
}

func (r *eventRepository) FindByID(id uint) (*model.Event, error) {
	var event model.Event
	if err := r.db.Preload("Place").First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// FindAll lists events by date, earliest first.
func (r *eventRepository) FindAll(filter EventFilter) ([]model.Event, error) {
	query := r.db.Model(&model.Event{}).Preload("Place")
	if filter.PlaceID != 0 {
		query = query.Where("events.place_id = ?", filter.PlaceID)
	}

	events := []model.Event{}
	if err := query.Order("events.event_date ASC").Order("events.id ASC").Find(&events).Error; err != nil {
		logger.Error("Failed to find events in database", err, map[string]interface{}{
			"place_id": filter.PlaceID,
		})
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) Update(event *model.Event) error {
	if err := r.db.Omit("Place").Save(event).Error; err != nil {
		logger.Error("Failed to update event in database", err, map[string]interface{}{
			"event_id": event.ID,
		})
		return err
	}
	return r.db.Preload("Place").First(event, event.ID).Error
}

func (r *eventRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Event{}, id).Error; err != nil {
		logger.Error("Failed to delete event from database", err, map[string]interface{}{
			"event_id": id,
		})
		return err
	}
	return nil
}
