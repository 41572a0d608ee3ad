package service

import (
	"testing"
	"time"

	"github.com/rutasloja/rutas-backend/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventService_CreateEvent(t *testing.T) {
	s := setupServices(t)
	place := s.place(t, "Puerta de la Ciudad", "-3.990000", "-79.200000")
	date := time.Date(2026, 9, 8, 19, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   EventInput
		wantErr error
	}{
		{
			name: "with optional fields",
			input: EventInput{
				Name:             "Serenata",
				EventDate:        date,
				Category:         "Música",
				AlternateAddress: "Calle Bolívar",
				PlaceID:          place.ID,
			},
		},
		{
			name:  "blank optional fields stored as null",
			input: EventInput{Name: "Feria", EventDate: date, Category: "  ", PlaceID: place.ID},
		},
		{
			name:    "unknown place",
			input:   EventInput{Name: "Fantasma", EventDate: date, PlaceID: 9999},
			wantErr: ErrUnknownPlace,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := s.events.CreateEvent(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Puerta de la Ciudad", event.PlaceName)
			assert.True(t, date.Equal(event.EventDate))
			if tt.input.Category == "Música" {
				require.NotNil(t, event.Category)
				assert.Equal(t, "Música", *event.Category)
			} else {
				assert.Nil(t, event.Category)
				assert.Nil(t, event.ImageURL)
			}
		})
	}
}

func TestEventService_ListEventsByDate(t *testing.T) {
	s := setupServices(t)
	plaza := s.place(t, "Plaza San Sebastián", "-4.000000", "-79.200000")
	parque := s.place(t, "Parque Jipiro", "-3.970000", "-79.200000")
	base := time.Date(2026, 11, 1, 10, 0, 0, 0, time.UTC)

	for _, e := range []EventInput{
		{Name: "Tercero", EventDate: base.Add(48 * time.Hour), PlaceID: plaza.ID},
		{Name: "Primero", EventDate: base, PlaceID: parque.ID},
		{Name: "Segundo", EventDate: base.Add(24 * time.Hour), PlaceID: plaza.ID},
	} {
		_, err := s.events.CreateEvent(e)
		require.NoError(t, err)
	}

	all, err := s.events.ListEvents(repository.EventFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Primero", all[0].Name)
	assert.Equal(t, "Segundo", all[1].Name)
	assert.Equal(t, "Tercero", all[2].Name)

	atPlaza, err := s.events.ListEvents(repository.EventFilter{PlaceID: plaza.ID})
	require.NoError(t, err)
	require.Len(t, atPlaza, 2)
	assert.Equal(t, "Segundo", atPlaza[0].Name)
	assert.Equal(t, "Plaza San Sebastián", atPlaza[0].PlaceName)
}

func TestEventService_UpdateAndDeleteEvent(t *testing.T) {
	s := setupServices(t)
	first := s.place(t, "Teatro Bolívar", "-3.995000", "-79.201000")
	second := s.place(t, "Casa de la Cultura", "-3.996000", "-79.202000")
	date := time.Date(2026, 12, 20, 20, 0, 0, 0, time.UTC)

	event, err := s.events.CreateEvent(EventInput{Name: "Concierto", EventDate: date, PlaceID: first.ID})
	require.NoError(t, err)

	updated, err := s.events.UpdateEvent(event.ID, EventInput{
		Name:      "Concierto navideño",
		EventDate: date.Add(time.Hour),
		PlaceID:   second.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Concierto navideño", updated.Name)
	assert.Equal(t, "Casa de la Cultura", updated.PlaceName)

	_, err = s.events.UpdateEvent(event.ID, EventInput{Name: "x", EventDate: date, PlaceID: 9999})
	assert.ErrorIs(t, err, ErrUnknownPlace)
	_, err = s.events.UpdateEvent(9999, EventInput{Name: "x", EventDate: date, PlaceID: first.ID})
	assert.ErrorIs(t, err, ErrEventNotFound)

	require.NoError(t, s.events.DeleteEvent(event.ID))
	assert.ErrorIs(t, s.events.DeleteEvent(event.ID), ErrEventNotFound)
	_, err = s.events.GetEvent(event.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
