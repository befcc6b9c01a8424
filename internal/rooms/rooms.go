// Package rooms is the room catalog for a selected home.
package rooms

import (
	"strings"

	"github.com/ncastellanos/casita/internal/models"
	"github.com/ncastellanos/casita/internal/store"
)

type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// List returns the home's rooms in creation order, each annotated with
// its item count. A missing aggregate counts as zero.
func (s *Service) List(homeID string) ([]models.Room, error) {
	records, err := s.store.ListRooms(homeID)
	if err != nil {
		return nil, err
	}

	rooms := make([]models.Room, 0, len(records))
	for _, rec := range records {
		room := rec.Room
		if len(rec.ItemCounts) > 0 {
			room.ItemCount = rec.ItemCounts[0].Count
		}
		rooms = append(rooms, room)
	}

	return rooms, nil
}

// Create validates the name and inserts the room. Callers re-fetch the
// room list to observe it.
func (s *Service) Create(homeID, name string) (*models.Room, error) {
	if strings.TrimSpace(name) == "" {
		return nil, models.NewValidationError("name", "must not be empty")
	}

	return s.store.CreateRoom(store.CreateRoomParams{
		Name:   name,
		HomeID: homeID,
	})
}
