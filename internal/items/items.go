// Package items is the item catalog for a selected home, including the
// client-side search and room filters.
package items

import (
	"strings"

	"github.com/ncastellanos/casita/internal/models"
	"github.com/ncastellanos/casita/internal/store"
)

// NoLocation is the display location for items whose room reference does
// not resolve.
const NoLocation = "Sin ubicación"

// DefaultCategory applies when an item is created without a category.
const DefaultCategory = "Otros"

type CreateParams struct {
	Name        string
	Category    string
	Description string
	RoomID      string
}

type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// List returns the home's items, newest first, each annotated with the
// owning room's name or the NoLocation sentinel.
func (s *Service) List(homeID string) ([]models.Item, error) {
	records, err := s.store.ListItems(homeID)
	if err != nil {
		return nil, err
	}

	items := make([]models.Item, 0, len(records))
	for _, rec := range records {
		item := rec.Item
		if rec.Room != nil && rec.Room.Name != "" {
			item.Location = rec.Room.Name
		} else {
			item.Location = NoLocation
		}
		items = append(items, item)
	}

	return items, nil
}

// Create validates name and room, defaults the category, and inserts the
// item. Callers re-fetch the item list to observe it.
func (s *Service) Create(homeID string, params CreateParams) (*models.Item, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, models.NewValidationError("name", "must not be empty")
	}
	if params.RoomID == "" {
		return nil, models.NewValidationError("room_id", "must be set")
	}

	category := params.Category
	if strings.TrimSpace(category) == "" {
		category = DefaultCategory
	}

	return s.store.CreateItem(store.CreateItemParams{
		Name:        params.Name,
		Category:    category,
		Description: params.Description,
		HomeID:      homeID,
		RoomID:      params.RoomID,
	})
}

// Update applies a partial update to one item. Updating an unknown id
// fails with store.ErrNotFound rather than succeeding silently.
func (s *Service) Update(itemID string, update models.ItemUpdate) (*models.Item, error) {
	return s.store.UpdateItem(itemID, update)
}

// Delete removes one item. Deleting an unknown id fails with
// store.ErrNotFound rather than succeeding silently.
func (s *Service) Delete(itemID string) (*models.Item, error) {
	return s.store.DeleteItem(itemID)
}

// Filter narrows an already-fetched item list. A selected room takes
// precedence: when roomID is set the search term is ignored. Otherwise
// term matches case-insensitively against name, category, and resolved
// location.
func Filter(items []models.Item, roomID, term string) []models.Item {
	if roomID != "" {
		filtered := make([]models.Item, 0, len(items))
		for _, item := range items {
			if item.RoomID == roomID {
				filtered = append(filtered, item)
			}
		}
		return filtered
	}

	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return items
	}

	filtered := make([]models.Item, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), term) ||
			strings.Contains(strings.ToLower(item.Category), term) ||
			strings.Contains(strings.ToLower(item.Location), term) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
