package rooms

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ncastellanos/casita/internal/models"
	"github.com/ncastellanos/casita/internal/store"
)

const homeID = "1db9cf41-6f2e-4f3a-9c2b-6f0d5f2ab901"

func TestListAnnotatesItemCounts(t *testing.T) {
	mockStore := &store.MockStore{}
	defer mockStore.AssertExpectations(t)

	records := []store.RoomRecord{
		{
			Room:       models.Room{ID: "room-1", Name: "Cocina", HomeID: homeID},
			ItemCounts: []store.CountRecord{{Count: 4}},
		},
		{
			// No aggregate row: count defaults to zero.
			Room: models.Room{ID: "room-2", Name: "Sala", HomeID: homeID},
		},
	}
	mockStore.On("ListRooms", homeID).Return(records, nil).Once()

	svc := NewService(mockStore)
	rooms, err := svc.List(homeID)
	assert.NoError(t, err)
	assert.Len(t, rooms, 2)
	assert.Equal(t, 4, rooms[0].ItemCount)
	assert.Equal(t, 0, rooms[1].ItemCount)
}

func TestListPropagatesBackendError(t *testing.T) {
	mockStore := &store.MockStore{}
	defer mockStore.AssertExpectations(t)

	mockStore.On("ListRooms", homeID).Return(nil, errors.New("unknown home")).Once()

	svc := NewService(mockStore)
	_, err := svc.List(homeID)
	assert.Error(t, err)
}

func TestCreateRejectsEmptyName(t *testing.T) {
	tcases := []struct {
		name     string
		roomName string
	}{
		{name: "empty", roomName: ""},
		{name: "blank", roomName: "  "},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			mockStore := &store.MockStore{}
			defer mockStore.AssertExpectations(t)

			svc := NewService(mockStore)
			_, err := svc.Create(homeID, tc.roomName)
			assert.Error(t, err)
			assert.True(t, models.IsValidation(err), "expected a validation error")
			mockStore.AssertNotCalled(t, "CreateRoom", mock.Anything)
		})
	}
}

func TestCreateInsertsRoom(t *testing.T) {
	mockStore := &store.MockStore{}
	defer mockStore.AssertExpectations(t)

	created := &models.Room{ID: "room-1", Name: "Cocina", HomeID: homeID}
	mockStore.On("CreateRoom", store.CreateRoomParams{
		Name:   "Cocina",
		HomeID: homeID,
	}).Return(created, nil).Once()

	svc := NewService(mockStore)
	room, err := svc.Create(homeID, "Cocina")
	assert.NoError(t, err)
	assert.Equal(t, created, room)
}
