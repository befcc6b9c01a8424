package store

import (
	"github.com/stretchr/testify/mock"

	"github.com/ncastellanos/casita/internal/models"
)

// MockStore is a testify mock of Store for service and handler tests.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetUserProfile(userID string) (*models.User, error) {
	args := m.Called(userID)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) CreateUserProfile(user models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStore) ListHomes(userID string) ([]HomeRecord, error) {
	args := m.Called(userID)
	if homes, ok := args.Get(0).([]HomeRecord); ok {
		return homes, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) ListHomeMembers(homeID string) ([]MemberRecord, error) {
	args := m.Called(homeID)
	if members, ok := args.Get(0).([]MemberRecord); ok {
		return members, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) CreateHome(params CreateHomeParams) (*models.Home, error) {
	args := m.Called(params)
	if home, ok := args.Get(0).(*models.Home); ok {
		return home, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) CreateInvitation(params CreateInvitationParams) (*models.Invitation, error) {
	args := m.Called(params)
	if inv, ok := args.Get(0).(*models.Invitation); ok {
		return inv, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) ListRooms(homeID string) ([]RoomRecord, error) {
	args := m.Called(homeID)
	if rooms, ok := args.Get(0).([]RoomRecord); ok {
		return rooms, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) CreateRoom(params CreateRoomParams) (*models.Room, error) {
	args := m.Called(params)
	if room, ok := args.Get(0).(*models.Room); ok {
		return room, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) ListItems(homeID string) ([]ItemRecord, error) {
	args := m.Called(homeID)
	if items, ok := args.Get(0).([]ItemRecord); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) CreateItem(params CreateItemParams) (*models.Item, error) {
	args := m.Called(params)
	if item, ok := args.Get(0).(*models.Item); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) UpdateItem(itemID string, update models.ItemUpdate) (*models.Item, error) {
	args := m.Called(itemID, update)
	if item, ok := args.Get(0).(*models.Item); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) DeleteItem(itemID string) (*models.Item, error) {
	args := m.Called(itemID)
	if item, ok := args.Get(0).(*models.Item); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}
