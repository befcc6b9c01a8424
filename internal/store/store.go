// Package store is the row-level boundary with the backend of record.
// Implementations never re-check home membership: the backend's
// row-level security is the authorization boundary, and every query runs
// under the caller's token.
package store

import (
	"errors"

	"github.com/ncastellanos/casita/internal/models"
)

// ErrNotFound reports a single-row operation that matched no rows.
// PostgREST signals this as an empty result set rather than an error.
var ErrNotFound = errors.New("store: not found")

// MemberRecord is one membership row as returned by the members query.
type MemberRecord struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// HomeRecord is a home row plus the embedded membership rows the
// list-for-user query joins in. Only the caller's own membership is
// embedded (the join is filtered), so member counts need ListHomeMembers.
type HomeRecord struct {
	models.Home
	Members []MemberRecord `json:"home_members"`
}

// RoomRecord is a room row plus the items(count) aggregate embed.
type RoomRecord struct {
	models.Room
	ItemCounts []CountRecord `json:"items"`
}

type CountRecord struct {
	Count int `json:"count"`
}

// ItemRecord is an item row plus the rooms(name) embed; Room is nil when
// the reference does not resolve.
type ItemRecord struct {
	models.Item
	Room *RoomRef `json:"rooms"`
}

type RoomRef struct {
	Name string `json:"name"`
}

type CreateHomeParams struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerID     string `json:"owner_id"`
}

type CreateInvitationParams struct {
	HomeID    string `json:"home_id"`
	Email     string `json:"email"`
	InvitedBy string `json:"invited_by"`
}

type CreateRoomParams struct {
	Name   string `json:"name"`
	HomeID string `json:"home_id"`
}

type CreateItemParams struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	HomeID      string `json:"home_id"`
	RoomID      string `json:"room_id"`
}

// Store is the data-access contract for all six tables.
type Store interface {
	GetUserProfile(userID string) (*models.User, error)
	CreateUserProfile(user models.User) error

	ListHomes(userID string) ([]HomeRecord, error)
	ListHomeMembers(homeID string) ([]MemberRecord, error)
	CreateHome(params CreateHomeParams) (*models.Home, error)

	CreateInvitation(params CreateInvitationParams) (*models.Invitation, error)

	ListRooms(homeID string) ([]RoomRecord, error)
	CreateRoom(params CreateRoomParams) (*models.Room, error)

	ListItems(homeID string) ([]ItemRecord, error)
	CreateItem(params CreateItemParams) (*models.Item, error)
	UpdateItem(itemID string, update models.ItemUpdate) (*models.Item, error)
	DeleteItem(itemID string) (*models.Item, error)
}
