package store

import (
	"encoding/json"

	"github.com/supabase-community/postgrest-go"

	"github.com/ncastellanos/casita/internal/models"
)

// PostgrestStore implements Store against a token-scoped PostgREST
// client. Construct one per request so queries run as the caller.
type PostgrestStore struct {
	client *postgrest.Client
}

func NewPostgrest(client *postgrest.Client) *PostgrestStore {
	return &PostgrestStore{client: client}
}

func (s *PostgrestStore) GetUserProfile(userID string) (*models.User, error) {
	resp, _, err := s.client.From("users").
		Select("*", "", false).
		Eq("id", userID).
		Execute()
	if err != nil {
		return nil, err
	}

	var users []models.User
	if err := json.Unmarshal(resp, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrNotFound
	}
	return &users[0], nil
}

func (s *PostgrestStore) CreateUserProfile(user models.User) error {
	row := map[string]any{
		"id":    user.ID,
		"email": user.Email,
	}
	_, _, err := s.client.From("users").
		Insert(row, false, "", "", "").
		Execute()
	return err
}

// ListHomes returns homes where userID holds a membership row. The inner
// join both filters and proves membership; row-level security prunes the
// rest.
func (s *PostgrestStore) ListHomes(userID string) ([]HomeRecord, error) {
	resp, _, err := s.client.From("homes").
		Select("*,home_members!inner(user_id,role)", "", false).
		Eq("home_members.user_id", userID).
		Execute()
	if err != nil {
		return nil, err
	}

	var homes []HomeRecord
	if err := json.Unmarshal(resp, &homes); err != nil {
		return nil, err
	}
	return homes, nil
}

func (s *PostgrestStore) ListHomeMembers(homeID string) ([]MemberRecord, error) {
	resp, _, err := s.client.From("home_members").
		Select("user_id,role", "", false).
		Eq("home_id", homeID).
		Execute()
	if err != nil {
		return nil, err
	}

	var members []MemberRecord
	if err := json.Unmarshal(resp, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (s *PostgrestStore) CreateHome(params CreateHomeParams) (*models.Home, error) {
	resp, _, err := s.client.From("homes").
		Insert(params, false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, err
	}
	return firstRow[models.Home](resp)
}

func (s *PostgrestStore) CreateInvitation(params CreateInvitationParams) (*models.Invitation, error) {
	resp, _, err := s.client.From("invitations").
		Insert(params, false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, err
	}
	return firstRow[models.Invitation](resp)
}

func (s *PostgrestStore) ListRooms(homeID string) ([]RoomRecord, error) {
	resp, _, err := s.client.From("rooms").
		Select("*,items(count)", "", false).
		Eq("home_id", homeID).
		Order("created_at", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, err
	}

	var rooms []RoomRecord
	if err := json.Unmarshal(resp, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *PostgrestStore) CreateRoom(params CreateRoomParams) (*models.Room, error) {
	resp, _, err := s.client.From("rooms").
		Insert(params, false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, err
	}
	return firstRow[models.Room](resp)
}

func (s *PostgrestStore) ListItems(homeID string) ([]ItemRecord, error) {
	resp, _, err := s.client.From("items").
		Select("*,rooms(name)", "", false).
		Eq("home_id", homeID).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, err
	}

	var items []ItemRecord
	if err := json.Unmarshal(resp, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *PostgrestStore) CreateItem(params CreateItemParams) (*models.Item, error) {
	resp, _, err := s.client.From("items").
		Insert(params, false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, err
	}
	return firstRow[models.Item](resp)
}

func (s *PostgrestStore) UpdateItem(itemID string, update models.ItemUpdate) (*models.Item, error) {
	resp, _, err := s.client.From("items").
		Update(update, "representation", "").
		Eq("id", itemID).
		Execute()
	if err != nil {
		return nil, err
	}
	return firstRow[models.Item](resp)
}

func (s *PostgrestStore) DeleteItem(itemID string) (*models.Item, error) {
	resp, _, err := s.client.From("items").
		Delete("representation", "").
		Eq("id", itemID).
		Execute()
	if err != nil {
		return nil, err
	}
	return firstRow[models.Item](resp)
}

// firstRow decodes a PostgREST row-set response and returns its first
// row. An empty set means the statement matched nothing.
func firstRow[T any](resp []byte) (*T, error) {
	var rows []T
	if err := json.Unmarshal(resp, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}
