package store

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/supabase-community/postgrest-go"

	"github.com/ncastellanos/casita/internal/models"
)

const (
	homeID = "1db9cf41-6f2e-4f3a-9c2b-6f0d5f2ab901"
	itemID = "8bb5c7e1-9d2f-4c8f-a052-3e4d6f708b91"
)

// newTestStore returns a store whose PostgREST client talks to handler.
func newTestStore(t *testing.T, handler http.HandlerFunc) *PostgrestStore {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := postgrest.NewClient(srv.URL, "", map[string]string{"apikey": "test-key"})
	client.SetAuthToken("test-token")
	return NewPostgrest(client)
}

func TestListItemsDecodesRoomEmbed(t *testing.T) {
	st := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/items", r.URL.Path)
		assert.Equal(t, "eq."+homeID, r.URL.Query().Get("home_id"))
		assert.Contains(t, r.URL.Query().Get("select"), "rooms(name)")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": "` + itemID + `", "name": "Sartén", "category": "Cocina", "home_id": "` + homeID + `",
			 "room_id": "room-1", "created_at": "2024-05-02T10:00:00Z", "updated_at": "2024-05-02T10:00:00Z",
			 "rooms": {"name": "Cocina"}},
			{"id": "item-2", "name": "Lámpara", "category": "Otros", "home_id": "` + homeID + `",
			 "room_id": "room-gone", "created_at": "2024-05-01T10:00:00Z", "updated_at": "2024-05-01T10:00:00Z",
			 "rooms": null}
		]`))
	})

	items, err := st.ListItems(homeID)
	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "Sartén", items[0].Name)
	assert.NotNil(t, items[0].Room)
	assert.Equal(t, "Cocina", items[0].Room.Name)
	assert.Nil(t, items[1].Room, "missing room embed decodes to nil")
}

func TestListRoomsDecodesCountAggregate(t *testing.T) {
	st := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rooms", r.URL.Path)
		assert.Contains(t, r.URL.Query().Get("select"), "items(count)")
		assert.Contains(t, r.URL.Query().Get("order"), "created_at")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": "room-1", "name": "Cocina", "home_id": "` + homeID + `",
			 "created_at": "2024-05-01T10:00:00Z", "updated_at": "2024-05-01T10:00:00Z",
			 "items": [{"count": 3}]},
			{"id": "room-2", "name": "Sala", "home_id": "` + homeID + `",
			 "created_at": "2024-05-02T10:00:00Z", "updated_at": "2024-05-02T10:00:00Z",
			 "items": []}
		]`))
	})

	rooms, err := st.ListRooms(homeID)
	assert.NoError(t, err)
	assert.Len(t, rooms, 2)
	assert.Equal(t, 3, rooms[0].ItemCounts[0].Count)
	assert.Empty(t, rooms[1].ItemCounts)
}

func TestListHomesFiltersOnMembership(t *testing.T) {
	st := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/homes", r.URL.Path)
		assert.Contains(t, r.URL.Query().Get("select"), "home_members!inner")
		assert.Equal(t, "eq.user-1", r.URL.Query().Get("home_members.user_id"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": "` + homeID + `", "name": "Casa Test", "description": "", "owner_id": "user-1",
			 "created_at": "2024-05-01T10:00:00Z", "updated_at": "2024-05-01T10:00:00Z",
			 "home_members": [{"user_id": "user-1", "role": "owner"}]}
		]`))
	})

	homes, err := st.ListHomes("user-1")
	assert.NoError(t, err)
	assert.Len(t, homes, 1)
	assert.Equal(t, "Casa Test", homes[0].Name)
	assert.Equal(t, "owner", homes[0].Members[0].Role)
}

func TestCreateItemReturnsInsertedRow(t *testing.T) {
	st := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/items", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`[{"id": "` + itemID + `", "name": "Lamp", "category": "Otros",
			"home_id": "` + homeID + `", "room_id": "room-1",
			"created_at": "2024-05-01T10:00:00Z", "updated_at": "2024-05-01T10:00:00Z"}]`))
	})

	item, err := st.CreateItem(CreateItemParams{
		Name:     "Lamp",
		Category: "Otros",
		HomeID:   homeID,
		RoomID:   "room-1",
	})
	assert.NoError(t, err)
	assert.Equal(t, itemID, item.ID)
}

func TestDeleteItemNotFound(t *testing.T) {
	st := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "eq."+itemID, r.URL.Query().Get("id"))

		// PostgREST reports a delete that matched nothing as an empty
		// row set, not an error.
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})

	_, err := st.DeleteItem(itemID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateItemNotFound(t *testing.T) {
	st := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})

	name := "Lamp"
	_, err := st.UpdateItem(itemID, models.ItemUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetUserProfileNotFound(t *testing.T) {
	st := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})

	_, err := st.GetUserProfile("user-1")
	assert.ErrorIs(t, err, ErrNotFound)
}
