package models

import "time"

// User is a row in the users profile table, mirroring the GoTrue identity.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Home is a shared inventory namespace. MemberCount and IsOwner are
// display annotations computed per caller, not columns.
type Home struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	MemberCount int       `json:"member_count"`
	IsOwner     bool      `json:"is_owner"`
}

// Membership roles.
const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

type HomeMember struct {
	ID       string    `json:"id"`
	HomeID   string    `json:"home_id"`
	UserID   string    `json:"user_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// Room is a named subdivision of a home. ItemCount is an annotation from
// the items aggregate, not a column.
type Room struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	HomeID    string    `json:"home_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ItemCount int       `json:"item_count"`
}

// Item is a catalogued object belonging to exactly one room. Location is
// the resolved room name (or a sentinel when the room is gone).
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	HomeID      string    `json:"home_id"`
	RoomID      string    `json:"room_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemUpdate is a partial update; nil fields are left untouched.
type ItemUpdate struct {
	Name        *string `json:"name,omitempty"`
	Category    *string `json:"category,omitempty"`
	Description *string `json:"description,omitempty"`
	RoomID      *string `json:"room_id,omitempty"`
}

// Invitation statuses. This layer only ever inserts pending rows; the
// accept/reject transition belongs to the delivery collaborator.
const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationRejected = "rejected"
)

type Invitation struct {
	ID        string    `json:"id"`
	HomeID    string    `json:"home_id"`
	Email     string    `json:"email"`
	InvitedBy string    `json:"invited_by"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Session is an authenticated GoTrue session.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	User         User   `json:"user"`
}
