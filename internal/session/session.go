// Package session owns the current authenticated identity: the sign-up,
// sign-in and sign-out flows, a state machine over the session, observer
// subscriptions for session changes, and token refresh ahead of expiry.
package session

import (
	"log"
	"sync"
	"time"

	"github.com/ncastellanos/casita/internal/models"
	"github.com/ncastellanos/casita/internal/store"
)

// State of the session. The manager starts at StateUnknown and resolves
// it on the first auth operation.
type State int

const (
	StateUnknown State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

type EventType string

const (
	EventSignedIn       EventType = "SIGNED_IN"
	EventSignedOut      EventType = "SIGNED_OUT"
	EventTokenRefreshed EventType = "TOKEN_REFRESHED"
)

// Event is a session-change notification pushed to subscribers.
type Event struct {
	Type   EventType `json:"type"`
	UserID string    `json:"user_id,omitempty"`
	Email  string    `json:"email,omitempty"`
}

// AuthAPI is the auth collaborator boundary. auth.Client satisfies it.
type AuthAPI interface {
	SignUp(email, password string) (*models.Session, error)
	SignIn(email, password string) (*models.Session, error)
	SignOut(accessToken string) error
	Refresh(refreshToken string) (*models.Session, error)
}

// StoreFactory builds a store bound to an access token, so the profile
// row insert after sign-up runs as the new identity.
type StoreFactory func(token string) store.Store

// refreshMargin is how long before expiry the token is refreshed.
const refreshMargin = 30 * time.Second

const subscriberBuffer = 8

type Manager struct {
	api    AuthAPI
	stores StoreFactory
	logf   func(format string, v ...any)

	mu           sync.Mutex
	state        State
	session      *models.Session
	refreshTimer *time.Timer
	subscribers  map[int]chan Event
	nextSubID    int
	closed       bool
}

func NewManager(api AuthAPI, stores StoreFactory) *Manager {
	return &Manager{
		api:         api,
		stores:      stores,
		logf:        log.Printf,
		state:       StateUnknown,
		subscribers: make(map[int]chan Event),
	}
}

// SetLogf overrides the manager's logger. Tests use it to capture the
// partial-failure log line.
func (m *Manager) SetLogf(logf func(format string, v ...any)) {
	m.logf = logf
}

// SignUp creates a backend identity and its users profile row. A failed
// profile insert does not fail the sign-up: the identity already exists,
// the discrepancy is logged, and the row is recreated on the next home
// creation.
func (m *Manager) SignUp(email, password string) (*models.Session, error) {
	if err := models.ValidateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, models.NewValidationError("password", "must not be empty")
	}

	sess, err := m.api.SignUp(email, password)
	if err != nil {
		m.resolveUnauthenticated()
		return nil, err
	}

	if m.stores != nil {
		st := m.stores(sess.AccessToken)
		if err := st.CreateUserProfile(sess.User); err != nil {
			m.logf("session: identity %s created but profile insert failed: %v", sess.User.ID, err)
		}
	}

	m.setSession(sess, EventSignedIn)
	return sess, nil
}

// SignIn authenticates existing credentials.
func (m *Manager) SignIn(email, password string) (*models.Session, error) {
	sess, err := m.api.SignIn(email, password)
	if err != nil {
		m.resolveUnauthenticated()
		return nil, err
	}

	m.setSession(sess, EventSignedIn)
	return sess, nil
}

// SignOut invalidates the current session. The local session is cleared
// even when the backend call fails.
func (m *Manager) SignOut() error {
	m.mu.Lock()
	sess := m.session
	m.mu.Unlock()

	var err error
	if sess != nil {
		err = m.api.SignOut(sess.AccessToken)
	}

	m.clearSession(EventSignedOut)
	return err
}

// CurrentIdentity returns the identity behind the most recent session
// check, or nil when there is none, plus the session state.
func (m *Manager) CurrentIdentity() (*models.User, State) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return nil, m.state
	}
	user := m.session.User
	return &user, m.state
}

// Subscribe registers an observer for session-change events. The channel
// is buffered; a subscriber that falls behind misses events instead of
// blocking the manager. The returned func unsubscribes and must be
// called before discarding the channel.
func (m *Manager) Subscribe() (<-chan Event, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSubID
	m.nextSubID++

	ch := make(chan Event, subscriberBuffer)
	m.subscribers[id] = ch

	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if sub, ok := m.subscribers[id]; ok {
			delete(m.subscribers, id)
			close(sub)
		}
	}
}

// Close stops the refresh timer and drops all subscribers. The manager
// is unusable afterwards.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.closed = true

	if m.refreshTimer != nil {
		m.refreshTimer.Stop()
		m.refreshTimer = nil
	}
	for id, ch := range m.subscribers {
		delete(m.subscribers, id)
		close(ch)
	}
}

func (m *Manager) setSession(sess *models.Session, event EventType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}

	m.session = sess
	m.state = StateAuthenticated
	m.scheduleRefreshLocked(sess)
	m.publishLocked(Event{Type: event, UserID: sess.User.ID, Email: sess.User.Email})
}

func (m *Manager) clearSession(event EventType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var evt Event
	evt.Type = event
	if m.session != nil {
		evt.UserID = m.session.User.ID
		evt.Email = m.session.User.Email
	}

	m.session = nil
	m.state = StateUnauthenticated
	if m.refreshTimer != nil {
		m.refreshTimer.Stop()
		m.refreshTimer = nil
	}
	if !m.closed {
		m.publishLocked(evt)
	}
}

// resolveUnauthenticated settles the initial unknown state after a
// failed auth attempt without touching an existing session.
func (m *Manager) resolveUnauthenticated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateUnknown {
		m.state = StateUnauthenticated
	}
}

func (m *Manager) scheduleRefreshLocked(sess *models.Session) {
	if m.refreshTimer != nil {
		m.refreshTimer.Stop()
		m.refreshTimer = nil
	}
	if sess.ExpiresIn <= 0 || sess.RefreshToken == "" {
		return
	}

	delay := time.Duration(sess.ExpiresIn)*time.Second - refreshMargin
	if delay < time.Second {
		delay = time.Second
	}

	refreshToken := sess.RefreshToken
	m.refreshTimer = time.AfterFunc(delay, func() {
		m.refresh(refreshToken)
	})
}

// refresh exchanges the refresh token shortly before expiry. Failure is
// remote invalidation: the session is cleared and observers see a
// sign-out.
func (m *Manager) refresh(refreshToken string) {
	m.mu.Lock()
	if m.closed || m.session == nil || m.session.RefreshToken != refreshToken {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	sess, err := m.api.Refresh(refreshToken)
	if err != nil {
		m.logf("session: token refresh failed, signing out: %v", err)
		m.clearSession(EventSignedOut)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.session = sess
	m.state = StateAuthenticated
	m.scheduleRefreshLocked(sess)
	m.publishLocked(Event{Type: EventTokenRefreshed, UserID: sess.User.ID, Email: sess.User.Email})
}

func (m *Manager) publishLocked(evt Event) {
	for _, ch := range m.subscribers {
		select {
		case ch <- evt:
		default:
			m.logf("session: dropping %s event for slow subscriber", evt.Type)
		}
	}
}
