// Package homes is the home directory: the homes visible to a user,
// home creation, and member invitations.
package homes

import (
	"errors"
	"log"
	"strings"

	"github.com/ncastellanos/casita/internal/models"
	"github.com/ncastellanos/casita/internal/store"
)

type Service struct {
	store store.Store
	logf  func(format string, v ...any)
}

func NewService(st store.Store) *Service {
	return &Service{store: st, logf: log.Printf}
}

// List returns the homes the user belongs to, annotated with the member
// count and whether the user owns them. The membership rows embedded in
// the list query are filtered to the caller, so each home's full member
// set is re-queried.
func (s *Service) List(userID string) ([]models.Home, error) {
	records, err := s.store.ListHomes(userID)
	if err != nil {
		return nil, err
	}

	homes := make([]models.Home, 0, len(records))
	for _, rec := range records {
		members, err := s.store.ListHomeMembers(rec.ID)
		if err != nil {
			return nil, err
		}

		home := rec.Home
		home.MemberCount = len(members)
		home.IsOwner = rec.OwnerID == userID
		homes = append(homes, home)
	}

	return homes, nil
}

// Create validates the name, self-heals a missing user profile row, and
// inserts the home. The backend trigger adds the owner membership row;
// callers re-fetch the list to observe the new home.
func (s *Service) Create(user models.User, name, description string) (*models.Home, error) {
	if strings.TrimSpace(name) == "" {
		return nil, models.NewValidationError("name", "must not be empty")
	}

	if err := s.ensureProfile(user); err != nil {
		return nil, err
	}

	return s.store.CreateHome(store.CreateHomeParams{
		Name:        name,
		Description: description,
		OwnerID:     user.ID,
	})
}

// ensureProfile repairs the partial-failure state where sign-up created
// the identity but not the users row.
func (s *Service) ensureProfile(user models.User) error {
	_, err := s.store.GetUserProfile(user.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	s.logf("homes: creating missing profile row for user %s", user.ID)
	return s.store.CreateUserProfile(user)
}

// Invite inserts a pending invitation for email to join homeID. The
// address is not checked against existing users or members; duplicate
// invitations are allowed.
func (s *Service) Invite(userID, homeID, email string) (*models.Invitation, error) {
	if err := models.ValidateEmail(email); err != nil {
		return nil, err
	}

	return s.store.CreateInvitation(store.CreateInvitationParams{
		HomeID:    homeID,
		Email:     email,
		InvitedBy: userID,
	})
}
