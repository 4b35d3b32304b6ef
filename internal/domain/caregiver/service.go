package caregiver

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Profile carries optional caregiver details supplied during patient setup.
type Profile struct {
	Name  string
	Phone string
	Email string
}

// GetOrCreate returns the caregiver linked to the authenticated account,
// creating one on first use. The display name defaults to the local part of
// the account email when none was supplied.
func (s *Service) GetOrCreate(ctx context.Context, authUserID, accountEmail string, profile Profile) (*Caregiver, error) {
	existing, err := s.repo.GetByAuthUserID(ctx, authUserID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	name := profile.Name
	if name == "" {
		if at := strings.Index(accountEmail, "@"); at > 0 {
			name = accountEmail[:at]
		}
	}
	if name == "" {
		name = "Caregiver"
	}

	var email *string
	switch {
	case profile.Email != "":
		email = &profile.Email
	case accountEmail != "":
		email = &accountEmail
	}

	c := &Caregiver{
		AuthUserID:  authUserID,
		Name:        name,
		PhoneNumber: profile.Phone,
		Email:       email,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) GetByAuthUserID(ctx context.Context, authUserID string) (*Caregiver, error) {
	return s.repo.GetByAuthUserID(ctx, authUserID)
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Caregiver, error) {
	return s.repo.GetByID(ctx, id)
}
