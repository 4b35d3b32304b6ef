package caregiver

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	caregivers map[uuid.UUID]*Caregiver
	createErr  error
}

func newMockRepo() *mockRepo {
	return &mockRepo{caregivers: make(map[uuid.UUID]*Caregiver)}
}

func (m *mockRepo) Create(_ context.Context, c *Caregiver) error {
	if m.createErr != nil {
		return m.createErr
	}
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()
	m.caregivers[c.ID] = c
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Caregiver, error) {
	c, ok := m.caregivers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

func (m *mockRepo) GetByAuthUserID(_ context.Context, authUserID string) (*Caregiver, error) {
	for _, c := range m.caregivers {
		if c.AuthUserID == authUserID {
			return c, nil
		}
	}
	return nil, ErrNotFound
}

func TestGetOrCreate_CreatesWithEmailLocalPart(t *testing.T) {
	svc := NewService(newMockRepo())

	c, err := svc.GetOrCreate(context.Background(), "auth-1", "carol.smith@example.com", Profile{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Name != "carol.smith" {
		t.Errorf("expected name from email local part, got %q", c.Name)
	}
	if c.Email == nil || *c.Email != "carol.smith@example.com" {
		t.Errorf("expected account email, got %v", c.Email)
	}
}

func TestGetOrCreate_PrefersSuppliedProfile(t *testing.T) {
	svc := NewService(newMockRepo())

	c, err := svc.GetOrCreate(context.Background(), "auth-1", "carol@example.com", Profile{
		Name:  "Carol",
		Phone: "+15550001111",
		Email: "personal@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Name != "Carol" {
		t.Errorf("expected Carol, got %q", c.Name)
	}
	if c.PhoneNumber != "+15550001111" {
		t.Errorf("expected supplied phone, got %q", c.PhoneNumber)
	}
	if c.Email == nil || *c.Email != "personal@example.com" {
		t.Errorf("expected supplied email, got %v", c.Email)
	}
}

func TestGetOrCreate_FallbackName(t *testing.T) {
	svc := NewService(newMockRepo())

	c, err := svc.GetOrCreate(context.Background(), "auth-1", "", Profile{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Name != "Caregiver" {
		t.Errorf("expected fallback name, got %q", c.Name)
	}
	if c.Email != nil {
		t.Errorf("expected nil email, got %v", c.Email)
	}
}

func TestGetOrCreate_ReusesExisting(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	first, err := svc.GetOrCreate(context.Background(), "auth-1", "carol@example.com", Profile{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.GetOrCreate(context.Background(), "auth-1", "other@example.com", Profile{Name: "Ignored"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.ID != second.ID {
		t.Error("expected the existing caregiver to be reused")
	}
	if len(repo.caregivers) != 1 {
		t.Errorf("expected 1 caregiver row, got %d", len(repo.caregivers))
	}
}
