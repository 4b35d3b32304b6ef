package patient

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

type linkKey struct {
	patientID   uuid.UUID
	caregiverID uuid.UUID
}

type mockRepo struct {
	patients map[uuid.UUID]*Patient
	links    map[linkKey]*Link
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		patients: make(map[uuid.UUID]*Patient),
		links:    make(map[linkKey]*Link),
	}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (m *mockRepo) GetByPhone(_ context.Context, phone string) (*Patient, error) {
	for _, p := range m.patients {
		if p.PhoneNumber == phone {
			return p, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error {
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.patients, id)
	return nil
}

func (m *mockRepo) ListByCaregiver(_ context.Context, caregiverID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	var result []*Patient
	for key, link := range m.links {
		if link.CaregiverID == caregiverID {
			if p, ok := m.patients[key.patientID]; ok {
				result = append(result, p)
			}
		}
	}
	return result, len(result), nil
}

func (m *mockRepo) LinkCaregiver(_ context.Context, patientID, caregiverID uuid.UUID, isPrimary bool) error {
	key := linkKey{patientID, caregiverID}
	if _, exists := m.links[key]; exists {
		return nil // upsert semantics
	}
	m.links[key] = &Link{PatientID: patientID, CaregiverID: caregiverID, IsPrimary: isPrimary}
	return nil
}

func TestGetOrCreateByPhone_CreatesOnce(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	first, err := svc.GetOrCreateByPhone(ctx, "Jane Doe", "+15551234567", "America/Toronto")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.GetOrCreateByPhone(ctx, "Different Name", "+15551234567", "America/New_York")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.ID != second.ID {
		t.Error("expected same patient for same phone number")
	}
	if len(repo.patients) != 1 {
		t.Errorf("expected exactly one patient row, got %d", len(repo.patients))
	}
	// The second call must not overwrite the original row.
	if second.Name != "Jane Doe" {
		t.Errorf("expected original name preserved, got %q", second.Name)
	}
}

func TestGetOrCreateByPhone_DistinctPhones(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	a, _ := svc.GetOrCreateByPhone(ctx, "A", "+15551110000", "UTC")
	b, _ := svc.GetOrCreateByPhone(ctx, "B", "+15552220000", "UTC")
	if a.ID == b.ID {
		t.Error("expected distinct patients for distinct phones")
	}
}

func TestLinkCaregiver_DuplicateTolerated(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	patientID := uuid.New()
	caregiverID := uuid.New()
	repo.patients[patientID] = &Patient{ID: patientID, Name: "Jane"}

	if err := svc.LinkCaregiver(ctx, patientID, caregiverID, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.LinkCaregiver(ctx, patientID, caregiverID, true); err != nil {
		t.Fatalf("duplicate link should be tolerated, got: %v", err)
	}
	if len(repo.links) != 1 {
		t.Errorf("expected one link row, got %d", len(repo.links))
	}
}

func TestUpdate_RequiresName(t *testing.T) {
	svc := NewService(newMockRepo())
	err := svc.Update(context.Background(), &Patient{ID: uuid.New()})
	if err == nil {
		t.Error("expected error for empty name")
	}
}
