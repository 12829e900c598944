package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// mockRepo is an in-memory Repository for tests. Error fields let individual
// operations be forced to fail.
type mockRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*Appointment

	createErr       error
	listErr         error
	updateStatusErr error
	failStatusFor   map[uuid.UUID]error
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		items:         make(map[uuid.UUID]*Appointment),
		failStatusFor: make(map[uuid.UUID]error),
	}
}

func (m *mockRepo) Create(ctx context.Context, a *Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	cp := *a
	m.items[a.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (m *mockRepo) sortedWhere(keep func(*Appointment) bool) []*Appointment {
	var out []*Appointment
	for _, a := range m.items {
		if keep(a) {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out
}

func (m *mockRepo) ListByPatient(ctx context.Context, nhsNumber string) ([]*Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.sortedWhere(func(a *Appointment) bool { return a.Patient == nhsNumber }), nil
}

func (m *mockRepo) ListByStatus(ctx context.Context, status Status) ([]*Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.sortedWhere(func(a *Appointment) bool { return a.Status == status }), nil
}

func (m *mockRepo) ListByClinician(ctx context.Context, clinician string) ([]*Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.sortedWhere(func(a *Appointment) bool { return a.Clinician == clinician }), nil
}

func (m *mockRepo) ListByDepartment(ctx context.Context, department string) ([]*Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.sortedWhere(func(a *Appointment) bool { return a.Department == department }), nil
}

func (m *mockRepo) List(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.sortedWhere(func(*Appointment) bool { return true })
	total := len(all)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (m *mockRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateStatusErr != nil {
		return 0, m.updateStatusErr
	}
	if err := m.failStatusFor[id]; err != nil {
		return 0, err
	}
	a, ok := m.items[id]
	if !ok {
		return 0, nil
	}
	a.Status = status
	return 1, nil
}

func (m *mockRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok {
		return 0, nil
	}
	for col, val := range fields {
		switch col {
		case "patient":
			a.Patient = val.(string)
		case "status":
			a.Status = val.(Status)
		case "start_time":
			a.Time = val.(time.Time)
		case "duration":
			a.Duration = val.(string)
		case "clinician":
			a.Clinician = val.(string)
		case "department":
			a.Department = val.(string)
		case "postcode":
			a.Postcode = val.(string)
		}
	}
	return 1, nil
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return 0, nil
	}
	delete(m.items, id)
	return 1, nil
}

func (m *mockRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.items[id]
	return ok, nil
}
