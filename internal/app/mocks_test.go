package app_test

import (
	"context"
	"sync"
	"time"

	"github.com/neomorfeo/licenseiq/internal/domain"
)

// --- Mocks ---

type mockOrgRepo struct {
	orgs map[string]domain.Organization
}

func newMockOrgRepo() *mockOrgRepo {
	return &mockOrgRepo{orgs: make(map[string]domain.Organization)}
}

func (m *mockOrgRepo) Create(_ context.Context, o domain.Organization) error {
	m.orgs[o.ID] = o
	return nil
}

func (m *mockOrgRepo) GetByID(_ context.Context, id string) (domain.Organization, error) {
	o, ok := m.orgs[id]
	if !ok {
		return domain.Organization{}, domain.ErrOrganizationNotFound
	}
	return o, nil
}

func (m *mockOrgRepo) List(_ context.Context, filter domain.OrgFilter) ([]domain.Organization, error) {
	out := make([]domain.Organization, 0, len(m.orgs))
	for _, o := range m.orgs {
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

type mockProductRepo struct {
	products map[string]domain.Product
	codes    map[string]domain.Product
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{
		products: make(map[string]domain.Product),
		codes:    make(map[string]domain.Product),
	}
}

func (m *mockProductRepo) Create(_ context.Context, p domain.Product) error {
	m.products[p.ID] = p
	m.codes[p.Code] = p
	return nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id string) (domain.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

func (m *mockProductRepo) GetByCode(_ context.Context, code string) (domain.Product, error) {
	p, ok := m.codes[code]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

func (m *mockProductRepo) List(_ context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type mockLicenseRepo struct {
	mu       sync.Mutex
	licenses map[string]domain.License
}

func newMockLicenseRepo() *mockLicenseRepo {
	return &mockLicenseRepo{licenses: make(map[string]domain.License)}
}

func (m *mockLicenseRepo) Create(_ context.Context, l domain.License) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.licenses[l.ID] = l
	return nil
}

func (m *mockLicenseRepo) GetByID(_ context.Context, id string) (domain.License, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.licenses[id]
	if !ok {
		return domain.License{}, domain.ErrLicenseNotFound
	}
	return l, nil
}

func (m *mockLicenseRepo) ListByOrganization(_ context.Context, orgID string) ([]domain.License, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.License
	for _, l := range m.licenses {
		if l.OrganizationID == orgID {
			out = append(out, l)
		}
	}
	return out, nil
}

// Update preserves the stored used-seat counter: only the assignment
// repository may move it, matching the storage adapter's behavior.
func (m *mockLicenseRepo) Update(_ context.Context, l domain.License) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.licenses[l.ID]
	if !ok {
		return domain.ErrLicenseNotFound
	}
	l.UsedSeats = stored.UsedSeats
	m.licenses[l.ID] = l
	return nil
}

func (m *mockLicenseRepo) FindBlocking(_ context.Context, orgID, productID string) (domain.License, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.licenses {
		if l.OrganizationID == orgID && l.ProductID == productID &&
			(l.Status == domain.StatusRequested || l.Status == domain.StatusActive) {
			return l, nil
		}
	}
	return domain.License{}, domain.ErrLicenseNotFound
}

// mockAssignmentRepo mimics the storage adapter's transactional contract:
// Create and Delete adjust the owning license's seat counter atomically
// with the assignment row, re-checking capacity on insert.
type mockAssignmentRepo struct {
	mu          sync.Mutex
	assignments map[string]domain.UserLicense
	licenses    *mockLicenseRepo
}

func newMockAssignmentRepo(licenses *mockLicenseRepo) *mockAssignmentRepo {
	return &mockAssignmentRepo{
		assignments: make(map[string]domain.UserLicense),
		licenses:    licenses,
	}
}

func assignmentKey(userID, licenseID string) string {
	return userID + "|" + licenseID
}

func (m *mockAssignmentRepo) Create(_ context.Context, a domain.UserLicense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.licenses.mu.Lock()
	defer m.licenses.mu.Unlock()

	l, ok := m.licenses.licenses[a.LicenseID]
	if !ok {
		return domain.ErrLicenseNotFound
	}
	key := assignmentKey(a.UserID, a.LicenseID)
	if _, exists := m.assignments[key]; exists {
		return &domain.DuplicateAssignmentError{UserID: a.UserID, LicenseID: a.LicenseID}
	}
	if l.Type == domain.TypeSeat {
		if l.UsedSeats >= l.TotalSeats {
			return &domain.CapacityError{LicenseID: l.ID, TotalSeats: l.TotalSeats, UsedSeats: l.UsedSeats}
		}
		l.UsedSeats++
		m.licenses.licenses[l.ID] = l
	}
	m.assignments[key] = a
	return nil
}

func (m *mockAssignmentRepo) Get(_ context.Context, userID, licenseID string) (domain.UserLicense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assignments[assignmentKey(userID, licenseID)]
	if !ok {
		return domain.UserLicense{}, domain.ErrAssignmentNotFound
	}
	return a, nil
}

func (m *mockAssignmentRepo) Delete(_ context.Context, userID, licenseID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.licenses.mu.Lock()
	defer m.licenses.mu.Unlock()

	key := assignmentKey(userID, licenseID)
	if _, ok := m.assignments[key]; !ok {
		return domain.ErrAssignmentNotFound
	}
	delete(m.assignments, key)
	if l, ok := m.licenses.licenses[licenseID]; ok && l.Type == domain.TypeSeat && l.UsedSeats > 0 {
		l.UsedSeats--
		m.licenses.licenses[licenseID] = l
	}
	return nil
}

func (m *mockAssignmentRepo) ListByOrganization(_ context.Context, orgID string) ([]domain.UserLicense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.UserLicense
	for _, a := range m.assignments {
		if a.OrganizationID == orgID {
			out = append(out, a)
		}
	}
	return out, nil
}

type mockPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

type publishedEvent struct {
	event   domain.Event
	license domain.License
}

func (m *mockPublisher) Publish(_ context.Context, e domain.Event, l domain.License) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, publishedEvent{event: e, license: l})
	return nil
}

func (m *mockPublisher) published() []publishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]publishedEvent, len(m.events))
	copy(out, m.events)
	return out
}

// tableValidator applies the domain transition table directly, standing in
// for the FSM adapter.
type tableValidator struct{}

func (tableValidator) Apply(_ context.Context, current domain.Status, event domain.Event) (domain.Status, error) {
	for _, tr := range domain.Transitions {
		if tr.Event == event && tr.Src == current {
			return tr.Dst, nil
		}
	}
	return "", &domain.TransitionError{Event: event, Current: current}
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// staticResolver returns a fixed principal, or ErrMissingPrincipal when
// unset. Tests flip the principal between calls to act as different users.
type staticResolver struct {
	principal domain.Principal
}

func (r *staticResolver) Resolve(_ context.Context) (domain.Principal, error) {
	if r.principal.UserID == "" {
		return domain.Principal{}, domain.ErrMissingPrincipal
	}
	return r.principal, nil
}
