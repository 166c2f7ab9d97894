package reservations

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/reservation"
	slotRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/slot"
	"github.com/m04kA/SMC-VenueBooking/pkg/types"
)

// memStore хранилище в памяти с теми же условными переходами, что и SQL репозитории
type memStore struct {
	mu           sync.Mutex
	slots        map[int64]domain.SlotOwnership
	reservations map[int64]domain.ReservationDetails
	organizers   map[int64]string
	nextID       int64

	claimErr     error
	createErr    error
	recalculated []int64
}

func newMemStore() *memStore {
	return &memStore{
		slots:        make(map[int64]domain.SlotOwnership),
		reservations: make(map[int64]domain.ReservationDetails),
		organizers:   make(map[int64]string),
		nextID:       100,
	}
}

func (m *memStore) addSlot(id, managerID int64, status domain.SlotStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[id] = domain.SlotOwnership{
		Slot: domain.Slot{
			ID:         id,
			ResourceID: 7,
			Date:       time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
			StartTime:  types.MustTimeString("15:00"),
			EndTime:    types.MustTimeString("17:00"),
			Price:      types.MustMoney("100.00"),
			Status:     status,
		},
		ResourceName: "Quadra 1",
		Category:     domain.CategoryTennis,
		VenueID:      3,
		VenueName:    "Arena",
		ManagerID:    managerID,
	}
}

func (m *memStore) addReservation(id, organizerID, slotID int64, status domain.ReservationStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reservations[id] = domain.ReservationDetails{
		Reservation: domain.Reservation{
			ID:          id,
			OrganizerID: organizerID,
			SlotID:      slotID,
			Status:      status,
		},
	}
}

func (m *memStore) slotStatus(id int64) domain.SlotStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slots[id].Status
}

func (m *memStore) reservationStatus(id int64) domain.ReservationStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reservations[id].Status
}

// SlotRepository

func (m *memStore) LockOwnership(_ context.Context, id int64) (*domain.SlotOwnership, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return &s, nil
}

func (m *memStore) ClaimOpen(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.claimErr != nil {
		return m.claimErr
	}
	s, ok := m.slots[id]
	if !ok || s.Status != domain.SlotOpen {
		return slotRepo.ErrSlotNotOpen
	}
	s.Status = domain.SlotUnavailable
	m.slots[id] = s
	return nil
}

func (m *memStore) Release(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slots[id]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	s.Status = domain.SlotOpen
	m.slots[id] = s
	return nil
}

// ReservationRepository

func (m *memStore) Create(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}
	for _, existing := range m.reservations {
		if existing.SlotID == r.SlotID && !existing.IsCancelled() {
			return nil, reservationRepo.ErrSlotAlreadyReserved
		}
	}
	m.nextID++
	r.ID = m.nextID
	m.reservations[r.ID] = domain.ReservationDetails{Reservation: *r}
	return r, nil
}

func (m *memStore) GetDetails(_ context.Context, id int64) (*domain.ReservationDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	d.Slot = m.slots[d.SlotID]
	d.OrganizerName = m.organizers[d.OrganizerID]
	return &d, nil
}

func (m *memStore) ListByOrganizer(_ context.Context, organizerID int64) ([]*domain.ReservationDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]*domain.ReservationDetails, 0)
	for _, d := range m.reservations {
		if d.OrganizerID == organizerID {
			d := d
			d.Slot = m.slots[d.SlotID]
			list = append(list, &d)
		}
	}
	return list, nil
}

func (m *memStore) ListManaged(_ context.Context, filter domain.ManagedReservationsFilter) ([]*domain.ReservationDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]*domain.ReservationDetails, 0)
	for _, d := range m.reservations {
		slot := m.slots[d.SlotID]
		if slot.ManagerID != filter.ManagerID {
			continue
		}
		if filter.Status != nil && d.Status != *filter.Status {
			continue
		}
		d := d
		d.Slot = slot
		list = append(list, &d)
	}
	return list, nil
}

func (m *memStore) MarkCancelled(_ context.Context, id int64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.reservations[id]
	if !ok || d.IsCancelled() {
		return reservationRepo.ErrAlreadyCancelled
	}
	d.Status = domain.ReservationCancelled
	d.CancelledAt = &at
	m.reservations[id] = d
	return nil
}

func (m *memStore) MarkPaid(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.reservations[id]
	if !ok || d.Status != domain.ReservationPending {
		return reservationRepo.ErrStatusChanged
	}
	d.Status = domain.ReservationPaid
	m.reservations[id] = d
	return nil
}

func (m *memStore) SetRating(_ context.Context, id int64, rating domain.Rating) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.reservations[id]
	if !ok || d.Status != domain.ReservationPaid {
		return reservationRepo.ErrStatusChanged
	}
	d.ServiceRating = rating.Service
	d.FacilityRating = rating.Facility
	d.CleanlinessRating = rating.Cleanliness
	d.Comment = rating.Comment
	m.reservations[id] = d
	return nil
}

// VenueRepository

func (m *memStore) RecalculateRating(_ context.Context, venueID int64) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recalculated = append(m.recalculated, venueID)
	return 4.5, nil
}

// fakeTx выполняет функцию без транзакции
type fakeTx struct{}

func (fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	t time.Time
}

func (f fixedTime) Now() time.Time {
	return f.t
}

type countingMetrics struct {
	mu     sync.Mutex
	events map[string]int
}

func (c *countingMetrics) IncReservationEvent(event string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.events == nil {
		c.events = make(map[string]int)
	}
	c.events[event]++
}

func (c *countingMetrics) count(event string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.events[event]
}
