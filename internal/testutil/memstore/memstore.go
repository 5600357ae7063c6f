// Package memstore is an in-memory stand-in for the Postgres repositories.
// Transactions are serialised by a single mutex and roll back on error,
// which is enough to reproduce the ledger's atomicity in tests.
package memstore

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-MillService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MillService/internal/infra/storage/booking"
	enquiryRepo "github.com/m04kA/SMC-MillService/internal/infra/storage/enquiry"
	holidayRepo "github.com/m04kA/SMC-MillService/internal/infra/storage/holiday"
)

type txKey struct{}

// Store общее состояние всех фейковых репозиториев
type Store struct {
	txMu   sync.Mutex
	dataMu sync.RWMutex

	bookings      map[int64]domain.Booking
	nextBookingID int64

	enquiries map[string]domain.Enquiry
	images    map[string][]domain.Image
	nextImage int64

	events    []domain.StatusEvent
	nextEvent int64

	holidays    map[int64]domain.Holiday
	nextHoliday int64

	faults map[string]error
	clock  func() time.Time
}

// New создает пустое хранилище
func New() *Store {
	return &Store{
		bookings:  map[int64]domain.Booking{},
		enquiries: map[string]domain.Enquiry{},
		images:    map[string][]domain.Image{},
		holidays:  map[int64]domain.Holiday{},
		faults:    map[string]error{},
		clock:     time.Now,
	}
}

// Fail заставляет операцию op (например "bookings.Create") вернуть err
func (s *Store) Fail(op string, err error) {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()
	s.faults[op] = err
}

func (s *Store) fault(op string) error {
	return s.faults[op]
}

// TxManager менеджер транзакций поверх Store
func (s *Store) TxManager() *TxManager { return &TxManager{s: s} }

// Bookings репозиторий бронирований
func (s *Store) Bookings() *Bookings { return &Bookings{s: s} }

// Enquiries репозиторий заявок
func (s *Store) Enquiries() *Enquiries { return &Enquiries{s: s} }

// Holidays репозиторий выходных
func (s *Store) Holidays() *Holidays { return &Holidays{s: s} }

// BookingCount число бронирований на все даты
func (s *Store) BookingCount() int {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	return len(s.bookings)
}

// EnquiryCount число сохранённых заявок
func (s *Store) EnquiryCount() int {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	return len(s.enquiries)
}

type snapshot struct {
	bookings  map[int64]domain.Booking
	enquiries map[string]domain.Enquiry
	images    map[string][]domain.Image
	events    []domain.StatusEvent
	holidays  map[int64]domain.Holiday
}

func (s *Store) snapshot() snapshot {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	return snapshot{
		bookings:  maps.Clone(s.bookings),
		enquiries: maps.Clone(s.enquiries),
		images:    maps.Clone(s.images),
		events:    slices.Clone(s.events),
		holidays:  maps.Clone(s.holidays),
	}
}

func (s *Store) restore(snap snapshot) {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()
	s.bookings = snap.bookings
	s.enquiries = snap.enquiries
	s.images = snap.images
	s.events = snap.events
	s.holidays = snap.holidays
}

// TxManager сериализует транзакции и откатывает состояние при ошибке
type TxManager struct {
	s *Store
}

// Do выполняет fn в транзакции
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoReadOnly выполняет fn в транзакции
func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()

	snap := m.s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			m.s.restore(snap)
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		m.s.restore(snap)
		return err
	}
	return nil
}

// Bookings фейковый репозиторий бронирований
type Bookings struct {
	s *Store
}

// LockDate сериализация уже обеспечена мьютексом транзакций
func (b *Bookings) LockDate(ctx context.Context, _ time.Time) error {
	if ctx.Value(txKey{}) == nil {
		return bookingRepo.ErrTransaction
	}
	b.s.dataMu.RLock()
	defer b.s.dataMu.RUnlock()
	return b.s.fault("bookings.LockDate")
}

// ListByDate бронирования на дату по возрастанию начала
func (b *Bookings) ListByDate(_ context.Context, date time.Time) ([]*domain.Booking, error) {
	b.s.dataMu.RLock()
	defer b.s.dataMu.RUnlock()
	if err := b.s.fault("bookings.ListByDate"); err != nil {
		return nil, err
	}

	out := make([]*domain.Booking, 0)
	for _, bk := range b.s.bookings {
		if domain.SameDay(bk.Date, date) {
			bk := bk
			out = append(out, &bk)
		}
	}
	sortBookings(out)
	return out, nil
}

// Create вставляет бронь; пересечение на ту же дату ведёт себя как exclusion constraint
func (b *Bookings) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	b.s.dataMu.Lock()
	defer b.s.dataMu.Unlock()
	if err := b.s.fault("bookings.Create"); err != nil {
		return nil, err
	}

	for _, existing := range b.s.bookings {
		if domain.SameDay(existing.Date, booking.Date) && existing.Range.Overlaps(booking.Range) {
			return nil, bookingRepo.ErrOverlap
		}
	}

	b.s.nextBookingID++
	booking.ID = b.s.nextBookingID
	booking.CreatedAt = b.s.clock()
	b.s.bookings[booking.ID] = *booking
	return booking, nil
}

// Delete удаляет бронь заявки на интервал
func (b *Bookings) Delete(_ context.Context, enquiryID string, r domain.Reservation) (bool, error) {
	b.s.dataMu.Lock()
	defer b.s.dataMu.Unlock()
	if err := b.s.fault("bookings.Delete"); err != nil {
		return false, err
	}

	for id, bk := range b.s.bookings {
		if bk.EnquiryID == enquiryID && bk.Reservation().Equal(r) {
			delete(b.s.bookings, id)
			return true, nil
		}
	}
	return false, nil
}

func sortBookings(bs []*domain.Booking) {
	sort.Slice(bs, func(i, j int) bool {
		if !bs[i].Date.Equal(bs[j].Date) {
			return bs[i].Date.Before(bs[j].Date)
		}
		return bs[i].Range.Start.IsBefore(bs[j].Range.Start)
	})
}

// Enquiries фейковый репозиторий заявок
type Enquiries struct {
	s *Store
}

// Create сохраняет заявку и изображения
func (e *Enquiries) Create(_ context.Context, enq *domain.Enquiry, images []domain.Image) error {
	e.s.dataMu.Lock()
	defer e.s.dataMu.Unlock()
	if err := e.s.fault("enquiries.Create"); err != nil {
		return err
	}

	now := e.s.clock()
	enq.CreatedAt, enq.UpdatedAt = now, now
	enq.Images = make([]domain.ImageMeta, 0, len(images))

	stored := make([]domain.Image, 0, len(images))
	for _, img := range images {
		e.s.nextImage++
		img.ID = e.s.nextImage
		img.SizeBytes = int64(len(img.Data))
		stored = append(stored, img)
		enq.Images = append(enq.Images, img.ImageMeta)
	}

	e.s.enquiries[enq.ID] = cloneEnquiry(*enq)
	e.s.images[enq.ID] = stored
	return nil
}

// GetByID возвращает копию заявки
func (e *Enquiries) GetByID(_ context.Context, id string) (*domain.Enquiry, error) {
	e.s.dataMu.RLock()
	defer e.s.dataMu.RUnlock()

	enq, ok := e.s.enquiries[id]
	if !ok {
		return nil, enquiryRepo.ErrEnquiryNotFound
	}
	out := cloneEnquiry(enq)
	return &out, nil
}

// List фильтрует заявки, новые первыми
func (e *Enquiries) List(_ context.Context, filter domain.EnquiriesFilter) ([]*domain.Enquiry, error) {
	e.s.dataMu.RLock()
	defer e.s.dataMu.RUnlock()

	out := make([]*domain.Enquiry, 0)
	for _, enq := range e.s.enquiries {
		if filter.CustomerID != nil && enq.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.Status != nil && enq.Status() != *filter.Status {
			continue
		}
		if filter.Date != nil && !matchesDate(&enq, *filter.Date) {
			continue
		}
		c := cloneEnquiry(enq)
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	if filter.Offset > 0 {
		if filter.Offset >= uint64(len(out)) {
			return []*domain.Enquiry{}, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < uint64(len(out)) {
		out = out[:filter.Limit]
	}
	return out, nil
}

// Update сохраняет изменённую заявку
func (e *Enquiries) Update(_ context.Context, enq *domain.Enquiry) error {
	e.s.dataMu.Lock()
	defer e.s.dataMu.Unlock()
	if err := e.s.fault("enquiries.Update"); err != nil {
		return err
	}

	if _, ok := e.s.enquiries[enq.ID]; !ok {
		return enquiryRepo.ErrEnquiryNotFound
	}
	e.s.enquiries[enq.ID] = cloneEnquiry(*enq)
	return nil
}

// AddEvent добавляет запись истории
func (e *Enquiries) AddEvent(_ context.Context, ev *domain.StatusEvent) error {
	e.s.dataMu.Lock()
	defer e.s.dataMu.Unlock()
	if err := e.s.fault("enquiries.AddEvent"); err != nil {
		return err
	}

	e.s.nextEvent++
	ev.ID = e.s.nextEvent
	ev.CreatedAt = e.s.clock()
	e.s.events = append(e.s.events, *ev)
	return nil
}

// ListEvents история заявки в порядке записи
func (e *Enquiries) ListEvents(_ context.Context, enquiryID string) ([]*domain.StatusEvent, error) {
	e.s.dataMu.RLock()
	defer e.s.dataMu.RUnlock()

	out := make([]*domain.StatusEvent, 0)
	for _, ev := range e.s.events {
		if ev.EnquiryID == enquiryID {
			ev := ev
			out = append(out, &ev)
		}
	}
	return out, nil
}

// GetImage вложение заявки
func (e *Enquiries) GetImage(_ context.Context, enquiryID string, imageID int64) (*domain.Image, error) {
	e.s.dataMu.RLock()
	defer e.s.dataMu.RUnlock()

	for _, img := range e.s.images[enquiryID] {
		if img.ID == imageID {
			img := img
			return &img, nil
		}
	}
	return nil, enquiryRepo.ErrEnquiryNotFound
}

func matchesDate(e *domain.Enquiry, date time.Time) bool {
	if domain.SameDay(e.RequestedDate, date) {
		return true
	}
	held, ok := e.HeldReservation()
	return ok && domain.SameDay(held.Date, date)
}

func cloneEnquiry(e domain.Enquiry) domain.Enquiry {
	e.LogItems = slices.Clone(e.LogItems)
	e.Images = slices.Clone(e.Images)
	return e
}

// Holidays фейковый репозиторий выходных
type Holidays struct {
	s *Store
}

// Create добавляет правило
func (h *Holidays) Create(_ context.Context, holiday *domain.Holiday) (*domain.Holiday, error) {
	h.s.dataMu.Lock()
	defer h.s.dataMu.Unlock()

	h.s.nextHoliday++
	holiday.ID = h.s.nextHoliday
	holiday.CreatedAt = h.s.clock()
	h.s.holidays[holiday.ID] = *holiday
	return holiday, nil
}

// List правила по возрастанию ID
func (h *Holidays) List(_ context.Context) ([]*domain.Holiday, error) {
	h.s.dataMu.RLock()
	defer h.s.dataMu.RUnlock()
	if err := h.s.fault("holidays.List"); err != nil {
		return nil, err
	}

	ids := slices.Sorted(maps.Keys(h.s.holidays))
	out := make([]*domain.Holiday, 0, len(ids))
	for _, id := range ids {
		hol := h.s.holidays[id]
		out = append(out, &hol)
	}
	return out, nil
}

// Delete удаляет правило
func (h *Holidays) Delete(_ context.Context, id int64) error {
	h.s.dataMu.Lock()
	defer h.s.dataMu.Unlock()

	if _, ok := h.s.holidays[id]; !ok {
		return holidayRepo.ErrHolidayNotFound
	}
	delete(h.s.holidays, id)
	return nil
}
