// Package ledger is the authoritative record of reserved intervals per date.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MillService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MillService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-MillService/internal/scheduling"
)

// Service журнал бронирований
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	metrics     MetricsRecorder
	logger      Logger
}

// NewService создает журнал бронирований; metrics может быть nil
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Reserve атомарно проверяет, что интервал свободен, и занимает его за заявкой.
// Собственные бронирования заявки в проверке не участвуют; повторный вызов
// с тем же интервалом ничего не меняет.
// При пересечении возвращает *domain.ConflictError со всеми бронями на дату.
// Если в контексте уже есть транзакция, резервирование выполняется в ней.
// Достаточно READ COMMITTED: advisory-блокировка даты упорядочивает резервации,
// а каждый запрос после неё видит уже зафиксированные брони.
func (s *Service) Reserve(ctx context.Context, reservation domain.Reservation, enquiryID string) error {
	if err := reservation.Range.Validate(); err != nil {
		return err
	}
	if enquiryID == "" {
		return fmt.Errorf("%w: enquiry id is required", domain.ErrValidation)
	}

	date := domain.DateOnly(reservation.Date)
	result := resultError

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.bookingRepo.LockDate(ctx, date); err != nil {
			return fmt.Errorf("%w: lock date: %v", ErrInternal, err)
		}

		existing, err := s.bookingRepo.ListByDate(ctx, date)
		if err != nil {
			return fmt.Errorf("%w: list bookings: %v", ErrInternal, err)
		}

		booked := make([]domain.TimeRange, 0, len(existing))
		others := make([]domain.TimeRange, 0, len(existing))
		for _, b := range existing {
			booked = append(booked, b.Range)
			if b.EnquiryID != enquiryID {
				others = append(others, b.Range)
				continue
			}
			if b.Range == reservation.Range {
				result = resultHeld
				return nil
			}
		}

		if !scheduling.IsFree(reservation.Range, others) {
			result = resultConflict
			return s.conflict(date, reservation.Range, booked)
		}

		_, err = s.bookingRepo.Create(ctx, &domain.Booking{
			Date:      date,
			Range:     reservation.Range,
			EnquiryID: enquiryID,
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrOverlap) {
				result = resultConflict
				return s.conflict(date, reservation.Range, booked)
			}
			return fmt.Errorf("%w: create booking: %v", ErrInternal, err)
		}

		result = resultReserved
		return nil
	})

	s.observe(result)

	switch {
	case err == nil:
		s.logger.Info("Reserve: enquiry=%s %s %s-%s %s", enquiryID, date.Format(domain.DateFormat),
			reservation.Range.Start, reservation.Range.End, result)
		return nil
	case errors.Is(err, domain.ErrConflict):
		s.logger.Warn("Reserve: enquiry=%s conflict: %v", enquiryID, err)
		return err
	default:
		s.logger.Error("Reserve: enquiry=%s failed: %v", enquiryID, err)
		return fmt.Errorf("%w: Reserve: %v", ErrInternal, err)
	}
}

// Release снимает бронь заявки на интервал. Отсутствующая бронь не ошибка.
func (s *Service) Release(ctx context.Context, reservation domain.Reservation, enquiryID string) error {
	date := domain.DateOnly(reservation.Date)

	var deleted bool
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.bookingRepo.LockDate(ctx, date); err != nil {
			return err
		}
		var err error
		deleted, err = s.bookingRepo.Delete(ctx, enquiryID, domain.Reservation{Date: date, Range: reservation.Range})
		return err
	})
	if err != nil {
		s.logger.Error("Release: enquiry=%s %s failed: %v", enquiryID, date.Format(domain.DateFormat), err)
		return fmt.Errorf("%w: Release: %v", ErrInternal, err)
	}

	if deleted {
		s.logger.Info("Release: enquiry=%s %s %s-%s released", enquiryID, date.Format(domain.DateFormat),
			reservation.Range.Start, reservation.Range.End)
	}
	return nil
}

// BookedIntervals возвращает занятые интервалы на дату по возрастанию начала.
// Снимок без блокировок; окончательную проверку делает Reserve.
func (s *Service) BookedIntervals(ctx context.Context, date time.Time) ([]domain.TimeRange, error) {
	bookings, err := s.bookingRepo.ListByDate(ctx, domain.DateOnly(date))
	if err != nil {
		s.logger.Error("BookedIntervals: %s failed: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: BookedIntervals: %v", ErrInternal, err)
	}
	return ranges(bookings), nil
}

func (s *Service) conflict(date time.Time, requested domain.TimeRange, booked []domain.TimeRange) error {
	scheduling.SortRanges(booked)
	return &domain.ConflictError{Date: date, Requested: requested, Booked: booked}
}

func (s *Service) observe(result string) {
	if s.metrics != nil {
		s.metrics.ObserveReservation(result)
	}
}

func ranges(bookings []*domain.Booking) []domain.TimeRange {
	out := make([]domain.TimeRange, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.Range)
	}
	scheduling.SortRanges(out)
	return out
}
