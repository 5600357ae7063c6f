package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-MillService/internal/domain"
	"github.com/m04kA/SMC-MillService/internal/scheduling"
	"github.com/m04kA/SMC-MillService/pkg/types"
)

// UseCase use case для получения доступных слотов на дату
type UseCase struct {
	calendar       HolidayCalendar
	ledger         Ledger
	hours          domain.BusinessHours
	maxAdvanceDays int
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	calendar HolidayCalendar,
	ledger Ledger,
	hours domain.BusinessHours,
	maxAdvanceDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		calendar:       calendar,
		ledger:         ledger,
		hours:          hours,
		maxAdvanceDays: maxAdvanceDays,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Чтение без блокировок: окончательную проверку делает резервирование.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, duration=%d", req.Date, req.DurationMinutes)

	// 1. Валидация входных данных
	date, err := domain.ParseDate(req.Date, uc.calendar.Location())
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = uc.hours.SlotMinutes
	}
	if err := domain.ValidateSlotMinutes(duration); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	if err := validateDate(date, uc.timeProvider.Now(), uc.maxAdvanceDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	var checkTime *types.TimeString
	if req.CheckTime != "" {
		t, err := types.NewTimeStringFromString(req.CheckTime)
		if err != nil {
			uc.logger.Warn("GetAvailableSlots: invalid time %q: %v", req.CheckTime, err)
			return nil, fmt.Errorf("%w: time must be HH:MM", ErrInvalidTime)
		}
		checkTime = &t
	}

	resp := &Response{
		Date:            date,
		DurationMinutes: duration,
		AvailableSlots:  []domain.TimeSlot{},
	}

	// 2. Выходной день: слотов нет
	closed, name, desc, err := uc.calendar.IsHoliday(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: holiday lookup failed: %v", err)
		return nil, fmt.Errorf("%w: holiday lookup: %v", ErrInternal, err)
	}

	// 3. Занятые интервалы на дату
	booked, err := uc.ledger.BookedIntervals(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}
	resp.BookedSlots = booked

	if checkTime != nil {
		booked := closed || scheduling.IsTimeBooked(*checkTime, resp.BookedSlots)
		resp.CheckTime = checkTime
		resp.TimeBooked = &booked
	}

	if closed {
		uc.logger.Info("GetAvailableSlots: %s is a holiday (%s)", req.Date, name)
		resp.IsHoliday = true
		resp.HolidayName = name
		resp.HolidayDescription = desc
		return resp, nil
	}

	// 4. Свободные окна сетки
	resp.AvailableSlots, err = scheduling.AvailableSlots(uc.hours, duration, booked)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to compute slots: %v", err)
		return nil, fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: %d available, %d booked on %s",
		len(resp.AvailableSlots), len(resp.BookedSlots), req.Date)

	return resp, nil
}
