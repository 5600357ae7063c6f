package transition_enquiry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-MillService/internal/domain"
	enquiryRepo "github.com/m04kA/SMC-MillService/internal/infra/storage/enquiry"
	"github.com/m04kA/SMC-MillService/internal/scheduling"
)

// UseCase use case для смены статуса заявки
type UseCase struct {
	enquiryRepo  EnquiryRepository
	ledger       Ledger
	calendar     HolidayCalendar
	txManager    TransactionManager
	metrics      MetricsRecorder
	hours        domain.BusinessHours
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case; metrics может быть nil
func NewUseCase(
	enquiryRepo EnquiryRepository,
	ledger Ledger,
	calendar HolidayCalendar,
	txManager TransactionManager,
	metrics MetricsRecorder,
	hours domain.BusinessHours,
	logger Logger,
) *UseCase {
	return &UseCase{
		enquiryRepo:  enquiryRepo,
		ledger:       ledger,
		calendar:     calendar,
		txManager:    txManager,
		metrics:      metrics,
		hours:        hours,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет переход статуса.
// Смена статуса и перенос брони выполняются в одной транзакции:
// при конфликте или ошибке заявка остаётся в прежнем статусе с прежней бронью.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("TransitionEnquiry: enquiry=%s, action=%s, actor=%s/%d",
		req.EnquiryID, req.Action, req.Actor.Role, req.Actor.ID)

	// 1. Валидация входных данных
	transition, err := uc.validateRequest(req)
	if err != nil {
		uc.logger.Warn("TransitionEnquiry: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var (
		result *domain.Enquiry
		from   domain.Status
	)

	// 2. Все изменения в одной транзакции; заявка блокируется FOR UPDATE
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Загружаем заявку под блокировкой
		enquiry, err := uc.enquiryRepo.GetByID(txCtx, req.EnquiryID)
		if err != nil {
			if errors.Is(err, enquiryRepo.ErrEnquiryNotFound) {
				return fmt.Errorf("%w: id=%s", domain.ErrEnquiryNotFound, req.EnquiryID)
			}
			return fmt.Errorf("%w: failed to get enquiry: %v", ErrInternal, err)
		}

		// 2.2. Клиент может менять только свои заявки
		if !transition.Actor.IsStaff() && !enquiry.IsOwnedBy(transition.Actor.ID) {
			return fmt.Errorf("%w: enquiry %s belongs to another customer", domain.ErrAccessDenied, enquiry.ID)
		}

		from = enquiry.Status()

		// 2.3. Проверяем переход по таблице состояний
		next, err := enquiry.Next(transition)
		if err != nil {
			return err
		}

		// 2.4. Переносим бронь, если изменилось удерживаемое время
		if err := uc.moveReservation(txCtx, enquiry, next, now); err != nil {
			return err
		}

		// 2.5. Сохраняем новый статус
		enquiry.Apply(next, now)
		if req.AdminNotes != nil {
			enquiry.AdminNotes = trimmedOrNil(req.AdminNotes)
		}
		if req.EstimatedCost != nil {
			cost := req.EstimatedCost.Round(2)
			enquiry.EstimatedCost = &cost
		}
		if err := uc.enquiryRepo.Update(txCtx, enquiry); err != nil {
			if errors.Is(err, enquiryRepo.ErrEnquiryNotFound) {
				return fmt.Errorf("%w: id=%s", domain.ErrEnquiryNotFound, req.EnquiryID)
			}
			return fmt.Errorf("%w: failed to update enquiry: %v", ErrInternal, err)
		}

		// 2.6. Запись истории
		event := &domain.StatusEvent{
			EnquiryID: enquiry.ID,
			From:      from,
			To:        next.Status(),
			Action:    transition.Action,
			Actor:     transition.Actor,
			Reason:    transition.Reason,
		}
		if err := uc.enquiryRepo.AddEvent(txCtx, event); err != nil {
			return fmt.Errorf("%w: failed to add status event: %v", ErrInternal, err)
		}

		result = enquiry
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInternal):
			uc.logger.Error("TransitionEnquiry: enquiry=%s: %v", req.EnquiryID, err)
			return nil, err
		case errors.Is(err, domain.ErrValidation),
			errors.Is(err, domain.ErrConflict),
			errors.Is(err, domain.ErrHoliday),
			errors.Is(err, domain.ErrInvalidTransition),
			errors.Is(err, domain.ErrEnquiryNotFound),
			errors.Is(err, domain.ErrAccessDenied):
			uc.logger.Warn("TransitionEnquiry: enquiry=%s rejected: %v", req.EnquiryID, err)
			return nil, err
		default:
			uc.logger.Error("TransitionEnquiry: enquiry=%s: transaction failed: %v", req.EnquiryID, err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	if uc.metrics != nil {
		uc.metrics.ObserveTransition(string(from), string(result.Status()))
	}

	uc.logger.Info("TransitionEnquiry: enquiry=%s moved %s -> %s by %s/%d",
		result.ID, from, result.Status(), req.Actor.Role, req.Actor.ID)

	return &Response{Enquiry: result, From: from}, nil
}

// moveReservation освобождает прежнее время и занимает новое.
// Новое время проверяется на рабочие часы, прошедшую дату и выходные.
func (uc *UseCase) moveReservation(ctx context.Context, enquiry *domain.Enquiry, next domain.EnquiryState, now time.Time) error {
	oldHeld, hadOld := enquiry.HeldReservation()

	upcoming := *enquiry
	upcoming.State = next
	newHeld, hasNew := upcoming.HeldReservation()

	if hadOld && hasNew && oldHeld.Equal(newHeld) {
		return nil
	}

	if hasNew {
		if err := scheduling.FitsGrid(uc.hours, newHeld.Range); err != nil {
			return err
		}
		if domain.IsDateInPast(newHeld.Date, now) {
			return fmt.Errorf("%w: %s", ErrSlotInPast, newHeld.Date.Format(domain.DateFormat))
		}
		if err := uc.calendar.CheckOpen(ctx, newHeld.Date); err != nil {
			if errors.Is(err, domain.ErrHoliday) {
				return err
			}
			return fmt.Errorf("%w: failed to check holiday: %v", ErrInternal, err)
		}
	}

	if hadOld {
		if err := uc.ledger.Release(ctx, oldHeld, enquiry.ID); err != nil {
			if errors.Is(err, domain.ErrValidation) {
				return err
			}
			return fmt.Errorf("%w: failed to release booking: %v", ErrInternal, err)
		}
	}

	if hasNew {
		if err := uc.ledger.Reserve(ctx, newHeld, enquiry.ID); err != nil {
			// после отката прежняя бронь остаётся, поэтому она входит в занятые интервалы
			var conflict *domain.ConflictError
			if hadOld && errors.As(err, &conflict) && domain.SameDay(conflict.Date, oldHeld.Date) {
				conflict.Booked = append(conflict.Booked, oldHeld.Range)
				scheduling.SortRanges(conflict.Booked)
			}
			if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrValidation) {
				return err
			}
			return fmt.Errorf("%w: failed to reserve booking: %v", ErrInternal, err)
		}
	}

	return nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
