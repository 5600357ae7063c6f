package create_enquiry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-MillService/internal/domain"
)

// UseCase use case для создания заявки на обработку древесины
type UseCase struct {
	enquiryRepo  EnquiryRepository
	ledger       Ledger
	calendar     HolidayCalendar
	catalog      CatalogClient
	txManager    TransactionManager
	hours        domain.BusinessHours
	policy       domain.SubmissionPolicy
	timeProvider TimeProvider
	idGen        func() string
	logger       Logger
}

// NewUseCase создает новый экземпляр use case; catalog может быть nil
func NewUseCase(
	enquiryRepo EnquiryRepository,
	ledger Ledger,
	calendar HolidayCalendar,
	catalog CatalogClient,
	txManager TransactionManager,
	hours domain.BusinessHours,
	policy domain.SubmissionPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		enquiryRepo:  enquiryRepo,
		ledger:       ledger,
		calendar:     calendar,
		catalog:      catalog,
		txManager:    txManager,
		hours:        hours,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		idGen:        uuid.NewString,
		logger:       logger,
	}
}

// Execute выполняет use case создания заявки.
// Заявка и предварительная бронь запрошенного интервала создаются в одной
// транзакции: при пересечении не сохраняется ничего.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateEnquiry: customer=%d, work=%s, items=%d, date=%s, time=%s, duration=%d",
		req.CustomerID, req.WorkType, len(req.LogItems), req.RequestedDate, req.RequestedTime, req.DurationMinutes)

	now := uc.timeProvider.Now()

	// 1. Валидация входных данных
	v, err := uc.validateRequest(req, now)
	if err != nil {
		uc.logger.Warn("CreateEnquiry: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что в этот день мастерская работает
	if err := uc.calendar.CheckOpen(ctx, v.reservation.Date); err != nil {
		var holidayErr *domain.HolidayError
		if errors.As(err, &holidayErr) {
			uc.logger.Warn("CreateEnquiry: %s is a holiday (%s)", req.RequestedDate, holidayErr.Name)
			return nil, err
		}
		uc.logger.Error("CreateEnquiry: failed to check holiday for %s: %v", req.RequestedDate, err)
		return nil, fmt.Errorf("%w: failed to check holiday: %v", ErrInternal, err)
	}

	// 3. Подтягиваем названия пород из каталога (graceful degradation)
	uc.resolveLabels(ctx, v.items)

	enquiry := &domain.Enquiry{
		ID:             uc.idGen(),
		CustomerID:     req.CustomerID,
		WorkType:       v.workType,
		LogItems:       v.items,
		TotalCubicFeet: v.total,
		RequestedDate:  v.reservation.Date,
		RequestedTime:  v.requested,
		SlotMinutes:    v.duration,
		State:          domain.Received{},
		Notes:          trimmedOrNil(req.Notes),
	}

	// 4. Бронь, заявка и запись истории в одной транзакции под блокировкой даты
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 4.1. Резервируем интервал
		if err := uc.ledger.Reserve(txCtx, v.reservation, enquiry.ID); err != nil {
			return err
		}

		// 4.2. Сохраняем заявку с изображениями
		if err := uc.enquiryRepo.Create(txCtx, enquiry, req.Images); err != nil {
			uc.logger.Error("CreateEnquiry: failed to create enquiry: %v", err)
			return fmt.Errorf("%w: failed to create enquiry: %v", ErrInternal, err)
		}

		// 4.3. Первая запись истории
		event := &domain.StatusEvent{
			EnquiryID: enquiry.ID,
			To:        domain.StatusEnquiryReceived,
			Action:    domain.ActionSubmit,
			Actor:     domain.Actor{Role: domain.RoleCustomer, ID: req.CustomerID},
		}
		if err := uc.enquiryRepo.AddEvent(txCtx, event); err != nil {
			uc.logger.Error("CreateEnquiry: failed to add status event: %v", err)
			return fmt.Errorf("%w: failed to add status event: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			uc.logger.Warn("CreateEnquiry: slot %s %s-%s is taken: %v", req.RequestedDate,
				v.reservation.Range.Start, v.reservation.Range.End, err)
			return nil, err
		}
		if errors.Is(err, domain.ErrValidation) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateEnquiry: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateEnquiry: created enquiry id=%s for customer=%d, slot=%s %s-%s, cubic_feet=%s",
		enquiry.ID, enquiry.CustomerID, req.RequestedDate,
		v.reservation.Range.Start, v.reservation.Range.End, enquiry.TotalCubicFeet.StringFixed(2))

	return &Response{Enquiry: enquiry}, nil
}

// resolveLabels проставляет названия пород; каждая порода запрашивается один раз
func (uc *UseCase) resolveLabels(ctx context.Context, items []domain.LogItem) {
	if uc.catalog == nil {
		return
	}

	labels := make(map[string]string, len(items))
	for i := range items {
		code := strings.ToLower(items[i].WoodType)
		label, seen := labels[code]
		if !seen {
			var err error
			label, err = uc.catalog.GetWoodTypeLabelWithGracefulDegradation(ctx, items[i].WoodType)
			if err != nil {
				uc.logger.Warn("CreateEnquiry: wood type %q saved without label: %v", items[i].WoodType, err)
			}
			labels[code] = label
		}
		items[i].WoodTypeLabel = label
	}
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
