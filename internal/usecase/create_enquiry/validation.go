package create_enquiry

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-MillService/internal/domain"
	"github.com/m04kA/SMC-MillService/internal/scheduling"
	"github.com/m04kA/SMC-MillService/pkg/types"
)

// допуск расхождения итога с формы и расчёта
var cubicFeetTolerance = decimal.RequireFromString("0.01")

// validated нормализованные данные заявки
type validated struct {
	workType    domain.WorkType
	items       []domain.LogItem
	total       decimal.Decimal
	reservation domain.Reservation
	requested   types.TimeString
	duration    int
}

// validateRequest проверяет поля заявки, которые не зависят от хранилища
func (uc *UseCase) validateRequest(req *Request, now time.Time) (*validated, error) {
	if req.CustomerID <= 0 {
		return nil, fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	workType, err := domain.ParseWorkType(req.WorkType)
	if err != nil {
		return nil, err
	}

	items, total, err := uc.validateLogItems(req.LogItems)
	if err != nil {
		return nil, err
	}

	if req.CubicFeet != nil && req.CubicFeet.Sub(total).Abs().GreaterThan(cubicFeetTolerance) {
		return nil, fmt.Errorf("%w: cubicFeet %s does not match computed total %s",
			ErrInvalidInput, req.CubicFeet.StringFixed(2), total.StringFixed(2))
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if err := uc.validateImages(req.Images); err != nil {
		return nil, err
	}

	date, err := domain.ParseDate(req.RequestedDate, uc.calendar.Location())
	if err != nil {
		return nil, err
	}
	if err := uc.validateDate(date, now); err != nil {
		return nil, err
	}

	requested, err := types.NewTimeStringFromString(strings.TrimSpace(req.RequestedTime))
	if err != nil {
		return nil, fmt.Errorf("%w: requestedTime must be HH:MM: %v", ErrInvalidInput, err)
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = uc.hours.SlotMinutes
	}
	if err := domain.ValidateSlotMinutes(duration); err != nil {
		return nil, err
	}

	r, err := domain.NewTimeRange(requested, duration)
	if err != nil {
		return nil, fmt.Errorf("%w: requested slot does not fit the day: %v", ErrInvalidInput, err)
	}
	if err := scheduling.FitsGrid(uc.hours, r); err != nil {
		return nil, err
	}

	return &validated{
		workType:    workType,
		items:       items,
		total:       total,
		reservation: domain.Reservation{Date: date, Range: r},
		requested:   requested,
		duration:    duration,
	}, nil
}

// validateLogItems проверяет позиции и считает объём каждой
func (uc *UseCase) validateLogItems(in []LogItem) ([]domain.LogItem, decimal.Decimal, error) {
	if len(in) == 0 {
		return nil, decimal.Zero, fmt.Errorf("%w: at least one log item is required", ErrInvalidInput)
	}
	if len(in) > domain.MaxLogItems {
		return nil, decimal.Zero, fmt.Errorf("%w: at most %d log items are allowed", ErrInvalidInput, domain.MaxLogItems)
	}

	items := make([]domain.LogItem, 0, len(in))
	for i, li := range in {
		woodType := strings.TrimSpace(li.WoodType)
		if woodType == "" {
			return nil, decimal.Zero, fmt.Errorf("%w: logItems[%d]: woodType is required", ErrInvalidInput, i)
		}
		if len(woodType) > domain.MaxWoodTypeLength {
			return nil, decimal.Zero, fmt.Errorf("%w: logItems[%d]: woodType is too long", ErrInvalidInput, i)
		}
		if li.NumberOfLogs < domain.MinNumberOfLogs {
			return nil, decimal.Zero, fmt.Errorf("%w: logItems[%d]: numberOfLogs must be at least %d",
				ErrInvalidInput, i, domain.MinNumberOfLogs)
		}

		item := domain.LogItem{
			WoodType:     woodType,
			NumberOfLogs: li.NumberOfLogs,
			Thickness:    li.Thickness,
			Width:        li.Width,
			Length:       li.Length,
		}

		dims := countSet(li.Thickness, li.Width, li.Length)
		switch {
		case dims == 3:
			for _, d := range []*decimal.Decimal{li.Thickness, li.Width, li.Length} {
				if !d.IsPositive() {
					return nil, decimal.Zero, fmt.Errorf("%w: logItems[%d]: dimensions must be positive", ErrInvalidInput, i)
				}
			}
			item.CubicFeet = domain.CubicFeetFromDimensions(*li.Thickness, *li.Width, *li.Length)
			if item.CubicFeet.LessThan(domain.MinLogItemCubicFeet) {
				return nil, decimal.Zero, fmt.Errorf("%w: logItems[%d]: %s cubic feet from dimensions, minimum is %s",
					ErrCubicFeetTooSmall, i, item.CubicFeet.StringFixed(2), domain.MinLogItemCubicFeet.StringFixed(2))
			}
		case dims > 0:
			return nil, decimal.Zero, fmt.Errorf("%w: logItems[%d]: thickness, width and length must be given together",
				ErrInvalidInput, i)
		case li.CubicFeet != nil:
			if li.CubicFeet.LessThan(uc.policy.MinTotalCubicFeet) {
				return nil, decimal.Zero, fmt.Errorf("%w: logItems[%d]: cubicFeet must be at least %s",
					ErrCubicFeetTooSmall, i, uc.policy.MinTotalCubicFeet.String())
			}
			item.CubicFeet = li.CubicFeet.Round(2)
		default:
			return nil, decimal.Zero, fmt.Errorf("%w: logItems[%d]: either dimensions or cubicFeet are required",
				ErrInvalidInput, i)
		}

		items = append(items, item)
	}

	total := domain.TotalCubicFeet(items)
	if total.LessThan(uc.policy.MinTotalCubicFeet) {
		return nil, decimal.Zero, fmt.Errorf("%w: total %s, minimum is %s",
			ErrCubicFeetTooSmall, total.StringFixed(2), uc.policy.MinTotalCubicFeet.String())
	}

	return items, total, nil
}

// validateImages проверяет количество, размер и тип вложений
func (uc *UseCase) validateImages(images []domain.Image) error {
	if len(images) > uc.policy.MaxImages {
		return fmt.Errorf("%w: at most %d images are allowed", ErrTooManyImages, uc.policy.MaxImages)
	}
	for i, img := range images {
		if len(img.Data) == 0 {
			return fmt.Errorf("%w: images[%d] is empty", ErrInvalidInput, i)
		}
		if uc.policy.MaxImageBytes > 0 && int64(len(img.Data)) > uc.policy.MaxImageBytes {
			return fmt.Errorf("%w: images[%d] exceeds %d bytes", ErrInvalidInput, i, uc.policy.MaxImageBytes)
		}
		if !strings.HasPrefix(img.ContentType, "image/") {
			return fmt.Errorf("%w: images[%d] has content type %q, expected an image", ErrInvalidInput, i, img.ContentType)
		}
	}
	return nil
}

// validateDate проверяет, что дата не в прошлом и укладывается в горизонт записи
func (uc *UseCase) validateDate(date, now time.Time) error {
	if domain.IsDateInPast(date, now) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, date.Format(domain.DateFormat))
	}

	if uc.policy.MaxAdvanceDays == 0 {
		return nil
	}

	maxDate := domain.DateOnly(now).AddDate(0, 0, uc.policy.MaxAdvanceDays)
	if domain.DateOnly(date).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, uc.policy.MaxAdvanceDays)
	}

	return nil
}

func countSet(values ...*decimal.Decimal) int {
	n := 0
	for _, v := range values {
		if v != nil {
			n++
		}
	}
	return n
}
