// Package holidays answers whether the mill is closed on a date and
// maintains the holiday table.
package holidays

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MillService/internal/domain"
	holidayRepo "github.com/m04kA/SMC-MillService/internal/infra/storage/holiday"
	"github.com/m04kA/SMC-MillService/internal/service/holidays/models"
)

// Service календарь выходных: правила из конфигурации плюс правила из БД
type Service struct {
	static   []domain.Holiday
	repo     HolidayRepository
	location *time.Location
	logger   Logger
}

// NewService создает календарь. static - правила из конфигурации, repo может быть nil.
func NewService(static []domain.Holiday, repo HolidayRepository, location *time.Location, logger Logger) *Service {
	if location == nil {
		location = time.Local
	}
	return &Service{
		static:   static,
		repo:     repo,
		location: location,
		logger:   logger,
	}
}

// Location часовой пояс, в котором определяется граница календарного дня
func (s *Service) Location() *time.Location {
	return s.location
}

// IsHoliday сообщает, закрыт ли бизнес в этот день, и почему.
// Ошибка хранилища возвращается, а не трактуется как рабочий день.
func (s *Service) IsHoliday(ctx context.Context, date time.Time) (bool, string, string, error) {
	for i := range s.static {
		if s.static[i].Matches(date) {
			return true, s.static[i].Name, s.static[i].Description, nil
		}
	}

	if s.repo == nil {
		return false, "", "", nil
	}

	rules, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("IsHoliday: failed to list holidays: %v", err)
		return false, "", "", fmt.Errorf("%w: IsHoliday - repository error: %v", ErrInternal, err)
	}
	for _, h := range rules {
		if h.Matches(date) {
			return true, h.Name, h.Description, nil
		}
	}

	return false, "", "", nil
}

// IsHolidayString как IsHoliday, но принимает дату строкой YYYY-MM-DD.
// Некорректный формат - ошибка валидации.
func (s *Service) IsHolidayString(ctx context.Context, date string) (bool, string, string, error) {
	d, err := domain.ParseDate(date, s.location)
	if err != nil {
		return false, "", "", err
	}
	return s.IsHoliday(ctx, d)
}

// CheckOpen возвращает *domain.HolidayError, если день выходной
func (s *Service) CheckOpen(ctx context.Context, date time.Time) error {
	closed, name, desc, err := s.IsHoliday(ctx, date)
	if err != nil {
		return err
	}
	if closed {
		return &domain.HolidayError{Date: date, Name: name, Description: desc}
	}
	return nil
}

// List возвращает все правила: сначала из конфигурации, потом из БД
func (s *Service) List(ctx context.Context) (*models.HolidayListResponse, error) {
	resp := &models.HolidayListResponse{Holidays: make([]models.HolidayResponse, 0, len(s.static))}
	for i := range s.static {
		resp.Holidays = append(resp.Holidays, models.FromDomainHoliday(&s.static[i], models.SourceConfig))
	}

	if s.repo == nil {
		return resp, nil
	}

	rules, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	for _, h := range rules {
		resp.Holidays = append(resp.Holidays, models.FromDomainHoliday(h, models.SourceDatabase))
	}

	return resp, nil
}

// Create добавляет правило выходного дня
func (s *Service) Create(ctx context.Context, req *models.CreateHolidayRequest) (*models.HolidayResponse, error) {
	s.logger.Info("Create: creating holiday name=%q", req.Name)

	h, err := req.ToDomainHoliday(s.location)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}
	if s.repo == nil {
		return nil, fmt.Errorf("%w: holiday storage is not configured", ErrInternal)
	}

	created, err := s.repo.Create(ctx, h)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainHoliday(created, models.SourceDatabase)
	s.logger.Info("Create: successfully created holiday id=%d (%s)", created.ID, resp)
	return &resp, nil
}

// Delete удаляет правило из БД. Правила из конфигурации не удаляются.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting holiday id=%d", id)

	if s.repo == nil {
		return ErrHolidayNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, holidayRepo.ErrHolidayNotFound) {
			s.logger.Warn("Delete: holiday id=%d not found", id)
			return ErrHolidayNotFound
		}
		s.logger.Error("Delete: repository error for holiday id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted holiday id=%d", id)
	return nil
}
