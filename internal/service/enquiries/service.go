package enquiries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MillService/internal/domain"
	enquiryRepo "github.com/m04kA/SMC-MillService/internal/infra/storage/enquiry"
	"github.com/m04kA/SMC-MillService/internal/service/enquiries/models"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Service сервис чтения заявок
type Service struct {
	enquiryRepo EnquiryRepository
	txManager   TransactionManager
	location    *time.Location
	logger      Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(enquiryRepo EnquiryRepository, txManager TransactionManager, location *time.Location, logger Logger) *Service {
	if location == nil {
		location = time.Local
	}
	return &Service{
		enquiryRepo: enquiryRepo,
		txManager:   txManager,
		location:    location,
		logger:      logger,
	}
}

// GetByID получает заявку по ID
// Клиент видит только свои заявки, сотрудник - любые
func (s *Service) GetByID(ctx context.Context, id string, actor domain.Actor) (*models.EnquiryResponse, error) {
	s.logger.Info("GetByID: fetching enquiry id=%s for %s/%d", id, actor.Role, actor.ID)

	enquiry, err := s.load(ctx, "GetByID", id, actor)
	if err != nil {
		return nil, err
	}

	return models.FromDomainEnquiry(enquiry), nil
}

// List получает список заявок.
// Для клиента фильтр по владельцу подставляется принудительно.
func (s *Service) List(ctx context.Context, req *models.ListEnquiriesRequest, actor domain.Actor) (*models.EnquiryListResponse, error) {
	s.logger.Info("List: fetching enquiries for %s/%d", actor.Role, actor.ID)

	filter, err := s.toFilter(req)
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, err
	}

	if !actor.IsStaff() {
		filter.CustomerID = &actor.ID
	}

	enquiries, err := s.enquiryRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d enquiries", len(enquiries))
	return models.FromDomainEnquiryList(enquiries), nil
}

// History возвращает историю статусов заявки.
// Заявка и события читаются в одной read-only транзакции.
func (s *Service) History(ctx context.Context, id string, actor domain.Actor) (*models.HistoryResponse, error) {
	s.logger.Info("History: fetching history of enquiry id=%s for %s/%d", id, actor.Role, actor.ID)

	var events []*domain.StatusEvent
	err := s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		if _, err := s.load(ctx, "History", id, actor); err != nil {
			return err
		}

		var err error
		events, err = s.enquiryRepo.ListEvents(ctx, id)
		if err != nil {
			s.logger.Error("History: repository error for enquiry id=%s: %v", id, err)
			return fmt.Errorf("%w: History - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return models.FromDomainEvents(id, events), nil
}

// GetImage возвращает вложение заявки
func (s *Service) GetImage(ctx context.Context, id string, imageID int64, actor domain.Actor) (*domain.Image, error) {
	if _, err := s.load(ctx, "GetImage", id, actor); err != nil {
		return nil, err
	}

	img, err := s.enquiryRepo.GetImage(ctx, id, imageID)
	if err != nil {
		if errors.Is(err, enquiryRepo.ErrEnquiryNotFound) {
			s.logger.Warn("GetImage: image id=%d of enquiry id=%s not found", imageID, id)
			return nil, ErrImageNotFound
		}
		s.logger.Error("GetImage: repository error for enquiry id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetImage - repository error: %v", ErrInternal, err)
	}

	return img, nil
}

// load получает заявку и проверяет права доступа
func (s *Service) load(ctx context.Context, op, id string, actor domain.Actor) (*domain.Enquiry, error) {
	enquiry, err := s.enquiryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, enquiryRepo.ErrEnquiryNotFound) {
			s.logger.Warn("%s: enquiry id=%s not found", op, id)
			return nil, fmt.Errorf("%w: id=%s", domain.ErrEnquiryNotFound, id)
		}
		s.logger.Error("%s: repository error for enquiry id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if !actor.IsStaff() && !enquiry.IsOwnedBy(actor.ID) {
		s.logger.Warn("%s: access denied for %s/%d to enquiry id=%s", op, actor.Role, actor.ID, id)
		return nil, fmt.Errorf("%w: enquiry %s belongs to another customer", domain.ErrAccessDenied, id)
	}

	return enquiry, nil
}

func (s *Service) toFilter(req *models.ListEnquiriesRequest) (domain.EnquiriesFilter, error) {
	filter := domain.EnquiriesFilter{
		CustomerID: req.CustomerID,
		Limit:      req.Limit,
		Offset:     req.Offset,
	}

	if filter.Limit == 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		return filter, fmt.Errorf("%w: limit must be at most %d", ErrInvalidInput, maxListLimit)
	}

	if req.Status != nil {
		status, err := domain.ParseStatus(*req.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	if req.Date != nil {
		date, err := domain.ParseDate(*req.Date, s.location)
		if err != nil {
			return filter, err
		}
		filter.Date = &date
	}

	return filter, nil
}
