package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-MillService/internal/domain"
)

// Источники правил
const (
	SourceConfig   = "config"
	SourceDatabase = "database"
)

// CreateHolidayRequest запрос на создание правила выходного дня.
// Задаётся ровно одно из Date, MonthDay, Weekday.
type CreateHolidayRequest struct {
	Date        *string `json:"date,omitempty"`     // YYYY-MM-DD
	MonthDay    *string `json:"monthDay,omitempty"` // MM-DD, каждый год
	Weekday     *string `json:"weekday,omitempty"`  // sunday..saturday, каждую неделю
	Name        string  `json:"name"`
	Description string  `json:"description"`
}

// HolidayResponse правило выходного дня
type HolidayResponse struct {
	ID          *int64  `json:"id,omitempty"` // nil для правил из конфигурации
	Date        *string `json:"date,omitempty"`
	MonthDay    *string `json:"monthDay,omitempty"`
	Weekday     *string `json:"weekday,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Source      string  `json:"source"`
}

// HolidayListResponse список правил
type HolidayListResponse struct {
	Holidays []HolidayResponse `json:"holidays"`
}

// ToDomainHoliday конвертирует запрос в domain модель и валидирует её
func (r *CreateHolidayRequest) ToDomainHoliday(loc *time.Location) (*domain.Holiday, error) {
	h := &domain.Holiday{
		Name:        strings.TrimSpace(r.Name),
		Description: strings.TrimSpace(r.Description),
	}

	if r.Date != nil {
		d, err := domain.ParseDate(*r.Date, loc)
		if err != nil {
			return nil, err
		}
		h.Date = &d
	}
	if r.MonthDay != nil {
		h.MonthDay = strings.TrimSpace(*r.MonthDay)
	}
	if r.Weekday != nil {
		wd, err := domain.ParseWeekday(*r.Weekday)
		if err != nil {
			return nil, err
		}
		h.Weekday = &wd
	}

	if err := h.Validate(); err != nil {
		return nil, err
	}
	return h, nil
}

// FromDomainHoliday конвертирует domain модель в DTO
func FromDomainHoliday(h *domain.Holiday, source string) HolidayResponse {
	resp := HolidayResponse{
		Name:        h.Name,
		Description: h.Description,
		Source:      source,
	}
	if source == SourceDatabase {
		id := h.ID
		resp.ID = &id
	}
	if h.Date != nil {
		d := h.Date.Format(domain.DateFormat)
		resp.Date = &d
	}
	if h.MonthDay != "" {
		md := h.MonthDay
		resp.MonthDay = &md
	}
	if h.Weekday != nil {
		wd := strings.ToLower(h.Weekday.String())
		resp.Weekday = &wd
	}
	return resp
}

// String краткое описание правила для логов
func (r HolidayResponse) String() string {
	switch {
	case r.Date != nil:
		return fmt.Sprintf("%s on %s", r.Name, *r.Date)
	case r.MonthDay != nil:
		return fmt.Sprintf("%s every %s", r.Name, *r.MonthDay)
	case r.Weekday != nil:
		return fmt.Sprintf("%s every %s", r.Name, *r.Weekday)
	default:
		return r.Name
	}
}
