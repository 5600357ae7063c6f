package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-MillService/internal/domain"
	"github.com/m04kA/SMC-MillService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date            string // YYYY-MM-DD
	DurationMinutes int    // 0 - длительность слота по умолчанию
	CheckTime       string // HH:MM, необязательно: занят ли этот момент
}

// Response модель ответа со свободными и занятыми интервалами
type Response struct {
	Date               time.Time
	DurationMinutes    int
	IsHoliday          bool
	HolidayName        string
	HolidayDescription string
	AvailableSlots     []domain.TimeSlot  // свободные окна сетки
	BookedSlots        []domain.TimeRange // все брони на дату
	CheckTime          *types.TimeString
	TimeBooked         *bool // заполняется, если задан CheckTime
}
