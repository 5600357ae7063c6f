package get_available_slots

import (
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-MillService/internal/api/handlers"
	"github.com/m04kA/SMC-MillService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-MillService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date               string                       `json:"date"`
	DurationMinutes    int                          `json:"durationMinutes"`
	IsHoliday          bool                         `json:"isHoliday"`
	HolidayName        *string                      `json:"holidayName,omitempty"`
	HolidayDescription *string                      `json:"holidayDescription,omitempty"`
	AvailableSlots     []handlers.TimeRangeResponse `json:"availableSlots"`
	BookedSlots        []handlers.TimeRangeResponse `json:"bookedSlots"`
	Time               *string                      `json:"time,omitempty"`
	IsTimeBooked       *bool                        `json:"isTimeBooked,omitempty"`
}

// ToUseCaseRequest создает запрос use case из параметров пути и query
func ToUseCaseRequest(date, duration, checkTime string) (*getAvailableSlots.Request, error) {
	req := &getAvailableSlots.Request{Date: date, CheckTime: checkTime}
	if duration != "" {
		minutes, err := strconv.Atoi(duration)
		if err != nil || minutes <= 0 {
			return nil, fmt.Errorf("%w: duration must be a positive number of minutes", domain.ErrValidation)
		}
		req.DurationMinutes = minutes
	}
	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	out := &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		IsHoliday:       resp.IsHoliday,
		AvailableSlots:  handlers.FromTimeRanges(resp.AvailableSlots),
		BookedSlots:     handlers.FromTimeRanges(resp.BookedSlots),
		IsTimeBooked:    resp.TimeBooked,
	}
	if resp.IsHoliday {
		out.HolidayName = &resp.HolidayName
		if resp.HolidayDescription != "" {
			out.HolidayDescription = &resp.HolidayDescription
		}
	}
	if resp.CheckTime != nil {
		t := resp.CheckTime.String()
		out.Time = &t
	}
	return out
}
