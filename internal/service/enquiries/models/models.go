package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-MillService/internal/domain"
)

// Request модели

// ListEnquiriesRequest фильтр списка заявок.
// Для клиента CustomerID подставляется из заголовков и не может быть изменён.
type ListEnquiriesRequest struct {
	CustomerID *int64
	Status     *string
	Date       *string // YYYY-MM-DD
	Limit      uint64
	Offset     uint64
}

// Response модели

// LogItemResponse позиция заявки
type LogItemResponse struct {
	WoodType      string           `json:"woodType"`
	WoodTypeLabel *string          `json:"woodTypeLabel,omitempty"`
	NumberOfLogs  int              `json:"numberOfLogs"`
	Thickness     *decimal.Decimal `json:"thickness,omitempty"`
	Width         *decimal.Decimal `json:"width,omitempty"`
	Length        *decimal.Decimal `json:"length,omitempty"`
	CubicFeet     decimal.Decimal  `json:"cubicFeet"`
}

// ImageResponse метаданные вложения
type ImageResponse struct {
	ID          int64  `json:"id"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
}

// EnquiryResponse ответ с данными заявки.
// Поля accepted*, proposed* и scheduled* заполняются только в соответствующих статусах.
type EnquiryResponse struct {
	ID              string            `json:"id"`
	CustomerID      int64             `json:"customerId"`
	WorkType        string            `json:"workType"`
	LogItems        []LogItemResponse `json:"logItems"`
	TotalCubicFeet  decimal.Decimal   `json:"totalCubicFeet"`
	RequestedDate   string            `json:"requestedDate"` // "2026-11-02"
	RequestedTime   string            `json:"requestedTime"` // "09:00"
	DurationMinutes int               `json:"durationMinutes"`
	Status          string            `json:"status"`

	AcceptedDate      *string `json:"acceptedDate,omitempty"`
	AcceptedStartTime *string `json:"acceptedStartTime,omitempty"`
	AcceptedEndTime   *string `json:"acceptedEndTime,omitempty"`

	ProposedDate      *string `json:"proposedDate,omitempty"`
	ProposedStartTime *string `json:"proposedStartTime,omitempty"`
	ProposedEndTime   *string `json:"proposedEndTime,omitempty"`

	ScheduledDate    *string `json:"scheduledDate,omitempty"`
	ScheduledTime    *string `json:"scheduledTime,omitempty"`
	ScheduledEndTime *string `json:"scheduledEndTime,omitempty"`

	AdminNotes    *string          `json:"adminNotes,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
	EstimatedCost *decimal.Decimal `json:"estimatedCost,omitempty"`
	Images        []ImageResponse  `json:"images"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EnquiryListResponse ответ со списком заявок
type EnquiryListResponse struct {
	Enquiries []EnquiryResponse `json:"enquiries"`
}

// StatusEventResponse запись истории статусов
type StatusEventResponse struct {
	From      *string   `json:"from,omitempty"`
	To        string    `json:"to"`
	Action    string    `json:"action"`
	ActorRole string    `json:"actorRole"`
	ActorID   int64     `json:"actorId"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// HistoryResponse история заявки
type HistoryResponse struct {
	EnquiryID string                `json:"enquiryId"`
	Events    []StatusEventResponse `json:"events"`
}

// Методы конвертации

// FromDomainEnquiry конвертирует domain модель в DTO
func FromDomainEnquiry(e *domain.Enquiry) *EnquiryResponse {
	if e == nil {
		return nil
	}

	resp := &EnquiryResponse{
		ID:              e.ID,
		CustomerID:      e.CustomerID,
		WorkType:        string(e.WorkType),
		LogItems:        make([]LogItemResponse, len(e.LogItems)),
		TotalCubicFeet:  e.TotalCubicFeet,
		RequestedDate:   e.RequestedDate.Format(domain.DateFormat),
		RequestedTime:   e.RequestedTime.String(),
		DurationMinutes: e.SlotMinutes,
		Status:          string(e.Status()),
		AdminNotes:      e.AdminNotes,
		Notes:           e.Notes,
		EstimatedCost:   e.EstimatedCost,
		Images:          make([]ImageResponse, len(e.Images)),
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}

	for i, item := range e.LogItems {
		resp.LogItems[i] = LogItemResponse{
			WoodType:     item.WoodType,
			NumberOfLogs: item.NumberOfLogs,
			Thickness:    item.Thickness,
			Width:        item.Width,
			Length:       item.Length,
			CubicFeet:    item.CubicFeet,
		}
		if item.WoodTypeLabel != "" {
			label := item.WoodTypeLabel
			resp.LogItems[i].WoodTypeLabel = &label
		}
	}

	for i, img := range e.Images {
		resp.Images[i] = ImageResponse{
			ID:          img.ID,
			FileName:    img.FileName,
			ContentType: img.ContentType,
			SizeBytes:   img.SizeBytes,
		}
	}

	// Время, действующее в текущем статусе
	switch s := e.State.(type) {
	case domain.TimeAccepted:
		resp.AcceptedDate, resp.AcceptedStartTime, resp.AcceptedEndTime = slotFields(s.Slot)
	case domain.AlternateProposed:
		resp.ProposedDate, resp.ProposedStartTime, resp.ProposedEndTime = slotFields(s.Slot)
	case domain.Scheduled:
		resp.ScheduledDate, resp.ScheduledTime, resp.ScheduledEndTime = slotFields(s.Slot)
	case domain.InProgress:
		resp.ScheduledDate, resp.ScheduledTime, resp.ScheduledEndTime = slotFields(s.Slot)
	case domain.Completed:
		resp.ScheduledDate, resp.ScheduledTime, resp.ScheduledEndTime = slotFields(s.Slot)
	}

	return resp
}

// FromDomainEnquiryList конвертирует список domain моделей в DTO
func FromDomainEnquiryList(enquiries []*domain.Enquiry) *EnquiryListResponse {
	resp := &EnquiryListResponse{
		Enquiries: make([]EnquiryResponse, 0, len(enquiries)),
	}
	for _, e := range enquiries {
		if r := FromDomainEnquiry(e); r != nil {
			resp.Enquiries = append(resp.Enquiries, *r)
		}
	}
	return resp
}

// FromDomainEvents конвертирует историю статусов
func FromDomainEvents(enquiryID string, events []*domain.StatusEvent) *HistoryResponse {
	resp := &HistoryResponse{
		EnquiryID: enquiryID,
		Events:    make([]StatusEventResponse, 0, len(events)),
	}
	for _, ev := range events {
		item := StatusEventResponse{
			To:        string(ev.To),
			Action:    string(ev.Action),
			ActorRole: string(ev.Actor.Role),
			ActorID:   ev.Actor.ID,
			CreatedAt: ev.CreatedAt,
		}
		if ev.From != "" {
			from := string(ev.From)
			item.From = &from
		}
		if ev.Reason != "" {
			reason := ev.Reason
			item.Reason = &reason
		}
		resp.Events = append(resp.Events, item)
	}
	return resp
}

func slotFields(r domain.Reservation) (*string, *string, *string) {
	date := r.Date.Format(domain.DateFormat)
	start := r.Range.Start.String()
	end := r.Range.End.String()
	return &date, &start, &end
}
