package transition_enquiry

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-MillService/internal/domain"
	transitionEnquiry "github.com/m04kA/SMC-MillService/internal/usecase/transition_enquiry"
)

// TransitionRequest тело запроса; все поля опциональны
type TransitionRequest struct {
	Date          *string          `json:"date,omitempty"`      // "2026-11-03"
	StartTime     *string          `json:"startTime,omitempty"` // "13:00"
	EndTime       *string          `json:"endTime,omitempty"`   // "15:00"
	Reason        *string          `json:"reason,omitempty"`
	AdminNotes    *string          `json:"adminNotes,omitempty"`
	EstimatedCost *decimal.Decimal `json:"estimatedCost,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *TransitionRequest) ToUseCaseRequest(enquiryID, action string, actor domain.Actor) *transitionEnquiry.Request {
	return &transitionEnquiry.Request{
		EnquiryID:     enquiryID,
		Action:        action,
		Actor:         actor,
		Date:          r.Date,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Reason:        r.Reason,
		AdminNotes:    r.AdminNotes,
		EstimatedCost: r.EstimatedCost,
	}
}
