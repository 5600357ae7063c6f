package transition_enquiry

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-MillService/internal/domain"
)

// Request модель запроса на смену статуса заявки
type Request struct {
	EnquiryID string
	Action    string
	Actor     domain.Actor

	// Новое время: либо все три поля, либо ни одного
	Date      *string // YYYY-MM-DD
	StartTime *string // HH:MM
	EndTime   *string // HH:MM

	Reason        *string
	AdminNotes    *string
	EstimatedCost *decimal.Decimal
}

// Response модель ответа с обновлённой заявкой
type Response struct {
	Enquiry *domain.Enquiry
	From    domain.Status
}
