package create_enquiry

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-MillService/internal/domain"
)

// Request модель запроса на создание заявки
type Request struct {
	CustomerID      int64
	WorkType        string
	LogItems        []LogItem
	CubicFeet       *decimal.Decimal // итог с формы; если задан, должен совпадать с расчётом
	RequestedDate   string           // YYYY-MM-DD
	RequestedTime   string           // HH:MM
	DurationMinutes int              // 0 - длительность слота по умолчанию
	Notes           *string
	Images          []domain.Image
}

// LogItem позиция заявки: размеры в дюймах либо готовый объём
type LogItem struct {
	WoodType     string
	NumberOfLogs int
	Thickness    *decimal.Decimal
	Width        *decimal.Decimal
	Length       *decimal.Decimal
	CubicFeet    *decimal.Decimal
}

// Response модель ответа с созданной заявкой
type Response struct {
	Enquiry *domain.Enquiry
}
