package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-MillService/pkg/types"
)

// WorkType the kind of wood processing requested
type WorkType string

const (
	WorkPlaning   WorkType = "Planing"
	WorkResawing  WorkType = "Resawing"
	WorkDebarking WorkType = "Debarking"
	WorkSawing    WorkType = "Sawing"
	WorkOther     WorkType = "Other"
)

// WorkTypes all recognised work types
var WorkTypes = []WorkType{WorkPlaning, WorkResawing, WorkDebarking, WorkSawing, WorkOther}

// ParseWorkType matches case-insensitively against the known work types
func ParseWorkType(s string) (WorkType, error) {
	for _, wt := range WorkTypes {
		if strings.EqualFold(string(wt), strings.TrimSpace(s)) {
			return wt, nil
		}
	}
	return "", fmt.Errorf("%w: unknown work type %q", ErrValidation, s)
}

// LogItem one group of logs of the same wood type and size
// Dimensions are in inches
type LogItem struct {
	WoodType      string
	WoodTypeLabel string // label from the catalog, empty if unavailable
	NumberOfLogs  int
	Thickness     *decimal.Decimal
	Width         *decimal.Decimal
	Length        *decimal.Decimal
	CubicFeet     decimal.Decimal
}

// HasDimensions reports whether all three dimensions were supplied
func (li *LogItem) HasDimensions() bool {
	return li.Thickness != nil && li.Width != nil && li.Length != nil
}

// CubicFeetFromDimensions thickness*width*length/144 rounded to 2 decimals
func CubicFeetFromDimensions(thickness, width, length decimal.Decimal) decimal.Decimal {
	return thickness.Mul(width).Mul(length).
		Div(decimal.NewFromInt(CubicInchesPerFoot)).
		Round(2)
}

// TotalCubicFeet sums the items' volume
func TotalCubicFeet(items []LogItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.CubicFeet)
	}
	return total
}

// ImageMeta metadata of an attached photo; the blob itself is opaque
type ImageMeta struct {
	ID          int64
	FileName    string
	ContentType string
	SizeBytes   int64
}

// Image an uploaded attachment
type Image struct {
	ImageMeta
	Data []byte
}

// Enquiry a customer's request for wood processing at a date and time
type Enquiry struct {
	ID             string
	CustomerID     int64
	WorkType       WorkType
	LogItems       []LogItem
	TotalCubicFeet decimal.Decimal

	RequestedDate time.Time
	RequestedTime types.TimeString
	SlotMinutes   int

	State EnquiryState

	AdminNotes    *string
	Notes         *string
	EstimatedCost *decimal.Decimal
	Images        []ImageMeta

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Status current status of the enquiry
func (e *Enquiry) Status() Status {
	if e.State == nil {
		return ""
	}
	return e.State.Status()
}

// RequestedReservation the interval the customer asked for
func (e *Enquiry) RequestedReservation() (Reservation, error) {
	r, err := NewTimeRange(e.RequestedTime, e.SlotMinutes)
	if err != nil {
		return Reservation{}, err
	}
	return Reservation{Date: e.RequestedDate, Range: r}, nil
}

// HeldReservation the interval this enquiry occupies in the ledger in its current state
func (e *Enquiry) HeldReservation() (Reservation, bool) {
	switch s := e.State.(type) {
	case Received, UnderReview:
		r, err := e.RequestedReservation()
		return r, err == nil
	case TimeAccepted:
		return s.Slot, true
	case AlternateProposed:
		return s.Slot, true
	case Scheduled:
		return s.Slot, true
	case InProgress:
		return s.Slot, true
	case Completed:
		return s.Slot, true
	default:
		return Reservation{}, false
	}
}

// IsOwnedBy reports whether customerID submitted the enquiry
func (e *Enquiry) IsOwnedBy(customerID int64) bool {
	return e.CustomerID == customerID
}

// EnquiriesFilter staff listing filter
type EnquiriesFilter struct {
	CustomerID *int64
	Status     *Status
	Date       *time.Time // matches requested or currently held date
	Limit      uint64
	Offset     uint64
}
