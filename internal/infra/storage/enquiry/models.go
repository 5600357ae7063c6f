package enquiry

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-MillService/internal/domain"
	"github.com/m04kA/SMC-MillService/pkg/types"
)

// logItemRow позиция заявки в JSONB колонке log_items
type logItemRow struct {
	WoodType      string           `json:"woodType"`
	WoodTypeLabel string           `json:"woodTypeLabel,omitempty"`
	NumberOfLogs  int              `json:"numberOfLogs"`
	Thickness     *decimal.Decimal `json:"thickness,omitempty"`
	Width         *decimal.Decimal `json:"width,omitempty"`
	Length        *decimal.Decimal `json:"length,omitempty"`
	CubicFeet     decimal.Decimal  `json:"cubicFeet"`
}

func encodeLogItems(items []domain.LogItem) ([]byte, error) {
	rows := make([]logItemRow, len(items))
	for i, li := range items {
		rows[i] = logItemRow(li)
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return data, nil
}

func decodeLogItems(data []byte) ([]domain.LogItem, error) {
	var rows []logItemRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: log_items: %v", ErrScanRow, err)
	}
	items := make([]domain.LogItem, len(rows))
	for i, r := range rows {
		items[i] = domain.LogItem(r)
	}
	return items, nil
}

// slotColumns тройка колонок времени для одного варианта состояния
type slotColumns struct {
	Date  sql.NullTime
	Start types.TimeString
	End   types.TimeString
}

func (c slotColumns) reservation() *domain.Reservation {
	if !c.Date.Valid || c.Start.IsZero() || c.End.IsZero() {
		return nil
	}
	return &domain.Reservation{Date: c.Date.Time, Range: domain.TimeRange{Start: c.Start, End: c.End}}
}

// stateColumns раскладывает состояние по колонкам accepted_*, proposed_*, scheduled_*.
// Заполнена только тройка, соответствующая статусу; остальные NULL.
type stateColumns struct {
	Accepted  slotColumns
	Proposed  slotColumns
	Scheduled slotColumns
}

func toStateColumns(state domain.EnquiryState) stateColumns {
	var cols stateColumns
	set := func(c *slotColumns, r domain.Reservation) {
		*c = slotColumns{
			Date:  sql.NullTime{Time: r.Date, Valid: true},
			Start: r.Range.Start,
			End:   r.Range.End,
		}
	}

	switch s := state.(type) {
	case domain.TimeAccepted:
		set(&cols.Accepted, s.Slot)
	case domain.AlternateProposed:
		set(&cols.Proposed, s.Slot)
	case domain.Scheduled:
		set(&cols.Scheduled, s.Slot)
	case domain.InProgress:
		set(&cols.Scheduled, s.Slot)
	case domain.Completed:
		set(&cols.Scheduled, s.Slot)
	}
	return cols
}

func (c stateColumns) toState(status domain.Status) (domain.EnquiryState, error) {
	var slot *domain.Reservation
	switch status {
	case domain.StatusTimeAccepted:
		slot = c.Accepted.reservation()
	case domain.StatusAlternateTimeProposed:
		slot = c.Proposed.reservation()
	case domain.StatusScheduled, domain.StatusInProgress, domain.StatusCompleted:
		slot = c.Scheduled.reservation()
	}
	state, err := domain.StateFromStatus(status, slot)
	if err != nil {
		return nil, fmt.Errorf("%w: state: %v", ErrScanRow, err)
	}
	return state, nil
}

func nullDate(t sql.NullTime) interface{} {
	if !t.Valid {
		return nil
	}
	return t.Time.Format(domain.DateFormat)
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func decimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func timeOrZero(t sql.NullTime) time.Time {
	return t.Time
}
