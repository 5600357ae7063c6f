package domain

import "fmt"

// Status enquiry lifecycle status
type Status string

const (
	StatusEnquiryReceived       Status = "ENQUIRY_RECEIVED"
	StatusUnderReview           Status = "UNDER_REVIEW"
	StatusTimeAccepted          Status = "TIME_ACCEPTED"
	StatusAlternateTimeProposed Status = "ALTERNATE_TIME_PROPOSED"
	StatusScheduled             Status = "SCHEDULED"
	StatusInProgress            Status = "IN_PROGRESS"
	StatusCompleted             Status = "COMPLETED"
	StatusCancelled             Status = "CANCELLED"
	StatusRejected              Status = "REJECTED"
)

// ParseStatus validates a status string
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if _, ok := transitions[status]; !ok {
		return "", fmt.Errorf("%w: unknown status %q", ErrValidation, s)
	}
	return status, nil
}

func (s Status) String() string {
	return string(s)
}

// EnquiryState one variant per status; each variant carries only the
// time reference valid for that status.
type EnquiryState interface {
	Status() Status
	isEnquiryState()
}

// Received new enquiry holding a tentative booking for the requested time
type Received struct{}

// UnderReview staff opened the enquiry; the tentative booking is kept
type UnderReview struct{}

// TimeAccepted staff confirmed a time
type TimeAccepted struct {
	Slot Reservation
}

// AlternateProposed staff offered a different time
type AlternateProposed struct {
	Slot Reservation
}

// Scheduled the time is locked in
type Scheduled struct {
	Slot Reservation
}

// InProgress work has started in the scheduled slot
type InProgress struct {
	Slot Reservation
}

// Completed work is done
type Completed struct {
	Slot Reservation
}

// Cancelled by customer or staff
type Cancelled struct{}

// Rejected by staff
type Rejected struct{}

func (Received) Status() Status          { return StatusEnquiryReceived }
func (UnderReview) Status() Status       { return StatusUnderReview }
func (TimeAccepted) Status() Status      { return StatusTimeAccepted }
func (AlternateProposed) Status() Status { return StatusAlternateTimeProposed }
func (Scheduled) Status() Status         { return StatusScheduled }
func (InProgress) Status() Status        { return StatusInProgress }
func (Completed) Status() Status         { return StatusCompleted }
func (Cancelled) Status() Status         { return StatusCancelled }
func (Rejected) Status() Status          { return StatusRejected }

func (Received) isEnquiryState()          {}
func (UnderReview) isEnquiryState()       {}
func (TimeAccepted) isEnquiryState()      {}
func (AlternateProposed) isEnquiryState() {}
func (Scheduled) isEnquiryState()         {}
func (InProgress) isEnquiryState()        {}
func (Completed) isEnquiryState()         {}
func (Cancelled) isEnquiryState()         {}
func (Rejected) isEnquiryState()          {}

// StateFromStatus rebuilds a state variant from its persisted parts.
// slot is required for the variants that carry one.
func StateFromStatus(status Status, slot *Reservation) (EnquiryState, error) {
	needSlot := func() (Reservation, error) {
		if slot == nil {
			return Reservation{}, fmt.Errorf("%w: status %s requires a time reference", ErrValidation, status)
		}
		return *slot, nil
	}

	switch status {
	case StatusEnquiryReceived:
		return Received{}, nil
	case StatusUnderReview:
		return UnderReview{}, nil
	case StatusCancelled:
		return Cancelled{}, nil
	case StatusRejected:
		return Rejected{}, nil
	}

	s, err := needSlot()
	if err != nil {
		return nil, err
	}

	switch status {
	case StatusTimeAccepted:
		return TimeAccepted{Slot: s}, nil
	case StatusAlternateTimeProposed:
		return AlternateProposed{Slot: s}, nil
	case StatusScheduled:
		return Scheduled{Slot: s}, nil
	case StatusInProgress:
		return InProgress{Slot: s}, nil
	case StatusCompleted:
		return Completed{Slot: s}, nil
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
}
