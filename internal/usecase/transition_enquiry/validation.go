package transition_enquiry

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-MillService/internal/domain"
	"github.com/m04kA/SMC-MillService/pkg/types"
)

// validateRequest проверяет запрос и собирает domain.Transition
func (uc *UseCase) validateRequest(req *Request) (domain.Transition, error) {
	if strings.TrimSpace(req.EnquiryID) == "" {
		return domain.Transition{}, fmt.Errorf("%w: enquiry id is required", ErrInvalidInput)
	}

	action, err := domain.ParseAction(req.Action)
	if err != nil {
		return domain.Transition{}, err
	}

	if _, err := domain.ParseActorRole(string(req.Actor.Role)); err != nil {
		return domain.Transition{}, err
	}
	if req.Actor.ID <= 0 {
		return domain.Transition{}, fmt.Errorf("%w: actor id must be positive", ErrInvalidInput)
	}

	if !req.Actor.IsStaff() && (req.AdminNotes != nil || req.EstimatedCost != nil) {
		return domain.Transition{}, fmt.Errorf("%w: only staff can set admin notes or estimated cost", domain.ErrAccessDenied)
	}

	if req.AdminNotes != nil && len(*req.AdminNotes) > domain.MaxNotesLength {
		return domain.Transition{}, fmt.Errorf("%w: adminNotes must be at most %d characters",
			ErrInvalidInput, domain.MaxNotesLength)
	}
	if req.EstimatedCost != nil && req.EstimatedCost.IsNegative() {
		return domain.Transition{}, fmt.Errorf("%w: estimatedCost must not be negative", ErrInvalidInput)
	}

	var reason string
	if req.Reason != nil {
		reason = strings.TrimSpace(*req.Reason)
		if len(reason) > domain.MaxReasonLength {
			return domain.Transition{}, fmt.Errorf("%w: reason must be at most %d characters",
				ErrInvalidInput, domain.MaxReasonLength)
		}
	}

	slot, err := uc.parseSlot(req)
	if err != nil {
		return domain.Transition{}, err
	}

	return domain.Transition{
		Action: action,
		Actor:  req.Actor,
		Slot:   slot,
		Reason: reason,
	}, nil
}

// parseSlot собирает новое время из date/startTime/endTime
func (uc *UseCase) parseSlot(req *Request) (*domain.Reservation, error) {
	given := 0
	for _, f := range []*string{req.Date, req.StartTime, req.EndTime} {
		if f != nil && strings.TrimSpace(*f) != "" {
			given++
		}
	}
	switch given {
	case 0:
		return nil, nil
	case 3:
	default:
		return nil, fmt.Errorf("%w: date, startTime and endTime must be given together", ErrInvalidInput)
	}

	date, err := domain.ParseDate(*req.Date, uc.calendar.Location())
	if err != nil {
		return nil, err
	}
	start, err := types.NewTimeStringFromString(strings.TrimSpace(*req.StartTime))
	if err != nil {
		return nil, fmt.Errorf("%w: startTime must be HH:MM: %v", ErrInvalidInput, err)
	}
	end, err := types.NewTimeStringFromString(strings.TrimSpace(*req.EndTime))
	if err != nil {
		return nil, fmt.Errorf("%w: endTime must be HH:MM: %v", ErrInvalidInput, err)
	}

	r := domain.TimeRange{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	return &domain.Reservation{Date: date, Range: r}, nil
}
