package domain

import (
	"fmt"
	"time"
)

// ActorRole who triggers a transition
type ActorRole string

const (
	RoleCustomer ActorRole = "customer"
	RoleStaff    ActorRole = "staff"
)

// ParseActorRole validates a role string
func ParseActorRole(s string) (ActorRole, error) {
	switch ActorRole(s) {
	case RoleCustomer, RoleStaff:
		return ActorRole(s), nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", ErrValidation, s)
	}
}

// Actor identity and role of the caller
type Actor struct {
	Role ActorRole
	ID   int64
}

// IsStaff reports whether the actor is staff
func (a Actor) IsStaff() bool {
	return a.Role == RoleStaff
}

// Action an operation on an enquiry
type Action string

const (
	ActionReview         Action = "review"
	ActionAcceptTime     Action = "accept-time"
	ActionProposeTime    Action = "propose-time"
	ActionReject         Action = "reject"
	ActionSchedule       Action = "schedule"
	ActionAcceptProposal Action = "accept-proposal"
	ActionStart          Action = "start"
	ActionComplete       Action = "complete"
	ActionCancel         Action = "cancel"

	// ActionSubmit initial event of a new enquiry; not a transition
	ActionSubmit Action = "submit"
)

var actionTargets = map[Action]Status{
	ActionReview:         StatusUnderReview,
	ActionAcceptTime:     StatusTimeAccepted,
	ActionProposeTime:    StatusAlternateTimeProposed,
	ActionReject:         StatusRejected,
	ActionSchedule:       StatusScheduled,
	ActionAcceptProposal: StatusScheduled,
	ActionStart:          StatusInProgress,
	ActionComplete:       StatusCompleted,
	ActionCancel:         StatusCancelled,
}

// ParseAction validates an action string
func ParseAction(s string) (Action, error) {
	a := Action(s)
	if _, ok := actionTargets[a]; !ok {
		return "", fmt.Errorf("%w: unknown action %q", ErrValidation, s)
	}
	return a, nil
}

// Target the status the action leads to
func (a Action) Target() Status {
	return actionTargets[a]
}

// transitions allowed status changes; terminal statuses map to nothing
var transitions = map[Status][]Status{
	StatusEnquiryReceived:       {StatusUnderReview, StatusCancelled},
	StatusUnderReview:           {StatusTimeAccepted, StatusAlternateTimeProposed, StatusRejected, StatusCancelled},
	StatusTimeAccepted:          {StatusScheduled, StatusCancelled},
	StatusAlternateTimeProposed: {StatusScheduled, StatusCancelled, StatusRejected},
	StatusScheduled:             {StatusInProgress, StatusCancelled},
	StatusInProgress:            {StatusCompleted},
	StatusCompleted:             {},
	StatusCancelled:             {},
	StatusRejected:              {},
}

// customerActions actions a customer may perform, with the statuses they apply from
var customerActions = map[Action][]Status{
	ActionCancel:         {StatusEnquiryReceived, StatusUnderReview},
	ActionAcceptProposal: {StatusAlternateTimeProposed},
}

// CanTransitionTo reports whether target is reachable in one step
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal no further transitions are possible
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// Transition a requested status change
type Transition struct {
	Action Action
	Actor  Actor
	Slot   *Reservation // new time reference, optional for some actions
	Reason string
}

// StatusEvent audit row for a committed transition
type StatusEvent struct {
	ID        int64
	EnquiryID string
	From      Status
	To        Status
	Action    Action
	Actor     Actor
	Reason    string
	CreatedAt time.Time
}

// Next returns the state that applying t would produce. e is not modified.
func (e *Enquiry) Next(t Transition) (EnquiryState, error) {
	from := e.Status()

	target, ok := actionTargets[t.Action]
	if !ok {
		return nil, fmt.Errorf("%w: unknown action %q", ErrValidation, t.Action)
	}

	if from.IsTerminal() {
		return nil, &TransitionError{From: from, To: target, Reason: "enquiry is closed"}
	}

	if err := checkActor(t, from, target); err != nil {
		return nil, err
	}

	if !from.CanTransitionTo(target) {
		return nil, &TransitionError{From: from, To: target}
	}

	if t.Slot != nil {
		if err := t.Slot.Range.Validate(); err != nil {
			return nil, err
		}
	}

	switch t.Action {
	case ActionReview:
		return UnderReview{}, nil

	case ActionAcceptTime:
		if t.Slot != nil {
			return TimeAccepted{Slot: *t.Slot}, nil
		}
		requested, err := e.RequestedReservation()
		if err != nil {
			return nil, fmt.Errorf("%w: requested time: %v", ErrValidation, err)
		}
		return TimeAccepted{Slot: requested}, nil

	case ActionProposeTime:
		if t.Slot == nil {
			return nil, fmt.Errorf("%w: a date, start and end time are required to propose a time", ErrValidation)
		}
		return AlternateProposed{Slot: *t.Slot}, nil

	case ActionSchedule:
		if t.Slot != nil {
			return Scheduled{Slot: *t.Slot}, nil
		}
		held, ok := e.HeldReservation()
		if !ok {
			return nil, &TransitionError{From: from, To: target, Reason: "no time is held"}
		}
		return Scheduled{Slot: held}, nil

	case ActionAcceptProposal:
		proposed, ok := e.State.(AlternateProposed)
		if !ok {
			return nil, &TransitionError{From: from, To: target, Reason: "no alternate time has been proposed"}
		}
		if t.Slot != nil && !t.Slot.Equal(proposed.Slot) {
			return nil, fmt.Errorf("%w: accepted time differs from the proposed time", ErrValidation)
		}
		return Scheduled{Slot: proposed.Slot}, nil

	case ActionStart:
		scheduled, ok := e.State.(Scheduled)
		if !ok {
			return nil, &TransitionError{From: from, To: target, Reason: "enquiry has no scheduled time"}
		}
		return InProgress{Slot: scheduled.Slot}, nil

	case ActionComplete:
		started, ok := e.State.(InProgress)
		if !ok {
			return nil, &TransitionError{From: from, To: target, Reason: "work has not started"}
		}
		return Completed{Slot: started.Slot}, nil

	case ActionReject:
		return Rejected{}, nil

	case ActionCancel:
		return Cancelled{}, nil
	}

	return nil, &TransitionError{From: from, To: target}
}

// Apply moves the enquiry into next
func (e *Enquiry) Apply(next EnquiryState, at time.Time) {
	e.State = next
	e.UpdatedAt = at
}

func checkActor(t Transition, from, target Status) error {
	if t.Actor.IsStaff() {
		return nil
	}
	if t.Actor.Role != RoleCustomer {
		return fmt.Errorf("%w: unknown actor role %q", ErrAccessDenied, t.Actor.Role)
	}

	allowedFrom, ok := customerActions[t.Action]
	if !ok {
		return fmt.Errorf("%w: action %s is staff-only", ErrAccessDenied, t.Action)
	}
	for _, s := range allowedFrom {
		if s == from {
			return nil
		}
	}
	return &TransitionError{From: from, To: target, Reason: fmt.Sprintf("customer cannot %s from this status", t.Action)}
}
