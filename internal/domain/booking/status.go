package booking

import (
	"time"

	"github.com/lumina-studio/gallery-api/internal/httperr"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func InitialStatus() Status {
	return StatusPending
}

func IsValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition leaves the status through
// the normal workflow.
func IsTerminal(s Status) bool {
	switch s {
	case StatusRejected, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// transitions is the full state machine:
// pending -> confirmed | rejected | cancelled
// confirmed -> completed | cancelled
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusRejected, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// CanTransition validates a status change against the state machine,
// regardless of who performs it.
func CanTransition(current, next Status) error {
	for _, allowed := range transitions[current] {
		if next == allowed {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_status_transition")
}

// CanStaffTransition validates a staff-initiated status change. Staff own
// every transition of the machine.
func CanStaffTransition(current, next Status) error {
	return CanTransition(current, next)
}

// CanClientCancel validates a client-initiated cancellation. Clients may only
// move their own pending or confirmed booking into cancelled, and only while
// the session is still at least MinLeadDays away.
func CanClientCancel(current Status, bookingDate, today time.Time) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness("cannot_cancel_status")
	}

	if bookingDate.Before(today) {
		return httperr.ErrBusiness("booking_already_passed")
	}

	if DaysUntil(today, bookingDate) < MinLeadDays {
		return httperr.ErrBusiness("cancellation_window_closed")
	}

	return nil
}

// CanDelete guards permanent deletion: a completed booking is kept forever.
func CanDelete(current Status) error {
	if current == StatusCompleted {
		return httperr.ErrBusiness("completed_booking_locked")
	}
	return nil
}
