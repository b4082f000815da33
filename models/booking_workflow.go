package models

import "github.com/google/uuid"

// BookingRole is a caller's capability for one specific booking. It is
// derived per request by comparing ids, never stored: the same user is a
// provider on bookings for their own skills and a student everywhere else.
type BookingRole int

const (
	RoleNone BookingRole = iota
	RoleStudent
	RoleProvider
)

func IsValidBookingStatus(status string) bool {
	switch status {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted,
		BookingStatusCancelledByStudent, BookingStatusCancelledByProvider:
		return true
	}
	return false
}

// IsActiveStatus reports whether a booking still occupies the one-active-
// booking slot for its (student, skill) pair.
func IsActiveStatus(status string) bool {
	return status == BookingStatusPending || status == BookingStatusConfirmed
}

func IsTerminalStatus(status string) bool {
	switch status {
	case BookingStatusCompleted, BookingStatusCancelledByStudent, BookingStatusCancelledByProvider:
		return true
	}
	return false
}

func (b *Booking) RoleOf(callerID uuid.UUID) BookingRole {
	switch callerID {
	case b.ProviderID:
		return RoleProvider
	case b.StudentID:
		return RoleStudent
	}
	return RoleNone
}

// AllowedTargetForRole gates who may even ask for a status. Providers
// confirm, complete and cancel on their side; students only cancel on
// theirs. Nobody can request "pending", so it is unreachable after create.
func AllowedTargetForRole(role BookingRole, target string) bool {
	switch role {
	case RoleProvider:
		return target == BookingStatusConfirmed ||
			target == BookingStatusCompleted ||
			target == BookingStatusCancelledByProvider
	case RoleStudent:
		return target == BookingStatusCancelledByStudent
	}
	return false
}

// CanTransition encodes the closed state machine. Every target requires the
// current status to sit in its predecessor set, so terminal bookings accept
// nothing and a completed booking can never be confirmed again.
func CanTransition(current, target string) bool {
	switch target {
	case BookingStatusConfirmed:
		return current == BookingStatusPending
	case BookingStatusCompleted:
		return current == BookingStatusConfirmed
	case BookingStatusCancelledByStudent, BookingStatusCancelledByProvider:
		return IsActiveStatus(current)
	}
	return false
}
