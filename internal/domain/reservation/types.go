package reservation

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusActive    Status = "ACTIVE"
	StatusReady     Status = "READY"
	StatusFulfilled Status = "FULFILLED"
	StatusCancelled Status = "CANCELLED"
	StatusExpired   Status = "EXPIRED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusActive, StatusReady, StatusFulfilled, StatusCancelled, StatusExpired:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the reservation can no longer change state.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusFulfilled, StatusCancelled, StatusExpired:
		return true
	default:
		return false
	}
}

// IsOpen reports whether the reservation still holds a place against the
// book. Open reservations block book deletion and count toward the
// per-member reservation limit.
func (s Status) IsOpen() bool {
	return !s.IsTerminal()
}
