package book

type Status string

const (
	StatusAvailable        Status = "AVAILABLE"
	StatusBorrowed         Status = "BORROWED"
	StatusReserved         Status = "RESERVED"
	StatusUnderMaintenance Status = "UNDER_MAINTENANCE"
	StatusLost             Status = "LOST"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusBorrowed, StatusReserved, StatusUnderMaintenance, StatusLost:
		return true
	default:
		return false
	}
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// Lendable reports whether copies of a book in this status may circulate.
// UNDER_MAINTENANCE and LOST books are out of circulation entirely.
func (s Status) Lendable() bool {
	return s != StatusUnderMaintenance && s != StatusLost
}
