package loan

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusActive   Status = "ACTIVE"
	StatusRejected Status = "REJECTED"
	StatusReturned Status = "RETURNED"
	StatusLost     Status = "LOST"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusActive, StatusRejected, StatusReturned, StatusLost:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the loan can no longer change state.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusReturned, StatusLost:
		return true
	default:
		return false
	}
}
