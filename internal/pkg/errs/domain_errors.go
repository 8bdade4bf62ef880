package errs

import "errors"

// Sentinel errors shared across the usecase layer. Handlers map these to
// HTTP statuses; infra failures are marked with ErrDatabaseOperationFailed.
var (
	// Lookup errors
	ErrBookNotFound        = errors.New("book not found")
	ErrLoanNotFound        = errors.New("loan not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrUserNotFound        = errors.New("user not found")

	// Conflict errors
	ErrDuplicateActiveLoan  = errors.New("duplicate active loan")
	ErrDuplicateReservation = errors.New("duplicate open reservation")
	ErrBookStillReferenced  = errors.New("book still referenced by open loans or reservations")

	// State errors
	ErrInvalidLoanState        = errors.New("invalid loan state transition")
	ErrInvalidReservationState = errors.New("invalid reservation state transition")

	// Auth errors
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
	ErrInvariantViolation      = errors.New("inventory invariant violation")
)
