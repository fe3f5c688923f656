package utils

import "errors"

var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrNotFound           = errors.New("record not found")
	ErrInvalidPage        = errors.New("invalid page parameter")
	ErrInvalidPageSize    = errors.New("invalid page size parameter")
	ErrDatabaseError      = errors.New("database error")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")

	// Domain invariant violations.
	ErrNothingToCharge   = errors.New("nothing to charge for: payment references neither course nor lesson")
	ErrAmbiguousPurchase = errors.New("payment must reference either a course or a lesson, not both")
	ErrInvalidPrice      = errors.New("price must be non-negative")
	ErrInvalidAmount     = errors.New("amount must be non-negative")
	ErrInvalidMethod     = errors.New("payment method must be cash or transfer")
	ErrCourseRequired    = errors.New("lesson must belong to an existing course")

	ErrGatewayFailure = errors.New("payment gateway failure")
)

// PermissionDeniedError carries a human-readable reason and matches ErrPermissionDenied.
type PermissionDeniedError struct {
	Reason string
}

func (e *PermissionDeniedError) Error() string {
	return "permission denied: " + e.Reason
}

func (e *PermissionDeniedError) Is(target error) bool {
	return target == ErrPermissionDenied
}

func Denied(reason string) error {
	return &PermissionDeniedError{Reason: reason}
}

// IsDomainViolation reports whether err rejects a write because of a broken invariant.
func IsDomainViolation(err error) bool {
	for _, target := range []error{
		ErrNothingToCharge, ErrAmbiguousPurchase, ErrInvalidPrice,
		ErrInvalidAmount, ErrInvalidMethod, ErrCourseRequired, ErrInvalidRole,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
