package domain

import "errors"

// Domain errors - these are business logic errors that should be translated
// to appropriate HTTP status codes by the handler layer

var (
	// Catalog errors
	ErrProblemNotFound     = errors.New("problem not found")
	ErrContestNotFound     = errors.New("contest not found")
	ErrProblemNotInContest = errors.New("problem not found in this contest")
	ErrUnknownLanguage     = errors.New("unknown language")
	ErrInvalidCatalog      = errors.New("invalid catalog")

	// Session errors
	ErrInvalidSession = errors.New("invalid or expired session token")

	// Storage errors
	ErrStoreUnavailable = errors.New("progress store unavailable")

	// General errors
	ErrInternalServer = errors.New("internal server error")
)

// DomainError wraps an error with a message safe to show to clients
type DomainError struct {
	Err     error
	Message string
}

func (e *DomainError) Error() string {
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &DomainError{
		Err:     err,
		Message: message,
	}
}
