package errors

import "errors"

// This package defines a centralized set of sentinel errors for the application.
// Services wrap these with context (`fmt.Errorf("%w: ...")`) and the API layer
// uses `errors.Is()` to map them to HTTP responses.

var (
	// ErrNotFound signifies that a conversation, message or character could not be located.
	// This is typically mapped to a 404 Not Found HTTP status.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that input data failed a business rule, e.g. a
	// blank draft or a send with nothing staged.
	// This is typically mapped to a 400 Bad Request HTTP status.
	ErrValidation = errors.New("validation failed")

	// ErrConflict signifies that an operation conflicts with the current state
	// of a resource. A send or regenerate on a conversation that is already
	// sending returns this without touching any state.
	// This is typically mapped to a 409 Conflict HTTP status.
	ErrConflict = errors.New("resource conflict")

	// ErrInternal signifies an unexpected error on the server. It hides
	// implementation details from the client.
	// This is typically mapped to a 500 Internal Server Error HTTP status.
	ErrInternal = errors.New("internal server error")
)
