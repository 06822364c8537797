package movies

import "errors"

// GenericFailure is shown when the backend gives no usable explanation.
const GenericFailure = "Something went wrong. Please try again."

var (
	// ErrNotLoggedIn is returned by authenticated calls on a logged out session.
	ErrNotLoggedIn = errors.New("movies: not logged in")
	// ErrInvalidRating is returned when a rating is outside 1..5.
	ErrInvalidRating = errors.New("movies: rating must be between 1 and 5")
	// ErrInvalidForm is returned when a submitted form fails validation.
	ErrInvalidForm = errors.New("movies: form is invalid")
)

// BackendError carries the user facing message of a rejected request.
type BackendError struct {
	Op      string
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	return e.Message
}
