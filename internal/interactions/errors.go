package interactions

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when a response sets mutually exclusive
// fields. It is raised before any network call is made.
var ErrInvalidArgument = errors.New("invalid argument")

func invalidArgument(a, b string) error {
	return fmt.Errorf("%w: %s and %s are mutually exclusive", ErrInvalidArgument, a, b)
}
