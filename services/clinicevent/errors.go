package clinicevent

import "errors"

// ErrEventNotFound is returned when no clinic event carries the given id.
var ErrEventNotFound = errors.New("clinic event not found")
