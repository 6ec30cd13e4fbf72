package leave

import "errors"

// ErrLeaveNotFound is returned when no leave period carries the given id.
var ErrLeaveNotFound = errors.New("leave period not found")
