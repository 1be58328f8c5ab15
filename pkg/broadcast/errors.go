package broadcast

import "errors"

var (
	// ErrClosed is returned when subscribing to or publishing on a closed hub.
	ErrClosed = errors.New("broadcast: hub is closed")
)
