package eventstream

import "errors"

// ErrNilMissionEvent indicates a nil mission event was provided to a publisher.
var ErrNilMissionEvent = errors.New("nil mission event")
