package instagram

import "strings"

// Status is the remote container state vocabulary. The service drives all
// transitions; the client only polls and observes.
type Status string

const (
	StatusInProgress Status = "IN_PROGRESS"
	StatusFinished   Status = "FINISHED"
	StatusError      Status = "ERROR"
	StatusExpired    Status = "EXPIRED"
	StatusUnknown    Status = "UNKNOWN"
)

// ParseStatus maps the remote status string onto the known vocabulary.
// Unrecognized values become UNKNOWN, which the wait loop treats as retryable.
func ParseStatus(s string) Status {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusInProgress:
		return StatusInProgress
	case StatusFinished:
		return StatusFinished
	case StatusError:
		return StatusError
	case StatusExpired:
		return StatusExpired
	default:
		return StatusUnknown
	}
}

// Terminal reports whether the status ends the wait loop.
func (s Status) Terminal() bool {
	return s == StatusFinished || s == StatusError || s == StatusExpired
}
