package homework

import "context"

// StatusProvider fetches homework statuses changed since fromDate (Unix
// seconds) and returns the validated envelope. Implementations classify
// network and HTTP failures by wrapping ErrTransport.
type StatusProvider interface {
	HomeworkStatuses(ctx context.Context, fromDate int64) (*Envelope, error)
}
