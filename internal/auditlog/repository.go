package auditlog

import "context"

// Repository provides append and read access to the logs table. The log is an
// append-only side channel: callers record actions best effort and must not
// fail their own operation when an insert here fails.
type Repository interface {
	Insert(ctx context.Context, actor, message string) error
	List(ctx context.Context) ([]Entry, error)
}
