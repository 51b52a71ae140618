package port

import "context"

// TransactionManager runs a function inside a single database transaction.
// Repository calls made with the context passed to fn join the transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
