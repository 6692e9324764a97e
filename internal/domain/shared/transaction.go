package shared

import "context"

// TransactionManager runs fn inside one database transaction. Repositories
// called with the context passed to fn take part in that transaction.
type TransactionManager interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}
