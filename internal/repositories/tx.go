package repositories

import "context"

// TxManager runs a function inside a single storage transaction. The
// order placement flow uses it so the stock decrement and the order
// insert either both apply or neither does.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
