package service

import "context"

// TxRunner runs a closure inside an atomic transaction: either every
// write made with the closure's context commits, or none do. Backed by
// database.UnitOfWork in production and by an in-memory snapshot runner
// in tests.
type TxRunner interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
