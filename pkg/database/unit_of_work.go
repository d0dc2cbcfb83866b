package database

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// UnitOfWork manages MongoDB transactions
type UnitOfWork struct {
	client *mongo.Client
}

// NewUnitOfWork creates a new Unit of Work instance
func NewUnitOfWork(client *mongo.Client) *UnitOfWork {
	return &UnitOfWork{
		client: client,
	}
}

// WithinTransaction executes a function within a MongoDB transaction.
// If the function returns an error, the transaction is aborted and none
// of its writes are visible. The closure receives a session-bound
// context, so repository calls made with it join the transaction.
func (uow *UnitOfWork) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := uow.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	// session.WithTransaction handles the transaction lifecycle
	// automatically, including retry of transient transaction errors
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})

	return err
}
