package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// Txn runs a function inside a MongoDB transaction. Repository methods
// called with the session context participate in the transaction; an
// error from fn aborts every write made within it.
type Txn struct {
	client *mongo.Client
}

func NewTxn(client *mongo.Client) *Txn {
	return &Txn{client: client}
}

func (t *Txn) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := t.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
