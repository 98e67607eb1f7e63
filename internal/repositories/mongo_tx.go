package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoTxManager implements TxManager with MongoDB sessions. Requires a
// deployment that supports transactions (replica set or mongos).
type MongoTxManager struct {
	client *mongo.Client
}

// NewMongoTxManager creates a new MongoTxManager.
func NewMongoTxManager(client *mongo.Client) *MongoTxManager {
	return &MongoTxManager{client: client}
}

// WithTransaction runs fn inside a session transaction. The session
// context is passed to fn so repository calls join the transaction.
func (m *MongoTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
