package repositories

import "context"

// MockTxManager runs the callback directly. The mock repositories are
// individually synchronized, and DecrementStock is the only write that
// has to be conditional, so tests do not need real transactions.
type MockTxManager struct{}

// NewMockTxManager creates a new MockTxManager.
func NewMockTxManager() *MockTxManager {
	return &MockTxManager{}
}

// WithTransaction invokes fn with the caller's context.
func (*MockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
