package ports

//go:generate mockgen -source=ledger.go -destination=mocks/mock_ledger.go -package=mocks

import (
	"context"

	"energy-marketplace/internal/core/domain"
)

// LedgerClient is the read and submit surface of the ledger node.
type LedgerClient interface {
	// GetObject returns nil, nil when the object does not exist.
	GetObject(ctx context.Context, id string) (*domain.ObjectRecord, error)
	// MultiGetObjects skips ids the node reports as missing or deleted.
	MultiGetObjects(ctx context.Context, ids []string) ([]domain.ObjectRecord, error)
	OwnedObjects(ctx context.Context, owner string, structType string) ([]domain.ObjectRecord, error)
	ObjectsByType(ctx context.Context, structType string) ([]domain.ObjectRecord, error)
	// EventsByType and EventsByModule return newest first.
	EventsByType(ctx context.Context, eventType string, limit int) ([]domain.EventEntry, error)
	EventsByModule(ctx context.Context, packageID string, module string, limit int) ([]domain.EventEntry, error)
	TransactionExecutor
	FinalityWaiter
}

// TransactionExecutor submits a signed transaction and returns its digest.
type TransactionExecutor interface {
	ExecuteTransaction(ctx context.Context, txBytes string, signatures []string) (string, error)
}

// FinalityWaiter blocks until the ledger reports effects for digest.
type FinalityWaiter interface {
	WaitForTransaction(ctx context.Context, digest string) (*domain.TransactionEffects, error)
}

// WalletConnector is the user's wallet: it knows the connected account and holds the keys.
type WalletConnector interface {
	// CurrentAccount returns "" when no account is connected.
	CurrentAccount(ctx context.Context) (string, error)
	// SignAndExecute asks the user to sign call and submits it, returning the digest.
	SignAndExecute(ctx context.Context, call domain.MoveCall) (string, error)
}
