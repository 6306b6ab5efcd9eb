package sheetsync

import (
	"context"
	"time"

	"github.com/dvloznov/ledgersync/internal/domain"
)

// Repository is the slice of the transaction store the reverse sync reads and stamps.
type Repository interface {
	ListDirtyTransactions(ctx context.Context, limit int) ([]*domain.DirtyTransaction, error)
	MarkTransactionsSynced(ctx context.Context, ids []string, at time.Time) (int64, error)
}
