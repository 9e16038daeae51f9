package memory

import (
	"context"

	"github.com/jhoicas/Quotation-api/internal/domain/repository"
)

// TxRunner serializes quotation read-modify-write callbacks.
// There is no rollback: callbacks write last, after every check has passed.
type TxRunner struct {
	store *Store
}

// NewTxRunner builds the runner over store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run executes fn while holding the store's transaction lock.
func (r *TxRunner) Run(ctx context.Context, fn func(quotations repository.QuotationRepository) error) error {
	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()
	return fn(NewQuotationRepository(r.store))
}
