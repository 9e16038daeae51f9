package quotation

import (
	"context"

	"github.com/jhoicas/Quotation-api/internal/domain/entity"
	"github.com/jhoicas/Quotation-api/internal/domain/repository"
)

// TxRunner runs fn inside a storage transaction with a quotation repository bound to it.
type TxRunner interface {
	Run(ctx context.Context, fn func(quotations repository.QuotationRepository) error) error
}

// Renderer produces the printable document of a quotation.
type Renderer interface {
	Render(q *entity.Quotation) ([]byte, error)
}
