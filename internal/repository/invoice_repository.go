package repository

import (
	"context"

	"github.com/einvoicelab/e-invoice-service/internal/domain"
)

// InvoiceRepository defines the interface for invoice data storage operations
type InvoiceRepository interface {
	// CreateInvoice persists a fully-formed invoice record. When the
	// invoice ID is empty the repository generates one. The stored
	// record, with ID and timestamps populated, is returned.
	CreateInvoice(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error)

	// ListInvoices retrieves every stored invoice record
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)
}
