package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/einvoicelab/e-invoice-service/internal/domain"
)

// MemoryInvoiceRepository implements InvoiceRepository with an in-memory
// slice. It is used in tests and for running the service without a
// database.
type MemoryInvoiceRepository struct {
	mu       sync.RWMutex
	invoices []domain.Invoice
}

// NewMemoryInvoiceRepository creates a new in-memory invoice repository
func NewMemoryInvoiceRepository() *MemoryInvoiceRepository {
	return &MemoryInvoiceRepository{
		invoices: []domain.Invoice{},
	}
}

// CreateInvoice stores a new invoice record in memory
func (r *MemoryInvoiceRepository) CreateInvoice(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if invoice.ID == "" {
		invoice.ID = uuid.NewString()
	}
	invoice.CreatedAt = time.Now().UTC()
	invoice.UpdatedAt = invoice.CreatedAt

	r.invoices = append(r.invoices, *invoice)
	return invoice, nil
}

// ListInvoices returns all stored invoice records in insertion order
func (r *MemoryInvoiceRepository) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	invoices := make([]domain.Invoice, len(r.invoices))
	copy(invoices, r.invoices)
	return invoices, nil
}
