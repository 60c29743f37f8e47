package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/einvoicelab/e-invoice-service/internal/domain"
)

func TestMemoryRepositoryGeneratesID(t *testing.T) {
	repo := NewMemoryInvoiceRepository()

	stored, err := repo.CreateInvoice(context.Background(), &domain.Invoice{
		SellerCR: "SELLER1",
		BuyerID:  "BUYER1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, stored.ID)
	assert.False(t, stored.CreatedAt.IsZero())
}

func TestMemoryRepositoryKeepsCallerID(t *testing.T) {
	repo := NewMemoryInvoiceRepository()

	stored, err := repo.CreateInvoice(context.Background(), &domain.Invoice{ID: "fixed-id"})
	require.NoError(t, err)

	assert.Equal(t, "fixed-id", stored.ID)
}

func TestMemoryRepositoryInsertionOrder(t *testing.T) {
	repo := NewMemoryInvoiceRepository()

	first, err := repo.CreateInvoice(context.Background(), &domain.Invoice{})
	require.NoError(t, err)
	second, err := repo.CreateInvoice(context.Background(), &domain.Invoice{})
	require.NoError(t, err)

	invoices, err := repo.ListInvoices(context.Background())
	require.NoError(t, err)
	require.Len(t, invoices, 2)

	assert.Equal(t, first.ID, invoices[0].ID)
	assert.Equal(t, second.ID, invoices[1].ID)
}

func TestMemoryRepositoryListCopiesRecords(t *testing.T) {
	repo := NewMemoryInvoiceRepository()

	_, err := repo.CreateInvoice(context.Background(), &domain.Invoice{Status: "valid"})
	require.NoError(t, err)

	invoices, err := repo.ListInvoices(context.Background())
	require.NoError(t, err)
	invoices[0].Status = "mutated"

	fresh, err := repo.ListInvoices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "valid", fresh[0].Status)
}
