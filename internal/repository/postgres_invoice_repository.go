package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/einvoicelab/e-invoice-service/internal/domain"
)

// PostgresInvoiceRepository implements InvoiceRepository using PostgreSQL
type PostgresInvoiceRepository struct {
	db *pgxpool.Pool
}

// NewPostgresInvoiceRepository creates a new PostgreSQL invoice repository
func NewPostgresInvoiceRepository(db *pgxpool.Pool) *PostgresInvoiceRepository {
	return &PostgresInvoiceRepository{
		db: db,
	}
}

// CreateInvoice saves a new invoice record to the database
func (r *PostgresInvoiceRepository) CreateInvoice(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	if invoice.ID == "" {
		invoice.ID = uuid.NewString()
	}

	buyerInfo, err := json.Marshal(invoice.BuyerInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to encode buyer info: %w", err)
	}

	sellerInfo, err := json.Marshal(invoice.SellerInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to encode seller info: %w", err)
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO invoices (
			invoice_id, buyer_info, seller_info, seller_cr, buyer_id,
			total_amount, total_amount_without_tax, total_tax,
			invoice_status, invoice_type
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`, invoice.ID, buyerInfo, sellerInfo, invoice.SellerCR, invoice.BuyerID,
		invoice.TotalAmount, invoice.TotalAmountWithoutTax, invoice.TotalTax,
		invoice.Status, invoice.Type).Scan(
		&invoice.CreatedAt, &invoice.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert invoice: %w", err)
	}

	return invoice, nil
}

// ListInvoices retrieves all invoice records in insertion order
func (r *PostgresInvoiceRepository) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	rows, err := r.db.Query(ctx, `
		SELECT invoice_id, buyer_info, seller_info, seller_cr, buyer_id,
		       total_amount, total_amount_without_tax, total_tax,
		       invoice_status, invoice_type, created_at, updated_at
		FROM invoices
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		var invoice domain.Invoice
		var buyerInfo, sellerInfo []byte
		if err := rows.Scan(
			&invoice.ID, &buyerInfo, &sellerInfo, &invoice.SellerCR, &invoice.BuyerID,
			&invoice.TotalAmount, &invoice.TotalAmountWithoutTax, &invoice.TotalTax,
			&invoice.Status, &invoice.Type, &invoice.CreatedAt, &invoice.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}

		if err := json.Unmarshal(buyerInfo, &invoice.BuyerInfo); err != nil {
			return nil, fmt.Errorf("failed to decode buyer info: %w", err)
		}
		if err := json.Unmarshal(sellerInfo, &invoice.SellerInfo); err != nil {
			return nil, fmt.Errorf("failed to decode seller info: %w", err)
		}

		invoices = append(invoices, invoice)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoices: %w", err)
	}

	return invoices, nil
}
