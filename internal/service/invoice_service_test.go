package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/einvoicelab/e-invoice-service/internal/domain"
	"github.com/einvoicelab/e-invoice-service/internal/model"
	"github.com/einvoicelab/e-invoice-service/internal/repository"
)

const validSubmission = `{
	"invoiceNumber": "1",
	"invoiceType": "Tax Invoice",
	"sellerId": "SELLER1",
	"buyer": {"crId": "BUYER1", "name": "Buyer One"},
	"items": [
		{"description": "A", "unitPrice": 100, "quantity": 2, "taxPercentage": 15}
	],
	"invoice_status": "valid"
}`

// makeRequest decodes a JSON body into a submission request the way the
// handler's binder would
func makeRequest(t *testing.T, body string) *model.SubmitInvoiceRequest {
	t.Helper()
	var request model.SubmitInvoiceRequest
	require.NoError(t, json.Unmarshal([]byte(body), &request))
	return &request
}

// failingRepository always fails, to exercise the store-error paths
type failingRepository struct{}

func (r *failingRepository) CreateInvoice(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	return nil, errors.New("connection refused")
}

func (r *failingRepository) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	return nil, errors.New("connection refused")
}

func TestSubmitInvoiceComputesTotals(t *testing.T) {
	svc := NewInvoiceService(repository.NewMemoryInvoiceRepository())

	response, err := svc.SubmitInvoice(context.Background(), makeRequest(t, validSubmission))
	require.NoError(t, err)

	assert.Equal(t, "success", response.Status)
	assert.Equal(t, "Invoice processed successfully", response.Message)
	assert.NotEmpty(t, response.InvoiceID)
	assert.Equal(t, 230.0, response.TotalAmount)
}

func TestSubmitInvoiceAcceptsNumericStrings(t *testing.T) {
	svc := NewInvoiceService(repository.NewMemoryInvoiceRepository())

	body := `{
		"invoiceNumber": "2",
		"invoiceType": "Tax Invoice",
		"sellerId": "SELLER1",
		"buyer": {"crId": "BUYER1"},
		"items": [
			{"description": "A", "unitPrice": "100", "quantity": "2", "taxPercentage": "15"}
		],
		"invoice_status": "valid"
	}`

	response, err := svc.SubmitInvoice(context.Background(), makeRequest(t, body))
	require.NoError(t, err)
	assert.Equal(t, 230.0, response.TotalAmount)
}

func TestSubmitInvoiceMissingTopLevelField(t *testing.T) {
	fields := []string{"invoiceNumber", "invoiceType", "sellerId", "buyer", "items", "invoice_status"}

	for _, field := range fields {
		t.Run(field, func(t *testing.T) {
			var payload map[string]interface{}
			require.NoError(t, json.Unmarshal([]byte(validSubmission), &payload))
			delete(payload, field)
			body, err := json.Marshal(payload)
			require.NoError(t, err)

			svc := NewInvoiceService(repository.NewMemoryInvoiceRepository())
			_, err = svc.SubmitInvoice(context.Background(), makeRequest(t, string(body)))

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, fmt.Sprintf("Missing required field: %s", field), validationErr.Message)
		})
	}
}

func TestSubmitInvoiceReportsFirstMissingField(t *testing.T) {
	body := `{"invoiceType": "Tax Invoice", "items": []}`

	svc := NewInvoiceService(repository.NewMemoryInvoiceRepository())
	_, err := svc.SubmitInvoice(context.Background(), makeRequest(t, body))

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Missing required field: invoiceNumber", validationErr.Message)
}

func TestSubmitInvoiceMissingBuyerCrID(t *testing.T) {
	body := `{
		"invoiceNumber": "1",
		"invoiceType": "Tax Invoice",
		"sellerId": "SELLER1",
		"buyer": {"name": "no registration id"},
		"items": [{"description": "A", "unitPrice": 1, "quantity": 1, "taxPercentage": 0}],
		"invoice_status": "valid"
	}`

	svc := NewInvoiceService(repository.NewMemoryInvoiceRepository())
	_, err := svc.SubmitInvoice(context.Background(), makeRequest(t, body))

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Buyer information is missing 'crId' field", validationErr.Message)
}

func TestSubmitInvoiceEmptyItems(t *testing.T) {
	for name, items := range map[string]string{
		"empty array": `[]`,
		"not a list":  `"items"`,
		"null":        `null`,
	} {
		t.Run(name, func(t *testing.T) {
			body := fmt.Sprintf(`{
				"invoiceNumber": "1",
				"invoiceType": "Tax Invoice",
				"sellerId": "SELLER1",
				"buyer": {"crId": "BUYER1"},
				"items": %s,
				"invoice_status": "valid"
			}`, items)

			svc := NewInvoiceService(repository.NewMemoryInvoiceRepository())
			_, err := svc.SubmitInvoice(context.Background(), makeRequest(t, body))

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, "Items must be a non-empty array", validationErr.Message)
		})
	}
}

func TestSubmitInvoiceMissingItemField(t *testing.T) {
	body := `{
		"invoiceNumber": "1",
		"invoiceType": "Tax Invoice",
		"sellerId": "SELLER1",
		"buyer": {"crId": "BUYER1"},
		"items": [
			{"description": "A", "unitPrice": 100, "quantity": 2, "taxPercentage": 15},
			{"description": "B", "unitPrice": 50, "taxPercentage": 15}
		],
		"invoice_status": "valid"
	}`

	svc := NewInvoiceService(repository.NewMemoryInvoiceRepository())
	_, err := svc.SubmitInvoice(context.Background(), makeRequest(t, body))

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Item 2 is missing required field: quantity", validationErr.Message)
}

func TestSubmitInvoiceNonNumericValue(t *testing.T) {
	body := `{
		"invoiceNumber": "1",
		"invoiceType": "Tax Invoice",
		"sellerId": "SELLER1",
		"buyer": {"crId": "BUYER1"},
		"items": [{"description": "A", "unitPrice": "abc", "quantity": 1, "taxPercentage": 0}],
		"invoice_status": "valid"
	}`

	svc := NewInvoiceService(repository.NewMemoryInvoiceRepository())
	_, err := svc.SubmitInvoice(context.Background(), makeRequest(t, body))

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "Invalid data format")
	assert.Contains(t, validationErr.Message, "unitPrice")
}

func TestSubmitInvoiceRejectionPersistsNothing(t *testing.T) {
	repo := repository.NewMemoryInvoiceRepository()
	svc := NewInvoiceService(repo)

	body := `{
		"invoiceNumber": "1",
		"invoiceType": "Tax Invoice",
		"sellerId": "SELLER1",
		"buyer": {"crId": "BUYER1"},
		"items": [],
		"invoice_status": "valid"
	}`
	_, err := svc.SubmitInvoice(context.Background(), makeRequest(t, body))
	require.Error(t, err)

	invoices, err := repo.ListInvoices(context.Background())
	require.NoError(t, err)
	assert.Empty(t, invoices)
}

func TestSubmitInvoiceDistinctIdentifiers(t *testing.T) {
	svc := NewInvoiceService(repository.NewMemoryInvoiceRepository())

	first, err := svc.SubmitInvoice(context.Background(), makeRequest(t, validSubmission))
	require.NoError(t, err)
	second, err := svc.SubmitInvoice(context.Background(), makeRequest(t, validSubmission))
	require.NoError(t, err)

	assert.NotEqual(t, first.InvoiceID, second.InvoiceID)
}

func TestSubmitInvoiceStoreFailure(t *testing.T) {
	svc := NewInvoiceService(&failingRepository{})

	_, err := svc.SubmitInvoice(context.Background(), makeRequest(t, validSubmission))
	require.Error(t, err)

	var validationErr *ValidationError
	assert.False(t, errors.As(err, &validationErr))
}

func TestListInvoicesRoundTrip(t *testing.T) {
	svc := NewInvoiceService(repository.NewMemoryInvoiceRepository())

	first, err := svc.SubmitInvoice(context.Background(), makeRequest(t, validSubmission))
	require.NoError(t, err)
	second, err := svc.SubmitInvoice(context.Background(), makeRequest(t, validSubmission))
	require.NoError(t, err)

	response, err := svc.ListInvoices(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "success", response.Status)
	assert.Equal(t, 2, response.Count)
	require.Len(t, response.Invoices, 2)

	ids := []string{response.Invoices[0].InvoiceID, response.Invoices[1].InvoiceID}
	assert.Contains(t, ids, first.InvoiceID)
	assert.Contains(t, ids, second.InvoiceID)

	entry := response.Invoices[0]
	assert.Equal(t, "Tax Invoice", entry.InvoiceType)
	assert.Equal(t, "BUYER1", entry.BuyerID)
	assert.Equal(t, "SELLER1", entry.SellerCR)
	assert.Equal(t, map[string]interface{}{"crId": "SELLER1"}, entry.SellerInfo)
	assert.Equal(t, "BUYER1", entry.BuyerInfo["crId"])
	assert.Equal(t, "Buyer One", entry.BuyerInfo["name"])
	assert.Equal(t, 230.0, entry.TotalAmount)
	assert.Equal(t, 200.0, entry.TotalAmountWithoutTax)
	assert.Equal(t, 30.0, entry.TotalTax)
	assert.Equal(t, "valid", entry.InvoiceStatus)
	assert.NotEmpty(t, entry.CreatedAt)
}

func TestListInvoicesIdempotent(t *testing.T) {
	svc := NewInvoiceService(repository.NewMemoryInvoiceRepository())

	_, err := svc.SubmitInvoice(context.Background(), makeRequest(t, validSubmission))
	require.NoError(t, err)

	first, err := svc.ListInvoices(context.Background())
	require.NoError(t, err)
	second, err := svc.ListInvoices(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestListInvoicesEmptyStore(t *testing.T) {
	svc := NewInvoiceService(repository.NewMemoryInvoiceRepository())

	response, err := svc.ListInvoices(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, response.Count)
	assert.NotNil(t, response.Invoices)
	assert.Empty(t, response.Invoices)
}

func TestListInvoicesStoreFailure(t *testing.T) {
	svc := NewInvoiceService(&failingRepository{})

	_, err := svc.ListInvoices(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list invoices")
}
