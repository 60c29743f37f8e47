package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/einvoicelab/e-invoice-service/internal/domain"
	"github.com/einvoicelab/e-invoice-service/internal/model"
	"github.com/einvoicelab/e-invoice-service/internal/repository"
)

// requiredFields are the top-level fields every submission must carry,
// checked in order so the first missing one is reported.
var requiredFields = []string{
	"invoiceNumber",
	"invoiceType",
	"sellerId",
	"buyer",
	"items",
	"invoice_status",
}

// requiredItemFields are the fields every line item must carry
var requiredItemFields = []string{
	"description",
	"unitPrice",
	"quantity",
	"taxPercentage",
}

// ValidationError represents a rejected submission. The message is safe
// to return to the caller with a 400 status.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InvoiceService defines the interface for invoice-related business logic
type InvoiceService interface {
	// SubmitInvoice validates a submission, computes its totals and
	// persists a new invoice record
	SubmitInvoice(ctx context.Context, request *model.SubmitInvoiceRequest) (*model.SubmitInvoiceResponse, error)

	// ListInvoices returns every stored invoice record
	ListInvoices(ctx context.Context) (*model.InvoiceListResponse, error)
}

// InvoiceServiceImpl implements the InvoiceService interface
type InvoiceServiceImpl struct {
	repository repository.InvoiceRepository
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(repo repository.InvoiceRepository) InvoiceService {
	return &InvoiceServiceImpl{
		repository: repo,
	}
}

// SubmitInvoice validates the submission, computes totals and stores the
// resulting record. Validation fully precedes persistence, so a rejected
// submission never leaves a partial record behind.
func (s *InvoiceServiceImpl) SubmitInvoice(ctx context.Context, request *model.SubmitInvoiceRequest) (*model.SubmitInvoiceResponse, error) {
	if request == nil {
		return nil, &ValidationError{Message: "No data provided"}
	}

	if err := validateRequiredFields(request); err != nil {
		return nil, err
	}

	if _, ok := request.Buyer["crId"]; !ok {
		return nil, &ValidationError{Message: "Buyer information is missing 'crId' field"}
	}

	items, err := parseItems(request.Items)
	if err != nil {
		return nil, err
	}

	invoice := domain.NewInvoice()
	invoice.BuyerInfo = request.Buyer
	invoice.SellerInfo = map[string]interface{}{"crId": *request.SellerID}
	invoice.SellerCR = *request.SellerID
	invoice.BuyerID = stringValue(request.Buyer["crId"])
	invoice.Type = *request.InvoiceType
	invoice.Status = *request.InvoiceStatus
	invoice.Items = items
	invoice.CalculateTotals()

	stored, err := s.repository.CreateInvoice(ctx, invoice)
	if err != nil {
		return nil, fmt.Errorf("failed to store invoice: %w", err)
	}

	return &model.SubmitInvoiceResponse{
		Status:      "success",
		Message:     "Invoice processed successfully",
		InvoiceID:   stored.ID,
		TotalAmount: stored.TotalAmount,
	}, nil
}

// ListInvoices retrieves all stored invoices and serializes them
func (s *InvoiceServiceImpl) ListInvoices(ctx context.Context) (*model.InvoiceListResponse, error) {
	invoices, err := s.repository.ListInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	entries := make([]model.InvoiceEntry, len(invoices))
	for i := range invoices {
		entries[i].FromDomain(&invoices[i])
	}

	return &model.InvoiceListResponse{
		Status:   "success",
		Count:    len(entries),
		Invoices: entries,
	}, nil
}

// validateRequiredFields checks that every required top-level field is
// present, reporting the first one missing
func validateRequiredFields(request *model.SubmitInvoiceRequest) error {
	present := map[string]bool{
		"invoiceNumber":  request.InvoiceNumber != nil,
		"invoiceType":    request.InvoiceType != nil,
		"sellerId":       request.SellerID != nil,
		"buyer":          request.Buyer != nil,
		"items":          request.Items != nil,
		"invoice_status": request.InvoiceStatus != nil,
	}

	for _, field := range requiredFields {
		if !present[field] {
			return &ValidationError{Message: fmt.Sprintf("Missing required field: %s", field)}
		}
	}
	return nil
}

// parseItems decodes and validates the raw items payload. Items must be
// a non-empty array and every item must carry all required fields with
// numeric values where numbers are expected.
func parseItems(raw json.RawMessage) ([]domain.LineItem, error) {
	var rawItems []json.RawMessage
	if err := json.Unmarshal(raw, &rawItems); err != nil || len(rawItems) == 0 {
		return nil, &ValidationError{Message: "Items must be a non-empty array"}
	}

	items := make([]domain.LineItem, 0, len(rawItems))
	for i, rawItem := range rawItems {
		var fields map[string]interface{}
		if err := json.Unmarshal(rawItem, &fields); err != nil {
			return nil, &ValidationError{Message: fmt.Sprintf("Invalid data format: item %d is not an object", i+1)}
		}

		for _, field := range requiredItemFields {
			if _, ok := fields[field]; !ok {
				return nil, &ValidationError{Message: fmt.Sprintf("Item %d is missing required field: %s", i+1, field)}
			}
		}

		unitPrice, err := floatValue(fields["unitPrice"])
		if err != nil {
			return nil, &ValidationError{Message: fmt.Sprintf("Invalid data format: item %d has an invalid unitPrice", i+1)}
		}

		quantity, err := intValue(fields["quantity"])
		if err != nil {
			return nil, &ValidationError{Message: fmt.Sprintf("Invalid data format: item %d has an invalid quantity", i+1)}
		}

		taxPercentage, err := floatValue(fields["taxPercentage"])
		if err != nil {
			return nil, &ValidationError{Message: fmt.Sprintf("Invalid data format: item %d has an invalid taxPercentage", i+1)}
		}

		items = append(items, domain.LineItem{
			Description:   stringValue(fields["description"]),
			UnitPrice:     unitPrice,
			Quantity:      quantity,
			TaxPercentage: taxPercentage,
		})
	}

	return items, nil
}

// floatValue coerces a decoded JSON value to a float64. Numbers are used
// as-is and numeric strings are parsed.
func floatValue(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	default:
		return 0, fmt.Errorf("cannot convert %T to float", v)
	}
}

// intValue coerces a decoded JSON value to an int. Fractional numbers
// are truncated, integer strings are parsed.
func intValue(v interface{}) (int, error) {
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(n))
	default:
		return 0, fmt.Errorf("cannot convert %T to int", v)
	}
}

// stringValue renders a decoded JSON value as a string
func stringValue(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
