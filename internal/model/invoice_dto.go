package model

import (
	"encoding/json"
	"time"

	"github.com/einvoicelab/e-invoice-service/internal/domain"
)

// SubmitInvoiceRequest represents an incoming invoice submission.
// Presence of required fields is validated explicitly by the service, so
// fields that may legally hold any JSON value are kept raw and the rest
// use pointers to distinguish "absent" from "zero value".
type SubmitInvoiceRequest struct {
	InvoiceNumber json.RawMessage        `json:"invoiceNumber"`
	InvoiceType   *string                `json:"invoiceType"`
	SellerID      *string                `json:"sellerId"`
	Buyer         map[string]interface{} `json:"buyer"`
	Items         json.RawMessage        `json:"items"`
	InvoiceStatus *string                `json:"invoice_status"`
}

// SubmitInvoiceResponse represents a successful submission response
type SubmitInvoiceResponse struct {
	Status      string  `json:"status"`
	Message     string  `json:"message"`
	InvoiceID   string  `json:"invoice_id"`
	TotalAmount float64 `json:"total_amount"`
}

// InvoiceEntry represents one invoice in a listing response
type InvoiceEntry struct {
	InvoiceID             string                 `json:"invoice_id"`
	InvoiceType           string                 `json:"invoice_type"`
	BuyerInfo             map[string]interface{} `json:"buyer_info"`
	SellerInfo            map[string]interface{} `json:"seller_info"`
	SellerCR              string                 `json:"seller_cr"`
	BuyerID               string                 `json:"buyer_id"`
	TotalAmount           float64                `json:"total_amount"`
	TotalAmountWithoutTax float64                `json:"total_amount_without_tax"`
	TotalTax              float64                `json:"total_tax"`
	InvoiceStatus         string                 `json:"invoice_status"`
	CreatedAt             string                 `json:"created_at"`
	UpdatedAt             *string                `json:"updated_at"`
}

// InvoiceListResponse represents the response for the invoice listing endpoint
type InvoiceListResponse struct {
	Status   string         `json:"status"`
	Count    int            `json:"count"`
	Invoices []InvoiceEntry `json:"invoices"`
}

// ErrorResponse represents an error response body
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// FromDomain converts a domain Invoice to an InvoiceEntry
func (e *InvoiceEntry) FromDomain(invoice *domain.Invoice) {
	e.InvoiceID = invoice.ID
	e.InvoiceType = invoice.Type
	e.BuyerInfo = invoice.BuyerInfo
	e.SellerInfo = invoice.SellerInfo
	e.SellerCR = invoice.SellerCR
	e.BuyerID = invoice.BuyerID
	e.TotalAmount = invoice.TotalAmount
	e.TotalAmountWithoutTax = invoice.TotalAmountWithoutTax
	e.TotalTax = invoice.TotalTax
	e.InvoiceStatus = invoice.Status
	e.CreatedAt = invoice.CreatedAt.Format(time.RFC3339)

	// updated_at is serialized as null when it was never set
	if !invoice.UpdatedAt.IsZero() {
		updatedAt := invoice.UpdatedAt.Format(time.RFC3339)
		e.UpdatedAt = &updatedAt
	}
}
