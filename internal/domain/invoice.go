package domain

import (
	"time"
)

// LineItem represents a single item in an invoice submission.
// Line items are inputs to the total computation and are not persisted
// individually.
type LineItem struct {
	Description   string  `json:"description"`
	UnitPrice     float64 `json:"unitPrice"`
	Quantity      int     `json:"quantity"`
	TaxPercentage float64 `json:"taxPercentage"`
}

// Subtotal returns the item amount excluding tax
func (li LineItem) Subtotal() float64 {
	return li.UnitPrice * float64(li.Quantity)
}

// Invoice represents a recorded e-invoice
type Invoice struct {
	ID                    string                 `json:"invoice_id"`
	BuyerInfo             map[string]interface{} `json:"buyer_info"`
	SellerInfo            map[string]interface{} `json:"seller_info"`
	SellerCR              string                 `json:"seller_cr"`
	BuyerID               string                 `json:"buyer_id"`
	TotalAmount           float64                `json:"total_amount"`
	TotalAmountWithoutTax float64                `json:"total_amount_without_tax"`
	TotalTax              float64                `json:"total_tax"`
	Status                string                 `json:"invoice_status"`
	Type                  string                 `json:"invoice_type"`
	CreatedAt             time.Time              `json:"created_at"`
	UpdatedAt             time.Time              `json:"updated_at"`

	// Items carries the submitted line items so totals can be computed.
	// Only the aggregated totals are stored.
	Items []LineItem `json:"-"`
}

// NewInvoice creates a new invoice with an empty item list
func NewInvoice() *Invoice {
	return &Invoice{
		Items: make([]LineItem, 0),
	}
}

// AddLineItem adds a new line item to the invoice
func (i *Invoice) AddLineItem(item LineItem) {
	i.Items = append(i.Items, item)
}

// CalculateTotals recomputes the invoice totals from its line items.
// Each item's subtotal and tax are accumulated separately, then
// TotalAmount is derived as the sum of both accumulators.
func (i *Invoice) CalculateTotals() {
	var totalWithoutTax, totalTax float64
	for _, item := range i.Items {
		itemSubtotal := item.Subtotal()
		itemTax := itemSubtotal * (item.TaxPercentage / 100)

		totalWithoutTax += itemSubtotal
		totalTax += itemTax
	}

	i.TotalAmountWithoutTax = totalWithoutTax
	i.TotalTax = totalTax
	i.TotalAmount = totalWithoutTax + totalTax
}
