package handler

import (
	"errors"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/einvoicelab/e-invoice-service/internal/model"
	"github.com/einvoicelab/e-invoice-service/internal/service"
)

// InvoiceHandler handles HTTP requests for invoice recording
type InvoiceHandler struct {
	service service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(svc service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		service: svc,
	}
}

// RegisterRoutes registers the handler's routes with the given router
func (h *InvoiceHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.Home)
	router.GET("/invoice_list", h.ListInvoices)
	router.POST("/submit_invoice", h.SubmitInvoice)
}

// Home describes the service and its endpoints
// @Summary Service description
// @Description Returns the service name and available endpoints
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *InvoiceHandler) Home(c *gin.Context) {
	respondOK(c, gin.H{
		"message": "E-Invoice API",
		"endpoints": gin.H{
			"submit_invoice": gin.H{
				"url":         "/submit_invoice",
				"method":      "POST",
				"description": "Submit a new invoice",
			},
			"invoice_list": gin.H{
				"url":         "/invoice_list",
				"method":      "GET",
				"description": "List all invoices",
			},
		},
	})
}

// SubmitInvoice handles a request to record a new invoice
// @Summary Submit an invoice
// @Description Validate an invoice submission, compute its totals and store it
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice body model.SubmitInvoiceRequest true "Invoice submission"
// @Success 200 {object} model.SubmitInvoiceResponse "Invoice recorded"
// @Failure 400 {object} model.ErrorResponse "Missing or malformed fields"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /submit_invoice [post]
func (h *InvoiceHandler) SubmitInvoice(c *gin.Context) {
	var request model.SubmitInvoiceRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondBadRequest(c, "No data provided")
		return
	}

	response, err := h.service.SubmitInvoice(c.Request.Context(), &request)
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			respondBadRequest(c, validationErr.Message)
			return
		}

		log.Printf("Invoice submission failed: %v", err)
		respondInternalServerError(c, fmt.Sprintf("Server error: %v", err))
		return
	}

	respondOK(c, response)
}

// ListInvoices handles a request to list all recorded invoices
// @Summary List invoices
// @Description Returns every stored invoice with its computed totals
// @Tags invoices
// @Produce json
// @Success 200 {object} model.InvoiceListResponse "All stored invoices"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /invoice_list [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	response, err := h.service.ListInvoices(c.Request.Context())
	if err != nil {
		log.Printf("Invoice listing failed: %v", err)
		respondInternalServerError(c, fmt.Sprintf("Failed to fetch invoices: %v", err))
		return
	}

	respondOK(c, response)
}
