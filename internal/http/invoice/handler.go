package invoice

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/jvalencia/ledgeradmin/internal/http/respond"
	"github.com/jvalencia/ledgeradmin/internal/invoice"
)

type Handler struct {
	svc *invoice.Service
}

func NewHandler(svc *invoice.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{invoice_number}", h.get)
}

type invoiceResponse struct {
	InvoiceNumber        string          `json:"invoice_number"`
	PlatformUsed         string          `json:"platform_used"`
	BillingPeriod        string          `json:"billing_period"`
	InvoicedAmount       decimal.Decimal `json:"invoiced_amount"`
	PaidAmount           decimal.Decimal `json:"paid_amount"`
	IdentificationNumber string          `json:"identification_number"`
}

func toResponse(inv *invoice.Invoice) invoiceResponse {
	return invoiceResponse{
		InvoiceNumber:        inv.InvoiceNumber,
		PlatformUsed:         inv.PlatformUsed,
		BillingPeriod:        inv.BillingPeriod,
		InvoicedAmount:       inv.InvoicedAmount,
		PaidAmount:           inv.PaidAmount,
		IdentificationNumber: inv.IdentificationNumber,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.svc.List(r.Context())
	if err != nil {
		respond.Message(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	resp := make([]invoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		resp = append(resp, toResponse(inv))
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	inv, err := h.svc.Get(r.Context(), chi.URLParam(r, "invoice_number"))
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			respond.Message(w, http.StatusNotFound, "Invoice not found")
			return
		}

		respond.Message(w, http.StatusInternalServerError, "Internal Server Error")

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(inv))
}

type createInvoiceRequest struct {
	InvoiceNumber        string          `json:"invoice_number"`
	PlatformUsed         string          `json:"platform_used"`
	BillingPeriod        string          `json:"billing_period"`
	InvoicedAmount       decimal.Decimal `json:"invoiced_amount"`
	PaidAmount           decimal.Decimal `json:"paid_amount"`
	IdentificationNumber string          `json:"identification_number"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	inv, err := h.svc.Create(r.Context(), invoice.CreateParams{
		InvoiceNumber:        req.InvoiceNumber,
		PlatformUsed:         req.PlatformUsed,
		BillingPeriod:        req.BillingPeriod,
		InvoicedAmount:       req.InvoicedAmount,
		PaidAmount:           req.PaidAmount,
		IdentificationNumber: req.IdentificationNumber,
	})
	if err != nil {
		switch {
		case errors.Is(err, invoice.ErrClientNotFound):
			respond.Message(w, http.StatusBadRequest, "The referenced client does not exist")
		case errors.Is(err, invoice.ErrDuplicate):
			respond.Message(w, http.StatusBadRequest, "The invoice number is already registered")
		default:
			respond.Message(w, http.StatusInternalServerError, "Internal Server Error")
		}

		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(inv))
}
