package transaction

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/jvalencia/ledgeradmin/internal/http/respond"
	"github.com/jvalencia/ledgeradmin/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{transaction_id}", h.get)
}

type transactionResponse struct {
	TransactionID     string          `json:"transaction_id"`
	TransactionDate   string          `json:"transaction_date"`
	TransactionAmount decimal.Decimal `json:"transaction_amount"`
	TransactionStatus string          `json:"transaction_status"`
	TransactionType   string          `json:"transaction_type"`
	InvoiceNumber     string          `json:"invoice_number"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		TransactionID:     tx.TransactionID,
		TransactionDate:   tx.Date.Format(time.DateOnly),
		TransactionAmount: tx.Amount,
		TransactionStatus: tx.Status,
		TransactionType:   tx.Type,
		InvoiceNumber:     tx.InvoiceNumber,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	txs, err := h.svc.List(r.Context())
	if err != nil {
		respond.Message(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	resp := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		resp = append(resp, toResponse(tx))
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	tx, err := h.svc.Get(r.Context(), chi.URLParam(r, "transaction_id"))
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			respond.Message(w, http.StatusNotFound, "Transaction not found")
			return
		}

		respond.Message(w, http.StatusInternalServerError, "Internal Server Error")

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(tx))
}

type createTransactionRequest struct {
	TransactionID     string          `json:"transaction_id"`
	TransactionDate   string          `json:"transaction_date"`
	TransactionAmount decimal.Decimal `json:"transaction_amount"`
	TransactionStatus string          `json:"transaction_status"`
	TransactionType   string          `json:"transaction_type"`
	InvoiceNumber     string          `json:"invoice_number"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	date, err := time.Parse(time.DateOnly, req.TransactionDate)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid transaction_date, expected YYYY-MM-DD")
		return
	}

	tx, err := h.svc.Create(r.Context(), transaction.CreateParams{
		TransactionID: req.TransactionID,
		Date:          date,
		Amount:        req.TransactionAmount,
		Status:        req.TransactionStatus,
		Type:          req.TransactionType,
		InvoiceNumber: req.InvoiceNumber,
	})
	if err != nil {
		switch {
		case errors.Is(err, transaction.ErrInvoiceNotFound):
			respond.Message(w, http.StatusBadRequest, "The referenced invoice does not exist")
		case errors.Is(err, transaction.ErrDuplicate):
			respond.Message(w, http.StatusBadRequest, "The transaction id is already registered")
		default:
			respond.Message(w, http.StatusInternalServerError, "Internal Server Error")
		}

		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(tx))
}
