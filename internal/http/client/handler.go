package client

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jvalencia/ledgeradmin/internal/client"
	"github.com/jvalencia/ledgeradmin/internal/http/respond"
)

type Handler struct {
	svc *client.Service
}

func NewHandler(svc *client.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{identification_number}", h.get)
	r.Put("/{identification_number}", h.update)
	r.Delete("/{identification_number}", h.delete)
}

type clientResponse struct {
	IdentificationNumber string `json:"identification_number"`
	ClientName           string `json:"client_name"`
	Address              string `json:"address"`
	Apartment            string `json:"apartment"`
	Phone                string `json:"phone"`
	Email                string `json:"email"`
}

func toResponse(c *client.Client) clientResponse {
	return clientResponse{
		IdentificationNumber: c.IdentificationNumber,
		ClientName:           c.Name,
		Address:              c.Address,
		Apartment:            c.Apartment,
		Phone:                c.Phone,
		Email:                c.Email,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	clients, err := h.svc.List(r.Context())
	if err != nil {
		respond.Message(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	resp := make([]clientResponse, 0, len(clients))
	for _, c := range clients {
		resp = append(resp, toResponse(c))
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.Context(), chi.URLParam(r, "identification_number"))
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			respond.Message(w, http.StatusNotFound, "Client not found")
			return
		}

		respond.Message(w, http.StatusInternalServerError, "Internal Server Error")

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
}

type createClientRequest struct {
	IdentificationNumber string `json:"identification_number"`
	ClientName           string `json:"client_name"`
	Address              string `json:"address"`
	Apartment            string `json:"apartment"`
	Phone                string `json:"phone"`
	Email                string `json:"email"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, err := h.svc.Create(r.Context(), client.CreateParams{
		IdentificationNumber: req.IdentificationNumber,
		Name:                 req.ClientName,
		Address:              req.Address,
		Apartment:            req.Apartment,
		Phone:                req.Phone,
		Email:                req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, client.ErrEmailTaken):
			respond.Message(w, http.StatusBadRequest, "The email is already registered")
		case errors.Is(err, client.ErrDuplicate):
			respond.Message(w, http.StatusBadRequest, "The identification number is already registered")
		default:
			respond.Message(w, http.StatusInternalServerError, "Internal Server Error")
		}

		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(c))
}

type updateClientRequest struct {
	ClientName string `json:"client_name"`
	Address    string `json:"address"`
	Apartment  string `json:"apartment"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

// update is a full replace keyed by the identification number in the URL.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c := &client.Client{
		IdentificationNumber: chi.URLParam(r, "identification_number"),
		Name:                 req.ClientName,
		Address:              req.Address,
		Apartment:            req.Apartment,
		Phone:                req.Phone,
		Email:                req.Email,
	}

	if err := h.svc.Update(r.Context(), c); err != nil {
		if errors.Is(err, client.ErrNotFound) {
			respond.Message(w, http.StatusNotFound, "Client not found")
			return
		}

		respond.Message(w, http.StatusInternalServerError, "Internal Server Error")

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "identification_number")); err != nil {
		if errors.Is(err, client.ErrNotFound) {
			respond.Message(w, http.StatusNotFound, "Client not found")
			return
		}

		respond.Message(w, http.StatusInternalServerError, "Internal Server Error")

		return
	}

	respond.Message(w, http.StatusOK, "Client successfully deleted")
}
