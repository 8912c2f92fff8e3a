package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/jvalencia/ledgeradmin/internal/http/client"
	"github.com/jvalencia/ledgeradmin/internal/http/importdata"
	"github.com/jvalencia/ledgeradmin/internal/http/invoice"
	"github.com/jvalencia/ledgeradmin/internal/http/transaction"
)

func New(
	clientsV1 *client.Handler,
	invoicesV1 *invoice.Handler,
	transactionsV1 *transaction.Handler,
	importV1 *importdata.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// The dashboard is a static page served from a different origin.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/clients", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		clientsV1.Routes(r)
	})

	router.Route("/invoices", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		invoicesV1.Routes(r)
	})

	router.Route("/transactions", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		transactionsV1.Routes(r)
	})

	router.Route("/import", importV1.Routes)

	return router
}
