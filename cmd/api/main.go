package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/jvalencia/ledgeradmin/internal/client"
	clientStore "github.com/jvalencia/ledgeradmin/internal/client/store"
	"github.com/jvalencia/ledgeradmin/internal/config"
	"github.com/jvalencia/ledgeradmin/internal/database"
	adminHttp "github.com/jvalencia/ledgeradmin/internal/http"
	clientHandler "github.com/jvalencia/ledgeradmin/internal/http/client"
	importHandler "github.com/jvalencia/ledgeradmin/internal/http/importdata"
	invoiceHandler "github.com/jvalencia/ledgeradmin/internal/http/invoice"
	txHandler "github.com/jvalencia/ledgeradmin/internal/http/transaction"
	"github.com/jvalencia/ledgeradmin/internal/importer"
	"github.com/jvalencia/ledgeradmin/internal/invoice"
	invoiceStore "github.com/jvalencia/ledgeradmin/internal/invoice/store"
	"github.com/jvalencia/ledgeradmin/internal/transaction"
	txStore "github.com/jvalencia/ledgeradmin/internal/transaction/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), database.Options{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		clientService      = client.NewService(clientStore.New(db))
		invoiceService     = invoice.NewService(invoiceStore.New(db), clientService)
		transactionService = transaction.NewService(txStore.New(db), invoiceService)
		importService      = importer.NewService(clientService, invoiceService, transactionService)
	)

	var (
		clientH  = clientHandler.NewHandler(clientService)
		invoiceH = invoiceHandler.NewHandler(invoiceService)
		txH      = txHandler.NewHandler(transactionService)
		importH  = importHandler.NewHandler(importService)
	)

	router := adminHttp.New(clientH, invoiceH, txH, importH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
