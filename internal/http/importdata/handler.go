// Package importdata exposes the bulk-import pipeline over HTTP: a JSON
// endpoint taking pre-decoded rows from the dashboard, and a multipart
// endpoint taking a raw CSV upload.
package importdata

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/jvalencia/ledgeradmin/internal/http/respond"
	"github.com/jvalencia/ledgeradmin/internal/importer"
	"github.com/jvalencia/ledgeradmin/internal/importer/csvsource"
)

const maxUploadBytes = 10 << 20

type Handler struct {
	svc *importer.Service
}

func NewHandler(svc *importer.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.With(middleware.AllowContentType("application/json")).Post("/{kind}", h.importData)
	r.Post("/{kind}/csv", h.importCSV)
}

// importRequest keeps rows as raw decoded values: a list holding a non-object
// element is still a processable batch, the bad element just fails row
// validation.
type importRequest struct {
	Data []any `json:"data"`
}

type importResponse struct {
	Message  string    `json:"message"`
	BatchID  uuid.UUID `json:"batch_id"`
	Imported int       `json:"imported"`
	Errors   []string  `json:"errors,omitempty"`
}

// importData processes a pre-decoded batch. A missing or non-list "data"
// field fails the whole call with 400 before any row is touched; once the
// loop starts, the response is 200 no matter how many rows failed.
func (h *Handler) importData(w http.ResponseWriter, r *http.Request) {
	kind, err := importer.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		respond.Message(w, http.StatusNotFound, "Unknown import target")
		return
	}

	dec := json.NewDecoder(r.Body)
	// Numbers keep their textual form; identification numbers must not
	// round-trip through float64.
	dec.UseNumber()

	var req importRequest
	if err := dec.Decode(&req); err != nil || req.Data == nil {
		respond.Message(w, http.StatusBadRequest, "Invalid data")
		return
	}

	h.runBatch(w, r, kind, req.Data)
}

// importCSV accepts a multipart CSV upload and feeds the decoded rows through
// the same pipeline as importData.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	kind, err := importer.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		respond.Message(w, http.StatusNotFound, "Unknown import target")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respond.Message(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	records, err := csvsource.Read(file, kind)
	if err != nil {
		if errors.Is(err, csvsource.ErrHeaderMismatch) {
			respond.Message(w, http.StatusBadRequest, "The CSV file is not in the correct format for the selected table")
			return
		}

		respond.Message(w, http.StatusBadRequest, "Could not process the CSV file: "+err.Error())

		return
	}

	rows := make([]any, len(records))
	for i, rec := range records {
		rows[i] = rec
	}

	h.runBatch(w, r, kind, rows)
}

func (h *Handler) runBatch(w http.ResponseWriter, r *http.Request, kind importer.Kind, rows []any) {
	report, err := h.svc.ImportBatch(r.Context(), kind, rows)
	if err != nil {
		respond.Message(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	respond.JSON(w, http.StatusOK, importResponse{
		Message:  fmt.Sprintf("Import completed. %d %s imported successfully.", report.Imported, kind),
		BatchID:  report.BatchID,
		Imported: report.Imported,
		Errors:   report.Errors,
	})
}
