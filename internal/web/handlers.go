package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/brahimakil/balagh-admin-sub001/internal/core"
	"github.com/brahimakil/balagh-admin-sub001/internal/logging"
	"github.com/brahimakil/balagh-admin-sub001/internal/store"
	"github.com/brahimakil/balagh-admin-sub001/internal/workbook"
)

// collectionInfo is the JSON shape for schema listings.
type collectionInfo struct {
	Key        string   `json:"key"`
	SheetName  string   `json:"sheetName"`
	Columns    []string `json:"columns"`
	NaturalKey []string `json:"naturalKey"`
}

func (s *Server) handleListCollections(w http.ResponseWriter, r *http.Request) {
	defs := s.pipeline.Registry().Ordered()
	out := make([]collectionInfo, 0, len(defs))
	for _, def := range defs {
		out = append(out, collectionInfo{
			Key:        def.Key,
			SheetName:  def.SheetName,
			Columns:    def.Columns(),
			NaturalKey: def.NaturalKey,
		})
	}
	respondJSON(w, http.StatusOK, out)
}

// ----------------------------------------------------------------------------
// Record CRUD
// ----------------------------------------------------------------------------

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	key, ok := s.collectionKey(w, r)
	if !ok {
		return
	}

	recs, err := s.store.List(r.Context(), key)
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError, "could not list records")
		return
	}
	if recs == nil {
		recs = []store.Record{}
	}
	respondJSON(w, http.StatusOK, recs)
}

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	key, ok := s.collectionKey(w, r)
	if !ok {
		return
	}

	rec, err := decodeRecord(r)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest, "request body must be a JSON object")
		return
	}

	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	rec["createdAt"] = now
	rec["updatedAt"] = now

	if err := s.store.Put(r.Context(), key, id, rec); err != nil {
		respondError(w, r, err, http.StatusInternalServerError, "could not create record")
		return
	}

	rec["id"] = id
	respondJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	key, ok := s.collectionKey(w, r)
	if !ok {
		return
	}

	rec, err := s.store.Get(r.Context(), key, chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, r, err, http.StatusNotFound, "record not found")
		return
	}
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError, "could not read record")
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (s *Server) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	key, ok := s.collectionKey(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	existing, err := s.store.Get(r.Context(), key, id)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, r, err, http.StatusNotFound, "record not found")
		return
	}
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError, "could not read record")
		return
	}

	rec, err := decodeRecord(r)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest, "request body must be a JSON object")
		return
	}

	// Creation metadata survives updates.
	for _, field := range []string{"createdAt", "importedAt", "importedBy"} {
		if v, ok := existing[field]; ok {
			rec[field] = v
		}
	}
	rec["updatedAt"] = time.Now().UTC().Format(time.RFC3339)

	if err := s.store.Put(r.Context(), key, id, rec); err != nil {
		respondError(w, r, err, http.StatusInternalServerError, "could not update record")
		return
	}

	rec["id"] = id
	respondJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	key, ok := s.collectionKey(w, r)
	if !ok {
		return
	}

	if err := s.store.Delete(r.Context(), key, chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err, http.StatusInternalServerError, "could not delete record")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// ----------------------------------------------------------------------------
// Workbook exchange
// ----------------------------------------------------------------------------

// importResponse wraps the structured summary with capped per-collection
// error previews for direct display.
type importResponse struct {
	*core.WorkbookSummary
	ErrorPreviews map[string]string `json:"errorPreviews,omitempty"`
}

func (s *Server) handleImportWorkbook(w http.ResponseWriter, r *http.Request) {
	wb, err := s.readWorkbookUpload(r)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest, "could not read workbook upload")
		return
	}

	logger := logging.FromContext(r.Context())
	logger.Info("workbook import requested", "sheets", wb.SheetNames())

	summary := s.pipeline.ImportWorkbook(r.Context(), wb)

	previews := make(map[string]string)
	for key, result := range summary.Results {
		if preview := core.ErrorPreview(result.Errors, s.cfg.Import.ErrorPreview); preview != "" {
			previews[key] = preview
		}
	}
	respondJSON(w, http.StatusOK, importResponse{WorkbookSummary: summary, ErrorPreviews: previews})
}

func (s *Server) handleImportSheet(w http.ResponseWriter, r *http.Request) {
	key, ok := s.collectionKey(w, r)
	if !ok {
		return
	}

	body := http.MaxBytesReader(w, r.Body, s.cfg.Import.MaxWorkbookBytes)
	defer body.Close()

	sheet, err := workbook.ReadSheetCSV(key, body)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest, "could not parse CSV sheet")
		return
	}

	result := s.pipeline.ImportCollection(r.Context(), key, core.RowsFromSheet(sheet.RowMaps()))
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleExportWorkbook(w http.ResponseWriter, r *http.Request) {
	wb, err := s.pipeline.ExportAll(r.Context())
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError, "could not export collections")
		return
	}

	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		respondError(w, r, err, http.StatusInternalServerError, "could not build workbook")
		return
	}

	name := fmt.Sprintf("content-backup-%s.zip", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleExportSheet(w http.ResponseWriter, r *http.Request) {
	key, ok := s.collectionKey(w, r)
	if !ok {
		return
	}

	sheet, err := s.pipeline.ExportCollection(r.Context(), key)
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError, "could not export collection")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+sheet.Name+`.csv"`)
	w.WriteHeader(http.StatusOK)
	writeSheetCSV(w, sheet)
}

func (s *Server) handleDrift(w http.ResponseWriter, r *http.Request) {
	wb, err := s.readWorkbookUpload(r)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest, "could not read workbook upload")
		return
	}

	reports := s.pipeline.DetectColumnDrift(wb)
	if reports == nil {
		reports = []core.DriftReport{}
	}
	respondJSON(w, http.StatusOK, reports)
}

// ----------------------------------------------------------------------------
// Provenance cleanup
// ----------------------------------------------------------------------------

func (s *Server) handlePurge(w http.ResponseWriter, r *http.Request) {
	key, ok := s.collectionKey(w, r)
	if !ok {
		return
	}

	deleted, err := s.pipeline.PurgeImported(r.Context(), key)
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError, "could not purge imported records")
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

func (s *Server) handlePurgeAll(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.pipeline.PurgeAllImported(r.Context())
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError, "could not purge imported records")
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

// ----------------------------------------------------------------------------
// Helpers
// ----------------------------------------------------------------------------

// collectionKey extracts and validates the {key} route parameter. On an
// unknown collection it responds 404 and returns ok=false.
func (s *Server) collectionKey(w http.ResponseWriter, r *http.Request) (string, bool) {
	key := chi.URLParam(r, "key")
	if _, ok := s.pipeline.Registry().Get(key); !ok {
		respondError(w, r, fmt.Errorf("unknown collection %q", key), http.StatusNotFound, "unknown collection")
		return "", false
	}
	return key, true
}

// readWorkbookUpload pulls the workbook file out of a multipart form
// (field "workbook") or, failing that, the raw request body.
func (s *Server) readWorkbookUpload(r *http.Request) (*workbook.Workbook, error) {
	limit := s.cfg.Import.MaxWorkbookBytes

	if err := r.ParseMultipartForm(limit); err == nil {
		file, _, ferr := r.FormFile("workbook")
		if ferr == nil {
			defer file.Close()
			data, rerr := io.ReadAll(io.LimitReader(file, limit))
			if rerr != nil {
				return nil, fmt.Errorf("read upload: %w", rerr)
			}
			return workbook.Read(data)
		}
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("empty workbook upload")
	}
	return workbook.Read(data)
}

func decodeRecord(r *http.Request) (store.Record, error) {
	var rec store.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	delete(rec, "id") // path, not payload, owns the id
	return rec, nil
}

func writeSheetCSV(w io.Writer, sheet *workbook.Sheet) {
	if err := workbook.WriteSheetCSV(w, sheet); err != nil {
		slog.Error("write sheet response", "sheet", sheet.Name, "error", err)
	}
}
